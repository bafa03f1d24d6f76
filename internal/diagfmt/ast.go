package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lockweak/internal/ast"
	"lockweak/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Name     string          `json:"name,omitempty"`
	Span     source.Span     `json:"span"`
	Fields   map[string]any  `json:"fields,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatASTPretty печатает дерево объявлений с ветками ├─ └─.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file %d not found", fileID)
	}
	header := "File"
	if f, ok := knownFile(fs, file.Source); ok {
		header = displayPath(fs, f, PathModeAuto)
	}
	root := &treeNode{label: fmt.Sprintf("%s (span: %s, indent: %q)", header, formatSpan(file.Span, fs), file.Indent)}
	for i, id := range file.Decls {
		root.children = append(root.children, declTreeNode(builder, id, fs, i))
	}

	fmt.Fprintln(w, root.label)
	writeTree(w, root.children, "")
	return nil
}

func writeTree(w io.Writer, nodes []*treeNode, prefix string) {
	for i, n := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, n.label)
		writeTree(w, n.children, prefix+next)
	}
}

func declTreeNode(b *ast.Builder, id ast.DeclID, fs *source.FileSet, idx int) *treeNode {
	decl := b.Decls.Get(id)
	if decl == nil {
		return &treeNode{label: fmt.Sprintf("Decl[%d]: <nil>", idx)}
	}
	node := &treeNode{}
	switch decl.Kind {
	case ast.DeclType:
		td := b.Decls.Type(id)
		name := b.Name(td.Name)
		if td.Kind == ast.TypeExtension {
			name = td.Extended
		}
		node.label = fmt.Sprintf("Decl[%d]: %s %s (span: %s)", idx, td.Kind, name, formatSpan(decl.Span, fs))
		node.children = append(node.children, commonChildren(b, td.Attrs, td.Modifiers.Names())...)
		if len(td.Inherits) > 0 {
			node.children = append(node.children, &treeNode{label: "Inherits: " + strings.Join(td.Inherits, ", ")})
		}
		for i, m := range td.Members {
			node.children = append(node.children, declTreeNode(b, m, fs, i))
		}
	case ast.DeclVar:
		v := b.Decls.Var(id)
		node.label = fmt.Sprintf("Decl[%d]: %s %s (span: %s)", idx, v.Binding, b.Name(v.Name), formatSpan(decl.Span, fs))
		node.children = append(node.children, commonChildren(b, v.Attrs, v.Modifiers.Names())...)
		if v.Type != nil {
			label := "Type: " + v.Type.Text
			if v.Type.Optional {
				label += " (optional of " + v.Type.Wrapped + ")"
			}
			node.children = append(node.children, &treeNode{label: label})
		}
		if v.HasInit {
			node.children = append(node.children, &treeNode{label: "Init: yes"})
		}
		if v.Accessors != ast.AccessorsNone {
			kinds := make([]string, 0, len(v.AccessorList))
			for _, a := range v.AccessorList {
				kinds = append(kinds, a.Kind.String())
			}
			node.children = append(node.children, &treeNode{label: fmt.Sprintf("Accessors: %s [%s]", v.Accessors, strings.Join(kinds, ", "))})
		}
		if v.Bindings > 1 {
			node.children = append(node.children, &treeNode{label: fmt.Sprintf("Bindings: %d", v.Bindings)})
		}
	default:
		raw := b.Decls.Raw(id)
		node.label = fmt.Sprintf("Decl[%d]: raw %s (span: %s)", idx, raw.Keyword, formatSpan(decl.Span, fs))
	}
	return node
}

func commonChildren(b *ast.Builder, attrs []ast.Attr, mods []string) []*treeNode {
	var out []*treeNode
	if len(attrs) > 0 {
		names := make([]string, len(attrs))
		for i, a := range attrs {
			names[i] = formatAttr(b, a)
		}
		out = append(out, &treeNode{label: "Attributes: " + strings.Join(names, ", ")})
	}
	if len(mods) > 0 {
		out = append(out, &treeNode{label: "Modifiers: " + strings.Join(mods, " ")})
	}
	return out
}

func formatAttr(b *ast.Builder, a ast.Attr) string {
	s := "@" + b.Name(a.Name)
	if a.HasArgs {
		s += "(" + a.Args + ")"
	}
	return s
}

func formatSpan(sp source.Span, fs *source.FileSet) string {
	if _, ok := knownFile(fs, sp.File); !ok {
		return sp.String()
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// FormatASTJSON выводит то же дерево в JSON.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file %d not found", fileID)
	}
	out := ASTNodeOutput{
		Type:   "File",
		Span:   file.Span,
		Fields: map[string]any{"indent": file.Indent},
	}
	for _, id := range file.Decls {
		out.Children = append(out.Children, declJSON(builder, id))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func declJSON(b *ast.Builder, id ast.DeclID) ASTNodeOutput {
	decl := b.Decls.Get(id)
	node := ASTNodeOutput{Type: "Decl", Kind: decl.Kind.String(), Span: decl.Span, Fields: map[string]any{}}
	switch decl.Kind {
	case ast.DeclType:
		td := b.Decls.Type(id)
		node.Name = b.Name(td.Name)
		node.Fields["type_kind"] = td.Kind.String()
		if td.Extended != "" {
			node.Fields["extended"] = td.Extended
		}
		addCommonFields(b, node.Fields, td.Attrs, td.Modifiers.Names())
		if len(td.Inherits) > 0 {
			node.Fields["inherits"] = td.Inherits
		}
		for _, m := range td.Members {
			node.Children = append(node.Children, declJSON(b, m))
		}
	case ast.DeclVar:
		v := b.Decls.Var(id)
		node.Name = b.Name(v.Name)
		node.Fields["binding"] = v.Binding.String()
		addCommonFields(b, node.Fields, v.Attrs, v.Modifiers.Names())
		if v.Type != nil {
			node.Fields["type"] = v.Type.Text
			node.Fields["optional"] = v.Type.Optional
		}
		node.Fields["accessors"] = v.Accessors.String()
		if v.Bindings > 1 {
			node.Fields["bindings"] = v.Bindings
		}
	default:
		node.Fields["keyword"] = b.Decls.Raw(id).Keyword
	}
	return node
}

func addCommonFields(b *ast.Builder, fields map[string]any, attrs []ast.Attr, mods []string) {
	if len(attrs) > 0 {
		names := make([]string, len(attrs))
		for i, a := range attrs {
			names[i] = formatAttr(b, a)
		}
		fields["attributes"] = names
	}
	if len(mods) > 0 {
		fields["modifiers"] = mods
	}
}
