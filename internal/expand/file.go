package expand

import (
	"errors"
	"fmt"

	"lockweak/internal/ast"
	"lockweak/internal/diag"
	"lockweak/internal/format"
	"lockweak/internal/source"
	"lockweak/internal/trace"
)

// Options configures ExpandFile.
type Options struct {
	Names  Names
	Policy ExtensionPolicy
	// Format.Indent пустой: берётся отступ, найденный парсером
	Format   format.Options
	Reporter diag.Reporter
	Tracer   trace.Tracer
	// ParentSpan links declaration spans to the caller's file span.
	ParentSpan uint64
}

// Stats counts what one file expansion produced.
type Stats struct {
	Classes    int `json:"classes"`
	Fields     int `json:"fields"`
	Extensions int `json:"extensions"`
	Accessors  int `json:"accessors"`
	Rejected   int `json:"rejected"`
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Classes += other.Classes
	s.Fields += other.Fields
	s.Extensions += other.Extensions
	s.Accessors += other.Accessors
	s.Rejected += other.Rejected
}

type Result struct {
	Output  []byte
	Changed bool
	Stats   Stats
}

type fileExpander struct {
	ctx      *Context
	sf       *source.File
	rw       *format.Rewriter
	fopt     format.Options
	reporter diag.Reporter
	tracer   trace.Tracer
	parent   uint64
	// marked: члены с синтетическим маркером
	marked map[ast.DeclID]ast.Attr
	stats  Stats
}

// ExpandFile раскрывает все `@LockedWeakReference` файла и возвращает новый текст.
// Объявление с диагностикой остаётся как есть; остальные раскрываются.
func ExpandFile(b *ast.Builder, fileID ast.FileID, sf *source.File, opts Options) (Result, error) {
	if b == nil || sf == nil {
		return Result{}, errors.New("expand: nil builder or source file")
	}
	file := b.Files.Get(fileID)
	if file == nil {
		return Result{}, fmt.Errorf("expand: unknown file id %d", fileID)
	}

	fopt := opts.Format
	if fopt.Indent == "" && !fopt.UseTabs && fopt.IndentWidth == 0 {
		fopt.Indent = file.Indent
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	e := &fileExpander{
		ctx:      NewContext(b, sf, opts.Names, opts.Policy),
		sf:       sf,
		rw:       format.NewRewriter(sf, fopt),
		fopt:     fopt,
		reporter: diag.NewDedupReporter(opts.Reporter),
		tracer:   tracer,
		parent:   opts.ParentSpan,
		marked:   make(map[ast.DeclID]ast.Attr),
	}

	for _, top := range file.Decls {
		b.Decls.Walk(top, func(id ast.DeclID) bool {
			e.expandType(top, id)
			return true
		})
	}
	// аксессоры: после всех типов: маркеры могут стоять где угодно в файле
	for _, top := range file.Decls {
		b.Decls.Walk(top, func(id ast.DeclID) bool {
			e.expandAccessors(id)
			return true
		})
	}

	out, err := e.rw.Bytes()
	if err != nil {
		return Result{}, fmt.Errorf("expand %s: %w", sf.Path, err)
	}
	return Result{Output: out, Changed: e.rw.Len() > 0, Stats: e.stats}, nil
}

func (e *fileExpander) expandType(top, id ast.DeclID) {
	decls := e.ctx.Builder.Decls
	td := decls.Type(id)
	idx := e.ctx.LockedAttr(td)
	if idx < 0 {
		return
	}
	attr := td.Attrs[idx]

	span := trace.Begin(e.tracer, trace.ScopeDecl, "decl:"+e.ctx.name(td.Name), e.parent)
	fields, errMembers := ExpandMembers(e.ctx, attr, id)
	exts, errExts := ExpandExtensions(e.ctx, attr, id)
	if errMembers != nil || errExts != nil {
		// обе фазы отвергают одинаково, DedupReporter оставит одну диагностику
		for _, err := range []error{errMembers, errExts} {
			var de *DiagnosticsError
			if errors.As(err, &de) {
				de.Report(e.reporter)
			}
		}
		e.stats.Rejected++
		span.End("rejected")
		return
	}

	for _, a := range td.Attrs {
		if a.Name == attr.Name {
			e.rw.Delete(attrExtent(a))
		}
	}
	if td.Kind != ast.TypeClass || !td.HasName() {
		span.End("no name")
		return
	}
	e.stats.Classes++

	for _, m := range td.Members {
		if attrs := ExpandMemberAttributes(e.ctx, attr, id, m); len(attrs) > 0 {
			e.marked[m] = attrs[0]
		}
	}

	if len(fields) > 0 {
		last := decls.Get(td.Members[len(td.Members)-1])
		text := format.RenderCodes(fields, e.memberIndent(id, td), e.fopt)
		e.rw.InsertAfter(last.Span.End, "\n\n"+text)
		e.stats.Fields += len(fields)
	}

	topDecl := decls.Get(top)
	for _, ext := range exts {
		text := format.RenderCode(ext.Code(), e.sf.Indent(topDecl.Span.Start), e.fopt)
		e.rw.InsertAfter(topDecl.Span.End, "\n\n"+text)
		e.stats.Extensions++
	}
	span.WithExtra("fields", fmt.Sprint(len(fields))).End("")
}

func (e *fileExpander) expandAccessors(id ast.DeclID) {
	v := e.ctx.Builder.Decls.Var(id)
	if v == nil {
		return
	}
	marker, ok := e.marked[id]
	// маркер в исходнике потребляется раскрытием всегда
	for i, a := range v.Attrs {
		if a.Name != e.ctx.register {
			continue
		}
		e.rw.Delete(attrExtent(a))
		if !ok {
			marker, ok = v.Attrs[i], true
		}
	}
	if !ok {
		return
	}

	codes := ExpandAccessors(e.ctx, marker, id)
	if len(codes) == 0 {
		return
	}
	decl := e.ctx.Builder.Decls.Get(id)
	indent := e.sf.Indent(v.Keyword.Start)
	body := format.RenderCodes(codes, indent+e.fopt.Unit(), e.fopt)
	e.rw.Replace(
		source.Span{File: decl.Span.File, Start: v.Type.Span.End, End: decl.Span.End},
		" {\n"+body+"\n"+indent+"}",
	)
	e.stats.Accessors++
}

// memberIndent: отступ первого члена, если он на своей строке,
// иначе отступ объявления плюс единица.
func (e *fileExpander) memberIndent(id ast.DeclID, td *ast.TypeDecl) string {
	declStart := e.ctx.Builder.Decls.Get(id).Span.Start
	if len(td.Members) > 0 {
		first := e.ctx.Builder.Decls.Get(td.Members[0]).Span.Start
		if e.sf.LineStart(first) != e.sf.LineStart(td.LBrace.Start) {
			return e.sf.Indent(first)
		}
	}
	return e.sf.Indent(declStart) + e.fopt.Unit()
}

func attrExtent(a ast.Attr) source.Span {
	if a.Extent.Empty() {
		return a.Span
	}
	return a.Extent
}
