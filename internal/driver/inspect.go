package driver

import (
	"fmt"

	"fortio.org/safecast"

	"lockweak/internal/ast"
	"lockweak/internal/diag"
	"lockweak/internal/lexer"
	"lockweak/internal/parser"
	"lockweak/internal/source"
	"lockweak/internal/token"
)

// TokenizeResult and ParseResult back `lockweak tokenize` and `lockweak parse`.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

func loadSingle(path string) (*source.FileSet, source.FileID, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, 0, fmt.Errorf("load %s: %w", path, err)
	}
	return fs, id, nil
}

// Tokenize лексит файл целиком, EOF включён.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs, id, err := loadSingle(path)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.New(fs.Get(id), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}}).All()
	return &TokenizeResult{FileSet: fs, File: fs.Get(id), Tokens: tokens, Bag: bag}, nil
}

func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs, id, err := loadSingle(path)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	builder, file, err := parseInto(fs, id, bag, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return &ParseResult{FileSet: fs, File: fs.Get(id), Builder: builder, FileID: file, Bag: bag}, nil
}

// parseInto разбирает загруженный файл в собственный Builder:
// файлы независимы, общий Interner не нужен.
func parseInto(fs *source.FileSet, id source.FileID, bag *diag.Bag, maxDiagnostics int) (*ast.Builder, ast.FileID, error) {
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, ast.NoFileID, fmt.Errorf("maxDiagnostics overflow: %w", err)
	}
	reporter := &diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})
	res := parser.ParseFile(fs, lx, builder, parser.Options{Reporter: reporter, MaxErrors: maxErrors})
	return builder, res.File, nil
}
