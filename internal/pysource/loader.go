package pysource

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/g5becks/docsect/internal/docstring"
)

type SymbolKind string

const (
	KindModule   SymbolKind = "module"
	KindClass    SymbolKind = "class"
	KindFunction SymbolKind = "function"
	KindMethod   SymbolKind = "method"
)

// Symbol is one documentable definition found in a Python module.
type Symbol struct {
	Name      string               `json:"name"`
	Kind      SymbolKind           `json:"kind"`
	Line      int                  `json:"line"`
	Docstring string               `json:"docstring,omitempty"`
	Signature *docstring.Signature `json:"signature,omitempty"`
}

type Module struct {
	Name    string
	Path    string
	Lines   int
	Symbols []Symbol
}

// Loader extracts symbols, docstrings and signatures from Python source.
// Each call uses its own tree-sitter parser, so a Loader may be shared.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

func (l *Loader) LoadFile(ctx context.Context, path, moduleName string) (*Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.
			Code("SOURCE_READ_ERROR").
			With("path", path).
			Wrapf(err, "reading python source")
	}

	return l.Load(ctx, path, moduleName, source)
}

// Load parses source. The module itself is always the first symbol.
func (l *Loader) Load(ctx context.Context, path, moduleName string, source []byte) (*Module, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, oops.
			Code("SOURCE_PARSE_ERROR").
			With("path", path).
			Wrapf(err, "parsing python source")
	}
	defer tree.Close()

	root := tree.RootNode()
	w := &walker{source: source}
	w.symbols = append(w.symbols, Symbol{
		Name:      moduleName,
		Kind:      KindModule,
		Line:      1,
		Docstring: w.docOf(root),
	})
	w.walkBody(root, "", false)

	return &Module{
		Name:    moduleName,
		Path:    path,
		Lines:   strings.Count(string(source), "\n") + 1,
		Symbols: w.symbols,
	}, nil
}

// ModuleName derives a dotted module name from a path relative to a source
// root; package __init__ files name the package.
func ModuleName(relPath string) string {
	relPath = filepath.ToSlash(strings.TrimSuffix(relPath, filepath.Ext(relPath)))
	relPath = strings.TrimSuffix(relPath, "/__init__")
	return strings.ReplaceAll(relPath, "/", ".")
}

type walker struct {
	source  []byte
	symbols []Symbol
}

func (w *walker) walkBody(body *sitter.Node, prefix string, inClass bool) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		node := body.NamedChild(i)
		if node.Type() == "decorated_definition" {
			node = node.ChildByFieldName("definition")
			if node == nil {
				continue
			}
		}

		switch node.Type() {
		case "function_definition":
			w.function(node, prefix, inClass)
		case "class_definition":
			w.class(node, prefix)
		}
	}
}

func (w *walker) function(node *sitter.Node, prefix string, inClass bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	kind := KindFunction
	if inClass {
		kind = KindMethod
	}

	w.symbols = append(w.symbols, Symbol{
		Name:      prefix + nameNode.Content(w.source),
		Kind:      kind,
		Line:      int(node.StartPoint().Row) + 1,
		Docstring: w.docOf(node.ChildByFieldName("body")),
		Signature: w.signature(node),
	})
}

func (w *walker) class(node *sitter.Node, prefix string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	name := prefix + nameNode.Content(w.source)
	body := node.ChildByFieldName("body")

	w.symbols = append(w.symbols, Symbol{
		Name:      name,
		Kind:      KindClass,
		Line:      int(node.StartPoint().Row) + 1,
		Docstring: w.docOf(body),
	})

	if body != nil {
		w.walkBody(body, name+".", true)
	}
}

// docOf returns the cleaned docstring of a module or block: its first
// statement, when that statement is a lone string literal.
func (w *walker) docOf(body *sitter.Node) string {
	if body == nil {
		return ""
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt.Type() == "comment" {
			continue
		}
		if stmt.Type() != "expression_statement" || stmt.NamedChildCount() != 1 {
			return ""
		}
		literal := stmt.NamedChild(0)
		if literal.Type() != "string" {
			return ""
		}
		return docstring.CleanDoc(unquote(literal.Content(w.source)))
	}

	return ""
}
