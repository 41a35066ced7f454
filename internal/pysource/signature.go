package pysource

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/g5becks/docsect/internal/docstring"
)

// signature builds the descriptor of a function_definition node from its
// parameter list and return annotation.
func (w *walker) signature(fn *sitter.Node) *docstring.Signature {
	sig := &docstring.Signature{Parameters: map[string]docstring.SignatureParameter{}}

	if ret := fn.ChildByFieldName("return_type"); ret != nil {
		sig.ReturnAnnotation = ret.Content(w.source)
	}

	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return sig
	}

	var order []string
	keywordOnly := false

	for i := 0; i < int(params.NamedChildCount()); i++ {
		node := params.NamedChild(i)

		switch node.Type() {
		case "positional_separator":
			for _, name := range order {
				p := sig.Parameters[name]
				if p.Kind == docstring.KindPositionalOrKeyword {
					p.Kind = docstring.KindPositionalOnly
					sig.Parameters[name] = p
				}
			}
			continue
		case "keyword_separator":
			keywordOnly = true
			continue
		}

		name, param, ok := w.parameter(node)
		if !ok {
			continue
		}

		switch {
		case param.Kind == docstring.KindVarPositional:
			keywordOnly = true
		case param.Kind == docstring.KindVarKeyword:
		case keywordOnly:
			param.Kind = docstring.KindKeywordOnly
		default:
			param.Kind = docstring.KindPositionalOrKeyword
		}

		sig.Parameters[name] = param
		order = append(order, name)
	}

	return sig
}

// parameter reads one entry of a parameters node. Splat entries come back
// with their var kind already set; everything else is left for the caller.
func (w *walker) parameter(node *sitter.Node) (string, docstring.SignatureParameter, bool) {
	var param docstring.SignatureParameter

	switch node.Type() {
	case "identifier":
		return node.Content(w.source), param, true

	case "list_splat_pattern", "dictionary_splat_pattern":
		return w.splat(node, param)

	case "typed_parameter":
		if typ := node.ChildByFieldName("type"); typ != nil {
			param.Annotation = typ.Content(w.source)
		}
		target := node.NamedChild(0)
		if target == nil {
			return "", param, false
		}
		if target.Type() == "identifier" {
			return target.Content(w.source), param, true
		}
		return w.splat(target, param)

	case "default_parameter", "typed_default_parameter":
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil || nameNode.Type() != "identifier" {
			return "", param, false
		}
		if typ := node.ChildByFieldName("type"); typ != nil {
			param.Annotation = typ.Content(w.source)
		}
		if value := node.ChildByFieldName("value"); value != nil {
			def := value.Content(w.source)
			param.Default = &def
		}
		return nameNode.Content(w.source), param, true

	default:
		return "", param, false
	}
}

func (w *walker) splat(node *sitter.Node, param docstring.SignatureParameter) (string, docstring.SignatureParameter, bool) {
	name := strings.TrimLeft(node.Content(w.source), "*")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", param, false
	}

	switch node.Type() {
	case "list_splat_pattern":
		param.Kind = docstring.KindVarPositional
	case "dictionary_splat_pattern":
		param.Kind = docstring.KindVarKeyword
	default:
		return "", param, false
	}

	return name, param, true
}
