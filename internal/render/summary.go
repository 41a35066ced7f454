package render

import (
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Summary returns the text of the first paragraph of a Markdown document with
// its whitespace collapsed.
func Summary(text string) string {
	var summary string

	ast.WalkFunc(parse(text), func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}

		if para, ok := node.(*ast.Paragraph); ok {
			if summary = extractText(para); summary != "" {
				return ast.Terminate
			}
		}

		return ast.GoToNext
	})

	return summary
}

// Headings lists the headings of a Markdown document in order.
func Headings(text string) []Heading {
	var headings []Heading

	ast.WalkFunc(parse(text), func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}

		if heading, ok := node.(*ast.Heading); ok {
			if title := extractText(heading); title != "" {
				headings = append(headings, Heading{Level: heading.Level, Text: title})
			}
			return ast.SkipChildren
		}

		return ast.GoToNext
	})

	return headings
}

func parse(text string) ast.Node {
	return parser.NewWithExtensions(parser.CommonExtensions).Parse([]byte(text))
}

func extractText(node ast.Node) string {
	var buf strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}

		switch leaf := n.(type) {
		case *ast.Text:
			buf.Write(leaf.Literal)
		case *ast.Code:
			buf.Write(leaf.Literal)
		case *ast.Softbreak, *ast.Hardbreak:
			buf.WriteByte(' ')
		}
		return ast.GoToNext
	})

	return strings.Join(strings.Fields(buf.String()), " ")
}
