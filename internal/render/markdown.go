package render

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/g5becks/docsect/internal/docstring"
)

// Markdown renders the sections of one symbol. Markdown sections are copied
// verbatim; the structured ones become tables or a paragraph.
func Markdown(title string, sections []docstring.Section) string {
	var b strings.Builder

	if title != "" {
		b.WriteString("## `" + title + "`\n")
	}

	for _, section := range sections {
		block := renderSection(section)
		if block == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(block)
		b.WriteString("\n")
	}

	return b.String()
}

// HTML converts Markdown to an HTML fragment.
func HTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})

	return string(markdown.ToHTML([]byte(md), p, renderer))
}

func renderSection(section docstring.Section) string {
	switch section.Kind {
	case docstring.SectionMarkdown:
		return section.Text

	case docstring.SectionParameters:
		t := table.NewWriter()
		t.AppendHeader(table.Row{"Name", "Type", "Description", "Default"})
		for _, p := range section.Parameters {
			t.AppendRow(table.Row{code(p.Name), code(p.Annotation), cell(p.Description), codePtr(p.Default)})
		}
		return "**Parameters:**\n\n" + t.RenderMarkdown()

	case docstring.SectionExceptions:
		t := table.NewWriter()
		t.AppendHeader(table.Row{"Type", "Description"})
		for _, e := range section.Exceptions {
			t.AppendRow(table.Row{code(e.Annotation), cell(e.Description)})
		}
		return "**Exceptions:**\n\n" + t.RenderMarkdown()

	case docstring.SectionReturn:
		if section.Return == nil {
			return ""
		}
		if section.Return.Annotation == "" {
			return "**Returns:** " + section.Return.Description
		}
		return "**Returns:** " + code(section.Return.Annotation) + ": " + section.Return.Description

	default:
		return ""
	}
}

// cell keeps multi-line descriptions on one table row.
func cell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func code(s string) string {
	if s == "" {
		return ""
	}
	return "`" + s + "`"
}

func codePtr(s *string) string {
	if s == nil {
		return ""
	}
	return code(*s)
}
