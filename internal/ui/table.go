package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/oops"

	"github.com/g5becks/docsect/internal/docstring"
)

// SymbolRow is one line of a symbol listing.
type SymbolRow struct {
	Symbol      string `json:"symbol"`
	Kind        string `json:"kind"`
	Path        string `json:"path,omitempty"`
	Line        int    `json:"line"`
	Summary     string `json:"summary,omitempty"`
	Diagnostics int    `json:"diagnostics"`
}

func newTable(w io.Writer) table.Writer {
	writer := table.NewWriter()
	writer.SetOutputMirror(w)
	writer.SetStyle(table.StyleRounded)
	return writer
}

// RenderSections prints one row per markdown run, parameter, exception and
// return value.
func RenderSections(w io.Writer, sections []docstring.Section, descLength int) {
	writer := newTable(w)
	writer.AppendHeader(table.Row{"SECTION", "NAME", "TYPE", "DEFAULT", "DESCRIPTION"})

	for _, section := range sections {
		switch section.Kind {
		case docstring.SectionMarkdown:
			writer.AppendRow(table.Row{section.Kind, "", "", "", Truncate(section.Text, descLength)})

		case docstring.SectionParameters:
			for _, p := range section.Parameters {
				def := ""
				if p.Default != nil {
					def = *p.Default
				}
				writer.AppendRow(table.Row{"parameter", p.Name, p.Annotation, def, Truncate(p.Description, descLength)})
			}

		case docstring.SectionExceptions:
			for _, e := range section.Exceptions {
				writer.AppendRow(table.Row{"exception", "", e.Annotation, "", Truncate(e.Description, descLength)})
			}

		case docstring.SectionReturn:
			if section.Return != nil {
				writer.AppendRow(table.Row{"return", "", section.Return.Annotation, "", Truncate(section.Return.Description, descLength)})
			}
		}
	}

	writer.Render()
}

// RenderSymbols prints a symbol listing, one row per symbol.
func RenderSymbols(w io.Writer, rows []SymbolRow, descLength int) {
	writer := newTable(w)
	writer.AppendHeader(table.Row{"SYMBOL", "KIND", "LOCATION", "DIAGNOSTICS", "SUMMARY"})

	for _, row := range rows {
		writer.AppendRow(table.Row{
			row.Symbol,
			row.Kind,
			RenderLocation(row.Path, row.Line),
			row.Diagnostics,
			Truncate(row.Summary, descLength),
		})
	}

	writer.Render()
}

// RenderLocation formats path:line, leaving out whichever part is unknown.
func RenderLocation(path string, line int) string {
	switch {
	case path == "" && line <= 0:
		return ""
	case path == "":
		return fmt.Sprintf("line %d", line)
	case line <= 0:
		return path
	default:
		return fmt.Sprintf("%s:%d", path, line)
	}
}

// Truncate shortens text to maxLen bytes with an ellipsis. A non-positive
// maxLen keeps the text whole.
func Truncate(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if maxLen <= 0 || len(text) <= maxLen {
		return text
	}
	const ellipsis = "..."
	if maxLen <= len(ellipsis) {
		return ellipsis
	}
	return text[:maxLen-len(ellipsis)] + ellipsis
}

func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return oops.Code("JSON_ERROR").Wrapf(err, "encoding output")
	}

	return nil
}
