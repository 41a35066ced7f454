package search

import (
	"regexp"
	"strings"

	"github.com/samber/oops"

	"github.com/g5becks/docsect/internal/docstring"
	"github.com/g5becks/docsect/internal/manifest"
)

// ContentResult is one docstring line that matched a content search.
type ContentResult struct {
	Source  string                `json:"source"`
	Path    string                `json:"path"`
	Symbol  string                `json:"symbol"`
	Line    int                   `json:"line"`
	Section docstring.SectionKind `json:"section"`
	Text    string                `json:"text"`
}

type ContentOptions struct {
	Query    string
	Source   string
	UseRegex bool
	Limit    int
}

// Content searches the parsed docstring text of every symbol. Literal queries
// and regular expressions are both matched case-insensitively.
func Content(m *manifest.Manifest, opts ContentOptions) ([]ContentResult, error) {
	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return nil, oops.
			Code("INVALID_ARGS").
			Hint("Provide a non-empty search query").
			Errorf("search query cannot be empty")
	}

	if err := checkSource(m, opts.Source); err != nil {
		return nil, err
	}

	match, err := newMatcher(query, opts.UseRegex)
	if err != nil {
		return nil, err
	}

	var results []ContentResult
	for _, name := range m.SourceNames() {
		if opts.Source != "" && name != opts.Source {
			continue
		}

		for _, file := range m.Sources[name].Files {
			for i := range file.Symbols {
				sym := &file.Symbols[i]
				qualified := manifest.QualifiedName(file.Module, sym)

				for _, section := range sym.Sections {
					for _, text := range sectionLines(section) {
						if !match(text) {
							continue
						}

						results = append(results, ContentResult{
							Source:  name,
							Path:    file.Path,
							Symbol:  qualified,
							Line:    sym.Line,
							Section: section.Kind,
							Text:    text,
						})

						if opts.Limit > 0 && len(results) >= opts.Limit {
							return results, nil
						}
					}
				}
			}
		}
	}

	return results, nil
}

func newMatcher(query string, useRegex bool) (func(string) bool, error) {
	if !useRegex {
		needle := strings.ToLower(query)
		return func(text string) bool {
			return strings.Contains(strings.ToLower(text), needle)
		}, nil
	}

	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		return nil, oops.
			Code("INVALID_ARGS").
			With("pattern", query).
			Hint("Check the regular expression syntax").
			Wrapf(err, "compiling search pattern")
	}

	return re.MatchString, nil
}

// sectionLines flattens a section into the lines a reader would see.
func sectionLines(section docstring.Section) []string {
	var lines []string

	switch section.Kind {
	case docstring.SectionMarkdown:
		for line := range strings.SplitSeq(section.Text, "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
	case docstring.SectionParameters:
		for _, p := range section.Parameters {
			lines = append(lines, p.Name+": "+p.Description)
		}
	case docstring.SectionExceptions:
		for _, e := range section.Exceptions {
			lines = append(lines, e.Annotation+": "+e.Description)
		}
	case docstring.SectionReturn:
		if section.Return != nil {
			lines = append(lines, section.Return.Description)
		}
	}

	return lines
}
