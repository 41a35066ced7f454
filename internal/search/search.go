package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/oops"

	"github.com/g5becks/docsect/internal/docstring"
	"github.com/g5becks/docsect/internal/manifest"
)

// Result is the best match found for one symbol.
type Result struct {
	Source     string `json:"source"`
	Path       string `json:"path"`
	Symbol     string `json:"symbol"`
	Kind       string `json:"kind"`
	Line       int    `json:"line"`
	Summary    string `json:"summary,omitempty"`
	MatchField string `json:"match_field"`
	MatchValue string `json:"match_value"`
	Score      int    `json:"score"`
}

type Options struct {
	Query  string
	Source string
	Limit  int
}

type indexEntry struct {
	Source     string
	Path       string
	Symbol     string
	Kind       string
	Line       int
	Summary    string
	MatchField string
	MatchValue string
}

type searchIndex struct {
	entries []indexEntry
}

func (s searchIndex) String(i int) string {
	return s.entries[i].MatchValue
}

func (s searchIndex) Len() int {
	return len(s.entries)
}

// Symbols fuzzy matches the query against symbol names, summaries and
// documented parameter names.
func Symbols(m *manifest.Manifest, opts Options) ([]Result, error) {
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

	index := buildIndex(m, opts.Source)
	matches := fuzzy.FindFrom(query, index)

	deduped := make(map[string]Result)
	for _, match := range matches {
		if match.Score < 0 {
			continue
		}
		entry := index.entries[match.Index]
		key := entry.Source + "\x00" + entry.Path + "\x00" + entry.Symbol

		if existing, exists := deduped[key]; !exists || match.Score > existing.Score {
			deduped[key] = Result{
				Source:     entry.Source,
				Path:       entry.Path,
				Symbol:     entry.Symbol,
				Kind:       entry.Kind,
				Line:       entry.Line,
				Summary:    entry.Summary,
				MatchField: entry.MatchField,
				MatchValue: entry.MatchValue,
				Score:      match.Score,
			}
		}
	}

	results := make([]Result, 0, len(deduped))
	for _, result := range deduped {
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Source != results[j].Source {
			return results[i].Source < results[j].Source
		}
		if results[i].Path != results[j].Path {
			return results[i].Path < results[j].Path
		}
		return results[i].Symbol < results[j].Symbol
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results, nil
}

func buildIndex(m *manifest.Manifest, only string) searchIndex {
	var entries []indexEntry

	for _, name := range m.SourceNames() {
		if only != "" && name != only {
			continue
		}

		for _, file := range m.Sources[name].Files {
			for i := range file.Symbols {
				sym := &file.Symbols[i]
				base := indexEntry{
					Source:  name,
					Path:    file.Path,
					Symbol:  manifest.QualifiedName(file.Module, sym),
					Kind:    string(sym.Kind),
					Line:    sym.Line,
					Summary: sym.Summary(),
				}

				entries = append(entries, withMatch(base, "name", base.Symbol))

				if base.Summary != "" {
					entries = append(entries, withMatch(base, "summary", base.Summary))
				}

				for _, section := range sym.Sections {
					if section.Kind != docstring.SectionParameters {
						continue
					}
					for _, param := range section.Parameters {
						entries = append(entries, withMatch(base, "parameter", param.Name))
					}
				}
			}
		}
	}

	return searchIndex{entries: entries}
}

func withMatch(entry indexEntry, field, value string) indexEntry {
	entry.MatchField = field
	entry.MatchValue = value
	return entry
}

func checkSource(m *manifest.Manifest, source string) error {
	if source == "" {
		return nil
	}

	if _, exists := m.Sources[source]; !exists {
		return oops.
			Code("SOURCE_NOT_FOUND").
			With("source", source).
			Hint("Available sources: "+strings.Join(m.SourceNames(), ", ")).
			Errorf("source %q not found", source)
	}

	return nil
}
