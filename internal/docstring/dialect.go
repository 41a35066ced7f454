package docstring

import (
	"maps"
	"slices"
	"strings"

	"github.com/samber/oops"
)

// State is the per-parse data a Dialect reads sections from. Lines is the
// split docstring; Log receives diagnostics for this parse only.
type State struct {
	Lines      []string
	Signature  *Signature
	ReturnType string
	Log        *ErrorLog
}

// Dialect is one docstring convention. The scanner owns the line loop and
// code fences; a dialect recognizes section titles, reads the section body
// that follows one, and rewrites admonition lines.
type Dialect interface {
	Name() string

	// SectionTitle reports whether line opens a structured section.
	SectionTitle(line string) (SectionKind, bool)

	// ReadSection reads the body of a section of the given kind starting at
	// line index start. It returns the section, or nil when nothing usable
	// was found, and the index of the last consumed line.
	ReadSection(st *State, kind SectionKind, start int) (*Section, int)

	// RewriteAdmonition returns the replacement for line when it opens an
	// admonition, given the line that follows it.
	RewriteAdmonition(line, next string) (string, bool)
}

const DefaultDialect = "google"

// dialects maps each dialect name to its constructor. It is the only place a
// new convention needs registering.
//
//nolint:gochecknoglobals // Read-only registry.
var dialects = map[string]func() Dialect{
	"google": func() Dialect { return Google{} },
}

// NewDialect returns the dialect registered under name. An empty name selects
// DefaultDialect.
func NewDialect(name string) (Dialect, error) {
	if name == "" {
		name = DefaultDialect
	}

	newDialect, ok := dialects[name]
	if !ok {
		return nil, oops.
			Code("UNKNOWN_DIALECT").
			With("dialect", name).
			Hint("Supported dialects: " + strings.Join(Dialects(), ", ")).
			Errorf("unknown docstring dialect %q", name)
	}

	return newDialect(), nil
}

// Dialects lists the registered dialect names in sorted order.
func Dialects() []string {
	return slices.Sorted(maps.Keys(dialects))
}
