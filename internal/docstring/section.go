package docstring

// SectionKind identifies the payload carried by a Section.
type SectionKind string

const (
	SectionMarkdown   SectionKind = "markdown"
	SectionParameters SectionKind = "parameters"
	SectionExceptions SectionKind = "exceptions"
	SectionReturn     SectionKind = "return"
)

// Section is one classified span of a docstring. Exactly one payload field
// is set, selected by Kind.
type Section struct {
	Kind       SectionKind     `json:"kind"`
	Text       string          `json:"text,omitempty"`
	Parameters []Parameter     `json:"parameters,omitempty"`
	Exceptions []AnnotatedItem `json:"exceptions,omitempty"`
	Return     *AnnotatedItem  `json:"return,omitempty"`
}

type ParameterKind string

const (
	KindUnknown             ParameterKind = ""
	KindPositionalOnly      ParameterKind = "positional"
	KindPositionalOrKeyword ParameterKind = "positional-or-keyword"
	KindVarPositional       ParameterKind = "var-positional"
	KindKeywordOnly         ParameterKind = "keyword-only"
	KindVarKeyword          ParameterKind = "var-keyword"
)

// Parameter is one documented parameter. An empty Annotation means no type
// could be resolved; a nil Default means the parameter has no default.
type Parameter struct {
	Name        string        `json:"name"`
	Annotation  string        `json:"annotation,omitempty"`
	Description string        `json:"description"`
	Default     *string       `json:"default,omitempty"`
	Kind        ParameterKind `json:"kind,omitempty"`
}

// AnnotatedItem is an exception entry or a return description.
type AnnotatedItem struct {
	Annotation  string `json:"annotation,omitempty"`
	Description string `json:"description"`
}

// Signature is read-only metadata about a callable, keyed by parameter name
// without any leading star markers.
type Signature struct {
	Parameters       map[string]SignatureParameter `json:"parameters,omitempty"`
	ReturnAnnotation string                        `json:"return_annotation,omitempty"`
}

type SignatureParameter struct {
	Annotation string        `json:"annotation,omitempty"`
	Default    *string       `json:"default,omitempty"`
	Kind       ParameterKind `json:"kind,omitempty"`
}

// Lookup returns the signature entry for name, ignoring leading '*' markers.
func (s *Signature) Lookup(name string) (SignatureParameter, bool) {
	if s == nil || s.Parameters == nil {
		return SignatureParameter{}, false
	}
	param, ok := s.Parameters[trimStars(name)]
	return param, ok
}

func trimStars(name string) string {
	for len(name) > 0 && name[0] == '*' {
		name = name[1:]
	}
	return name
}

// ValidKind reports whether k is one of the known parameter kinds or unknown.
func ValidKind(k ParameterKind) bool {
	switch k {
	case KindUnknown, KindPositionalOnly, KindPositionalOrKeyword,
		KindVarPositional, KindKeywordOnly, KindVarKeyword:
		return true
	default:
		return false
	}
}
