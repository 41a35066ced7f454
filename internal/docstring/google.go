package docstring

import (
	"strings"
	"unicode"
)

// Google implements the Google docstring convention.
type Google struct{}

func (Google) Name() string {
	return "google"
}

// SectionTitle matches a whole line against the title synonyms,
// ignoring case and trailing whitespace. Indented titles do not match.
func (Google) SectionTitle(line string) (SectionKind, bool) {
	switch strings.ToLower(strings.TrimRightFunc(line, unicode.IsSpace)) {
	case "args:", "arguments:", "params:", "parameters:":
		return SectionParameters, true
	case "raise:", "raises:", "except:", "exceptions:":
		return SectionExceptions, true
	case "return:", "returns:":
		return SectionReturn, true
	default:
		return "", false
	}
}

func (g Google) ReadSection(st *State, kind SectionKind, start int) (*Section, int) {
	switch kind {
	case SectionParameters:
		return g.readParameters(st, start)
	case SectionExceptions:
		return g.readExceptions(st, start)
	case SectionReturn:
		return g.readReturn(st, start)
	default:
		return nil, start - 1
	}
}

func (Google) RewriteAdmonition(line, next string) (string, bool) {
	return rewriteAdmonition(line, next)
}

func (Google) readParameters(st *State, start int) (*Section, int) {
	items, end := ReadBlockItems(st.Lines, start, st.Log)

	var params []Parameter
	for _, item := range items {
		nameWithType, description, found := strings.Cut(item, ":")
		if !found {
			st.Log.Errorf("Failed to get 'name: description' pair from '%s'", item)
			continue
		}

		name, annotation := nameWithType, ""
		if n, typ, hasType := strings.Cut(nameWithType, " "); hasType {
			name = n
			annotation = strings.Trim(strings.TrimSpace(typ), "()")
			annotation = strings.TrimSuffix(annotation, ", optional")
		}

		param := Parameter{
			Name:        name,
			Annotation:  annotation,
			Description: strings.TrimLeftFunc(description, unicode.IsSpace),
		}

		if sigParam, ok := st.Signature.Lookup(name); ok {
			if sigParam.Annotation != "" {
				param.Annotation = sigParam.Annotation
			}
			if sigParam.Default != nil {
				value := *sigParam.Default
				param.Default = &value
			}
			param.Kind = sigParam.Kind
		} else {
			st.Log.Errorf("No type annotation for parameter '%s'", name)
		}

		params = append(params, param)
	}

	if len(params) == 0 {
		st.Log.Errorf("Empty parameters section at line %d", start)
		return nil, end
	}

	return &Section{Kind: SectionParameters, Parameters: params}, end
}

func (Google) readExceptions(st *State, start int) (*Section, int) {
	items, end := ReadBlockItems(st.Lines, start, st.Log)

	var exceptions []AnnotatedItem
	for _, item := range items {
		annotation, description, found := strings.Cut(item, ": ")
		if !found {
			st.Log.Errorf("Failed to get 'exception: description' pair from '%s'", item)
			continue
		}
		exceptions = append(exceptions, AnnotatedItem{
			Annotation:  annotation,
			Description: strings.TrimLeft(description, " "),
		})
	}

	if len(exceptions) == 0 {
		st.Log.Errorf("Empty exceptions section at line %d", start)
		return nil, end
	}

	return &Section{Kind: SectionExceptions, Exceptions: exceptions}, end
}

// readReturn prefers the signature's return annotation, then the declared
// return type, then a "type: description" prefix in the text itself.
func (Google) readReturn(st *State, start int) (*Section, int) {
	text, end := ReadBlock(st.Lines, start)

	annotation := st.ReturnType
	if st.Signature != nil {
		annotation = st.Signature.ReturnAnnotation
	}

	if annotation == "" {
		if text == "" {
			st.Log.Errorf("No return type annotation")
		} else if typ, rest, found := strings.Cut(text, ":"); found {
			annotation = strings.TrimLeftFunc(typ, unicode.IsSpace)
			text = strings.TrimLeftFunc(rest, unicode.IsSpace)
		} else {
			st.Log.Errorf("No type in return description")
		}
	}

	if annotation == "" && text == "" {
		st.Log.Errorf("Empty return section at line %d", start)
		return nil, end
	}

	return &Section{
		Kind:   SectionReturn,
		Return: &AnnotatedItem{Annotation: annotation, Description: text},
	}, end
}
