package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"

	"github.com/g5becks/docsect/internal/docstring"
)

type signatureFile struct {
	Return     string                    `koanf:"return"`
	Parameters map[string]signatureParam `koanf:"parameters"`
}

type signatureParam struct {
	Annotation string  `koanf:"annotation"`
	Default    *string `koanf:"default"`
	Kind       string  `koanf:"kind"`
}

// LoadSignature reads a callable descriptor from a TOML file:
//
//	return = "bool"
//
//	[parameters.x]
//	annotation = "int"
//	default = "0"
//	kind = "keyword-only"
func LoadSignature(path string) (*docstring.Signature, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, oops.Wrapf(err, "resolving absolute signature path")
	}

	k := koanf.New(".")
	if loadErr := k.Load(file.Provider(absPath), toml.Parser()); loadErr != nil {
		return nil, oops.
			Code("SIGNATURE_INVALID").
			With("path", absPath).
			Hint("Check the file exists and is valid TOML").
			Wrapf(loadErr, "loading signature from %q", absPath)
	}

	var raw signatureFile
	if unmarshalErr := k.Unmarshal("", &raw); unmarshalErr != nil {
		return nil, oops.
			Code("SIGNATURE_INVALID").
			With("path", absPath).
			Wrapf(unmarshalErr, "decoding signature from %q", absPath)
	}

	sig := &docstring.Signature{
		Parameters:       make(map[string]docstring.SignatureParameter, len(raw.Parameters)),
		ReturnAnnotation: raw.Return,
	}

	for name, p := range raw.Parameters {
		kind := docstring.ParameterKind(p.Kind)
		if !docstring.ValidKind(kind) {
			return nil, oops.
				Code("SIGNATURE_INVALID").
				With("path", absPath).
				With("parameter", name).
				With("kind", p.Kind).
				Hint("Valid kinds: " + joinKinds()).
				Errorf("unknown kind %q for parameter %q", p.Kind, name)
		}

		sig.Parameters[name] = docstring.SignatureParameter{
			Annotation: p.Annotation,
			Default:    p.Default,
			Kind:       kind,
		}
	}

	return sig, nil
}

func joinKinds() string {
	kinds := []string{
		string(docstring.KindPositionalOnly),
		string(docstring.KindPositionalOrKeyword),
		string(docstring.KindVarPositional),
		string(docstring.KindKeywordOnly),
		string(docstring.KindVarKeyword),
	}
	slices.Sort(kinds)

	return strings.Join(kinds, ", ")
}
