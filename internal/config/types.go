package config

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"

	"github.com/g5becks/docsect/internal/docstring"
)

const (
	DefaultOutput   = ".docsect"
	DefaultParallel = 4
	ManifestFile    = "manifest.json"
)

func DefaultPatterns() []string {
	return []string{"**/*.py"}
}

type Config struct {
	Output             string            `koanf:"output"`
	Dialect            string            `koanf:"dialect"             validate:"dialect"`
	ReplaceAdmonitions *bool             `koanf:"replace_admonitions"`
	Parallel           int               `koanf:"parallel"            validate:"min=1"`
	Sources            map[string]Source `koanf:"sources"`
	ConfigDir          string            `koanf:"-"`

	parser *docstring.Parser
}

type Source struct {
	Path     string   `koanf:"path"     validate:"required"`
	Patterns []string `koanf:"patterns" validate:"dive,required"`
	Exclude  []string `koanf:"exclude"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("dialect", func(fl validator.FieldLevel) bool {
		return slices.Contains(docstring.Dialects(), fl.Field().String())
	})

	return v
}

// Admonitions reports whether admonition rewriting is on. It defaults to true
// when the key is absent.
func (c *Config) Admonitions() bool {
	return c.ReplaceAdmonitions == nil || *c.ReplaceAdmonitions
}

// Parser returns the docstring parser selected by Dialect and
// ReplaceAdmonitions. It is built on first use and reused afterwards; Load
// builds it so an unusable dialect fails there.
func (c *Config) Parser() (*docstring.Parser, error) {
	if c.parser != nil {
		return c.parser, nil
	}

	dialect, err := docstring.NewDialect(c.Dialect)
	if err != nil {
		return nil, err
	}

	c.parser = docstring.NewParser(dialect, c.Admonitions())
	return c.parser, nil
}

func (c *Config) ApplyDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}

	if c.Dialect == "" {
		c.Dialect = docstring.DefaultDialect
	}

	if c.Parallel == 0 {
		c.Parallel = DefaultParallel
	}

	for name, src := range c.Sources {
		if len(src.Patterns) == 0 {
			src.Patterns = DefaultPatterns()
		}

		c.Sources[name] = src
	}
}

func (c *Config) Validate() error {
	v := newValidator()

	if len(c.Sources) == 0 {
		return oops.
			Code("CONFIG_INVALID").
			With("field", "sources").
			Hint("Add at least one [sources.<name>] table with a path").
			Errorf("no sources configured")
	}

	if valErr := v.StructExcept(c, "Sources"); valErr != nil {
		return mapValidationError("", c, valErr)
	}

	names := make([]string, 0, len(c.Sources))
	for name := range c.Sources {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if valErr := v.Struct(c.Sources[name]); valErr != nil {
			return mapValidationError(name, c, valErr)
		}
	}

	return nil
}

func mapValidationError(sourceName string, c *Config, valErr error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(valErr, &validationErrors) || len(validationErrors) == 0 {
		return oops.
			Code("CONFIG_INVALID").
			With("source", sourceName).
			Wrapf(valErr, "validating config")
	}

	fe := validationErrors[0]
	field := strings.ToLower(fe.Field())

	switch {
	case fe.Tag() == "dialect":
		return oops.
			Code("UNKNOWN_DIALECT").
			With("dialect", c.Dialect).
			Hint("Supported dialects: "+strings.Join(docstring.Dialects(), ", ")).
			Errorf("unknown docstring dialect %q", c.Dialect)

	case field == "parallel":
		return oops.
			Code("CONFIG_INVALID").
			With("field", "parallel").
			With("value", c.Parallel).
			Hint("Set parallel to a positive number of workers").
			Errorf("invalid parallel value %d", c.Parallel)

	case fe.Tag() == "required" && field == "path":
		return oops.
			Code("CONFIG_INVALID").
			With("source", sourceName).
			With("field", "path").
			Hint("Set path to the directory holding the Python package").
			Errorf("missing 'path' for source %q", sourceName)

	case strings.HasPrefix(field, "patterns"):
		return oops.
			Code("CONFIG_INVALID").
			With("source", sourceName).
			With("field", "patterns").
			Hint("Remove empty entries from patterns").
			Errorf("empty pattern in source %q", sourceName)

	default:
		return oops.
			Code("CONFIG_INVALID").
			With("source", sourceName).
			With("field", field).
			With("tag", fe.Tag()).
			Errorf("validation failed for field %q", field)
	}
}

// SourceRoot resolves a source path against the config directory.
func (c *Config) SourceRoot(src Source) string {
	if filepath.IsAbs(src.Path) {
		return filepath.Clean(src.Path)
	}

	return filepath.Join(c.ConfigDir, src.Path)
}

func (c *Config) ManifestPath() string {
	return filepath.Join(c.Output, ManifestFile)
}
