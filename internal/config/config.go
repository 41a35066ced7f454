package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
)

// configNames are tried in order in each directory searched.
//
//nolint:gochecknoglobals // Read-only list.
var configNames = []string{"docsect.toml", ".docsect.toml"}

// Load reads a config file, applies defaults, validates it and resolves the
// docstring parser it selects. An empty path searches the working directory
// and its parents. Relative output and source paths are anchored at the
// directory holding the file.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		found, err := FindConfigFile()
		if err != nil {
			return nil, err
		}
		configPath = found
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, oops.Wrapf(err, "resolving absolute config path")
	}

	if _, statErr := os.Stat(absPath); errors.Is(statErr, os.ErrNotExist) {
		return nil, oops.
			Code("CONFIG_NOT_FOUND").
			With("path", configPath).
			Hint("Create the file or pass a valid --config path").
			Errorf("config file %q does not exist", configPath)
	}

	k := koanf.New(".")
	if loadErr := k.Load(file.Provider(absPath), toml.Parser()); loadErr != nil {
		return nil, oops.
			Code("CONFIG_INVALID").
			With("path", absPath).
			Hint("Fix TOML syntax in your config").
			Wrapf(loadErr, "loading config from %q", absPath)
	}

	cfg := &Config{}
	if unmarshalErr := k.Unmarshal("", cfg); unmarshalErr != nil {
		return nil, oops.
			Code("CONFIG_INVALID").
			With("path", absPath).
			Hint("Fix config structure to match the docsect schema").
			Wrapf(unmarshalErr, "decoding config from %q", absPath)
	}

	cfg.ConfigDir = filepath.Dir(absPath)
	cfg.ApplyDefaults()

	if valErr := cfg.Validate(); valErr != nil {
		return nil, valErr
	}

	if _, parserErr := cfg.Parser(); parserErr != nil {
		return nil, parserErr
	}

	if !filepath.IsAbs(cfg.Output) {
		cfg.Output = filepath.Join(cfg.ConfigDir, cfg.Output)
	}

	return cfg, nil
}

// FindConfigFile returns the first config file found in the working
// directory or one of its parents.
func FindConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", oops.Wrapf(err, "getting working directory")
	}

	for ; ; dir = filepath.Dir(dir) {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			info, statErr := os.Stat(path)
			switch {
			case statErr == nil && !info.IsDir():
				return path, nil
			case statErr != nil && !errors.Is(statErr, os.ErrNotExist):
				return "", oops.Wrapf(statErr, "checking for config file at %q", path)
			}
		}

		if filepath.Dir(dir) == dir {
			return "", oops.
				Code("CONFIG_NOT_FOUND").
				Hint("Run 'docsect init' to create a config file").
				Errorf("no %s found in any parent directory", strings.Join(configNames, " or "))
		}
	}
}

// StarterConfig is the file written by the init command.
const StarterConfig = `# docsect configuration

output = ".docsect"
dialect = "google"
replace_admonitions = true
parallel = 4

[sources.app]
path = "src/app"
patterns = ["**/*.py"]
exclude = ["**/tests/**"]
`

// WriteStarter writes StarterConfig to path. An existing file is kept unless
// force is set.
func WriteStarter(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return oops.
				Code("CONFIG_EXISTS").
				With("path", path).
				Hint("Pass --force to overwrite it").
				Errorf("config file %q already exists", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return oops.Wrapf(err, "checking config file %q", path)
		}
	}

	if err := os.WriteFile(path, []byte(StarterConfig), 0o644); err != nil {
		return oops.
			Code("CONFIG_WRITE_ERROR").
			With("path", path).
			Wrapf(err, "writing config file %q", path)
	}

	return nil
}
