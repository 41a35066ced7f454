package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/g5becks/docsect/internal/docstring"
	"github.com/g5becks/docsect/internal/pysource"
	"github.com/g5becks/docsect/internal/render"
)

const (
	CurrentVersion = "1.0.0"
	ManifestFile   = "manifest.json"
)

type Manifest struct {
	Version   string             `json:"version"`
	Generated time.Time          `json:"generated"`
	Dialect   string             `json:"dialect"`
	Sources   map[string]*Source `json:"sources"`
}

type Source struct {
	Name        string     `json:"name"`
	Root        string     `json:"root"`
	FileCount   int        `json:"file_count"`
	SymbolCount int        `json:"symbol_count"`
	ErrorCount  int        `json:"error_count"`
	Failed      int        `json:"failed,omitempty"`
	Files       []FileInfo `json:"files"`
}

type FileInfo struct {
	Path        string   `json:"path"`
	Module      string   `json:"module"`
	Lines       int      `json:"lines"`
	Description string   `json:"description"`
	Symbols     []Symbol `json:"symbols"`
}

// Symbol is a parsed definition. Errors holds the diagnostics of its
// docstring parse, in the order they were logged.
type Symbol struct {
	Name      string               `json:"name"`
	Kind      pysource.SymbolKind  `json:"kind"`
	Line      int                  `json:"line"`
	Signature *docstring.Signature `json:"signature,omitempty"`
	Sections  []docstring.Section  `json:"sections"`
	Errors    []string             `json:"errors,omitempty"`
}

// Summary returns the first paragraph of the symbol's leading markdown
// section.
func (s Symbol) Summary() string {
	if len(s.Sections) == 0 || s.Sections[0].Kind != docstring.SectionMarkdown {
		return ""
	}

	return render.Summary(s.Sections[0].Text)
}

func New() *Manifest {
	return &Manifest{
		Version:   CurrentVersion,
		Generated: time.Now(),
		Sources:   make(map[string]*Source),
	}
}

func Load(outputDir string) (*Manifest, error) {
	manifestPath := Path(outputDir)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, oops.
				Code("MANIFEST_NOT_FOUND").
				With("path", manifestPath).
				Hint("Run 'docsect generate' to build the manifest").
				Errorf("manifest not found at %q", manifestPath)
		}

		return nil, oops.
			Code("MANIFEST_READ_ERROR").
			With("path", manifestPath).
			Wrapf(err, "reading manifest file")
	}

	m := &Manifest{}
	if unmarshalErr := json.Unmarshal(data, m); unmarshalErr != nil {
		return nil, oops.
			Code("MANIFEST_CORRUPTED").
			With("path", manifestPath).
			Hint("Delete .docsect/manifest.json and run 'docsect generate'").
			Wrapf(unmarshalErr, "parsing manifest file")
	}

	if m.Sources == nil {
		m.Sources = make(map[string]*Source)
	}

	return m, nil
}

// Save writes the manifest through a temporary file so readers never see a
// partial document.
func (m *Manifest) Save(outputDir string) error {
	if m == nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			Hint("Initialize manifest before saving").
			Errorf("cannot save nil manifest")
	}

	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			With("path", outputDir).
			Wrapf(err, "creating manifest directory")
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			Wrapf(err, "encoding manifest")
	}

	data = append(data, '\n')

	tempFile, err := os.CreateTemp(outputDir, ManifestFile+".*.tmp")
	if err != nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			With("path", outputDir).
			Wrapf(err, "creating temporary manifest file")
	}

	tempPath := tempFile.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, writeErr := tempFile.Write(data); writeErr != nil {
		_ = tempFile.Close()
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			With("path", tempPath).
			Wrapf(writeErr, "writing temporary manifest file")
	}

	if closeErr := tempFile.Close(); closeErr != nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			With("path", tempPath).
			Wrapf(closeErr, "closing temporary manifest file")
	}

	if renameErr := os.Rename(tempPath, Path(outputDir)); renameErr != nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			With("from", tempPath).
			With("to", Path(outputDir)).
			Wrapf(renameErr, "replacing manifest file")
	}

	return nil
}

func (m *Manifest) SourceNames() []string {
	names := make([]string, 0, len(m.Sources))
	for name := range m.Sources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup finds a symbol by source and qualified name. The name may be given
// with or without its module prefix.
func (m *Manifest) Lookup(sourceName, symbolName string) (*FileInfo, *Symbol, error) {
	src, ok := m.Sources[sourceName]
	if !ok {
		return nil, nil, oops.
			Code("SOURCE_NOT_FOUND").
			With("source", sourceName).
			Hint("Available sources: "+strings.Join(m.SourceNames(), ", ")).
			Errorf("source %q not found in manifest", sourceName)
	}

	for i := range src.Files {
		file := &src.Files[i]
		if sym, found := file.Symbol(symbolName); found {
			return file, sym, nil
		}
	}

	return nil, nil, oops.
		Code("SYMBOL_NOT_FOUND").
		With("source", sourceName).
		With("symbol", symbolName).
		Hint("Run 'docsect symbols "+sourceName+"' to list symbols").
		Errorf("symbol %q not found in source %q", symbolName, sourceName)
}

// Symbol finds a symbol of the file by short or qualified name.
func (f *FileInfo) Symbol(name string) (*Symbol, bool) {
	for i := range f.Symbols {
		sym := &f.Symbols[i]
		if sym.Name == name || QualifiedName(f.Module, sym) == name {
			return sym, true
		}
	}

	return nil, false
}

// QualifiedName joins the module name and the symbol name. Module symbols are
// already named after their module.
func QualifiedName(module string, sym *Symbol) string {
	if sym.Kind == pysource.KindModule || module == "" {
		return sym.Name
	}

	return module + "." + sym.Name
}

func Path(outputDir string) string {
	return filepath.Join(outputDir, ManifestFile)
}
