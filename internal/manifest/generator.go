package manifest

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	stdsync "sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"

	"github.com/g5becks/docsect/internal/config"
	"github.com/g5becks/docsect/internal/docstring"
	"github.com/g5becks/docsect/internal/pysource"
)

type EventKind string

const (
	EventSourceStart EventKind = "start"
	EventFileDone    EventKind = "done"
	EventFileFailed  EventKind = "failed"
)

// Event reports generation progress. A source start carries the number of
// matched files; file events follow one at a time in completion order, not
// path order.
type Event struct {
	Kind        EventKind
	Source      string
	Path        string
	Files       int
	Symbols     int
	Diagnostics int
	Err         error
}

type Options struct {
	// SourceNames limits generation to these sources. Other entries of an
	// existing manifest are kept as they are.
	SourceNames []string
	OnEvent     func(Event)
}

type Summary struct {
	Sources     int
	Files       int
	Symbols     int
	Diagnostics int
	Failed      int
}

type fileJob struct {
	absPath string
	relPath string
}

type fileResult struct {
	info *FileInfo
	err  error
}

// Generate parses every matching Python file of the configured sources and
// saves the manifest into cfg.Output.
func Generate(ctx context.Context, cfg *config.Config, opts Options) (*Summary, error) {
	if cfg == nil {
		return nil, oops.
			Code("CONFIG_INVALID").
			Errorf("config is required")
	}

	parser, err := cfg.Parser()
	if err != nil {
		return nil, err
	}

	sourceNames, err := resolveSourceNames(cfg.Sources, opts.SourceNames)
	if err != nil {
		return nil, err
	}

	m, err := loadOrNew(cfg.Output, len(opts.SourceNames) > 0)
	if err != nil {
		return nil, err
	}
	m.Dialect = parser.Dialect().Name()

	parallel := cfg.Parallel
	if parallel <= 0 {
		parallel = config.DefaultParallel
	}

	loader := pysource.NewLoader()
	summary := &Summary{Sources: len(sourceNames)}
	var eventMu stdsync.Mutex

	emit := func(ev Event) {
		if opts.OnEvent == nil {
			return
		}
		eventMu.Lock()
		defer eventMu.Unlock()
		opts.OnEvent(ev)
	}

	for _, sourceName := range sourceNames {
		srcCfg := cfg.Sources[sourceName]
		root := cfg.SourceRoot(srcCfg)

		jobs, collectErr := collectFiles(sourceName, root, srcCfg)
		if collectErr != nil {
			return nil, collectErr
		}
		emit(Event{Kind: EventSourceStart, Source: sourceName, Files: len(jobs)})

		results := make([]fileResult, len(jobs))
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(parallel)

		for i, job := range jobs {
			group.Go(func() error {
				if ctxErr := groupCtx.Err(); ctxErr != nil {
					return ctxErr
				}

				info, parseErr := parseFile(groupCtx, loader, parser, job)
				results[i] = fileResult{info: info, err: parseErr}

				if parseErr != nil {
					emit(Event{Kind: EventFileFailed, Source: sourceName, Path: job.relPath, Err: parseErr})
					return nil
				}

				emit(Event{
					Kind:        EventFileDone,
					Source:      sourceName,
					Path:        job.relPath,
					Symbols:     len(info.Symbols),
					Diagnostics: countDiagnostics(info),
				})
				return nil
			})
		}

		if waitErr := group.Wait(); waitErr != nil {
			return nil, oops.
				Code("MANIFEST_GENERATION_ERROR").
				With("source", sourceName).
				Wrapf(waitErr, "parsing source files")
		}

		src := &Source{Name: sourceName, Root: root}
		for _, res := range results {
			if res.err != nil {
				src.Failed++
				continue
			}

			src.Files = append(src.Files, *res.info)
			src.SymbolCount += len(res.info.Symbols)
			src.ErrorCount += countDiagnostics(res.info)
		}
		src.FileCount = len(src.Files)
		m.Sources[sourceName] = src

		summary.Files += src.FileCount
		summary.Symbols += src.SymbolCount
		summary.Diagnostics += src.ErrorCount
		summary.Failed += src.Failed
	}

	if saveErr := m.Save(cfg.Output); saveErr != nil {
		return nil, saveErr
	}

	return summary, nil
}

func parseFile(ctx context.Context, loader *pysource.Loader, parser *docstring.Parser, job fileJob) (*FileInfo, error) {
	moduleName := pysource.ModuleName(job.relPath)

	mod, err := loader.LoadFile(ctx, job.absPath, moduleName)
	if err != nil {
		return nil, err
	}

	info := &FileInfo{
		Path:    filepath.ToSlash(job.relPath),
		Module:  moduleName,
		Lines:   mod.Lines,
		Symbols: make([]Symbol, 0, len(mod.Symbols)),
	}

	for _, sym := range mod.Symbols {
		result := parser.Parse(docstring.Input{Text: sym.Docstring, Signature: sym.Signature})

		parsed := Symbol{
			Name:      sym.Name,
			Kind:      sym.Kind,
			Line:      sym.Line,
			Signature: sym.Signature,
			Sections:  result.Sections,
			Errors:    result.Errors,
		}

		if sym.Kind == pysource.KindModule {
			info.Description = parsed.Summary()
		}

		info.Symbols = append(info.Symbols, parsed)
	}

	return info, nil
}

// InspectFile parses one Python file outside any configured source. The module
// is named after the file.
func InspectFile(ctx context.Context, parser *docstring.Parser, path string) (*FileInfo, error) {
	return parseFile(ctx, pysource.NewLoader(), parser, fileJob{absPath: path, relPath: filepath.Base(path)})
}

// collectFiles walks root and returns the files matching the source patterns,
// sorted by relative path.
func collectFiles(sourceName, root string, src config.Source) ([]fileJob, error) {
	stat, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, oops.
				Code("SOURCE_READ_ERROR").
				With("source", sourceName).
				With("path", root).
				Hint("Fix the path of this source in docsect.toml").
				Errorf("source path %q does not exist", root)
		}
		return nil, oops.Wrapf(err, "checking source path %q", root)
	}

	if !stat.IsDir() {
		return []fileJob{{absPath: root, relPath: filepath.Base(root)}}, nil
	}

	var jobs []fileJob
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return walkErr
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		include, matchErr := shouldIncludeFile(relPath, src.Patterns, src.Exclude)
		if matchErr != nil {
			return matchErr
		}

		if include {
			jobs = append(jobs, fileJob{absPath: path, relPath: relPath})
		}
		return nil
	})
	if walkErr != nil {
		return nil, oops.
			Code("MANIFEST_GENERATION_ERROR").
			With("source", sourceName).
			Wrapf(walkErr, "walking source directory")
	}

	slices.SortFunc(jobs, func(a, b fileJob) int {
		return strings.Compare(a.relPath, b.relPath)
	})

	return jobs, nil
}

func shouldIncludeFile(relativePath string, patterns []string, exclude []string) (bool, error) {
	included, err := matchesAny(patterns, relativePath)
	if err != nil || !included {
		return false, err
	}

	excluded, err := matchesAny(exclude, relativePath)
	if err != nil {
		return false, err
	}

	return !excluded, nil
}

func matchesAny(patterns []string, candidate string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.PathMatch(filepath.FromSlash(pattern), candidate)
		if err != nil {
			return false, oops.
				Code("CONFIG_INVALID").
				With("pattern", pattern).
				With("path", candidate).
				Wrapf(err, "invalid glob pattern")
		}

		if matched {
			return true, nil
		}
	}

	return false, nil
}

func resolveSourceNames(sources map[string]config.Source, requested []string) ([]string, error) {
	if len(requested) == 0 {
		names := make([]string, 0, len(sources))
		for name := range sources {
			names = append(names, name)
		}

		slices.Sort(names)
		return names, nil
	}

	names := make([]string, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))

	for _, name := range requested {
		if _, ok := sources[name]; !ok {
			return nil, oops.
				Code("SOURCE_NOT_FOUND").
				With("source", name).
				Hint("Check the [sources] tables in docsect.toml").
				Errorf("source %q not found in config", name)
		}

		if _, exists := seen[name]; exists {
			continue
		}

		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names, nil
}

// loadOrNew keeps the existing manifest when only some sources are being
// regenerated.
func loadOrNew(outputDir string, partial bool) (*Manifest, error) {
	if !partial {
		return New(), nil
	}

	if _, err := os.Stat(Path(outputDir)); errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}

	m, err := Load(outputDir)
	if err != nil {
		return nil, err
	}

	fresh := New()
	m.Version = fresh.Version
	m.Generated = fresh.Generated
	return m, nil
}

func countDiagnostics(info *FileInfo) int {
	total := 0
	for _, sym := range info.Symbols {
		total += len(sym.Errors)
	}
	return total
}
