package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"rillint/internal/diag"
	"rillint/internal/lint"
	"rillint/internal/observ"
	"rillint/internal/parser"
	"rillint/internal/source"
	"rillint/internal/trace"
)

// Options configures a Check run.
type Options struct {
	// Jobs limits parallel workers; zero means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps the merged result and the syntax errors reported
	// per file; zero means no limit.
	MaxDiagnostics int
	Registry       *lint.Registry
	// Levels holds the effective lint levels; nil means every lint at its default.
	Levels *lint.Levels
	// Cache is optional; nil disables caching.
	Cache   *DiskCache
	Exclude []string
	// BaseDir is used for relative paths in output.
	BaseDir  string
	Timer    *observ.Timer
	Observer PhaseObserver
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	// Expansions counts the macro expansions performed while parsing.
	Expansions int
	Cached     bool
	// Linted is false when the file could not be read or had syntax errors.
	Linted bool
}

// Result aggregates a Check run.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	// Bag holds every diagnostic, sorted and capped at MaxDiagnostics.
	Bag   *diag.Bag
	Timer *observ.Timer
}

type checker struct {
	fs          *source.FileSet
	opts        Options
	maxErrors   uint
	fingerprint Digest

	parseNS atomic.Int64
	lintNS  atomic.Int64
	parsed  atomic.Int32
	linted  atomic.Int32
	hits    atomic.Int32
}

// Check lints every source file under paths. Files are loaded serially into
// one FileSet, then parsed and linted in parallel. Files with syntax or
// expansion errors are reported but not linted.
func Check(ctx context.Context, paths []string, opts Options) (*Result, error) {
	if opts.Registry == nil {
		return nil, errors.New("driver: no lint registry")
	}
	if opts.Levels == nil {
		opts.Levels = lint.NewLevels()
	}
	if opts.Timer == nil {
		opts.Timer = observ.NewTimer()
	}
	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		return nil, fmt.Errorf("max diagnostics: %w", err)
	}

	ctx, run := trace.Start(ctx, trace.ScopeRun, "check")
	files, err := ListFiles(paths, opts.Exclude)
	if err != nil {
		run.End("no files")
		return nil, err
	}

	c := &checker{
		fs:          source.NewFileSetWithBase(opts.BaseDir),
		opts:        opts,
		maxErrors:   maxErrors,
		fingerprint: Fingerprint(opts.Registry, opts.Levels),
	}
	results := c.load(ctx, files)

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	lintCtx, phase := trace.Start(ctx, trace.ScopePhase, "files")
	g, gctx := errgroup.WithContext(lintCtx)
	g.SetLimit(min(jobs, len(files)))
	for i := range results {
		if results[i].Bag.HasErrors() {
			continue
		}
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			return c.file(gctx, &results[i])
		})
	}
	if err := g.Wait(); err != nil {
		phase.End("canceled")
		run.End("canceled")
		return nil, err
	}
	phase.End("")

	opts.Timer.Add(PhaseParse, time.Duration(c.parseNS.Load()), fmt.Sprintf("%d files", c.parsed.Load()))
	opts.Timer.Add(PhaseLint, time.Duration(c.lintNS.Load()), fmt.Sprintf("%d files", c.linted.Load()))
	if opts.Cache != nil {
		opts.Timer.Add(PhaseCache, 0, fmt.Sprintf("%d/%d hits", c.hits.Load(), len(files)))
	}

	all := diag.NewBag(0)
	for i := range results {
		all.Merge(results[i].Bag)
	}
	all.Sort()
	bag := all
	if opts.MaxDiagnostics > 0 && all.Len() > opts.MaxDiagnostics {
		bag = diag.NewBag(opts.MaxDiagnostics)
		for _, d := range all.Items() {
			if !bag.Add(d) {
				break
			}
		}
	}

	run.WithExtra("files", strconv.Itoa(len(files))).
		WithExtra("findings", strconv.Itoa(all.Len())).
		End("")
	return &Result{FileSet: c.fs, Files: results, Bag: bag, Timer: opts.Timer}, nil
}

// load reads files into the shared FileSet. A file that cannot be read gets
// an IO diagnostic in its own bag.
func (c *checker) load(ctx context.Context, files []string) []FileResult {
	c.opts.Observer.emit(PhaseEvent{Name: PhaseLoad, Status: PhaseStart})
	_, span := trace.Start(ctx, trace.ScopePhase, PhaseLoad)
	idx := c.opts.Timer.Begin(PhaseLoad)
	start := time.Now()

	results := make([]FileResult, len(files))
	failed := 0
	for i, path := range files {
		results[i] = FileResult{Path: path, Bag: diag.NewBag(0)}
		id, err := c.fs.Load(path)
		if err != nil {
			failed++
			results[i].Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, fmt.Sprintf("%s: %v", path, err)))
			continue
		}
		results[i].FileID = id
	}

	note := fmt.Sprintf("%d files", len(files))
	if failed > 0 {
		note += fmt.Sprintf(", %d unreadable", failed)
	}
	c.opts.Timer.End(idx, note)
	span.End(note)
	c.opts.Observer.emit(PhaseEvent{Name: PhaseLoad, Status: PhaseEnd, Elapsed: time.Since(start)})
	return results
}

func (c *checker) file(ctx context.Context, res *FileResult) error {
	f := c.fs.Get(res.FileID)
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+res.Path)
	key := fileKey(f.Hash, c.fingerprint, c.maxErrors)

	if c.restore(key, res) {
		c.hits.Add(1)
		span.WithExtra("cached", "true").
			WithExtra("findings", strconv.Itoa(res.Bag.Len())).
			End("")
		c.opts.Observer.emit(PhaseEvent{File: res.Path, Name: PhaseLint, Status: PhaseEnd, Cached: true})
		return nil
	}

	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})

	c.opts.Observer.emit(PhaseEvent{File: res.Path, Name: PhaseParse, Status: PhaseStart})
	_, ps := trace.Start(ctx, trace.ScopeCheck, PhaseParse)
	start := time.Now()
	pr := parser.ParseFile(c.fs, f, parser.Options{Reporter: reporter, MaxErrors: c.maxErrors})
	res.Expansions = len(pr.Expander.Expansions())
	trace.Point(trace.FromContext(ctx), trace.ScopeCheck, "expand",
		strconv.Itoa(res.Expansions)+" expansions", trace.CurrentSpan(ctx))
	elapsed := time.Since(start)
	c.parseNS.Add(int64(elapsed))
	c.parsed.Add(1)
	ps.End("")
	c.opts.Observer.emit(PhaseEvent{File: res.Path, Name: PhaseParse, Status: PhaseEnd, Elapsed: elapsed})

	if !res.Bag.HasErrors() {
		if err := ctx.Err(); err != nil {
			span.End("canceled")
			return err
		}
		c.opts.Observer.emit(PhaseEvent{File: res.Path, Name: PhaseLint, Status: PhaseStart})
		_, ls := trace.Start(ctx, trace.ScopeCheck, PhaseLint)
		start = time.Now()
		cx := lint.NewContext(c.fs, pr.Tree, c.opts.Levels, reporter)
		lint.Walk(cx, c.opts.Registry)
		elapsed = time.Since(start)
		c.lintNS.Add(int64(elapsed))
		c.linted.Add(1)
		res.Linted = true
		ls.End("")
		c.opts.Observer.emit(PhaseEvent{File: res.Path, Name: PhaseLint, Status: PhaseEnd, Elapsed: elapsed})
	}

	c.store(ctx, key, res)
	span.WithExtra("findings", strconv.Itoa(res.Bag.Len())).End("")
	return nil
}

func (c *checker) restore(key Digest, res *FileResult) bool {
	if c.opts.Cache == nil {
		return false
	}
	var cached CachedFile
	ok, err := c.opts.Cache.Get(key, &cached)
	if err != nil || !ok {
		return false
	}
	for _, d := range restoreDiagnostics(res.FileID, cached.Diagnostics) {
		res.Bag.Add(d)
	}
	res.Expansions = cached.Expansions
	res.Cached = true
	res.Linted = !res.Bag.HasErrors()
	return true
}

func (c *checker) store(ctx context.Context, key Digest, res *FileResult) {
	if c.opts.Cache == nil {
		return
	}
	diags, err := cacheDiagnostics(c.fs, res.Bag.Items())
	if err == nil {
		err = c.opts.Cache.Put(key, &CachedFile{Path: res.Path, Hash: key, Expansions: res.Expansions, Diagnostics: diags})
	}
	if err != nil {
		// кэш не обязателен: просто отмечаем в трассе
		trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache-skip", err.Error(), trace.CurrentSpan(ctx))
	}
}
