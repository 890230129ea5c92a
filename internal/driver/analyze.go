package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fortio.org/safecast"

	"glsles/internal/ast"
	"glsles/internal/diag"
	"glsles/internal/directive"
	"glsles/internal/extract"
	"glsles/internal/lexer"
	"glsles/internal/observ"
	"glsles/internal/parser"
	"glsles/internal/source"
	"glsles/internal/token"
	"glsles/internal/trace"
)

// Options controls one analysis run.
type Options struct {
	// MaxDiagnostics caps the bag and the parser error count; 0 is unlimited.
	MaxDiagnostics int
	// RequireMain warns when `void main()` is not defined.
	RequireMain bool
	// KeepAST forces a full parse even when Cache has the table.
	KeepAST bool
	Cache   *DiskCache
	// Progress receives per-phase events; nil disables them.
	Progress ProgressSink
}

// Result is everything known about one shader after analysis. On a cache
// hit Tokens, Builder and Directives are nil.
type Result struct {
	FileSet    *source.FileSet
	File       *source.File
	Stage      Stage
	Tokens     []token.Token
	Builder    *ast.Builder
	Unit       ast.UnitID
	Directives *directive.Set
	Table      *extract.Table
	Bag        *diag.Bag
	Incomplete bool
	Cached     bool
	Timing     observ.Report
}

// Parse lexes and parses path without extracting declarations.
func Parse(ctx context.Context, path string, maxDiagnostics int) (*Result, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	res := newResult(fs, fs.Get(fileID), maxDiagnostics)
	timer := observ.NewTimer()
	if err := res.parse(ctx, Options{MaxDiagnostics: maxDiagnostics}, timer); err != nil {
		return nil, err
	}
	res.Timing = timer.Report()
	res.Bag.Sort()
	return res, nil
}

// Analyze runs the whole pipeline on the file at path.
func Analyze(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return analyzeFile(ctx, fs, fs.Get(fileID), opts)
}

// AnalyzeSource runs the pipeline on an in-memory shader.
func AnalyzeSource(ctx context.Context, name string, src []byte, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return analyzeFile(ctx, fs, fs.Get(fileID), opts)
}

func newResult(fs *source.FileSet, file *source.File, maxDiagnostics int) *Result {
	return &Result{
		FileSet: fs,
		File:    file,
		Stage:   StageFromPath(file.Path),
		Bag:     diag.NewBag(maxDiagnostics),
	}
}

func analyzeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+file.Path)
	res := newResult(fs, file, opts.MaxDiagnostics)
	timer := observ.NewTimer()
	defer func() {
		res.Timing = timer.Report()
		span.WithExtra("diags", strconv.Itoa(res.Bag.Len())).
			WithExtra("cached", strconv.FormatBool(res.Cached)).
			End(res.Stage.String())
	}()

	key := cacheKey(file, opts)
	if opts.Cache != nil && !opts.KeepAST {
		done := timer.Measure("cache")
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			diag.ReportWarning(&diag.BagReporter{Bag: res.Bag}, diag.IOCacheError,
				source.Span{File: file.ID}, "cache read failed: "+err.Error()).Emit()
			done("error")
		case hit:
			res.Table = payload.restore(file.ID, res.Bag)
			res.Incomplete = payload.Incomplete
			res.Cached = true
			res.Bag.Sort()
			done("hit")
			emit(opts.Progress, Event{File: file.Path, Phase: PhaseExtract, Status: StatusCached})
			return res, nil
		default:
			done("miss")
		}
	}

	if err := res.parse(ctx, opts, timer); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.extract(ctx, opts, timer)
	res.Bag.Sort()

	// неполный разбор в кэш не пишем: при следующем запуске лимит может быть другим
	if opts.Cache != nil && !res.Incomplete {
		if err := opts.Cache.Put(key, newPayload(res)); err != nil {
			diag.ReportWarning(&diag.BagReporter{Bag: res.Bag}, diag.IOCacheError,
				source.Span{File: file.ID}, "cache write failed: "+err.Error()).Emit()
		}
	}
	return res, nil
}

// parse runs the lex and parse phases and collects directives.
func (res *Result) parse(ctx context.Context, opts Options, timer *observ.Timer) error {
	rep := diag.NewDedupReporter(&diag.BagReporter{Bag: res.Bag})
	path := res.File.Path

	phase := startPhase(ctx, opts.Progress, path, PhaseLex, timer)
	// ошибка лексера обрывает поток: дальше Invalid и EOF
	res.Tokens = lexer.All(res.File, lexer.Options{Reporter: rep})
	phase.end(strconv.Itoa(len(res.Tokens)) + " tokens")

	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		return fmt.Errorf("max diagnostics: %w", err)
	}

	phase = startPhase(ctx, opts.Progress, path, PhaseParse, timer)
	res.Builder = ast.NewBuilder(ast.Hints{})
	pres := parser.ParseTokens(ctx, res.FileSet, res.File, res.Tokens, res.Builder, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  rep,
	})
	res.Unit = pres.Unit
	res.Incomplete = pres.Incomplete
	phase.end(strconv.Itoa(len(pres.Errors)) + " errors")

	phase = startPhase(ctx, opts.Progress, path, PhaseDirectives, timer)
	res.Directives = directive.Collect(res.Tokens, directive.Options{Reporter: rep})
	phase.end(strconv.Itoa(res.Directives.Len()) + " directives")
	return nil
}

func (res *Result) extract(ctx context.Context, opts Options, timer *observ.Timer) {
	phase := startPhase(ctx, opts.Progress, res.File.Path, PhaseExtract, timer)
	table, _ := extract.Extract(res.Builder, res.Unit, extract.Options{
		Reporter:    &diag.BagReporter{Bag: res.Bag},
		RequireMain: opts.RequireMain,
	})
	table.Version, _ = res.Directives.Version()
	for _, d := range res.Directives.Extensions() {
		table.Extensions = append(table.Extensions, extract.Extension{Name: d.Name, Behavior: d.Value})
	}
	res.Table = table
	phase.end(strconv.Itoa(table.Len()) + " entries")
}

// phaseRun ties a trace span, a timer entry and progress events together.
type phaseRun struct {
	span    *trace.Span
	done    func(string)
	sink    ProgressSink
	file    string
	phase   Phase
	started time.Time
}

func startPhase(ctx context.Context, sink ProgressSink, file string, phase Phase, timer *observ.Timer) phaseRun {
	_, span := trace.Start(ctx, trace.ScopePhase, string(phase))
	emit(sink, Event{File: file, Phase: phase, Status: StatusWorking})
	return phaseRun{
		span:    span,
		done:    timer.Measure(string(phase)),
		sink:    sink,
		file:    file,
		phase:   phase,
		started: time.Now(),
	}
}

func (p phaseRun) end(note string) {
	p.done(note)
	p.span.End(note)
	emit(p.sink, Event{File: p.file, Phase: p.phase, Status: StatusDone, Elapsed: time.Since(p.started)})
}
