package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"glsles/internal/diag"
	"glsles/internal/lexer"
	"glsles/internal/observ"
	"glsles/internal/source"
	"glsles/internal/token"
	"glsles/internal/trace"
)

// DirOptions configures a directory run.
type DirOptions struct {
	// Extensions lists the file suffixes to pick up, with the leading dot.
	Extensions []string
	// Jobs caps the number of files processed at once; 0 means GOMAXPROCS.
	Jobs int
	Options
}

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

// FileResult is the outcome for one file of a directory run. Result is
// nil when the file could not be loaded; Bag then holds the IO error.
type FileResult struct {
	Path   string
	Result *Result
	Bag    *diag.Bag
}

// DirReport summarizes a directory run.
type DirReport struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timing  observ.Report
}

// HasErrors reports whether any file has an error diagnostic.
func (r *DirReport) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag != nil && f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// ListShaderFiles возвращает отсортированный список шейдеров во всех dirs.
// Скрытые подкаталоги пропускаются.
func ListShaderFiles(dirs, exts []string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// скрытые каталоги (.git, .cache) пропускаем, кроме самого корня
				if path != dir && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return slices.Compact(files), nil
}

func jobLimit(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(min(jobs, files), 1)
}

// loadFailure reports a load error against the placeholder file that
// preload registered for path.
func loadFailure(id source.FileID, err error, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(&diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file: " + err.Error(),
		Primary:  source.Span{File: id}, // пустой span в пустом файле
	})
	return bag
}

// TokenizeDir токенизирует все шейдеры в dirs параллельно
func TokenizeDir(ctx context.Context, dirs []string, opts DirOptions) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListShaderFiles(dirs, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	fileSet := newDirFileSet(dirs)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен на запись: загружаем всё заранее
	fileIDs, loadErrors := preload(fileSet, files)

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(opts.Jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, failed := loadErrors[path]; failed {
				results[i] = TokenizeDirResult{Path: path, FileID: fileIDs[path], Bag: loadFailure(fileIDs[path], loadErr, opts.MaxDiagnostics)}
				return nil
			}
			file := fileSet.Get(fileIDs[path])
			bag := diag.NewBag(opts.MaxDiagnostics)
			tokens := lexer.All(file, lexer.Options{
				Reporter:    &diag.BagReporter{Bag: bag},
				SkipUnknown: true,
			})
			bag.Sort()
			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: file.ID,
				Tokens: tokens,
				Bag:    bag,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// AnalyzeDir runs the full pipeline on every shader under dirs. Per-file
// failures become diagnostics; only cancellation aborts the run.
func AnalyzeDir(ctx context.Context, dirs []string, opts DirOptions) (*DirReport, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "analyze-dir")
	defer span.End(strings.Join(dirs, ","))

	timer := observ.NewTimer()
	done := timer.Measure("scan")
	files, err := ListShaderFiles(dirs, opts.Extensions)
	if err != nil {
		return nil, err
	}
	done(strconv.Itoa(len(files)) + " files")

	report := &DirReport{FileSet: newDirFileSet(dirs)}
	if len(files) == 0 {
		report.Timing = timer.Report()
		return report, nil
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Phase: PhaseLoad, Status: StatusQueued})
	}

	done = timer.Measure(string(PhaseLoad))
	fileIDs, loadErrors := preload(report.FileSet, files)
	done("")

	report.Files = make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(opts.Jobs, len(files)))

	done = timer.Measure("analyze")
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, failed := loadErrors[path]; failed {
				report.Files[i] = FileResult{Path: path, Bag: loadFailure(fileIDs[path], loadErr, opts.MaxDiagnostics)}
				emit(opts.Progress, Event{File: path, Phase: PhaseLoad, Status: StatusError, Err: loadErr})
				return nil
			}
			res, err := analyzeFile(gctx, report.FileSet, report.FileSet.Get(fileIDs[path]), opts.Options)
			if err != nil {
				emit(opts.Progress, Event{File: path, Phase: PhaseExtract, Status: StatusError, Err: err})
				return err
			}
			report.Files[i] = FileResult{Path: path, Result: res, Bag: res.Bag}
			status := StatusDone
			if res.Bag.HasErrors() {
				status = StatusError
			}
			if res.Cached && status == StatusDone {
				status = StatusCached
			}
			emit(opts.Progress, Event{File: path, Phase: PhaseExtract, Status: status})
			return nil
		})
	}

	err = g.Wait()
	done("")
	for _, f := range report.Files {
		if f.Result != nil {
			report.Timing.Merge(f.Result.Timing)
		}
	}
	report.Timing.Merge(timer.Report())
	span.WithExtra("files", strconv.Itoa(len(files)))
	if err != nil {
		return report, err
	}
	return report, nil
}

func newDirFileSet(dirs []string) *source.FileSet {
	if len(dirs) == 1 {
		return source.NewFileSetWithBase(dirs[0])
	}
	return source.NewFileSet()
}

func preload(fileSet *source.FileSet, files []string) (map[string]source.FileID, map[string]error) {
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			// пустой файл-заглушка, чтобы у диагностики был путь
			fileID = fileSet.Add(path, nil, source.FileVirtual)
			loadErrors[path] = err
		}
		fileIDs[path] = fileID
	}
	return fileIDs, loadErrors
}
