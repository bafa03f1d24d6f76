package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"lockweak/internal/diag"
	"lockweak/internal/source"
	"lockweak/internal/trace"
)

// ListSources возвращает отсортированный список исходников каталога.
// Скрытые каталоги (.git, .build, ...) пропускаются.
func ListSources(dir string, exts, exclude []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, p)
		if relErr != nil {
			rel = p
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if p != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if rel != "." && excluded(rel, exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasExtension(p, exts) || excluded(rel, exclude) {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

func hasExtension(p string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

// excluded сверяет шаблон и с относительным путём, и с базовым именем.
func excluded(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, pat := range patterns {
		if ok, _ := path.Match(pat, rel); ok {
			return true
		}
		if ok, _ := path.Match(pat, base); ok {
			return true
		}
	}
	return false
}

// ExpandDir раскрывает все исходники каталога параллельно.
// Ошибка загрузки файла становится диагностикой IO4001, а не ошибкой прогона.
func ExpandDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	files, err := ListSources(dir, opts.extensions(), opts.Exclude)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	fileSet := source.NewFileSetWithBase(dir)
	result := &Result{FileSet: fileSet}
	if len(files) == 0 {
		return result, nil
	}

	opts = opts.withContextTracer(ctx)
	ctx, span := trace.StartSpan(ctx, opts.Tracer, trace.ScopeDriver, "expand-dir")
	span.WithExtra("files", fmt.Sprint(len(files)))
	defer span.End(dir)
	parent := trace.ParentFromContext(ctx)

	// FileSet не потокобезопасен на запись: грузим всё заранее
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, p := range files {
		id, err := fileSet.Load(p)
		if err != nil {
			loadErrors[i] = err
			id = fileSet.AddVirtual(p, nil)
		}
		fileIDs[i] = id
		emit(opts.Progress, Event{File: p, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, p := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[i]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileIDs[i]}, "failed to load file: "+loadErr.Error()))
				results[i] = FileResult{Path: p, FileID: fileIDs[i], Bag: bag}
				emit(opts.Progress, Event{File: p, Stage: StageParse, Status: StatusError, Err: loadErr})
				return nil
			}

			fr, err := ExpandSource(fileSet, fileIDs[i], opts, parent)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			results[i] = fr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	result.Files = results
	for i := range results {
		result.Stats.Add(results[i].Stats)
	}
	return result, nil
}
