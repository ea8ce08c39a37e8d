package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"momo/internal/diag"
)

// SourceExt is the extension of source files picked up by CompileDir.
const SourceExt = ".momo"

// DirResult содержит результат сборки одного файла
type DirResult struct {
	Path   string    // путь к файлу
	Result *Result   // nil, если файл не удалось прочитать
	Bag    *diag.Bag // диагностики только этого файла
	Err    error     // первая фатальная ошибка
}

// listSourceFiles возвращает отсортированный список всех *.momo файлов в директории
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CompileDir builds every source file under dir concurrently. Each file gets
// its own diagnostic bag; opts.Reporter is ignored because it is not safe for
// concurrent use. Compile errors are recorded per file; only cancellation
// or a directory walk failure fails the whole call.
func CompileDir(ctx context.Context, dir string, opts Options, maxDiagnostics, jobs int) ([]DirResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	// Настраиваем параллелизм
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]DirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bag := diag.NewBag(maxDiagnostics)
			fileOpts := opts
			fileOpts.Reporter = diag.BagReporter{Bag: bag}
			res, err := CompileFile(gctx, path, fileOpts)
			results[i] = DirResult{Path: path, Result: res, Bag: bag, Err: err}
			if gctx.Err() != nil {
				return gctx.Err()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
