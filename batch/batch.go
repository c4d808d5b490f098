// Package batch parses many files with one engine, using a bounded
// pool of workers.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/gnolang/lifted/internal"
)

// Engine parses files and sources. *internal.Engine implements it.
type Engine interface {
	Run(path string) (internal.Result, error)
	RunSource(source []byte) internal.Result
}

var _ Engine = (*internal.Engine)(nil)

// Processor parses a single path with engine.
type Processor func(engine Engine, path string) (internal.Result, error)

// ProcessFile is the default Processor.
func ProcessFile(engine Engine, path string) (internal.Result, error) {
	return engine.Run(path)
}

// Options tune ProcessFiles.
type Options struct {
	// Extensions restricts the files picked from directories, e.g. ".txt".
	// Files named explicitly are always processed. Empty means every file.
	Extensions []string
	// Workers bounds the number of files parsed at once. Zero means runtime.NumCPU().
	Workers int
	// Progress receives a progress bar while directories are processed. Nil disables it.
	Progress io.Writer
}

// ProcessSources parses every source in order.
func ProcessSources(engine Engine, sources [][]byte) []internal.Result {
	results := make([]internal.Result, len(sources))
	for i, source := range sources {
		results[i] = engine.RunSource(source)
	}
	return results
}

// ProcessFiles expands directories in paths and parses every file with
// processor. Results are sorted by file name. When ctx is done the
// results gathered so far are returned together with ctx.Err().
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	paths []string,
	processor Processor,
	opts Options,
) ([]internal.Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	files, err := collectFiles(paths, opts.Extensions)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var bar *progressbar.ProgressBar
	if opts.Progress != nil && len(files) > 1 {
		bar = newProgressBar(opts.Progress, len(files))
	}

	type fileResult struct {
		result internal.Result
		err    error
	}
	resultChan := make(chan fileResult, len(files))
	sem := make(chan struct{}, workers)

	dispatched := 0
	var ctxErr error
dispatch:
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		case sem <- struct{}{}:
		}
		dispatched++
		go func(fp string) {
			defer func() { <-sem }()
			res, err := processor(engine, fp)
			if err != nil {
				logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
			}
			resultChan <- fileResult{result: res, err: err}
			if bar != nil {
				_ = bar.Add(1)
			}
		}(file)
	}

	results := make([]internal.Result, 0, dispatched)
	var firstErr error
	for range dispatched {
		fr := <-resultChan
		if fr.err != nil {
			if firstErr == nil {
				firstErr = fr.err
			}
			continue
		}
		results = append(results, fr.result)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Filename < results[j].Filename })
	if ctxErr != nil {
		return results, ctxErr
	}
	return results, firstErr
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("parsing"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func collectFiles(paths []string, extensions []string) ([]string, error) {
	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[ext] = true
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fileInfo.IsDir() {
				return nil
			}
			if len(wanted) == 0 || wanted[filepath.Ext(filePath)] {
				files = append(files, filePath)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking directory %s: %w", path, err)
		}
	}
	return files, nil
}
