// Package batch analyzes many dataset files concurrently for the CLI.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"payequity/internal/compliance"
	"payequity/internal/dataset"
)

// Analyzer validates and analyzes one dataset's job classes.
type Analyzer interface {
	Analyze(ctx context.Context, jobs []compliance.JobClass) (*compliance.Verdict, error)
}

// Result is the outcome for one file. Err is set when the file could not be
// loaded or analyzed; Verdict is nil in that case.
type Result struct {
	Path    string
	Dataset *dataset.Dataset
	Verdict *compliance.Verdict
	Err     error
}

// Options tunes a batch run.
type Options struct {
	// Workers bounds concurrent files; zero means GOMAXPROCS.
	Workers int
	// OnDone is called once per finished file, from worker goroutines.
	OnDone func(Result)
}

// Run loads and analyzes every path. Results keep the order of paths. A
// failing file does not stop the others; only context cancellation does.
func Run(ctx context.Context, analyzer Analyzer, paths []string, opts Options) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = analyzeFile(gctx, analyzer, path)
			if opts.OnDone != nil {
				opts.OnDone(results[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func analyzeFile(ctx context.Context, analyzer Analyzer, path string) Result {
	res := Result{Path: path}
	ds, err := dataset.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Dataset = ds

	verdict, err := analyzer.Analyze(ctx, ds.Jobs)
	if err != nil {
		res.Err = err
		return res
	}
	res.Verdict = verdict
	return res
}
