package script

import (
	"context"
	"runtime"

	"github.com/nibzard/todos-go/internal/parallel"
)

// Loaded is the outcome of loading one script in a batch.
type Loaded struct {
	Path   string
	Script *Script
	Err    error
}

// LoadAll loads and validates every path concurrently, at most workers at a
// time (GOMAXPROCS when workers <= 0). Results keep the order of paths.
func LoadAll(ctx context.Context, paths []string, workers int) []Loaded {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool := parallel.NewWorkerPool[*Script](ctx, workers, false)
	for _, path := range paths {
		path := path
		pool.Submit(path, func(context.Context) (*Script, error) {
			return Load(path)
		})
	}
	results, _ := pool.Wait()

	out := make([]Loaded, len(paths))
	for i, path := range paths {
		out[i] = Loaded{Path: path, Err: ctx.Err()}
	}
	for _, r := range results {
		out[r.Index] = Loaded{Path: r.ID, Script: r.Value, Err: r.Err}
	}
	return out
}
