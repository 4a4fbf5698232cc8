package fibonacci

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// executeParallel3 runs three closures concurrently and waits for all of
// them, returning the first error. The context aborts remaining work early.
func executeParallel3(ctx context.Context, f1, f2, f3 func() error) error {
	g, _ := errgroup.WithContext(ctx)
	g.Go(f1)
	g.Go(f2)
	g.Go(f3)
	return g.Wait()
}
