// Package cleaner wipes destination roots before a full build.
package cleaner

import (
	"context"
	"sync/atomic"

	"github.com/arthur-debert/assetwatch/pkg/filesystem"
	"github.com/arthur-debert/assetwatch/pkg/logging"
	"golang.org/x/sync/errgroup"
)

// Report summarizes a Clear run
type Report struct {
	Cleared  int
	Failures int
}

// Clear removes every root recursively, concurrently, and returns once all
// of them have finished. A failing root is logged and counted but never
// stops the others. Roots not yet started when ctx is cancelled are left
// in place and counted as failures.
func Clear(ctx context.Context, fs *filesystem.FS, roots []string) Report {
	logger := logging.GetLogger("cleaner")
	var cleared, failures atomic.Int32

	var g errgroup.Group
	for _, root := range roots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				failures.Add(1)
				logger.Warn().Err(err).Str("root", root).Msg("clear cancelled")
				return nil
			}
			if err := fs.RemoveAll(root); err != nil {
				failures.Add(1)
				logger.Error().Err(err).Str("root", root).Msg("cannot clear destination")
				return nil
			}
			cleared.Add(1)
			logger.Debug().Str("root", root).Msg("destination cleared")
			return nil
		})
	}
	_ = g.Wait()

	return Report{Cleared: int(cleared.Load()), Failures: int(failures.Load())}
}
