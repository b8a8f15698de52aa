// Package scanner enumerates every file under the source roots and feeds
// each one to the dispatcher as if it had just been updated.
package scanner

import (
	"context"
	"os"

	"github.com/arthur-debert/assetwatch/pkg/classify"
	"github.com/arthur-debert/assetwatch/pkg/filesystem"
	"github.com/arthur-debert/assetwatch/pkg/logging"
	"github.com/arthur-debert/assetwatch/pkg/types"
)

// Filter decides whether a scanned file is emitted
type Filter func(path string) bool

// DefaultFilter emits everything except partial stylesheets, which are
// only compiled through the stylesheets that include them. Partials under
// an excluded path are plain files and are emitted.
func DefaultFilter(path string) bool {
	return !classify.IsPartial(path) || classify.IsExcluded(path)
}

// StylesheetFilter emits only stylesheets that compile on their own
func StylesheetFilter(path string) bool {
	return classify.IsStylesheet(path) && !classify.IsPartial(path)
}

// Scan walks every root and calls emit with an update event for each file
// accepted by filter, as files are found. Missing roots are skipped.
// It returns the number of events emitted.
func Scan(ctx context.Context, fs *filesystem.FS, roots []string, filter Filter, emit func(types.FileEvent)) (int, error) {
	logger := logging.GetLogger("scanner")
	emitted := 0

	for _, root := range roots {
		if !fs.IsDir(root) {
			logger.Warn().Str("root", root).Msg("source root missing, skipping")
			continue
		}

		err := fs.Walk(root, func(path string, info os.FileInfo, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("cannot scan entry")
				return nil
			}
			if info.IsDir() || !filter(path) {
				return nil
			}
			emit(types.UpdateEvent(path))
			emitted++
			return nil
		})
		if err != nil {
			return emitted, err
		}
		logger.Debug().Str("root", root).Int("emitted", emitted).Msg("root scanned")
	}

	return emitted, nil
}
