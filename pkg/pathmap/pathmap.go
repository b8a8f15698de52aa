// Package pathmap maps absolute source paths to absolute destination paths.
package pathmap

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/assetwatch/pkg/errors"
)

// Mapper turns a source path into its destination path. It must be
// deterministic and total over every path under the configured source roots.
type Mapper func(source string) (string, error)

type pair struct {
	source      string
	destination string
}

// RootPairs builds a Mapper that mirrors each source root into a
// destination root. With a single destination every source root is mirrored
// into it; otherwise sources and destinations are paired by index.
func RootPairs(sources, destinations []string) (Mapper, error) {
	if len(sources) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "at least one source root is required")
	}
	if len(destinations) != 1 && len(destinations) != len(sources) {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"expected 1 or %d destination roots, got %d", len(sources), len(destinations))
	}

	pairs := make([]pair, 0, len(sources))
	for i, src := range sources {
		dest := destinations[0]
		if len(destinations) > 1 {
			dest = destinations[i]
		}
		absSrc, err := filepath.Abs(src)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid source root").WithPath(src)
		}
		absDest, err := filepath.Abs(dest)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid destination root").WithPath(dest)
		}
		pairs = append(pairs, pair{source: absSrc, destination: absDest})
	}

	return func(source string) (string, error) {
		abs, err := filepath.Abs(source)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrPathMapping, "invalid source path").WithPath(source)
		}

		// Longest matching root wins so nested roots map predictably
		best := -1
		var bestRel string
		for i, p := range pairs {
			rel, ok := within(p.source, abs)
			if !ok {
				continue
			}
			if best == -1 || len(p.source) > len(pairs[best].source) {
				best, bestRel = i, rel
			}
		}
		if best == -1 {
			return "", errors.New(errors.ErrPathMapping, "path is outside every source root").WithPath(source)
		}
		return filepath.Join(pairs[best].destination, bestRel), nil
	}, nil
}

// within returns path relative to root when path is inside root
func within(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
