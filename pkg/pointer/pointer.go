// Package pointer resolves pointer files.
//
// A pointer file contains nothing but a path to the real source file. The
// compiled artifact lands where the pointer lives, not where the real file
// lives: the destination is computed from the pointer's directory joined
// with the target's base name.
package pointer

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/assetwatch/pkg/classify"
	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/arthur-debert/assetwatch/pkg/filesystem"
	"github.com/arthur-debert/assetwatch/pkg/logging"
	"github.com/arthur-debert/assetwatch/pkg/types"
	"github.com/rs/zerolog"
)

// Resolver reads pointer files and remembers the target of each resolved
// pointer for the lifetime of the process, so that a later removal of the
// pointer can find the artifact it produced.
type Resolver struct {
	fs     *filesystem.FS
	logger zerolog.Logger

	mu      sync.Mutex
	targets map[string]string
}

// NewResolver creates a Resolver reading from fs
func NewResolver(fs *filesystem.FS) *Resolver {
	return &Resolver{
		fs:      fs,
		logger:  logging.GetLogger("pointer"),
		targets: make(map[string]string),
	}
}

// Resolve reads the pointer at pointerPath and checks that its target
// exists. Relative targets are resolved against the pointer's directory.
func (r *Resolver) Resolve(pointerPath string) (types.PointerRecord, error) {
	target, err := r.Target(pointerPath)
	if err != nil {
		return types.PointerRecord{}, err
	}

	r.mu.Lock()
	r.targets[pointerPath] = target
	r.mu.Unlock()

	r.logger.Trace().
		Str("pointer", pointerPath).
		Str("target", target).
		Msg("pointer resolved")

	return types.PointerRecord{
		PointerPath: pointerPath,
		PointerDir:  filepath.Dir(pointerPath),
		TargetPath:  target,
	}, nil
}

// Target returns the validated target of the pointer at pointerPath
// without remembering it
func (r *Resolver) Target(pointerPath string) (string, error) {
	content, err := r.fs.ReadFile(pointerPath)
	if err != nil {
		return "", err
	}

	target := strings.TrimSpace(string(content))
	if target == "" {
		return "", errors.New(errors.ErrResolutionFailure, "pointer file is empty").
			WithPath(pointerPath)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(pointerPath), target)
	}

	exists, err := r.fs.Exists(target)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", errors.Newf(errors.ErrResolutionFailure,
			"pointer target %s does not exist", target).
			WithPath(pointerPath).
			WithDetail("target", target)
	}
	if r.fs.IsDir(target) {
		return "", errors.Newf(errors.ErrResolutionFailure,
			"pointer target %s is a directory", target).
			WithPath(pointerPath).
			WithDetail("target", target)
	}
	if classify.Classify(target).Kind == types.KindPointer {
		return "", errors.Newf(errors.ErrResolutionFailure,
			"pointer target %s is itself a pointer", target).
			WithPath(pointerPath).
			WithDetail("target", target)
	}
	return target, nil
}

// Alias returns the logical source path of a resolved pointer: the
// pointer's directory joined with the target's base name. Mapping the alias
// gives the destination.
func Alias(rec types.PointerRecord) string {
	return filepath.Join(rec.PointerDir, filepath.Base(rec.TargetPath))
}

// Forget returns the record of a pointer that no longer exists and drops
// it from memory. The target is the one remembered from the last
// resolution; a pointer never resolved falls back to a target named after
// the pointer itself, without the pointer extension, in its own directory.
func (r *Resolver) Forget(pointerPath string) types.PointerRecord {
	r.mu.Lock()
	target, ok := r.targets[pointerPath]
	delete(r.targets, pointerPath)
	r.mu.Unlock()

	dir := filepath.Dir(pointerPath)
	if !ok {
		target = filepath.Join(dir, strings.TrimSuffix(filepath.Base(pointerPath), filepath.Ext(pointerPath)))
		r.logger.Debug().
			Str("pointer", pointerPath).
			Str("target", target).
			Msg("removed pointer was never resolved, using its own name")
	}
	return types.PointerRecord{
		PointerPath: pointerPath,
		PointerDir:  dir,
		TargetPath:  target,
	}
}
