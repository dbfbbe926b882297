package requests

import (
	"context"
	"errors"
	"fmt"

	"github.com/brettbedarf/ramvfs"
	"github.com/brettbedarf/ramvfs/internal/util"
)

// NodeAdder is the subset of the filesystem a loader writes to
type NodeAdder interface {
	AddDirNode(req *ramvfs.DirCreateRequest) (ramvfs.NodeInfo, error)
	AddFileNode(ctx context.Context, req *ramvfs.FileCreateRequest) (ramvfs.NodeInfo, error)
}

// Result counts the nodes created by [Apply]
type Result struct {
	Dirs  int
	Files int
}

// Apply creates every directory, then every file, in defs. A failed request
// is logged and skipped; all failures are joined into the returned error.
func Apply(ctx context.Context, fs NodeAdder, defs *Definitions) (Result, error) {
	logger := util.GetLogger("requests.Apply")

	var res Result
	var errs []error
	for _, req := range defs.Dirs {
		if err := ctx.Err(); err != nil {
			return res, errors.Join(append(errs, err)...)
		}
		if _, err := fs.AddDirNode(req); err != nil {
			logger.Error().Err(err).Str("uuid", req.UUID).Str("path", req.Path).Msg("Failed to create dir")
			errs = append(errs, fmt.Errorf("dir %s: %w", req.Path, err))
			continue
		}
		logger.Debug().Str("uuid", req.UUID).Str("path", req.Path).Msg("Created dir")
		res.Dirs++
	}

	for _, req := range defs.Files {
		if err := ctx.Err(); err != nil {
			return res, errors.Join(append(errs, err)...)
		}
		if _, err := fs.AddFileNode(ctx, req); err != nil {
			logger.Error().Err(err).Str("uuid", req.UUID).Str("path", req.Path).Msg("Failed to create file")
			errs = append(errs, fmt.Errorf("file %s: %w", req.Path, err))
			continue
		}
		logger.Debug().Str("uuid", req.UUID).Str("path", req.Path).Msg("Created file")
		res.Files++
	}

	if len(errs) > 0 {
		logger.Warn().Int("failed", len(errs)).Msg("Some definitions were not applied")
	}
	return res, errors.Join(errs...)
}
