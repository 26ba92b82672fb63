package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/viant/afs"

	"dom-compiler/internal/worker"
)

// Copier copies referenced assets next to the compiled output, keeping
// their relative paths.
type Copier struct {
	fs      afs.Service
	workers int
}

func NewCopier(workers int) *Copier {
	return &Copier{fs: afs.New(), workers: workers}
}

// CopyAll copies every path from srcRoot to dstRoot. All copies are
// attempted; the returned error joins every failure.
func (c *Copier) CopyAll(ctx context.Context, srcRoot, dstRoot string, paths []string) error {
	pool := worker.NewPool[string, string](c.workers, func(ctx context.Context, path string) (string, error) {
		return c.copy(ctx, srcRoot, dstRoot, path)
	})

	tasks := pool.Execute(ctx, paths)
	copied, skipped := 0, 0
	for _, task := range tasks {
		switch {
		case !task.Done:
			skipped++
		case task.Err == nil:
			copied++
		}
	}
	err := worker.Errors(tasks)
	if skipped > 0 {
		err = errors.Join(err, fmt.Errorf("copy assets: %d skipped: %w", skipped, ctx.Err()))
	}

	log.Info().Int("copied", copied).Int("total", len(paths)).Str("output", dstRoot).Msg("Copied assets")
	return err
}

func (c *Copier) copy(ctx context.Context, srcRoot, dstRoot, path string) (string, error) {
	src := filepath.Join(srcRoot, path)
	dst := filepath.Join(dstRoot, path)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("create asset directory: %w", err)
	}
	if err := c.fs.Copy(ctx, src, dst); err != nil {
		return "", fmt.Errorf("copy asset %s: %w", path, err)
	}
	log.Debug().Str("asset", path).Str("to", dst).Msg("Copied asset")
	return dst, nil
}
