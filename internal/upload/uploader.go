// Package upload sends local files to the backend's upload endpoint
// with bounded concurrency.
package upload

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/snapfest/gallery/internal/api"
	"github.com/snapfest/gallery/internal/logging"
	"github.com/snapfest/gallery/internal/media"
)

// Result reports the outcome for one file.
type Result struct {
	Path     string
	Item     *media.Item
	Err      error
	Duration time.Duration
}

// Uploader pushes files through the API client.
type Uploader struct {
	client      *api.Client
	concurrency int
}

// NewUploader creates an Uploader. concurrency <= 0 means 3, which is
// about what the tunnel sustains before uploads start timing out.
func NewUploader(client *api.Client, concurrency int) *Uploader {
	if concurrency <= 0 {
		concurrency = 3
	}
	return &Uploader{client: client, concurrency: concurrency}
}

// UploadAll uploads every path, tagged with the given event. Individual
// failures are reported per file rather than aborting the batch; the
// returned error is only non-nil when the context is cancelled.
func (u *Uploader) UploadAll(ctx context.Context, paths []string, event string) ([]Result, error) {
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)

	for i, p := range paths {
		g.Go(func() error {
			start := time.Now()
			item, err := u.client.Upload(ctx, p, event)
			results[i] = Result{
				Path:     p,
				Item:     item,
				Err:      err,
				Duration: time.Since(start),
			}
			if err != nil {
				logging.Warn("upload failed", "path", p, "err", err)
			} else {
				logging.Info("uploaded", "path", p, "took", results[i].Duration)
			}
			// Per-file errors stay in results; only cancellation
			// aborts the remaining uploads.
			return ctx.Err()
		})
	}

	err := g.Wait()
	return results, err
}
