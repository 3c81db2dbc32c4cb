package media

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/jdeng/goheif"

	"github.com/snapfest/gallery/internal/logging"
)

// Normalizer converts HEIC items into locally stored JPEGs. Best
// effort: any failure falls back to the original item so the rest of
// the page is never blocked on a broken conversion.
type Normalizer struct {
	client  *http.Client
	headers map[string]string
	tmpDir  string
}

// NewNormalizer creates a Normalizer. headers are attached to the
// download request (the backend sits behind the same tunnel as the
// JSON API). tmpDir of "" means the system temp directory.
func NewNormalizer(timeout time.Duration, headers map[string]string, tmpDir string) *Normalizer {
	return &Normalizer{
		client:  &http.Client{Timeout: timeout},
		headers: headers,
		tmpDir:  tmpDir,
	}
}

// Normalize returns a displayable version of item. Non-HEIC items and
// videos pass through untouched. On success the returned item points
// at a derived JPEG and keeps the server locator in OriginalSrc; the
// caller owns the item's Derived resource.
func (n *Normalizer) Normalize(ctx context.Context, item Item) Item {
	if !NeedsConversion(item) {
		return item
	}

	derived, err := n.convert(ctx, item.Src)
	if err != nil {
		logging.Warn("heic conversion failed, using original", "id", item.ID, "err", err)
		return item
	}

	out := item
	out.OriginalSrc = item.Src
	out.Src = derived.Path
	out.Derived = derived
	return out
}

// convert downloads the HEIC resource, decodes it and re-encodes it
// as a JPEG temp file.
func (n *Normalizer) convert(ctx context.Context, src string) (*Derived, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range n.headers {
		req.Header.Set(k, v)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}

	img, err := goheif.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode heic: %w", err)
	}

	f, err := os.CreateTemp(n.tmpDir, "snapfest-*.jpg")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	if err := imaging.Encode(f, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	return &Derived{Path: f.Name()}, nil
}
