// Package media defines the gallery media model and the format
// normalizer that converts HEIC images into something displayable.
package media

import (
	"os"
	"path"
	"strings"
	"sync"
	"time"
)

// Type discriminates the two media kinds the backend serves.
type Type string

const (
	TypeImage Type = "image"
	TypeVideo Type = "video"
)

// Item is one gallery entry. Items are immutable once fetched; the
// only local mutation is Src rewriting when the normalizer substitutes
// a derived resource, in which case OriginalSrc keeps the server
// locator.
type Item struct {
	ID          string
	Type        Type
	Src         string
	OriginalSrc string
	Title       string
	Event       string
	Author      string
	Date        time.Time
	Featured    bool

	// Derived is non-nil when Src points at a locally created
	// resource that must be released when the item goes away.
	Derived *Derived
}

// IsVideo reports whether the item is a video.
func (i Item) IsVideo() bool { return i.Type == TypeVideo }

// Derived is a locally created resource backing a normalized item,
// currently always a temp file. Owned by the item that created it; no
// other component may touch it after Release.
type Derived struct {
	Path string

	once sync.Once
}

// Release removes the backing file. Safe to call more than once; only
// the first call has any effect.
func (d *Derived) Release() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		os.Remove(d.Path)
	})
}

// NeedsConversion reports whether the item's locator indicates a HEIC
// container. Videos never qualify, whatever their extension says.
func NeedsConversion(item Item) bool {
	if item.Type != TypeImage {
		return false
	}
	ext := strings.ToLower(path.Ext(srcPath(item.Src)))
	return ext == ".heic" || ext == ".heif"
}

// srcPath strips any query string so path.Ext sees the real extension.
func srcPath(src string) string {
	if i := strings.IndexByte(src, '?'); i >= 0 {
		return src[:i]
	}
	return src
}
