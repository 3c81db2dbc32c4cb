// Package ui provides the Bubble Tea TUI for the Snapfest gallery.
package ui

import (
	"github.com/snapfest/gallery/internal/gallery"
	"github.com/snapfest/gallery/internal/media"
	"github.com/snapfest/gallery/internal/playback"
)

// PageLoaded is sent when a gallery page fetch completes. Gen carries
// the request generation so stale responses can be discarded.
type PageLoaded struct {
	Result *gallery.PageResult
	Gen    uint64
	Err    error
}

// ItemNormalized is sent when an on-demand HEIC conversion finishes
// for the item at Index in the current page.
type ItemNormalized struct {
	Index int
	Item  media.Item
}

// SeenLoaded is sent when the view history lookup for the current
// page completes.
type SeenLoaded struct {
	Seen map[string]bool
	Err  error
}

// ViewRecorded is sent after a viewing has been written to history.
type ViewRecorded struct {
	ItemID string
}

// PlaybackEvent mirrors a state change of the external video player.
type PlaybackEvent struct {
	State playback.State
	Err   error
}

// debounceMsg fires when the search debounce timer elapses. Only the
// message carrying the latest sequence number commits the buffer;
// earlier timers are no-ops.
type debounceMsg struct {
	seq int
}
