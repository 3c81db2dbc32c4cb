package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/snapfest/gallery/internal/media"
)

// Viewer is the lightbox: a modal overlay showing one item at a time
// with circular prev/next navigation over the current page's items.
// States are Closed and Open(index); keyboard input is routed here
// only while open.
type Viewer struct {
	open    bool
	index   int
	playing bool
}

// IsOpen reports whether the viewer is showing an item.
func (v Viewer) IsOpen() bool { return v.open }

// Index returns the current item index; only meaningful while open.
func (v Viewer) Index() int { return v.index }

// Playing reports the video playback sub-state.
func (v Viewer) Playing() bool { return v.playing }

// Open transitions Closed -> Open(i). Out-of-range indices are
// ignored.
func (v *Viewer) Open(i, n int) bool {
	if i < 0 || i >= n {
		return false
	}
	v.open = true
	v.index = i
	v.playing = false
	return true
}

// Close transitions to Closed.
func (v *Viewer) Close() {
	v.open = false
	v.playing = false
}

// Next advances circularly over the current page's n items and
// returns the index navigated away from. Navigation never crosses
// page boundaries.
func (v *Viewer) Next(n int) int {
	prev := v.index
	if n > 0 {
		v.index = (v.index + 1) % n
	}
	v.playing = false
	return prev
}

// Prev steps back circularly and returns the index navigated away
// from.
func (v *Viewer) Prev(n int) int {
	prev := v.index
	if n > 0 {
		v.index = (v.index - 1 + n) % n
	}
	v.playing = false
	return prev
}

// SetPlaying records the playback sub-state as reported by the
// player's own events.
func (v *Viewer) SetPlaying(playing bool) {
	v.playing = playing
}

// RenderViewer draws the lightbox overlay for the given item.
func RenderViewer(item media.Item, index, total, width, height int, playing bool) string {
	var b strings.Builder

	title := item.Title
	if title == "" {
		title = item.ID
	}
	b.WriteString(ViewerTitleStyle.Render(title))
	b.WriteString("\n\n")

	badge := ImageBadgeStyle.Render("IMAGE")
	if item.IsVideo() {
		badge = VideoBadgeStyle.Render("VIDEO")
	}
	b.WriteString(badge)
	if item.Featured {
		b.WriteString("  " + FeaturedStyle.Render("★ featured"))
	}
	b.WriteString("\n\n")

	if item.Event != "" {
		b.WriteString(ViewerMetaStyle.Render("Event   ") + item.Event + "\n")
	}
	if item.Author != "" {
		b.WriteString(ViewerMetaStyle.Render("By      ") + item.Author + "\n")
	}
	if !item.Date.IsZero() {
		b.WriteString(ViewerMetaStyle.Render("Taken   ") + item.Date.Format("2006-01-02 15:04") + "\n")
	}
	b.WriteString(ViewerMetaStyle.Render("Source  ") + ViewerSrcStyle.Render(item.Src) + "\n")
	if item.OriginalSrc != "" && item.OriginalSrc != item.Src {
		b.WriteString(ViewerMetaStyle.Render("Original") + " " + ViewerSrcStyle.Render(item.OriginalSrc) + "\n")
	}

	b.WriteString("\n")
	if item.IsVideo() {
		state := "⏸ paused"
		if playing {
			state = "▶ playing"
		}
		b.WriteString(OverlayStyle.Render(state) + ViewerMetaStyle.Render("  [space] play/pause") + "\n")
	}

	pos := fmt.Sprintf("%d / %d", index+1, total)
	hints := ViewerMetaStyle.Render("[←/→] prev/next  [esc] close")
	b.WriteString("\n" + ViewerMetaStyle.Render(pos) + "  " + hints)

	frame := ViewerFrameStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, frame)
}
