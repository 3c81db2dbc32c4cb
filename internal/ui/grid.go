package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/snapfest/gallery/internal/media"
)

// RenderGrid draws the current page of items as a bordered grid with
// a cursor. seen dims items already opened in the viewer before.
func RenderGrid(items []media.Item, cursor, columns, width int, seen map[string]bool) string {
	if columns < 1 {
		columns = 1
	}
	if len(items) == 0 {
		return MetaStyle.Render("  No media for this query. Try clearing the search or filter.")
	}

	cellWidth := width/columns - 4
	if cellWidth < 16 {
		cellWidth = 16
	}

	var rows []string
	for start := 0; start < len(items); start += columns {
		end := start + columns
		if end > len(items) {
			end = len(items)
		}

		cells := make([]string, 0, columns)
		for i := start; i < end; i++ {
			cells = append(cells, renderCell(items[i], i == cursor, cellWidth, seen[items[i].ID]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCell draws a single grid cell: badge line, title, meta line.
func renderCell(item media.Item, selected bool, width int, seen bool) string {
	badge := ImageBadgeStyle.Render("IMG")
	if item.IsVideo() {
		badge = VideoBadgeStyle.Render("VID")
	}

	head := badge
	if item.Featured {
		head += " " + FeaturedStyle.Render("★")
	}

	title := item.Title
	if title == "" {
		title = item.ID
	}
	titleStyle := TitleStyle
	if seen {
		titleStyle = SeenTitleStyle
	}
	titleLine := titleStyle.Render(fitCell(title, width))

	meta := item.Author
	if item.Event != "" {
		if meta != "" {
			meta += " · "
		}
		meta += item.Event
	}
	metaLine := MetaStyle.Render(fitCell(meta, width))

	content := head + "\n" + titleLine + "\n" + metaLine

	style := CellStyle
	if selected {
		style = SelectedCellStyle
	}
	return style.Width(width).Render(content)
}

// fitCell truncates to the cell width, keeping wide runes intact.
func fitCell(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// MoveCursor applies a grid movement to the cursor and returns the
// new position, clamped to the item count.
func MoveCursor(cursor, delta, count int) int {
	if count == 0 {
		return 0
	}
	next := cursor + delta
	if next < 0 {
		return cursor
	}
	if next >= count {
		return cursor
	}
	return next
}

// RenderStatusBar draws the bottom bar with key hints and position.
func RenderStatusBar(width int, left string) string {
	keys := []string{
		StatusKeyStyle.Render("←↑↓→") + StatusBarStyle.Render(":move"),
		StatusKeyStyle.Render("enter") + StatusBarStyle.Render(":view"),
		StatusKeyStyle.Render("/") + StatusBarStyle.Render(":search"),
		StatusKeyStyle.Render("f") + StatusBarStyle.Render(":filter"),
		StatusKeyStyle.Render("n/p") + StatusBarStyle.Render(":page"),
		StatusKeyStyle.Render("s") + StatusBarStyle.Render(":size"),
		StatusKeyStyle.Render("r") + StatusBarStyle.Render(":reload"),
		StatusKeyStyle.Render("q") + StatusBarStyle.Render(":quit"),
	}
	hints := strings.Join(keys, " ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(hints)
	if padding < 1 {
		padding = 1
	}
	bar := left + strings.Repeat(" ", padding) + hints
	return StatusBarStyle.Width(width).Render(bar)
}
