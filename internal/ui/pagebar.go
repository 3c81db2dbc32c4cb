package ui

import (
	"fmt"
	"strings"

	"github.com/snapfest/gallery/internal/gallery"
)

// PageSizes are the selectable page sizes, cycled with the size key.
var PageSizes = []int{12, 24, 48, 96}

// NextPageSize returns the size after current in the cycle.
func NextPageSize(current int) int {
	for i, s := range PageSizes {
		if s == current {
			return PageSizes[(i+1)%len(PageSizes)]
		}
	}
	return PageSizes[0]
}

// RenderPageBar draws the pagination controls: range summary, nav
// buttons, and the sliding page-number window.
func RenderPageBar(page *gallery.PageResult, width int) string {
	if page == nil {
		return ""
	}

	first, last, total := page.RangeSummary()
	var summary string
	if total == 0 {
		summary = MetaStyle.Render("0 items")
	} else {
		summary = MetaStyle.Render(fmt.Sprintf("%d–%d of %d", first, last, total))
	}

	var parts []string

	navStyle := func(enabled bool) func(...string) string {
		if enabled {
			return PageNavStyle.Render
		}
		return PageNavDimStyle.Render
	}

	atFirst := page.PageIndex <= 0
	atLast := page.TotalPages == 0 || page.PageIndex >= page.TotalPages-1

	parts = append(parts, navStyle(!atFirst)("|◀"))
	parts = append(parts, navStyle(!atFirst)("◀"))

	for _, p := range gallery.Window(page.TotalPages, page.PageIndex) {
		label := fmt.Sprintf("%d", p+1)
		if p == page.PageIndex {
			parts = append(parts, PageCurStyle.Render(label))
		} else {
			parts = append(parts, PageNumStyle.Render(label))
		}
	}

	parts = append(parts, navStyle(!atLast)("▶"))
	parts = append(parts, navStyle(!atLast)("▶|"))

	size := MetaStyle.Render(fmt.Sprintf("size %d", page.PageSize))

	bar := summary + "   " + strings.Join(parts, " ") + "   " + size
	return bar
}
