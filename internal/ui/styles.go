package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Header bar across the top of the screen.
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0d1117")).
			Background(lipgloss.Color("#58a6ff")).
			Bold(true).
			Padding(0, 1)

	// Grid cells
	CellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#30363d")).
			Padding(0, 1)

	SelectedCellStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(lipgloss.Color("#58a6ff")).
				Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c9d1d9")).
			Bold(true)

	SeenTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#484f58"))

	MetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e"))

	FeaturedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d29922")).
			Bold(true)

	VideoBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0d1117")).
			Background(lipgloss.Color("#d2a8ff")).
			Padding(0, 1)

	ImageBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0d1117")).
			Background(lipgloss.Color("#7ee787")).
			Padding(0, 1)

	// Pagination bar
	PageNumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e")).
			Padding(0, 1)

	PageCurStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0d1117")).
			Background(lipgloss.Color("#58a6ff")).
			Bold(true).
			Padding(0, 1)

	PageNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c9d1d9"))

	PageNavDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#30363d"))

	// Status / error bars
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e")).
			Background(lipgloss.Color("#161b22"))

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#58a6ff")).
			Background(lipgloss.Color("#161b22")).
			Bold(true)

	ErrorBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#f85149")).
			Padding(0, 1)

	// Search bar
	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#58a6ff")).
				Bold(true)

	// Viewer overlay
	ViewerFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("#58a6ff")).
				Padding(1, 2)

	ViewerTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff")).
				Bold(true)

	ViewerMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e"))

	ViewerSrcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#58a6ff")).
			Underline(true)

	OverlayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d29922")).
			Italic(true)
)
