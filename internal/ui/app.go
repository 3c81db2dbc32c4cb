package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/snapfest/gallery/internal/gallery"
	"github.com/snapfest/gallery/internal/media"
	"github.com/snapfest/gallery/internal/playback"
)

// DebounceDelay is how long search input must be quiet before the
// buffered term is committed to the query state.
const DebounceDelay = 500 * time.Millisecond

// AppConfig wires the App to the outside world. The App itself never
// holds the API client, the history store, or the player; it receives
// results via messages (dependency injection via command functions).
type AppConfig struct {
	Session *gallery.Session
	Columns int

	// FetchPage fetches one page for the generation-stamped query.
	FetchPage func(q gallery.Query, gen uint64) tea.Cmd
	// Normalize converts a HEIC item on demand for the viewer.
	Normalize func(item media.Item, index int) tea.Cmd
	// RecordView persists a viewing to history.
	RecordView func(item media.Item) tea.Cmd
	// LoadSeen looks up which of the given IDs were viewed before.
	LoadSeen func(ids []string) tea.Cmd

	// Video playback control; all optional.
	PlayVideo      func(src string) tea.Cmd
	TogglePlayback func() tea.Cmd
	StopPlayback   func() tea.Cmd
	// NextPlaybackEvent blocks until the player reports a state
	// change. Re-issued after every event.
	NextPlaybackEvent func() tea.Cmd
}

// App is the root Bubble Tea model.
type App struct {
	cfg     AppConfig
	session *gallery.Session

	page   *gallery.PageResult
	cursor int
	seen   map[string]bool

	viewer         Viewer
	playbackActive bool

	searchInput textinput.Model
	searching   bool
	debounceSeq int

	spinner        spinner.Model
	loadingInitial bool
	paginating     bool

	err    error
	width  int
	height int
	ready  bool
}

// NewApp creates the root model.
func NewApp(cfg AppConfig) App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#58a6ff"))

	ti := textinput.New()
	ti.Placeholder = "search title, event, author"
	ti.Prompt = ""
	ti.CharLimit = 120

	if cfg.Columns < 1 {
		cfg.Columns = 3
	}

	return App{
		cfg:     cfg,
		session: cfg.Session,
		// Init cannot mutate the model, so the initial-load flag is
		// set here; Init issues the matching fetch.
		loadingInitial: cfg.FetchPage != nil,
		searchInput:    ti,
		spinner:        s,
		seen:           make(map[string]bool),
	}
}

// Init kicks off the first fetch and the playback event listener.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick}
	if a.cfg.FetchPage != nil {
		q, gen := a.session.Next()
		cmds = append(cmds, a.cfg.FetchPage(q, gen))
	}
	if a.cfg.NextPlaybackEvent != nil {
		cmds = append(cmds, a.cfg.NextPlaybackEvent())
	}
	return tea.Batch(cmds...)
}

// startFetch stamps the current query with a fresh generation and
// returns the fetch command, setting the appropriate loading flag:
// initial load blanks the view, pagination keeps stale items visible
// under an overlay.
func (a App) startFetch(m *App) tea.Cmd {
	if a.cfg.FetchPage == nil {
		return nil
	}
	q, gen := m.session.Next()
	if m.page == nil {
		m.loadingInitial = true
	} else {
		m.paginating = true
	}
	return a.cfg.FetchPage(q, gen)
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Keyboard routing: search input first, then the viewer while
		// open, otherwise the grid. Viewer bindings exist only while
		// the viewer is open.
		if a.searching {
			return a.handleSearchKey(msg)
		}
		if a.viewer.IsOpen() {
			return a.handleViewerKey(msg)
		}
		return a.handleBrowseKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case PageLoaded:
		return a.handlePageLoaded(msg)

	case debounceMsg:
		// Only the latest timer may commit; earlier keystrokes
		// rescheduled it.
		if msg.seq != a.debounceSeq {
			return a, nil
		}
		// Evaluate before the return so the mutations commitSearch
		// makes through the receiver are in the returned model.
		cmd := a.commitSearch()
		return a, cmd

	case ItemNormalized:
		if a.page != nil && msg.Index >= 0 && msg.Index < len(a.page.Items) &&
			a.page.Items[msg.Index].ID == msg.Item.ID {
			a.page.Items[msg.Index] = msg.Item
		} else if msg.Item.Derived != nil {
			// The page changed while the conversion ran; nothing will
			// ever display this result, so it owns its derived file
			// and must release it.
			msg.Item.Derived.Release()
		}
		return a, nil

	case SeenLoaded:
		if msg.Err == nil && msg.Seen != nil {
			a.seen = msg.Seen
		}
		return a, nil

	case ViewRecorded:
		a.seen[msg.ItemID] = true
		return a, nil

	case PlaybackEvent:
		a.playbackActive = msg.State != playback.StateStopped
		a.viewer.SetPlaying(msg.State == playback.StatePlaying)
		if a.cfg.NextPlaybackEvent != nil {
			return a, a.cfg.NextPlaybackEvent()
		}
		return a, nil
	}

	return a, nil
}

// handlePageLoaded applies a completed fetch, discarding stale
// responses so the latest query always wins.
func (a App) handlePageLoaded(msg PageLoaded) (tea.Model, tea.Cmd) {
	if !a.session.Accept(msg.Gen) {
		// Stale response: release any derived resources it carried
		// and drop it on the floor.
		if msg.Result != nil {
			releaseAll(msg.Result.Items)
		}
		return a, nil
	}

	a.loadingInitial = false
	a.paginating = false

	if msg.Err != nil {
		// Keep already-displayed items; only the error bar changes.
		a.err = msg.Err
		return a, nil
	}

	if a.page != nil {
		releaseAll(a.page.Items)
	}
	a.page = msg.Result
	a.err = nil
	a.cursor = 0

	var cmds []tea.Cmd
	if a.viewer.IsOpen() {
		// A fetch issued before the viewer opened may resolve while a
		// video is playing; closing the viewer must take the player
		// down with it.
		cmds = append(cmds, a.stopPlayback())
	}
	a.viewer.Close()

	if a.cfg.LoadSeen != nil && a.page != nil {
		ids := make([]string, len(a.page.Items))
		for i, item := range a.page.Items {
			ids[i] = item.ID
		}
		cmds = append(cmds, a.cfg.LoadSeen(ids))
	}
	return a, tea.Batch(cmds...)
}

func (a App) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := 0
	if a.page != nil {
		count = len(a.page.Items)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if a.page != nil {
			releaseAll(a.page.Items)
		}
		return a, tea.Quit

	case "left", "h":
		a.cursor = MoveCursor(a.cursor, -1, count)

	case "right", "l":
		a.cursor = MoveCursor(a.cursor, 1, count)

	case "up", "k":
		a.cursor = MoveCursor(a.cursor, -a.cfg.Columns, count)

	case "down", "j":
		a.cursor = MoveCursor(a.cursor, a.cfg.Columns, count)

	case "g", "home":
		a.cursor = 0

	case "G", "end":
		if count > 0 {
			a.cursor = count - 1
		}

	case "enter":
		return a.openViewer(a.cursor)

	case "/":
		a.searching = true
		cmd := a.searchInput.Focus()
		return a, cmd

	case "f":
		a.session.Query.SetFilter(cycleFilter(a.session.Query.Filter))
		cmd := a.startFetch(&a)
		return a, cmd

	case "n":
		return a.gotoPage(a.pageIndex() + 1)

	case "p":
		return a.gotoPage(a.pageIndex() - 1)

	case "<":
		return a.gotoPage(0)

	case ">":
		if a.page != nil {
			return a.gotoPage(a.page.TotalPages - 1)
		}

	case "s":
		a.session.Query.SetPageSize(NextPageSize(a.session.Query.PageSize))
		cmd := a.startFetch(&a)
		return a, cmd

	case "r":
		// Explicit retry: reload the current query from scratch.
		a.err = nil
		cmd := a.startFetch(&a)
		return a, cmd
	}

	return a, nil
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel: restore the buffer to the settled term and
		// invalidate any pending debounce timer.
		a.searching = false
		a.searchInput.Blur()
		a.searchInput.SetValue(a.session.Query.SearchTerm)
		a.debounceSeq++
		return a, nil

	case "enter":
		a.searching = false
		a.searchInput.Blur()
		a.debounceSeq++
		cmd := a.commitSearch()
		return a, cmd
	}

	// Raw keystrokes update the buffer immediately for UI feedback;
	// propagation to the fetch layer waits for the debounce timer.
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.debounceSeq++
	seq := a.debounceSeq
	debounce := tea.Tick(DebounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
	return a, tea.Batch(cmd, debounce)
}

// commitSearch propagates the buffered term into the query state and
// refetches if it actually changed. Changing the term resets the page
// to 0 inside SetSearch.
func (a *App) commitSearch() tea.Cmd {
	term := strings.TrimSpace(a.searchInput.Value())
	if term == a.session.Query.SearchTerm {
		return nil
	}
	a.session.Query.SetSearch(term)
	return a.startFetch(a)
}

func (a App) handleViewerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := 0
	if a.page != nil {
		count = len(a.page.Items)
	}

	switch msg.String() {
	case "esc", "q":
		a.releaseAt(a.viewer.Index())
		a.viewer.Close()
		return a, a.stopPlayback()

	case "right", "l", "n":
		prev := a.viewer.Next(count)
		a.releaseAt(prev)
		return a, tea.Batch(a.stopPlayback(), a.enterItem(a.viewer.Index()))

	case "left", "h", "p":
		prev := a.viewer.Prev(count)
		a.releaseAt(prev)
		return a, tea.Batch(a.stopPlayback(), a.enterItem(a.viewer.Index()))

	case " ", "space":
		item, ok := a.currentItem(a.viewer.Index())
		if !ok || !item.IsVideo() {
			return a, nil
		}
		if !a.playbackActive {
			if a.cfg.PlayVideo != nil {
				return a, a.cfg.PlayVideo(item.Src)
			}
			return a, nil
		}
		if a.cfg.TogglePlayback != nil {
			return a, a.cfg.TogglePlayback()
		}
	}

	return a, nil
}

// openViewer transitions Closed -> Open(i) and records the viewing.
func (a App) openViewer(i int) (tea.Model, tea.Cmd) {
	count := 0
	if a.page != nil {
		count = len(a.page.Items)
	}
	if !a.viewer.Open(i, count) {
		return a, nil
	}
	return a, a.enterItem(i)
}

// enterItem runs the side effects of showing item i in the viewer:
// record the view, and kick off HEIC conversion when needed.
func (a App) enterItem(i int) tea.Cmd {
	item, ok := a.currentItem(i)
	if !ok {
		return nil
	}

	var cmds []tea.Cmd
	if a.cfg.RecordView != nil {
		cmds = append(cmds, a.cfg.RecordView(item))
	}
	if a.cfg.Normalize != nil && item.Derived == nil && media.NeedsConversion(item) {
		cmds = append(cmds, a.cfg.Normalize(item, i))
	}
	return tea.Batch(cmds...)
}

func (a App) currentItem(i int) (media.Item, bool) {
	if a.page == nil || i < 0 || i >= len(a.page.Items) {
		return media.Item{}, false
	}
	return a.page.Items[i], true
}

// releaseAt frees the derived resource of the item at i, if any, and
// restores the original locator. Exactly-once semantics come from
// Derived itself; clearing the pointer keeps later transitions cheap.
func (a *App) releaseAt(i int) {
	if a.page == nil || i < 0 || i >= len(a.page.Items) {
		return
	}
	item := &a.page.Items[i]
	if item.Derived == nil {
		return
	}
	item.Derived.Release()
	item.Derived = nil
	if item.OriginalSrc != "" {
		item.Src = item.OriginalSrc
	}
}

// releaseAll frees every derived resource in a page, used on page
// replacement, stale-response discard, and shutdown.
func releaseAll(items []media.Item) {
	for i := range items {
		if items[i].Derived != nil {
			items[i].Derived.Release()
			items[i].Derived = nil
		}
	}
}

func (a App) stopPlayback() tea.Cmd {
	if !a.playbackActive || a.cfg.StopPlayback == nil {
		return nil
	}
	return a.cfg.StopPlayback()
}

// gotoPage requests the given page only if it is within range.
func (a App) gotoPage(page int) (tea.Model, tea.Cmd) {
	total := 0
	if a.page != nil {
		total = a.page.TotalPages
	}
	if !a.session.Query.SetPage(page, total) {
		return a, nil
	}
	cmd := a.startFetch(&a)
	return a, cmd
}

func (a App) pageIndex() int {
	if a.page != nil {
		return a.page.PageIndex
	}
	return a.session.Query.Page
}

func cycleFilter(f gallery.Filter) gallery.Filter {
	switch f {
	case gallery.FilterAll:
		return gallery.FilterFeatured
	case gallery.FilterFeatured:
		return gallery.FilterImages
	case gallery.FilterImages:
		return gallery.FilterVideos
	default:
		return gallery.FilterAll
	}
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.viewer.IsOpen() {
		if item, ok := a.currentItem(a.viewer.Index()); ok {
			return RenderViewer(item, a.viewer.Index(), len(a.page.Items),
				a.width, a.height, a.viewer.Playing())
		}
	}

	var sections []string

	header := fmt.Sprintf(" SNAPFEST · %s", a.session.Query.Filter)
	if a.session.Query.SearchTerm != "" {
		header += fmt.Sprintf(" · “%s”", a.session.Query.SearchTerm)
	}
	sections = append(sections, HeaderStyle.Width(a.width).Render(header))

	if a.searching {
		bar := SearchPromptStyle.Render("/") + a.searchInput.View()
		sections = append(sections, bar)
	}

	switch {
	case a.loadingInitial:
		content := fmt.Sprintf("%s Loading gallery...", a.spinner.View())
		sections = append(sections, lipgloss.Place(a.width, a.contentHeight(),
			lipgloss.Center, lipgloss.Center, MetaStyle.Render(content)))

	case a.page != nil:
		grid := RenderGrid(a.page.Items, a.cursor, a.cfg.Columns, a.width, a.seen)
		sections = append(sections, grid)
		pagebar := RenderPageBar(a.page, a.width)
		if a.paginating {
			// Keep the stale page visible; just signal the in-flight
			// fetch instead of blanking the grid.
			pagebar += "   " + OverlayStyle.Render(a.spinner.View()+" fetching page…")
		}
		sections = append(sections, pagebar)

	default:
		sections = append(sections, MetaStyle.Render("  Nothing loaded. Press r to retry."))
	}

	if a.err != nil {
		sections = append(sections, ErrorBarStyle.Width(a.width).Render(
			"Error: "+a.err.Error()+"  [r] retry"))
	}

	left := ""
	if a.page != nil && len(a.page.Items) > 0 {
		left = fmt.Sprintf(" %d/%d ", a.cursor+1, len(a.page.Items))
	}
	sections = append(sections, RenderStatusBar(a.width, left))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a App) contentHeight() int {
	h := a.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

// Exposed for tests.

// Cursor returns the grid cursor position.
func (a App) Cursor() int { return a.cursor }

// Page returns the currently applied page result.
func (a App) Page() *gallery.PageResult { return a.page }

// Err returns the current error state.
func (a App) Err() error { return a.err }

// ViewerState returns the viewer model.
func (a App) ViewerState() Viewer { return a.viewer }

// Paginating reports whether a page fetch is in flight with items
// still on screen.
func (a App) Paginating() bool { return a.paginating }

// LoadingInitial reports whether the first fetch is in flight.
func (a App) LoadingInitial() bool { return a.loadingInitial }

// DebounceSeq returns the current debounce sequence (test hook).
func (a App) DebounceSeq() int { return a.debounceSeq }

// SearchBuffer returns the raw input buffer.
func (a App) SearchBuffer() string { return a.searchInput.Value() }
