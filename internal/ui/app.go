package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/five82/leaflet/internal/bookstore"
	"github.com/five82/leaflet/internal/catalog"
	"github.com/five82/leaflet/internal/logtail"
	"github.com/five82/leaflet/internal/prefs"
	"github.com/five82/leaflet/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewCatalog View = iota
	ViewArrivals
	ViewActivity
)

// activityLines is how much of the log file the activity view shows.
const activityLines = 500

func (v View) title() string {
	switch v {
	case ViewArrivals:
		return "New Arrivals"
	case ViewActivity:
		return "Activity"
	default:
		return "Catalog"
	}
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Service      bookstore.Service
	APIURL       string
	LogPath      string
	RefreshEvery time.Duration // zero disables periodic refresh
	ThemeName    string
	SortKey      string
	PrefsPath    string
}

// browser is one fetched list with its own query and selection.
type browser struct {
	store    *state.Store
	query    catalog.State
	display  state.Display
	selected int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	svc          bookstore.Service
	apiURL       string
	logPath      string
	prefsPath    string
	refreshEvery time.Duration
	keys         keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	engine   *catalog.Engine
	catalog  browser
	arrivals browser

	// Activity log
	activity        viewport.Model
	activityEntries []logtail.Entry
	activityErr     error

	// Widgets
	searching bool
	search    textinput.Model
	spinner   spinner.Model
	pager     paginator.Model

	// detail is the latest single-book fetch for the detail pane.
	detail *bookstore.Book

	modal    Modal
	showHelp bool
	notice   string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	query := catalog.NewState()
	if opts.SortKey != "" {
		query.SetSort(catalog.SortKey(opts.SortKey))
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "title or author"
	search.CharLimit = 80

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.PerPage = catalog.PageSize
	pager.ActiveDot = "●"
	pager.InactiveDot = "○"

	return Model{
		ctx:          ctx,
		svc:          opts.Service,
		apiURL:       opts.APIURL,
		logPath:      opts.LogPath,
		prefsPath:    prefsPath,
		refreshEvery: opts.RefreshEvery,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(themeName),
		currentView:  ViewCatalog,
		engine:       catalog.NewEngine(0),
		catalog:      browser{store: &state.Store{}, query: query},
		arrivals:     browser{store: &state.Store{}, query: catalog.NewState()},
		search:       search,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		pager:        pager,
		activity:     viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		m.spinner.Tick,
		m.beginFetch(ViewCatalog),
	}
	if m.refreshEvery > 0 {
		cmds = append(cmds, refreshTickCmd(m.refreshEvery))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = maxInt(m.width/3, 20)
		m.activity.Width = maxInt(m.width-2, 0)
		m.activity.Height = maxInt(m.height-chromeRows-2, 0)
		m.setActivityContent()
		return m, nil

	case spinner.TickMsg:
		if !m.anyLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case booksMsg:
		b := m.browserFor(msg.view)
		if !b.store.Complete(msg.ticket, msg.books, msg.err) {
			log.Debug().Uint64("ticket", uint64(msg.ticket)).Msg("discarding stale fetch result")
			return m, nil
		}
		if msg.err == nil {
			m.detail = nil
		}
		m.recompute(msg.view)
		return m, nil

	case detailMsg:
		if msg.err != nil {
			m.notice = "Details failed: " + msg.err.Error()
			return m, nil
		}
		m.detail = msg.book
		m.notice = "Details refreshed"
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.notice = "Delete failed: " + msg.err.Error()
			return m, nil
		}
		m.notice = "Deleted \"" + truncate(msg.title, 40) + "\""
		cmd := m.refetchAfterDelete()
		return m, cmd

	case activityMsg:
		m.activityEntries = msg.entries
		m.activityErr = msg.err
		m.setActivityContent()
		m.activity.GotoBottom()
		return m, nil

	case refreshTickMsg:
		var cmds []tea.Cmd
		if !m.catalog.store.InFlight() {
			cmds = append(cmds, m.beginFetch(ViewCatalog), m.spinner.Tick)
		}
		cmds = append(cmds, refreshTickCmd(m.refreshEvery))
		return m, tea.Batch(cmds...)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.setActivityContent()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		switch m.currentView {
		case ViewCatalog:
			return m.switchView(ViewArrivals)
		case ViewArrivals:
			return m.switchView(ViewActivity)
		default:
			return m.switchView(ViewCatalog)
		}

	case key.Matches(msg, m.keys.ViewCatalog):
		return m.switchView(ViewCatalog)

	case key.Matches(msg, m.keys.ViewArrivals):
		return m.switchView(ViewArrivals)

	case key.Matches(msg, m.keys.ViewActivity):
		return m.switchView(ViewActivity)

	case key.Matches(msg, m.keys.Escape):
		if m.currentView != ViewCatalog {
			return m.switchView(ViewCatalog)
		}
		if m.catalog.query.SearchTerm != "" {
			m.search.SetValue("")
			m.catalog.query.SetSearchTerm("")
			m.recompute(ViewCatalog)
		}
		m.notice = ""
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.notice = ""
		if m.currentView == ViewActivity {
			return m, loadActivityCmd(m.logPath)
		}
		cmd := m.beginFetch(m.currentView)
		return m, tea.Batch(cmd, m.spinner.Tick)
	}

	if m.currentView == ViewActivity {
		return m.handleActivityKey(msg)
	}

	b := m.active()
	if b.display.Kind != state.DisplayReady {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(b.query.SearchTerm)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.NextCategory):
		b.query.CycleCategory(1)
	case key.Matches(msg, m.keys.PrevCategory):
		b.query.CycleCategory(-1)
	case key.Matches(msg, m.keys.NextSort):
		b.query.CycleSort(1)
		m.recompute(m.currentView)
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.PrevSort):
		b.query.CycleSort(-1)
		m.recompute(m.currentView)
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		b.query.NextPage()
	case key.Matches(msg, m.keys.PrevPage):
		b.query.PrevPage()

	case key.Matches(msg, m.keys.Down):
		if b.selected < len(b.display.Page.Books)-1 {
			b.selected++
		}
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if b.selected > 0 {
			b.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		b.selected = 0
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		b.selected = maxInt(len(b.display.Page.Books)-1, 0)
		return m, nil

	case key.Matches(msg, m.keys.Details):
		if book, ok := m.selectedBook(); ok {
			return m, m.detailCmd(book.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if book, ok := m.selectedBook(); ok {
			m.modal = newDeleteConfirm(book, m.deleteCmd(book))
		}
		return m, nil

	default:
		return m, nil
	}

	m.recompute(m.currentView)
	return m, nil
}

// handleSearchKey routes keys to the search input. The query follows the
// input as the user types.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.active()
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		b.query.SetSearchTerm("")
		m.recompute(m.currentView)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != b.query.SearchTerm {
		b.query.SetSearchTerm(m.search.Value())
		m.recompute(m.currentView)
	}
	return m, cmd
}

// handleActivityKey scrolls the activity log.
func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Top):
		m.activity.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.activity.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.activity, cmd = m.activity.Update(msg)
	return m, cmd
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	m.notice = ""
	if v == ViewActivity {
		return m, loadActivityCmd(m.logPath)
	}
	b := m.browserFor(v)
	if v == ViewArrivals && !b.store.Catalog().Loaded() && !b.store.InFlight() {
		cmd := m.beginFetch(v)
		return m, tea.Batch(cmd, m.spinner.Tick)
	}
	m.recompute(v)
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	log.Debug().Int("cache_hits", m.engine.Hits()).Msg("releasing query cache")
	m.engine.Purge()
	m.catalog.store.Close()
	m.arrivals.store.Close()
	return m, tea.Quit
}

// active returns the browser of the current view.
func (m *Model) active() *browser {
	return m.browserFor(m.currentView)
}

func (m *Model) browserFor(v View) *browser {
	if v == ViewArrivals {
		return &m.arrivals
	}
	return &m.catalog
}

// recompute re-runs the query for view and keeps the page index and the
// selection inside the result.
func (m *Model) recompute(v View) {
	b := m.browserFor(v)
	b.display = state.Project(b.store, m.engine, b.query)
	if b.display.Kind != state.DisplayReady {
		return
	}
	page := b.display.Page
	b.query.PageIndex = page.PageIndex
	if b.selected >= len(page.Books) {
		b.selected = maxInt(len(page.Books)-1, 0)
	}
	if v == m.currentView {
		m.pager.TotalPages = page.TotalPages
		m.pager.Page = page.PageIndex - 1
	}
}

func (m Model) anyLoading() bool {
	return m.catalog.store.InFlight() || m.arrivals.store.InFlight()
}

func (m Model) selectedBook() (bookstore.Book, bool) {
	b := m.browserFor(m.currentView)
	books := b.display.Page.Books
	if b.selected < 0 || b.selected >= len(books) {
		return bookstore.Book{}, false
	}
	return books[b.selected], true
}

// beginFetch starts a fetch for view and marks it loading.
func (m *Model) beginFetch(v View) tea.Cmd {
	b := m.browserFor(v)
	ticket := b.store.BeginFetch()
	b.display = state.Project(b.store, m.engine, b.query)
	if m.svc == nil {
		return nil
	}
	log.Debug().Str("view", v.title()).Uint64("ticket", uint64(ticket)).Msg("fetch started")
	return fetchCmd(m.ctx, m.svc, v, ticket)
}

func (m *Model) refetchAfterDelete() tea.Cmd {
	cmds := []tea.Cmd{m.beginFetch(ViewCatalog), m.spinner.Tick}
	if !m.arrivals.store.Snapshot().LastUpdated.IsZero() || m.arrivals.store.InFlight() {
		cmds = append(cmds, m.beginFetch(ViewArrivals))
	}
	return tea.Batch(cmds...)
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Sort: string(m.catalog.query.SortKey)}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Warn().Err(err).Msg("save prefs")
	}
}

// renderMain renders the header, command bar and active view.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	if m.currentView == ViewActivity {
		b.WriteString(m.renderActivity())
	} else {
		b.WriteString(m.renderCatalog())
	}

	return b.String()
}

// Messages

type booksMsg struct {
	view   View
	ticket state.Ticket
	books  []bookstore.Book
	err    error
}

type detailMsg struct {
	book *bookstore.Book
	err  error
}

type deletedMsg struct {
	id    int64
	title string
	err   error
}

type refreshTickMsg time.Time

type activityMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func refreshTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func fetchCmd(ctx context.Context, svc bookstore.Service, v View, ticket state.Ticket) tea.Cmd {
	return func() tea.Msg {
		var (
			books []bookstore.Book
			err   error
		)
		if v == ViewArrivals {
			books, err = svc.FetchNewBooks(ctx)
		} else {
			books, err = svc.FetchBooks(ctx)
		}
		return booksMsg{view: v, ticket: ticket, books: books, err: err}
	}
}

func loadActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		entries, err := logtail.Tail(path, activityLines)
		return activityMsg{entries: entries, err: err}
	}
}

func (m Model) detailCmd(id int64) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		if svc == nil {
			return detailMsg{err: fmt.Errorf("no service")}
		}
		book, err := svc.FetchBook(ctx, id)
		return detailMsg{book: book, err: err}
	}
}

func (m Model) deleteCmd(book bookstore.Book) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		if svc == nil {
			return deletedMsg{id: book.ID, title: book.Title}
		}
		err := svc.DeleteBook(ctx, book.ID)
		return deletedMsg{id: book.ID, title: book.Title, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.catalog.store.Close()
		fm.arrivals.store.Close()
	}
	return err
}
