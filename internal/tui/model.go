// Package tui implements the interactive transaction history browser.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/dompet/internal/history"
	"github.com/Veraticus/dompet/internal/ledger"
	"github.com/Veraticus/dompet/internal/model"
	"github.com/Veraticus/dompet/internal/tui/themes"
)

// State represents what the browser is waiting for.
type State int

// Browser states.
const (
	StateBrowse State = iota
	StateCategoryQuery
	StateDateQuery
	StateConfirmDelete
)

// Config holds TUI configuration.
type Config struct {
	Theme         themes.Theme
	Location      *time.Location
	Now           func() time.Time
	CategoryQuery string
	DateQuery     string
	PageSize      int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// WithTheme sets the color scheme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) { c.Theme = theme }
}

// WithPageSize sets how many transactions each page adds.
func WithPageSize(n int) Option {
	return func(c *Config) { c.PageSize = n }
}

// WithLocation sets the time zone used for date filters and grouping.
func WithLocation(loc *time.Location) Option {
	return func(c *Config) { c.Location = loc }
}

// WithClock overrides the time used for Today and Yesterday.
func WithClock(now func() time.Time) Option {
	return func(c *Config) { c.Now = now }
}

// WithFilter starts the browser with filters already applied.
func WithFilter(category, date string) Option {
	return func(c *Config) {
		c.CategoryQuery = category
		c.DateQuery = date
	}
}

func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		Location: time.Local,
		Now:      time.Now,
		PageSize: history.DefaultPageSize,
	}
}

// Model holds the browser state.
type Model struct {
	ctx       context.Context
	source    Source
	lastError error
	window    *history.Window
	snapshot  *ledger.Snapshot
	config    Config
	theme     themes.Theme
	input     textinput.Model
	help      help.Model
	keymap    KeyMap
	status    string
	pendingID int64
	cursor    int
	width     int
	height    int
	state     State
	ready     bool
	quitting  bool
}

// New creates a browser model reading from source.
func New(ctx context.Context, source Source, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	window := history.NewWindow(nil, cfg.PageSize, cfg.Location)
	window.SetCategoryQuery(cfg.CategoryQuery)
	window.SetDateQuery(cfg.DateQuery)

	input := textinput.New()
	input.CharLimit = 64

	return Model{
		ctx:    ctx,
		source: source,
		config: cfg,
		theme:  cfg.Theme,
		window: window,
		input:  input,
		help:   help.New(),
		keymap: DefaultKeyMap(),
		width:  80,
		height: 24,
	}
}

// Init loads the first snapshot.
func (m Model) Init() tea.Cmd {
	return m.loadSnapshot()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case snapshotLoadedMsg:
		m.ready = true
		if msg.err != nil {
			// Keep showing the previous data.
			slog.WarnContext(m.ctx, "failed to reload wallet", "error", msg.err)
			m.lastError = msg.err
			return m, nil
		}
		m.lastError = nil
		m.snapshot = msg.snapshot
		m.window.SetTransactions(msg.snapshot.Transactions)
		m.clampCursor()
		return m, nil

	case transactionDeletedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.lastError = nil
		m.status = fmt.Sprintf("Deleted transaction #%d", msg.id)
		return m, m.loadSnapshot()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.editing() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateCategoryQuery, StateDateQuery:
		return m.handleInputKey(msg)
	case StateConfirmDelete:
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		} else if m.window.HasMore() {
			m.window.LoadMore()
			m.cursor++
		}

	case key.Matches(msg, m.keymap.Home):
		m.cursor = 0

	case key.Matches(msg, m.keymap.LoadMore):
		m.window.LoadMore()

	case key.Matches(msg, m.keymap.FilterCategory):
		return m.startInput(StateCategoryQuery, "Category: ", m.window.Filter().Category)

	case key.Matches(msg, m.keymap.FilterDate):
		return m.startInput(StateDateQuery, "Date (YYYY-MM-DD): ", m.window.Filter().Date)

	case key.Matches(msg, m.keymap.ClearFilters):
		m.window.SetCategoryQuery("")
		m.window.SetDateQuery("")
		m.cursor = 0
		m.status = "Filters cleared"

	case key.Matches(msg, m.keymap.Delete):
		if txn, ok := m.Selected(); ok {
			m.pendingID = txn.ID
			m.state = StateConfirmDelete
		}

	case key.Matches(msg, m.keymap.Refresh):
		return m, m.loadSnapshot()

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) startInput(state State, prompt, value string) (tea.Model, tea.Cmd) {
	m.state = state
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.status = ""
	return m, m.input.Focus()
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// The category filter is live, so leaving keeps what was typed.
		m.state = StateBrowse
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		value := m.input.Value()
		if m.state == StateDateQuery {
			if _, err := time.Parse(history.DateKeyLayout, value); value != "" && err != nil {
				m.lastError = fmt.Errorf("date must look like 2024-03-15, got %q", value)
				return m, nil
			}
			m.window.SetDateQuery(value)
		} else {
			m.window.SetCategoryQuery(value)
		}
		m.lastError = nil
		m.cursor = 0
		m.state = StateBrowse
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.state == StateCategoryQuery {
		m.window.SetCategoryQuery(m.input.Value())
		m.clampCursor()
	}
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		id := m.pendingID
		m.pendingID = 0
		m.state = StateBrowse
		return m, m.deleteTransaction(id)
	case key.Matches(msg, m.keymap.Cancel):
		m.pendingID = 0
		m.state = StateBrowse
	}
	return m, nil
}

func (m Model) editing() bool {
	return m.state == StateCategoryQuery || m.state == StateDateQuery
}

// rows returns the visible transactions in display order, bucket by bucket.
func (m Model) rows() []model.Transaction {
	var rows []model.Transaction
	for _, group := range m.window.Groups(m.config.Now()) {
		rows = append(rows, group.Transactions...)
	}
	return rows
}

// Selected returns the transaction under the cursor.
func (m Model) Selected() (model.Transaction, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return model.Transaction{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	if last := len(m.rows()) - 1; m.cursor > last {
		m.cursor = max(last, 0)
	}
}
