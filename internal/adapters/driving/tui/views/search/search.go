// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

// View represents the search view with input, results list, and status bar.
// Searches run as the user types: each keystroke bumps a generation
// counter and schedules a debounce tick; only the tick carrying the
// newest generation dispatches a search. Dispatches carry a sequence
// number so completions that arrive after a newer dispatch are dropped.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	session  driving.SearchSession
	settings driving.SettingsService
	ctx      context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)

	debounce      time.Duration
	scope         domain.SearchScope
	limit         int
	caseSensitive bool

	generation  int // newest keystroke generation
	sequence    int // newest dispatched search
	lastQuery   string
	suggestions []string
	submitted   bool // enter-submitted search moves focus to results on completion
}

// NewView creates a new search view. Debounce interval and default
// search options come from the settings service when one is provided.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	session driving.SearchSession,
	settings driving.SettingsService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	defaults := domain.DefaultAppSettings()
	v := &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		session:       session,
		settings:      settings,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		ready:         false,
		focusInput:    true, // Start in input mode
		debounce:      time.Duration(defaults.UI.DebounceMs) * time.Millisecond,
		scope:         domain.ScopeAll,
		limit:         0,
		caseSensitive: defaults.Search.CaseSensitive,
	}

	if settings != nil {
		if cfg, err := settings.Get(); err == nil && cfg != nil {
			if cfg.UI.DebounceMs > 0 {
				v.debounce = time.Duration(cfg.UI.DebounceMs) * time.Millisecond
			}
			if cfg.Search.DefaultScope.IsValid() {
				v.scope = cfg.Search.DefaultScope
			}
			v.limit = cfg.Search.DefaultLimit
			v.caseSensitive = cfg.Search.CaseSensitive
		}
	}

	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DebounceElapsed:
		if msg.Generation != v.generation {
			// Superseded by newer keystrokes.
			return v, nil
		}
		return v, v.dispatchSearch(msg.Query, false)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward to input component
	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	// Forward to list component
	var listCmd tea.Cmd
	v.list, listCmd = v.list.Update(msg)
	if listCmd != nil {
		cmds = append(cmds, listCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	// Enter in input mode submits immediately, bypassing the debounce
	if msg.Type == tea.KeyEnter && v.focusInput {
		query := v.input.Value()
		if strings.TrimSpace(query) == "" {
			return v, nil
		}
		v.generation++ // invalidate pending debounce ticks
		return v, v.dispatchSearch(query, true)
	}

	// Down or tab in input mode moves into the results list
	if v.focusInput && (msg.Type == tea.KeyDown || msg.Type == tea.KeyTab) && !v.list.IsEmpty() {
		v.focusInput = false
		v.input.Blur()
		return v, nil
	}

	// Input mode: all keys go to input, changed text schedules a debounce tick
	if v.focusInput {
		return v.handleInputKey(msg)
	}

	// Results mode: Enter records the selection on the session
	if msg.Type == tea.KeyEnter {
		if result := v.list.SelectedResult(); result != nil {
			if v.session != nil {
				v.session.SelectResult(v.list.Selected())
			}
			v.statusbar.SetMessage("Selected: " + result.Title)
		}
		return v, nil
	}

	// Results mode: handle navigation
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
		return v, nil
	case "j":
		v.list.MoveDown()
		return v, nil
	case "n":
		// New search: clear input and focus it
		v.focusInput = true
		v.input.Focus()
		v.input.SetValue("")
		v.lastQuery = ""
		v.generation++
		if v.session != nil {
			v.session.ClearSearch()
		}
		v.list.SetResults(nil)
		v.suggestions = nil
		v.statusbar.Clear()
		return v, nil
	}

	return v, nil
}

// handleInputKey forwards a key to the input and schedules a debounce
// tick when the query text changed.
func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)

	query := v.input.Value()
	if query == v.lastQuery {
		return v, inputCmd
	}
	v.lastQuery = query
	v.generation++

	if strings.TrimSpace(query) == "" {
		// Blank input clears the display without touching the session.
		v.list.SetResults(nil)
		v.suggestions = nil
		v.err = nil
		v.statusbar.Clear()
		return v, inputCmd
	}

	v.statusbar.SetState(status.StateTyping)
	gen := v.generation
	tick := tea.Tick(v.debounce, func(time.Time) tea.Msg {
		return messages.DebounceElapsed{Generation: gen, Query: query}
	})
	return v, tea.Batch(inputCmd, tick)
}

// dispatchSearch issues a search under a fresh sequence number.
func (v *View) dispatchSearch(query string, submitted bool) tea.Cmd {
	v.sequence++
	v.submitted = submitted
	v.statusbar.SetState(status.StateSearching)
	return v.performSearch(v.sequence, query)
}

// performSearch executes a search and returns results.
func (v *View) performSearch(seq int, query string) tea.Cmd {
	return func() tea.Msg {
		if v.session == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchSession}
		}

		opts := domain.SearchOptions{
			Query:         query,
			Scope:         v.scope,
			CaseSensitive: v.caseSensitive,
			Limit:         v.limit,
		}
		results, err := v.session.PerformSearch(v.ctx, opts)
		if err != nil {
			return messages.SearchCompleted{Sequence: seq, Query: query, Err: err}
		}

		suggestions, _ := v.session.Suggestions(v.ctx, query)
		return messages.SearchCompleted{
			Sequence:    seq,
			Query:       query,
			Results:     results,
			Suggestions: suggestions,
		}
	}
}

// handleSearchCompleted processes search results. Completions from
// searches older than the newest dispatch are discarded.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Sequence < v.sequence {
		return // last call wins
	}

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.suggestions = msg.Suggestions
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetResultCount(len(msg.Results))

	// An enter-submitted search hands focus to the results list; live
	// completions leave the user typing.
	if v.submitted {
		v.focusInput = false
		v.input.Blur()
		v.submitted = false
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	// Header
	header := v.styles.Title.Render("Recall")
	sections = append(sections, header, "")

	// Search input
	inputView := v.input.View()
	sections = append(sections, inputView)

	// Suggestion hints while typing
	if v.focusInput && len(v.suggestions) > 0 && v.input.Value() != "" {
		hints := v.styles.Muted.Render("Suggestions: " + strings.Join(v.suggestions, ", "))
		sections = append(sections, hints)
	}
	sections = append(sections, "")

	// Error display
	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	// Results list
	listView := v.list.View()
	sections = append(sections, listView)

	// Status bar at bottom
	sections = append(sections, "")
	statusView := v.statusbar.View()
	sections = append(sections, statusView)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Allocate space to components
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-11) // Reserve space for header, input, hints, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
	v.lastQuery = query
}

// Results returns the current search results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// Suggestions returns the current suggestion hints.
func (v *View) Suggestions() []string {
	return v.suggestions
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.lastQuery = ""
	v.generation++ // orphan any pending debounce ticks
	v.suggestions = nil
	v.list.SetResults(nil)
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Debounce returns the live-search debounce interval.
func (v *View) Debounce() time.Duration {
	return v.debounce
}
