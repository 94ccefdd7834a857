// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionScope
	SectionNumber
)

// numberField identifies which numeric setting the number section edits.
type numberField int

const (
	fieldLimit numberField = iota
	fieldDebounce
	fieldHistory
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
)

// Overview row order.
const (
	rowScope = iota
	rowLimit
	rowCaseSensitive
	rowDebounce
	rowHistory
	overviewRows
)

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	err      error

	// Navigation state
	section  Section
	selected int // selection within current section
	field    numberField

	// Text input for numeric settings
	numberInput textinput.Model

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	numberInput := textinput.New()
	numberInput.Placeholder = "number"
	numberInput.CharLimit = 6
	numberInput.Width = 10

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		numberInput:     numberInput,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.section = SectionOverview
		v.numberInput.SetValue("")
		v.numberInput.Blur()
		// Reload settings after save
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses based on current section.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Global escape to go back
	if msg.String() == "esc" {
		switch v.section {
		case SectionOverview:
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		default:
			v.section = SectionOverview
			v.numberInput.SetValue("")
			v.numberInput.Blur()
			return v, nil
		}
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionScope:
		return v.handleScopeKeys(msg)
	case SectionNumber:
		return v.handleNumberKeys(msg)
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < overviewRows-1 {
			v.selected++
		}
	case keyEnter:
		switch v.selected {
		case rowScope:
			v.section = SectionScope
			v.selected = v.currentScopeIndex()
		case rowLimit:
			return v.openNumberSection(fieldLimit)
		case rowCaseSensitive:
			// Toggle in place
			if v.settings != nil {
				return v, v.setCaseSensitive(!v.settings.Search.CaseSensitive)
			}
		case rowDebounce:
			return v.openNumberSection(fieldDebounce)
		case rowHistory:
			return v.openNumberSection(fieldHistory)
		}
	}
	return v, nil
}

// openNumberSection switches to the numeric entry section preloaded
// with the current value.
func (v *View) openNumberSection(field numberField) (*View, tea.Cmd) {
	v.section = SectionNumber
	v.field = field
	v.numberInput.SetValue(strconv.Itoa(v.currentNumberValue(field)))
	cmd := v.numberInput.Focus()
	return v, cmd
}

func (v *View) handleScopeKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	scopes := domain.AllSearchScopes()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(scopes)-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < len(scopes) {
			return v, v.setScope(scopes[v.selected])
		}
	}
	return v, nil
}

func (v *View) handleNumberKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == keyEnter {
		value, err := strconv.Atoi(strings.TrimSpace(v.numberInput.Value()))
		if err != nil {
			v.err = fmt.Errorf("%q is not a number", v.numberInput.Value())
			return v, nil
		}
		return v, v.setNumber(v.field, value)
	}

	var cmd tea.Cmd
	v.numberInput, cmd = v.numberInput.Update(msg)
	return v, cmd
}

// Commands to update settings.

func (v *View) setScope(scope domain.SearchScope) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		err := v.settingsService.SetDefaultScope(scope)
		return messages.SettingsSaved{Err: err}
	}
}

func (v *View) setCaseSensitive(enabled bool) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		err := v.settingsService.SetCaseSensitive(enabled)
		return messages.SettingsSaved{Err: err}
	}
}

func (v *View) setNumber(field numberField, value int) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		var err error
		switch field {
		case fieldLimit:
			err = v.settingsService.SetDefaultLimit(value)
		case fieldDebounce:
			err = v.settingsService.SetDebounce(value)
		case fieldHistory:
			err = v.settingsService.SetHistoryLimit(value)
		}
		return messages.SettingsSaved{Err: err}
	}
}

// Helpers for current values.

func (v *View) currentScopeIndex() int {
	if v.settings == nil {
		return 0
	}
	scopes := domain.AllSearchScopes()
	for i, s := range scopes {
		if s == v.settings.Search.DefaultScope {
			return i
		}
	}
	return 0
}

func (v *View) currentNumberValue(field numberField) int {
	if v.settings == nil {
		return 0
	}
	switch field {
	case fieldLimit:
		return v.settings.Search.DefaultLimit
	case fieldDebounce:
		return v.settings.UI.DebounceMs
	case fieldHistory:
		return v.settings.History.MaxEntries
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	// Error display
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	// Loading state
	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionScope:
		b.WriteString(v.renderScopeSelect())
	case SectionNumber:
		b.WriteString(v.renderNumberInput())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	items := []struct {
		label string
		value string
	}{
		{label: "Default scope", value: v.settings.Search.DefaultScope.Description()},
		{label: "Default limit", value: strconv.Itoa(v.settings.Search.DefaultLimit)},
		{label: "Case sensitive", value: strconv.FormatBool(v.settings.Search.CaseSensitive)},
		{label: "Debounce", value: fmt.Sprintf("%dms", v.settings.UI.DebounceMs)},
		{label: "History limit", value: strconv.Itoa(v.settings.History.MaxEntries)},
	}

	for i, item := range items {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		line := fmt.Sprintf("%s%s: %s", indicator, item.label, item.value)

		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	// Validation status
	b.WriteString("\n")
	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
	}

	return b.String()
}

func (v *View) renderScopeSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select Default Scope"))
	b.WriteString("\n\n")

	scopes := domain.AllSearchScopes()
	for i, scope := range scopes {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		current := ""
		if v.settings != nil && scope == v.settings.Search.DefaultScope {
			current = v.styles.Success.Render(" (current)")
		}

		line := fmt.Sprintf("%s%s%s", indicator, scope.Description(), current)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderNumberInput() string {
	var b strings.Builder

	var title string
	switch v.field {
	case fieldLimit:
		title = "Set Default Result Limit"
	case fieldDebounce:
		title = "Set Debounce Interval (ms)"
	case fieldHistory:
		title = "Set History Limit"
	}

	b.WriteString(v.styles.Subtitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(v.numberInput.View())
	b.WriteString("\n")

	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case SectionScope:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	case SectionNumber:
		return v.styles.Help.Render("[enter] save  [esc] back")
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.field = fieldLimit
	v.err = nil
	v.numberInput.SetValue("")
	v.numberInput.Blur()
}
