// Package conversations provides the conversation listing view for the TUI.
package conversations

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

// View is the filtered conversation listing. Filter toggles reload the
// listing through the filter service so sorting and criteria always
// come from one place.
type View struct {
	styles *styles.Styles
	filter driving.FilterService
	ctx    context.Context

	conversations []domain.Conversation
	selected      int
	width         int
	height        int
	ready         bool
	err           error
	loading       bool

	starredOnly bool
	chatType    domain.ChatType
	sortBy      domain.SortKey
	sortAsc     bool
}

// NewView creates a new conversations view.
func NewView(s *styles.Styles, filter driving.FilterService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:        s,
		filter:        filter,
		ctx:           context.Background(),
		conversations: []domain.Conversation{},
		chatType:      domain.ChatTypeAll,
		sortBy:        domain.SortByDate,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and loads the listing.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadConversations()
}

// loadConversations returns a command that loads the filtered listing.
func (v *View) loadConversations() tea.Cmd {
	filters := v.buildFilters()
	return func() tea.Msg {
		if v.filter == nil {
			return messages.ConversationsLoaded{Err: fmt.Errorf("filter service not available")}
		}

		conversations, err := v.filter.ListFiltered(v.ctx, filters)
		if err != nil {
			return messages.ConversationsLoaded{Err: err}
		}
		return messages.ConversationsLoaded{Conversations: conversations}
	}
}

// buildFilters assembles filter options from the current toggles.
func (v *View) buildFilters() domain.FilterOptions {
	filters := domain.FilterOptions{
		ChatType: v.chatType,
		SortBy:   v.sortBy,
		SortAsc:  v.sortAsc,
	}
	if v.starredOnly {
		starred := true
		filters.Starred = &starred
	}
	return filters
}

// Update handles messages for the conversations view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ConversationsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.conversations = msg.Conversations
			v.err = nil
			if v.selected >= len(v.conversations) {
				v.selected = 0
			}
		}
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.conversations)-1 {
			v.selected++
		}
	case "s":
		v.starredOnly = !v.starredOnly
		return v.reload()
	case "t":
		v.chatType = nextChatType(v.chatType)
		return v.reload()
	case "o":
		v.sortBy = nextSortKey(v.sortBy)
		return v.reload()
	case "r":
		v.sortAsc = !v.sortAsc
		return v.reload()
	case "q":
		return v, func() tea.Msg {
			return messages.Quit{}
		}
	}

	return v, nil
}

// reload refreshes the listing after a filter change.
func (v *View) reload() (*View, tea.Cmd) {
	v.loading = true
	v.selected = 0
	return v, v.loadConversations()
}

// nextChatType cycles all -> standard -> incognito -> all.
func nextChatType(t domain.ChatType) domain.ChatType {
	switch t {
	case domain.ChatTypeAll:
		return domain.ChatTypeStandard
	case domain.ChatTypeStandard:
		return domain.ChatTypeIncognito
	default:
		return domain.ChatTypeAll
	}
}

// nextSortKey cycles date -> title -> messageCount -> date.
func nextSortKey(k domain.SortKey) domain.SortKey {
	switch k {
	case domain.SortByDate:
		return domain.SortByTitle
	case domain.SortByTitle:
		return domain.SortByMessageCount
	default:
		return domain.SortByDate
	}
}

// View renders the conversations view.
func (v *View) View() string {
	var b strings.Builder

	// Title
	b.WriteString(v.styles.Title.Render("Conversations"))
	b.WriteString("\n")
	b.WriteString(v.renderFilterSummary())
	b.WriteString("\n\n")

	// Loading state
	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading conversations..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Error state
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Empty state
	if len(v.conversations) == 0 {
		b.WriteString(v.styles.Muted.Render("No conversations found."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Conversation list
	for i := range v.conversations {
		line := v.renderConversation(i, &v.conversations[i])
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderFilterSummary shows the active filter and sort toggles.
func (v *View) renderFilterSummary() string {
	direction := "desc"
	if v.sortAsc {
		direction = "asc"
	}
	summary := fmt.Sprintf("type: %s | sort: %s %s", v.chatType, v.sortBy, direction)
	if v.starredOnly {
		summary += " | starred only"
	}
	return v.styles.Muted.Render(summary)
}

// renderConversation renders a single conversation line.
func (v *View) renderConversation(index int, conv *domain.Conversation) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	star := "  "
	if conv.Starred {
		star = "* "
	}

	title := conv.Title
	if title == "" {
		title = domain.UnknownTitle
	}

	when := "-"
	if !conv.LastActivity.IsZero() {
		when = conv.LastActivity.Format("2006-01-02")
	}
	meta := fmt.Sprintf("(%d)  %s", conv.MessageCount, when)

	// Truncate title if needed
	maxTitleLen := v.width - len(meta) - 10
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	var line string
	if index == v.selected {
		line = v.styles.Selected.Render(fmt.Sprintf("%s%s%-*s  %s", indicator, star, maxTitleLen, title, meta))
	} else {
		line = v.styles.Normal.Render(indicator) +
			v.styles.Starred.Render(star) +
			v.styles.Normal.Render(fmt.Sprintf("%-*s  ", maxTitleLen, title)) +
			v.styles.Muted.Render(meta)
	}

	return line
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[s] starred  [t] type  [o] sort  [r] reverse  [esc] back  [q] quit")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset restores the default filters and selection.
func (v *View) Reset() {
	v.selected = 0
	v.starredOnly = false
	v.chatType = domain.ChatTypeAll
	v.sortBy = domain.SortByDate
	v.sortAsc = false
	v.err = nil
	v.loading = false
}

// Conversations returns the current listing.
func (v *View) Conversations() []domain.Conversation {
	return v.conversations
}

// SelectedIndex returns the currently selected index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// StarredOnly returns whether the starred filter is active.
func (v *View) StarredOnly() bool {
	return v.starredOnly
}

// ChatType returns the active chat type filter.
func (v *View) ChatType() domain.ChatType {
	return v.chatType
}

// SortBy returns the active sort key.
func (v *View) SortBy() domain.SortKey {
	return v.sortBy
}

// SortAsc returns whether sorting is ascending.
func (v *View) SortAsc() bool {
	return v.sortAsc
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
