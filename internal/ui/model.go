package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rlvgl/butler/internal/api"
	"github.com/rlvgl/butler/internal/store"
)

const (
	fetchTimeout      = 15 * time.Second
	defaultAgendaDays = 7
)

// Model is the root bubbletea model. It renders whichever view the nav store
// says is active and owns the transient view state (cursors, forms, inputs)
// that does not belong in the domain stores.
type Model struct {
	ctx context.Context

	nav      *store.NavStore
	session  *store.SessionStore
	email    *store.EmailStore
	calendar *store.CalendarStore
	chat     *store.ChatStore

	theme      Theme
	styles     Styles
	agendaDays int
	prefsPath  string

	width  int
	height int

	view store.View

	sessionState  store.SessionState
	emailState    store.State[api.Email]
	calendarState store.State[api.CalendarEvent]
	chatState     store.State[api.ChatMessage]

	// dismissedErr suppresses the banner for the exact error the user
	// dismissed; a different error brings the banner back.
	dismissedErr string

	// Email view.
	emailCursor    int
	emailFilter    api.EmailFilter
	searching      bool
	searchInput    textinput.Model
	composing      bool
	composeFocus   int
	composeTo      textinput.Model
	composeSubject textinput.Model
	composeBody    textarea.Model

	// Calendar view.
	calCursor   int
	calForm     bool
	calEditID   string
	calFocus    int
	calSummary  textinput.Model
	calStart    textinput.Model
	calEnd      textinput.Model
	calLocation textinput.Model

	// Chat view.
	chatInput  textarea.Model
	chatView   viewport.Model
	chatReady  bool
}

func newModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	agendaDays := opts.AgendaDays
	if agendaDays <= 0 {
		agendaDays = defaultAgendaDays
	}

	theme := themeByName(opts.ThemeName)

	m := Model{
		ctx:        ctx,
		nav:        opts.Nav,
		session:    opts.Session,
		email:      opts.Email,
		calendar:   opts.Calendar,
		chat:       opts.Chat,
		theme:      theme,
		styles:     theme.Styles(),
		agendaDays: agendaDays,
		prefsPath:  opts.PrefsPath,
		view:       store.ViewDashboard,
	}

	// Inbox page size; the gateway caps listings at max_results.
	m.emailFilter.Max = 50

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search mail"
	m.composeTo = textinput.New()
	m.composeTo.Placeholder = "to@example.com"
	m.composeSubject = textinput.New()
	m.composeSubject.Placeholder = "Subject"
	m.composeBody = textarea.New()
	m.composeBody.Placeholder = "Write your message"
	m.composeBody.SetHeight(8)

	m.calSummary = textinput.New()
	m.calSummary.Placeholder = "Summary"
	m.calStart = textinput.New()
	m.calStart.Placeholder = "2026-01-02T15:00:00Z"
	m.calEnd = textinput.New()
	m.calEnd.Placeholder = "2026-01-02T16:00:00Z"
	m.calLocation = textinput.New()
	m.calLocation.Placeholder = "Location (optional)"

	m.chatInput = textarea.New()
	m.chatInput.Placeholder = "Ask the assistant"
	m.chatInput.SetHeight(3)
	m.chatInput.Focus()

	if opts.Nav != nil {
		m.view = opts.Nav.Current()
	}
	return m
}

// Init triggers the first fetch for whichever view the shell opened on.
func (m Model) Init() tea.Cmd {
	return m.fetchCmd(m.view)
}

// Update is the single event loop entry point.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutChat()
		return m, nil

	case navMsg:
		if v := store.View(msg); v != m.view {
			m.view = v
			return m, m.fetchCmd(v)
		}
		return m, nil

	case sessionStateMsg:
		m.sessionState = store.SessionState(msg)
		return m, nil

	case emailStateMsg:
		m.emailState = store.State[api.Email](msg)
		m.emailCursor = clamp(m.emailCursor, 0, len(m.emailState.Items)-1)
		return m, nil

	case calendarStateMsg:
		m.calendarState = store.State[api.CalendarEvent](msg)
		m.calCursor = clamp(m.calCursor, 0, len(m.calendarState.Items)-1)
		return m, nil

	case chatStateMsg:
		m.chatState = store.State[api.ChatMessage](msg)
		m.layoutChat()
		return m, nil

	case emailSentMsg:
		if msg.ok {
			m.closeCompose()
		}
		return m, nil

	case eventSavedMsg:
		if msg.ok {
			m.closeEventForm()
		}
		return m, nil

	case eventDeletedMsg, chatSentMsg, logoutMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes keys: quit and nav keys apply everywhere except while a
// text input owns the keyboard, then the active view gets the rest.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.typing() {
		switch m.view {
		case store.ViewEmail:
			if m.searching {
				return m.handleSearchKey(msg)
			}
			return m.handleComposeKey(msg)
		case store.ViewCalendar:
			return m.handleEventFormKey(msg)
		case store.ViewChat:
			return m.handleChatKey(msg)
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		if err := m.activeErr(); err != "" {
			m.dismissedErr = err
			return m, nil
		}
	case "1":
		return m, m.switchCmd(store.ViewDashboard)
	case "2":
		return m, m.switchCmd(store.ViewEmail)
	case "3":
		return m, m.switchCmd(store.ViewCalendar)
	case "4":
		return m, m.switchCmd(store.ViewChat)
	case "tab":
		return m, m.switchCmd(nextView(m.view))
	case "r":
		return m, m.fetchCmd(m.view)
	}

	switch m.view {
	case store.ViewDashboard:
		return m.handleDashboardKey(msg)
	case store.ViewEmail:
		return m.handleEmailKey(msg)
	case store.ViewCalendar:
		return m.handleCalendarKey(msg)
	case store.ViewChat:
		return m.handleChatKey(msg)
	}
	return m, nil
}

// typing reports whether a form or input currently owns the keyboard.
func (m Model) typing() bool {
	switch m.view {
	case store.ViewEmail:
		return m.composing || m.searching
	case store.ViewCalendar:
		return m.calForm
	case store.ViewChat:
		return true
	}
	return false
}

// View renders the full frame.
func (m Model) View() string {
	if m.width == 0 {
		return "loading butler..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch m.view {
	case store.ViewEmail:
		body = m.renderEmail(bodyHeight)
	case store.ViewCalendar:
		body = m.renderCalendar(bodyHeight)
	case store.ViewChat:
		body = m.renderChat()
	default:
		body = m.renderDashboard()
	}
	body = lipgloss.NewStyle().Height(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, len(viewOrder))
	for i, v := range viewOrder {
		label := viewLabel(v)
		style := m.styles.Tab
		if v == m.view {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(numberKey(i)+" "+label))
	}

	left := m.styles.Title.Render("butler") + " " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	right := m.renderConnection()

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + lipgloss.NewStyle().Width(gap).Render("") + right
}

func (m Model) renderConnection() string {
	st := m.sessionState
	switch {
	case st.Offline():
		return m.styles.Danger.Render("offline")
	case !st.HasStatus:
		return m.styles.Muted.Render("connecting")
	case st.Status.Authenticated():
		return m.styles.Success.Render("signed in")
	default:
		return m.styles.Warning.Render("auth needed")
	}
}

func (m Model) renderFooter() string {
	if err := m.activeErr(); err != "" && err != m.dismissedErr {
		banner := m.styles.Banner.Render(truncate("error: "+err, max(m.width-18, 10)))
		return banner + m.styles.Muted.Render("  esc to dismiss")
	}
	return m.styles.Muted.Render(m.footerHints())
}

func (m Model) footerHints() string {
	switch m.view {
	case store.ViewEmail:
		if m.searching {
			return "enter search · esc cancel"
		}
		if m.composing {
			return "tab fields · ctrl+s send · esc cancel"
		}
		return "j/k move · enter open · c compose · / search · u unread · r refresh · 1-4 views · q quit"
	case store.ViewCalendar:
		if m.calForm {
			return "tab fields · ctrl+s save · esc cancel"
		}
		return "j/k move · enter open · n new · e edit · d delete · r refresh · 1-4 views · q quit"
	case store.ViewChat:
		return "enter send · pgup/pgdn scroll · ctrl+r reload · 1-4 views · ctrl+c quit"
	}
	return "1 dashboard · 2 email · 3 calendar · 4 chat · t theme · o sign out · r refresh · q quit"
}

// activeErr returns the failure message belonging to the visible view.
func (m Model) activeErr() string {
	switch m.view {
	case store.ViewEmail:
		return m.emailState.Err
	case store.ViewCalendar:
		return m.calendarState.Err
	case store.ViewChat:
		return m.chatState.Err
	}
	return m.sessionState.Err
}

// switchCmd flips the nav store off the event loop goroutine; the resulting
// navMsg drives the actual view change and fetch.
func (m Model) switchCmd(v store.View) tea.Cmd {
	nav := m.nav
	return func() tea.Msg {
		nav.Set(v)
		return nil
	}
}

// fetchCmd issues the fetches a freshly opened view needs.
func (m Model) fetchCmd(v store.View) tea.Cmd {
	switch v {
	case store.ViewEmail:
		return m.fetchEmailsCmd()
	case store.ViewCalendar:
		return m.fetchEventsCmd()
	case store.ViewChat:
		return m.fetchChatCmd()
	}
	return m.fetchDashboardCmd()
}

func (m Model) fetchEmailsCmd() tea.Cmd {
	email, base, filter := m.email, m.ctx, m.emailFilter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, fetchTimeout)
		defer cancel()
		email.FetchAll(ctx, filter)
		return nil
	}
}

func (m Model) fetchEventsCmd() tea.Cmd {
	calendar, base := m.calendar, m.ctx
	window := agendaWindow(time.Now(), m.agendaDays)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, fetchTimeout)
		defer cancel()
		calendar.FetchAll(ctx, window)
		return nil
	}
}

func (m Model) fetchChatCmd() tea.Cmd {
	chat, base := m.chat, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, fetchTimeout)
		defer cancel()
		chat.FetchAll(ctx)
		return nil
	}
}

// fetchDashboardCmd refreshes everything the dashboard summarizes.
func (m Model) fetchDashboardCmd() tea.Cmd {
	session, base := m.session, m.ctx
	refresh := func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, fetchTimeout)
		defer cancel()
		session.Refresh(ctx)
		session.LoadProfile(ctx)
		return nil
	}
	return tea.Batch(refresh, m.fetchEmailsCmd(), m.fetchEventsCmd())
}

// agendaWindow returns the dashboard/calendar listing window: today through
// days from now.
func agendaWindow(now time.Time, days int) api.EventWindow {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return api.EventWindow{Start: start, End: start.AddDate(0, 0, days)}
}

var viewOrder = []store.View{store.ViewDashboard, store.ViewEmail, store.ViewCalendar, store.ViewChat}

func viewLabel(v store.View) string {
	switch v {
	case store.ViewEmail:
		return "Email"
	case store.ViewCalendar:
		return "Calendar"
	case store.ViewChat:
		return "Chat"
	}
	return "Dashboard"
}

func numberKey(i int) string {
	return string(rune('1' + i))
}

// nextView cycles dashboard, email, calendar, chat, dashboard.
func nextView(v store.View) store.View {
	for i, known := range viewOrder {
		if known == v {
			return viewOrder[(i+1)%len(viewOrder)]
		}
	}
	return store.ViewDashboard
}
