package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rlvgl/butler/internal/api"
)

func (m Model) handleEmailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.emailState.Items

	switch msg.String() {
	case "j", "down":
		m.emailCursor = clamp(m.emailCursor+1, 0, len(items)-1)
		return m, nil
	case "k", "up":
		m.emailCursor = clamp(m.emailCursor-1, 0, len(items)-1)
		return m, nil
	case "enter":
		if len(items) == 0 {
			return m, nil
		}
		return m, m.openEmailCmd(items[m.emailCursor])
	case "u":
		m.emailFilter.Unread = !m.emailFilter.Unread
		return m, m.fetchEmailsCmd()
	case "/":
		m.openSearch()
		return m, nil
	case "c":
		m.openCompose()
		return m, nil
	}
	return m, nil
}

func (m *Model) openSearch() {
	m.searching = true
	m.searchInput.SetValue(m.emailFilter.Query)
	m.searchInput.Focus()
}

func (m *Model) closeSearch() {
	m.searching = false
	m.searchInput.Blur()
}

// handleSearchKey edits the free-text query. Enter applies the query and
// refetches; esc leaves the active filter untouched. An empty query applied
// with enter clears the search.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeSearch()
		return m, nil
	case "enter":
		m.emailFilter.Query = strings.TrimSpace(m.searchInput.Value())
		m.closeSearch()
		return m, m.fetchEmailsCmd()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// openEmailCmd selects the message and, if it is unread, reports the read
// receipt. Selection is local; the receipt round-trips but never disturbs the
// list state on failure.
func (m Model) openEmailCmd(item api.Email) tea.Cmd {
	email, base := m.email, m.ctx
	return func() tea.Msg {
		email.Select(item.ID)
		if !item.Read {
			ctx, cancel := context.WithTimeout(base, fetchTimeout)
			defer cancel()
			email.MarkAsRead(ctx, item.ID)
		}
		return nil
	}
}

func (m *Model) openCompose() {
	m.composing = true
	m.composeFocus = 0
	m.composeTo.SetValue("")
	m.composeSubject.SetValue("")
	m.composeBody.Reset()
	m.composeTo.Focus()
	m.composeSubject.Blur()
	m.composeBody.Blur()
}

func (m *Model) closeCompose() {
	m.composing = false
	m.composeTo.Blur()
	m.composeSubject.Blur()
	m.composeBody.Blur()
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeCompose()
		return m, nil
	case "tab", "shift+tab":
		delta := 1
		if msg.String() == "shift+tab" {
			delta = 2 // backwards across three fields
		}
		m.composeFocus = (m.composeFocus + delta) % 3
		m.composeTo.Blur()
		m.composeSubject.Blur()
		m.composeBody.Blur()
		switch m.composeFocus {
		case 0:
			m.composeTo.Focus()
		case 1:
			m.composeSubject.Focus()
		case 2:
			m.composeBody.Focus()
		}
		return m, nil
	case "ctrl+s":
		draft := api.OutgoingEmail{
			To:      strings.TrimSpace(m.composeTo.Value()),
			Subject: strings.TrimSpace(m.composeSubject.Value()),
			Body:    m.composeBody.Value(),
		}
		if draft.To == "" {
			return m, nil
		}
		return m, m.sendEmailCmd(draft)
	}

	var cmd tea.Cmd
	switch m.composeFocus {
	case 0:
		m.composeTo, cmd = m.composeTo.Update(msg)
	case 1:
		m.composeSubject, cmd = m.composeSubject.Update(msg)
	case 2:
		m.composeBody, cmd = m.composeBody.Update(msg)
	}
	return m, cmd
}

func (m Model) sendEmailCmd(draft api.OutgoingEmail) tea.Cmd {
	email, base := m.email, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, fetchTimeout)
		defer cancel()
		return emailSentMsg{ok: email.Send(ctx, draft)}
	}
}

func (m Model) renderEmail(height int) string {
	listWidth := m.width * 2 / 5
	if listWidth < 28 {
		listWidth = min(28, m.width/2)
	}
	detailWidth := m.width - listWidth - 6

	list := m.renderEmailList(listWidth, height-2)
	var detail string
	if m.composing {
		detail = m.renderCompose()
	} else {
		detail = m.renderEmailDetail(detailWidth)
	}

	left := m.styles.Pane.Width(listWidth).Height(height - 2).Render(list)
	rightStyle := m.styles.Pane
	if m.composing {
		rightStyle = m.styles.PaneFocus
	}
	right := rightStyle.Width(detailWidth).Height(height - 2).Render(detail)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderEmailList(width, height int) string {
	st := m.emailState

	title := "Inbox"
	if m.emailFilter.Unread {
		title = "Inbox (unread)"
	}
	if q := m.emailFilter.Query; q != "" {
		title += " " + m.styles.Warning.Render("matching "+truncate(q, 16))
	}
	if st.Loading {
		title += " " + m.styles.Muted.Render("fetching...")
	}
	lines := []string{m.styles.Accent.Render(title), ""}
	if m.searching {
		lines = append(lines, m.searchInput.View(), "")
	}

	if len(st.Items) == 0 {
		empty := "No messages."
		if st.Loading {
			empty = "Loading messages..."
		}
		lines = append(lines, m.styles.Muted.Render(empty))
		return strings.Join(lines, "\n")
	}

	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.emailCursor >= visible {
		start = m.emailCursor - visible + 1
	}
	for i := start; i < len(st.Items) && i < start+visible; i++ {
		item := st.Items[i]
		marker := "  "
		if !item.Read {
			marker = m.styles.Accent.Render("● ")
		}
		row := marker + truncate(item.From, 18) + " " + truncate(item.Subject, width-24)
		if i == m.emailCursor {
			row = m.styles.Selected.Render(truncate("> "+item.From+" "+item.Subject, width-2))
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEmailDetail(width int) string {
	sel := m.emailState.Selected
	if sel == nil {
		return m.styles.Muted.Render("Select a message with enter.")
	}

	head := []string{
		m.styles.Accent.Render(truncate(sel.Subject, width)),
		m.styles.Muted.Render("From: ") + sel.From,
		m.styles.Muted.Render("To:   ") + sel.To,
		m.styles.Muted.Render("Date: ") + formatWhen(sel.ParsedDate(), sel.Date),
	}
	if sel.Important {
		head = append(head, m.styles.Warning.Render("Important"))
	}
	return strings.Join(head, "\n") + "\n\n" + wrapText(sel.Body, width)
}

func (m Model) renderCompose() string {
	labels := [3]string{"To", "Subject", "Body"}
	fields := [3]string{m.composeTo.View(), m.composeSubject.View(), m.composeBody.View()}

	lines := []string{m.styles.Accent.Render("New message"), ""}
	for i := range labels {
		label := m.styles.Muted.Render(labels[i])
		if i == m.composeFocus {
			label = m.styles.Accent.Render(labels[i])
		}
		lines = append(lines, label, fields[i], "")
	}
	if m.emailState.Loading {
		lines = append(lines, m.styles.Muted.Render("Sending..."))
	}
	return strings.Join(lines, "\n")
}

// formatWhen prefers the parsed timestamp and falls back to the raw gateway
// string when it would not parse.
func formatWhen(t time.Time, raw string) string {
	if t.IsZero() {
		return raw
	}
	return t.Format("Mon Jan 2 15:04")
}

// wrapText hard-wraps each line at width runes. Slicing runes, not bytes,
// keeps multi-byte content intact across line breaks.
func wrapText(s string, width int) string {
	if width < 10 {
		width = 10
	}
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		runes := []rune(line)
		for len(runes) > width {
			b.WriteString(string(runes[:width]))
			b.WriteByte('\n')
			runes = runes[width:]
		}
		b.WriteString(string(runes))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
