package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rlvgl/butler/internal/api"
	"github.com/rlvgl/butler/internal/prefs"
)

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "o":
		return m, m.logoutCmd()
	case "t":
		next := nextTheme(m.theme.Name)
		m.theme = next
		m.styles = next.Styles()
		return m, m.saveThemeCmd(next.Name)
	}
	return m, nil
}

// saveThemeCmd persists the chosen theme without clobbering other
// preferences. Save failures are tolerable; the theme still applied for this
// session.
func (m Model) saveThemeCmd(name string) tea.Cmd {
	path := m.prefsPath
	return func() tea.Msg {
		p := prefs.Load(path)
		p.Theme = name
		_ = prefs.Save(path, p)
		return nil
	}
}

func (m Model) logoutCmd() tea.Cmd {
	session, base := m.session, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, fetchTimeout)
		defer cancel()
		return logoutMsg{ok: session.Logout(ctx)}
	}
}

func (m Model) renderDashboard() string {
	colWidth := m.width/2 - 4
	if colWidth < 24 {
		colWidth = m.width - 4
	}

	account := m.styles.Pane.Width(colWidth).Render(m.renderAccountCard())
	mail := m.styles.Pane.Width(colWidth).Render(m.renderMailCard(colWidth))
	agenda := m.styles.Pane.Width(colWidth).Render(m.renderAgendaCard(colWidth))
	recent := m.styles.Pane.Width(colWidth).Render(m.renderChatCard(colWidth))

	top := lipgloss.JoinHorizontal(lipgloss.Top, account, mail)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, agenda, recent)
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (m Model) renderAccountCard() string {
	st := m.sessionState

	lines := []string{m.styles.Accent.Render("Account"), ""}
	if !st.HasStatus {
		if st.Err != "" {
			lines = append(lines, m.styles.Danger.Render("Gateway unreachable"))
		} else {
			lines = append(lines, m.styles.Muted.Render("Checking session..."))
		}
		return strings.Join(lines, "\n")
	}

	if st.HasProfile && st.Profile.Name != "" {
		lines = append(lines, m.styles.Text.Render(st.Profile.Name))
		lines = append(lines, m.styles.Muted.Render(st.Profile.Email))
	} else if st.Status.UserInfo.Email != "" {
		lines = append(lines, m.styles.Muted.Render(st.Status.UserInfo.Email))
	}
	lines = append(lines,
		"",
		serviceLine(m.styles, "Gmail", st.Status.GmailAuthenticated),
		serviceLine(m.styles, "Calendar", st.Status.CalendarAuthenticated),
	)
	if st.Offline() {
		lines = append(lines, "", m.styles.Danger.Render("Offline: last check failed"))
	}
	if !st.CheckedAt.IsZero() {
		lines = append(lines, "", m.styles.Muted.Render("Checked "+st.CheckedAt.Format("15:04:05")))
	}
	return strings.Join(lines, "\n")
}

func serviceLine(styles Styles, name string, ok bool) string {
	if ok {
		return styles.Success.Render("✓ ") + name
	}
	return styles.Danger.Render("✗ ") + name + styles.Muted.Render(" (not connected)")
}

func (m Model) renderMailCard(width int) string {
	st := m.emailState

	unread := 0
	for _, e := range st.Items {
		if !e.Read {
			unread++
		}
	}

	lines := []string{m.styles.Accent.Render("Mail"), ""}
	switch {
	case st.Loading && len(st.Items) == 0:
		lines = append(lines, m.styles.Muted.Render("Loading..."))
	case len(st.Items) == 0:
		lines = append(lines, m.styles.Muted.Render("Inbox empty"))
	default:
		lines = append(lines, fmt.Sprintf("%d unread of %d", unread, len(st.Items)))
		lines = append(lines, "")
		for i, e := range st.Items {
			if i == 3 {
				break
			}
			marker := "  "
			if !e.Read {
				marker = m.styles.Accent.Render("● ")
			}
			lines = append(lines, marker+truncate(e.Subject, width-6))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderAgendaCard(width int) string {
	st := m.calendarState

	lines := []string{m.styles.Accent.Render(fmt.Sprintf("Next %d days", m.agendaDays)), ""}
	switch {
	case st.Loading && len(st.Items) == 0:
		lines = append(lines, m.styles.Muted.Render("Loading..."))
	case len(st.Items) == 0:
		lines = append(lines, m.styles.Muted.Render("Nothing scheduled"))
	default:
		for i, event := range st.Items {
			if i == 4 {
				break
			}
			lines = append(lines, eventDay(event)+" "+eventHour(event)+" "+truncate(event.Summary, width-18))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderChatCard(width int) string {
	st := m.chatState

	lines := []string{m.styles.Accent.Render("Assistant"), ""}
	if len(st.Items) == 0 {
		lines = append(lines, m.styles.Muted.Render("No conversation yet"))
		return strings.Join(lines, "\n")
	}

	start := len(st.Items) - 2
	if start < 0 {
		start = 0
	}
	for _, msg := range st.Items[start:] {
		who := "assistant"
		if msg.Role == api.RoleUser {
			who = "you"
		}
		lines = append(lines, m.styles.Muted.Render(who+": ")+truncate(firstLine(msg.Content), width-14))
	}
	return strings.Join(lines, "\n")
}
