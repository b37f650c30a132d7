package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rlvgl/butler/internal/api"
	"github.com/rlvgl/butler/internal/store"
)

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		content := strings.TrimSpace(m.chatInput.Value())
		if content == "" {
			return m, nil
		}
		m.chatInput.Reset()
		return m, m.sendChatCmd(content)
	case "ctrl+r":
		return m, m.fetchChatCmd()
	case "esc":
		if err := m.activeErr(); err != "" && err != m.dismissedErr {
			m.dismissedErr = err
		}
		return m, nil
	case "pgup":
		m.chatView.HalfPageUp()
		return m, nil
	case "pgdown":
		m.chatView.HalfPageDown()
		return m, nil
	case "1", "2", "3", "4":
		// The chat input is always focused, so digits would otherwise be
		// swallowed as text. Bare digits are far more useful as nav here.
		if m.chatInput.Value() == "" {
			return m, m.switchCmd(viewForDigit(msg.String()))
		}
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m Model) sendChatCmd(content string) tea.Cmd {
	chat, base := m.chat, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, fetchTimeout)
		defer cancel()
		return chatSentMsg{ok: chat.SendMessage(ctx, content)}
	}
}

// layoutChat sizes the transcript viewport and re-renders its content. Called
// on resize and on every transcript transition.
func (m *Model) layoutChat() {
	if m.width == 0 {
		return
	}
	width := m.width - 4
	height := m.height - 12
	if height < 3 {
		height = 3
	}
	if !m.chatReady {
		m.chatView = viewport.New(width, height)
		m.chatReady = true
	} else {
		m.chatView.Width = width
		m.chatView.Height = height
	}
	m.chatInput.SetWidth(width)
	m.chatView.SetContent(m.renderTranscript(width))
	m.chatView.GotoBottom()
}

func (m Model) renderTranscript(width int) string {
	items := m.chatState.Items
	if len(items) == 0 {
		return m.styles.Muted.Render("No conversation yet. Say hello.")
	}

	var blocks []string
	for _, msg := range items {
		blocks = append(blocks, m.renderMessage(msg, width))
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderMessage(msg api.ChatMessage, width int) string {
	who := m.styles.Accent.Render("assistant")
	if msg.Role == api.RoleUser {
		who = m.styles.Success.Render("you")
	}
	stamp := ""
	if t := msg.ParsedTimestamp(); !t.IsZero() {
		stamp = " " + m.styles.Muted.Render(t.Format("15:04"))
	}
	pending := ""
	if strings.HasPrefix(msg.ID, "local-") {
		pending = " " + m.styles.Muted.Render("(sending)")
	}
	return who + stamp + pending + "\n" + wrapText(msg.Content, width)
}

func (m Model) renderChat() string {
	var transcript string
	if m.chatReady {
		transcript = m.chatView.View()
	} else {
		transcript = m.renderTranscript(m.width - 4)
	}

	status := ""
	if m.chatState.Loading {
		status = m.styles.Muted.Render("assistant is thinking...")
	}

	pane := m.styles.Pane.Width(m.width - 4).Render(transcript)
	input := m.styles.PaneFocus.Width(m.width - 4).Render(m.chatInput.View())
	return lipgloss.JoinVertical(lipgloss.Left, pane, status, input)
}

func viewForDigit(d string) store.View {
	switch d {
	case "2":
		return store.ViewEmail
	case "3":
		return store.ViewCalendar
	case "4":
		return store.ViewChat
	}
	return store.ViewDashboard
}
