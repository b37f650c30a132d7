package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rlvgl/butler/internal/api"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.calendarState.Items

	switch msg.String() {
	case "j", "down":
		m.calCursor = clamp(m.calCursor+1, 0, len(items)-1)
		return m, nil
	case "k", "up":
		m.calCursor = clamp(m.calCursor-1, 0, len(items)-1)
		return m, nil
	case "enter":
		if len(items) == 0 {
			return m, nil
		}
		return m, m.selectEventCmd(items[m.calCursor].ID)
	case "n":
		m.openEventForm(nil)
		return m, nil
	case "e":
		if len(items) == 0 {
			return m, nil
		}
		event := items[m.calCursor]
		m.openEventForm(&event)
		return m, nil
	case "d":
		if len(items) == 0 {
			return m, nil
		}
		return m, m.deleteEventCmd(items[m.calCursor].ID)
	}
	return m, nil
}

func (m Model) selectEventCmd(id string) tea.Cmd {
	calendar := m.calendar
	return func() tea.Msg {
		calendar.Select(id)
		return nil
	}
}

func (m Model) deleteEventCmd(id string) tea.Cmd {
	calendar, base := m.calendar, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, fetchTimeout)
		defer cancel()
		return eventDeletedMsg{ok: calendar.Delete(ctx, id)}
	}
}

// openEventForm starts a create form, or an edit form pre-filled from the
// event when one is given.
func (m *Model) openEventForm(event *api.CalendarEvent) {
	m.calForm = true
	m.calFocus = 0
	m.calEditID = ""
	m.calSummary.SetValue("")
	m.calStart.SetValue("")
	m.calEnd.SetValue("")
	m.calLocation.SetValue("")
	if event != nil {
		m.calEditID = event.ID
		m.calSummary.SetValue(event.Summary)
		m.calStart.SetValue(event.Start)
		m.calEnd.SetValue(event.End)
		m.calLocation.SetValue(event.Location)
	}
	m.focusEventField(0)
}

func (m *Model) closeEventForm() {
	m.calForm = false
	m.calEditID = ""
	m.calSummary.Blur()
	m.calStart.Blur()
	m.calEnd.Blur()
	m.calLocation.Blur()
}

func (m *Model) focusEventField(i int) {
	m.calFocus = i
	m.calSummary.Blur()
	m.calStart.Blur()
	m.calEnd.Blur()
	m.calLocation.Blur()
	switch i {
	case 0:
		m.calSummary.Focus()
	case 1:
		m.calStart.Focus()
	case 2:
		m.calEnd.Focus()
	case 3:
		m.calLocation.Focus()
	}
}

func (m Model) handleEventFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeEventForm()
		return m, nil
	case "tab":
		m.focusEventField((m.calFocus + 1) % 4)
		return m, nil
	case "shift+tab":
		m.focusEventField((m.calFocus + 3) % 4)
		return m, nil
	case "enter", "ctrl+s":
		return m.saveEventForm()
	}

	var cmd tea.Cmd
	switch m.calFocus {
	case 0:
		m.calSummary, cmd = m.calSummary.Update(msg)
	case 1:
		m.calStart, cmd = m.calStart.Update(msg)
	case 2:
		m.calEnd, cmd = m.calEnd.Update(msg)
	case 3:
		m.calLocation, cmd = m.calLocation.Update(msg)
	}
	return m, cmd
}

func (m Model) saveEventForm() (tea.Model, tea.Cmd) {
	summary := strings.TrimSpace(m.calSummary.Value())
	start := strings.TrimSpace(m.calStart.Value())
	end := strings.TrimSpace(m.calEnd.Value())
	location := strings.TrimSpace(m.calLocation.Value())
	if summary == "" || start == "" || end == "" {
		return m, nil
	}

	calendar, base := m.calendar, m.ctx
	if m.calEditID == "" {
		draft := api.EventDraft{Summary: summary, Start: start, End: end, Location: location}
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(base, fetchTimeout)
			defer cancel()
			return eventSavedMsg{ok: calendar.Create(ctx, draft)}
		}
	}

	id := m.calEditID
	patch := api.EventPatch{
		Summary:  &summary,
		Start:    &start,
		End:      &end,
		Location: &location,
	}
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, fetchTimeout)
		defer cancel()
		return eventSavedMsg{ok: calendar.Update(ctx, id, patch)}
	}
}

func (m Model) renderCalendar(height int) string {
	listWidth := m.width / 2
	if listWidth < 30 {
		listWidth = min(30, m.width-4)
	}
	detailWidth := m.width - listWidth - 6

	list := m.renderAgenda(listWidth, height-2)
	var detail string
	if m.calForm {
		detail = m.renderEventForm()
	} else {
		detail = m.renderEventDetail(detailWidth)
	}

	left := m.styles.Pane.Width(listWidth).Height(height - 2).Render(list)
	rightStyle := m.styles.Pane
	if m.calForm {
		rightStyle = m.styles.PaneFocus
	}
	right := rightStyle.Width(detailWidth).Height(height - 2).Render(detail)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderAgenda(width, height int) string {
	st := m.calendarState

	title := "Agenda"
	if st.Loading {
		title += " " + m.styles.Muted.Render("fetching...")
	}
	lines := []string{m.styles.Accent.Render(title), ""}

	if len(st.Items) == 0 {
		empty := "Nothing scheduled."
		if st.Loading {
			empty = "Loading events..."
		}
		lines = append(lines, m.styles.Muted.Render(empty))
		return strings.Join(lines, "\n")
	}

	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.calCursor >= visible {
		start = m.calCursor - visible + 1
	}
	var lastDay string
	for i := start; i < len(st.Items) && i < start+visible; i++ {
		event := st.Items[i]
		day := eventDay(event)
		if day != lastDay {
			lines = append(lines, m.styles.Muted.Render(day))
			lastDay = day
		}
		row := "  " + eventHour(event) + " " + truncate(event.Summary, width-12)
		if i == m.calCursor {
			row = m.styles.Selected.Render(truncate("> "+eventHour(event)+" "+event.Summary, width-2))
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEventDetail(width int) string {
	sel := m.calendarState.Selected
	if sel == nil {
		return m.styles.Muted.Render("Select an event with enter.\n\nn creates, e edits, d deletes.")
	}

	lines := []string{
		m.styles.Accent.Render(truncate(sel.Summary, width)),
		m.styles.Muted.Render("Starts: ") + formatWhen(sel.ParsedStart(), sel.Start),
		m.styles.Muted.Render("Ends:   ") + formatWhen(sel.ParsedEnd(), sel.End),
	}
	if sel.Location != "" {
		lines = append(lines, m.styles.Muted.Render("Where:  ")+sel.Location)
	}
	if len(sel.Attendees) > 0 {
		lines = append(lines, m.styles.Muted.Render("With:   ")+truncate(strings.Join(sel.Attendees, ", "), width-8))
	}
	if sel.Description != "" {
		lines = append(lines, "", wrapText(sel.Description, width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEventForm() string {
	title := "New event"
	if m.calEditID != "" {
		title = "Edit event"
	}

	labels := [4]string{"Summary", "Starts", "Ends", "Location"}
	fields := [4]string{m.calSummary.View(), m.calStart.View(), m.calEnd.View(), m.calLocation.View()}

	lines := []string{m.styles.Accent.Render(title), ""}
	for i := range labels {
		label := m.styles.Muted.Render(labels[i])
		if i == m.calFocus {
			label = m.styles.Accent.Render(labels[i])
		}
		lines = append(lines, label, fields[i], "")
	}
	if m.calendarState.Loading {
		lines = append(lines, m.styles.Muted.Render("Saving..."))
	}
	return strings.Join(lines, "\n")
}

func eventDay(event api.CalendarEvent) string {
	if t := event.ParsedStart(); !t.IsZero() {
		return t.Format("Mon Jan 2")
	}
	return "Unscheduled"
}

func eventHour(event api.CalendarEvent) string {
	if t := event.ParsedStart(); !t.IsZero() {
		return t.Format("15:04")
	}
	return "--:--"
}
