package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rlvgl/butler/internal/api"
	"github.com/rlvgl/butler/internal/store"
)

func newTestModel(t *testing.T) (Model, *store.NavStore) {
	t.Helper()
	nav := store.NewNavStore()
	m := newModel(Options{Nav: nav, AgendaDays: 7, ThemeName: "Dracula"})
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return sized.(Model), nav
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_StartsOnNavStoreView(t *testing.T) {
	nav := store.NewNavStore()
	nav.Set(store.ViewChat)
	m := newModel(Options{Nav: nav})
	if m.view != store.ViewChat {
		t.Fatalf("initial view = %s, want chat", m.view)
	}
}

func TestModel_NavMsgSwitchesView(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(navMsg(store.ViewEmail))
	m = updated.(Model)
	if m.view != store.ViewEmail {
		t.Fatalf("view after navMsg = %s, want email", m.view)
	}
}

func TestModel_DigitKeySetsNavStore(t *testing.T) {
	m, nav := newTestModel(t)

	_, cmd := m.Update(keyPress("3"))
	if cmd == nil {
		t.Fatalf("digit key produced no command")
	}
	cmd()
	if got := nav.Current(); got != store.ViewCalendar {
		t.Fatalf("nav view = %s, want calendar", got)
	}
}

func TestModel_EmailStateClampsCursor(t *testing.T) {
	m, _ := newTestModel(t)
	m.emailCursor = 10

	st := store.State[api.Email]{Items: []api.Email{{ID: "a"}, {ID: "b"}}}
	updated, _ := m.Update(emailStateMsg(st))
	m = updated.(Model)

	if m.emailCursor != 1 {
		t.Fatalf("emailCursor = %d, want 1 (last item)", m.emailCursor)
	}
	if len(m.emailState.Items) != 2 {
		t.Fatalf("emailState.Items = %d, want 2", len(m.emailState.Items))
	}
}

func TestModel_EmptyStateKeepsCursorAtZero(t *testing.T) {
	m, _ := newTestModel(t)
	m.calCursor = 4

	updated, _ := m.Update(calendarStateMsg(store.State[api.CalendarEvent]{}))
	m = updated.(Model)

	if m.calCursor != 0 {
		t.Fatalf("calCursor = %d, want 0 on empty list", m.calCursor)
	}
}

func TestModel_EscDismissesBannerOnce(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(navMsg(store.ViewEmail))
	m = updated.(Model)
	updated, _ = m.Update(emailStateMsg(store.State[api.Email]{Err: "boom"}))
	m = updated.(Model)

	if footer := m.renderFooter(); !strings.Contains(footer, "boom") {
		t.Fatalf("footer = %q, want error banner", footer)
	}

	updated, _ = m.Update(keyPress("esc"))
	m = updated.(Model)
	if footer := m.renderFooter(); strings.Contains(footer, "boom") {
		t.Fatalf("footer still shows dismissed error: %q", footer)
	}

	// A different failure resurfaces the banner.
	updated, _ = m.Update(emailStateMsg(store.State[api.Email]{Err: "worse"}))
	m = updated.(Model)
	if footer := m.renderFooter(); !strings.Contains(footer, "worse") {
		t.Fatalf("footer = %q, want new error banner", footer)
	}
}

func TestModel_ComposeOpensAndCancels(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(navMsg(store.ViewEmail))
	m = updated.(Model)

	updated, _ = m.Update(keyPress("c"))
	m = updated.(Model)
	if !m.composing {
		t.Fatalf("composing = false after c, want form open")
	}

	updated, _ = m.Update(keyPress("esc"))
	m = updated.(Model)
	if m.composing {
		t.Fatalf("composing = true after esc, want form closed")
	}
}

func TestModel_EventFormPrefillsOnEdit(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(navMsg(store.ViewCalendar))
	m = updated.(Model)

	st := store.State[api.CalendarEvent]{Items: []api.CalendarEvent{{
		ID: "ev1", Summary: "Standup", Start: "2026-03-14T09:00:00Z", End: "2026-03-14T09:15:00Z",
	}}}
	updated, _ = m.Update(calendarStateMsg(st))
	m = updated.(Model)

	updated, _ = m.Update(keyPress("e"))
	m = updated.(Model)
	if !m.calForm || m.calEditID != "ev1" {
		t.Fatalf("calForm=%v calEditID=%q, want edit form for ev1", m.calForm, m.calEditID)
	}
	if got := m.calSummary.Value(); got != "Standup" {
		t.Fatalf("summary field = %q, want prefill", got)
	}
}

func TestModel_ViewRendersEveryScreen(t *testing.T) {
	m, _ := newTestModel(t)

	for _, v := range viewOrder {
		updated, _ := m.Update(navMsg(v))
		m = updated.(Model)
		frame := m.View()
		if frame == "" {
			t.Fatalf("View() empty for %s", v)
		}
		if !strings.Contains(frame, "butler") {
			t.Fatalf("frame for %s missing header", v)
		}
	}
}

func TestModel_SearchAppliesQueryAndRefetches(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(navMsg(store.ViewEmail))
	m = updated.(Model)

	updated, _ = m.Update(keyPress("/"))
	m = updated.(Model)
	if !m.searching {
		t.Fatalf("searching = false after /, want search input open")
	}

	for _, r := range "invoice" {
		updated, _ = m.Update(keyPress(string(r)))
		m = updated.(Model)
	}
	updated, cmd := m.Update(keyPress("enter"))
	m = updated.(Model)

	if m.searching {
		t.Fatalf("searching = true after enter, want input closed")
	}
	if got := m.emailFilter.Query; got != "invoice" {
		t.Fatalf("emailFilter.Query = %q, want %q", got, "invoice")
	}
	if cmd == nil {
		t.Fatalf("applying a search produced no refetch command")
	}
}

func TestModel_SearchEscKeepsActiveFilter(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(navMsg(store.ViewEmail))
	m = updated.(Model)
	m.emailFilter.Query = "budget"

	updated, _ = m.Update(keyPress("/"))
	m = updated.(Model)
	for _, r := range "xyz" {
		updated, _ = m.Update(keyPress(string(r)))
		m = updated.(Model)
	}
	updated, _ = m.Update(keyPress("esc"))
	m = updated.(Model)

	if m.searching {
		t.Fatalf("searching = true after esc, want input closed")
	}
	if got := m.emailFilter.Query; got != "budget" {
		t.Fatalf("emailFilter.Query = %q after cancel, want %q unchanged", got, "budget")
	}
}

func TestModel_ThemeToggleAppliesImmediately(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.theme.Name

	updated, cmd := m.Update(keyPress("t"))
	m = updated.(Model)

	if m.theme.Name == before {
		t.Fatalf("theme = %q after toggle, want a different palette", m.theme.Name)
	}
	if cmd == nil {
		t.Fatalf("theme toggle produced no persistence command")
	}
}

func TestModel_UnreadToggleRefetches(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(navMsg(store.ViewEmail))
	m = updated.(Model)

	updated, cmd := m.Update(keyPress("u"))
	m = updated.(Model)
	if !m.emailFilter.Unread {
		t.Fatalf("emailFilter.Unread = false after u, want true")
	}
	if cmd == nil {
		t.Fatalf("unread toggle produced no refetch command")
	}
}
