package ui

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rlvgl/butler/internal/store"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello w…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
		{"héllo wörld", 7, "héllo …"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{3, 0, -1, 0}, // empty list collapses to lo
	}
	for _, tc := range cases {
		if got := clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Errorf("clamp(%d, %d, %d) = %d, want %d", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("one\ntwo"); got != "one" {
		t.Errorf("firstLine = %q, want %q", got, "one")
	}
	if got := firstLine("plain"); got != "plain" {
		t.Errorf("firstLine = %q, want %q", got, "plain")
	}
}

func TestNextView_CyclesClosedSet(t *testing.T) {
	order := []store.View{store.ViewDashboard, store.ViewEmail, store.ViewCalendar, store.ViewChat, store.ViewDashboard}
	for i := 0; i < len(order)-1; i++ {
		if got := nextView(order[i]); got != order[i+1] {
			t.Errorf("nextView(%s) = %s, want %s", order[i], got, order[i+1])
		}
	}
	if got := nextView(store.View("bogus")); got != store.ViewDashboard {
		t.Errorf("nextView(bogus) = %s, want dashboard", got)
	}
}

func TestViewForDigit(t *testing.T) {
	cases := map[string]store.View{
		"1": store.ViewDashboard,
		"2": store.ViewEmail,
		"3": store.ViewCalendar,
		"4": store.ViewChat,
	}
	for digit, want := range cases {
		if got := viewForDigit(digit); got != want {
			t.Errorf("viewForDigit(%q) = %s, want %s", digit, got, want)
		}
	}
}

func TestAgendaWindow(t *testing.T) {
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	window := agendaWindow(now, 7)

	wantStart := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	if !window.Start.Equal(wantStart) {
		t.Errorf("window.Start = %v, want midnight today", window.Start)
	}
	if got := window.End.Sub(window.Start); got != 7*24*time.Hour {
		t.Errorf("window span = %v, want 7 days", got)
	}
}

func TestThemeByName(t *testing.T) {
	if got := themeByName("Nord"); got.Name != "Nord" {
		t.Errorf("themeByName(Nord).Name = %q", got.Name)
	}
	if got := themeByName("unknown"); got.Name != "Dracula" {
		t.Errorf("themeByName(unknown).Name = %q, want Dracula fallback", got.Name)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	seen := map[string]bool{}
	name := themes[0].Name
	for range themes {
		seen[name] = true
		name = nextTheme(name).Name
	}
	if name != themes[0].Name {
		t.Errorf("cycle did not return to %q, got %q", themes[0].Name, name)
	}
	if len(seen) != len(themes) {
		t.Errorf("cycle visited %d themes, want %d", len(seen), len(themes))
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("aaaaaaaaaabbbbbbbbbb", 10)
	want := "aaaaaaaaaa\nbbbbbbbbbb"
	if got != want {
		t.Errorf("wrapText = %q, want %q", got, want)
	}
}

func TestWrapText_BreaksOnRunesNotBytes(t *testing.T) {
	// Three bytes per rune: a byte-indexed wrap would tear runes apart at
	// the line break.
	got := wrapText(strings.Repeat("日", 12), 10)
	want := strings.Repeat("日", 10) + "\n" + strings.Repeat("日", 2)
	if got != want {
		t.Errorf("wrapText = %q, want %q", got, want)
	}
	if !utf8.ValidString(got) {
		t.Errorf("wrapText produced invalid UTF-8: %q", got)
	}

	mixed := wrapText("héllo wörld, ça va très bien aujourd'hui", 10)
	if !utf8.ValidString(mixed) {
		t.Errorf("wrapText produced invalid UTF-8: %q", mixed)
	}
	for _, line := range strings.Split(mixed, "\n") {
		if n := len([]rune(line)); n > 10 {
			t.Errorf("wrapped line %q is %d runes, want at most 10", line, n)
		}
	}
}
