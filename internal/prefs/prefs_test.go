package prefs

import (
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.DefaultView != "" {
		t.Fatalf("DefaultView = %q, want empty", p.DefaultView)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	if err := Save(path, Prefs{Theme: "Nord", DefaultView: "email"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	p := Load(path)
	if p.Theme != "Nord" {
		t.Fatalf("Theme = %q, want Nord", p.Theme)
	}
	if p.DefaultView != "email" {
		t.Fatalf("DefaultView = %q, want email", p.DefaultView)
	}
}

func TestLoad_EmptyThemeUsesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := Save(path, Prefs{Theme: "  "}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	p := Load(path)
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}
