package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rlvgl/butler/internal/api"
	"github.com/rlvgl/butler/internal/config"
	"github.com/rlvgl/butler/internal/prefs"
	"github.com/rlvgl/butler/internal/store"
	"github.com/rlvgl/butler/internal/ui"
)

// Options configure the butler application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/butler/prefs.toml
	APIBind    string // overrides the configured gateway address
	PollEvery  int    // seconds; zero uses the configured interval
	Theme      string // overrides the preferred theme
	Logger     *log.Logger
}

// Run boots the butler TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load butler config: %w", err)
	}
	if opts.APIBind != "" {
		cfg.APIBind = opts.APIBind
	}
	if opts.PollEvery > 0 {
		cfg.PollSeconds = opts.PollEvery
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	if opts.Theme != "" {
		userPrefs.Theme = opts.Theme
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	client, err := api.NewClient(cfg.APIBind)
	if err != nil {
		return fmt.Errorf("init gateway client: %w", err)
	}

	session := store.NewSessionStore(client)
	emails := store.NewEmailStore(client, logger)
	calendar := store.NewCalendarStore(client)
	chat := store.NewChatStore(client)
	nav := store.NewNavStore()
	if view := store.View(userPrefs.DefaultView); view.Valid() {
		nav.Set(view)
	}

	interval := time.Duration(cfg.PollSeconds) * time.Second

	// Start background session poller
	StartSessionPoller(ctx, session, interval, logger)

	// Populate the session before the UI starts so the dashboard has
	// something to show on first paint.
	session.Refresh(ctx)

	uiOpts := ui.Options{
		Context:    ctx,
		Nav:        nav,
		Session:    session,
		Email:      emails,
		Calendar:   calendar,
		Chat:       chat,
		AgendaDays: cfg.AgendaDays,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
