package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rlvgl/butler/internal/store"
)

const defaultPollInterval = 30 * time.Second

// StartSessionPoller launches a background goroutine that refreshes auth
// status at a fixed cadence. It returns immediately.
func StartSessionPoller(ctx context.Context, session *store.SessionStore, interval time.Duration, logger *log.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			refresh(ctx, session, logger)
		}
	}()
}

func refresh(ctx context.Context, session *store.SessionStore, logger *log.Logger) {
	session.Refresh(ctx)
	if st := session.Current(); st.Err != "" {
		logger.Warn("auth status poll failed", "err", st.Err, "failures", st.ConsecutiveFailures)
	}
}
