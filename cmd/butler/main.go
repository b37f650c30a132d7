package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rlvgl/butler/internal/app"
	"github.com/rlvgl/butler/internal/logtail"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "butler: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		prefsPath   string
		apiBind     string
		pollSeconds int
		theme       string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "butler",
		Short: "Terminal client for the personal assistant gateway",
		Long: `butler is a terminal client for the personal assistant gateway.

It shows your inbox, agenda, and assistant conversation, and keeps each
view fresh against the gateway's Gmail, Calendar, and chat endpoints.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			// The TUI owns the terminal, so runtime logging goes to the
			// state file instead of stderr.
			logOut := os.Stderr
			if path, err := logtail.DefaultPath(); err == nil {
				if file, err := logtail.Open(path); err == nil {
					defer file.Close()
					logOut = file
				}
			}
			logger := log.NewWithOptions(logOut, log.Options{
				ReportTimestamp: true,
				Prefix:          "butler",
			})
			if verbose {
				logger.SetLevel(log.DebugLevel)
			} else {
				logger.SetLevel(log.WarnLevel)
			}

			return app.Run(ctx, app.Options{
				ConfigPath: configPath,
				PrefsPath:  prefsPath,
				APIBind:    apiBind,
				PollEvery:  pollSeconds,
				Theme:      theme,
				Logger:     logger,
			})
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "override config path (default ~/.config/butler/config.toml)")
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "override preferences path (default ~/.config/butler/prefs.toml)")
	cmd.Flags().StringVar(&apiBind, "api", "", "gateway address (default from config)")
	cmd.Flags().IntVar(&pollSeconds, "poll", 0, "session refresh interval in seconds")
	cmd.Flags().StringVar(&theme, "theme", "", "color theme (Dracula, Nord)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newLogsCmd())
	return cmd
}

func newLogsCmd() *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of butler's log file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := logtail.DefaultPath()
			if err != nil {
				return err
			}
			tail, err := logtail.Tail(path, lines)
			if err != nil {
				return err
			}
			for _, line := range tail {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to print")
	return cmd
}
