package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the chorekit command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	var logLevel, logFormat string

	root := &cobra.Command{
		Use:           "chorekit",
		Short:         "Personal automation for cloud billing, cleanup, translation and video publishing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if logLevel != "" {
				if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
					return fmt.Errorf("--log-level: %w", err)
				}
			}
			if logFormat != "" {
				cfg.LogFormat = logFormat
			}
			app.Config = cfg

			handler, err := newLogHandler(app, cfg.LogFormat, cfg.LogLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(handler))
			slog.Debug("config loaded",
				"command", cmd.CommandPath(),
				"history", cfg.HasHistory(),
				"token_dir", cfg.TokenDir,
			)
			return nil
		},
	}
	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (default from CHOREKIT_LOG_LEVEL)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json (default from CHOREKIT_LOG_FORMAT)")

	root.AddCommand(
		newBalanceCommand(app),
		newDropletsCommand(app),
		newProjectsCommand(app),
		newTranslateCommand(app),
		newVideoCommand(app),
		newBlogCommand(app),
		newHistoryCommand(app),
	)
	return root
}

func newLogHandler(app *App, format string, level slog.Level) (slog.Handler, error) {
	w := app.Err
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case "", "text":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("--log-format must be text or json, got %q", format)
	}
}
