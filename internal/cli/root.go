package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"calentry/internal/format"
	"calentry/internal/locale"
	"calentry/internal/logging"
	"calentry/internal/store"
	"calentry/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
	DateFormat string
	LogFile    string

	logCloser io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "calentry",
		Short:        "Segmented date/time entry (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive event editor
  calentry

  # Type into a date field laid out in the current locale
  calentry type date --value 2025-12-24 --caret 0 31

  # Step the minutes of a time field
  calentry step time --value 23:59 --caret 3 --direction up

  # Draft an event and export everything as iCalendar
  calentry events add --summary Standup --date 2026-03-02 --time 09:30
  calentry events export --out events.ics
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		c, err := logging.Setup(app.LogFile)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.logCloser = c
		return nil
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.logCloser == nil {
			return nil
		}
		return app.logCloser.Close()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CALENTRY_DIR", ""), "Directory holding events.sqlite (default: the config dir)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CALENTRY_FORMAT", "json"), "Output format (json|edn|table)")
	cmd.PersistentFlags().StringVar(&app.DateFormat, "date-format", envOr("CALENTRY_DATE_FORMAT", ""), "Date pattern, e.g. %d/%m/%Y (overrides config and locale)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Append debug logs to this file (default: $"+logging.EnvFile+")")

	cmd.AddCommand(newTypeCmd(app))
	cmd.AddCommand(newStepCmd(app))
	cmd.AddCommand(newLocaleCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func runTUI(ctx context.Context, app *App) error {
	s, err := loadStore(app)
	if err != nil {
		return err
	}
	res, err := resolvePattern(app)
	if err != nil {
		return err
	}
	theme := ""
	if cfg, err := store.LoadConfig(); err == nil {
		theme = cfg.Theme()
	}
	return tui.Run(ctx, tui.Options{Store: s, Pattern: res.Pattern, Theme: theme})
}

func loadStore(app *App) (store.Store, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}
	s := store.Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		return store.Store{}, err
	}
	return s, nil
}

// resolvePattern picks the date pattern:
// 1) --date-format / $CALENTRY_DATE_FORMAT
// 2) dateFormat in config.json
// 3) LC_ALL, LC_TIME, LANG
// 4) the C locale's %m/%d/%y
func resolvePattern(app *App) (locale.Resolution, error) {
	if p := strings.TrimSpace(app.DateFormat); p != "" {
		return locale.Resolve(p, os.Getenv), nil
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return locale.Resolution{}, err
	}
	if p := strings.TrimSpace(cfg.DateFormat); p != "" {
		res := locale.Resolve(p, os.Getenv)
		res.Source = locale.SourceConfig
		return res, nil
	}
	return locale.Resolve("", os.Getenv), nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
