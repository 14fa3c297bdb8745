package cli

import (
	"strings"

	"calentry/internal/segfield"
	"calentry/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or change ~/.calentry/config.json",
	}

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Show the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":       path,
				"dateFormat": cfg.DateFormat,
				"theme":      cfg.Theme(),
			}})
		},
	}

	setCmd := &cobra.Command{
		Use:       "set <date-format|theme> <value>",
		Short:     "Set a config value (an empty value clears it)",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"date-format", "theme"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			v := strings.TrimSpace(args[1])
			switch args[0] {
			case "date-format":
				if v != "" {
					if _, err := segfield.ParseDatePattern(v); err != nil {
						return writeErr(cmd, err)
					}
				}
				cfg.DateFormat = v
			case "theme":
				v = strings.ToLower(v)
				switch v {
				case "", "light", "dark", "auto":
				default:
					return writeErr(cmd, errInvalidArg("theme", args[1], "light|dark|auto"))
				}
				if cfg.TUI == nil {
					cfg.TUI = &store.TUIConfig{}
				}
				cfg.TUI.Theme = v
			default:
				return writeErr(cmd, errInvalidArg("config key", args[0], "date-format|theme"))
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"key": args[0], "value": v}})
		},
	}

	cmd.AddCommand(getCmd)
	cmd.AddCommand(setCmd)
	return cmd
}
