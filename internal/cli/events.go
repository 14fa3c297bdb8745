package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"calentry/internal/ical"
	"calentry/internal/model"
	"calentry/internal/segfield"

	"github.com/spf13/cobra"
)

// eventView adds the event start as rendered by the date field.
type eventView struct {
	model.Event
	Display string `json:"display"`
}

func newEventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Draft, list and export events",
	}
	cmd.AddCommand(newEventsAddCmd(app))
	cmd.AddCommand(newEventsListCmd(app))
	cmd.AddCommand(newEventsRmCmd(app))
	cmd.AddCommand(newEventsExportCmd(app))
	return cmd
}

func newEventsAddCmd(app *App) *cobra.Command {
	var summary, notes, start, date, at string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Draft an event",
		Example: strings.TrimSpace(`
  calentry events add --summary Holiday --start 2025-12-24
  calentry events add --summary Standup --date 02/03/2026 --time 09:30 --date-format %d/%m/%Y
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var dt model.DateTime
			switch {
			case strings.TrimSpace(start) != "":
				if date != "" || at != "" {
					return writeErr(cmd, fmt.Errorf("--start cannot be combined with --date/--time"))
				}
				v, err := parseStart(start)
				if err != nil {
					return writeErr(cmd, err)
				}
				dt = v
			case strings.TrimSpace(date) != "":
				v, err := startFromFields(app, date, at)
				if err != nil {
					return writeErr(cmd, err)
				}
				dt = v
			default:
				return writeErr(cmd, fmt.Errorf("missing --start or --date"))
			}

			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ev, err := s.AddEvent(cmd.Context(), model.Event{Summary: summary, Notes: notes, Start: dt})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ev})
		},
	}
	cmd.Flags().StringVar(&summary, "summary", "", "Event summary (required)")
	cmd.Flags().StringVar(&notes, "notes", "", "Event notes (markdown)")
	cmd.Flags().StringVar(&start, "start", "", "Start: YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC3339")
	cmd.Flags().StringVar(&date, "date", "", "Start date: YYYY-MM-DD or typed in the date pattern")
	cmd.Flags().StringVar(&at, "time", "", "Start time HH:MM (omit for all-day)")
	return cmd
}

// startFromFields runs --date and --time through the same fields the TUI
// edits with, so typed values are clamped rather than rejected.
func startFromFields(app *App, date, at string) (model.DateTime, error) {
	res, err := resolvePattern(app)
	if err != nil {
		return model.DateTime{}, err
	}
	df, err := segfield.NewDate(res.Pattern)
	if err != nil {
		return model.DateTime{}, err
	}
	if err := typeIntoDate(df, date, time.Now()); err != nil {
		return model.DateTime{}, err
	}
	d, m, y := df.Date()
	if strings.TrimSpace(at) == "" {
		return model.NewDate(d, m, y), nil
	}
	tf := segfield.NewTime()
	h, mi, err := parseTimeValue(at)
	if err != nil {
		return model.DateTime{}, err
	}
	tf.SetTime(h, mi)
	h, mi = tf.Time()
	return model.NewDateTime(d, m, y, h, mi), nil
}

func newEventsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List drafted events (by start)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			evs, err := s.ListEvents(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := resolvePattern(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]eventView, 0, len(evs))
			for _, ev := range evs {
				out = append(out, eventView{Event: ev, Display: ev.Start.Display(res.Pattern)})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newEventsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <event-id>",
		Short: "Delete a drafted event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			ok, err := s.DeleteEvent(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, errNotFound("event", id))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
		},
	}
}

func newEventsExportCmd(app *App) *cobra.Command {
	var out, tz string
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write drafted events as iCalendar (.ics)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := ical.Options{Duration: duration}
			if strings.TrimSpace(tz) != "" {
				loc, err := time.LoadLocation(strings.TrimSpace(tz))
				if err != nil {
					return writeErr(cmd, err)
				}
				opts.Location = loc
			}

			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			evs, err := s.ListEvents(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			if strings.TrimSpace(out) == "" || out == "-" {
				if err := ical.Encode(cmd.OutOrStdout(), evs, opts); err != nil {
					return writeErr(cmd, err)
				}
				return nil
			}
			f, err := os.Create(out)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := ical.Encode(f, evs, opts); err != nil {
				_ = f.Close()
				return writeErr(cmd, err)
			}
			if err := f.Close(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": out, "count": len(evs)}})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA zone for timed events, written as UTC (default: floating local time)")
	cmd.Flags().DurationVar(&duration, "duration", time.Hour, "Length of timed events")
	return cmd
}
