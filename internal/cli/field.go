package cli

import (
	"log/slog"
	"strings"

	"calentry/internal/segfield"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// direction is a pflag.Value restricted to up|down.
type direction segfield.Direction

func (d *direction) String() string {
	if segfield.Direction(*d) == segfield.Down {
		return "down"
	}
	return "up"
}

func (d *direction) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "+", "+1":
		*d = direction(segfield.Up)
	case "down", "-", "-1":
		*d = direction(segfield.Down)
	default:
		return errInvalidArg("direction", s, "up|down")
	}
	return nil
}

func (d *direction) Type() string { return "up|down" }

var _ pflag.Value = (*direction)(nil)

type fieldResult struct {
	Kind    string `json:"kind"`
	Pattern string `json:"pattern"`
	Text    string `json:"text"`
	Caret   int    `json:"caret"`
	Changed bool   `json:"changed"`
	Value   string `json:"value"`
	Segment string `json:"segment,omitempty"`
}

// newField builds a date field (resolved pattern) or a time field and
// applies --value.
func newField(app *App, kind, value string) (*segfield.Field, string, error) {
	switch kind {
	case "date":
		res, err := resolvePattern(app)
		if err != nil {
			return nil, "", err
		}
		f, err := segfield.NewDate(res.Pattern)
		if err != nil {
			return nil, "", err
		}
		if strings.TrimSpace(value) != "" {
			d, m, y, err := parseDateValue(value)
			if err != nil {
				return nil, "", err
			}
			f.SetDate(d, m, y)
		}
		return f, res.Pattern, nil
	case "time":
		f := segfield.NewTime()
		if strings.TrimSpace(value) != "" {
			h, m, err := parseTimeValue(value)
			if err != nil {
				return nil, "", err
			}
			f.SetTime(h, m)
		}
		return f, f.Layout().Pattern(), nil
	default:
		return nil, "", errInvalidArg("field kind", kind, "date|time")
	}
}

func fieldValue(kind string, f *segfield.Field) string {
	if kind == "date" {
		return fieldDate(f)
	}
	return fieldTime(f)
}

func newTypeCmd(app *App) *cobra.Command {
	var value string
	var caret int

	cmd := &cobra.Command{
		Use:       "type <date|time> <text>...",
		Short:     "Type text into a date or time field",
		Long:      "Each TEXT is applied as one insertion (a keystroke or a paste); the caret follows the field.",
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: []string{"date", "time"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			f, pattern, err := newField(app, kind, value)
			if err != nil {
				return writeErr(cmd, err)
			}
			before := f.Text()
			pos := caret
			for _, text := range args[1:] {
				res := f.Insert(pos, text)
				slog.Debug("field insert", "kind", kind, "caret", pos, "text", text, "result", res.Text, "next", res.Caret)
				pos = res.Caret
			}
			return writeOut(cmd, app, map[string]any{"data": fieldResult{
				Kind:    kind,
				Pattern: pattern,
				Text:    f.Text(),
				Caret:   pos,
				Changed: f.Text() != before,
				Value:   fieldValue(kind, f),
			}})
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "Initial value (YYYY-MM-DD or HH:MM)")
	cmd.Flags().IntVar(&caret, "caret", 0, "Caret position (runes) of the first insertion")
	return cmd
}

func newStepCmd(app *App) *cobra.Command {
	var value string
	var caret int
	dir := direction(segfield.Up)

	cmd := &cobra.Command{
		Use:       "step <date|time>",
		Short:     "Increment or decrement the segment under the caret",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"date", "time"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			f, pattern, err := newField(app, kind, value)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := f.Step(caret, segfield.Direction(dir))
			out := fieldResult{
				Kind:    kind,
				Pattern: pattern,
				Text:    res.Text,
				Caret:   res.Caret,
				Changed: res.Changed,
				Value:   fieldValue(kind, f),
			}
			if s, ok := f.Layout().SegmentAt(caret); ok {
				out.Segment = s.Kind.String()
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "Initial value (YYYY-MM-DD or HH:MM)")
	cmd.Flags().IntVar(&caret, "caret", 0, "Caret position (runes) inside the segment to step")
	cmd.Flags().Var(&dir, "direction", "Step direction (up|down)")
	return cmd
}
