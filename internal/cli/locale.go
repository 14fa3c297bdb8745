package cli

import (
	"time"

	"calentry/internal/locale"
	"calentry/internal/segfield"

	"github.com/spf13/cobra"
)

type segmentView struct {
	Kind   string `json:"kind"`
	Offset int    `json:"offset"`
	Width  int    `json:"width"`
}

func newLocaleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "locale",
		Short: "Show the date pattern in effect and where it came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := resolvePattern(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := segfield.NewDate(res.Pattern)
			if err != nil {
				return writeErr(cmd, err)
			}
			f.SetFromTime(time.Now())

			segs := []segmentView{}
			for _, s := range f.Layout().Segments() {
				segs = append(segs, segmentView{Kind: s.Kind.String(), Offset: s.Offset, Width: s.Width})
			}
			return writeOut(cmd, app, map[string]any{"data": struct {
				locale.Resolution
				Sample   string        `json:"sample"`
				Segments []segmentView `json:"segments"`
			}{res, f.Text(), segs}})
		},
	}
}
