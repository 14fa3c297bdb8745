package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"calentry/internal/model"
	"calentry/internal/segfield"
)

var (
	reDateOnly = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	reTimeOnly = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	reDateTime = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2})(?::\d{2})?$`)
)

// parseStart parses an event start given as:
// - YYYY-MM-DD (all-day)
// - YYYY-MM-DD HH:MM (local date+time)
// - RFC3339 (timezone-aware, stored as UTC wall time)
func parseStart(s string) (model.DateTime, error) {
	s = strings.TrimSpace(s)
	if reDateOnly.MatchString(s) {
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return model.DateTime{}, errInvalidArg("start", s, "a real calendar date")
		}
		return model.DateTime{Date: s}, nil
	}
	if m := reDateTime.FindStringSubmatch(s); m != nil {
		if _, err := time.Parse("2006-01-02 15:04", m[1]+" "+m[2]); err != nil {
			return model.DateTime{}, errInvalidArg("start", s, "a real calendar date and 24h time")
		}
		hm := m[2]
		return model.DateTime{Date: m[1], Time: &hm}, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		ts = ts.UTC()
		return model.NewDateTime(ts.Day(), int(ts.Month()), ts.Year(), ts.Hour(), ts.Minute()), nil
	}
	return model.DateTime{}, errInvalidArg("start", s, "YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339")
}

// parseDateValue reads an ISO date. Out-of-range parts are passed through so
// the field's own clamping applies (2023-02-31 => 28 Feb 2023).
func parseDateValue(s string) (day, month, year int, err error) {
	m := reDateOnly.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, 0, errInvalidArg("date", s, "YYYY-MM-DD")
	}
	year, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	day, _ = strconv.Atoi(m[3])
	return day, month, year, nil
}

// parseTimeValue reads HH:MM; values are clamped by the field.
func parseTimeValue(s string) (hours, minutes int, err error) {
	m := reTimeOnly.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, errInvalidArg("time", s, "HH:MM")
	}
	hours, _ = strconv.Atoi(m[1])
	minutes, _ = strconv.Atoi(m[2])
	return hours, minutes, nil
}

// typeIntoDate accepts either an ISO date or text typed in the field's own
// layout ("24/12/2025" or "1/2/2025" for %d/%m/%Y). Each digit group fills one
// segment, zero-padded; leaving out only the year means now's year. The
// result goes through Insert, so it is clamped exactly like keyboard input.
func typeIntoDate(f *segfield.Field, s string, now time.Time) error {
	if d, mo, y, err := parseDateValue(s); err == nil {
		f.SetDate(d, mo, y)
		return nil
	}
	invalid := errInvalidArg("date", s, "YYYY-MM-DD or "+f.Layout().Pattern())

	groups := strings.FieldsFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	segs := f.Layout().Segments()
	if len(groups) == len(segs)-1 {
		kept := segs[:0:0]
		for _, seg := range segs {
			if seg.Kind != segfield.Year {
				kept = append(kept, seg)
			}
		}
		segs = kept
	}
	if len(groups) != len(segs) {
		return invalid
	}

	f.SetFromTime(now)
	text := []rune(f.Text())
	for i, seg := range segs {
		g := groups[i]
		if len(g) > seg.Width {
			return invalid
		}
		copy(text[seg.Offset:seg.End()], []rune(strings.Repeat("0", seg.Width-len(g))+g))
	}
	home := f.HomeCaret()
	if res := f.Insert(home, string(text[home:])); res.Caret != f.Len() {
		return invalid
	}
	return nil
}

func fieldDate(f *segfield.Field) string {
	d, m, y := f.Date()
	return model.NewDate(d, m, y).Date
}

func fieldTime(f *segfield.Field) string {
	h, m := f.Time()
	return fmt.Sprintf("%02d:%02d", h, m)
}
