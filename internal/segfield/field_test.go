package segfield

import (
	"fmt"
	"testing"
	"time"
)

func mustDate(t *testing.T, pattern string) *Field {
	t.Helper()
	f, err := NewDate(pattern)
	if err != nil {
		t.Fatalf("NewDate(%q): %v", pattern, err)
	}
	return f
}

func TestNewDate_DefaultRendering(t *testing.T) {
	f := mustDate(t, "%d/%m/%Y")
	if got := f.Text(); got != "01/01/1970" {
		t.Fatalf("expected 01/01/1970, got %q", got)
	}
	d, m, y := f.Date()
	if d != 1 || m != 1 || y != 1970 {
		t.Fatalf("expected 1/1/1970, got %d/%d/%d", d, m, y)
	}
}

func TestNewTime_DefaultRendering(t *testing.T) {
	f := NewTime()
	if got := f.Text(); got != "00:00" {
		t.Fatalf("expected 00:00, got %q", got)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	patterns := []string{"%d/%m/%Y", "%m/%d/%Y", "%Y-%m-%d", "%d.%m.%Y", "%Y年%m月%d日", "%Y%m%d"}
	for _, p := range patterns {
		f := mustDate(t, p)
		for _, year := range []int{1, 1970, 2000, 2023, 2024, 9999} {
			for month := 1; month <= 12; month++ {
				for _, day := range []int{1, 15, DaysInMonth(month, year)} {
					f.SetDate(day, month, year)
					g := mustDate(t, p)
					text := []rune(f.Text())
					// Year and month first so a leap day is not clamped on the way in.
					for _, k := range []Kind{Year, Month, Day} {
						s, _ := g.Layout().Segment(k)
						g.Insert(s.Offset, string(text[s.Offset:s.End()]))
					}
					gd, gm, gy := g.Date()
					if gd != day || gm != month || gy != year {
						t.Fatalf("%s: %q re-parsed to %d/%d/%d, want %d/%d/%d", p, string(text), gd, gm, gy, day, month, year)
					}
				}
			}
		}
	}
}

func TestSetDate_ClampsDayToMonthLength(t *testing.T) {
	f := mustDate(t, "%d/%m/%Y")
	for _, year := range []int{1900, 2000, 2023, 2024} {
		for month := 1; month <= 12; month++ {
			f.SetDate(32, month, year)
			d, _, _ := f.Date()
			if want := DaysInMonth(month, year); d != want {
				t.Fatalf("SetDate(32, %d, %d): day=%d, want %d", month, year, d, want)
			}
		}
	}
}

func TestSetDate_ClampsMonth(t *testing.T) {
	f := mustDate(t, "%d/%m/%Y")
	f.SetDate(10, 13, 2024)
	if _, m, _ := f.Date(); m != 12 {
		t.Fatalf("expected month clamped to 12, got %d", m)
	}
	f.SetDate(10, 0, 2024)
	if _, m, _ := f.Date(); m != 1 {
		t.Fatalf("expected month clamped to 1, got %d", m)
	}
}

func TestSetDate_NonLeapFebruary(t *testing.T) {
	f := mustDate(t, "%d/%m/%Y")
	f.SetDate(29, 2, 2023)
	if got := f.Text(); got != "28/02/2023" {
		t.Fatalf("expected 28/02/2023, got %q", got)
	}
	f.SetDate(29, 2, 2024)
	if got := f.Text(); got != "29/02/2024" {
		t.Fatalf("expected 29/02/2024, got %q", got)
	}
}

func TestSetDate_AlwaysNotifies(t *testing.T) {
	f := mustDate(t, "%d/%m/%Y")
	n := 0
	f.OnChange(func() { n++ })
	f.SetDate(1, 1, 1970)
	f.SetDate(1, 1, 1970)
	if n != 2 {
		t.Fatalf("expected 2 notifications, got %d", n)
	}
}

func TestInsert_DayPairAdvancesPastSeparator(t *testing.T) {
	f := mustDate(t, "%d/%m/%Y")
	n := 0
	f.OnChange(func() { n++ })

	res := f.Insert(0, "31")
	if res.Text != "31/01/1970" {
		t.Fatalf("expected 31/01/1970, got %q", res.Text)
	}
	if res.Caret != 3 {
		t.Fatalf("expected caret 3, got %d", res.Caret)
	}
	if !res.Changed || n != 1 {
		t.Fatalf("expected one change notification, changed=%v n=%d", res.Changed, n)
	}
	if d, m, y := f.Date(); d != 31 || m != 1 || y != 1970 {
		t.Fatalf("expected 31/1/1970, got %d/%d/%d", d, m, y)
	}
}

func TestInsert_MonthChangeClampsDay(t *testing.T) {
	f := mustDate(t, "%d/%m/%Y")
	f.SetDate(31, 1, 2023)
	res := f.Insert(3, "02")
	if res.Text != "28/02/2023" {
		t.Fatalf("expected day clamped into February, got %q", res.Text)
	}
	res = f.Insert(6, "2024")
	if res.Text != "28/02/2024" {
		t.Fatalf("expected 28/02/2024, got %q", res.Text)
	}
	if res.Caret != 10 {
		t.Fatalf("expected caret at end, got %d", res.Caret)
	}
}

func TestInsert_YearChangeClampsLeapDay(t *testing.T) {
	f := mustDate(t, "%Y-%m-%d")
	f.SetDate(29, 2, 2024)
	res := f.Insert(3, "3")
	if res.Text != "2023-02-28" {
		t.Fatalf("expected 2023-02-28, got %q", res.Text)
	}
}

func TestInsert_HourPairClamped(t *testing.T) {
	f := NewTime()
	res := f.Insert(0, "25")
	if res.Text != "23:00" {
		t.Fatalf("expected 23:00, got %q", res.Text)
	}
	if h, _ := f.Time(); h != 23 {
		t.Fatalf("expected hour 23, got %d", h)
	}
}

func TestInsert_HourDigitsSequentially(t *testing.T) {
	f := NewTime()
	res := f.Insert(0, "2")
	if res.Text != "20:00" || res.Caret != 1 {
		t.Fatalf("after '2': got %q caret=%d", res.Text, res.Caret)
	}
	res = f.Insert(res.Caret, "5")
	if res.Text != "23:00" {
		t.Fatalf("after '5': expected 23:00, got %q", res.Text)
	}
	if res.Caret != 3 {
		t.Fatalf("expected caret past colon, got %d", res.Caret)
	}
}

func TestInsert_TensDigitClampsExistingUnits(t *testing.T) {
	f := NewTime()
	f.SetTime(5, 0)
	res := f.Insert(0, "2")
	if res.Text != "23:00" {
		t.Fatalf("expected 05 -> 23 after typing 2, got %q", res.Text)
	}
}

func TestInsert_LargeLeadingDigitFillsSegment(t *testing.T) {
	f := NewTime()
	res := f.Insert(0, "9")
	if res.Text != "09:00" {
		t.Fatalf("expected 09:00, got %q", res.Text)
	}
	if res.Caret != 3 {
		t.Fatalf("expected caret to move to minutes, got %d", res.Caret)
	}

	res = f.Insert(3, "7")
	if res.Text != "09:07" {
		t.Fatalf("expected 09:07, got %q", res.Text)
	}
	if res.Caret != 5 {
		t.Fatalf("expected caret at end, got %d", res.Caret)
	}
}

func TestInsert_KeystrokeSequenceWithColon(t *testing.T) {
	f := NewTime()
	caret := 0
	for _, k := range []string{"2", "3", ":", "5", "9"} {
		caret = f.Insert(caret, k).Caret
	}
	if got := f.Text(); got != "23:59" {
		t.Fatalf("expected 23:59, got %q", got)
	}
	if h, m := f.Time(); h != 23 || m != 59 {
		t.Fatalf("expected 23:59, got %d:%d", h, m)
	}
	if caret != 5 {
		t.Fatalf("expected caret 5, got %d", caret)
	}
}

func TestInsert_PasteSpansSegments(t *testing.T) {
	f := NewTime()
	res := f.Insert(0, "2359")
	if res.Text != "23:59" || res.Caret != 5 {
		t.Fatalf("expected 23:59 caret 5, got %q caret=%d", res.Text, res.Caret)
	}

	d := mustDate(t, "%d/%m/%Y")
	res = d.Insert(0, "24/12/2025")
	if res.Text != "24/12/2025" || res.Caret != 10 {
		t.Fatalf("expected 24/12/2025 caret 10, got %q caret=%d", res.Text, res.Caret)
	}
}

func TestInsert_SeparatorAdvancesIntoNextSegment(t *testing.T) {
	f := mustDate(t, "%d/%m/%Y")
	f.SetDate(12, 3, 2020)

	res := f.Insert(1, "5/")
	if res.Text != "15/03/2020" {
		t.Fatalf("expected 15/03/2020, got %q", res.Text)
	}
	if res.Caret != 3 {
		t.Fatalf("expected caret at month, got %d", res.Caret)
	}

	res = f.Insert(0, "5/0")
	if res.Text != "05/03/2020" {
		t.Fatalf("expected 05/03/2020, got %q", res.Text)
	}
	if d, m, _ := f.Date(); d != 5 || m != 3 {
		t.Fatalf("expected day 5 month 3, got %d/%d", d, m)
	}
}

func TestInsert_SeparatorAfterTensDigitKeepsUnits(t *testing.T) {
	f := mustDate(t, "%d/%m/%Y")
	f.SetDate(5, 3, 2020)

	res := f.Insert(0, "1/")
	if res.Text != "15/03/2020" {
		t.Fatalf("expected 15/03/2020, got %q", res.Text)
	}
	if res.Caret != 3 {
		t.Fatalf("expected caret at month, got %d", res.Caret)
	}
	if d, _, _ := f.Date(); d != 15 {
		t.Fatalf("expected day 15, got %d", d)
	}
}

func TestFormat_IgnoresEditBounds(t *testing.T) {
	f := mustDate(t, "%m/%d/%y")
	f.SetDate(2, 3, 2026)
	calls := 0
	f.OnChange(func() { calls++ })

	cases := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2100, 3, 1, 0, 0, 0, 0, time.UTC), "03/01/00"},
		{time.Date(1950, 6, 15, 0, 0, 0, 0, time.UTC), "06/15/50"},
		{time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), "02/29/24"},
	}
	for _, tc := range cases {
		if got := f.Format(tc.t); got != tc.want {
			t.Fatalf("Format(%s) = %q, want %q", tc.t.Format("2006-01-02"), got, tc.want)
		}
	}
	if f.Text() != "03/02/26" || calls != 0 {
		t.Fatalf("Format must not edit the field: text=%q calls=%d", f.Text(), calls)
	}
}

func TestInsert_OnSeparatorIsNoop(t *testing.T) {
	f := mustDate(t, "%d/%m/%Y")
	n := 0
	f.OnChange(func() { n++ })
	res := f.Insert(2, "5")
	if res.Text != "01/01/1970" || res.Caret != 2 || res.Changed || n != 0 {
		t.Fatalf("expected no-op, got %+v n=%d", res, n)
	}
}

func TestInsert_NonDigitIsNoop(t *testing.T) {
	f := NewTime()
	n := 0
	f.OnChange(func() { n++ })
	for _, text := range []string{"", "a", "x12", ":", " "} {
		res := f.Insert(0, text)
		if res.Text != "00:00" || res.Caret != 0 || res.Changed {
			t.Fatalf("Insert(0, %q): expected no-op, got %+v", text, res)
		}
	}
	if n != 0 {
		t.Fatalf("expected no notifications, got %d", n)
	}
}

func TestInsert_NonDigitStopsScan(t *testing.T) {
	f := NewTime()
	res := f.Insert(0, "1x9")
	if res.Text != "10:00" || res.Caret != 1 {
		t.Fatalf("expected only the first digit applied, got %q caret=%d", res.Text, res.Caret)
	}
}

func TestInsert_OutOfRangeCaretIsNoop(t *testing.T) {
	f := NewTime()
	for _, caret := range []int{-1, 5, 6, 100} {
		res := f.Insert(caret, "1")
		if res.Text != "00:00" || res.Caret != caret || res.Changed {
			t.Fatalf("Insert(%d): expected no-op, got %+v", caret, res)
		}
	}
}

func TestInsert_TruncatesAtEnd(t *testing.T) {
	f := NewTime()
	res := f.Insert(3, "4599")
	if res.Text != "00:45" || res.Caret != 5 {
		t.Fatalf("expected 00:45 caret 5, got %q caret=%d", res.Text, res.Caret)
	}
}

func TestInsert_UnitsDigitClamped(t *testing.T) {
	f := mustDate(t, "%d/%m/%Y")
	f.SetDate(10, 10, 2020)
	res := f.Insert(4, "9")
	if res.Text != "10/12/2020" {
		t.Fatalf("expected month 19 clamped to 12, got %q", res.Text)
	}
	res = f.Insert(0, "00")
	if res.Text != "01/12/2020" {
		t.Fatalf("expected day 00 clamped to 01, got %q", res.Text)
	}
}

func TestInsert_SameValueStillMovesCaret(t *testing.T) {
	f := NewTime()
	n := 0
	f.OnChange(func() { n++ })
	res := f.Insert(0, "0")
	if res.Text != "00:00" || res.Caret != 1 || res.Changed || n != 0 {
		t.Fatalf("expected unchanged value with caret 1, got %+v n=%d", res, n)
	}
}

func TestInsert_TwoDigitYear(t *testing.T) {
	f := mustDate(t, "%m/%d/%y")
	if got := f.Text(); got != "01/01/70" {
		t.Fatalf("expected 01/01/70, got %q", got)
	}
	res := f.Insert(6, "24")
	if res.Text != "01/01/24" {
		t.Fatalf("expected 01/01/24, got %q", res.Text)
	}
	if _, _, y := f.Date(); y != 2024 {
		t.Fatalf("expected year 2024, got %d", y)
	}
	f.Insert(0, "02")
	f.Insert(3, "29")
	if got := f.Text(); got != "02/29/24" {
		t.Fatalf("expected leap day kept in 2024, got %q", got)
	}
	f.Insert(6, "23")
	if got := f.Text(); got != "02/28/23" {
		t.Fatalf("expected leap day clamped in 2023, got %q", got)
	}
}

func TestStep_MinutesWrap(t *testing.T) {
	f := NewTime()
	f.SetTime(10, 59)
	res := f.Step(4, Up)
	if res.Text != "10:00" {
		t.Fatalf("expected 10:00, got %q", res.Text)
	}
	if res.Caret != 3 {
		t.Fatalf("expected caret at minute start, got %d", res.Caret)
	}
	res = f.Step(3, Down)
	if res.Text != "10:59" {
		t.Fatalf("expected 10:59, got %q", res.Text)
	}
}

func TestStep_HoursWrap(t *testing.T) {
	f := NewTime()
	res := f.Step(1, Down)
	if res.Text != "23:00" || res.Caret != 0 {
		t.Fatalf("expected 23:00 caret 0, got %q caret=%d", res.Text, res.Caret)
	}
	res = f.Step(0, Up)
	if res.Text != "00:00" {
		t.Fatalf("expected 00:00, got %q", res.Text)
	}
}

func TestStep_OnSeparatorIsNoop(t *testing.T) {
	f := NewTime()
	for _, caret := range []int{2, 5} {
		res := f.Step(caret, Up)
		if res.Text != "00:00" || res.Caret != caret || res.Changed {
			t.Fatalf("Step(%d): expected no-op, got %+v", caret, res)
		}
	}
}

func TestStep_DateSegments(t *testing.T) {
	f := mustDate(t, "%d/%m/%Y")
	f.SetDate(31, 1, 2023)

	if res := f.Step(0, Up); res.Text != "01/01/2023" {
		t.Fatalf("expected day to wrap to 01, got %q", res.Text)
	}
	f.SetDate(31, 1, 2023)
	if res := f.Step(3, Up); res.Text != "28/02/2023" {
		t.Fatalf("expected day clamped after month step, got %q", res.Text)
	}
	if res := f.Step(3, Down); res.Text != "28/01/2023" {
		t.Fatalf("expected 28/01/2023, got %q", res.Text)
	}
	f.SetDate(1, 12, 2023)
	if res := f.Step(4, Up); res.Text != "01/01/2023" {
		t.Fatalf("expected month 12 to wrap to 01 without touching year, got %q", res.Text)
	}
	if res := f.Step(8, Down); res.Text != "01/01/2022" || res.Caret != 6 {
		t.Fatalf("expected 01/01/2022 caret 6, got %q caret=%d", res.Text, res.Caret)
	}
}

func TestStep_Notifies(t *testing.T) {
	f := NewTime()
	n := 0
	f.OnChange(func() { n++ })
	f.Step(0, Up)
	f.Step(3, Up)
	if n != 2 {
		t.Fatalf("expected 2 notifications, got %d", n)
	}
}

func TestDelete_IsDenied(t *testing.T) {
	f := mustDate(t, "%d/%m/%Y")
	f.SetDate(24, 12, 2025)
	n := 0
	f.OnChange(func() { n++ })
	res := f.Delete(0, 10)
	if res.Text != "24/12/2025" || res.Changed || n != 0 {
		t.Fatalf("expected deletion to be ignored, got %+v n=%d", res, n)
	}
	if res.Caret != 0 {
		t.Fatalf("expected caret 0, got %d", res.Caret)
	}
}

func TestCaretNavigation(t *testing.T) {
	f := mustDate(t, "%d/%m/%Y")
	cases := []struct {
		from     int
		wantNext int
		wantPrev int
	}{
		{0, 1, 0},
		{1, 3, 0},
		{3, 4, 1},
		{6, 7, 4},
		{9, 10, 8},
		{10, 10, 9},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("caret=%d", tc.from), func(t *testing.T) {
			if got := f.NextCaret(tc.from); got != tc.wantNext {
				t.Fatalf("NextCaret(%d)=%d, want %d", tc.from, got, tc.wantNext)
			}
			if got := f.PrevCaret(tc.from); got != tc.wantPrev {
				t.Fatalf("PrevCaret(%d)=%d, want %d", tc.from, got, tc.wantPrev)
			}
		})
	}
}

func TestSetTime_Clamps(t *testing.T) {
	f := NewTime()
	f.SetTime(24, 60)
	if got := f.Text(); got != "23:59" {
		t.Fatalf("expected 23:59, got %q", got)
	}
	f.SetTime(-1, -5)
	if got := f.Text(); got != "00:00" {
		t.Fatalf("expected 00:00, got %q", got)
	}
}
