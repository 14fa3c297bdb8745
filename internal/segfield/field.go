// Package segfield implements the editing model behind fixed-width date and
// time entry fields.
//
// A Field owns a Layout (the immutable shape of its rendering) and the integer
// value of every segment. All edits go through Insert, Step, SetDate or
// SetTime; the visible text is always regenerated from the integer values, so
// a host never observes a partially typed or out-of-range rendering.
package segfield

import "time"

// Result is what a host needs after an edit: the canonical text, where the
// caret goes next, and whether the value changed.
type Result struct {
	Text    string
	Caret   int
	Changed bool
}

// Direction is the sign of a Step.
type Direction int

const (
	Down Direction = -1
	Up   Direction = 1
)

type values [numKinds]int

// Field is a segmented numeric value bound to one Layout. It is not safe for
// concurrent use; a Field belongs to the single UI loop that drives it.
type Field struct {
	layout    *Layout
	vals      values
	observers []func()
}

// New returns a field over l holding 1/1/1970 00:00.
func New(l *Layout) *Field {
	f := &Field{layout: l}
	f.vals[Day] = 1
	f.vals[Month] = 1
	f.vals[Year] = 1970
	f.vals = f.normalize(f.vals)
	return f
}

// NewDate parses pattern and returns a date field.
func NewDate(pattern string) (*Field, error) {
	l, err := ParseDatePattern(pattern)
	if err != nil {
		return nil, err
	}
	return New(l), nil
}

// NewTime returns an "HH:MM" field at 00:00.
func NewTime() *Field { return New(TimeLayout()) }

func (f *Field) Layout() *Layout { return f.layout }

// Len is the constant rendered length in runes.
func (f *Field) Len() int { return f.layout.Len() }

// OnChange registers fn to run after every value change. fn gets no payload;
// it reads the value back with Date or Time.
func (f *Field) OnChange(fn func()) {
	if fn != nil {
		f.observers = append(f.observers, fn)
	}
}

func (f *Field) notify() {
	for _, fn := range f.observers {
		fn()
	}
}

// Text is the canonical rendering.
func (f *Field) Text() string { return string(f.render(f.vals)) }

func (f *Field) Date() (day, month, year int) {
	return f.vals[Day], f.vals[Month], f.vals[Year]
}

func (f *Field) Time() (hours, minutes int) {
	return f.vals[Hour], f.vals[Minute]
}

// Get returns the value of a single segment kind.
func (f *Field) Get(k Kind) int {
	if k < 0 || k >= numKinds {
		return 0
	}
	return f.vals[k]
}

// SetDate sets the date, clamping month to 1-12 and day to the length of that
// month. It always notifies.
func (f *Field) SetDate(day, month, year int) {
	next := f.vals
	next[Day], next[Month], next[Year] = day, month, year
	f.vals = f.normalize(next)
	f.notify()
}

// SetTime sets the time, clamping to 00:00-23:59. It always notifies.
func (f *Field) SetTime(hours, minutes int) {
	next := f.vals
	next[Hour], next[Minute] = hours, minutes
	f.vals = f.normalize(next)
	f.notify()
}

// SetFromTime copies the segments the layout holds from t.
func (f *Field) SetFromTime(t time.Time) {
	next := f.vals
	if f.layout.hasKind(Day) {
		next[Day], next[Month], next[Year] = t.Day(), int(t.Month()), t.Year()
	}
	if f.layout.hasKind(Hour) {
		next[Hour], next[Minute] = t.Hour(), t.Minute()
	}
	f.vals = f.normalize(next)
	f.notify()
}

// Format renders t in the field's layout. It neither edits the field nor
// applies its year bounds, so a %y layout shows 2100 as "00".
func (f *Field) Format(t time.Time) string {
	var v values
	v[Day], v[Month], v[Year] = t.Day(), int(t.Month()), t.Year()
	v[Hour], v[Minute] = t.Hour(), t.Minute()
	return string(f.render(v))
}

type digitWrite struct {
	pos   int
	digit rune
}

// Insert applies typed or pasted text at caret.
//
// Digits overwrite the rendering in place, hopping over separators. A typed
// separator rune skips one position without writing; any other non-digit ends
// the scan. Text starting on a separator, or yielding no digit writes, leaves
// the field untouched and returns the caret unchanged.
//
// The caret normally advances by the positions consumed. A lone leading digit
// too large for the tens place ("9" in hours) is the exception: it becomes
// the units digit ("09") and the caret skips past the whole segment instead
// of stopping on its second cell.
//
// A typed separator skips exactly one cell even mid-segment, so "1/" at the
// tens of day 05 yields 15 and leaves the caret on the month.
func (f *Field) Insert(caret int, text string) Result {
	cur := f.render(f.vals)
	noop := Result{Text: string(cur), Caret: caret}
	if _, ok := f.layout.SegmentAt(caret); !ok {
		return noop
	}

	var writes []digitWrite
	pos := caret
	for _, r := range text {
		if pos >= len(cur) {
			break
		}
		if f.layout.isSeparatorRune(r) {
			pos++
			continue
		}
		if r < '0' || r > '9' {
			break
		}
		for f.layout.isSeparatorAt(pos) {
			pos++
		}
		if pos >= len(cur) {
			break
		}
		writes = append(writes, digitWrite{pos: pos, digit: r})
		pos++
	}
	if len(writes) == 0 {
		return noop
	}

	next := f.vals
	for _, s := range f.layout.segments {
		digits := make([]rune, s.Width)
		copy(digits, cur[s.Offset:s.End()])
		written := make([]bool, s.Width)
		touched := false
		for _, w := range writes {
			if s.contains(w.pos) {
				digits[w.pos-s.Offset] = w.digit
				written[w.pos-s.Offset] = true
				touched = true
			}
		}
		if !touched {
			continue
		}
		v, complete := resolveSegment(s, digits, written)
		next[s.Kind] = f.fromDisplay(s, v)
		if complete && s.End() > pos {
			pos = s.End()
		}
	}

	next = f.normalize(next)
	changed := next != f.vals
	f.vals = next

	for f.layout.isSeparatorAt(pos) {
		pos++
	}
	if pos > len(cur) {
		pos = len(cur)
	}
	if changed {
		f.notify()
	}
	return Result{Text: f.Text(), Caret: pos, Changed: changed}
}

// resolveSegment turns the overwritten digits of one segment into a value
// inside [s.Min, s.Max]. complete reports that a lone leading digit was too
// large for the tens place and now fills the whole segment.
func resolveSegment(s Segment, digits []rune, written []bool) (v int, complete bool) {
	if s.Width == 2 && written[0] && !written[1] {
		tens := int(digits[0] - '0')
		if tens > s.Max/10 {
			return clamp(tens, s.Min, s.Max), true
		}
	}
	return clamp(parseDigits(digits), s.Min, s.Max), false
}

// Step moves the segment under caret one unit in dir, wrapping at its bounds.
// The other segments are untouched (the day is still clamped to its month)
// and the caret moves to the start of the stepped segment.
func (f *Field) Step(caret int, dir Direction) Result {
	s, ok := f.layout.SegmentAt(caret)
	if !ok || dir == 0 {
		return Result{Text: f.Text(), Caret: caret}
	}
	delta := 1
	if dir < 0 {
		delta = -1
	}

	next := f.vals
	switch s.Kind {
	case Day:
		next[Day] = wrap(next[Day]+delta, 1, daysInMonth(next[Year], time.Month(next[Month])))
	case Year:
		lo, hi := f.yearBounds()
		next[Year] = wrap(next[Year]+delta, lo, hi)
	default:
		next[s.Kind] = wrap(next[s.Kind]+delta, s.Min, s.Max)
	}
	next = f.normalize(next)

	changed := next != f.vals
	f.vals = next
	if changed {
		f.notify()
	}
	return Result{Text: f.Text(), Caret: s.Offset, Changed: changed}
}

// Delete refuses user-initiated deletion: the rendering stays complete and the
// value is untouched. The caret moves to start.
func (f *Field) Delete(start, _ int) Result {
	return Result{Text: f.Text(), Caret: clamp(start, 0, f.Len())}
}

// NextCaret moves one position right, never stopping on a separator.
func (f *Field) NextCaret(caret int) int {
	p := clamp(caret+1, 0, f.Len())
	for f.layout.isSeparatorAt(p) {
		p++
	}
	return p
}

// PrevCaret moves one position left, never stopping on a separator.
func (f *Field) PrevCaret(caret int) int {
	p := clamp(caret-1, 0, f.Len())
	for p > 0 && f.layout.isSeparatorAt(p) {
		p--
	}
	if f.layout.isSeparatorAt(p) {
		return f.HomeCaret()
	}
	return p
}

// HomeCaret is the first digit position.
func (f *Field) HomeCaret() int {
	if len(f.layout.segments) == 0 {
		return 0
	}
	return f.layout.segments[0].Offset
}

func (f *Field) normalize(v values) values {
	lo, hi := f.yearBounds()
	v[Year] = clamp(v[Year], lo, hi)
	v[Month] = clamp(v[Month], 1, 12)
	v[Day] = clamp(v[Day], 1, daysInMonth(v[Year], time.Month(v[Month])))
	v[Hour] = clamp(v[Hour], 0, 23)
	v[Minute] = clamp(v[Minute], 0, 59)
	return v
}

func (f *Field) yearBounds() (lo, hi int) {
	if s, ok := f.layout.Segment(Year); ok && s.Width == 2 {
		return expandYear(69), expandYear(68)
	}
	return 1, 9999
}

func (f *Field) toDisplay(s Segment, v values) int {
	if s.Kind == Year && s.Width == 2 {
		return v[Year] % 100
	}
	return v[s.Kind]
}

func (f *Field) fromDisplay(s Segment, v int) int {
	if s.Kind == Year && s.Width == 2 {
		return expandYear(v)
	}
	return v
}

func (f *Field) render(v values) []rune {
	out := make([]rune, len(f.layout.template))
	copy(out, f.layout.template)
	for _, s := range f.layout.segments {
		n := f.toDisplay(s, v)
		for i := s.End() - 1; i >= s.Offset; i-- {
			out[i] = rune('0' + n%10)
			n /= 10
		}
	}
	return out
}

func parseDigits(ds []rune) int {
	n := 0
	for _, d := range ds {
		n = n*10 + int(d-'0')
	}
	return n
}
