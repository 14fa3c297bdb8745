package segfield

import (
	"errors"
	"fmt"
)

// Kind identifies what a segment holds.
type Kind int

const (
	Day Kind = iota
	Month
	Year
	Hour
	Minute

	numKinds
)

func (k Kind) String() string {
	switch k {
	case Day:
		return "day"
	case Month:
		return "month"
	case Year:
		return "year"
	case Hour:
		return "hour"
	case Minute:
		return "minute"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Segment is one fixed-width numeric sub-field of a rendering.
// Offset and Width are in runes.
type Segment struct {
	Kind   Kind
	Offset int
	Width  int
	Min    int
	Max    int
}

func (s Segment) End() int { return s.Offset + s.Width }

func (s Segment) contains(pos int) bool {
	return pos >= s.Offset && pos < s.End()
}

var (
	ErrMissingSegment       = errors.New("missing segment")
	ErrDuplicateSegment     = errors.New("duplicate segment")
	ErrUnsupportedDirective = errors.New("unsupported directive")
)

// Layout is the fixed shape of a rendering: literal separator runes plus the
// segment slots between them. It never changes once built.
type Layout struct {
	pattern  string
	template []rune
	slot     []int // rune offset -> segment index, -1 for separators
	segments []Segment
	seps     map[rune]bool
}

// ParseDatePattern builds a date layout from a strftime-style pattern such as
// "%d/%m/%Y". Supported directives are %d, %m, %Y (4-digit year), %y (2-digit
// year) and %%. Every other rune is a literal separator.
func ParseDatePattern(pattern string) (*Layout, error) {
	l := &Layout{pattern: pattern}
	seen := map[Kind]bool{}

	rs := []rune(pattern)
	for i := 0; i < len(rs); i++ {
		if rs[i] != '%' {
			l.template = append(l.template, rs[i])
			continue
		}
		if i+1 >= len(rs) {
			return nil, fmt.Errorf("date pattern %q: trailing %%: %w", pattern, ErrUnsupportedDirective)
		}
		i++

		var seg Segment
		switch rs[i] {
		case '%':
			l.template = append(l.template, '%')
			continue
		case 'd':
			seg = Segment{Kind: Day, Width: 2, Min: 1, Max: 31}
		case 'm':
			seg = Segment{Kind: Month, Width: 2, Min: 1, Max: 12}
		case 'Y':
			seg = Segment{Kind: Year, Width: 4, Min: 1, Max: 9999}
		case 'y':
			seg = Segment{Kind: Year, Width: 2, Min: 0, Max: 99}
		default:
			return nil, fmt.Errorf("date pattern %q: %%%c: %w", pattern, rs[i], ErrUnsupportedDirective)
		}
		if seen[seg.Kind] {
			return nil, fmt.Errorf("date pattern %q: %s: %w", pattern, seg.Kind, ErrDuplicateSegment)
		}
		seen[seg.Kind] = true
		l.addSegment(seg)
	}

	for _, k := range []Kind{Day, Month, Year} {
		if !seen[k] {
			return nil, fmt.Errorf("date pattern %q: %s: %w", pattern, k, ErrMissingSegment)
		}
	}
	l.index()
	return l, nil
}

// TimeLayout returns the 24h "HH:MM" layout.
func TimeLayout() *Layout {
	l := &Layout{pattern: "%H:%M"}
	l.addSegment(Segment{Kind: Hour, Width: 2, Min: 0, Max: 23})
	l.template = append(l.template, ':')
	l.addSegment(Segment{Kind: Minute, Width: 2, Min: 0, Max: 59})
	l.index()
	return l
}

func (l *Layout) addSegment(seg Segment) {
	seg.Offset = len(l.template)
	for j := 0; j < seg.Width; j++ {
		l.template = append(l.template, '0')
	}
	l.segments = append(l.segments, seg)
}

func (l *Layout) index() {
	l.slot = make([]int, len(l.template))
	for i := range l.slot {
		l.slot[i] = -1
	}
	for si, s := range l.segments {
		for p := s.Offset; p < s.End(); p++ {
			l.slot[p] = si
		}
	}
	l.seps = map[rune]bool{}
	for i, r := range l.template {
		if l.slot[i] < 0 {
			l.seps[r] = true
		}
	}
}

// Pattern returns the pattern the layout was built from.
func (l *Layout) Pattern() string { return l.pattern }

// Len is the rendered length in runes.
func (l *Layout) Len() int { return len(l.template) }

// Segments returns the segments in rendering order.
func (l *Layout) Segments() []Segment {
	out := make([]Segment, len(l.segments))
	copy(out, l.segments)
	return out
}

// Segment returns the segment holding k.
func (l *Layout) Segment(k Kind) (Segment, bool) {
	for _, s := range l.segments {
		if s.Kind == k {
			return s, true
		}
	}
	return Segment{}, false
}

// SegmentAt returns the segment whose digits cover pos.
func (l *Layout) SegmentAt(pos int) (Segment, bool) {
	if pos < 0 || pos >= len(l.slot) || l.slot[pos] < 0 {
		return Segment{}, false
	}
	return l.segments[l.slot[pos]], true
}

func (l *Layout) isSeparatorAt(pos int) bool {
	return pos >= 0 && pos < len(l.slot) && l.slot[pos] < 0
}

func (l *Layout) isSeparatorRune(r rune) bool { return l.seps[r] }

func (l *Layout) hasKind(k Kind) bool {
	_, ok := l.Segment(k)
	return ok
}
