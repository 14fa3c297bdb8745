// Package locale resolves the date pattern a date field is laid out with.
//
// The patterns mirror glibc's D_FMT for each locale. Environment locale names
// (de_DE.UTF-8@euro) are normalized to BCP 47 and matched with x/text, so
// regional variants without an entry fall back to their language.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultPattern is the C/POSIX locale's date format.
const DefaultPattern = "%m/%d/%y"

const (
	SourceOverride = "override"
	SourceConfig   = "config"
	SourceEnv      = "env"
	SourceDefault  = "default"
)

type Resolution struct {
	Pattern string `json:"pattern"`
	Source  string `json:"source"`
	// Locale is the matched BCP 47 tag ("" for override/default).
	Locale string `json:"locale,omitempty"`
	// EnvVar names the variable the locale came from.
	EnvVar string `json:"envVar,omitempty"`
}

type entry struct {
	tag     language.Tag
	pattern string
}

var table = []entry{
	{language.Und, DefaultPattern},
	{language.MustParse("en-US"), "%m/%d/%Y"},
	{language.MustParse("en-GB"), "%d/%m/%y"},
	{language.MustParse("en-AU"), "%d/%m/%y"},
	{language.MustParse("en-CA"), "%Y-%m-%d"},
	{language.MustParse("de"), "%d.%m.%Y"},
	{language.MustParse("fr"), "%d/%m/%Y"},
	{language.MustParse("es"), "%d/%m/%y"},
	{language.MustParse("it"), "%d/%m/%Y"},
	{language.MustParse("nl"), "%d-%m-%y"},
	{language.MustParse("pt"), "%d-%m-%Y"},
	{language.MustParse("pt-BR"), "%d/%m/%Y"},
	{language.MustParse("ru"), "%d.%m.%Y"},
	{language.MustParse("pl"), "%d.%m.%Y"},
	{language.MustParse("fi"), "%d.%m.%Y"},
	{language.MustParse("sv"), "%Y-%m-%d"},
	{language.MustParse("hu"), "%Y. %m. %d."},
	{language.MustParse("ja"), "%Y年%m月%d日"},
	{language.MustParse("zh"), "%Y年%m月%d日"},
	{language.MustParse("ko"), "%Y년 %m월 %d일"},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(table))
	for i, e := range table {
		tags[i] = e.tag
	}
	return language.NewMatcher(tags)
}()

// envChain is the POSIX lookup order for LC_TIME.
var envChain = []string{"LC_ALL", "LC_TIME", "LANG"}

// Resolve picks the date pattern: a non-empty override wins, then the first
// set locale variable, then DefaultPattern.
func Resolve(override string, getenv func(string) string) Resolution {
	if p := strings.TrimSpace(override); p != "" {
		return Resolution{Pattern: p, Source: SourceOverride}
	}
	for _, k := range envChain {
		v := strings.TrimSpace(getenv(k))
		if v == "" {
			continue
		}
		pattern, tag, ok := PatternFor(v)
		if !ok {
			return Resolution{Pattern: DefaultPattern, Source: SourceDefault, EnvVar: k}
		}
		return Resolution{Pattern: pattern, Source: SourceEnv, Locale: tag, EnvVar: k}
	}
	return Resolution{Pattern: DefaultPattern, Source: SourceDefault}
}

// PatternFor returns the date pattern for a POSIX or BCP 47 locale name.
func PatternFor(name string) (pattern string, tag string, ok bool) {
	bcp := ToBCP47(name)
	if bcp == "" {
		return "", "", false
	}
	t, err := language.Parse(bcp)
	if err != nil {
		return "", "", false
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No || idx == 0 {
		return "", "", false
	}
	return table[idx].pattern, table[idx].tag.String(), true
}

// ToBCP47 converts "de_DE.UTF-8@euro" to "de-DE". C and POSIX map to "".
func ToBCP47(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	switch name {
	case "", "C", "POSIX":
		return ""
	}
	return strings.ReplaceAll(name, "_", "-")
}
