// Package dateutil compiles human date patterns such as "DD/MM/YYYY" into
// Go time layouts and resolves the "auto" date values used in footers.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date pattern or auto value.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxPatternLength bounds pattern size.
const MaxPatternLength = 50

// DefaultPattern is used for a bare "auto".
const DefaultPattern = "YYYY-MM-DD"

const autoKeyword = "auto"

// tokens are tried in order, so longer tokens sharing a prefix come first.
var tokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"dddd", "Monday"},
	{"ddd", "Mon"},
	{"DD", "02"},
	{"D", "2"},
}

// Presets names common patterns.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"full":     "dddd, MMMM D, YYYY",
}

// Layout is a compiled date pattern.
type Layout struct {
	pattern string
	layout  string
}

// Compile turns a pattern into a Layout. Text inside square brackets is
// copied literally, so "[Week of] MMM D" keeps "Week of".
func Compile(pattern string) (Layout, error) {
	if pattern == "" {
		return Layout{}, fmt.Errorf("%w: pattern cannot be empty", ErrInvalidDateFormat)
	}
	if len(pattern) > MaxPatternLength {
		return Layout{}, fmt.Errorf("%w: pattern exceeds %d characters", ErrInvalidDateFormat, MaxPatternLength)
	}

	var b strings.Builder
	b.Grow(len(pattern) + 8)

	for rest := pattern; rest != ""; {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return Layout{}, fmt.Errorf("%w: unclosed bracket at position %d",
					ErrInvalidDateFormat, len(pattern)-len(rest))
			}
			b.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		if tok, layout, ok := matchToken(rest); ok {
			b.WriteString(layout)
			rest = rest[len(tok):]
			continue
		}
		b.WriteByte(rest[0])
		rest = rest[1:]
	}

	return Layout{pattern: pattern, layout: b.String()}, nil
}

func matchToken(s string) (token, layout string, ok bool) {
	for _, t := range tokens {
		if strings.HasPrefix(s, t.token) {
			return t.token, t.layout, true
		}
	}
	return "", "", false
}

// Format renders t with the compiled layout.
func (l Layout) Format(t time.Time) string {
	return t.Format(l.layout)
}

// GoLayout returns the equivalent Go reference layout.
func (l Layout) GoLayout() string { return l.layout }

// String returns the source pattern.
func (l Layout) String() string { return l.pattern }

// Lookup compiles a preset name (case-insensitive) or a raw pattern.
func Lookup(nameOrPattern string) (Layout, error) {
	if p, ok := Presets[strings.ToLower(nameOrPattern)]; ok {
		return Compile(p)
	}
	return Compile(nameOrPattern)
}

// Resolve expands auto values against now:
//
//	auto           now in DefaultPattern
//	auto:PATTERN   now in PATTERN, e.g. auto:DD/MM/YYYY
//	auto:PRESET    now in a named preset (iso, european, us, long, full)
//
// Anything not starting with "auto" is returned unchanged.
func Resolve(value string, now time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, autoKeyword) {
		return value, nil
	}

	spec := DefaultPattern
	switch rest := value[len(autoKeyword):]; {
	case rest == "":
	case rest[0] != ':':
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"",
			ErrInvalidDateFormat, value)
	case len(rest) == 1:
		return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
	default:
		spec = rest[1:]
	}

	layout, err := Lookup(spec)
	if err != nil {
		return "", err
	}
	return layout.Format(now), nil
}
