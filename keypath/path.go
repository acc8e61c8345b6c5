package keypath

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrEmptyPath   = errors.New("empty key path")
	ErrInvalidPath = errors.New("invalid key path")
)

// Path is a parsed dotted key path. The zero Path is empty.
type Path struct {
	segments []string
}

// Parse parses a dotted key path such as "address.city".
func Parse(s string) (Path, error) {
	if s == "" {
		return Path{}, ErrEmptyPath
	}

	var segments []string

	for part := range strings.SplitSeq(s, ".") {
		if part == "" {
			return Path{}, fmt.Errorf("%w %q: empty segment", ErrInvalidPath, s)
		}

		if !isIdentifier(part) {
			return Path{}, fmt.Errorf("%w %q: invalid identifier %q", ErrInvalidPath, s, part)
		}

		segments = append(segments, part)
	}

	return Path{segments: segments}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return p
}

// String joins the segments with dots.
func (p Path) String() string {
	return strings.Join(p.segments, ".")
}

// IsEmpty reports whether p has no segments.
func (p Path) IsEmpty() bool {
	return len(p.segments) == 0
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// Head returns the first segment, or "" for an empty path.
func (p Path) Head() string {
	if p.IsEmpty() {
		return ""
	}

	return p.segments[0]
}

// Rest returns the path without its first segment.
func (p Path) Rest() Path {
	if len(p.segments) < 2 {
		return Path{}
	}

	return Path{segments: p.segments[1:]}
}

// Segments returns a copy of the path segments.
func (p Path) Segments() []string {
	return append([]string(nil), p.segments...)
}

func (p Path) from(i int) Path {
	return Path{segments: p.segments[i:]}
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return s != ""
}
