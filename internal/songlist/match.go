package songlist

import (
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/tejashwikalptaru/tunelist/internal/domain"
)

// MatchMode modifies how a pattern is compared with field values.
type MatchMode uint8

const (
	// MatchExact requires case-insensitive equality of the whole value.
	MatchExact MatchMode = 1 << iota

	// MatchNot succeeds on the first field that does not match.
	MatchNot

	// MatchReverse makes range searches walk backwards.
	MatchReverse
)

// MatchFuzzy is the default mode: ordered substring search, or a regular
// expression search when Options.RegexSearch is set.
const MatchFuzzy MatchMode = 0

type regexpResult struct {
	re *regexp.Regexp // nil for patterns that failed to compile
}

// Match tests t against pattern on every field in fields, in field priority
// order.
//
// Without MatchNot the first matching field wins. With MatchNot, matching
// fields are skipped and the first non-matching field wins.
func (s *Songlist) Match(t *domain.Track, pattern string, fields domain.FieldMask, mode MatchMode) bool {
	if t == nil {
		return false
	}
	for _, f := range fields.Fields() {
		hit := s.matchValue(f.Format(t), pattern, mode&MatchExact != 0)
		if mode&MatchNot != 0 {
			if hit {
				continue
			}
			return true
		}
		if hit {
			return true
		}
	}
	return false
}

// MatchRange searches the filtered view for a record matching pattern,
// starting at from and ending at to, both inclusive. The walk wraps around the
// ends of the view; indices are taken modulo the view size, so -1 names the
// last record. MatchReverse walks downwards from from to to.
func (s *Songlist) MatchRange(pattern string, from, to int, fields domain.FieldMask, mode MatchMode) (int, bool) {
	return s.scan(from, to, mode&MatchReverse != 0, func(e *entry) bool {
		return s.Match(e.track, pattern, fields, mode)
	})
}

// Find searches from the record after the cursor, wrapping around, and
// returns the first match. MatchReverse searches from the record before it.
func (s *Songlist) Find(pattern string, fields domain.FieldMask, mode MatchMode) (int, bool) {
	c := s.Cursor()
	if mode&MatchReverse != 0 {
		return s.MatchRange(pattern, c-1, c, fields, mode)
	}
	return s.MatchRange(pattern, c+1, c, fields, mode)
}

// scan walks the filtered view from..to with wrap-around and returns the
// first index whose record satisfies pred.
func (s *Songlist) scan(from, to int, reverse bool, pred func(e *entry) bool) (int, bool) {
	n := len(s.view)
	if n == 0 {
		return -1, false
	}
	from, to = wrapIndex(from, n), wrapIndex(to, n)
	step := 1
	if reverse {
		step = -1
	}
	i := from
	for range n {
		if e := s.at(i); e != nil && pred(e) {
			return i, true
		}
		if i == to {
			break
		}
		i = wrapIndex(i+step, n)
	}
	return -1, false
}

func wrapIndex(i, n int) int {
	return ((i % n) + n) % n
}

func (s *Songlist) matchValue(haystack, needle string, exact bool) bool {
	switch {
	case exact:
		return strings.EqualFold(haystack, needle)
	case s.opts.RegexSearch:
		re := s.compile(needle)
		return re != nil && re.MatchString(haystack)
	default:
		return fuzzyMatch(haystack, needle)
	}
}

// compile returns the case-insensitive expression for pattern, or nil when the
// pattern is malformed. The cache holds the patterns of the active filters
// and the most recent other pattern.
func (s *Songlist) compile(pattern string) *regexp.Regexp {
	if r, ok := s.regexps[pattern]; ok {
		return r.re
	}
	s.pruneRegexps()

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		s.logger.Debug("pattern is not a valid regular expression",
			slog.String("pattern", pattern),
			slog.Any("error", err))
		re = nil
	}
	s.regexps[pattern] = regexpResult{re: re}
	return re
}

// pruneRegexps drops cached patterns no active filter uses.
func (s *Songlist) pruneRegexps() {
	for pattern := range s.regexps {
		if !slices.ContainsFunc(s.filters, func(f *Filter) bool { return f.Pattern == pattern }) {
			delete(s.regexps, pattern)
		}
	}
}

// fuzzyMatch reports whether needle occurs in haystack, ignoring case.
//
// The haystack is read once, left to right. A matching rune advances the
// needle; a mismatch restarts the needle without re-testing the mismatching
// rune against the needle's first rune. The search gives up as soon as fewer
// runes remain in the haystack than in the needle.
func fuzzyMatch(haystack, needle string) bool {
	n := []rune(needle)
	if len(n) == 0 {
		return true
	}
	h := []rune(haystack)
	j := 0
	for i, r := range h {
		if len(h)-i < len(n)-j {
			return false
		}
		if unicode.ToUpper(r) == unicode.ToUpper(n[j]) {
			j++
			if j == len(n) {
				return true
			}
			continue
		}
		j = 0
	}
	return false
}
