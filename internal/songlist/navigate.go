package songlist

import (
	"log/slog"
	"strings"

	"github.com/tejashwikalptaru/tunelist/internal/domain"
	"github.com/tejashwikalptaru/tunelist/internal/ports"
)

// Next returns the record after the playing one and its filtered view index.
//
// With nothing playing it returns the first record. A playing track that is
// not in the filtered view counts as sitting before the first record. Past
// the last record Next wraps to the first only when the player repeats.
func (s *Songlist) Next() (*domain.Track, int, bool) {
	if len(s.view) == 0 {
		return nil, -1, false
	}
	cur := s.playing()
	if cur == nil {
		return s.trackAt(0)
	}

	i, ok := s.locatePlaying(cur)
	if !ok {
		i = -1
	}
	i++
	if i >= len(s.view) {
		if !s.repeat() {
			return nil, -1, false
		}
		i = 0
	}
	return s.trackAt(i)
}

// Prev returns the record before the playing one. It mirrors Next: with
// nothing playing it returns the last record, a playing track outside the
// filtered view counts as sitting after the last record, and it wraps to the
// last record only when the player repeats.
//
// Like Next, it looks the playing track up by position only in lists whose
// role LocatesByPosition; other lists compare file paths.
func (s *Songlist) Prev() (*domain.Track, int, bool) {
	if len(s.view) == 0 {
		return nil, -1, false
	}
	cur := s.playing()
	if cur == nil {
		return s.trackAt(len(s.view) - 1)
	}

	i, ok := s.locatePlaying(cur)
	if !ok {
		i = len(s.view)
	}
	i--
	if i < 0 {
		if !s.repeat() {
			return nil, -1, false
		}
		i = len(s.view) - 1
	}
	return s.trackAt(i)
}

// Random picks a record of the filtered view.
//
// Draws are summed until the summed source range covers the view, and the sum
// is reduced modulo the view size. If the pick is the playing record the one
// before it is returned instead, wrapping to the last record.
func (s *Songlist) Random() (*domain.Track, int, bool) {
	n := len(s.view)
	if n == 0 || s.random == nil {
		return nil, -1, false
	}
	i, ok := RandomIndex(s.random, n)
	if !ok {
		s.logger.Warn("random source has an empty range")
		return nil, -1, false
	}

	if cur := s.playing(); cur != nil {
		if p, ok := s.locatePlaying(cur); ok && p == i {
			i--
			if i < 0 {
				i = n - 1
			}
		}
	}
	return s.trackAt(i)
}

// RandomIndex draws an index in [0, n) from src, summing draws until their
// combined range covers n. It fails for n <= 0 and for a source whose range
// is empty.
func RandomIndex(src ports.RandomSource, n int) (int, bool) {
	span := src.Max()
	if n <= 0 || span == 0 {
		return -1, false
	}

	var sum, covered uint64
	for covered < uint64(n) {
		sum += src.Next()
		covered += span
	}
	return int(sum % uint64(n)), true
}

// NextOf returns the index of the first record after the cursor whose value
// of the named field differs from the cursor record's, wrapping around.
func (s *Songlist) NextOf(field string) (int, bool) {
	return s.findTransition(field, false)
}

// PrevOf returns the index of the first record of the group before the
// cursor's group, where a group is a run of records sharing the value of the
// named field.
func (s *Songlist) PrevOf(field string) (int, bool) {
	return s.findTransition(field, true)
}

func (s *Songlist) findTransition(name string, reverse bool) (int, bool) {
	f, ok := domain.LookupField(name)
	if !ok {
		s.logger.Debug("unknown field for transition", slog.String("field", name))
		return -1, false
	}
	cur := s.cursorEntry()
	if cur == nil {
		return -1, false
	}
	c := s.Cursor()

	differs := func(value string) func(e *entry) bool {
		return func(e *entry) bool {
			return !strings.EqualFold(f.Format(e.track), value)
		}
	}

	var i int
	if reverse {
		i, ok = s.scan(c-1, c, true, differs(f.Format(cur.track)))
	} else {
		i, ok = s.scan(c, c-1, false, differs(f.Format(cur.track)))
	}
	if !ok || !reverse {
		return i, ok
	}

	// Walk back to the first record of the group just found.
	group := f.Format(s.at(i).track)
	j, ok := s.scan(i-1, i, true, differs(group))
	if !ok {
		return i, true
	}
	return wrapIndex(j+1, len(s.view)), true
}

// locatePlaying finds the playing track in the filtered view. Lists whose
// positions come from the server look it up by position first; every list
// falls back to the file path.
func (s *Songlist) locatePlaying(cur *domain.Track) (int, bool) {
	if s.role.LocatesByPosition() && cur.Pos.Valid {
		if i, ok := s.MatchRange(cur.Pos.String(), 0, -1, domain.FieldPos.Bit(), MatchExact); ok {
			return i, true
		}
	}
	return s.MatchRange(cur.File, 0, -1, domain.FieldFile.Bit(), MatchExact)
}

func (s *Songlist) trackAt(i int) (*domain.Track, int, bool) {
	e := s.at(i)
	if e == nil {
		return nil, -1, false
	}
	return e.track, i, true
}

// Cursor returns the cursor index, clamped to the filtered view. It is 0 for
// an empty view.
func (s *Songlist) Cursor() int {
	switch {
	case len(s.view) == 0 || s.cursor < 0:
		s.cursor = 0
	case s.cursor >= len(s.view):
		s.cursor = len(s.view) - 1
	}
	return s.cursor
}

// SetCursor moves the cursor to i, clamped to the filtered view, and returns
// the resulting index.
func (s *Songlist) SetCursor(i int) int {
	s.cursor = i
	return s.Cursor()
}

// MoveCursor moves the cursor by offset. With Options.Wrap the cursor wraps
// around the ends; otherwise it stops at them.
func (s *Songlist) MoveCursor(offset int) int {
	if s.opts.Wrap && len(s.view) > 0 {
		s.cursor = wrapIndex(s.Cursor()+offset, len(s.view))
		return s.cursor
	}
	return s.SetCursor(s.Cursor() + offset)
}

// GotoCurrent moves the cursor to the playing record. Reports false when
// nothing is playing or the playing track is not in the filtered view.
func (s *Songlist) GotoCurrent() bool {
	cur := s.playing()
	if cur == nil {
		return false
	}
	i, ok := s.locatePlaying(cur)
	if !ok {
		return false
	}
	s.SetCursor(i)
	return true
}

// CursorTrack returns the record under the cursor, or nil for an empty view.
func (s *Songlist) CursorTrack() *domain.Track {
	if e := s.cursorEntry(); e != nil {
		return e.track
	}
	return nil
}

func (s *Songlist) cursorEntry() *entry {
	if len(s.view) == 0 {
		return nil
	}
	return s.at(s.Cursor())
}
