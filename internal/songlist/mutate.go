package songlist

import (
	"log/slog"
	"slices"

	"github.com/tejashwikalptaru/tunelist/internal/domain"
)

// Add takes ownership of t and returns the position it was stored at.
//
// A track without a position, or with a position at or past the end of the
// master sequence, is appended; it joins the filtered view only if it passes
// the active filters. Any other position is an insert: every filter is
// cleared, a record already holding that position is replaced, and the track
// is placed at that index in both views.
func (s *Songlist) Add(t *domain.Track) (int, error) {
	if t == nil {
		return -1, domain.ErrNilTrack
	}
	if _, owned := s.owners[t]; owned {
		c := *t
		c.Pos = domain.NoPosition
		t = &c
	}

	e := s.newEntry(t)

	if !t.Pos.Valid || t.Pos.Index < 0 || t.Pos.Index >= len(s.master) {
		s.master = append(s.master, e)
		if s.FilterMatch(t) {
			s.view = append(s.view, e.h)
		}
		t.Pos = domain.At(len(s.master) - 1)
	} else {
		s.insert(e, t.Pos.Index)
	}

	if t.Duration.Known {
		s.duration += t.Duration.Seconds
	}
	s.touch()
	s.changed("add")
	return t.Pos.Index, nil
}

func (s *Songlist) insert(e *entry, pos int) {
	s.FilterClear()

	if old := s.master[pos]; old.track.Pos == domain.At(pos) {
		s.removeEntry(old)
	}
	pos = min(pos, len(s.master))

	s.master = slices.Insert(s.master, pos, e)
	s.view = slices.Insert(s.view, pos, e.h)

	if !s.role.KeepsServerPositions() {
		s.renumber(pos)
	}
}

// AddList appends copies of the filtered view of other. Copies lose their
// server id and position. Returns the position of the first copy.
func (s *Songlist) AddList(other *Songlist) (int, bool) {
	if other == nil {
		return -1, false
	}
	first, ok := -1, false
	for _, t := range other.Tracks() {
		c := t.Clone()
		pos, err := s.Add(&c)
		if err == nil && !ok {
			first, ok = pos, true
		}
	}
	return first, ok
}

// Set replaces the contents of the list with copies of the filtered view of
// other.
func (s *Songlist) Set(other *Songlist) {
	if other == nil {
		return
	}
	tracks := other.Tracks()
	s.Clear()
	for _, t := range tracks {
		c := t.Clone()
		_, _ = s.Add(&c)
	}
	s.changed("set")
}

// Remove deletes t from the list. Reports false if t does not belong to it.
func (s *Songlist) Remove(t *domain.Track) bool {
	e, ok := s.owners[t]
	if !ok {
		return false
	}
	s.removeEntry(e)
	s.changed("remove")
	return true
}

// RemoveAt deletes the record at index i of the filtered view. Reports false
// and changes nothing when i is out of range.
func (s *Songlist) RemoveAt(i int) bool {
	e := s.at(i)
	if e == nil {
		return false
	}
	s.removeEntry(e)
	s.changed("remove")
	return true
}

// removeEntry destroys a master record. Later records move up one position
// unless their positions belong to the server.
func (s *Songlist) removeEntry(e *entry) {
	idx := s.masterIndex(e)
	if idx < 0 {
		return
	}

	s.selectEntry(e, false)
	if e.track.Duration.Known {
		s.duration -= e.track.Duration.Seconds
	}

	s.master = slices.Delete(s.master, idx, idx+1)
	if !s.role.KeepsServerPositions() {
		for _, later := range s.master[idx:] {
			if later.track.Pos.Valid {
				later.track.Pos.Index--
			}
		}
	}

	if vi := s.viewIndex(e.h); vi >= 0 {
		s.view = slices.Delete(s.view, vi, vi+1)
	}
	delete(s.entries, e.h)
	delete(s.owners, e.track)
	s.touch()
}

// Swap exchanges the records at indices a and b along with their positions.
// Without filters both views change; with filters only the filtered view does.
func (s *Songlist) Swap(a, b int) bool {
	if !s.swap(a, b) {
		return false
	}
	s.touch()
	s.changed("swap")
	return true
}

func (s *Songlist) swap(a, b int) bool {
	if len(s.filters) == 0 {
		if a < 0 || a >= len(s.master) || b < 0 || b >= len(s.master) {
			return false
		}
		s.master[a], s.master[b] = s.master[b], s.master[a]
		if len(s.view) == len(s.master) {
			s.view[a], s.view[b] = s.view[b], s.view[a]
		}
		ta, tb := s.master[a].track, s.master[b].track
		ta.Pos, tb.Pos = tb.Pos, ta.Pos
		return true
	}

	ea, eb := s.at(a), s.at(b)
	if ea == nil || eb == nil {
		return false
	}
	s.view[a], s.view[b] = s.view[b], s.view[a]
	ea.track.Pos, eb.track.Pos = eb.track.Pos, ea.track.Pos
	return true
}

// Move walks the record at from to index to by adjacent swaps. It is refused
// while filters are active, and always drops the cached queue length.
func (s *Songlist) Move(from, to int) bool {
	if len(s.filters) > 0 {
		s.logger.Debug("move refused while filtered", slog.Int("filters", len(s.filters)))
		return false
	}
	if from < 0 || from >= len(s.master) || to < 0 || to >= len(s.master) || from == to {
		return false
	}

	step := 1
	if to < from {
		step = -1
	}
	for i := from; i != to; i += step {
		if !s.swap(i, i+step) {
			return false
		}
	}

	s.queue.invalidate()
	s.touch()
	s.changed("move")
	return true
}

// Truncate removes records from the end until at most size remain. A size of
// zero clears the list.
func (s *Songlist) Truncate(size int) {
	if size <= 0 {
		s.Clear()
		return
	}
	if len(s.master) <= size {
		return
	}
	for len(s.master) > size {
		s.removeEntry(s.master[len(s.master)-1])
	}
	s.changed("truncate")
}

// Clear destroys every record. Filters stay active.
func (s *Songlist) Clear() {
	s.master = nil
	s.view = nil
	s.entries = make(map[handle]*entry)
	s.owners = make(map[*domain.Track]*entry)

	s.cursor = 0
	s.duration = 0
	s.selection = Selection{}
	s.queue.invalidate()
	s.touch()
	s.ResetTraversal()
	clear(s.regexps)

	s.publish(domain.NewListClearedEvent(s.id))
}

func (s *Songlist) newEntry(t *domain.Track) *entry {
	s.nextHandle++
	s.nextSeq++
	e := &entry{h: s.nextHandle, seq: s.nextSeq, track: t}
	s.entries[e.h] = e
	s.owners[t] = e
	return e
}
