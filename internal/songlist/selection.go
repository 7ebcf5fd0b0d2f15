package songlist

import (
	"github.com/tejashwikalptaru/tunelist/internal/domain"
)

// traversal is the state of NextSelected and PrevSelected. Both directions
// share last, the record returned most recently. The walk positions belong to
// one generation of the filtered view and restart when the view changes; last
// is only cleared by ResetTraversal or by the end of a walk.
type traversal struct {
	generation uint64
	forward    int
	backward   int
	last       *entry
}

// Select sets the selection state of t and keeps the aggregate in step.
// Reports false if t does not belong to this list.
func (s *Songlist) Select(t *domain.Track, state bool) bool {
	e, ok := s.owners[t]
	if !ok {
		return false
	}
	s.selectEntry(e, state)
	return true
}

// Selected reports whether t is selected.
func (s *Songlist) Selected(t *domain.Track) bool {
	e, ok := s.owners[t]
	return ok && e.selected
}

// Selection returns the number and summed known duration of selected records.
func (s *Songlist) Selection() Selection {
	return s.selection
}

// SelectAll sets the selection state of every record in the filtered view.
func (s *Songlist) SelectAll(state bool) {
	for _, e := range s.viewEntries() {
		s.selectEntry(e, state)
	}
	s.publish(domain.NewSelectionChangedEvent(s.id, s.selection.Count, s.selection.Seconds))
}

// InvertSelection flips the selection state of every record in the filtered view.
func (s *Songlist) InvertSelection() {
	for _, e := range s.viewEntries() {
		s.selectEntry(e, !e.selected)
	}
	s.publish(domain.NewSelectionChangedEvent(s.id, s.selection.Count, s.selection.Seconds))
}

func (s *Songlist) selectEntry(e *entry, state bool) {
	if e.selected == state {
		return
	}
	e.selected = state

	delta := 1
	if !state {
		delta = -1
	}
	s.selection.Count += delta
	if d := e.track.Duration; d.Known {
		s.selection.Seconds += delta * d.Seconds
	}
}

// NextSelected returns the next selected record of the filtered view, walking
// forward from the start.
//
// When the walk ends without having returned anything, the record under the
// cursor is returned once in its place. The call after that returns nil, and
// the call after that starts a new walk.
func (s *Songlist) NextSelected() *domain.Track {
	s.syncTraversal()
	if s.trav.last == nil {
		s.trav.forward = 0
	}

	for s.trav.forward < len(s.view) {
		e := s.at(s.trav.forward)
		s.trav.forward++
		if e != nil && e.selected {
			s.trav.last = e
			return e.track
		}
	}

	return s.endTraversal()
}

// PrevSelected is NextSelected walking backwards from the end.
func (s *Songlist) PrevSelected() *domain.Track {
	s.syncTraversal()
	if s.trav.last == nil {
		s.trav.backward = len(s.view) - 1
	}

	for s.trav.backward >= 0 {
		e := s.at(s.trav.backward)
		s.trav.backward--
		if e != nil && e.selected {
			s.trav.last = e
			return e.track
		}
	}

	return s.endTraversal()
}

// PopNextSelected returns the next selected record and deselects it.
func (s *Songlist) PopNextSelected() *domain.Track {
	t := s.NextSelected()
	if t != nil {
		s.Select(t, false)
	}
	return t
}

// ResetTraversal restarts NextSelected and PrevSelected at the ends of the
// current filtered view and forgets what they returned, so the next walk may
// fall back to the cursor record again.
func (s *Songlist) ResetTraversal() {
	s.trav = traversal{generation: s.generation}
	s.restartTraversal()
}

// restartTraversal moves both walks back to the ends of the view. The record
// returned last survives, so removing records while draining a walk still
// ends it.
func (s *Songlist) restartTraversal() {
	s.trav.generation = s.generation
	s.trav.forward = 0
	s.trav.backward = len(s.view) - 1
}

func (s *Songlist) syncTraversal() {
	if s.trav.generation != s.generation {
		s.restartTraversal()
	}
}

func (s *Songlist) endTraversal() *domain.Track {
	if s.trav.last == nil {
		if e := s.cursorEntry(); e != nil {
			s.trav.last = e
			return e.track
		}
		return nil
	}
	s.trav.last = nil
	return nil
}
