// Package songlist implements the list engine: a filterable, sortable
// collection of tracks with a cursor, selection bookkeeping and navigation
// relative to the track the player is on.
//
// A Songlist keeps two views of the same records. The master sequence owns
// every track in list order. The filtered view holds handles to the master
// records that pass every active filter; navigation, selection traversal and
// searches only ever look at the filtered view.
//
// A Songlist holds no lock. Callers drive it from a single goroutine and must
// not keep a *domain.Track obtained from it across a mutating call.
package songlist

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/tejashwikalptaru/tunelist/internal/domain"
	"github.com/tejashwikalptaru/tunelist/internal/ports"
)

// Options are the shared policy flags of every list. The owner keeps the
// struct and may flip flags at runtime; lists read them on every operation.
type Options struct {
	// IgnoreCase makes text sort keys compare case-insensitively.
	IgnoreCase bool

	// RegexSearch makes non-exact matches use regular expressions.
	RegexSearch bool

	// Wrap makes relative cursor movement wrap around the ends of the list.
	Wrap bool
}

// handle identifies a master record. Handles are never reused.
type handle uint64

type entry struct {
	h        handle
	seq      uint64 // insertion order, the final sort tie-break
	track    *domain.Track
	selected bool
}

// Selection is the aggregate over every selected record.
type Selection struct {
	Count   int
	Seconds int
}

// Songlist is a live list of tracks.
type Songlist struct {
	id     string
	role   domain.ListRole
	opts   *Options
	logger *slog.Logger

	// Collaborators (injected, all optional)
	player ports.PlayerStatus
	random ports.RandomSource
	bus    ports.EventBus

	master  []*entry
	view    []handle
	entries map[handle]*entry
	owners  map[*domain.Track]*entry

	nextHandle handle
	nextSeq    uint64

	// generation changes whenever the filtered view changes membership or order
	generation uint64

	filters []*Filter
	regexps map[string]regexpResult

	cursor    int
	duration  int // known seconds over the master sequence
	selection Selection
	trav      traversal
	queue     queueCache
}

// New creates an empty list.
//
// opts is shared with the caller; nil means all flags off. player, random and
// bus may be nil: without a player nothing is ever playing, without a random
// source Random finds nothing, and without a bus no events are published.
func New(
	role domain.ListRole,
	opts *Options,
	player ports.PlayerStatus,
	random ports.RandomSource,
	bus ports.EventBus,
	logger *slog.Logger,
) *Songlist {
	if opts == nil {
		opts = &Options{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Songlist{
		id:      uuid.NewString(),
		role:    role,
		opts:    opts,
		player:  player,
		random:  random,
		bus:     bus,
		entries: make(map[handle]*entry),
		owners:  make(map[*domain.Track]*entry),
		regexps: make(map[string]regexpResult),
	}
	s.logger = logger.With(slog.String("component", "songlist"), slog.String("list", s.id), slog.String("role", role.String()))
	s.ResetTraversal()
	return s
}

// ID returns the list's unique identifier. Events carry it.
func (s *Songlist) ID() string {
	return s.id
}

// Role returns the list role.
func (s *Songlist) Role() domain.ListRole {
	return s.role
}

// Options returns the shared option set.
func (s *Songlist) Options() *Options {
	return s.opts
}

// Len returns the size of the filtered view.
func (s *Songlist) Len() int {
	return len(s.view)
}

// MasterLen returns the size of the master sequence.
func (s *Songlist) MasterLen() int {
	return len(s.master)
}

// Duration returns the summed known duration, in seconds, of every record in
// the master sequence.
func (s *Songlist) Duration() int {
	return s.duration
}

// Track returns the record at index i of the filtered view, or nil.
func (s *Songlist) Track(i int) *domain.Track {
	if e := s.at(i); e != nil {
		return e.track
	}
	return nil
}

// Tracks returns the records of the filtered view in order.
func (s *Songlist) Tracks() []*domain.Track {
	out := make([]*domain.Track, 0, len(s.view))
	for _, h := range s.view {
		if e, ok := s.resolve(h); ok {
			out = append(out, e.track)
		}
	}
	return out
}

// Locate returns the filtered view index of t, compared by identity.
func (s *Songlist) Locate(t *domain.Track) (int, bool) {
	e, ok := s.owners[t]
	if !ok {
		return -1, false
	}
	i := s.viewIndex(e.h)
	return i, i >= 0
}

func (s *Songlist) resolve(h handle) (*entry, bool) {
	e, ok := s.entries[h]
	return e, ok
}

// at resolves index i of the filtered view; nil when out of range or stale.
func (s *Songlist) at(i int) *entry {
	if i < 0 || i >= len(s.view) {
		return nil
	}
	e, ok := s.resolve(s.view[i])
	if !ok {
		return nil
	}
	return e
}

func (s *Songlist) viewIndex(h handle) int {
	for i, vh := range s.view {
		if vh == h {
			return i
		}
	}
	return -1
}

func (s *Songlist) masterIndex(e *entry) int {
	for i, m := range s.master {
		if m == e {
			return i
		}
	}
	return -1
}

// viewEntries resolves the filtered view, skipping stale handles.
func (s *Songlist) viewEntries() []*entry {
	out := make([]*entry, 0, len(s.view))
	for _, h := range s.view {
		if e, ok := s.resolve(h); ok {
			out = append(out, e)
		}
	}
	return out
}

func (s *Songlist) setView(es []*entry) {
	view := make([]handle, len(es))
	for i, e := range es {
		view[i] = e.h
	}
	s.view = view
	s.touch()
}

// touch records a change of the filtered view. Selection walks restart at
// their next call.
func (s *Songlist) touch() {
	s.generation++
}

func (s *Songlist) playing() *domain.Track {
	if s.player == nil {
		return nil
	}
	return s.player.CurrentTrack()
}

func (s *Songlist) repeat() bool {
	return s.player != nil && s.player.Repeat()
}

func (s *Songlist) publish(event domain.Event) {
	if s.bus == nil || !s.bus.HasSubscribers(event.Type()) {
		return
	}
	s.bus.Publish(event)
}

func (s *Songlist) changed(op string) {
	s.publish(domain.NewListChangedEvent(s.id, op, len(s.view)))
}
