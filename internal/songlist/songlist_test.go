package songlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/tunelist/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/tunelist/internal/adapter/player/memory"
	"github.com/tejashwikalptaru/tunelist/internal/domain"
	"github.com/tejashwikalptaru/tunelist/internal/logger"
	"github.com/tejashwikalptaru/tunelist/internal/testutil"
)

// fixedRandom replays a fixed sequence of draws.
type fixedRandom struct {
	values []uint64
	max    uint64
	i      int
}

func (r *fixedRandom) Next() uint64 {
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}

func (r *fixedRandom) Max() uint64 {
	return r.max
}

type fixture struct {
	list   *Songlist
	player *memory.Player
	opts   *Options
	tracks []*domain.Track
}

func newFixture(t *testing.T, role domain.ListRole, tracks ...*domain.Track) *fixture {
	t.Helper()

	opts := &Options{}
	player := memory.NewPlayer(nil)
	list := New(role, opts, player, nil, nil, logger.NewTestLogger())
	for _, track := range tracks {
		_, err := list.Add(track)
		require.NoError(t, err)
	}
	return &fixture{list: list, player: player, opts: opts, tracks: tracks}
}

func newLibrary(t *testing.T) *fixture {
	t.Helper()
	return newFixture(t, domain.RolePlaylist, testutil.Library()...)
}

// viewFiles lists the file paths of the filtered view.
func viewFiles(s *Songlist) []string {
	files := make([]string, 0, s.Len())
	for _, t := range s.Tracks() {
		files = append(files, t.File)
	}
	return files
}

// assertViewInMasterOrder checks that the filtered view is a subsequence of
// the master sequence.
func assertViewInMasterOrder(t *testing.T, s *Songlist) {
	t.Helper()
	m := 0
	for _, h := range s.view {
		for m < len(s.master) && s.master[m].h != h {
			m++
		}
		require.Less(t, m, len(s.master), "view record %d missing from master or out of order", h)
		m++
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New(domain.RoleQueue, nil, nil, nil, nil, nil)

	require.NotNil(t, s)
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, domain.RoleQueue, s.Role())
	assert.NotNil(t, s.Options())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.MasterLen())
	assert.Equal(t, 0, s.Cursor())
	assert.Nil(t, s.CursorTrack())

	_, _, ok := s.Next()
	assert.False(t, ok)
	_, _, ok = s.Random()
	assert.False(t, ok)
}

func TestNew_UniqueIDs(t *testing.T) {
	a := New(domain.RolePlaylist, nil, nil, nil, nil, nil)
	b := New(domain.RolePlaylist, nil, nil, nil, nil, nil)

	assert.NotEqual(t, a.ID(), b.ID())
}

func TestOptions_SharedByPointer(t *testing.T) {
	f := newFixture(t, domain.RolePlaylist,
		&domain.Track{File: "1", Title: "b"},
		&domain.Track{File: "2", Title: "A"},
	)

	require.True(t, f.list.SortString("title"))
	assert.Equal(t, []string{"2", "1"}, viewFiles(f.list))

	f.opts.IgnoreCase = true
	_, err := f.list.Add(&domain.Track{File: "3", Title: "a0"})
	require.NoError(t, err)
	require.True(t, f.list.SortString("title"))
	assert.Equal(t, []string{"2", "3", "1"}, viewFiles(f.list))
}

func TestEvents_Published(t *testing.T) {
	bus := eventbus.NewSyncEventBus()
	defer bus.Close()

	var types []domain.EventType
	bus.SubscribeAll(func(e domain.Event) { types = append(types, e.Type()) })

	s := New(domain.RolePlaylist, nil, nil, nil, bus, logger.NewTestLogger())
	for _, track := range testutil.Library() {
		_, err := s.Add(track)
		require.NoError(t, err)
	}
	types = nil

	f := s.FilterAdd("abba", domain.FieldsTags)
	s.SelectAll(true)
	s.FilterRemove(f)
	s.SortString("title")
	s.RemoveAt(0)
	s.Clear()

	assert.Equal(t, []domain.EventType{
		domain.EventFilterAdded,
		domain.EventSelectionChanged,
		domain.EventFilterRemove,
		domain.EventListSorted,
		domain.EventListChanged,
		domain.EventListCleared,
	}, types)
}

func TestEvents_CarryListID(t *testing.T) {
	bus := eventbus.NewSyncEventBus()
	defer bus.Close()

	var got []domain.ListChangedEvent
	bus.Subscribe(domain.EventListChanged, func(e domain.Event) {
		got = append(got, e.(domain.ListChangedEvent))
	})

	s := New(domain.RolePlaylist, nil, nil, nil, bus, nil)
	_, err := s.Add(testutil.NewTrack("a", "b", "c", 10))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, s.ID(), got[0].ListID)
	assert.Equal(t, "add", got[0].Op)
	assert.Equal(t, 1, got[0].Size)
}
