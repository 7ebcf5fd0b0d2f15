package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/tunelist/internal/adapter/player/memory"
	"github.com/tejashwikalptaru/tunelist/internal/domain"
	"github.com/tejashwikalptaru/tunelist/internal/logger"
	"github.com/tejashwikalptaru/tunelist/internal/songlist"
	"github.com/tejashwikalptaru/tunelist/internal/testutil"
)

type fixedRandom struct{ value uint64 }

func (r fixedRandom) Next() uint64 { return r.value }
func (r fixedRandom) Max() uint64  { return 1 << 32 }

func newCursor(t *testing.T, random fixedRandom) (*Cursor, *songlist.Songlist, *memory.Player, []*domain.Track) {
	t.Helper()

	player := memory.NewPlayer(nil)
	list := songlist.New(domain.RolePlaylist, nil, player, nil, nil, logger.NewTestLogger())
	tracks := testutil.Library()
	for _, track := range tracks {
		_, err := list.Add(track)
		require.NoError(t, err)
	}
	return NewCursor(list, player, random, 2, logger.NewTestLogger()), list, player, tracks
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Move
	}{
		{"up", Move{Kind: KindRelative, Offset: -1}},
		{"DOWN", Move{Kind: KindRelative, Offset: 1}},
		{"pgup", Move{Kind: KindPage, Offset: -1}},
		{"pagedown", Move{Kind: KindPage, Offset: 1}},
		{"home", Move{Kind: KindHome}},
		{" end ", Move{Kind: KindEnd}},
		{"current", Move{Kind: KindCurrent}},
		{"random", Move{Kind: KindRandom}},
		{"-3", Move{Kind: KindRelative, Offset: -3}},
		{"nextof album", Move{Kind: KindNextOf, Field: "album"}},
		{"prevof Artist", Move{Kind: KindPrevOf, Field: "Artist"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{"", "sideways", "up down", "nextof", "nextof bogus", "prevof a b"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, domain.ErrUnknownCommand)
		})
	}
}

func TestCursor_Moves(t *testing.T) {
	c, list, _, _ := newCursor(t, fixedRandom{})

	steps := []struct {
		input string
		want  int
	}{
		{"down", 1},
		{"pgdn", 3},
		{"end", 5},
		{"down", 5},
		{"pgup", 3},
		{"-2", 1},
		{"home", 0},
		{"up", 0},
		{"10", 5},
	}
	for _, step := range steps {
		got, err := c.Run(step.input)
		require.NoError(t, err, step.input)
		assert.Equal(t, step.want, got, step.input)
	}
	assert.Equal(t, 5, list.Cursor())
}

func TestCursor_ParseErrorKeepsCursor(t *testing.T) {
	c, list, _, _ := newCursor(t, fixedRandom{})
	list.SetCursor(2)

	got, err := c.Run("sideways")
	assert.ErrorIs(t, err, domain.ErrUnknownCommand)
	assert.Equal(t, 2, got)
}

func TestCursor_Current(t *testing.T) {
	c, list, player, tracks := newCursor(t, fixedRandom{})

	_, err := c.Run("current")
	assert.ErrorIs(t, err, domain.ErrNotPlaying)

	player.Play(&domain.Track{File: "nowhere.flac"})
	_, err = c.Run("current")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	player.Play(tracks[4])
	got, err := c.Run("current")
	require.NoError(t, err)
	assert.Equal(t, 4, got)
	assert.Same(t, tracks[4], list.CursorTrack())
}

func TestCursor_Random(t *testing.T) {
	c, _, _, _ := newCursor(t, fixedRandom{value: 9})

	got, err := c.Run("random")
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestCursor_RandomUnavailable(t *testing.T) {
	list := songlist.New(domain.RolePlaylist, nil, nil, nil, nil, nil)
	c := NewCursor(list, nil, fixedRandom{}, 0, nil)

	_, err := c.Run("random")
	assert.ErrorIs(t, err, domain.ErrEmptyList)

	_, err = list.Add(testutil.NewTrack("a", "b", "c", 1))
	require.NoError(t, err)
	c = NewCursor(list, nil, nil, 0, nil)
	_, err = c.Run("random")
	var serviceErr *domain.ServiceError
	assert.ErrorAs(t, err, &serviceErr)
}

func TestCursor_FieldGroups(t *testing.T) {
	c, _, _, _ := newCursor(t, fixedRandom{})

	got, err := c.Run("nextof album")
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	got, err = c.Run("nextof album")
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	got, err = c.Run("prevof album")
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestCursor_UnknownKind(t *testing.T) {
	c, _, _, _ := newCursor(t, fixedRandom{})

	_, err := c.Execute(Move{Kind: Kind(99)})
	assert.ErrorIs(t, err, domain.ErrUnknownCommand)
	assert.Equal(t, "unknown", Kind(99).String())
}
