package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/tunelist/internal/config"
	"github.com/tejashwikalptaru/tunelist/internal/domain"
	"github.com/tejashwikalptaru/tunelist/internal/testutil"
)

type staticSource struct {
	tracks []domain.Track
	err    error
}

func (s staticSource) Tracks(context.Context) ([]domain.Track, error) {
	return s.tracks, s.err
}

func newTestApp(t *testing.T, settings *config.Config) *Application {
	t.Helper()
	app, err := NewApplication(Config{Settings: settings, LogOutput: &bytes.Buffer{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Shutdown() })
	return app
}

func TestNewApplication(t *testing.T) {
	app := newTestApp(t, nil)

	assert.NotNil(t, app.Library())
	assert.NotNil(t, app.Queue())
	assert.NotNil(t, app.Cursor())
	assert.NotNil(t, app.Selector())
	assert.NotNil(t, app.EventBus())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.LocalPlayer())
	assert.Same(t, app.LocalPlayer(), app.Player())
	assert.False(t, app.HasServer())
	assert.Equal(t, domain.RolePlaylist, app.Library().Role())
	assert.Equal(t, domain.RoleQueue, app.Queue().Role())
}

func TestNewApplication_InvalidSettings(t *testing.T) {
	settings := config.Default()
	settings.PageSize = 0

	_, err := NewApplication(Config{Settings: settings})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestNewApplication_ServerConfigured(t *testing.T) {
	settings := config.Default()
	settings.MPD.Enabled = true

	app := newTestApp(t, settings)
	assert.True(t, app.HasServer())
	assert.Nil(t, app.LocalPlayer())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg.Settings)
	assert.Equal(t, config.DefaultSort, cfg.Settings.Sort)
}

func TestApplicationLifecycle(t *testing.T) {
	app, err := NewApplication(Config{LogOutput: &bytes.Buffer{}})
	require.NoError(t, err)

	require.NoError(t, app.Start(context.Background()))

	assert.NoError(t, app.Shutdown())
	// Shutdown again should not fail
	assert.NoError(t, app.Shutdown())
}

func TestLoad_ReplacesContents(t *testing.T) {
	app := newTestApp(t, nil)
	list := app.Queue()

	_, err := list.Add(testutil.NewTrack("old", "old", "old", 1))
	require.NoError(t, err)

	src := staticSource{tracks: []domain.Track{
		{File: "a.flac", Pos: domain.At(0), ID: domain.WithID(3), Duration: domain.Seconds(60)},
		{File: "b.flac", Pos: domain.At(1), ID: domain.WithID(4), Duration: domain.Seconds(30)},
	}}
	n, err := app.Load(context.Background(), list, src)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, 90, list.Duration())
	assert.Equal(t, "b.flac", list.Track(1).File)
	assert.Equal(t, domain.At(1), list.Track(1).Pos)
}

func TestLoad_SourceError(t *testing.T) {
	app := newTestApp(t, nil)
	_, err := app.Library().Add(testutil.NewTrack("a", "b", "c", 1))
	require.NoError(t, err)

	srcErr := errors.New("unreadable")
	_, err = app.Load(context.Background(), app.Library(), staticSource{err: srcErr})
	assert.ErrorIs(t, err, srcErr)
	assert.Equal(t, 1, app.Library().MasterLen(), "list untouched on failure")
}

func TestStart_ScansAndSortsLibrary(t *testing.T) {
	settings := config.Default()
	settings.LibraryDir = testutil.MusicDir(t)
	settings.Sort = "title"

	app := newTestApp(t, settings)
	require.NoError(t, app.Start(context.Background()))

	lib := app.Library()
	require.Equal(t, 3, lib.Len())
	// untagged files have an empty title and sort first
	assert.Equal(t, "untagged.flac", lib.Track(0).File)
	assert.Equal(t, "Breaking Glass", lib.Track(1).Title)
	assert.Equal(t, "Speed of Life", lib.Track(2).Title)

	cur, err := app.Cursor().Run("end")
	require.NoError(t, err)
	assert.Equal(t, 2, cur)
}

func TestStart_MissingLibrary(t *testing.T) {
	settings := config.Default()
	settings.LibraryDir = t.TempDir() + "/missing"

	app := newTestApp(t, settings)
	err := app.Start(context.Background())

	var adapterErr *domain.AdapterError
	assert.ErrorAs(t, err, &adapterErr)
}

func TestEventsFollowPlayer(t *testing.T) {
	app := newTestApp(t, nil)

	var seen []domain.EventType
	app.EventBus().Subscribe(domain.EventPlayerChanged, func(e domain.Event) {
		seen = append(seen, e.Type())
	})

	app.LocalPlayer().Play(&domain.Track{File: "a.flac"})
	assert.Equal(t, []domain.EventType{domain.EventPlayerChanged}, seen)
}
