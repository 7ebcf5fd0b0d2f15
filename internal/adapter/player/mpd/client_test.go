package mpd

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	gompd "github.com/fhs/gompd/v2/mpd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/tunelist/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/tunelist/internal/domain"
	"github.com/tejashwikalptaru/tunelist/internal/logger"
	"github.com/tejashwikalptaru/tunelist/internal/testutil"
)

// fakeConn answers like a server with a fixed queue.
type fakeConn struct {
	mu        sync.Mutex
	status    gompd.Attrs
	song      gompd.Attrs
	queue     []gompd.Attrs
	statusErr error
	closed    bool
	calls     int
}

func (f *fakeConn) Status() (gompd.Attrs, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return f.status, nil
}

func (f *fakeConn) CurrentSong() (gompd.Attrs, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.song, nil
}

func (f *fakeConn) PlaylistInfo(start, end int) ([]gompd.Attrs, error) {
	return f.queue, nil
}

func (f *fakeConn) Ping() error { return nil }

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) set(status, song gompd.Attrs) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.song = status, song
}

func (f *fakeConn) statusCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestClient(t *testing.T, fc *fakeConn, bus *eventbus.SyncEventBus) *Client {
	t.Helper()
	cfg := Config{Address: "localhost:6600", PollInterval: 5 * time.Millisecond}
	return newClient(cfg, bus, logger.NewTestLogger(), func(Config) (conn, error) {
		return fc, nil
	})
}

var playingSecond = gompd.Attrs{
	"file":     "Bowie/Low/02.flac",
	"Title":    "Breaking Glass",
	"Artist":   "David Bowie",
	"Album":    "Low",
	"Date":     "1977-01-14",
	"Track":    "2/11",
	"duration": "111.600",
	"Id":       "42",
	"Pos":      "1",
}

func TestTrackFromAttrs(t *testing.T) {
	track := trackFromAttrs(playingSecond)

	assert.Equal(t, "Bowie/Low/02.flac", track.File)
	assert.Equal(t, "Breaking Glass", track.Title)
	assert.Equal(t, "1977", track.Year)
	assert.Equal(t, "2/11", track.TrackNumber)
	assert.Equal(t, domain.Seconds(111), track.Duration)
	assert.Equal(t, domain.WithID(42), track.ID)
	assert.Equal(t, domain.At(1), track.Pos)
}

func TestTrackFromAttrs_LegacyTimeAndStream(t *testing.T) {
	track := trackFromAttrs(gompd.Attrs{"file": "http://radio.example/stream", "Name": "Example Radio"})
	assert.False(t, track.Duration.Known)
	assert.False(t, track.ID.Valid)
	assert.False(t, track.Pos.Valid)
	assert.Equal(t, "Example Radio", track.Name)

	track = trackFromAttrs(gompd.Attrs{"file": "a.mp3", "Time": "200"})
	assert.Equal(t, domain.Seconds(200), track.Duration)
}

func TestClient_NotConnected(t *testing.T) {
	c := NewClient(Config{Address: "localhost:6600"}, nil, nil)

	assert.ErrorIs(t, c.Refresh(context.Background()), domain.ErrNotConnected)
	assert.ErrorIs(t, c.Ping(), domain.ErrNotConnected)
	_, err := c.Tracks(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotConnected)
	assert.NoError(t, c.Close())
}

func TestClient_DialError(t *testing.T) {
	dialErr := errors.New("connection refused")
	c := newClient(Config{Address: "nowhere:6600"}, nil, nil, func(Config) (conn, error) {
		return nil, dialErr
	})

	err := c.Connect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, dialErr)

	var adapterErr *domain.AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, "dial", adapterErr.Op)
}

func TestClient_ConnectLoadsStatus(t *testing.T) {
	fc := &fakeConn{}
	fc.set(gompd.Attrs{"state": "play", "repeat": "1"}, playingSecond)
	c := newTestClient(t, fc, nil)

	require.NoError(t, c.Connect(context.Background()))

	cur := c.CurrentTrack()
	require.NotNil(t, cur)
	assert.Equal(t, "Breaking Glass", cur.Title)
	assert.True(t, c.Repeat())
	assert.NoError(t, c.Ping())

	require.NoError(t, c.Close())
	assert.True(t, fc.closed)
}

func TestClient_StoppedHasNoTrack(t *testing.T) {
	fc := &fakeConn{}
	fc.set(gompd.Attrs{"state": "stop", "repeat": "0"}, playingSecond)
	c := newTestClient(t, fc, nil)

	require.NoError(t, c.Connect(context.Background()))
	assert.Nil(t, c.CurrentTrack())
	assert.False(t, c.Repeat())
}

func TestClient_RefreshPublishesOnlyChanges(t *testing.T) {
	bus := eventbus.NewSyncEventBus()
	defer bus.Close()

	var events []domain.PlayerChangedEvent
	bus.Subscribe(domain.EventPlayerChanged, func(e domain.Event) {
		events = append(events, e.(domain.PlayerChangedEvent))
	})

	fc := &fakeConn{}
	fc.set(gompd.Attrs{"state": "play"}, playingSecond)
	c := newTestClient(t, fc, bus)
	ctx := context.Background()

	require.NoError(t, c.Connect(ctx))
	require.NoError(t, c.Refresh(ctx))
	require.Len(t, events, 1)
	assert.Equal(t, domain.WithID(42), events[0].Track.ID)

	fc.set(gompd.Attrs{"state": "play", "repeat": "1"}, playingSecond)
	require.NoError(t, c.Refresh(ctx))
	require.Len(t, events, 2)
	assert.True(t, events[1].Repeat)

	fc.set(gompd.Attrs{"state": "stop", "repeat": "1"}, nil)
	require.NoError(t, c.Refresh(ctx))
	require.Len(t, events, 3)
	assert.Nil(t, events[2].Track)
}

func TestClient_RefreshError(t *testing.T) {
	fc := &fakeConn{}
	fc.set(gompd.Attrs{"state": "stop"}, nil)
	c := newTestClient(t, fc, nil)
	require.NoError(t, c.Connect(context.Background()))

	fc.mu.Lock()
	fc.statusErr = errors.New("broken pipe")
	fc.mu.Unlock()

	var adapterErr *domain.AdapterError
	require.ErrorAs(t, c.Refresh(context.Background()), &adapterErr)
	assert.Equal(t, "status", adapterErr.Op)
}

func TestClient_RefreshCanceled(t *testing.T) {
	c := newTestClient(t, &fakeConn{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, c.Refresh(ctx), context.Canceled)
	assert.ErrorIs(t, c.Connect(ctx), context.Canceled)
}

func TestClient_Tracks(t *testing.T) {
	fc := &fakeConn{queue: []gompd.Attrs{
		{"file": "a.flac", "Id": "7", "Pos": "0", "duration": "60"},
		playingSecond,
	}}
	fc.set(gompd.Attrs{"state": "stop"}, nil)
	c := newTestClient(t, fc, nil)
	require.NoError(t, c.Connect(context.Background()))

	tracks, err := c.Tracks(context.Background())
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, domain.At(0), tracks[0].Pos)
	assert.Equal(t, domain.WithID(7), tracks[0].ID)
	assert.Equal(t, "Breaking Glass", tracks[1].Title)
}

func TestClient_PollerStopsOnClose(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	fc := &fakeConn{}
	fc.set(gompd.Attrs{"state": "stop"}, nil)
	c := newTestClient(t, fc, nil)
	require.NoError(t, c.Connect(context.Background()))

	c.Start(context.Background())
	c.Start(context.Background()) // second start is a no-op

	fc.set(gompd.Attrs{"state": "play"}, playingSecond)
	assert.Eventually(t, func() bool {
		return c.CurrentTrack() != nil
	}, time.Second, 5*time.Millisecond)
	assert.Greater(t, fc.statusCalls(), 1)

	require.NoError(t, c.Close())
}

func TestClient_PollerStopsOnContextCancel(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreCurrent()...)

	fc := &fakeConn{}
	fc.set(gompd.Attrs{"state": "stop"}, nil)
	c := newTestClient(t, fc, nil)
	require.NoError(t, c.Connect(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)
	cancel()

	require.NoError(t, c.Close())
}
