package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/tunelist/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/tunelist/internal/domain"
	"github.com/tejashwikalptaru/tunelist/internal/logger"
)

func TestPlayer_StartsStopped(t *testing.T) {
	p := NewPlayer(nil)

	assert.Nil(t, p.CurrentTrack())
	assert.False(t, p.Repeat())
}

func TestPlayer_PlayKeepsACopy(t *testing.T) {
	p := NewPlayer(nil)
	p.SetLogger(logger.NewTestLogger())

	track := &domain.Track{File: "a.mp3", Pos: domain.At(2)}
	p.Play(track)
	track.File = "changed.mp3"

	cur := p.CurrentTrack()
	require.NotNil(t, cur)
	assert.Equal(t, "a.mp3", cur.File)
	assert.Equal(t, domain.At(2), cur.Pos)

	// Callers get their own snapshot too
	cur.File = "other.mp3"
	assert.Equal(t, "a.mp3", p.CurrentTrack().File)

	p.Stop()
	assert.Nil(t, p.CurrentTrack())
}

func TestPlayer_PublishesChanges(t *testing.T) {
	bus := eventbus.NewSyncEventBus()
	defer bus.Close()

	var events []domain.PlayerChangedEvent
	bus.Subscribe(domain.EventPlayerChanged, func(e domain.Event) {
		events = append(events, e.(domain.PlayerChangedEvent))
	})

	p := NewPlayer(bus)
	p.Play(&domain.Track{File: "a.mp3"})
	p.SetRepeat(true)
	p.SetRepeat(true) // unchanged, no event
	p.Stop()

	require.Len(t, events, 3)
	assert.Equal(t, "a.mp3", events[0].Track.File)
	assert.False(t, events[0].Repeat)
	assert.True(t, events[1].Repeat)
	assert.Nil(t, events[2].Track)
}

func TestPlayer_ConcurrentAccess(t *testing.T) {
	p := NewPlayer(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				p.Play(&domain.Track{File: "x.mp3"})
				p.SetRepeat(j%2 == 0)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = p.CurrentTrack()
				_ = p.Repeat()
			}
		}()
	}
	wg.Wait()

	require.NotNil(t, p.CurrentTrack())
	assert.Equal(t, "x.mp3", p.CurrentTrack().File)
}
