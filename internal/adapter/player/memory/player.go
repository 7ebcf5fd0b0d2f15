// Package memory provides an in-memory implementation of the PlayerStatus interface.
// It is used by tests and by the command line tool when no music server is configured.
package memory

import (
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/tunelist/internal/domain"
	"github.com/tejashwikalptaru/tunelist/internal/ports"
)

// Player holds a settable "now playing" state.
//
// Thread-safety: This implementation is thread-safe.
type Player struct {
	logger *slog.Logger
	bus    ports.EventBus

	current *domain.Track
	repeat  bool
	mu      sync.RWMutex
}

// NewPlayer creates a stopped player. bus may be nil.
func NewPlayer(bus ports.EventBus) *Player {
	return &Player{bus: bus}
}

// SetLogger sets the logger for this player.
// This should be called after construction before using the player.
func (p *Player) SetLogger(logger *slog.Logger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger = logger
}

// CurrentTrack returns a copy of the playing track, or nil when stopped.
func (p *Player) CurrentTrack() *domain.Track {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.current == nil {
		return nil
	}
	t := *p.current
	return &t
}

// Repeat reports whether the player repeats.
func (p *Player) Repeat() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.repeat
}

// Play makes a copy of t the playing track. A nil track stops playback.
func (p *Player) Play(t *domain.Track) {
	p.mu.Lock()
	if t == nil {
		p.current = nil
	} else {
		c := *t
		p.current = &c
	}
	snapshot, repeat, logger := p.current, p.repeat, p.logger
	p.mu.Unlock()

	if logger != nil {
		file := ""
		if snapshot != nil {
			file = snapshot.File
		}
		logger.Debug("now playing", slog.String("file", file))
	}
	p.notify(snapshot, repeat)
}

// Stop clears the playing track.
func (p *Player) Stop() {
	p.Play(nil)
}

// SetRepeat sets the repeat mode.
func (p *Player) SetRepeat(repeat bool) {
	p.mu.Lock()
	if p.repeat == repeat {
		p.mu.Unlock()
		return
	}
	p.repeat = repeat
	snapshot := p.current
	p.mu.Unlock()

	p.notify(snapshot, repeat)
}

func (p *Player) notify(current *domain.Track, repeat bool) {
	if p.bus == nil {
		return
	}
	var t *domain.Track
	if current != nil {
		c := *current
		t = &c
	}
	p.bus.Publish(domain.NewPlayerChangedEvent(t, repeat))
}

// Verify that Player implements the PlayerStatus interface
var _ ports.PlayerStatus = (*Player)(nil)
