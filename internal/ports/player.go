// Package ports define interfaces for dependency inversion.
// These interfaces keep the list engine independent of the player, the random
// source and the event transport it is wired to.
package ports

import (
	"context"

	"github.com/tejashwikalptaru/tunelist/internal/domain"
)

// PlayerStatus is the list engine's view of the music player.
// It answers which track is playing and whether playback repeats.
//
// Thread-safety: Implementations must be thread-safe; a poller may update the
// status while the engine reads it.
type PlayerStatus interface {
	// CurrentTrack returns the playing track, or nil when playback is stopped.
	// The returned track is a snapshot and may be retained by the caller.
	CurrentTrack() *domain.Track

	// Repeat reports whether the player wraps around at the end of the queue.
	Repeat() bool
}

// RandomSource yields uniformly distributed integers in [0, Max()].
// The range may be narrow; callers accumulate several draws when they need
// to cover a wider range.
type RandomSource interface {
	Next() uint64
	Max() uint64
}

// TrackSource produces tracks to fill a list, e.g. from a directory scan or
// a server's play queue.
type TrackSource interface {
	// Tracks returns all tracks of the source in source order.
	// Returns an error if the source cannot be read or ctx is done.
	Tracks(ctx context.Context) ([]domain.Track, error)
}
