// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the tunelist list engine.
package domain

import (
	"strconv"
)

// Track represents a single song record with all its metadata.
// Tag fields are kept as the strings the server or the tag reader produced;
// numeric fields (track, disc, year) are parsed only when sorting.
type Track struct {
	// File is the path of the audio file, relative to the music directory
	File string

	Title           string
	Artist          string
	AlbumArtist     string
	Composer        string
	Performer       string
	Album           string
	Genre           string
	Date            string
	Year            string
	Comment         string
	TrackNumber     string
	Disc            string
	ArtistSort      string
	AlbumArtistSort string

	// Name is the stream name for radio entries
	Name string

	// Duration is the track length, if known
	Duration Duration

	// ID is the server-assigned song id, if any
	ID SongID

	// Pos is the position of the track in its list, if attached
	Pos Position
}

// Clone returns a detached copy of the track without server identity.
// The copy can be added to another list.
func (t Track) Clone() Track {
	t.ID = SongID{}
	t.Pos = Position{}
	return t
}

// Position is an optional list position.
// The zero value means "not attached to a list order".
type Position struct {
	Index int
	Valid bool
}

// At returns a valid position.
func At(index int) Position {
	return Position{Index: index, Valid: true}
}

// NoPosition is the absent position.
var NoPosition = Position{}

// String formats the position for matching; absent positions format as "".
func (p Position) String() string {
	if !p.Valid {
		return ""
	}
	return strconv.Itoa(p.Index)
}

// SongID is an optional server-assigned song identifier.
type SongID struct {
	Value int
	Valid bool
}

// WithID returns a valid song id.
func WithID(id int) SongID {
	return SongID{Value: id, Valid: true}
}

// String formats the id for matching; absent ids format as "".
func (id SongID) String() string {
	if !id.Valid {
		return ""
	}
	return strconv.Itoa(id.Value)
}

// Duration is an optional track length in whole seconds.
type Duration struct {
	Seconds int
	Known   bool
}

// Seconds returns a known duration.
func Seconds(n int) Duration {
	return Duration{Seconds: n, Known: true}
}

// UnknownDuration is the duration of streams and untagged files.
var UnknownDuration = Duration{}

// String formats the duration as m:ss or h:mm:ss; unknown durations format as "".
func (d Duration) String() string {
	if !d.Known {
		return ""
	}
	h := d.Seconds / 3600
	m := (d.Seconds % 3600) / 60
	s := d.Seconds % 60
	if h > 0 {
		return strconv.Itoa(h) + ":" + pad2(m) + ":" + pad2(s)
	}
	return strconv.Itoa(m) + ":" + pad2(s)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// ListRole describes who owns the positions of a list's tracks.
type ListRole int

const (
	// RolePlaylist is a local list; positions follow the list order and are
	// renumbered whenever the order changes.
	RolePlaylist ListRole = iota

	// RoleQueue is the server's play queue; positions are assigned by the
	// server and are never renumbered locally.
	RoleQueue
)

// KeepsServerPositions reports whether positions in this role are owned by the server.
func (r ListRole) KeepsServerPositions() bool {
	return r == RoleQueue
}

// LocatesByPosition reports whether the playing track is looked up by its
// position before falling back to its file path.
func (r ListRole) LocatesByPosition() bool {
	return r == RoleQueue
}

// String returns a human-readable representation of the role.
func (r ListRole) String() string {
	switch r {
	case RolePlaylist:
		return "playlist"
	case RoleQueue:
		return "queue"
	default:
		return "unknown"
	}
}
