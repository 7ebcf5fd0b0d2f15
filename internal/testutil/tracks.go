package testutil

import (
	"fmt"

	"github.com/tejashwikalptaru/tunelist/internal/domain"
)

// NewTrack builds a detached track with the given tags and a known duration.
func NewTrack(artist, album, title string, seconds int) *domain.Track {
	return &domain.Track{
		File:     fmt.Sprintf("%s/%s/%s.flac", artist, album, title),
		Artist:   artist,
		Album:    album,
		Title:    title,
		Duration: domain.Seconds(seconds),
	}
}

// Album builds n tracks of one album, numbered from 1, each 180 seconds long.
func Album(artist, album string, n int) []*domain.Track {
	tracks := make([]*domain.Track, 0, n)
	for i := 1; i <= n; i++ {
		t := NewTrack(artist, album, fmt.Sprintf("Song %d", i), 180)
		t.TrackNumber = fmt.Sprintf("%d/%d", i, n)
		tracks = append(tracks, t)
	}
	return tracks
}

// Library is a small mixed collection: two albums by two artists and one
// stream without a duration.
func Library() []*domain.Track {
	tracks := []*domain.Track{
		{File: "abba/gold/01.flac", Artist: "ABBA", Album: "Gold", Title: "Dancing Queen", TrackNumber: "1", Date: "1992", Genre: "Pop", Duration: domain.Seconds(231)},
		{File: "abba/gold/02.flac", Artist: "ABBA", Album: "Gold", Title: "Knowing Me, Knowing You", TrackNumber: "2", Date: "1992", Genre: "Pop", Duration: domain.Seconds(242)},
		{File: "abba/gold/03.flac", Artist: "ABBA", Album: "Gold", Title: "Take a Chance on Me", TrackNumber: "3", Date: "1992", Genre: "Pop", Duration: domain.Seconds(245)},
		{File: "bowie/low/01.flac", Artist: "David Bowie", Album: "Low", Title: "Speed of Life", TrackNumber: "1", Date: "1977", Genre: "Rock", Duration: domain.Seconds(166)},
		{File: "bowie/low/02.flac", Artist: "David Bowie", Album: "Low", Title: "Breaking Glass", TrackNumber: "2", Date: "1977", Genre: "Rock", Duration: domain.Seconds(111)},
		{File: "http://radio.example/stream", Name: "Example Radio", Title: "Live", Duration: domain.UnknownDuration},
	}
	return tracks
}
