// Package metadata builds tracks from audio files on disk.
package metadata

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"

	"github.com/tejashwikalptaru/tunelist/internal/domain"
	"github.com/tejashwikalptaru/tunelist/internal/ports"
)

// Extensions lists the file extensions the scanner picks up.
var Extensions = []string{
	".mp3", ".flac", ".ogg", ".oga", ".opus", ".m4a", ".m4b", ".mp4", ".aac", ".dsf", ".wav",
}

// Scanner walks a music directory and reads the tags of every audio file.
// Track.File is the path relative to the root, with forward slashes.
type Scanner struct {
	root   string
	bus    ports.EventBus
	logger *slog.Logger
}

// NewScanner creates a scanner for root. bus may be nil.
func NewScanner(root string, bus ports.EventBus, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scanner{
		root:   root,
		bus:    bus,
		logger: logger.With(slog.String("component", "metadata"), slog.String("root", root)),
	}
}

// Tracks scans the directory tree in lexical order.
// Files whose tags cannot be read are still returned, with only File set.
// Returns domain.ErrScanCancelled if ctx is done before the scan finishes.
func (s *Scanner) Tracks(ctx context.Context) ([]domain.Track, error) {
	s.publish(domain.NewScanStartedEvent(s.root))

	files, seen, err := s.collectAudioFiles(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.ErrScanCancelled
		}
		return nil, domain.NewAdapterError("metadata", "walk", s.root, err)
	}

	tracks := make([]domain.Track, 0, len(files))
	for _, rel := range files {
		select {
		case <-ctx.Done():
			return tracks, domain.ErrScanCancelled
		default:
		}

		track, err := s.readTrack(rel)
		if err != nil {
			s.logger.Debug("no tags", slog.String("file", rel), slog.Any("error", err))
		}
		tracks = append(tracks, track)
	}

	s.logger.Info("scan completed",
		slog.Int("files", seen),
		slog.Int("tracks", len(tracks)))
	s.publish(domain.NewScanCompletedEvent(s.root, seen, len(tracks)))

	return tracks, nil
}

// collectAudioFiles returns the relative paths of all audio files and the
// number of regular files seen.
func (s *Scanner) collectAudioFiles(ctx context.Context) ([]string, int, error) {
	var files []string
	seen := 0

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == s.root {
				return err
			}
			// Skip entries we can't access
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		seen++
		if !IsAudioFile(path) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	return files, seen, err
}

// readTrack always returns a track carrying the file; the error reports why
// the tags are missing.
func (s *Scanner) readTrack(rel string) (domain.Track, error) {
	track := domain.Track{File: rel}

	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return track, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return track, err
	}
	fillFromTags(&track, m)
	return track, nil
}

func fillFromTags(t *domain.Track, m tag.Metadata) {
	t.Title = strings.TrimSpace(m.Title())
	t.Artist = strings.TrimSpace(m.Artist())
	t.AlbumArtist = strings.TrimSpace(m.AlbumArtist())
	t.Album = strings.TrimSpace(m.Album())
	t.Composer = strings.TrimSpace(m.Composer())
	t.Genre = strings.TrimSpace(m.Genre())
	t.Comment = strings.TrimSpace(m.Comment())

	if year := m.Year(); year > 0 {
		t.Year = strconv.Itoa(year)
		t.Date = t.Year
	}
	t.TrackNumber = numberOf(m.Track())
	t.Disc = numberOf(m.Disc())
}

// numberOf formats "n/total" the way servers report track and disc numbers.
func numberOf(n, total int) string {
	switch {
	case n <= 0:
		return ""
	case total > 0:
		return strconv.Itoa(n) + "/" + strconv.Itoa(total)
	default:
		return strconv.Itoa(n)
	}
}

// IsAudioFile reports whether the extension of path is one the scanner reads.
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (s *Scanner) publish(event domain.Event) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}

// Verify that Scanner implements the TrackSource interface
var _ ports.TrackSource = (*Scanner)(nil)
