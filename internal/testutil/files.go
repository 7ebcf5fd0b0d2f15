package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ID3v1 builds the bytes of a file consisting only of an ID3v1.1 tag.
func ID3v1(title, artist, album, year string, track byte) []byte {
	b := make([]byte, 128)
	copy(b, "TAG")
	copy(b[3:33], title)
	copy(b[33:63], artist)
	copy(b[63:93], album)
	copy(b[93:97], year)
	// comment is b[97:127]; a zero at 125 marks b[126] as the track number
	b[126] = track
	b[127] = 17
	return b
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// MusicDir creates a directory holding two tagged Bowie tracks, a cover
// image and one untagged file, and returns its path.
func MusicDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	WriteFile(t, filepath.Join(root, "Bowie", "Low", "02.mp3"), ID3v1("Breaking Glass", "David Bowie", "Low", "1977", 2))
	WriteFile(t, filepath.Join(root, "Bowie", "Low", "01.mp3"), ID3v1("Speed of Life", "David Bowie", "Low", "1977", 1))
	WriteFile(t, filepath.Join(root, "Bowie", "Low", "cover.jpg"), []byte("not audio"))
	WriteFile(t, filepath.Join(root, "untagged.flac"), []byte("this is not a flac stream at all"))
	return root
}
