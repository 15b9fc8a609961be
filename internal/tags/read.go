package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Read reads tag metadata from a media file. dhowden/tag is tried first;
// files it rejects fall back to a format-specific reader.
func Read(path string) (Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tag{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		switch strings.ToLower(filepath.Ext(path)) {
		case ExtMP3:
			// dhowden/tag trips on some UTF-16 frames
			return readMP3WithID3v2(path)
		case ExtM4A, ExtMP4, ExtFLAC:
			return readWithTaglib(path)
		}
		return Tag{}, err
	}

	return Tag{
		Title:       m.Title(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Album:       m.Album(),
	}, nil
}

// Probe reads tags and stream properties. A file whose tags cannot be read
// still reports its stream properties; the error is returned only when
// neither could be read.
func Probe(path string) (FileInfo, error) {
	t, tagErr := Read(path)
	audio, err := ReadAudioInfo(path)
	if err != nil {
		if tagErr != nil {
			return FileInfo{}, err
		}
		return FileInfo{Tag: t}, nil
	}
	return FileInfo{Tag: t, AudioInfo: audio}, nil
}
