// Package tags probes local media files for display metadata: title and
// artist from their tags, duration and codec from the stream headers.
package tags

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// File extensions the probe understands.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

const id3Magic = "ID3"

// Tag holds the descriptive fields shown for a track.
type Tag struct {
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
}

// Author returns the artist, falling back to the album artist.
func (t Tag) Author() string {
	if t.Artist != "" {
		return t.Artist
	}
	return t.AlbumArtist
}

// AudioInfo contains stream properties.
type AudioInfo struct {
	Duration   time.Duration
	Format     string // MP3, FLAC, AAC, ALAC
	SampleRate int
	BitDepth   int
}

// Quality renders a short label such as "FLAC 24-bit/96kHz" or "MP3 44.1kHz".
// Lossy formats omit the bit depth.
func (a AudioInfo) Quality() string {
	if a.Format == "" {
		return ""
	}
	if a.SampleRate <= 0 {
		return a.Format
	}
	khz := strconv.FormatFloat(float64(a.SampleRate)/1000, 'f', -1, 64) + "kHz"
	if lossless(a.Format) && a.BitDepth > 0 {
		return fmt.Sprintf("%s %d-bit/%s", a.Format, a.BitDepth, khz)
	}
	return a.Format + " " + khz
}

func lossless(format string) bool {
	return format == "FLAC" || format == "ALAC"
}

// FileInfo combines Tag and AudioInfo.
type FileInfo struct {
	Tag
	AudioInfo
}

// IsSupported reports whether the path has an extension the probe reads.
func IsSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtM4A, ExtMP4:
		return true
	}
	return false
}

// taglibTags wraps a taglib result map.
type taglibTags map[string][]string

// get returns the first value for any of the given keys.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
