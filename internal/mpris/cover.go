package mpris

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/llehouerou/theater/internal/playlist"
)

// coverNames lists common artwork filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"poster.jpg", "poster.png", "poster.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// FindAlbumArt looks for artwork in the same directory as a local media file.
// Returns the path to the art file, or empty string if not found.
func FindAlbumArt(mediaPath string) string {
	dir := filepath.Dir(mediaPath)
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ArtworkURL returns the artwork URL for a track: its thumbnail when set,
// otherwise a cover file next to a local stream.
func ArtworkURL(t playlist.Track) string {
	if t.ThumbnailURL != "" {
		if p, ok := LocalPath(t.ThumbnailURL); ok {
			return "file://" + p
		}
		return t.ThumbnailURL
	}
	if p, ok := LocalPath(t.StreamURL); ok {
		if art := FindAlbumArt(p); art != "" {
			return "file://" + art
		}
	}
	return ""
}

// LocalPath reports whether u names a local file and returns its path.
func LocalPath(u string) (string, bool) {
	if u == "" {
		return "", false
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return u, true
	}
	switch parsed.Scheme {
	case "":
		return u, true
	case "file":
		return parsed.Path, true
	}
	// Windows drive letters parse as a one-letter scheme.
	if len(parsed.Scheme) == 1 {
		return u, true
	}
	return "", false
}
