package notify

import (
	"github.com/llehouerou/theater/internal/mpris"
	"github.com/llehouerou/theater/internal/playlist"
)

// IconFor returns a local image path to show with a track's notification:
// a local thumbnail, or a cover file next to a local stream.
func IconFor(t playlist.Track) string {
	if p, ok := mpris.LocalPath(t.ThumbnailURL); ok {
		return p
	}
	if p, ok := mpris.LocalPath(t.StreamURL); ok {
		return mpris.FindAlbumArt(p)
	}
	return ""
}
