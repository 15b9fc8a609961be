package tags

import (
	"go.senan.xyz/taglib"
)

// readWithTaglib covers M4A and FLAC files dhowden/tag cannot parse,
// such as ffmpeg-muxed MP4s.
func readWithTaglib(path string) (Tag, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return Tag{}, err
	}
	tags := taglibTags(raw)
	return Tag{
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist),
		AlbumArtist: tags.get(taglib.AlbumArtist),
		Album:       tags.get(taglib.Album),
	}, nil
}
