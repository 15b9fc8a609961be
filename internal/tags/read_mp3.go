package tags

import (
	"github.com/bogem/id3v2/v2"
)

func readMP3WithID3v2(path string) (Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Tag{}, err
	}
	defer id3tag.Close()

	return Tag{
		Title:       id3tag.Title(),
		Artist:      id3tag.Artist(),
		AlbumArtist: textFrame(id3tag, "TPE2"),
		Album:       id3tag.Album(),
	}, nil
}

func textFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}
