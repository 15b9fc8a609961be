package playlist

// Track describes one playable item. ID is its identity; the other fields
// are for display, except StreamURL which the media backend opens.
type Track struct {
	ID           string
	Name         string
	IsAudio      bool // no picture, so no picture-in-picture
	StreamURL    string
	ThumbnailURL string
	Author       string
	Duration     string // "03:41"
	FileSize     string // "4.2 MiB"
	Quality      string // "FLAC 24-bit/96kHz"
}

// DisplayName falls back to the media kind for unnamed tracks.
func (t Track) DisplayName() string {
	switch {
	case t.Name != "":
		return t.Name
	case t.IsAudio:
		return "Audio"
	default:
		return "Video"
	}
}
