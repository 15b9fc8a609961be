// Package icons provides the glyphs used by the player display in three
// styles: nerd font, plain unicode, and ASCII.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for one style.
type Icons struct {
	Play       string
	Pause      string
	Audio      string
	Video      string
	VolumeOff  string
	VolumeLow  string
	VolumeHigh string
	Shuffle    string
	RepeatAll  string
	RepeatOne  string
	Autoplay   string
	Fullscreen string
	PiP        string
}

var (
	nerdIcons = Icons{
		Play:       "\uf04b",     // nf-fa-play
		Pause:      "\uf04c",     // nf-fa-pause
		Audio:      "\uf001",     // nf-fa-music
		Video:      "\uf03d",     // nf-fa-video_camera
		VolumeOff:  "\U000F0581", // nf-md-volume_off
		VolumeLow:  "\U000F0580", // nf-md-volume_medium
		VolumeHigh: "\U000F057E", // nf-md-volume_high
		Shuffle:    "\U000F049F", // nf-md-shuffle
		RepeatAll:  "\U000F0456", // nf-md-repeat
		RepeatOne:  "\U000F0458", // nf-md-repeat_once
		Autoplay:   "\U000F040E", // nf-md-play_pause
		Fullscreen: "\U000F0293", // nf-md-fullscreen
		PiP:        "\U000F0F9E", // nf-md-picture_in_picture_bottom_right
	}

	unicodeIcons = Icons{
		Play:       "▶",
		Pause:      "⏸",
		Audio:      "🎵",
		Video:      "🎬",
		VolumeOff:  "🔇",
		VolumeLow:  "🔉",
		VolumeHigh: "🔊",
		Shuffle:    "🔀",
		RepeatAll:  "🔁",
		RepeatOne:  "🔂",
		Autoplay:   "⏭",
		Fullscreen: "⛶",
		PiP:        "⧉",
	}

	noneIcons = Icons{
		Play:       ">",
		Pause:      "||",
		Audio:      "",
		Video:      "",
		VolumeOff:  "[mute]",
		VolumeLow:  "[vol-]",
		VolumeHigh: "[vol+]",
		Shuffle:    "[S]",
		RepeatAll:  "[R]",
		RepeatOne:  "[1]",
		Autoplay:   "[A]",
		Fullscreen: "[F]",
		PiP:        "[P]",
	}

	// current holds the active icon set
	current = unicodeIcons
)

// Init selects the icon style. Unknown styles fall back to unicode.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleNone:
		current = noneIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = unicodeIcons
	}
}

// Current returns the active icon set.
func Current() Icons {
	return current
}

// VolumeLevel is the coarse loudness shown by the volume icon.
type VolumeLevel int

const (
	VolumeOff VolumeLevel = iota
	VolumeLow
	VolumeHigh
)

// lowThreshold separates the low and high volume icons.
const lowThreshold = 0.5

// LevelFor returns the icon level for a volume: off when muted or silent,
// low below one half, high otherwise.
func LevelFor(volume float64, muted bool) VolumeLevel {
	switch {
	case muted || volume <= 0:
		return VolumeOff
	case volume < lowThreshold:
		return VolumeLow
	}
	return VolumeHigh
}

// Volume returns the icon for a volume level.
func Volume(level VolumeLevel) string {
	switch level {
	case VolumeOff:
		return current.VolumeOff
	case VolumeLow:
		return current.VolumeLow
	case VolumeHigh:
		return current.VolumeHigh
	}
	return current.VolumeHigh
}

// PlayState returns the play or pause glyph.
func PlayState(playing bool) string {
	if playing {
		return current.Play
	}
	return current.Pause
}

// Media returns the audio or video glyph.
func Media(audio bool) string {
	if audio {
		return current.Audio
	}
	return current.Video
}

// FormatMedia prefixes name with the media glyph, when the style has one.
func FormatMedia(name string, audio bool) string {
	icon := Media(audio)
	if icon == "" {
		return name
	}
	return icon + " " + name
}

func Shuffle() string    { return current.Shuffle }
func RepeatAll() string  { return current.RepeatAll }
func RepeatOne() string  { return current.RepeatOne }
func Autoplay() string   { return current.Autoplay }
func Fullscreen() string { return current.Fullscreen }
func PiP() string        { return current.PiP }
