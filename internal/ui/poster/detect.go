package poster

import "strings"

// EnvOverride forces ("kitty") or disables ("none") poster display.
const EnvOverride = "THEATER_IMAGE_PROTOCOL"

// Supported reports whether the terminal described by getenv speaks the
// Kitty graphics protocol.
func Supported(getenv func(string) string) bool {
	switch getenv(EnvOverride) {
	case "kitty":
		return true
	case "none":
		return false
	}

	// Contour inherits parent variables but has no Kitty support.
	if getenv("CONTOUR_PROFILE") != "" {
		return false
	}
	if getenv("KITTY_WINDOW_ID") != "" || getenv("GHOSTTY_RESOURCES_DIR") != "" {
		return true
	}
	if getenv("TERM_PROGRAM") == "WezTerm" {
		return true
	}
	// KONSOLE_VERSION is e.g. "220401"; graphics landed in 22.04
	if v := getenv("KONSOLE_VERSION"); len(v) >= 4 && v[:4] >= "2204" {
		return true
	}
	return strings.Contains(getenv("TERM"), "kitty")
}
