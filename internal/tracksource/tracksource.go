// Package tracksource turns the command-line input into a playback source:
// a stream URL or local media file plays as a single track, a .toml file is
// read as a playlist.
package tracksource

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/theater/internal/playback"
	"github.com/llehouerou/theater/internal/player"
	"github.com/llehouerou/theater/internal/playlist"
	"github.com/llehouerou/theater/internal/tags"
	"github.com/llehouerou/theater/internal/ui/render"
)

const playlistExt = ".toml"

// ErrEmpty is returned when the input holds no tracks.
var ErrEmpty = errors.New("no tracks")

// playlistFile is the on-disk playlist layout.
type playlistFile struct {
	Name   string       `koanf:"name"`
	Start  int          `koanf:"start"`
	Tracks []trackEntry `koanf:"tracks"`
}

type trackEntry struct {
	ID        string `koanf:"id"`
	Name      string `koanf:"name"`
	URL       string `koanf:"url"`
	Audio     *bool  `koanf:"audio"` // default: inferred from the URL extension
	Thumbnail string `koanf:"thumbnail"`
	Author    string `koanf:"author"`
	Duration  string `koanf:"duration"`
	FileSize  string `koanf:"file_size"`
	SizeBytes int64  `koanf:"size_bytes"`
	Quality   string `koanf:"quality"`
}

// Load resolves arg into a playback source.
func Load(arg string) (playback.Source, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return playback.Source{}, ErrEmpty
	}
	if isRemote(arg) {
		return playback.SingleSource(remoteTrack(arg)), nil
	}

	p := expandPath(arg)
	info, err := os.Stat(p)
	if err != nil {
		return playback.Source{}, err
	}
	if info.IsDir() {
		return playback.Source{}, fmt.Errorf("%s: is a directory", p)
	}
	if strings.EqualFold(filepath.Ext(p), playlistExt) {
		return LoadPlaylist(p)
	}

	t := playlist.Track{
		ID:        p,
		StreamURL: p,
		IsAudio:   player.IsAudioURL(p),
		FileSize:  humanize.IBytes(uint64(info.Size())), //nolint:gosec // file sizes are non-negative
	}
	fillFromFile(&t, p)
	return playback.SingleSource(t), nil
}

// LoadPlaylist reads a .toml playlist file. Relative track paths resolve
// against the file's directory.
func LoadPlaylist(p string) (playback.Source, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
		return playback.Source{}, fmt.Errorf("load %s: %w", p, err)
	}

	var pf playlistFile
	if err := k.Unmarshal("", &pf); err != nil {
		return playback.Source{}, fmt.Errorf("parse %s: %w", p, err)
	}
	if len(pf.Tracks) == 0 {
		return playback.Source{Name: pf.Name}, ErrEmpty
	}

	base := filepath.Dir(p)
	tracks := make([]playlist.Track, 0, len(pf.Tracks))
	for i, e := range pf.Tracks {
		t, err := e.track(base, i)
		if err != nil {
			return playback.Source{}, fmt.Errorf("%s: %w", p, err)
		}
		tracks = append(tracks, t)
	}

	name := pf.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	return playback.Source{Name: name, Tracks: tracks, StartIndex: pf.Start}, nil
}

func (e trackEntry) track(base string, i int) (playlist.Track, error) {
	if strings.TrimSpace(e.URL) == "" {
		return playlist.Track{}, fmt.Errorf("track %d: missing url", i+1)
	}

	t := playlist.Track{
		ID:           e.ID,
		Name:         e.Name,
		StreamURL:    e.URL,
		ThumbnailURL: e.Thumbnail,
		Author:       e.Author,
		Duration:     e.Duration,
		FileSize:     e.FileSize,
		Quality:      e.Quality,
	}
	if t.ID == "" {
		t.ID = strconv.Itoa(i + 1)
	}

	local := !isRemote(e.URL)
	if local {
		t.StreamURL = resolveLocal(base, e.URL)
	}
	if t.ThumbnailURL != "" && !isRemote(t.ThumbnailURL) {
		t.ThumbnailURL = resolveLocal(base, t.ThumbnailURL)
	}

	if e.Audio != nil {
		t.IsAudio = *e.Audio
	} else {
		t.IsAudio = player.IsAudioURL(t.StreamURL)
	}

	if t.FileSize == "" && e.SizeBytes > 0 {
		t.FileSize = humanize.IBytes(uint64(e.SizeBytes))
	}

	if local {
		fillFromFile(&t, t.StreamURL)
	} else if t.Name == "" {
		t.Name = nameFromURL(t.StreamURL)
	}
	return t, nil
}

func remoteTrack(raw string) playlist.Track {
	return playlist.Track{
		ID:        raw,
		Name:      nameFromURL(raw),
		StreamURL: raw,
		IsAudio:   player.IsAudioURL(raw),
	}
}

// fillFromFile fills missing display fields from the file's tags and
// stream headers. The name falls back to the file name.
func fillFromFile(t *playlist.Track, p string) {
	if tags.IsSupported(p) {
		if info, err := tags.Probe(p); err == nil {
			if t.Name == "" {
				t.Name = info.Title
			}
			if t.Author == "" {
				t.Author = info.Author()
			}
			if t.Duration == "" && info.Duration > 0 {
				t.Duration = render.FormatTime(info.Duration)
			}
			if t.Quality == "" {
				t.Quality = info.Quality()
			}
		}
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
}

func isRemote(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "file":
		return true
	}
	return false
}

func nameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	base, err := url.PathUnescape(path.Base(u.Path))
	if err != nil || base == "." || base == "/" {
		return u.Host
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// resolveLocal expands ~ and anchors relative paths at base.
func resolveLocal(base, p string) string {
	p = expandPath(p)
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return p
}

func expandPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}
