// Package playlist holds the track list, the playing position and the
// ordering policy (repeat and shuffle) that picks what plays next.
package playlist

import "slices"

// Playlist is an ordered track list. Out-of-range indices are reported,
// never clamped.
type Playlist struct {
	tracks []Track
}

func NewPlaylist(tracks ...Track) *Playlist {
	return &Playlist{tracks: slices.Clone(tracks)}
}

// Set replaces every track.
func (p *Playlist) Set(tracks []Track) {
	p.tracks = slices.Clone(tracks)
}

func (p *Playlist) valid(i int) bool {
	return i >= 0 && i < len(p.tracks)
}

// Track returns a copy of the track at index, or nil.
func (p *Playlist) Track(index int) *Track {
	if !p.valid(index) {
		return nil
	}
	t := p.tracks[index]
	return &t
}

func (p *Playlist) Len() int { return len(p.tracks) }

// Tracks returns a copy of the list, never nil.
func (p *Playlist) Tracks() []Track {
	return append([]Track{}, p.tracks...)
}

func (p *Playlist) Remove(index int) bool {
	if !p.valid(index) {
		return false
	}
	p.tracks = slices.Delete(p.tracks, index, index+1)
	return true
}

// Move takes the track at from out of the list and reinserts it at to.
func (p *Playlist) Move(from, to int) bool {
	if !p.valid(from) || !p.valid(to) {
		return false
	}
	t := p.tracks[from]
	p.tracks = slices.Insert(slices.Delete(p.tracks, from, from+1), to, t)
	return true
}
