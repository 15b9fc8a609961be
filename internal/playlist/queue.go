package playlist

import "github.com/samber/lo"

// NoIndex is returned by navigation queries when there is no target.
const NoIndex = -1

// PlayingQueue wraps a Playlist with playback position and ordering policy.
//
// The current index always references the same logical track across
// reorders and removals. When shuffle is on, the shuffle order is a
// permutation of every valid index and is regenerated whenever the track
// list changes structurally.
type PlayingQueue struct {
	playlist     *Playlist
	currentIndex int // -1 if the queue is empty
	repeat       RepeatMode
	shuffle      bool
	order        []int // valid only while shuffle is on
	shuffler     Shuffler
}

// NewQueue creates a new empty playing queue.
func NewQueue() *PlayingQueue {
	return NewQueueWithShuffler(NewFisherYates())
}

// NewQueueWithShuffler creates an empty queue drawing shuffle orders from s.
func NewQueueWithShuffler(s Shuffler) *PlayingQueue {
	return &PlayingQueue{
		playlist:     NewPlaylist(),
		currentIndex: NoIndex,
		shuffler:     s,
	}
}

// Current returns the currently playing track, or nil if none.
func (q *PlayingQueue) Current() *Track {
	return q.playlist.Track(q.currentIndex)
}

// CurrentIndex returns the index of the currently playing track (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// Track returns the track at index, or nil if out of bounds.
func (q *PlayingQueue) Track(index int) *Track {
	return q.playlist.Track(index)
}

// NextIndex returns the index that follows the current one under the active
// ordering and repeat policy, or NoIndex.
// RepeatOne does not affect the result.
func (q *PlayingQueue) NextIndex() int {
	return q.step(1)
}

// PrevIndex returns the index that precedes the current one under the
// active ordering and repeat policy, or NoIndex.
func (q *PlayingQueue) PrevIndex() int {
	return q.step(-1)
}

func (q *PlayingQueue) step(dir int) int {
	n := q.playlist.Len()
	if n == 0 || q.currentIndex < 0 {
		return NoIndex
	}

	if !q.shuffle {
		return q.wrap(q.currentIndex+dir, n, func(i int) int { return i })
	}

	pos := lo.IndexOf(q.order, q.currentIndex)
	if pos < 0 {
		return NoIndex
	}
	return q.wrap(pos+dir, n, func(i int) int { return q.order[i] })
}

// wrap resolves a candidate position, wrapping at either end only under
// RepeatAll. at maps a position to a track index.
func (q *PlayingQueue) wrap(pos, n int, at func(int) int) int {
	switch {
	case pos >= n:
		if q.repeat != RepeatAll {
			return NoIndex
		}
		return at(0)
	case pos < 0:
		if q.repeat != RepeatAll {
			return NoIndex
		}
		return at(n - 1)
	default:
		return at(pos)
	}
}

// HasNext reports whether NextIndex has a target.
func (q *PlayingQueue) HasNext() bool {
	return q.NextIndex() != NoIndex
}

// HasPrev reports whether PrevIndex has a target.
func (q *PlayingQueue) HasPrev() bool {
	return q.PrevIndex() != NoIndex
}

// JumpTo sets the current index to the specified position.
// Returns the track at that position, or nil if invalid.
func (q *PlayingQueue) JumpTo(index int) *Track {
	if index < 0 || index >= q.playlist.Len() {
		return nil
	}
	q.currentIndex = index
	return q.Current()
}

// Replace clears the queue, adds tracks, and positions on start, clamped
// into range. Returns the track at the new position.
func (q *PlayingQueue) Replace(start int, tracks ...Track) *Track {
	q.playlist.Set(tracks)
	q.currentIndex = NoIndex
	if len(tracks) > 0 {
		q.currentIndex = lo.Clamp(start, 0, len(tracks)-1)
	}
	q.reshuffle()
	return q.Current()
}

// Move moves the track at from to to and keeps the current index on the
// same logical track. Returns false for out-of-range or equal indices.
func (q *PlayingQueue) Move(from, to int) bool {
	if from == to || !q.playlist.Move(from, to) {
		return false
	}

	cur := q.currentIndex
	switch {
	case from == cur:
		q.currentIndex = to
	case from < cur && cur <= to:
		q.currentIndex--
	case to <= cur && cur < from:
		q.currentIndex++
	}

	q.reshuffle()
	return true
}

// RemoveAt removes the track at index. Removing the last remaining track is
// rejected. removedCurrent reports that the playing track was removed, in
// which case the current index now points at the track that took its slot,
// or at the new last track.
func (q *PlayingQueue) RemoveAt(index int) (removedCurrent, ok bool) {
	if q.playlist.Len() <= 1 {
		return false, false
	}
	if !q.playlist.Remove(index) {
		return false, false
	}

	switch {
	case index == q.currentIndex:
		removedCurrent = true
		q.currentIndex = min(index, q.playlist.Len()-1)
	case index < q.currentIndex:
		q.currentIndex--
	}

	q.reshuffle()
	return removedCurrent, true
}

// Tracks returns all tracks in the queue.
func (q *PlayingQueue) Tracks() []Track {
	return q.playlist.Tracks()
}

// Len returns the number of tracks in the queue.
func (q *PlayingQueue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *PlayingQueue) IsEmpty() bool {
	return q.playlist.Len() == 0
}

// RepeatMode returns the current repeat mode.
func (q *PlayingQueue) RepeatMode() RepeatMode {
	return q.repeat
}

// SetRepeatMode sets the repeat mode.
func (q *PlayingQueue) SetRepeatMode(m RepeatMode) {
	q.repeat = m
}

// CycleRepeatMode advances none → all → one → none and returns the new mode.
func (q *PlayingQueue) CycleRepeatMode() RepeatMode {
	q.repeat = q.repeat.Next()
	return q.repeat
}

// Shuffle reports whether shuffled ordering is active.
func (q *PlayingQueue) Shuffle() bool {
	return q.shuffle
}

// SetShuffle switches ordering mode. Turning shuffle on always draws a fresh
// permutation, even if it was already on.
func (q *PlayingQueue) SetShuffle(enabled bool) {
	q.shuffle = enabled
	if !enabled {
		q.order = nil
		return
	}
	q.reshuffle()
}

// ToggleShuffle flips the ordering mode and returns the new state.
func (q *PlayingQueue) ToggleShuffle() bool {
	q.SetShuffle(!q.shuffle)
	return q.shuffle
}

// ShuffleOrder returns a copy of the permutation, or nil when sequential.
func (q *PlayingQueue) ShuffleOrder() []int {
	if !q.shuffle {
		return nil
	}
	order := make([]int, len(q.order))
	copy(order, q.order)
	return order
}

func (q *PlayingQueue) reshuffle() {
	if !q.shuffle {
		return
	}
	q.order = q.shuffler.Permutation(q.playlist.Len())
}
