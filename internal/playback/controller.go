// internal/playback/controller.go
package playback

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/theater/internal/playlist"
	"github.com/llehouerou/theater/internal/state"
)

const (
	// DefaultCountdown is the auto-advance countdown length in ticks.
	DefaultCountdown = 3
	// DefaultTickInterval is the auto-advance countdown tick.
	DefaultTickInterval = time.Second
)

// Mode describes what the controller is playing.
type Mode int

const (
	ModeIdle     Mode = iota // no tracks
	ModeSingle               // one stream, no sequencing
	ModePlaylist             // ordered queue with navigation
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeSingle:
		return "single"
	case ModePlaylist:
		return "playlist"
	default:
		return "unknown"
	}
}

// Source is the initialization input of a controller.
type Source struct {
	Name       string
	Tracks     []playlist.Track
	StartIndex int
	Single     bool
}

// SingleSource plays one track without playlist sequencing.
func SingleSource(t playlist.Track) Source {
	return Source{Name: t.DisplayName(), Tracks: []playlist.Track{t}, Single: true}
}

// Controller sequences a queue of tracks over an Engine: it decides what
// plays next on ended, runs the auto-advance countdown, and applies
// reorder/remove edits while keeping the playing track stable.
//
// Every handler (command, ended notification, countdown tick) runs to
// completion under one mutex. Lock order is Controller then Engine.
type Controller struct {
	mu     sync.Mutex
	engine *Engine
	prefs  *state.Preferences
	queue  *playlist.PlayingQueue
	log    logrus.FieldLogger

	name     string
	mode     Mode
	autoplay bool
	sidebar  bool

	countdown     int // -1 when inactive
	countdownLen  int
	countdownGen  uint64
	countdownStop chan struct{}
	tick          time.Duration

	onClose  func()
	started  bool
	stopped  bool
	shuffler playlist.Shuffler

	subs   []*Subscription
	subsMu sync.Mutex
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = log }
}

// WithCountdownDelay sets the auto-advance countdown length in ticks.
// Zero or less advances immediately.
func WithCountdownDelay(ticks int) Option {
	return func(c *Controller) { c.countdownLen = ticks }
}

// WithTickInterval sets the countdown tick interval.
func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.tick = d
		}
	}
}

// WithOnClose sets the host callback invoked by Close.
func WithOnClose(fn func()) Option {
	return func(c *Controller) { c.onClose = fn }
}

// WithShuffler sets the permutation source used for shuffle orders.
func WithShuffler(s playlist.Shuffler) Option {
	return func(c *Controller) { c.shuffler = s }
}

// New creates a controller for src. Repeat, shuffle, autoplay and sidebar
// start from prefs. Nothing is bound until Start.
func New(engine *Engine, prefs *state.Preferences, src Source, opts ...Option) *Controller {
	c := &Controller{
		engine:       engine,
		prefs:        prefs,
		log:          logrus.StandardLogger(),
		name:         src.Name,
		countdown:    -1,
		countdownLen: DefaultCountdown,
		tick:         DefaultTickInterval,
		shuffler:     playlist.NewFisherYates(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", "controller")

	c.queue = playlist.NewQueueWithShuffler(c.shuffler)
	c.queue.SetRepeatMode(prefs.Repeat())
	c.queue.Replace(src.StartIndex, src.Tracks...)
	c.queue.SetShuffle(prefs.Shuffle())
	c.autoplay = prefs.Autoplay()
	c.sidebar = prefs.Sidebar()

	switch {
	case c.queue.IsEmpty():
		c.mode = ModeIdle
	case src.Single || c.queue.Len() == 1:
		c.mode = ModeSingle
	default:
		c.mode = ModePlaylist
	}
	return c
}

// Start registers for engine notifications and binds the current track
// without starting playback. Calling Start again is a no-op.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.stopped {
		return
	}
	c.started = true

	c.engine.OnChange(c.publishStatus)
	c.engine.OnError(c.publishError)
	c.engine.OnEnded(c.handleEnded)

	c.log.WithFields(logrus.Fields{
		"mode":   c.mode,
		"tracks": c.queue.Len(),
	}).Info("start")

	c.publishModeLocked()
	c.publishQueueLocked()
	if cur := c.queue.Current(); cur != nil {
		c.engine.Bind(*cur, false)
		c.publishTrack(TrackChange{
			Current:       cur,
			PreviousIndex: playlist.NoIndex,
			Index:         c.queue.CurrentIndex(),
		})
	}
}

// Stop cancels the countdown, releases the media and closes every
// subscription. Calling Stop again is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.cancelCountdownLocked()
	c.engine.OnEnded(nil)
	c.engine.OnError(nil)
	c.engine.Unbind()
	c.engine.OnChange(nil)
	c.mu.Unlock()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsMu.Unlock()
}

// Close asks the host to leave the player. It has no playback side effect;
// the host is expected to call Stop when it tears the player down.
func (c *Controller) Close() {
	c.mu.Lock()
	fn := c.onClose
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	if c.stopped {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Engine returns the playback engine for media commands.
func (c *Controller) Engine() *Engine { return c.engine }

// Status returns the engine status.
func (c *Controller) Status() Status { return c.engine.Status() }

// Queries

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) PlaylistName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *Controller) Tracks() []playlist.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Tracks()
}

func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.CurrentIndex()
}

// CurrentTrack returns a copy of the current track, or nil.
func (c *Controller) CurrentTrack() *playlist.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Current()
}

// NextIndex returns the index NextTrack would load, or playlist.NoIndex.
func (c *Controller) NextIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextIndexLocked()
}

// PrevIndex returns the index PrevTrack would load, or playlist.NoIndex.
func (c *Controller) PrevIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prevIndexLocked()
}

func (c *Controller) nextIndexLocked() int {
	if c.mode != ModePlaylist {
		return playlist.NoIndex
	}
	return c.queue.NextIndex()
}

func (c *Controller) prevIndexLocked() int {
	if c.mode != ModePlaylist {
		return playlist.NoIndex
	}
	return c.queue.PrevIndex()
}

func (c *Controller) HasNext() bool { return c.NextIndex() != playlist.NoIndex }

func (c *Controller) HasPrev() bool { return c.PrevIndex() != playlist.NoIndex }

// NextUp returns the track the next advance would load, or nil.
func (c *Controller) NextUp() *playlist.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Track(c.nextIndexLocked())
}

func (c *Controller) RepeatMode() playlist.RepeatMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.RepeatMode()
}

func (c *Controller) Shuffle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Shuffle()
}

// ShuffleOrder returns a copy of the shuffle permutation, or nil.
func (c *Controller) ShuffleOrder() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.ShuffleOrder()
}

func (c *Controller) Autoplay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoplay
}

func (c *Controller) SidebarVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sidebar
}

// Countdown returns the remaining auto-advance ticks, or -1 when inactive.
func (c *Controller) Countdown() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countdown
}

// Transitions

// NextTrack loads and starts the next track. Returns false when there is
// none or the controller is not in playlist mode.
func (c *Controller) NextTrack() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModePlaylist {
		return false
	}
	c.cancelCountdownLocked()
	next := c.queue.NextIndex()
	if next == playlist.NoIndex {
		return false
	}
	c.loadLocked(next, true)
	return true
}

// PrevTrack loads and starts the previous track.
func (c *Controller) PrevTrack() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModePlaylist {
		return false
	}
	c.cancelCountdownLocked()
	prev := c.queue.PrevIndex()
	if prev == playlist.NoIndex {
		return false
	}
	c.loadLocked(prev, true)
	return true
}

// PlayTrackAt loads and starts the track at index. Selecting the current
// track is a no-op.
func (c *Controller) PlayTrackAt(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModePlaylist || index == c.queue.CurrentIndex() {
		return false
	}
	if c.queue.Track(index) == nil {
		return false
	}
	c.cancelCountdownLocked()
	c.loadLocked(index, true)
	return true
}

// CancelAutoNext stops a running countdown without advancing.
func (c *Controller) CancelAutoNext() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelCountdownLocked()
}

// SkipAutoNext stops a running countdown and advances immediately.
// Returns false when no countdown was running.
func (c *Controller) SkipAutoNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.countdown < 0 {
		return false
	}
	c.cancelCountdownLocked()
	next := c.nextIndexLocked()
	if next == playlist.NoIndex {
		return false
	}
	c.loadLocked(next, true)
	return true
}

// loadLocked makes index current and binds its track.
func (c *Controller) loadLocked(index int, autoStart bool) {
	prevIndex := c.queue.CurrentIndex()
	prev := c.queue.Current()
	cur := c.queue.JumpTo(index)
	if cur == nil {
		return
	}
	c.log.WithFields(logrus.Fields{
		"index":      index,
		"track":      cur.ID,
		"auto_start": autoStart,
	}).Debug("load track")

	c.engine.Bind(*cur, autoStart)
	c.publishTrack(TrackChange{
		Previous:      prev,
		Current:       cur,
		PreviousIndex: prevIndex,
		Index:         index,
		AutoStart:     autoStart,
	})
}

// handleEnded reacts to the end of the binding of generation gen.
func (c *Controller) handleEnded(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || gen != c.engine.Generation() {
		return
	}
	cur := c.queue.Current()
	if cur == nil {
		return
	}
	c.publishEnded(EndedEvent{Track: cur, Index: c.queue.CurrentIndex()})

	if c.queue.RepeatMode() == playlist.RepeatOne {
		c.loadLocked(c.queue.CurrentIndex(), true)
		return
	}
	if c.mode != ModePlaylist || !c.autoplay {
		return
	}
	if c.queue.NextIndex() == playlist.NoIndex {
		return
	}
	if c.countdownLen <= 0 {
		c.loadLocked(c.queue.NextIndex(), true)
		return
	}
	c.startCountdownLocked()
}

// Countdown

func (c *Controller) startCountdownLocked() {
	c.cancelCountdownLocked()
	c.countdownGen++
	gen := c.countdownGen
	stop := make(chan struct{})
	c.countdownStop = stop
	c.countdown = c.countdownLen
	c.publishCountdownLocked()

	go c.runCountdown(gen, stop)
}

func (c *Controller) runCountdown(gen uint64, stop <-chan struct{}) {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !c.tickCountdown(gen) {
				return
			}
		}
	}
}

// tickCountdown advances the countdown of generation gen. Returns false once
// that countdown is over.
func (c *Controller) tickCountdown(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.countdownGen || c.countdown < 0 {
		return false
	}

	c.countdown--
	c.publishCountdownLocked()
	if c.countdown > 0 {
		return true
	}

	c.cancelCountdownLocked()
	if next := c.nextIndexLocked(); next != playlist.NoIndex {
		c.loadLocked(next, true)
	}
	return false
}

// cancelCountdownLocked stops any running countdown. An in-flight tick of
// the cancelled countdown is discarded by the generation check.
func (c *Controller) cancelCountdownLocked() {
	if c.countdownStop != nil {
		close(c.countdownStop)
		c.countdownStop = nil
	}
	c.countdownGen++
	if c.countdown >= 0 {
		c.countdown = -1
		c.publishCountdownLocked()
	}
}

// Structural edits

// MoveTrack moves the track at from to position to. The playing track keeps
// playing and the current index follows it.
func (c *Controller) MoveTrack(from, to int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModePlaylist || !c.queue.Move(from, to) {
		return false
	}
	c.publishQueueLocked()
	c.publishCountdownIfActiveLocked()
	return true
}

// MoveTrackBy moves the track at index one slot up (dir < 0) or down.
func (c *Controller) MoveTrackBy(index, dir int) bool {
	switch {
	case dir < 0:
		return c.MoveTrack(index, index-1)
	case dir > 0:
		return c.MoveTrack(index, index+1)
	default:
		return false
	}
}

// RemoveTrack removes the track at index. The last remaining track cannot be
// removed. Removing the playing track starts the track that takes its slot,
// or the new last track.
func (c *Controller) RemoveTrack(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModePlaylist {
		return false
	}
	prev := c.queue.Current()
	removedCurrent, ok := c.queue.RemoveAt(index)
	if !ok {
		return false
	}
	c.publishQueueLocked()
	if removedCurrent {
		c.cancelCountdownLocked()
		cur := c.queue.Current()
		c.engine.Bind(*cur, true)
		c.publishTrack(TrackChange{
			Previous:      prev,
			Current:       cur,
			PreviousIndex: index,
			Index:         c.queue.CurrentIndex(),
			AutoStart:     true,
		})
		return true
	}
	c.publishCountdownIfActiveLocked()
	return true
}

// Toggles

// ToggleRepeat cycles none, all, one and persists the result.
func (c *Controller) ToggleRepeat() playlist.RepeatMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.queue.CycleRepeatMode()
	c.prefs.SetRepeat(m)
	c.publishModeLocked()
	c.publishCountdownIfActiveLocked()
	return m
}

// SetRepeatMode sets and persists the repeat mode.
func (c *Controller) SetRepeatMode(m playlist.RepeatMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue.SetRepeatMode(m)
	c.prefs.SetRepeat(m)
	c.publishModeLocked()
	c.publishCountdownIfActiveLocked()
}

// ToggleShuffle flips shuffle, drawing a fresh order when turned on.
func (c *Controller) ToggleShuffle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	on := c.queue.ToggleShuffle()
	c.prefs.SetShuffle(on)
	c.publishModeLocked()
	c.publishCountdownIfActiveLocked()
	return on
}

// SetShuffle sets and persists shuffle. Enabling always draws a fresh order.
func (c *Controller) SetShuffle(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue.SetShuffle(on)
	c.prefs.SetShuffle(on)
	c.publishModeLocked()
	c.publishCountdownIfActiveLocked()
}

// ToggleAutoplay flips autoplay. Turning it off cancels a running countdown.
func (c *Controller) ToggleAutoplay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoplay = !c.autoplay
	if !c.autoplay {
		c.cancelCountdownLocked()
	}
	c.prefs.SetAutoplay(c.autoplay)
	c.publishModeLocked()
	return c.autoplay
}

// ToggleSidebar flips the playlist panel visibility preference.
func (c *Controller) ToggleSidebar() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sidebar = !c.sidebar
	c.prefs.SetSidebar(c.sidebar)
	c.publishModeLocked()
	return c.sidebar
}

// Publishing

func (c *Controller) broadcast(fn func(*Subscription)) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, sub := range c.subs {
		fn(sub)
	}
}

// publishStatus and publishError run from engine callbacks, sometimes while
// c.mu is held by the caller of an engine command, so they must not take c.mu.
func (c *Controller) publishStatus(s Status) {
	c.broadcast(func(sub *Subscription) { sub.sendStatus(s) })
}

func (c *Controller) publishError(e ErrorEvent) {
	c.log.WithField("reason", e.Reason).Warn("playback error")
	c.broadcast(func(sub *Subscription) { sub.sendError(e) })
}

func (c *Controller) publishTrack(e TrackChange) {
	c.broadcast(func(sub *Subscription) { sub.sendTrack(e) })
}

func (c *Controller) publishEnded(e EndedEvent) {
	c.broadcast(func(sub *Subscription) { sub.sendEnded(e) })
}

func (c *Controller) publishQueueLocked() {
	e := QueueChange{Tracks: c.queue.Tracks(), Index: c.queue.CurrentIndex()}
	c.broadcast(func(sub *Subscription) { sub.sendQueue(e) })
}

func (c *Controller) publishModeLocked() {
	e := ModeChange{
		RepeatMode: c.queue.RepeatMode(),
		Shuffle:    c.queue.Shuffle(),
		Autoplay:   c.autoplay,
		Sidebar:    c.sidebar,
	}
	c.broadcast(func(sub *Subscription) { sub.sendMode(e) })
}

func (c *Controller) publishCountdownLocked() {
	e := CountdownChange{Remaining: c.countdown}
	if c.countdown >= 0 {
		e.NextUp = c.queue.Track(c.nextIndexLocked())
	}
	c.broadcast(func(sub *Subscription) { sub.sendCountdown(e) })
}

// publishCountdownIfActiveLocked refreshes NextUp after edits that change
// what the countdown will load.
func (c *Controller) publishCountdownIfActiveLocked() {
	if c.countdown >= 0 {
		c.publishCountdownLocked()
	}
}
