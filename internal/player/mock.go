// internal/player/mock.go
package player

import (
	"sync"
	"time"
)

// Mock is a test double for Media.
type Mock struct {
	mu        sync.Mutex
	url       string
	state     State
	volume    float64
	muted     bool
	rate      float64
	playErr   error
	playCalls int
	seekCalls []time.Duration
	events    chan Event
}

// NewMock creates a mock handle for url in the Loading state.
func NewMock(url string) *Mock {
	return &Mock{
		url:    url,
		state:  Loading,
		volume: 1,
		rate:   1,
		events: make(chan Event, 64),
	}
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	if m.playErr != nil {
		return m.playErr
	}
	if m.state == Closed {
		return ErrClosed
	}
	m.state = Playing
	return nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Seek(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, pos)
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = level
}

func (m *Mock) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

func (m *Mock) SetRate(rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rate = rate
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Closed
	return nil
}

// Test helpers

// Emit queues events as if the media produced them.
func (m *Mock) Emit(events ...Event) {
	for _, e := range events {
		m.events <- e
	}
}

// Ready emits the loadedmetadata and canplay pair for a source of length d.
func (m *Mock) Ready(d time.Duration) {
	m.mu.Lock()
	if m.state == Loading {
		m.state = Paused
	}
	m.mu.Unlock()
	m.Emit(Event{Kind: EventLoadedMetadata, Duration: d}, Event{Kind: EventCanPlay})
}

// Finish emits ended.
func (m *Mock) Finish() {
	m.mu.Lock()
	m.state = Ended
	m.mu.Unlock()
	m.Emit(Event{Kind: EventEnded})
}

func (m *Mock) URL() string { return m.url }

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.seekCalls))
	copy(out, m.seekCalls)
	return out
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

func (m *Mock) Rate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rate
}

// Verify Mock implements Media at compile time.
var _ Media = (*Mock)(nil)

// MockOpener hands out Mock handles and remembers each one.
type MockOpener struct {
	mu      sync.Mutex
	handles []*Mock
	errs    map[string]error
}

// NewMockOpener creates an opener that succeeds for every URL.
func NewMockOpener() *MockOpener {
	return &MockOpener{errs: make(map[string]error)}
}

func (o *MockOpener) Open(url string) (Media, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.errs[url]; err != nil {
		return nil, err
	}
	m := NewMock(url)
	o.handles = append(o.handles, m)
	return m, nil
}

// FailOn makes Open return err for url.
func (o *MockOpener) FailOn(url string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.errs[url] = err
}

// Handles returns every handle opened so far, oldest first.
func (o *MockOpener) Handles() []*Mock {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]*Mock, len(o.handles))
	copy(out, o.handles)
	return out
}

// Last returns the most recently opened handle, or nil.
func (o *MockOpener) Last() *Mock {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.handles) == 0 {
		return nil
	}
	return o.handles[len(o.handles)-1]
}

// Verify MockOpener implements Opener at compile time.
var _ Opener = (*MockOpener)(nil)

// MockCapabilities records presentation requests.
type MockCapabilities struct {
	PiPSupported bool
	Deny         error // returned by every request when set

	Fullscreen       bool
	PictureInPicture bool
}

func (c *MockCapabilities) RequestFullscreen() error {
	if c.Deny != nil {
		return c.Deny
	}
	c.Fullscreen = true
	return nil
}

func (c *MockCapabilities) ExitFullscreen() error {
	if c.Deny != nil {
		return c.Deny
	}
	c.Fullscreen = false
	return nil
}

func (c *MockCapabilities) PictureInPictureSupported() bool { return c.PiPSupported }

func (c *MockCapabilities) RequestPictureInPicture() error {
	if c.Deny != nil {
		return c.Deny
	}
	c.PictureInPicture = true
	return nil
}

func (c *MockCapabilities) ExitPictureInPicture() error {
	if c.Deny != nil {
		return c.Deny
	}
	c.PictureInPicture = false
	return nil
}

// Verify MockCapabilities implements Capabilities at compile time.
var _ Capabilities = (*MockCapabilities)(nil)
