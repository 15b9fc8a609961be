package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const (
	outputRate         = beep.SampleRate(44100)
	resampleQuality    = 4
	timeUpdateInterval = 250 * time.Millisecond
	readChunkSize      = 64 * 1024
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extM4A  = ".m4a"
	extMP4  = ".mp4"
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(outputRate, outputRate.N(time.Second/10))
	})
	return speakerErr
}

// IsAudioURL reports whether the URL names an audio-only format the beep
// backend decodes. MP4 clips decode too but carry a picture.
func IsAudioURL(rawURL string) bool {
	switch formatFromURL(rawURL) {
	case extMP3, extFLAC, extWAV, extM4A:
		return true
	}
	return false
}

// BeepOpener opens audio sources on the system speaker.
// Sources are local paths, file:// URLs, or http(s) URLs.
type BeepOpener struct {
	Client *http.Client
}

// NewBeepOpener creates an opener using the default HTTP client.
func NewBeepOpener() *BeepOpener {
	return &BeepOpener{Client: http.DefaultClient}
}

// Open implements Opener. Fetching and decoding continue in the background.
func (o *BeepOpener) Open(rawURL string) (Media, error) {
	if rawURL == "" {
		return nil, errors.New("empty stream url")
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &beepMedia{
		url:    rawURL,
		client: o.Client,
		state:  Loading,
		volume: 1,
		rate:   1,
		events: make(chan Event, 64),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go m.load(ctx)
	return m, nil
}

// Verify BeepOpener implements Opener at compile time.
var _ Opener = (*BeepOpener)(nil)

type beepMedia struct {
	mu     sync.Mutex
	url    string
	client *http.Client
	state  State

	streamer  beep.StreamSeekCloser
	format    beep.Format
	ctrl      *beep.Ctrl
	resampler *beep.Resampler
	vol       *effects.Volume

	volume float64
	muted  bool
	rate   float64

	events chan Event
	cancel context.CancelFunc
	done   chan struct{}
}

func (m *beepMedia) load(ctx context.Context) {
	src, code, err := m.fetch(ctx)
	if err != nil {
		m.fail(code, err)
		return
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext := formatFromURL(m.url); ext {
	case extMP3:
		streamer, format, err = mp3.Decode(src)
	case extFLAC:
		streamer, format, err = flac.Decode(src)
	case extWAV:
		streamer, format, err = wav.Decode(src)
	case extM4A, extMP4:
		streamer, format, err = decodeM4A(src)
	default:
		src.Close()
		m.fail(ErrSourceNotSupported, fmt.Errorf("unsupported format %q", ext))
		return
	}
	if err != nil {
		src.Close()
		m.fail(ErrDecode, err)
		return
	}

	if err := initSpeaker(); err != nil {
		streamer.Close()
		m.fail(ErrAborted, fmt.Errorf("audio output: %w", err))
		return
	}

	m.mu.Lock()
	if m.state == Closed {
		m.mu.Unlock()
		streamer.Close()
		return
	}
	m.streamer = streamer
	m.format = format
	m.ctrl = &beep.Ctrl{Streamer: streamer, Paused: true}
	m.resampler = beep.Resample(resampleQuality, format.SampleRate, outputRate, m.ctrl)
	m.resampler.SetRatio(m.baseRatio() * m.rate)
	m.vol = &effects.Volume{
		Streamer: m.resampler,
		Base:     2,
		Volume:   levelToVolume(m.volume),
		Silent:   m.muted,
	}
	m.state = Paused
	m.arm()
	duration := format.SampleRate.D(streamer.Len())
	m.mu.Unlock()

	m.emit(Event{Kind: EventLoadedMetadata, Duration: duration})
	m.emit(Event{Kind: EventCanPlay})

	go m.reportTime()
}

// fetch resolves the URL to a seekable source, reporting download progress.
func (m *beepMedia) fetch(ctx context.Context) (io.ReadSeekCloser, MediaError, error) {
	u, err := url.Parse(m.url)
	if err != nil {
		return nil, ErrSourceNotSupported, err
	}

	switch u.Scheme {
	case "http", "https":
		return m.download(ctx, u.String())
	case "file":
		return openFile(u.Path)
	case "":
		return openFile(m.url)
	default:
		return nil, ErrSourceNotSupported, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func openFile(p string) (io.ReadSeekCloser, MediaError, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, ErrNetwork, err
	}
	return f, ErrUnknownMedia, nil
}

func (m *beepMedia) download(ctx context.Context, u string) (io.ReadSeekCloser, MediaError, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, ErrNetwork, err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrAborted, err
		}
		return nil, ErrNetwork, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrNetwork, fmt.Errorf("http status %s", resp.Status)
	}

	var buf bytes.Buffer
	chunk := make([]byte, readChunkSize)
	for {
		n, err := resp.Body.Read(chunk)
		buf.Write(chunk[:n])
		if resp.ContentLength > 0 {
			m.emit(Event{Kind: EventProgress, Buffered: float64(buf.Len()) / float64(resp.ContentLength)})
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ErrAborted, err
			}
			return nil, ErrNetwork, err
		}
	}
	m.emit(Event{Kind: EventProgress, Buffered: 1})

	return nopCloser{bytes.NewReader(buf.Bytes())}, ErrUnknownMedia, nil
}

// nopCloser keeps Seek available, unlike io.NopCloser.
type nopCloser struct{ *bytes.Reader }

func (nopCloser) Close() error { return nil }

func (m *beepMedia) fail(code MediaError, err error) {
	m.mu.Lock()
	if m.state == Closed {
		m.mu.Unlock()
		return
	}
	m.state = Failed
	m.mu.Unlock()
	m.emit(Event{Kind: EventError, Err: code, Detail: err.Error()})
}

// arm queues the pipeline on the speaker. Caller holds m.mu.
func (m *beepMedia) arm() {
	speaker.Play(beep.Seq(m.vol, beep.Callback(m.finished)))
}

// finished runs on the speaker goroutine with the speaker lock held, so it
// must not touch m.mu directly.
func (m *beepMedia) finished() {
	go func() {
		m.mu.Lock()
		if m.state != Playing {
			m.mu.Unlock()
			return
		}
		m.state = Ended
		m.mu.Unlock()
		m.emit(Event{Kind: EventEnded})
	}()
}

func (m *beepMedia) reportTime() {
	ticker := time.NewTicker(timeUpdateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.mu.Lock()
			playing := m.state == Playing
			m.mu.Unlock()
			if playing && len(m.events) < cap(m.events)/2 {
				m.emit(Event{Kind: EventTimeUpdate, Position: m.position()})
			}
		}
	}
}

func (m *beepMedia) position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.streamer == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return m.format.SampleRate.D(m.streamer.Position())
}

// emit drops progress-style events when the buffer is full. Ended and
// error events wait for room, or for Close.
func (m *beepMedia) emit(e Event) {
	if e.Kind == EventEnded || e.Kind == EventError {
		select {
		case m.events <- e:
		case <-m.done:
		}
		return
	}
	select {
	case m.events <- e:
	default:
	}
}

func (m *beepMedia) baseRatio() float64 {
	return float64(m.format.SampleRate) / float64(outputRate)
}

func (m *beepMedia) Play() error {
	m.mu.Lock()
	switch m.state {
	case Loading:
		m.mu.Unlock()
		return ErrNotReady
	case Failed, Closed:
		m.mu.Unlock()
		return ErrClosed
	case Playing:
		m.mu.Unlock()
		return nil
	case Ended:
		speaker.Lock()
		err := m.streamer.Seek(0)
		m.ctrl.Paused = false
		speaker.Unlock()
		if err != nil {
			m.mu.Unlock()
			return err
		}
		m.arm()
	case Paused:
		speaker.Lock()
		m.ctrl.Paused = false
		speaker.Unlock()
	}
	m.state = Playing
	m.mu.Unlock()

	m.emit(Event{Kind: EventPlay})
	return nil
}

func (m *beepMedia) Pause() {
	m.mu.Lock()
	if !m.state.CanPause() {
		m.mu.Unlock()
		return
	}
	speaker.Lock()
	m.ctrl.Paused = true
	speaker.Unlock()
	m.state = Paused
	m.mu.Unlock()

	m.emit(Event{Kind: EventPause})
}

func (m *beepMedia) Seek(pos time.Duration) {
	m.mu.Lock()
	if m.streamer == nil || m.state.IsTerminal() {
		m.mu.Unlock()
		return
	}
	speaker.Lock()
	n := m.format.SampleRate.N(pos)
	n = max(0, min(n, m.streamer.Len()-1))
	_ = m.streamer.Seek(n)
	speaker.Unlock()
	if m.state == Ended {
		// Seeking back into an ended stream leaves it paused and re-queued.
		m.ctrl.Paused = true
		m.state = Paused
		m.arm()
	}
	m.mu.Unlock()

	m.emit(Event{Kind: EventTimeUpdate, Position: pos})
}

func (m *beepMedia) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clampLevel(level)
	if m.vol != nil {
		speaker.Lock()
		m.vol.Volume = levelToVolume(m.volume)
		speaker.Unlock()
	}
}

func (m *beepMedia) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	if m.vol != nil {
		speaker.Lock()
		m.vol.Silent = muted
		speaker.Unlock()
	}
}

func (m *beepMedia) SetRate(rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rate <= 0 {
		return
	}
	m.rate = rate
	if m.resampler != nil {
		speaker.Lock()
		m.resampler.SetRatio(m.baseRatio() * rate)
		speaker.Unlock()
	}
}

func (m *beepMedia) Events() <-chan Event { return m.events }

func (m *beepMedia) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Closed {
		return nil
	}
	m.state = Closed
	m.cancel()
	close(m.done)

	if m.streamer == nil {
		return nil
	}
	speaker.Clear()
	err := m.streamer.Close()
	m.streamer = nil
	return err
}

// formatAliases maps "format" query values and MIME subtypes to extensions.
var formatAliases = map[string]string{
	"mp3":    extMP3,
	"mpeg":   extMP3,
	"flac":   extFLAC,
	"x-flac": extFLAC,
	"wav":    extWAV,
	"wave":   extWAV,
	"x-wav":  extWAV,
	"m4a":    extM4A,
	"mp4":    extM4A,
	"aac":    extM4A,
	"x-m4a":  extM4A,
	"alac":   extM4A,
}

// formatFromURL returns the lowercase extension of the URL path.
// A "format" query parameter ("mp3", "audio/flac") overrides the path.
func formatFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.ToLower(path.Ext(rawURL))
	}
	if f := strings.ToLower(u.Query().Get("format")); f != "" {
		if i := strings.LastIndex(f, "/"); i >= 0 {
			f = f[i+1:]
		}
		if ext, ok := formatAliases[strings.TrimPrefix(f, ".")]; ok {
			return ext
		}
		return "." + strings.TrimPrefix(f, ".")
	}
	return strings.ToLower(path.Ext(u.Path))
}
