package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

const alacFrameSize = 4096

// frameDecoder turns one container sample into interleaved stereo frames.
type frameDecoder interface {
	decode(sample []byte) ([][2]float64, error)
	close()
}

// m4aStream streams the audio track of an MP4 container. Video tracks are
// ignored, so an .mp4 clip plays its soundtrack.
type m4aStream struct {
	box    *m4a.Reader
	dec    frameDecoder
	src    io.Closer
	rate   int
	length int

	next    int
	pending [][2]float64
	err     error
}

func decodeM4A(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	box, err := m4a.Open(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}

	channels := int(box.Channels())
	format := beep.Format{
		SampleRate:  beep.SampleRate(box.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}

	var dec frameDecoder
	switch box.Codec() {
	case m4a.CodecAAC:
		dec, err = newAACFrames(box.CodecConfig(), channels)
	case m4a.CodecALAC:
		depth := int(box.SampleSize())
		if depth == 24 {
			format.Precision = 3
		}
		dec, err = newALACFrames(int(box.SampleRate()), depth, channels)
	default:
		err = fmt.Errorf("m4a: unsupported codec %s", box.Codec())
	}
	if err != nil {
		return nil, beep.Format{}, err
	}

	return &m4aStream{
		box:    box,
		dec:    dec,
		src:    rc,
		rate:   int(box.SampleRate()),
		length: int(box.Duration().Seconds() * float64(box.SampleRate())),
	}, format, nil
}

func (s *m4aStream) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil {
		return 0, false
	}
	n := 0
	for n < len(samples) {
		if len(s.pending) > 0 {
			c := copy(samples[n:], s.pending)
			s.pending = s.pending[c:]
			n += c
			continue
		}
		if s.next >= s.box.SampleCount() {
			break
		}
		raw, err := s.box.ReadSample(s.next)
		if err != nil {
			s.err = err
			break
		}
		s.next++
		frames, err := s.dec.decode(raw)
		if err != nil {
			s.err = err
			break
		}
		s.pending = frames
	}
	return n, n > 0
}

func (s *m4aStream) Err() error { return s.err }

func (s *m4aStream) Len() int { return s.length }

func (s *m4aStream) Position() int {
	return int(s.box.SampleTime(s.next).Seconds() * float64(s.rate))
}

func (s *m4aStream) Seek(p int) error {
	p = min(max(p, 0), s.length)
	at := time.Duration(float64(p) / float64(s.rate) * float64(time.Second))
	s.next = s.box.SeekToTime(at)
	s.pending = nil
	s.err = nil
	return nil
}

func (s *m4aStream) Close() error {
	s.dec.close()
	return s.src.Close()
}

type aacFrames struct {
	dec      *faad2.Decoder
	channels int
}

func newAACFrames(config []byte, channels int) (*aacFrames, error) {
	ctx := context.Background()
	dec, err := faad2.NewDecoder(ctx)
	if err != nil {
		return nil, err
	}
	if err := dec.Init(ctx, config); err != nil {
		dec.Close(ctx)
		return nil, err
	}
	return &aacFrames{dec: dec, channels: channels}, nil
}

func (a *aacFrames) decode(sample []byte) ([][2]float64, error) {
	pcm, err := a.dec.Decode(context.Background(), sample)
	if err != nil {
		return nil, err
	}
	return pcm16ToFrames(pcm, a.channels), nil
}

func (a *aacFrames) close() { a.dec.Close(context.Background()) }

type alacFrames struct {
	dec      *alac.Alac
	depth    int
	channels int
}

func newALACFrames(rate, depth, channels int) (*alacFrames, error) {
	dec, err := alac.NewWithConfig(alac.Config{
		SampleRate:  rate,
		SampleSize:  depth,
		NumChannels: channels,
		FrameSize:   alacFrameSize,
	})
	if err != nil {
		return nil, err
	}
	return &alacFrames{dec: dec, depth: depth, channels: channels}, nil
}

func (a *alacFrames) decode(sample []byte) ([][2]float64, error) {
	raw := a.dec.Decode(sample)
	if raw == nil {
		return nil, errors.New("alac: empty frame")
	}
	if a.depth == 24 {
		return pcm24ToFrames(raw, a.channels), nil
	}
	return pcmLE16ToFrames(raw, a.channels), nil
}

func (a *alacFrames) close() {}

// pcm16ToFrames converts interleaved samples to stereo; mono is duplicated.
func pcm16ToFrames(pcm []int16, channels int) [][2]float64 {
	if channels < 1 {
		return nil
	}
	frames := make([][2]float64, len(pcm)/channels)
	for i := range frames {
		l := float64(pcm[i*channels]) / 32768
		r := l
		if channels > 1 {
			r = float64(pcm[i*channels+1]) / 32768
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}

func pcmLE16ToFrames(data []byte, channels int) [][2]float64 {
	if channels < 1 {
		return nil
	}
	pcm := make([]int16, len(data)/2)
	for i := range pcm {
		pcm[i] = int16(uint16(data[2*i]) | uint16(data[2*i+1])<<8)
	}
	return pcm16ToFrames(pcm, channels)
}

func pcm24ToFrames(data []byte, channels int) [][2]float64 {
	if channels < 1 {
		return nil
	}
	sample := func(off int) float64 {
		v := int32(data[off]) | int32(data[off+1])<<8 | int32(data[off+2])<<16
		if v&0x800000 != 0 {
			v |= ^0xFFFFFF
		}
		return float64(v) / 8388608
	}
	stride := 3 * channels
	frames := make([][2]float64, len(data)/stride)
	for i := range frames {
		off := i * stride
		l := sample(off)
		r := l
		if channels > 1 {
			r = sample(off + 3)
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}
