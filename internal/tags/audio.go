package tags

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	goflac "github.com/go-flac/go-flac"
	"github.com/gopxl/beep/v2/flac"
	"github.com/llehouerou/go-m4a"
	"github.com/llehouerou/go-mp3"
)

const streamInfoLen = 18

// ReadAudioInfo reads stream properties from headers without a full decode.
func ReadAudioInfo(path string) (AudioInfo, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsSupported(path) {
		return AudioInfo{}, fmt.Errorf("unsupported format: %s", ext)
	}
	if ext == ExtFLAC {
		return readFLACInfo(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return AudioInfo{}, err
	}
	defer f.Close()

	if ext == ExtMP3 {
		return readMP3Info(f)
	}
	return readM4AInfo(f)
}

func readMP3Info(r io.Reader) (AudioInfo, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return AudioInfo{}, err
	}
	rate := dec.SampleRate()
	if rate == 0 {
		return AudioInfo{}, errors.New("mp3: invalid sample rate")
	}
	samples := max(dec.SampleCount(), 0)
	return AudioInfo{
		Duration:   samplesToDuration(int64(samples), rate),
		Format:     "MP3",
		SampleRate: rate,
	}, nil
}

func readFLACInfo(path string) (AudioInfo, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		// go-flac rejects files with a prepended ID3 block
		return readFLACWithBeep(path)
	}
	for _, meta := range f.Meta {
		if meta.Type == goflac.StreamInfo {
			if info, ok := parseStreamInfo(meta.Data); ok {
				return info, nil
			}
		}
	}
	return readFLACWithBeep(path)
}

// parseStreamInfo decodes the packed STREAMINFO block: a 20-bit sample
// rate, 3-bit channel count, 5-bit depth and 36-bit sample total starting
// at byte 10.
func parseStreamInfo(data []byte) (AudioInfo, bool) {
	if len(data) < streamInfoLen {
		return AudioInfo{}, false
	}
	rate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
	depth := (int(data[12])&0x01)<<4 | int(data[13])>>4 + 1
	total := int64(data[13]&0x0F)<<32 | int64(data[14])<<24 | int64(data[15])<<16 |
		int64(data[16])<<8 | int64(data[17])
	return AudioInfo{
		Duration:   samplesToDuration(total, rate),
		Format:     "FLAC",
		SampleRate: rate,
		BitDepth:   depth,
	}, true
}

func readFLACWithBeep(path string) (AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return AudioInfo{}, err
	}
	defer f.Close()

	if err := skipID3v2(f); err != nil {
		return AudioInfo{}, err
	}
	streamer, format, err := flac.Decode(f)
	if err != nil {
		return AudioInfo{}, err
	}
	defer streamer.Close()

	return AudioInfo{
		Duration:   format.SampleRate.D(streamer.Len()),
		Format:     "FLAC",
		SampleRate: int(format.SampleRate),
		BitDepth:   format.Precision * 8,
	}, nil
}

func readM4AInfo(r io.ReadSeeker) (AudioInfo, error) {
	box, err := m4a.Open(r)
	if err != nil {
		return AudioInfo{}, err
	}
	info := AudioInfo{
		Duration:   box.Duration(),
		Format:     "M4A",
		SampleRate: int(box.SampleRate()),
	}
	switch box.Codec() {
	case m4a.CodecAAC:
		info.Format = "AAC"
	case m4a.CodecALAC:
		info.Format = "ALAC"
		info.BitDepth = int(box.SampleSize())
	}
	return info, nil
}

// skipID3v2 positions r past a leading ID3v2 tag, or at the start if there
// is none.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	if n < len(header) || string(header[:3]) != id3Magic {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}
	// syncsafe size in bytes 6-9
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}

func samplesToDuration(samples int64, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(samples) / float64(rate) * float64(time.Second))
}
