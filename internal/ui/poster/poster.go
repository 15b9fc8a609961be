// Package poster shows a track thumbnail on the stage using the Kitty
// graphics protocol. The image is uploaded once per thumbnail and then
// placed by ID, so redraws only emit a short placement sequence.
package poster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // thumbnail decoders
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/nfnt/resize"
)

const (
	defaultCellWidth  = 8
	defaultCellHeight = 16

	// MaxBytes bounds a fetched thumbnail.
	MaxBytes = 8 << 20
)

var nextID atomic.Uint32

// Renderer tracks the thumbnail currently uploaded to the terminal.
type Renderer struct {
	mu   sync.RWMutex
	src  string
	id   uint32
	cols int
	rows int
}

// New creates a renderer with nothing uploaded.
func New() *Renderer {
	return &Renderer{}
}

// Source returns the thumbnail URL of the uploaded image, or the last URL
// that failed to decode.
func (r *Renderer) Source() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.src
}

// HasImage reports whether an image is uploaded.
func (r *Renderer) HasImage() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.id != 0
}

// SetSize sets the display size in cells.
func (r *Renderer) SetSize(cols, rows int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cols, r.rows = cols, rows
}

// Size returns the display size in cells.
func (r *Renderer) Size() (cols, rows int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cols, r.rows
}

// Prepare decodes data, scales it to the display size and returns the
// sequence that frees the previous image and uploads the new one. When data
// cannot be decoded the previous image is still freed and the error is
// returned alongside the free sequence.
func (r *Renderer) Prepare(src string, data []byte) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out string
	if r.id != 0 {
		out = free(r.id)
	}
	r.src = src
	r.id = 0

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return out, fmt.Errorf("decode thumbnail: %w", err)
	}

	cw, ch := cellSize()
	w := uint(max(r.cols*cw, 64)) //nolint:gosec // cell counts are small
	h := uint(max(r.rows*ch, 64)) //nolint:gosec // cell counts are small
	scaled := resize.Thumbnail(w, h, img, resize.Lanczos3)

	id := nextID.Add(1)
	upload, err := transmit(scaled, id)
	if err != nil {
		return out, err
	}
	r.id = id
	return out + upload, nil
}

// Placement returns the sequence that shows the image at the 1-based
// (row, col) cell, or "" when nothing is uploaded.
func (r *Renderer) Placement(row, col int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.id == 0 {
		return ""
	}
	return place(r.id, row, col, r.cols, r.rows)
}

// Hide returns the sequence that removes the image from the screen while
// keeping it uploaded.
func (r *Renderer) Hide() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.id == 0 {
		return ""
	}
	return hide(r.id)
}

// Clear frees the uploaded image.
func (r *Renderer) Clear() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out string
	if r.id != 0 {
		out = free(r.id)
	}
	r.src = ""
	r.id = 0
	return out
}

// Placeholder returns blank cells reserving the image area in the layout.
func (r *Renderer) Placeholder() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cols <= 0 || r.rows <= 0 {
		return ""
	}
	line := strings.Repeat(" ", r.cols)
	lines := make([]string, r.rows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Fetch reads a thumbnail from a local path, a file:// URL or an http(s)
// URL. Bodies larger than MaxBytes are rejected.
func Fetch(ctx context.Context, client *http.Client, src string) ([]byte, error) {
	u, err := url.Parse(src)
	if err != nil || u.Scheme == "" {
		return readLimited(os.Open(src))
	}
	switch u.Scheme {
	case "file":
		return readLimited(os.Open(u.Path))
	case "http", "https":
	default:
		return nil, fmt.Errorf("unsupported thumbnail scheme %q", u.Scheme)
	}

	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("thumbnail: %s", resp.Status)
	}
	return readLimited(resp.Body, nil)
}

var errTooLarge = errors.New("thumbnail too large")

func readLimited(rc io.ReadCloser, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxBytes {
		return nil, errTooLarge
	}
	return data, nil
}
