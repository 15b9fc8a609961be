package poster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

const (
	escStart  = "\x1b_G"
	escEnd    = "\x1b\\"
	chunkSize = 4096
)

// transmit encodes img as PNG and uploads it under id without displaying it.
func transmit(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return transmitPNG(buf.Bytes(), id), nil
}

// transmitPNG splits the payload into chunks; only the first carries the
// image parameters.
func transmitPNG(data []byte, id uint32) string {
	encoded := base64.StdEncoding.EncodeToString(data)

	var sb strings.Builder
	for i := 0; i < len(encoded); i += chunkSize {
		end := min(i+chunkSize, len(encoded))
		more := 0
		if end < len(encoded) {
			more = 1
		}
		sb.WriteString(escStart)
		if i == 0 {
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, more)
		} else {
			fmt.Fprintf(&sb, "m=%d;", more)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(escEnd)
	}
	return sb.String()
}

// place shows a transmitted image at the 1-based (row, col) cell. The fixed
// placement ID replaces any earlier placement of the same image.
func place(id uint32, row, col, cols, rows int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s", escStart, id, cols, rows, escEnd)
	sb.WriteString("\x1b[u")
	return sb.String()
}

// hide removes the placements of id but keeps its data for a later place.
func hide(id uint32) string {
	return fmt.Sprintf("%sa=d,d=i,i=%d,q=2;%s", escStart, id, escEnd)
}

// free removes the placements of id and releases its data.
func free(id uint32) string {
	return fmt.Sprintf("%sa=d,d=I,i=%d,q=2;%s", escStart, id, escEnd)
}
