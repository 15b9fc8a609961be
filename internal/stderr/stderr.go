//go:build !windows

// Package stderr captures output that C audio libraries (ALSA through the
// speaker backend) write directly to file descriptor 2, bypassing Go's
// os.Stderr. Captured lines go to the log instead of corrupting the TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Capture redirects fd 2 into a logger until Stop.
type Capture struct {
	orig  int
	read  *os.File
	write *os.File
	done  chan struct{}
	once  sync.Once
}

// Start begins capturing stderr. Must be called before the audio backend
// initializes. On error the program can continue without capture.
func Start(log logrus.FieldLogger) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, read: r, write: w, done: make(chan struct{})}
	go c.forward(log.WithField("component", "stderr"))
	return c, nil
}

func (c *Capture) forward(log logrus.FieldLogger) {
	defer close(c.done)
	scanner := bufio.NewScanner(c.read)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Debug(line)
		}
	}
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = unix.Write(c.orig, []byte(msg))
}

// Stop restores the original stderr and waits for buffered lines to be
// logged. Calling Stop more than once is a no-op.
func (c *Capture) Stop() {
	c.once.Do(func() {
		_ = unix.Dup2(c.orig, int(os.Stderr.Fd()))
		_ = unix.Close(c.orig)
		c.write.Close()
		<-c.done
		c.read.Close()
	})
}
