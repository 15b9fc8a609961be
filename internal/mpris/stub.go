//go:build !linux

package mpris

import "github.com/llehouerou/theater/internal/playback"

// Adapter does nothing: MPRIS is a freedesktop D-Bus interface.
type Adapter struct{}

func New(*playback.Controller) (*Adapter, error) { return &Adapter{}, nil }

func (*Adapter) Close() error { return nil }
