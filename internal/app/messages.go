// Package app hosts the player in a bubbletea program.
package app

import "github.com/llehouerou/theater/internal/playback"

// StatusMsg carries an engine status update.
type StatusMsg playback.Status

// TrackMsg is sent when the controller binds a track.
type TrackMsg playback.TrackChange

// QueueMsg is sent when the queue contents or order change.
type QueueMsg playback.QueueChange

// ModeMsg is sent when repeat, shuffle, autoplay or sidebar change.
type ModeMsg playback.ModeChange

// CountdownMsg is sent on every auto-advance countdown step.
type CountdownMsg playback.CountdownChange

// EndedMsg is sent when the bound track plays to its end.
type EndedMsg playback.EndedEvent

// ErrorMsg is sent when the bound media fails.
type ErrorMsg playback.ErrorEvent

// ClosedMsg is sent when the controller subscription is closed.
type ClosedMsg struct{}
