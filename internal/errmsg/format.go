// Package errmsg turns failures into the one-line messages shown to the
// user or written to the log.
package errmsg

import "fmt"

// Op names what was being attempted, phrased to follow "Failed to".
type Op string

const (
	OpConfigLoad   Op = "load configuration"
	OpStateOpen    Op = "open preference store"
	OpStateFlush   Op = "save preferences"
	OpLogOpen      Op = "open log file"
	OpSourceLoad   Op = "load playlist"
	OpInitialize   Op = "initialize application"
	OpMPRISStart   Op = "start media key integration"
	OpNotifyStart  Op = "start desktop notifications"
	OpPlaybackOpen Op = "open stream"
)

// Error is a failed operation. It unwraps to the cause.
type Error struct {
	Op      Op
	Subject string
	Err     error
}

func (e *Error) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("Failed to %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", e.Op, e.Subject, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns nil for a nil err.
func Wrap(op Op, err error) error {
	return WrapWith(op, "", err)
}

// WrapWith names the subject of the operation, such as a file or track.
func WrapWith(op Op, subject string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Subject: subject, Err: err}
}

// Format is Wrap as a string, "" for a nil err.
func Format(op Op, err error) string {
	return FormatWith(op, "", err)
}

func FormatWith(op Op, subject string, err error) string {
	if err == nil {
		return ""
	}
	return WrapWith(op, subject, err).Error()
}
