//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	appName   = "Theater"
	desktopID = "theater"
)

type busNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without one, notifications are
// discarded rather than failing startup.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Discard{}, nil //nolint:nilerr // no session bus means no notification daemon
	}
	return &busNotifier{obj: conn.Object(busName, busPath)}, nil
}

// Notify calls org.freedesktop.Notifications.Notify and returns the id the
// daemon assigned.
func (b *busNotifier) Notify(n Notification) (uint32, error) {
	var id uint32
	err := b.obj.Call(busName+".Notify", 0,
		appName, n.ReplacesID, n.Icon, n.Title, n.Body,
		[]string{}, hintsFor(n), n.Timeout,
	).Store(&id)
	return id, err
}

func (b *busNotifier) Close(id uint32) error {
	return b.obj.Call(busName+".CloseNotification", 0, id).Err
}

func hintsFor(n Notification) map[string]dbus.Variant {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(desktopID),
	}
	if n.Transient {
		hints["transient"] = dbus.MakeVariant(true)
	}
	return hints
}
