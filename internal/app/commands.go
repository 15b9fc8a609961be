package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/theater/internal/playback"
)

// WatchEvents returns a command that waits for the next controller event.
// It listens on all subscription channels and converts events to tea.Msg.
// Every handler re-arms it.
func WatchEvents(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case s := <-sub.StatusChanged:
			return StatusMsg(s)
		case e := <-sub.TrackChanged:
			return TrackMsg(e)
		case e := <-sub.QueueChanged:
			return QueueMsg(e)
		case e := <-sub.ModeChanged:
			return ModeMsg(e)
		case e := <-sub.CountdownChanged:
			return CountdownMsg(e)
		case e := <-sub.Ended:
			return EndedMsg(e)
		case e := <-sub.Error:
			return ErrorMsg(e)
		case <-sub.Done:
			return ClosedMsg{}
		}
	}
}
