// Package keymap defines the player's keyboard contract: which key strings
// trigger which actions. The terminal host resolves keys and dispatches.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit          Action = "quit"
	ActionHelp          Action = "help"
	ActionToggleSidebar Action = "toggle_sidebar"

	// Playback actions
	ActionPlayPause      Action = "play_pause"
	ActionSeekBack       Action = "seek_back"
	ActionSeekForward    Action = "seek_forward"
	ActionSeekStart      Action = "seek_start"
	ActionSeekEnd        Action = "seek_end"
	ActionSeekPercent    Action = "seek_percent" // 1-9: 10%-90%
	ActionVolumeUp       Action = "volume_up"
	ActionVolumeDown     Action = "volume_down"
	ActionToggleMute     Action = "toggle_mute"
	ActionRateDown       Action = "rate_down"
	ActionRateUp         Action = "rate_up"
	ActionFullscreen     Action = "fullscreen"
	ActionExitFullscreen Action = "exit_fullscreen"
	ActionPiP            Action = "picture_in_picture"

	// Playlist actions
	ActionNextTrack      Action = "next_track"
	ActionPrevTrack      Action = "prev_track"
	ActionCycleRepeat    Action = "cycle_repeat"
	ActionToggleShuffle  Action = "toggle_shuffle"
	ActionToggleAutoplay Action = "toggle_autoplay"
	ActionCancelAutoNext Action = "cancel_auto_next"
	ActionSkipAutoNext   Action = "skip_auto_next"

	// Sidebar actions
	ActionMoveUp       Action = "move_up"
	ActionMoveDown     Action = "move_down"
	ActionSelect       Action = "select"
	ActionMoveItemUp   Action = "move_item_up"
	ActionMoveItemDown Action = "move_item_down"
	ActionDelete       Action = "delete"
)
