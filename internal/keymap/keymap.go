package keymap

import "github.com/samber/lo"

// Group sorts bindings into the sections of the help popup.
type Group int

const (
	GroupPlayback Group = iota
	GroupPlaylist
	GroupSidebar
	GroupGlobal
)

func (g Group) String() string {
	switch g {
	case GroupPlayback:
		return "Playback"
	case GroupPlaylist:
		return "Playlist"
	case GroupSidebar:
		return "Sidebar"
	case GroupGlobal:
		return "Global"
	}
	return "Other"
}

// Binding ties keys to an action.
type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Group  Group
}

var digits = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}

// Bindings is the default keymap.
var Bindings = []Binding{
	{ActionPlayPause, []string{" ", "space", "k"}, "Play/pause", GroupPlayback},
	{ActionSeekBack, []string{"left", "j"}, "Seek back", GroupPlayback},
	{ActionSeekForward, []string{"right", "l"}, "Seek forward", GroupPlayback},
	{ActionSeekStart, []string{"home", "0"}, "Seek to start", GroupPlayback},
	{ActionSeekEnd, []string{"end"}, "Seek to end", GroupPlayback},
	{ActionSeekPercent, digits, "Seek to 10%-90%", GroupPlayback},
	{ActionVolumeUp, []string{"up"}, "Volume up", GroupPlayback},
	{ActionVolumeDown, []string{"down"}, "Volume down", GroupPlayback},
	{ActionToggleMute, []string{"m"}, "Mute/unmute", GroupPlayback},
	{ActionRateDown, []string{"<", ","}, "Slower", GroupPlayback},
	{ActionRateUp, []string{">", "."}, "Faster", GroupPlayback},
	{ActionFullscreen, []string{"f"}, "Toggle fullscreen", GroupPlayback},
	{ActionExitFullscreen, []string{"esc"}, "Exit fullscreen", GroupPlayback},
	{ActionPiP, []string{"P", "shift+p"}, "Picture-in-picture", GroupPlayback},

	{ActionNextTrack, []string{"n", "N"}, "Next track", GroupPlaylist},
	{ActionPrevTrack, []string{"p"}, "Previous track", GroupPlaylist},
	{ActionCycleRepeat, []string{"R"}, "Cycle repeat mode", GroupPlaylist},
	{ActionToggleShuffle, []string{"S"}, "Toggle shuffle", GroupPlaylist},
	{ActionToggleAutoplay, []string{"a"}, "Toggle autoplay", GroupPlaylist},
	{ActionCancelAutoNext, []string{"c"}, "Cancel countdown", GroupPlaylist},
	{ActionSkipAutoNext, []string{"enter"}, "Play next now", GroupPlaylist},

	{ActionMoveUp, []string{"ctrl+k", "ctrl+p"}, "Cursor up", GroupSidebar},
	{ActionMoveDown, []string{"ctrl+j", "ctrl+n"}, "Cursor down", GroupSidebar},
	{ActionSelect, []string{"ctrl+o"}, "Play track under cursor", GroupSidebar},
	{ActionMoveItemUp, []string{"K"}, "Move track up", GroupSidebar},
	{ActionMoveItemDown, []string{"J"}, "Move track down", GroupSidebar},
	{ActionDelete, []string{"x", "delete"}, "Remove track", GroupSidebar},

	{ActionHelp, []string{"?"}, "Show help", GroupGlobal},
	{ActionToggleSidebar, []string{"tab"}, "Toggle playlist sidebar", GroupGlobal},
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", GroupGlobal},
}

// Section is one group of bindings in help order.
type Section struct {
	Group    Group
	Bindings []Binding
}

// Keymap resolves key strings to actions. A key bound twice resolves to
// the later binding.
type Keymap struct {
	byKey    map[string]Action
	sections []Section
	hints    map[Action]string
}

// New builds a keymap over bindings.
func New(bindings []Binding) *Keymap {
	km := &Keymap{
		byKey: make(map[string]Action),
		hints: make(map[Action]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			km.byKey[key] = b.Action
		}
		if _, ok := km.hints[b.Action]; !ok && len(b.Keys) > 0 {
			km.hints[b.Action] = b.Keys[0]
		}
	}

	grouped := lo.GroupBy(bindings, func(b Binding) Group { return b.Group })
	for _, g := range []Group{GroupPlayback, GroupPlaylist, GroupSidebar, GroupGlobal} {
		if bs := grouped[g]; len(bs) > 0 {
			km.sections = append(km.sections, Section{Group: g, Bindings: bs})
		}
	}
	return km
}

// Default returns the keymap over Bindings.
func Default() *Keymap {
	return New(Bindings)
}

// Resolve returns the action bound to key, or "" when unbound.
func (km *Keymap) Resolve(key string) Action {
	return km.byKey[key]
}

// Hint returns the first key of the action's first binding, for the
// header and countdown hints.
func (km *Keymap) Hint(action Action) string {
	return km.hints[action]
}

// Sections returns the bindings grouped for the help popup.
func (km *Keymap) Sections() []Section {
	return km.sections
}

// SeekPercent returns the position percentage a digit key seeks to.
func SeekPercent(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0]-'0') * 10, true
}
