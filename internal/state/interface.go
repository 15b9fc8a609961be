// internal/state/interface.go
package state

// Store is the preference persistence capability. Keys are flat strings such
// as "player.volume"; values are their string encodings.
type Store interface {
	// GetPreference returns the stored value and whether the key exists.
	GetPreference(key string) (string, bool, error)
	SetPreference(key, value string) error
}

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	Store
	Flush() error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
