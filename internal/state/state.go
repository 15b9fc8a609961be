package state

import (
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "theater"
	dbFileName   = "theater.db"
	saveDebounce = 500 * time.Millisecond
)

// ErrClosed is returned by operations on a closed Manager.
var ErrClosed = errors.New("state: manager closed")

// Manager persists preferences to sqlite. Writes are coalesced and flushed
// after a short quiet period so that bursts (volume keys held down) cost a
// single transaction.
type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   map[string]string
	closed    bool
	flushErr  error
}

// Open opens the database at the default xdg data location.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens (creating if needed) the database at dbPath.
// ":memory:" opens a private in-memory database.
func OpenPath(dbPath string) (*Manager, error) {
	if dbPath != ":memory:" {
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases coherent.
	conn.SetMaxOpenConns(1)

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Manager{db: conn, pending: make(map[string]string)}, nil
}

// GetPreference returns the value for key, including writes not yet flushed.
func (m *Manager) GetPreference(key string) (string, bool, error) {
	m.saveMu.Lock()
	if m.closed {
		m.saveMu.Unlock()
		return "", false, ErrClosed
	}
	if v, ok := m.pending[key]; ok {
		m.saveMu.Unlock()
		return v, true, nil
	}
	m.saveMu.Unlock()

	return getPreference(m.db, key)
}

// SetPreference records value for key. The write reaches the database on
// the next flush; errors from a background flush are reported by the next
// SetPreference, Flush or Close call. The value is recorded even when such
// an error is reported, and the failed batch stays pending for retry.
func (m *Manager) SetPreference(key, value string) error {
	if key == "" {
		return errors.New("state: empty preference key")
	}

	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	if m.closed {
		return ErrClosed
	}

	m.pending[key] = value

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		defer m.saveMu.Unlock()
		if m.closed {
			return
		}
		m.flushErr = m.flushLocked()
	})

	err := m.flushErr
	m.flushErr = nil
	return err
}

// Flush writes pending preferences immediately.
func (m *Manager) Flush() error {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	err := errors.Join(m.flushErr, m.flushLocked())
	m.flushErr = nil
	return err
}

// flushLocked must be called with saveMu held.
func (m *Manager) flushLocked() error {
	if len(m.pending) == 0 {
		return nil
	}
	values := maps.Clone(m.pending)
	if err := savePreferences(m.db, values); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	clear(m.pending)
	return nil
}

// Close flushes pending state and closes the database. Calling Close more
// than once is a no-op.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.closed {
		m.saveMu.Unlock()
		return nil
	}
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	// Flush pending state
	err := errors.Join(m.flushErr, m.flushLocked())
	m.closed = true
	m.saveMu.Unlock()

	return errors.Join(err, m.db.Close())
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
