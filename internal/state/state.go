// Package state provides thread-safe sharing of the latest computed
// snapshot between the compute loop and the TUI.
package state

import (
	"sync"
	"time"

	"github.com/FunKite/astrotimes/internal/report"
)

// Manager guards the most recent report snapshot and refresh bookkeeping.
type Manager struct {
	mu sync.RWMutex

	current         report.Snapshot
	hasData         bool
	lastCompute     time.Time
	computeDuration time.Duration
	lastError       error

	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{RefreshInterval: 10 * time.Second}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Manager{refreshInterval: interval}
}

// Update atomically installs a freshly computed snapshot, or records the
// error when the computation failed.
func (m *Manager) Update(snap report.Snapshot, d time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCompute = time.Now()
	m.computeDuration = d
	m.lastError = err
	if err == nil {
		m.current = snap
		m.hasData = true
	}
}

// State is an immutable view of the manager at one instant.
type State struct {
	Report          report.Snapshot
	HasData         bool
	LastCompute     time.Time
	NextRefresh     time.Time
	ComputeDuration time.Duration
	LastError       error
}

// Snapshot returns a consistent view of the current state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return State{
		Report:          m.current,
		HasData:         m.hasData,
		LastCompute:     m.lastCompute,
		NextRefresh:     m.lastCompute.Add(m.refreshInterval),
		ComputeDuration: m.computeDuration,
		LastError:       m.lastError,
	}
}

// HasData reports whether at least one computation has succeeded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasData
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}
