package session

import (
	"context"
	"sync"
	"time"

	"github.com/RKmodz24/studio/internal/common"
	"github.com/RKmodz24/studio/pkg/scheduler"
	"github.com/RKmodz24/studio/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
)

// Manager keeps one session per user in memory. Sessions left idle are closed
// by a periodic sweep, their state stays persisted.
type Manager struct {
	ctx      context.Context
	deps     Dependencies
	listener Listener

	idleTimeout   time.Duration
	sweepInterval time.Duration

	loadMutex sync.Mutex
	sessions  *xsync.MapOf[string, *Session]

	sweepMutex sync.Mutex
	sweep      scheduler.Handle
	closed     bool
}

// NewManager creates a manager whose sessions run their delayed callbacks
// with ctx. The listener may be nil.
func NewManager(ctx context.Context, deps Dependencies, listener Listener) *Manager {
	cfg := xcontext.Configs(ctx).Reward

	m := &Manager{
		ctx:           ctx,
		deps:          deps,
		listener:      listener,
		idleTimeout:   cfg.SessionIdleTimeout,
		sweepInterval: cfg.SessionSweepInterval,
		sessions:      xsync.NewMapOf[*Session](),
	}

	if m.idleTimeout > 0 && m.sweepInterval > 0 {
		m.sweepMutex.Lock()
		m.scheduleSweep()
		m.sweepMutex.Unlock()
	}

	return m
}

// Get returns the session of the user, loading it on first access.
func (m *Manager) Get(ctx context.Context, userID string) (*Session, error) {
	if s, ok := m.sessions.Load(userID); ok {
		s.touch()
		return s, nil
	}

	m.loadMutex.Lock()
	defer m.loadMutex.Unlock()

	if s, ok := m.sessions.Load(userID); ok {
		s.touch()
		return s, nil
	}

	s, err := Load(m.ctx, userID, m.deps, m.listener)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load session of %s: %v", userID, err)
		return nil, err
	}

	m.sessions.Store(userID, s)
	m.updateGauge()
	return s, nil
}

// Evict closes the session of the user and forgets it. The persisted state is
// kept.
func (m *Manager) Evict(userID string) {
	if s, ok := m.sessions.LoadAndDelete(userID); ok {
		s.Close()
		m.updateGauge()
	}
}

func (m *Manager) Count() int {
	return m.sessions.Size()
}

func (m *Manager) Close() {
	m.sweepMutex.Lock()
	m.closed = true
	if m.sweep != nil {
		m.sweep.Cancel()
		m.sweep = nil
	}
	m.sweepMutex.Unlock()

	m.sessions.Range(func(userID string, s *Session) bool {
		s.Close()
		m.sessions.Delete(userID)
		return true
	})

	m.updateGauge()
}

// scheduleSweep must be called with sweepMutex held.
func (m *Manager) scheduleSweep() {
	if m.closed {
		return
	}

	m.sweep = m.deps.Scheduler.Schedule(m.sweepInterval, m.evictIdle)
}

// evictIdle adds the sweep interval to the idle time of every session not
// accessed since the previous sweep. Sessions idle for longer than the
// timeout are evicted unless a completion or a settlement is pending.
func (m *Manager) evictIdle() {
	var evicted int
	m.sessions.Range(func(userID string, s *Session) bool {
		if s.idleFor(m.sweepInterval) < m.idleTimeout || s.hasPending() {
			return true
		}

		m.sessions.Delete(userID)
		s.Close()
		evicted++
		return true
	})

	if evicted > 0 {
		xcontext.Logger(m.ctx).Debugf("Evicted %d idle sessions", evicted)
		m.updateGauge()
	}

	m.sweepMutex.Lock()
	m.scheduleSweep()
	m.sweepMutex.Unlock()
}

func (m *Manager) updateGauge() {
	common.PromGauges[common.ActiveSessions].WithLabelValues().Set(float64(m.sessions.Size()))
}
