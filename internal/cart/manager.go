package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Manager owns one Synchronizer per browser session, created lazily on the
// session's first cart request. Each synchronizer's change feed is bridged
// to the hub so every tab of the session sees mutations as they land.
type Manager struct {
	api      CommerceAPI
	sessions *SessionRepo
	hub      *Hub
	log      *zap.Logger

	mu    sync.Mutex
	syncs map[string]*Synchronizer
	stops map[string]func()
}

func NewManager(api CommerceAPI, sessions *SessionRepo, hub *Hub, log *zap.Logger) *Manager {
	return &Manager{
		api:      api,
		sessions: sessions,
		hub:      hub,
		log:      log,
		syncs:    make(map[string]*Synchronizer),
		stops:    make(map[string]func()),
	}
}

// Synchronizer returns the session's synchronizer, initializing it on first
// use. Initialization fetches the persisted cart, so the first request of a
// returning shopper pays one backend round trip.
func (m *Manager) Synchronizer(ctx context.Context, sessionID string) *Synchronizer {
	m.mu.Lock()
	if s, ok := m.syncs[sessionID]; ok {
		m.mu.Unlock()
		return s
	}

	s := NewSynchronizer(sessionID, m.api, m.sessions, m.log)
	m.syncs[sessionID] = s

	ch, cancel := s.Subscribe()
	m.stops[sessionID] = cancel
	go func() {
		for c := range ch {
			m.hub.BroadcastCart(sessionID, c)
		}
	}()
	m.mu.Unlock()

	s.Initialize(ctx)
	return s
}

// Close shuts every synchronizer down, draining queued mutations.
func (m *Manager) Close() {
	m.mu.Lock()
	syncs := m.syncs
	stops := m.stops
	m.syncs = make(map[string]*Synchronizer)
	m.stops = make(map[string]func())
	m.mu.Unlock()

	for id, s := range syncs {
		s.Close()
		if stop := stops[id]; stop != nil {
			stop()
		}
	}
}
