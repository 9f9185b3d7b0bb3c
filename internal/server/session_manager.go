package server

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"grid-tactics/internal/models"
)

// SessionManager owns every active battle session. A default session is
// created at construction so single-battle clients never need to mint one.
type SessionManager struct {
	cfg       *models.GameConfig
	sessions  map[string]*BattleSession
	defaultID string
	mu        sync.RWMutex
}

// NewSessionManager creates a manager with one default session.
func NewSessionManager(cfg *models.GameConfig) (*SessionManager, error) {
	if cfg == nil {
		cfg = models.DefaultGameConfig()
	}
	mgr := &SessionManager{
		cfg:      cfg,
		sessions: make(map[string]*BattleSession),
	}
	session, err := mgr.Create()
	if err != nil {
		return nil, err
	}
	mgr.defaultID = session.ID
	return mgr, nil
}

// Create mints a new idle session with a unique id.
func (m *SessionManager) Create() (*BattleSession, error) {
	id := uuid.New().String()
	session, err := NewBattleSession(id, m.cfg)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	log.Printf("Battle session %s created.", id)
	return session, nil
}

// Get retrieves a session by id. An empty id resolves to the default
// session.
func (m *SessionManager) Get(id string) (*BattleSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id == "" {
		id = m.defaultID
	}
	session, ok := m.sessions[id]
	return session, ok
}

// Remove drops a session. The default session cannot be removed.
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id == m.defaultID {
		return
	}
	delete(m.sessions, id)
	log.Printf("Battle session %s removed.", id)
}
