package app

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/clubroom/server/internal/core"
	"github.com/clubroom/server/internal/domain"
)

// Registry tracks live transport sessions and the profile attached to each.
// The profile map has its own lifecycle: it is populated at join time and
// cleared by Unregister, while the connection itself lives until the
// transport closes.
type Registry struct {
	mu          sync.RWMutex
	connections map[core.SessionID]core.SignalConnection
	users       map[core.SessionID]domain.Profile
}

func NewRegistry() *Registry {
	return &Registry{
		connections: make(map[core.SessionID]core.SignalConnection),
		users:       make(map[core.SessionID]domain.Profile),
	}
}

// Register assigns a fresh session id to a new transport connection.
// Called once per accepted connection.
func (r *Registry) Register(conn core.SignalConnection) core.SessionID {
	sid := core.SessionID(uuid.NewString())
	r.mu.Lock()
	r.connections[sid] = conn
	r.mu.Unlock()
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("registered connection")
	return sid
}

// Connection returns the live transport for sid, if any.
func (r *Registry) Connection(sid core.SessionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.connections[sid]
	return conn, ok
}

// AttachUser stores the opaque profile sent with a join. Overwrites on
// repeat calls.
func (r *Registry) AttachUser(sid core.SessionID, user domain.Profile) {
	r.mu.Lock()
	r.users[sid] = user
	r.mu.Unlock()
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("attached user profile")
}

// LookupUser is a non-failing profile lookup used for introduction and
// removal broadcasts. Returns nil when no profile was attached.
func (r *Registry) LookupUser(sid core.SessionID) domain.Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[sid]
}

// Unregister drops the profile mapping. Idempotent.
func (r *Registry) Unregister(sid core.SessionID) {
	r.mu.Lock()
	delete(r.users, sid)
	r.mu.Unlock()
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unregistered user profile")
}

// Release forgets a closed transport session. Idempotent.
func (r *Registry) Release(sid core.SessionID) {
	r.mu.Lock()
	delete(r.connections, sid)
	r.mu.Unlock()
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("released connection")
}
