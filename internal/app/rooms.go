package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/clubroom/server/internal/core"
	"github.com/clubroom/server/internal/domain"
)

// RoomRegistry owns live room membership. Rooms exist only through their
// members: the first join creates the entry, the last leave prunes it.
// It is transport-agnostic; fan-out happens a layer up.
type RoomRegistry struct {
	mu      sync.RWMutex
	members map[domain.RoomID]map[core.SessionID]struct{}
	joined  map[core.SessionID]map[domain.RoomID]struct{}
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		members: make(map[domain.RoomID]map[core.SessionID]struct{}),
		joined:  make(map[core.SessionID]map[domain.RoomID]struct{}),
	}
}

// Join adds sid to the room and returns the members that existed before the
// call, for introductions. added is false when sid was already a member;
// callers skip the introduction round in that case.
func (r *RoomRegistry) Join(roomID domain.RoomID, sid core.SessionID) (existing []core.SessionID, added bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.members[roomID]
	if !ok {
		room = make(map[core.SessionID]struct{})
		r.members[roomID] = room
	}
	if _, ok := room[sid]; ok {
		return nil, false
	}

	existing = make([]core.SessionID, 0, len(room))
	for member := range room {
		existing = append(existing, member)
	}
	room[sid] = struct{}{}

	rooms, ok := r.joined[sid]
	if !ok {
		rooms = make(map[domain.RoomID]struct{})
		r.joined[sid] = rooms
	}
	rooms[roomID] = struct{}{}

	log.Info().Str("module", "app.rooms").Str("room", string(roomID)).Str("sid", string(sid)).Int("existing", len(existing)).Msg("member joined")
	return existing, true
}

// Members returns a snapshot of the room's current membership.
func (r *RoomRegistry) Members(roomID domain.RoomID) []core.SessionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room := r.members[roomID]
	out := make([]core.SessionID, 0, len(room))
	for member := range room {
		out = append(out, member)
	}
	return out
}

// MemberCount reports the live size of a room. Zero for unknown rooms.
func (r *RoomRegistry) MemberCount(roomID domain.RoomID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members[roomID])
}

// Leave removes sid from the room and returns the remaining members, for
// departure notifications. Leaving a room sid is not a member of is a no-op.
// Empty rooms are pruned so stale entries never accumulate.
func (r *RoomRegistry) Leave(roomID domain.RoomID, sid core.SessionID) (remaining []core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.members[roomID]
	if !ok {
		return nil
	}
	if _, ok := room[sid]; !ok {
		return nil
	}
	delete(room, sid)
	if len(room) == 0 {
		delete(r.members, roomID)
	}

	if rooms, ok := r.joined[sid]; ok {
		delete(rooms, roomID)
		if len(rooms) == 0 {
			delete(r.joined, sid)
		}
	}

	remaining = make([]core.SessionID, 0, len(room))
	for member := range room {
		remaining = append(remaining, member)
	}
	log.Info().Str("module", "app.rooms").Str("room", string(roomID)).Str("sid", string(sid)).Int("remaining", len(remaining)).Msg("member left")
	return remaining
}

// RoomsOf returns every room sid currently belongs to.
func (r *RoomRegistry) RoomsOf(sid core.SessionID) []domain.RoomID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rooms := r.joined[sid]
	out := make([]domain.RoomID, 0, len(rooms))
	for roomID := range rooms {
		out = append(out, roomID)
	}
	return out
}
