package app

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/clubroom/server/internal/domain"
)

// Directory is the in-memory listing of created rooms. It backs the REST
// room API only; signaling membership lives in RoomRegistry and works for
// any room id, listed or not.
type Directory struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*domain.Room
}

func NewDirectory() *Directory {
	return &Directory{rooms: make(map[domain.RoomID]*domain.Room)}
}

func (d *Directory) Create(topic string, roomType domain.RoomType, ownerID string) *domain.Room {
	room := domain.NewRoom(topic, roomType, ownerID)
	d.mu.Lock()
	d.rooms[room.ID] = room
	d.mu.Unlock()
	log.Info().Str("module", "app.directory").Str("room", string(room.ID)).Str("topic", topic).Msg("room created")
	return room
}

func (d *Directory) Get(id domain.RoomID) (*domain.Room, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	room, ok := d.rooms[id]
	return room, ok
}

// List returns rooms of the given types, newest first. An empty filter
// means all types.
func (d *Directory) List(types ...domain.RoomType) []*domain.Room {
	d.mu.RLock()
	out := make([]*domain.Room, 0, len(d.rooms))
	for _, room := range d.rooms {
		if len(types) == 0 || containsType(types, room.RoomType) {
			out = append(out, room)
		}
	}
	d.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (d *Directory) Remove(id domain.RoomID) {
	d.mu.Lock()
	delete(d.rooms, id)
	d.mu.Unlock()
}

func containsType(types []domain.RoomType, t domain.RoomType) bool {
	for _, want := range types {
		if want == t {
			return true
		}
	}
	return false
}
