package domain

import (
	"time"

	"github.com/google/uuid"
)

type (
	RoomID   string
	RoomType string
)

const (
	RoomTypeOpen    RoomType = "open"
	RoomTypeSocial  RoomType = "social"
	RoomTypePrivate RoomType = "private"
)

const MaxTopicLen = 120

// Room is a directory entry for a conversation room. Live membership is
// tracked separately by the room registry; this is only listing metadata.
type Room struct {
	ID        RoomID    `json:"id"`
	Topic     string    `json:"topic"`
	RoomType  RoomType  `json:"roomType"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewRoom avoids raw literals in adapters and keeps construction obvious.
func NewRoom(topic string, roomType RoomType, ownerID string) *Room {
	if len(topic) > MaxTopicLen {
		topic = topic[:MaxTopicLen]
	}
	return &Room{
		ID:        RoomID(uuid.NewString()),
		Topic:     topic,
		RoomType:  roomType,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}
}

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeOpen, RoomTypeSocial, RoomTypePrivate:
		return true
	}
	return false
}
