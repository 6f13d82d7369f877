package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubroom/server/internal/app"
	"github.com/clubroom/server/internal/domain"
)

// RoomsController serves the room directory. Member counts come from the
// live room registry, everything else from the in-memory directory.
type RoomsController struct {
	Directory *app.Directory
	Rooms     *app.RoomRegistry
}

type roomView struct {
	*domain.Room
	MemberCount int `json:"memberCount"`
}

func (ctl *RoomsController) view(room *domain.Room) roomView {
	return roomView{Room: room, MemberCount: ctl.Rooms.MemberCount(room.ID)}
}

func (ctl *RoomsController) CreateRoom(c *gin.Context) {
	type createRoomRequest struct {
		Topic    string `json:"topic" binding:"required"`
		RoomType string `json:"roomType" binding:"required"`
	}
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	roomType := domain.RoomType(req.RoomType)
	if !roomType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room type"})
		return
	}

	room := ctl.Directory.Create(req.Topic, roomType, c.GetString("client_token"))
	c.JSON(http.StatusCreated, gin.H{"room": ctl.view(room)})
}

func (ctl *RoomsController) ListRooms(c *gin.Context) {
	// private rooms are reachable by id but never listed
	rooms := ctl.Directory.List(domain.RoomTypeOpen, domain.RoomTypeSocial)
	out := make([]roomView, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, ctl.view(room))
	}
	c.JSON(http.StatusOK, gin.H{"rooms": out})
}

func (ctl *RoomsController) GetRoom(c *gin.Context) {
	room, ok := ctl.Directory.Get(domain.RoomID(c.Param("roomID")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": ctl.view(room)})
}
