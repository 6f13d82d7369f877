package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/clubroom/server/internal/adapters/signal"
	"github.com/clubroom/server/internal/app"
	"github.com/clubroom/server/internal/app/orch"
	"github.com/clubroom/server/internal/config"
)

// ClientTokenMiddleware attaches a stable client identity cookie before any
// signaling starts. It stands in for the identity provider, which is a
// separate service.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator, directory *app.Directory) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("ClubroomSessions", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	signalCtl := signal.NewController(o, cfg)
	roomsCtl := &RoomsController{Directory: directory, Rooms: o.Rooms}

	api := r.Group("/api")
	api.GET("/ws/signal", func(c *gin.Context) {
		signalCtl.HandleSignal(ctx, c)
	})
	api.GET("/rooms", roomsCtl.ListRooms)
	api.POST("/rooms", roomsCtl.CreateRoom)
	api.GET("/rooms/:roomID", roomsCtl.GetRoom)
	api.GET("/ice", ICEHandler(cfg))

	return r
}
