package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"

	"github.com/clubroom/server/internal/config"
)

// ICEServers builds the server catalogue clients plug into their
// RTCPeerConnection configuration.
func ICEServers(cfg *config.Config) []webrtc.ICEServer {
	out := make([]webrtc.ICEServer, 0, len(cfg.STUNServers))
	for _, url := range cfg.STUNServers {
		out = append(out, webrtc.ICEServer{URLs: []string{url}})
	}
	return out
}

// ICEHandler serves the catalogue so clients do not hardcode STUN URLs.
func ICEHandler(cfg *config.Config) gin.HandlerFunc {
	servers := ICEServers(cfg)
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": servers})
	}
}
