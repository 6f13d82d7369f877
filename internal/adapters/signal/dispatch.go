package signal

import (
	"github.com/rs/zerolog/log"

	"github.com/clubroom/server/internal/core"
	"github.com/clubroom/server/internal/domain"
	"github.com/clubroom/server/internal/protocol"
)

// dispatch handles one inbound frame. Faults stay contained here: a
// malformed message or a panicking handler only affects the sending
// connection, never the others.
func (ctl *Controller) dispatch(sid core.SessionID, conn core.SignalConnection, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("module", "signal").Str("sid", string(sid)).Msg("handler panic contained")
		}
	}()

	msg, err := protocol.DecodeClient(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("rejected message")
		ctl.sendError(conn, "bad_payload")
		return
	}

	switch m := msg.(type) {
	case protocol.Join:
		ctl.Orch.Join(sid, domain.RoomID(m.RoomID), m.User)
	case protocol.RelayICE:
		ctl.Orch.RelayICE(sid, core.SessionID(m.PeerID), m.Candidate)
	case protocol.RelaySDP:
		ctl.Orch.RelaySDP(sid, core.SessionID(m.PeerID), m.SessionDescription)
	case protocol.Mute:
		ctl.Orch.SetMute(sid, domain.RoomID(m.RoomID), m.UserID, true)
	case protocol.Unmute:
		ctl.Orch.SetMute(sid, domain.RoomID(m.RoomID), m.UserID, false)
	case protocol.MuteInfo:
		ctl.Orch.MuteInfo(sid, domain.RoomID(m.RoomID), m.UserID, m.IsMute)
	case protocol.Leave:
		ctl.Orch.Depart(sid)
	}
}

func (ctl *Controller) sendError(conn core.SignalConnection, reason string) {
	frame, err := protocol.Encode(map[string]any{"type": "error", "error": reason})
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("encode error ack")
		return
	}
	_ = conn.TrySend(frame)
}
