// Package orch ties the connection registry and room registry together into
// the signaling behavior: peer introductions on join, store-and-forward
// relay of negotiation payloads, presence broadcasts and departure teardown.
package orch

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/clubroom/server/internal/app"
	"github.com/clubroom/server/internal/core"
	"github.com/clubroom/server/internal/domain"
	"github.com/clubroom/server/internal/protocol"
)

type Orchestrator struct {
	Registry *app.Registry
	Rooms    *app.RoomRegistry
}

func New(registry *app.Registry, rooms *app.RoomRegistry) *Orchestrator {
	return &Orchestrator{Registry: registry, Rooms: rooms}
}

// Join adds sid to the room and runs the introduction round: every existing
// member is told to await an offer from the newcomer, and the newcomer is
// told to create an offer toward each of them. Making the newcomer the sole
// offerer avoids glare. A repeat join of the same room is a no-op.
func (o *Orchestrator) Join(sid core.SessionID, roomID domain.RoomID, user domain.Profile) {
	o.Registry.AttachUser(sid, user)

	existing, added := o.Rooms.Join(roomID, sid)
	if !added {
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomID)).Msg("repeat join ignored")
		return
	}

	for _, peer := range existing {
		// Both directives of a pair are issued together so each
		// introduction is self-consistent.
		o.emit(peer, protocol.NewAddPeer(string(sid), false, user))
		o.emit(sid, protocol.NewAddPeer(string(peer), true, o.Registry.LookupUser(peer)))
	}
}

// RelayICE forwards a connectivity candidate to one named peer, tagged with
// the sender. Delivery is at-most-once: a gone target means a silent drop.
func (o *Orchestrator) RelayICE(sid core.SessionID, peerID core.SessionID, candidate json.RawMessage) {
	o.emit(peerID, protocol.NewICECandidate(string(sid), candidate))
}

// RelaySDP forwards a session description to one named peer, tagged with the
// sender. Same best-effort contract as RelayICE.
func (o *Orchestrator) RelaySDP(sid core.SessionID, peerID core.SessionID, sdp json.RawMessage) {
	o.emit(peerID, protocol.NewSessionDescription(string(sid), sdp))
}

// SetMute broadcasts a mute or unmute event to every member of the room,
// the sender included. The self-echo is deliberate; clients reconcile their
// own state from it.
func (o *Orchestrator) SetMute(sid core.SessionID, roomID domain.RoomID, userID string, muted bool) {
	msg := protocol.NewMuteState(muted, string(sid), userID)
	for _, member := range o.Rooms.Members(roomID) {
		o.emit(member, msg)
	}
}

// MuteInfo answers a state-sync request by fanning the sender's mute state
// out to every member except the sender, who already knows it.
func (o *Orchestrator) MuteInfo(sid core.SessionID, roomID domain.RoomID, userID string, isMute bool) {
	msg := protocol.NewMuteInfo(userID, string(roomID), isMute)
	for _, member := range o.Rooms.Members(roomID) {
		if member == sid {
			continue
		}
		o.emit(member, msg)
	}
}

// Depart tears down sid's membership in every room it joined and notifies
// the remaining members once per room. Both the explicit leave message and
// the transport disconnect funnel here; a second invocation observes no
// rooms and emits nothing, which makes the race between them harmless.
func (o *Orchestrator) Depart(sid core.SessionID) {
	user := o.Registry.LookupUser(sid)
	for _, roomID := range o.Rooms.RoomsOf(sid) {
		remaining := o.Rooms.Leave(roomID, sid)
		msg := protocol.NewRemovePeer(string(sid), user)
		for _, peer := range remaining {
			o.emit(peer, msg)
		}
	}
	o.Registry.Unregister(sid)
}

// emit encodes and delivers one message to one session. Unknown targets and
// full send buffers are dropped: the relay promises at-most-once delivery
// and nothing more.
func (o *Orchestrator) emit(sid core.SessionID, v any) {
	conn, ok := o.Registry.Connection(sid)
	if !ok {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Msg("emit to unknown session dropped")
		return
	}
	frame, err := protocol.Encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("encode failed")
		return
	}
	if err := conn.TrySend(frame); err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("send dropped")
	}
}
