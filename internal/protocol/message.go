// Package protocol defines the closed catalogue of signal messages exchanged
// between clients and the relay. Inbound payloads are validated here, at the
// transport boundary, so handler logic only ever sees well-formed messages.
// Negotiation payloads (SDP, ICE candidates) stay opaque: they are carried as
// raw JSON and forwarded byte-identical.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clubroom/server/internal/core"
	"github.com/clubroom/server/internal/domain"
)

// Event names on the wire.
const (
	EventJoin               = "join"
	EventAddPeer            = "add_peer"
	EventRelayICE           = "relay_ice"
	EventICECandidate       = "ice_candidate"
	EventRelaySDP           = "relay_sdp"
	EventSessionDescription = "session_description"
	EventMute               = "mute"
	EventUnmute             = "unmute"
	EventMuteInfo           = "mute_info"
	EventLeave              = "leave"
	EventRemovePeer         = "remove_peer"
)

var (
	ErrUnknownEvent     = errors.New("unknown event")
	ErrMissingRoom      = errors.New("missing roomId")
	ErrMissingPeer      = errors.New("missing peerId")
	ErrMissingUser      = errors.New("missing userId")
	ErrMissingCandidate = errors.New("missing candidate")
	ErrMissingSDP       = errors.New("missing sessionDescription")
)

// ClientMessage is one parsed and validated inbound message.
type ClientMessage interface{ clientMessage() }

type Join struct {
	RoomID string         `json:"roomId"`
	User   domain.Profile `json:"user"`
}

type RelayICE struct {
	PeerID    string          `json:"peerId"`
	Candidate json.RawMessage `json:"candidate"`
}

type RelaySDP struct {
	PeerID             string          `json:"peerId"`
	SessionDescription json.RawMessage `json:"sessionDescription"`
}

type Mute struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

type Unmute struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

// MuteInfo is a state-sync request: the sender reports its own mute state and
// the relay fans it out to everyone else in the room. The same shape is used
// for the outbound broadcast.
type MuteInfo struct {
	Type   string `json:"type,omitempty"`
	UserID string `json:"userId"`
	RoomID string `json:"roomId"`
	IsMute bool   `json:"isMute"`
}

type Leave struct{}

func (Join) clientMessage()     {}
func (RelayICE) clientMessage() {}
func (RelaySDP) clientMessage() {}
func (Mute) clientMessage()     {}
func (Unmute) clientMessage()   {}
func (MuteInfo) clientMessage() {}
func (Leave) clientMessage()    {}

// DecodeClient parses one inbound frame. A nil error guarantees the returned
// message has every required field present.
func DecodeClient(data []byte) (ClientMessage, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Type {
	case EventJoin:
		var m Join
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode join: %w", err)
		}
		if m.RoomID == "" {
			return nil, ErrMissingRoom
		}
		return m, nil
	case EventRelayICE:
		var m RelayICE
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode relay_ice: %w", err)
		}
		if m.PeerID == "" {
			return nil, ErrMissingPeer
		}
		if len(m.Candidate) == 0 {
			return nil, ErrMissingCandidate
		}
		return m, nil
	case EventRelaySDP:
		var m RelaySDP
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode relay_sdp: %w", err)
		}
		if m.PeerID == "" {
			return nil, ErrMissingPeer
		}
		if len(m.SessionDescription) == 0 {
			return nil, ErrMissingSDP
		}
		return m, nil
	case EventMute:
		var m Mute
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode mute: %w", err)
		}
		if m.RoomID == "" {
			return nil, ErrMissingRoom
		}
		if m.UserID == "" {
			return nil, ErrMissingUser
		}
		return m, nil
	case EventUnmute:
		var m Unmute
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode unmute: %w", err)
		}
		if m.RoomID == "" {
			return nil, ErrMissingRoom
		}
		if m.UserID == "" {
			return nil, ErrMissingUser
		}
		return m, nil
	case EventMuteInfo:
		var m MuteInfo
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode mute_info: %w", err)
		}
		if m.RoomID == "" {
			return nil, ErrMissingRoom
		}
		if m.UserID == "" {
			return nil, ErrMissingUser
		}
		return m, nil
	case EventLeave:
		return Leave{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Type)
	}
}

// AddPeer instructs the recipient to start (or await) negotiation with PeerID.
type AddPeer struct {
	Type        string         `json:"type"`
	PeerID      string         `json:"peerId"`
	CreateOffer bool           `json:"createOffer"`
	User        domain.Profile `json:"user"`
}

func NewAddPeer(peerID string, createOffer bool, user domain.Profile) AddPeer {
	return AddPeer{Type: EventAddPeer, PeerID: peerID, CreateOffer: createOffer, User: user}
}

// ICECandidate is a relayed connectivity candidate, tagged with the sender.
type ICECandidate struct {
	Type      string          `json:"type"`
	PeerID    string          `json:"peerId"`
	Candidate json.RawMessage `json:"candidate"`
}

func NewICECandidate(peerID string, candidate json.RawMessage) ICECandidate {
	return ICECandidate{Type: EventICECandidate, PeerID: peerID, Candidate: candidate}
}

// SessionDescription is a relayed negotiation payload, tagged with the sender.
type SessionDescription struct {
	Type               string          `json:"type"`
	PeerID             string          `json:"peerId"`
	SessionDescription json.RawMessage `json:"sessionDescription"`
}

func NewSessionDescription(peerID string, sdp json.RawMessage) SessionDescription {
	return SessionDescription{Type: EventSessionDescription, PeerID: peerID, SessionDescription: sdp}
}

// MuteState is the room-wide mute/unmute broadcast.
type MuteState struct {
	Type   string `json:"type"`
	PeerID string `json:"peerId"`
	UserID string `json:"userId"`
}

func NewMuteState(muted bool, peerID, userID string) MuteState {
	event := EventUnmute
	if muted {
		event = EventMute
	}
	return MuteState{Type: event, PeerID: peerID, UserID: userID}
}

func NewMuteInfo(userID, roomID string, isMute bool) MuteInfo {
	return MuteInfo{Type: EventMuteInfo, UserID: userID, RoomID: roomID, IsMute: isMute}
}

// RemovePeer informs remaining members that a peer departed. User carries the
// profile the peer joined with, null when it never joined.
type RemovePeer struct {
	Type   string         `json:"type"`
	PeerID string         `json:"peerId"`
	UserID domain.Profile `json:"userId"`
}

func NewRemovePeer(peerID string, user domain.Profile) RemovePeer {
	return RemovePeer{Type: EventRemovePeer, PeerID: peerID, UserID: user}
}

// Encode marshals a server-emitted message into a wire frame.
func Encode(v any) (core.Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode signal message: %w", err)
	}
	return core.Frame(b), nil
}
