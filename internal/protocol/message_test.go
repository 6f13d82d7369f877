package protocol

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeClientValid(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		check func(t *testing.T, msg ClientMessage)
	}{
		{
			name: "join",
			data: `{"type":"join","roomId":"room-1","user":{"id":"u1","name":"Alice"}}`,
			check: func(t *testing.T, msg ClientMessage) {
				m, ok := msg.(Join)
				if !ok {
					t.Fatalf("got %T, want Join", msg)
				}
				if m.RoomID != "room-1" {
					t.Fatalf("RoomID = %q", m.RoomID)
				}
				if string(m.User) != `{"id":"u1","name":"Alice"}` {
					t.Fatalf("User = %s", m.User)
				}
			},
		},
		{
			name: "relay_ice keeps candidate opaque",
			data: `{"type":"relay_ice","peerId":"p1","candidate":{"candidate":"candidate:1 1 udp 2122260223 10.0.0.1 54321 typ host","sdpMid":"0"}}`,
			check: func(t *testing.T, msg ClientMessage) {
				m, ok := msg.(RelayICE)
				if !ok {
					t.Fatalf("got %T, want RelayICE", msg)
				}
				if m.PeerID != "p1" {
					t.Fatalf("PeerID = %q", m.PeerID)
				}
				if !json.Valid(m.Candidate) {
					t.Fatalf("candidate not preserved: %s", m.Candidate)
				}
			},
		},
		{
			name: "relay_sdp",
			data: `{"type":"relay_sdp","peerId":"p2","sessionDescription":{"type":"offer","sdp":"v=0..."}}`,
			check: func(t *testing.T, msg ClientMessage) {
				m, ok := msg.(RelaySDP)
				if !ok {
					t.Fatalf("got %T, want RelaySDP", msg)
				}
				if m.PeerID != "p2" || len(m.SessionDescription) == 0 {
					t.Fatalf("m = %+v", m)
				}
			},
		},
		{
			name: "mute",
			data: `{"type":"mute","roomId":"room-1","userId":"u1"}`,
			check: func(t *testing.T, msg ClientMessage) {
				if m, ok := msg.(Mute); !ok || m.UserID != "u1" {
					t.Fatalf("got %T %+v", msg, msg)
				}
			},
		},
		{
			name: "unmute",
			data: `{"type":"unmute","roomId":"room-1","userId":"u1"}`,
			check: func(t *testing.T, msg ClientMessage) {
				if _, ok := msg.(Unmute); !ok {
					t.Fatalf("got %T, want Unmute", msg)
				}
			},
		},
		{
			name: "mute_info",
			data: `{"type":"mute_info","userId":"u1","roomId":"room-1","isMute":true}`,
			check: func(t *testing.T, msg ClientMessage) {
				m, ok := msg.(MuteInfo)
				if !ok {
					t.Fatalf("got %T, want MuteInfo", msg)
				}
				if !m.IsMute {
					t.Fatal("IsMute = false, want true")
				}
			},
		},
		{
			name: "leave",
			data: `{"type":"leave"}`,
			check: func(t *testing.T, msg ClientMessage) {
				if _, ok := msg.(Leave); !ok {
					t.Fatalf("got %T, want Leave", msg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := DecodeClient([]byte(tt.data))
			if err != nil {
				t.Fatalf("DecodeClient: %v", err)
			}
			tt.check(t, msg)
		})
	}
}

func TestDecodeClientRejects(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"join without roomId", `{"type":"join","user":{"id":"u1"}}`, ErrMissingRoom},
		{"relay_ice without peerId", `{"type":"relay_ice","candidate":{}}`, ErrMissingPeer},
		{"relay_ice without candidate", `{"type":"relay_ice","peerId":"p1"}`, ErrMissingCandidate},
		{"relay_sdp without sdp", `{"type":"relay_sdp","peerId":"p1"}`, ErrMissingSDP},
		{"mute without userId", `{"type":"mute","roomId":"room-1"}`, ErrMissingUser},
		{"mute_info without roomId", `{"type":"mute_info","userId":"u1"}`, ErrMissingRoom},
		{"unknown event", `{"type":"dance"}`, ErrUnknownEvent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeClient([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := DecodeClient([]byte(`not json`)); err == nil {
		t.Fatal("garbage input accepted")
	}
}

func TestEncodeAddPeer(t *testing.T) {
	frame, err := Encode(NewAddPeer("p1", true, json.RawMessage(`{"id":"u1"}`)))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var got AddPeer
	if err := json.Unmarshal(frame, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != EventAddPeer || got.PeerID != "p1" || !got.CreateOffer {
		t.Fatalf("got %+v", got)
	}
	if string(got.User) != `{"id":"u1"}` {
		t.Fatalf("User = %s", got.User)
	}
}

func TestNewMuteStatePicksEvent(t *testing.T) {
	if got := NewMuteState(true, "p1", "u1").Type; got != EventMute {
		t.Fatalf("muted type = %q", got)
	}
	if got := NewMuteState(false, "p1", "u1").Type; got != EventUnmute {
		t.Fatalf("unmuted type = %q", got)
	}
}
