package app

import (
	"testing"

	"github.com/clubroom/server/internal/core"
	"github.com/clubroom/server/internal/domain"
)

func TestJoinReturnsPreJoinSnapshot(t *testing.T) {
	r := NewRoomRegistry()

	existing, added := r.Join("room-1", "a")
	if !added {
		t.Fatal("first join not added")
	}
	if len(existing) != 0 {
		t.Fatalf("first join existing = %v, want empty", existing)
	}

	existing, added = r.Join("room-1", "b")
	if !added {
		t.Fatal("second member not added")
	}
	if len(existing) != 1 || existing[0] != "a" {
		t.Fatalf("existing = %v, want [a]", existing)
	}

	if got := r.MemberCount("room-1"); got != 2 {
		t.Fatalf("MemberCount = %d, want 2", got)
	}
}

func TestRepeatJoinIsNoOp(t *testing.T) {
	r := NewRoomRegistry()
	r.Join("room-1", "a")

	existing, added := r.Join("room-1", "a")
	if added {
		t.Fatal("repeat join reported added")
	}
	if existing != nil {
		t.Fatalf("repeat join existing = %v, want nil", existing)
	}
	if got := r.MemberCount("room-1"); got != 1 {
		t.Fatalf("MemberCount = %d, want 1", got)
	}
}

func TestRoomsOfTracksMembership(t *testing.T) {
	r := NewRoomRegistry()
	r.Join("room-1", "a")
	r.Join("room-2", "a")

	rooms := r.RoomsOf("a")
	if len(rooms) != 2 {
		t.Fatalf("RoomsOf = %v, want two rooms", rooms)
	}

	r.Leave("room-1", "a")
	rooms = r.RoomsOf("a")
	if len(rooms) != 1 || rooms[0] != "room-2" {
		t.Fatalf("RoomsOf after leave = %v, want [room-2]", rooms)
	}
}

func TestLeaveReturnsRemainingAndPrunes(t *testing.T) {
	r := NewRoomRegistry()
	r.Join("room-1", "a")
	r.Join("room-1", "b")

	remaining := r.Leave("room-1", "a")
	if len(remaining) != 1 || remaining[0] != "b" {
		t.Fatalf("remaining = %v, want [b]", remaining)
	}

	r.Leave("room-1", "b")
	if _, ok := r.members["room-1"]; ok {
		t.Fatal("empty room entry not pruned")
	}
	if len(r.joined) != 0 {
		t.Fatalf("joined index not pruned: %v", r.joined)
	}
}

func TestLeaveNonMemberIsNoOp(t *testing.T) {
	r := NewRoomRegistry()
	r.Join("room-1", "a")

	if remaining := r.Leave("room-1", "ghost"); remaining != nil {
		t.Fatalf("remaining = %v, want nil", remaining)
	}
	if remaining := r.Leave("no-such-room", "a"); remaining != nil {
		t.Fatalf("remaining = %v, want nil", remaining)
	}
	if got := r.MemberCount("room-1"); got != 1 {
		t.Fatalf("MemberCount = %d, want 1", got)
	}
}

func TestMembersSnapshot(t *testing.T) {
	r := NewRoomRegistry()
	r.Join("room-1", "a")
	r.Join("room-1", "b")

	members := r.Members("room-1")
	if len(members) != 2 {
		t.Fatalf("Members = %v, want two entries", members)
	}
	seen := map[core.SessionID]bool{}
	for _, m := range members {
		seen[m] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Fatalf("Members = %v, want a and b", members)
	}

	if got := r.Members(domain.RoomID("unknown")); len(got) != 0 {
		t.Fatalf("Members(unknown) = %v, want empty", got)
	}
}
