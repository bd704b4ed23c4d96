package realtime

import "testing"

func TestRoomStore_Create_Get(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("room1", "state1")
	room, ok := s.Get("room1")
	if !ok {
		t.Fatal("Get returned false for existing room")
	}
	if room.ID != "room1" {
		t.Errorf("room ID %q, want room1", room.ID)
	}
	if room.State != "state1" {
		t.Errorf("room State %q, want state1", room.State)
	}

	_, ok = s.Get("nonexistent")
	if ok {
		t.Error("Get should return false for missing ID")
	}
}

func TestRoomStore_Publish(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("r1", "x")
	hub, ok := s.Broadcaster("r1")
	if !ok {
		t.Fatal("Broadcaster returned false for existing room")
	}
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	s.Publish("r1", "ended")
	got := <-ch
	if got != "ended" {
		t.Errorf("got %q, want ended", got)
	}

	// Unknown rooms are ignored rather than created.
	s.Publish("missing", "ended")
	if _, ok := s.Get("missing"); ok {
		t.Error("Publish should not create rooms")
	}
}

func TestRoomStore_Delete(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("r1", "x")
	hub, _ := s.Broadcaster("r1")
	ch := hub.Subscribe()

	room, ok := s.Delete("r1")
	if !ok || room.State != "x" {
		t.Fatalf("Delete = (%v, %v)", room, ok)
	}
	if _, open := <-ch; open {
		t.Error("subscriber should be closed when the room is deleted")
	}
	if _, ok := s.Delete("r1"); ok {
		t.Error("second Delete should report false")
	}
	if s.Len() != 0 {
		t.Errorf("Len %d, want 0", s.Len())
	}
}

func TestRoomStore_Range(t *testing.T) {
	s := NewRoomStore[int]()
	s.Create("a", 1)
	s.Create("b", 2)
	s.Create("c", 3)

	sum := 0
	s.Range(func(r *Room[int]) bool {
		sum += r.State
		return true
	})
	if sum != 6 {
		t.Errorf("sum %d, want 6", sum)
	}

	visited := 0
	s.Range(func(r *Room[int]) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("visited %d, want 1 after early stop", visited)
	}
}
