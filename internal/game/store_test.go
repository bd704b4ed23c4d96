package game

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"guessword/pkg/realtime"
)

func newTestStore(t *testing.T) (*Store, *realtime.ManualScheduler) {
	t.Helper()
	sched := realtime.NewManualScheduler()
	s := NewStore(Settings{
		Duration:       3 * time.Second,
		Interval:       time.Second,
		PanicThreshold: time.Second,
		Vocabulary:     []string{"a", "b", "c"},
		Scheduler:      sched,
	}, zerolog.Nop())
	t.Cleanup(s.Close)
	return s, sched
}

func TestStore_CreateSession_GetSession(t *testing.T) {
	s, sched := newTestStore(t)
	sess := s.CreateSession()
	if sess.ID == "" {
		t.Fatal("session ID is empty")
	}
	if sess.Game() == nil {
		t.Fatal("session has no game")
	}
	if sess.Ended() {
		t.Error("new session should not be ended")
	}
	if got := sess.Game().Snapshot().RemainingTime; got != 3 {
		t.Errorf("RemainingTime %d, want 3", got)
	}
	if sched.Live() != 1 {
		t.Errorf("Live tasks %d, want 1", sched.Live())
	}

	got, ok := s.GetSession(sess.ID)
	if !ok || got != sess {
		t.Fatal("GetSession did not return the created session")
	}
	if _, ok := s.GetSession("nonexistent"); ok {
		t.Error("GetSession should return false for missing ID")
	}
}

func TestStore_CreateSessionWithDuration(t *testing.T) {
	s, _ := newTestStore(t)
	sess := s.CreateSessionWithDuration(10 * time.Second)
	if got := sess.Game().Snapshot().RemainingTime; got != 10 {
		t.Errorf("RemainingTime %d, want 10", got)
	}
}

func TestStore_EndGame(t *testing.T) {
	s, sched := newTestStore(t)
	sess := s.CreateSession()

	if _, err := s.EndGame(sess.ID); !errors.Is(err, ErrGameInProgress) {
		t.Fatalf("EndGame while running: %v, want ErrGameInProgress", err)
	}

	sess.Game().CorrectGuess()
	sess.Game().CorrectGuess()
	sess.Game().Skip()
	sched.FireN(3)

	hub, _ := s.Broadcaster(sess.ID)
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	sc, err := s.EndGame(sess.ID)
	if err != nil {
		t.Fatalf("EndGame: %v", err)
	}
	if sc.Score() != 1 {
		t.Errorf("final score %d, want 1", sc.Score())
	}
	if sess.Game().Snapshot().GameFinished {
		t.Error("EndGame should acknowledge the finished signal")
	}
	if !sess.Ended() {
		t.Error("session should be ended")
	}
	if got := <-ch; got != EventEnded {
		t.Errorf("event %q, want %q", got, EventEnded)
	}

	again, err := s.EndGame(sess.ID)
	if err != nil || again != sc {
		t.Errorf("second EndGame = (%p, %v), want same controller", again, err)
	}
	if _, err := s.EndGame("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("EndGame missing: %v", err)
	}
}

func TestStore_PlayAgain(t *testing.T) {
	s, sched := newTestStore(t)
	sess := s.CreateSession()

	if _, err := s.PlayAgain(sess.ID); !errors.Is(err, ErrNotEnded) {
		t.Fatalf("PlayAgain before end: %v, want ErrNotEnded", err)
	}

	sched.FireN(3)
	sc, err := s.EndGame(sess.ID)
	if err != nil {
		t.Fatalf("EndGame: %v", err)
	}
	next, err := s.PlayAgain(sess.ID)
	if err != nil {
		t.Fatalf("PlayAgain: %v", err)
	}
	if next.ID == sess.ID {
		t.Error("PlayAgain should create a new session")
	}
	if sc.PlayAgain() {
		t.Error("play-again signal should be acknowledged once the new game exists")
	}
	snap := next.Game().Snapshot()
	if snap.Score != 0 || !snap.Running {
		t.Errorf("new game snapshot %+v", snap)
	}
	if s.Len() != 1 {
		t.Errorf("Len %d, want 1", s.Len())
	}
	if _, ok := s.GetSession(sess.ID); ok {
		t.Error("old session should be removed after PlayAgain")
	}
	if _, err := s.PlayAgain("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("PlayAgain missing: %v", err)
	}
}

func TestStore_RemoveAndClose(t *testing.T) {
	s, sched := newTestStore(t)
	a := s.CreateSession()
	s.CreateSession()

	if !s.Remove(a.ID) {
		t.Fatal("Remove returned false for existing session")
	}
	if s.Remove(a.ID) {
		t.Error("second Remove should return false")
	}
	if a.Game().CorrectGuess() {
		t.Error("removed session's game should be closed")
	}

	s.Close()
	if s.Len() != 0 {
		t.Errorf("Len %d after Close, want 0", s.Len())
	}
	if sched.Live() != 0 {
		t.Errorf("Live tasks %d after Close, want 0", sched.Live())
	}
}

func TestStore_Sweep(t *testing.T) {
	s, sched := newTestStore(t)
	finished := s.CreateSession()
	ended := s.CreateSession()
	sched.FireN(3)
	if _, err := s.EndGame(ended.ID); err != nil {
		t.Fatalf("EndGame: %v", err)
	}
	running := s.CreateSession()

	now := time.Now().UTC()
	if got := s.Sweep(now, time.Hour); got != 0 {
		t.Errorf("Sweep removed %d young sessions, want 0", got)
	}

	if got := s.Sweep(now.Add(2*time.Hour), time.Hour); got != 2 {
		t.Errorf("Sweep removed %d, want 2", got)
	}
	if _, ok := s.GetSession(finished.ID); ok {
		t.Error("finished session should be swept")
	}
	if _, ok := s.GetSession(ended.ID); ok {
		t.Error("ended session should be swept")
	}
	if _, ok := s.GetSession(running.ID); !ok {
		t.Error("running session must be kept")
	}
}

func TestStore_StartSweeper(t *testing.T) {
	s, sched := newTestStore(t)
	sess := s.CreateSession()
	sched.FireN(3)

	task := s.StartSweeper(time.Minute, 0)
	defer task.Cancel()
	sched.Fire()
	if _, ok := s.GetSession(sess.ID); ok {
		t.Error("sweeper should remove the finished session")
	}
}
