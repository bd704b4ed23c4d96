package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"guessword/pkg/realtime"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrGameInProgress  = errors.New("game still in progress")
	ErrNotEnded        = errors.New("game has not ended")
)

// Settings are the countdown parameters applied to every new session.
type Settings struct {
	Duration       time.Duration
	Interval       time.Duration
	PanicThreshold time.Duration
	Vocabulary     []string
	Scheduler      realtime.Scheduler
}

// Session moves through two screens: a running game, then the score screen
// once the game has ended.
type Session struct {
	mu        sync.Mutex
	ID        string
	CreatedAt time.Time
	game      *Controller
	score     *ScoreController
}

// Game returns the session's game controller.
func (s *Session) Game() *Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game
}

// Score returns the score controller, or nil while the game is running.
func (s *Session) Score() *ScoreController {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Ended reports whether the session has moved to the score screen.
func (s *Session) Ended() bool {
	return s.Score() != nil
}

// Store holds sessions and delegates to realtime.RoomStore for lookup and broadcast.
type Store struct {
	r        *realtime.RoomStore[*Session]
	settings Settings
	log      zerolog.Logger
}

// NewStore creates an in-memory session store.
func NewStore(settings Settings, logger zerolog.Logger) *Store {
	return &Store{
		r:        realtime.NewRoomStore[*Session](),
		settings: settings,
		log:      logger,
	}
}

// CreateSession starts a new game with the store's settings.
func (s *Store) CreateSession() *Session {
	return s.CreateSessionWithDuration(s.settings.Duration)
}

// CreateSessionWithDuration starts a new game lasting d; d <= 0 uses the
// store's duration.
func (s *Store) CreateSessionWithDuration(d time.Duration) *Session {
	if d <= 0 {
		d = s.settings.Duration
	}
	id := uuid.NewString()
	logger := s.log.With().Str("session", id).Logger()
	sess := &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
	}
	sess.game = NewController(Options{
		Duration:       d,
		Interval:       s.settings.Interval,
		PanicThreshold: s.settings.PanicThreshold,
		Vocabulary:     s.settings.Vocabulary,
		Scheduler:      s.settings.Scheduler,
		Logger:         &logger,
	})
	s.r.Create(id, sess)
	return sess
}

// GetSession returns a session by ID if it exists.
func (s *Store) GetSession(id string) (*Session, bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.State, true
}

// Broadcaster returns the session-level broadcaster used for screen changes.
func (s *Store) Broadcaster(id string) (*realtime.Broadcaster, bool) {
	return s.r.Broadcaster(id)
}

// EndGame hands a finished game's score to a new ScoreController and tears
// the game controller down. Calling it again returns the same controller.
func (s *Store) EndGame(id string) (*ScoreController, error) {
	sess, ok := s.GetSession(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.mu.Lock()
	if sess.score != nil {
		sc := sess.score
		sess.mu.Unlock()
		return sc, nil
	}
	if !sess.game.Finished() {
		sess.mu.Unlock()
		return nil, ErrGameInProgress
	}
	sess.game.AcknowledgeGameFinished()
	final := sess.game.Score()
	logger := s.log.With().Str("session", id).Logger()
	sess.score = NewScoreController(final, &logger)
	sc := sess.score
	sess.mu.Unlock()

	sess.game.Close()
	s.r.Publish(id, EventEnded)
	return sc, nil
}

// PlayAgain starts a fresh session from an ended one and drops the old
// session, whose score screen is done.
func (s *Store) PlayAgain(id string) (*Session, error) {
	sess, ok := s.GetSession(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	sc := sess.Score()
	if sc == nil {
		return nil, ErrNotEnded
	}
	sc.RequestPlayAgain()
	next := s.CreateSession()
	sc.AcknowledgePlayAgain()
	s.Remove(id)
	s.log.Info().Str("from", id).Str("session", next.ID).Msg("play again")
	return next, nil
}

// Remove deletes a session and releases its controllers.
func (s *Store) Remove(id string) bool {
	room, ok := s.r.Delete(id)
	if !ok {
		return false
	}
	release(room.State)
	return true
}

// Sweep removes sessions created at or before now-maxAge whose game has finished,
// whether or not the score screen was ever reached. Running games are kept.
// It returns how many sessions were removed.
func (s *Store) Sweep(now time.Time, maxAge time.Duration) int {
	cutoff := now.Add(-maxAge)
	var stale []string
	s.r.Range(func(r *realtime.Room[*Session]) bool {
		sess := r.State
		if !sess.CreatedAt.After(cutoff) && (sess.Ended() || sess.Game().Finished()) {
			stale = append(stale, r.ID)
		}
		return true
	})
	removed := 0
	for _, id := range stale {
		if s.Remove(id) {
			removed++
		}
	}
	if removed > 0 {
		s.log.Info().Int("sessions", removed).Dur("max_age", maxAge).Msg("swept stale sessions")
	}
	return removed
}

// StartSweeper runs Sweep every interval on the store's scheduler until the
// returned task is cancelled.
func (s *Store) StartSweeper(interval, maxAge time.Duration) realtime.Task {
	sched := s.settings.Scheduler
	if sched == nil {
		sched = realtime.TickerScheduler{}
	}
	return sched.Every(interval, func() {
		s.Sweep(time.Now().UTC(), maxAge)
	})
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.r.Len()
}

// Close tears down every session so no countdown outlives the store.
func (s *Store) Close() {
	var ids []string
	s.r.Range(func(r *realtime.Room[*Session]) bool {
		ids = append(ids, r.ID)
		return true
	})
	for _, id := range ids {
		s.Remove(id)
	}
	s.log.Info().Int("sessions", len(ids)).Msg("session store closed")
}

func release(sess *Session) {
	sess.game.Close()
	if sc := sess.Score(); sc != nil {
		sc.Close()
	}
}
