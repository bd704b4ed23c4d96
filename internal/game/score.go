package game

import (
	"sync"

	"github.com/rs/zerolog"

	"guessword/pkg/realtime"
)

// ScoreController holds a finished game's score and the one-shot
// play-again request.
type ScoreController struct {
	mu        sync.Mutex
	score     int
	playAgain bool
	hub       *realtime.Broadcaster
}

// ScoreSnapshot is the observable state of a ScoreController.
type ScoreSnapshot struct {
	Score     int
	PlayAgain bool
}

// NewScoreController records finalScore. A nil logger disables logging.
func NewScoreController(finalScore int, logger *zerolog.Logger) *ScoreController {
	if logger != nil {
		logger.Info().Int("score", finalScore).Msg("final score")
	}
	return &ScoreController{
		score: finalScore,
		hub:   realtime.NewBroadcaster(),
	}
}

// Score returns the final score handed over at game end.
func (s *ScoreController) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// PlayAgain reports whether a new game has been requested and not yet
// acknowledged.
func (s *ScoreController) PlayAgain() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playAgain
}

// RequestPlayAgain raises the play-again signal.
func (s *ScoreController) RequestPlayAgain() {
	s.setPlayAgain(true)
}

// AcknowledgePlayAgain clears the signal once a new game has started.
func (s *ScoreController) AcknowledgePlayAgain() {
	s.setPlayAgain(false)
}

func (s *ScoreController) setPlayAgain(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playAgain == v {
		return
	}
	s.playAgain = v
	s.hub.Publish(EventPlayAgain)
}

// Snapshot returns a consistent view of the current state.
func (s *ScoreController) Snapshot() ScoreSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ScoreSnapshot{Score: s.score, PlayAgain: s.playAgain}
}

// Subscribe returns a channel of change events.
func (s *ScoreController) Subscribe() chan string {
	return s.hub.Subscribe()
}

// Unsubscribe stops delivery to ch and closes it.
func (s *ScoreController) Unsubscribe(ch chan string) {
	s.hub.Unsubscribe(ch)
}

// Close releases every subscriber.
func (s *ScoreController) Close() {
	s.hub.Close()
}
