package viewmodel

// HomePage holds data for the start screen.
type HomePage struct {
	Title       string
	DurationSec int
	MinSec      int
	MaxSec      int
}

// Board holds the live part of the game screen: word, score and clock.
type Board struct {
	SessionID     string
	Word          string
	Score         int
	Clock         string
	RemainingTime int
	Running       bool
}

// GamePage holds data for the game screen.
type GamePage struct {
	Title     string
	SessionID string
	Board     Board
}

// ScorePage holds data for the final score screen.
type ScorePage struct {
	Title     string
	SessionID string
	Score     int
}

// Buzz is the payload of a buzz stream event.
type Buzz struct {
	Type    string  `json:"type"`
	Pattern []int64 `json:"pattern"`
}
