package game

import (
	"fmt"
	"time"
)

// BuzzType names a haptic pattern the presentation layer should play.
type BuzzType int

const (
	BuzzNone BuzzType = iota
	BuzzCorrect
	BuzzGameOver
	BuzzCountdownPanic
)

// Patterns alternate delay and vibration duration, starting with a delay.
var buzzPatterns = map[BuzzType][]time.Duration{
	BuzzCorrect:        ms(100, 100, 100, 100, 100, 100),
	BuzzGameOver:       ms(0, 2000),
	BuzzCountdownPanic: ms(0, 200),
	BuzzNone:           ms(0),
}

func ms(values ...int) []time.Duration {
	out := make([]time.Duration, len(values))
	for i, v := range values {
		out[i] = time.Duration(v) * time.Millisecond
	}
	return out
}

// Pattern returns a copy of the delay/duration sequence for b.
func (b BuzzType) Pattern() []time.Duration {
	p, ok := buzzPatterns[b]
	if !ok {
		p = buzzPatterns[BuzzNone]
	}
	out := make([]time.Duration, len(p))
	copy(out, p)
	return out
}

// PatternMillis returns the pattern as whole milliseconds, the shape the
// browser vibration API expects.
func (b BuzzType) PatternMillis() []int64 {
	p := b.Pattern()
	out := make([]int64, len(p))
	for i, d := range p {
		out[i] = d.Milliseconds()
	}
	return out
}

func (b BuzzType) String() string {
	switch b {
	case BuzzNone:
		return "none"
	case BuzzCorrect:
		return "correct"
	case BuzzGameOver:
		return "game_over"
	case BuzzCountdownPanic:
		return "countdown_panic"
	default:
		return fmt.Sprintf("BuzzType(%d)", int(b))
	}
}

func (b BuzzType) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}
