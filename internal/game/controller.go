package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"guessword/pkg/realtime"
)

// Change events published by the game and score controllers. Observers
// re-read the relevant Snapshot when one arrives.
const (
	EventWord      = "word"
	EventScore     = "score"
	EventTime      = "time"
	EventFinished  = "finished"
	EventBuzz      = "buzz"
	EventPlayAgain = "playagain"
	EventEnded     = "ended"
)

const (
	DefaultDuration       = 20 * time.Second
	DefaultPanicThreshold = 5 * time.Second
	DefaultUnit           = time.Second
)

// Options configures a Controller. Zero values take the package defaults.
type Options struct {
	// Duration is the total countdown length.
	Duration time.Duration
	// Interval is the spacing between countdown ticks.
	Interval time.Duration
	// Unit is the granularity of Snapshot.RemainingTime.
	Unit time.Duration
	// PanicThreshold starts the per-tick panic buzz once the remaining time
	// is at or below it. A negative value disables the panic period.
	PanicThreshold time.Duration
	Vocabulary     []string
	Rand           *rand.Rand
	Scheduler      realtime.Scheduler
	Logger         *zerolog.Logger
}

// Controller drives a single game session: the word queue, the score, the
// countdown and the one-shot events a UI reacts to. Commands and countdown
// ticks are serialized on the controller's lock.
type Controller struct {
	mu        sync.Mutex
	queue     *WordQueue
	countdown realtime.Countdown
	unit      time.Duration
	panicAt   time.Duration
	task      realtime.Task
	hub       *realtime.Broadcaster
	log       zerolog.Logger

	word         string
	score        int
	buzz         BuzzType
	gameFinished bool
	closed       bool
}

// NewController creates a controller and starts its countdown immediately.
// Callers must Close it when the session ends.
func NewController(opts Options) *Controller {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Interval <= 0 {
		opts.Interval = realtime.DefaultTickInterval
	}
	if opts.Unit <= 0 {
		opts.Unit = DefaultUnit
	}
	if opts.PanicThreshold == 0 {
		opts.PanicThreshold = DefaultPanicThreshold
	}
	if opts.Scheduler == nil {
		opts.Scheduler = realtime.TickerScheduler{}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	c := &Controller{
		queue:     NewWordQueue(opts.Vocabulary, opts.Rand),
		countdown: realtime.NewCountdown(opts.Duration, opts.Interval),
		unit:      opts.Unit,
		panicAt:   opts.PanicThreshold,
		hub:       realtime.NewBroadcaster(),
		log:       logger,
		buzz:      BuzzNone,
	}
	c.word = c.queue.Next()

	// Hold the lock so a fast first tick cannot see a nil task.
	c.mu.Lock()
	c.task = opts.Scheduler.Every(opts.Interval, c.tick)
	c.mu.Unlock()

	c.log.Info().
		Dur("duration", opts.Duration).
		Dur("interval", opts.Interval).
		Int("words", len(c.queue.Vocabulary())).
		Msg("game controller created")
	return c
}

// CorrectGuess scores a point, requests the correct buzz and moves to the
// next word. It is a no-op once the countdown has finished or the controller
// is closed, and reports whether it applied.
func (c *Controller) CorrectGuess() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.activeLocked() {
		return false
	}
	c.score++
	c.hub.Publish(EventScore)
	c.setBuzzLocked(BuzzCorrect)
	c.advanceWordLocked()
	return true
}

// Skip costs a point and moves to the next word. Same no-op rules as CorrectGuess.
func (c *Controller) Skip() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.activeLocked() {
		return false
	}
	c.score--
	c.hub.Publish(EventScore)
	c.advanceWordLocked()
	return true
}

// AcknowledgeGameFinished clears the game-finished signal once the UI has
// moved on.
func (c *Controller) AcknowledgeGameFinished() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gameFinished {
		c.gameFinished = false
		c.hub.Publish(EventFinished)
	}
}

// AcknowledgeBuzz resets the buzz to none after the UI has played it.
func (c *Controller) AcknowledgeBuzz() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buzz != BuzzNone {
		c.setBuzzLocked(BuzzNone)
	}
}

// Close cancels the countdown and waits until no tick can run, then closes
// every subscriber channel. It is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	task := c.task
	score := c.score
	c.mu.Unlock()

	task.Cancel()
	<-task.Done()
	c.hub.Close()
	c.log.Info().Int("score", score).Msg("game controller destroyed")
}

// Subscribe returns a channel of change events.
func (c *Controller) Subscribe() chan string {
	return c.hub.Subscribe()
}

// Unsubscribe stops delivery to ch and closes it.
func (c *Controller) Unsubscribe(ch chan string) {
	c.hub.Unsubscribe(ch)
}

// Finished reports whether the countdown has expired. Unlike
// Snapshot.GameFinished it stays true after acknowledgement.
func (c *Controller) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countdown.Finished()
}

// Score returns the current score.
func (c *Controller) Score() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.score
}

// Snapshot is an immutable view of the controller's observable state.
type Snapshot struct {
	Word          string
	Score         int
	RemainingTime int
	Remaining     time.Duration
	Clock         string
	GameFinished  bool
	Buzz          BuzzType
	Running       bool
}

// Snapshot returns a consistent view of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	units := c.countdown.Units(c.unit)
	return Snapshot{
		Word:          c.word,
		Score:         c.score,
		RemainingTime: units,
		Remaining:     c.countdown.Remaining,
		Clock:         FormatElapsed(time.Duration(units) * c.unit),
		GameFinished:  c.gameFinished,
		Buzz:          c.buzz,
		Running:       c.activeLocked(),
	}
}

func (c *Controller) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.countdown.Finished() {
		return
	}
	_, finished := c.countdown.Tick()
	c.hub.Publish(EventTime)
	if finished {
		c.setBuzzLocked(BuzzGameOver)
		c.gameFinished = true
		c.hub.Publish(EventFinished)
		c.task.Cancel()
		c.log.Info().Int("score", c.score).Int("ticks", c.countdown.Ticks).Msg("game finished")
		return
	}
	if c.countdown.InPanic(c.panicAt) {
		c.setBuzzLocked(BuzzCountdownPanic)
	}
	c.log.Debug().Int("remaining", c.countdown.Units(c.unit)).Msg("tick")
}

func (c *Controller) activeLocked() bool {
	return !c.closed && !c.countdown.Finished()
}

// setBuzzLocked always publishes, so a repeated panic buzz reaches observers
// on every tick.
func (c *Controller) setBuzzLocked(b BuzzType) {
	c.buzz = b
	c.hub.Publish(EventBuzz)
}

func (c *Controller) advanceWordLocked() {
	c.word = c.queue.Next()
	c.hub.Publish(EventWord)
}
