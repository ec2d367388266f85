// Package score tracks points and misses for one catcher session and decides
// when the miss rules end it.
package score

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catch-arcade/internal/entity"
	"github.com/vovakirdan/catch-arcade/internal/event"
)

// Config holds the point table and the miss limit.
type Config struct {
	LowPoints            int
	HighPoints           int
	MaxConsecutiveMisses int
}

// DefaultConfig returns 10/50 points and a two-miss limit.
func DefaultConfig() Config {
	return Config{
		LowPoints:            10,
		HighPoints:           50,
		MaxConsecutiveMisses: 2,
	}
}

// Reason says why a session ended.
type Reason int

const (
	ReasonLethalCatch Reason = iota
	ReasonMissLimit
)

func (r Reason) String() string {
	switch r {
	case ReasonLethalCatch:
		return "lethal catch"
	case ReasonMissLimit:
		return "miss limit"
	default:
		return "unknown"
	}
}

// Change is published after every score update.
type Change struct {
	Score int
	Delta int
	Kind  entity.Type
}

// GameOver is published once per session.
type GameOver struct {
	Reason      Reason
	Score       int
	TotalMisses int
}

// System accumulates score and miss counters.
// It is owned by the simulation driver and is not safe for concurrent use.
type System struct {
	cfg    Config
	logger *log.Logger

	score             int
	totalMisses       int
	consecutiveMisses int
	over              bool

	onChange   *event.Handlers[Change]
	onGameOver *event.Handlers[GameOver]
}

// New creates a zeroed score system. A non-positive miss limit falls back to the default.
func New(cfg Config, logger *log.Logger) *System {
	if cfg.MaxConsecutiveMisses <= 0 {
		cfg.MaxConsecutiveMisses = DefaultConfig().MaxConsecutiveMisses
	}
	logger = event.Logger(logger)
	return &System{
		cfg:        cfg,
		logger:     logger,
		onChange:   event.NewHandlers[Change]("score.change", logger),
		onGameOver: event.NewHandlers[GameOver]("score.game_over", logger),
	}
}

// OnChange registers a score-change observer.
func (s *System) OnChange(fn func(Change)) {
	s.onChange.Subscribe(fn)
}

// OnGameOver registers a game-over observer.
func (s *System) OnGameOver(fn func(GameOver)) {
	s.onGameOver.Subscribe(fn)
}

// AddScore records a catch. Low and high value catches add their points
// and clear the consecutive miss count; a lethal catch adds nothing and
// ends the session regardless of the miss count.
func (s *System) AddScore(kind entity.Type) {
	switch kind {
	case entity.TypeLethal:
		s.fireGameOver(ReasonLethalCatch)
		return
	case entity.TypeHigh:
		s.add(kind, s.cfg.HighPoints)
	default:
		s.add(kind, s.cfg.LowPoints)
	}
}

func (s *System) add(kind entity.Type, delta int) {
	s.score += delta
	if s.score < 0 {
		s.score = 0
	}
	s.consecutiveMisses = 0
	s.onChange.Publish(Change{Score: s.score, Delta: delta, Kind: kind})
}

// AddMiss records a missed low or high value projectile.
// It returns true when this miss reached the limit and fired game-over.
func (s *System) AddMiss() bool {
	s.totalMisses++
	if s.consecutiveMisses < s.cfg.MaxConsecutiveMisses {
		s.consecutiveMisses++
	}
	if s.consecutiveMisses >= s.cfg.MaxConsecutiveMisses {
		return s.fireGameOver(ReasonMissLimit)
	}
	return false
}

// ResetConsecutiveMisses clears the consecutive count without touching
// score or total misses. It is the outcome of letting a lethal projectile fall.
func (s *System) ResetConsecutiveMisses() {
	s.consecutiveMisses = 0
}

// fireGameOver publishes game-over unless it already fired this session.
func (s *System) fireGameOver(reason Reason) bool {
	if s.over {
		return false
	}
	s.over = true
	s.logger.Debug("game over", "reason", reason, "score", s.score, "misses", s.totalMisses)
	s.onGameOver.Publish(GameOver{Reason: reason, Score: s.score, TotalMisses: s.totalMisses})
	return true
}

// Reset zeroes every counter and re-arms game-over.
func (s *System) Reset() {
	s.score = 0
	s.totalMisses = 0
	s.consecutiveMisses = 0
	s.over = false
}

// Score returns the current score.
func (s *System) Score() int { return s.score }

// TotalMisses returns every recorded miss this session.
func (s *System) TotalMisses() int { return s.totalMisses }

// ConsecutiveMisses returns misses since the last successful non-lethal catch.
func (s *System) ConsecutiveMisses() int { return s.consecutiveMisses }

// MaxConsecutiveMisses returns the configured miss limit.
func (s *System) MaxConsecutiveMisses() int { return s.cfg.MaxConsecutiveMisses }

// Over reports whether game-over has fired this session.
func (s *System) Over() bool { return s.over }
