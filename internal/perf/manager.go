package perf

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catch-arcade/internal/event"
)

// Config tunes the adaptive loop.
type Config struct {
	Window     int           // Rolling sample count
	MinSamples int           // Samples required before any adjustment
	Cooldown   time.Duration // Minimum time between adjustments
	LowRatio   float64       // Downgrade below LowRatio * TargetFPS
	HighRatio  float64       // Upgrade above HighRatio * TargetFPS
	Now        func() time.Time
}

// DefaultConfig returns a 60-sample window, 30 sample minimum, 5s cooldown
// and the 80% / 120% thresholds.
func DefaultConfig() Config {
	return Config{
		Window:     60,
		MinSamples: 30,
		Cooldown:   5 * time.Second,
		LowRatio:   0.8,
		HighRatio:  1.2,
		Now:        time.Now,
	}
}

// Change is published after every adjustment.
type Change struct {
	Tier      Tier
	Previous  Settings
	Settings  Settings
	Dimension Dimension
	Upgrade   bool
	AvgFPS    float64
}

// Manager holds the live quality bundle and adjusts it one dimension at a
// time from measured frame times. It is fed from the simulation tick and is
// not safe for concurrent use.
type Manager struct {
	cfg    Config
	logger *log.Logger

	tier     Tier
	initial  Settings
	settings Settings

	samples    []time.Duration
	next       int
	count      int
	sum        time.Duration
	lastAdjust time.Time

	onChange *event.Handlers[Change]
}

// NewManager starts at the preset of tier. The cooldown runs from construction,
// so the first adjustment can come no earlier than one cooldown in.
func NewManager(tier Tier, cfg Config, logger *log.Logger) *Manager {
	def := DefaultConfig()
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.MinSamples <= 0 || cfg.MinSamples > cfg.Window {
		cfg.MinSamples = min(def.MinSamples, cfg.Window)
	}
	if cfg.Cooldown < 0 {
		cfg.Cooldown = def.Cooldown
	}
	if cfg.LowRatio <= 0 {
		cfg.LowRatio = def.LowRatio
	}
	if cfg.HighRatio <= 0 {
		cfg.HighRatio = def.HighRatio
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	logger = event.Logger(logger)
	preset := Preset(tier)
	return &Manager{
		cfg:        cfg,
		logger:     logger,
		tier:       tier,
		initial:    preset,
		settings:   preset,
		samples:    make([]time.Duration, cfg.Window),
		lastAdjust: cfg.Now(),
		onChange:   event.NewHandlers[Change]("perf.change", logger),
	}
}

// Tier returns the tier the manager was classified into.
func (m *Manager) Tier() Tier { return m.tier }

// Settings returns the live quality bundle.
func (m *Manager) Settings() Settings { return m.settings }

// Initial returns the tier preset the manager started from.
func (m *Manager) Initial() Settings { return m.initial }

// OnChange registers fn to run synchronously after each adjustment.
func (m *Manager) OnChange(fn func(Change)) {
	m.onChange.Subscribe(fn)
}

// Samples returns how many frame times are in the window.
func (m *Manager) Samples() int { return m.count }

// AverageFPS returns the FPS implied by the mean frame time in the window,
// or 0 when the window is empty.
func (m *Manager) AverageFPS() float64 {
	if m.count == 0 || m.sum <= 0 {
		return 0
	}
	avg := m.sum / time.Duration(m.count)
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// Record adds one frame time and runs the control step.
// It reports whether the quality bundle changed.
func (m *Manager) Record(frame time.Duration) bool {
	if frame <= 0 {
		return false
	}
	m.push(frame)
	return m.adjust()
}

func (m *Manager) push(frame time.Duration) {
	if m.count == len(m.samples) {
		m.sum -= m.samples[m.next]
	} else {
		m.count++
	}
	m.samples[m.next] = frame
	m.sum += frame
	m.next = (m.next + 1) % len(m.samples)
}

func (m *Manager) adjust() bool {
	if m.count < m.cfg.MinSamples {
		return false
	}
	now := m.cfg.Now()
	if now.Sub(m.lastAdjust) < m.cfg.Cooldown {
		return false
	}

	target := float64(m.settings.TargetFPS)
	fps := m.AverageFPS()

	var (
		next Settings
		dim  Dimension
		up   bool
	)
	switch {
	case fps < target*m.cfg.LowRatio:
		next, dim = downgrade(m.settings)
	case fps > target*m.cfg.HighRatio:
		next, dim = upgrade(m.settings, m.initial)
		up = true
	default:
		return false
	}
	if dim == DimNone {
		return false
	}

	change := Change{
		Tier:      m.tier,
		Previous:  m.settings,
		Settings:  next,
		Dimension: dim,
		Upgrade:   up,
		AvgFPS:    fps,
	}
	m.settings = next
	m.lastAdjust = now
	m.resetWindow()

	m.logger.Info("quality adjusted",
		"tier", m.tier,
		"dimension", dim,
		"upgrade", up,
		"avg_fps", int(fps),
		"particles", next.ParticleBudget,
		"render_scale", next.RenderScale,
		"aa", next.AntiAliasing,
		"entities", next.EntityBudget,
	)
	m.onChange.Publish(change)
	return true
}

// resetWindow drops samples taken under the old settings.
func (m *Manager) resetWindow() {
	clear(m.samples)
	m.next = 0
	m.count = 0
	m.sum = 0
}
