// Package catcher implements the falling-object catcher.
// A shooter sweeps the top of the screen dropping projectiles; the player
// moves a catcher along the bottom to collect them. Low and high value
// drops score points, a lethal drop ends the session when caught, and
// two misses in a row end it too.
package catcher

import (
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catch-arcade/internal/collision"
	"github.com/vovakirdan/catch-arcade/internal/config"
	"github.com/vovakirdan/catch-arcade/internal/core"
	"github.com/vovakirdan/catch-arcade/internal/entity"
	"github.com/vovakirdan/catch-arcade/internal/event"
	"github.com/vovakirdan/catch-arcade/internal/perf"
	"github.com/vovakirdan/catch-arcade/internal/registry"
	"github.com/vovakirdan/catch-arcade/internal/score"
	"github.com/vovakirdan/catch-arcade/internal/state"
)

// GameID is the registry and storage identifier.
const GameID = "catcher"

// Platform-set options, read by New.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	qualityTier      string
	pkgLogger        *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown values are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = "" // Use config default
	}
	difficultyPreset = p
}

// SetQualityTier overrides the configured quality tier: auto, low, medium or high.
// An empty value keeps the config's choice.
func SetQualityTier(tier string) {
	qualityTier = tier
}

// SetLogger sets the logger used by games created through the registry.
func SetLogger(l *log.Logger) {
	pkgLogger = l
}

// Options configures a game built with NewWithOptions.
type Options struct {
	Config config.CatcherConfig
	Logger *log.Logger

	// Probe reports the host for tier detection when Config.Quality.Tier is "auto".
	// Nil uses perf.HostDevice.
	Probe func() (perf.DeviceInfo, error)

	// Now is the wall clock of the quality controller. Nil uses time.Now.
	Now func() time.Time
}

// Game is the simulation driver. It owns every entity and service of a
// session and advances them in a fixed order each tick:
// input, entity updates, collision, score and state, cleanup, metrics.
type Game struct {
	cfg     config.CatcherConfig
	runtime core.RuntimeConfig
	logger  *log.Logger

	rng      *rand.Rand
	simTime  time.Duration
	tickRate int
	dtMs     float64

	layer    *entity.Layer
	shooter  *entity.Shooter
	catcher  *entity.Catcher
	pool     *entity.ProjectilePool
	live     []*entity.Projectile // spawn order; collision checks the oldest first
	missLine float64

	score      *score.System
	state      *state.Manager
	quality    *perf.Manager
	difficulty *config.DifficultyManager
	sparks     *Sparks
	events     *event.Handlers[Event]

	paused   bool
	stopped  bool
	adaptive bool
	dropped  int // shots skipped because the entity budget was full
	reason   score.Reason
}

// New creates a game from the platform-set config path and preset.
func New() *Game {
	logger := event.Logger(pkgLogger)
	cfg, err := config.LoadCatcher(configPath)
	if err != nil {
		logger.Warn("using default config", "error", err)
		cfg = config.DefaultCatcherConfig()
	}
	config.ApplyPreset(&cfg, difficultyPreset)
	if qualityTier != "" {
		cfg.Quality.Tier = qualityTier
	}
	return NewWithOptions(Options{Config: cfg, Logger: logger})
}

// NewWithOptions creates a game in START with an 80x24 layout.
// Call Reset before the first Step to seed it and size it to the screen.
func NewWithOptions(opts Options) *Game {
	logger := event.Logger(opts.Logger)
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		logger.Warn("invalid config, using defaults", "error", err)
		cfg = config.DefaultCatcherConfig()
	}

	g := &Game{
		cfg:        cfg,
		runtime:    core.DefaultConfig(),
		logger:     logger,
		rng:        rand.New(rand.NewSource(1)),
		layer:      entity.NewLayer(),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		events:     event.NewHandlers[Event]("catcher.event", logger),
		adaptive:   cfg.Quality.Adaptive,
	}

	tier := g.resolveTier(opts.Probe)
	pcfg := perf.DefaultConfig()
	if opts.Now != nil {
		pcfg.Now = opts.Now
	}
	g.quality = perf.NewManager(tier, pcfg, logger)
	settings := g.quality.Settings()

	g.score = score.New(score.Config{
		LowPoints:            cfg.Scoring.LowPoints,
		HighPoints:           cfg.Scoring.HighPoints,
		MaxConsecutiveMisses: cfg.Scoring.MaxConsecutiveMisses,
	}, logger)
	g.state = state.NewManager(func() time.Duration { return g.simTime }, logger)

	g.shooter = entity.NewShooter(g.layer, g.shooterConfig(g.runtime.ScreenW), g.rng, g.spawn)
	g.catcher = entity.NewCatcher(g.layer, g.catcherConfig(g.runtime.ScreenW, g.runtime.ScreenH))
	g.pool = entity.NewProjectilePool(settings.EntityBudget, g.layer, g.projectileConfig(), g.rng)
	g.sparks = NewSparks(settings.ParticleBudget, 2)

	g.events.Subscribe(g.sparks.OnEvent)
	g.score.OnGameOver(g.onGameOver)
	g.state.OnReset(g.clearSession)
	g.state.OnEnter(state.Play, func(c state.Change) {
		g.logger.Info("round started", "from", c.From, "tier", g.quality.Tier())
	})
	g.state.OnEnter(state.GameOver, func(state.Change) {
		g.logger.Info("round over",
			"reason", g.reason,
			"score", g.score.Score(),
			"misses", g.score.TotalMisses(),
			"elapsed", g.state.Elapsed().Round(time.Millisecond),
			"dropped", g.dropped,
		)
	})
	g.quality.OnChange(func(c perf.Change) { g.applyQuality(c.Settings) })

	g.applyQuality(settings)
	g.applyLayout(g.runtime.ScreenW, g.runtime.ScreenH)
	return g
}

func (g *Game) resolveTier(probe func() (perf.DeviceInfo, error)) perf.Tier {
	switch g.cfg.Quality.Tier {
	case "", "auto":
		if probe == nil {
			probe = perf.HostDevice
		}
		tier, info := perf.Detect(probe)
		g.logger.Debug("device classified", "tier", tier, "cores", info.Cores, "memory_gb", info.MemoryGB, "os", info.OS)
		return tier
	default:
		tier, err := perf.ParseTier(g.cfg.Quality.Tier)
		if err != nil {
			return perf.TierLow
		}
		return tier
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Catcher"
}

// Reset reseeds the session, resizes the layout and returns to START.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = cfg
	g.stopped = false
	g.rng.Seed(cfg.Seed)
	g.sparks.Reseed(cfg.Seed + 1)
	g.applyQuality(g.quality.Settings())
	g.applyLayout(cfg.ScreenW, cfg.ScreenH)
	g.state.Reset()
}

// clearSession is the state machine's reset observer.
func (g *Game) clearSession() {
	for _, p := range g.live {
		p.Destroy()
	}
	clear(g.live)
	g.live = g.live[:0]
	g.pool.Clear()
	g.sparks.Clear()
	g.score.Reset()
	g.shooter.Reset()
	g.catcher.Reset()
	g.paused = false
	g.dropped = 0
}

// Resize adapts the layout to a new screen size without ending the round.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	oldLine := g.missLine
	g.applyLayout(w, h)
	g.rescaleLive(oldLine)
}

// rescaleLive keeps each falling projectile at the same fraction of its
// drop after the miss line moves.
func (g *Game) rescaleLive(oldLine float64) {
	if oldLine <= 0 || oldLine == g.missLine {
		return
	}
	ratio := g.missLine / oldLine
	for _, p := range g.live {
		p.Pos.Y *= ratio
	}
}

func (g *Game) applyLayout(w, h int) {
	w, h = max(w, 20), max(h, 10)

	g.shooter.SetPath(g.shooterPath(w))

	cc := g.catcherConfig(w, h)
	g.catcher.SetBounds(cc.MinX, cc.MaxX, cc.Y)
	g.missLine = cc.Y + cc.Height/2
}

func (g *Game) shooterPath(w int) (centerX, amplitude float64) {
	centerX = float64(w) / 2
	amplitude = math.Min(float64(w)*g.cfg.Shooter.AmplitudeRatio, centerX-2)
	return centerX, math.Max(0, amplitude)
}

func (g *Game) shooterConfig(w int) entity.ShooterConfig {
	s := g.cfg.Shooter
	centerX, amplitude := g.shooterPath(w)
	return entity.ShooterConfig{
		CenterX:          centerX,
		Y:                float64(max(1, s.Row)),
		Amplitude:        amplitude,
		OscillationSpeed: s.OscillationSpeed,
		Width:            3,
		Height:           1,
		InitialInterval:  time.Duration(s.InitialInterval) * time.Millisecond,
		MinInterval:      time.Duration(s.MinInterval) * time.Millisecond,
		EscalateEvery:    time.Duration(s.EscalateEvery) * time.Millisecond,
		EscalateFactor:   s.EscalateFactor,
		Escalate:         s.EscalateFactor < 1 && s.EscalateEvery > 0,
	}
}

func (g *Game) catcherConfig(w, h int) entity.CatcherConfig {
	c := g.cfg.Catcher
	width := float64(min(c.Width, w-2))
	return entity.CatcherConfig{
		Width:     width,
		Height:    1,
		Y:         float64(h - 1 - c.BottomOffset),
		MinX:      width / 2,
		MaxX:      float64(w) - width/2,
		MaxSpeed:  c.MaxSpeed,
		Smoothing: c.Smoothing,
		NudgeStep: c.NudgeStep,
	}
}

func (g *Game) projectileConfig() entity.ProjectileConfig {
	p := g.cfg.Projectiles
	return entity.ProjectileConfig{
		BaseHighValueProb: p.BaseHighValueProb,
		HighValueStep:     p.HighValueStep,
		HighValueEvery:    p.HighValueEvery,
		MaxHighValueProb:  p.MaxHighValueProb,
		LethalProb:        p.LethalProb,
		LowPoints:         g.cfg.Scoring.LowPoints,
		HighPoints:        g.cfg.Scoring.HighPoints,
		FallJitter:        p.FallJitter,
		Size:              1,
	}
}

// applyQuality pushes a quality bundle into every budgeted subsystem.
func (g *Game) applyQuality(s perf.Settings) {
	g.pool.SetCap(s.EntityBudget)
	g.sparks.SetBudget(s.ParticleBudget)
	g.tickRate = min(g.runtime.TickRate, s.TargetFPS)
	if g.tickRate <= 0 {
		g.tickRate = s.TargetFPS
	}
	g.dtMs = 1000 / float64(g.tickRate)
}

// TickRate returns the current simulation rate; the platform reads it after every step.
func (g *Game) TickRate() int {
	return g.tickRate
}

// Stop ends the session: later steps do nothing and input is ignored.
func (g *Game) Stop() {
	g.stopped = true
}

// OnEvent subscribes fn to shoot, catch, miss and game-over events.
func (g *Game) OnEvent(fn func(Event)) {
	g.events.Subscribe(fn)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.stopped {
		return core.StepResult{State: g.State()}
	}

	switch g.state.State() {
	case state.Start:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.state.TransitionTo(state.Play, false)
		}
	case state.GameOver:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.state.Reset()
			g.state.TransitionTo(state.Play, false)
		}
	case state.Play:
		if in.Has(core.ActionPause) {
			g.paused = !g.paused
		}
		if !g.paused {
			g.tick(in)
		}
	}

	g.recordFrame(in.FrameTime)
	return core.StepResult{State: g.State()}
}

func (g *Game) tick(in core.InputFrame) {
	dt := g.dtMs
	g.simTime += time.Duration(dt * float64(time.Millisecond))

	// Input
	if in.HasTarget {
		g.catcher.SetTargetX(in.TargetX)
	}
	if in.PointerDelta != 0 {
		g.catcher.ApplyPointerDelta(in.PointerDelta)
	}
	if dir := in.Direction(); dir != 0 {
		g.catcher.Move(dir, in.Intensity)
	}

	// Entities
	g.shooter.Update(dt)
	g.catcher.Update(dt)
	for _, p := range g.live {
		p.Update(dt)
	}
	g.sparks.Update(dt)

	// Collision, then score and state
	if hit, i := collision.FirstHit(g.catcher, g.live); i >= 0 {
		g.catch(hit)
	}
	for _, p := range g.live {
		if !g.state.Is(state.Play) {
			break
		}
		if p.Missed(g.missLine) {
			g.miss(p)
		}
	}

	// Cleanup
	g.compact()
}

func (g *Game) catch(p *entity.Projectile) {
	kind, points := p.Kind(), p.Value()
	x, y := p.Pos.X, p.Pos.Y
	p.Destroy()

	after := g.score.Score()
	if kind != entity.TypeLethal {
		after += points
	}
	g.events.Publish(Event{Kind: EventCatch, Type: kind, X: x, Y: y, Points: points, Score: after})
	g.score.AddScore(kind)
}

// miss applies the miss rules. Letting a lethal drop fall is the good
// outcome: it clears the miss streak and is not counted as a miss.
func (g *Game) miss(p *entity.Projectile) {
	kind, points := p.Kind(), p.Value()
	x := p.Pos.X
	p.Destroy()

	g.events.Publish(Event{Kind: EventMiss, Type: kind, X: x, Y: g.missLine, Points: points, Score: g.score.Score()})
	if kind == entity.TypeLethal {
		g.score.ResetConsecutiveMisses()
	} else {
		g.score.AddMiss()
	}
}

// spawn is the shooter's fire callback.
func (g *Game) spawn(shot entity.ShotEvent) {
	if len(g.live) >= g.quality.Settings().EntityBudget {
		g.dropped++
		return
	}
	elapsedMs := float64(g.state.Elapsed()) / float64(time.Millisecond)
	speed := g.difficulty.FallSpeed(g.cfg.Projectiles.BaseFallSpeed, g.score.Score(), elapsedMs)

	p, _ := g.pool.Acquire(entity.Spawn{X: shot.X, Y: shot.Y, Score: g.score.Score(), FallSpeed: speed})
	g.live = append(g.live, p)
	g.events.Publish(Event{Kind: EventShoot, Type: p.Kind(), X: shot.X, Y: shot.Y, Points: p.Value(), Score: g.score.Score()})
}

// compact drops destroyed projectiles from the live list, keeping spawn order.
func (g *Game) compact() {
	alive := g.live[:0]
	for _, p := range g.live {
		if p.Active() {
			alive = append(alive, p)
		}
	}
	clear(g.live[len(alive):])
	g.live = alive
}

func (g *Game) onGameOver(over score.GameOver) {
	g.reason = over.Reason
	g.state.TransitionTo(state.GameOver, false)
	g.events.Publish(Event{Kind: EventGameOver, Score: over.Score, Reason: over.Reason})
}

func (g *Game) recordFrame(frame time.Duration) {
	if g.adaptive && frame > 0 {
		g.quality.Record(frame)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score.Score(),
		GameOver: g.state.Is(state.GameOver),
		Paused:   g.paused,
		Elapsed:  g.state.Elapsed(),
	}
}

// Phase returns the session phase.
func (g *Game) Phase() state.State {
	return g.state.State()
}

// Quality returns the live quality bundle and tier.
func (g *Game) Quality() (perf.Tier, perf.Settings) {
	return g.quality.Tier(), g.quality.Settings()
}

// Live returns the number of projectiles in flight.
func (g *Game) Live() int {
	return len(g.live)
}

// Dropped returns how many shots the entity budget suppressed this session.
func (g *Game) Dropped() int {
	return g.dropped
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
