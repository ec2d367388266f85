package perf

import (
	"errors"
	"runtime"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager(tier Tier) (*Manager, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	cfg := DefaultConfig()
	cfg.Now = clock.Now
	return NewManager(tier, cfg, nil), clock
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		info     DeviceInfo
		expected Tier
	}{
		{"unknown cores", DeviceInfo{MemoryGB: 32}, TierLow},
		{"workstation", DeviceInfo{Cores: 16, MemoryGB: 32, ScreenW: 200, ScreenH: 50}, TierHigh},
		{"laptop", DeviceInfo{Cores: 4, MemoryGB: 8}, TierHigh},
		{"small vm", DeviceInfo{Cores: 2, MemoryGB: 2}, TierLow},
		{"dual core unknown memory", DeviceInfo{Cores: 2}, TierMedium},
		{"phone", DeviceInfo{Cores: 8, MemoryGB: 4, Mobile: true}, TierMedium},
		{"weak phone", DeviceInfo{Cores: 4, MemoryGB: 2, Mobile: true}, TierLow},
		{"tablet", DeviceInfo{Cores: 8, MemoryGB: 8, Tablet: true}, TierHigh},
		{"huge terminal", DeviceInfo{Cores: 4, MemoryGB: 4, ScreenW: 400, ScreenH: 100}, TierMedium},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.info); got != tc.expected {
				t.Errorf("Classify(%+v) = %v, expected %v", tc.info, got, tc.expected)
			}
		})
	}
}

func TestDetectFallsBackToLow(t *testing.T) {
	tier, _ := Detect(func() (DeviceInfo, error) {
		return DeviceInfo{Cores: 32, MemoryGB: 64}, errors.New("probe failed")
	})
	if tier != TierLow {
		t.Errorf("failed probe gave %v, expected LOW", tier)
	}

	if tier, _ := Detect(nil); tier != TierLow {
		t.Errorf("nil probe gave %v, expected LOW", tier)
	}
}

func TestProbeHost(t *testing.T) {
	failMem := func() (uint64, error) { return 0, errors.New("no memory info") }
	failCores := func() (int, error) { return 0, errors.New("no cpu info") }

	tests := []struct {
		name        string
		memory      func() (uint64, error)
		cores       func() (int, error)
		expectMemGB float64
		expectCores int
	}{
		{"both known", func() (uint64, error) { return 16 << 30, nil }, func() (int, error) { return 8, nil }, 16, 8},
		{"memory unknown", failMem, func() (int, error) { return 4, nil }, 0, 4},
		{"cores unknown", func() (uint64, error) { return 2 << 30, nil }, failCores, 2, runtime.NumCPU()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := probeHost(tt.memory, tt.cores)
			if err != nil {
				t.Fatalf("probeHost() error = %v", err)
			}
			if info.MemoryGB != tt.expectMemGB {
				t.Errorf("MemoryGB = %v, expected %v", info.MemoryGB, tt.expectMemGB)
			}
			if info.Cores != tt.expectCores {
				t.Errorf("Cores = %v, expected %v", info.Cores, tt.expectCores)
			}
			if info.OS != runtime.GOOS {
				t.Errorf("OS = %q, expected %q", info.OS, runtime.GOOS)
			}
		})
	}
}

func TestDowngradeOrder(t *testing.T) {
	s := Preset(TierHigh)
	last := DimParticles
	steps := 0

	for {
		next, dim := downgrade(s)
		if dim == DimNone {
			break
		}
		if dim < last {
			t.Fatalf("step %d lowered %v after %v", steps, dim, last)
		}
		if next == s {
			t.Fatalf("step %d reported %v without changing settings", steps, dim)
		}
		last = dim
		s = next
		steps++
		if steps > 100 {
			t.Fatal("downgrade never bottomed out")
		}
	}

	if s.ParticleBudget != minParticleBudget || s.RenderScale != minRenderScale ||
		s.AntiAliasing || s.EntityBudget != minEntityBudget {
		t.Errorf("floor settings = %+v", s)
	}
	if s.TargetFPS != Preset(TierHigh).TargetFPS {
		t.Error("downgrades must not touch the target frame rate")
	}
}

func TestUpgradeRestoresInitial(t *testing.T) {
	initial := Preset(TierHigh)
	s := initial
	for {
		next, dim := downgrade(s)
		if dim == DimNone {
			break
		}
		s = next
	}

	last := DimEntities
	for {
		next, dim := upgrade(s, initial)
		if dim == DimNone {
			break
		}
		if dim > last {
			t.Fatalf("upgraded %v after %v", dim, last)
		}
		if next.ParticleBudget > initial.ParticleBudget || next.EntityBudget > initial.EntityBudget ||
			next.RenderScale > initial.RenderScale {
			t.Fatalf("upgrade exceeded initial settings: %+v", next)
		}
		last = dim
		s = next
	}

	if s != initial {
		t.Errorf("upgrades ended at %+v, expected %+v", s, initial)
	}
}

func TestManagerNeedsSamples(t *testing.T) {
	m, clock := newTestManager(TierHigh)
	clock.Advance(time.Minute)

	for i := 0; i < 29; i++ {
		if m.Record(100 * time.Millisecond) {
			t.Fatalf("adjusted after %d samples", i+1)
		}
	}
	if !m.Record(100 * time.Millisecond) {
		t.Error("30 slow samples past the cooldown should downgrade")
	}
	if m.Settings().ParticleBudget != Preset(TierHigh).ParticleBudget/2 {
		t.Errorf("first downgrade should halve particles, got %+v", m.Settings())
	}
	if m.Samples() != 0 {
		t.Errorf("window should be cleared after an adjustment, has %d", m.Samples())
	}
}

func TestManagerCooldown(t *testing.T) {
	m, clock := newTestManager(TierHigh)

	var changes []time.Time
	m.OnChange(func(Change) { changes = append(changes, clock.Now()) })

	// 20 FPS against a 60 FPS target for 30 simulated seconds.
	frame := 50 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < 30*time.Second; elapsed += frame {
		clock.Advance(frame)
		m.Record(frame)
	}

	if len(changes) < 3 {
		t.Fatalf("only %d adjustments under sustained low FPS", len(changes))
	}
	for i := 1; i < len(changes); i++ {
		if gap := changes[i].Sub(changes[i-1]); gap < 5*time.Second {
			t.Errorf("adjustments %d and %d only %v apart", i-1, i, gap)
		}
	}
	if changes[0].Sub(time.Unix(1000, 0)) < 5*time.Second {
		t.Error("first adjustment came before one cooldown elapsed")
	}
}

func TestManagerStableInBand(t *testing.T) {
	m, clock := newTestManager(TierMedium)

	frame := time.Second / 45
	for i := 0; i < 1000; i++ {
		clock.Advance(frame)
		if m.Record(frame) {
			t.Fatalf("adjusted at tick %d while on target", i)
		}
	}
	if m.Settings() != Preset(TierMedium) {
		t.Errorf("settings drifted to %+v", m.Settings())
	}
}

func TestManagerUpgradesOnlyWithHeadroom(t *testing.T) {
	m, clock := newTestManager(TierLow)

	fast := 5 * time.Millisecond
	for i := 0; i < 2000; i++ {
		clock.Advance(fast)
		if m.Record(fast) {
			t.Fatal("fresh preset has no headroom and must not upgrade")
		}
	}

	slow := 100 * time.Millisecond
	for m.Settings() == Preset(TierLow) {
		clock.Advance(slow)
		m.Record(slow)
	}
	lowered := m.Settings()

	var got []Change
	m.OnChange(func(c Change) { got = append(got, c) })
	for i := 0; i < 5000; i++ {
		clock.Advance(fast)
		m.Record(fast)
	}

	if len(got) == 0 || !got[0].Upgrade || got[0].Previous != lowered {
		t.Fatalf("expected an upgrade from %+v, got %+v", lowered, got)
	}
	if m.Settings() != Preset(TierLow) {
		t.Errorf("upgrades should stop at the preset, got %+v", m.Settings())
	}
}

func TestManagerIgnoresNonPositiveFrames(t *testing.T) {
	m, _ := newTestManager(TierHigh)
	m.Record(0)
	m.Record(-time.Second)
	if m.Samples() != 0 || m.AverageFPS() != 0 {
		t.Errorf("samples=%d fps=%f after invalid frames", m.Samples(), m.AverageFPS())
	}
}

func TestParseTier(t *testing.T) {
	for _, tier := range []Tier{TierLow, TierMedium, TierHigh} {
		got, err := ParseTier(tier.String())
		if err != nil || got != tier {
			t.Errorf("ParseTier(%q) = %v, %v", tier.String(), got, err)
		}
	}
	if _, err := ParseTier("ultra"); err == nil {
		t.Error("unknown tier should fail")
	}
}
