package registry

import (
	"testing"

	"github.com/vovakirdan/catch-arcade/internal/core"
)

type stubGame struct {
	id      string
	rate    int
	stopped *int
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }
func (g *stubGame) TickRate() int                        { return g.rate }
func (g *stubGame) Stop()                                { *g.stopped++ }

func TestRegisterAndCreate(t *testing.T) {
	stopped := 0
	Register("stub_a", func() Game { return &stubGame{id: "stub_a", rate: 30, stopped: &stopped} })

	if stopped != 1 {
		t.Errorf("probe instance stopped %d times, expected 1", stopped)
	}
	if !Exists("stub_a") {
		t.Fatal("registered game should exist")
	}

	g, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub_a" {
		t.Errorf("created %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub_a" && info.Title == "Stub stub_a" {
			found = true
		}
	}
	if !found {
		t.Errorf("List() = %+v, missing stub_a", List())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("unknown game should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	stopped := 0
	f := func() Game { return &stubGame{id: "stub_b", stopped: &stopped} }
	Register("stub_b", f)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_b", f)
}

func TestTickRate(t *testing.T) {
	stopped := 0
	if got := TickRate(&stubGame{rate: 45, stopped: &stopped}, 60); got != 45 {
		t.Errorf("TickRate = %d, expected 45", got)
	}
	if got := TickRate(&stubGame{rate: 0, stopped: &stopped}, 60); got != 60 {
		t.Errorf("zero rate should fall back, got %d", got)
	}
}
