// Package perf classifies the host into a quality tier and adapts the
// quality bundle to measured frame times.
package perf

import "fmt"

// Tier is a device-capability class.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "LOW"
	case TierMedium:
		return "MEDIUM"
	case TierHigh:
		return "HIGH"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// ParseTier accepts a tier name in upper or lower case.
func ParseTier(s string) (Tier, error) {
	switch s {
	case "LOW", "low":
		return TierLow, nil
	case "MEDIUM", "medium":
		return TierMedium, nil
	case "HIGH", "high":
		return TierHigh, nil
	default:
		return TierLow, fmt.Errorf("perf: unknown tier %q", s)
	}
}

// Settings is the quality bundle every spawning subsystem reads.
type Settings struct {
	RenderScale    float64 // 1 draws everything; lower values drop decoration
	ParticleBudget int     // Max live sparks
	EntityBudget   int     // Max live projectiles
	TargetFPS      int
	AntiAliasing   bool // Unicode glyphs when on, ASCII fallbacks when off
}

// Floors for downgrades. Nothing drops below these.
const (
	minRenderScale    = 0.5
	minParticleBudget = 8
	minEntityBudget   = 6
	renderScaleStep   = 0.25
)

// Preset returns the initial bundle for a tier.
func Preset(t Tier) Settings {
	switch t {
	case TierHigh:
		return Settings{RenderScale: 1, ParticleBudget: 240, EntityBudget: 40, TargetFPS: 60, AntiAliasing: true}
	case TierMedium:
		return Settings{RenderScale: 0.75, ParticleBudget: 120, EntityBudget: 24, TargetFPS: 45, AntiAliasing: true}
	default:
		return Settings{RenderScale: minRenderScale, ParticleBudget: 40, EntityBudget: 12, TargetFPS: 30, AntiAliasing: false}
	}
}

// Dimension names one adjustable field of Settings.
type Dimension int

const (
	DimNone Dimension = iota
	DimParticles
	DimRenderScale
	DimAntiAliasing
	DimEntities
)

func (d Dimension) String() string {
	switch d {
	case DimParticles:
		return "particles"
	case DimRenderScale:
		return "render_scale"
	case DimAntiAliasing:
		return "anti_aliasing"
	case DimEntities:
		return "entities"
	default:
		return "none"
	}
}

// downgrade lowers the first dimension that still has room, in the order
// particles, render scale, anti-aliasing, entities.
func downgrade(s Settings) (Settings, Dimension) {
	switch {
	case s.ParticleBudget > minParticleBudget:
		s.ParticleBudget = max(minParticleBudget, s.ParticleBudget/2)
		return s, DimParticles
	case s.RenderScale > minRenderScale:
		s.RenderScale = max(minRenderScale, s.RenderScale-renderScaleStep)
		return s, DimRenderScale
	case s.AntiAliasing:
		s.AntiAliasing = false
		return s, DimAntiAliasing
	case s.EntityBudget > minEntityBudget:
		s.EntityBudget = max(minEntityBudget, s.EntityBudget*3/4)
		return s, DimEntities
	}
	return s, DimNone
}

// upgrade raises the first dimension below its initial value, in the
// reverse order entities, anti-aliasing, render scale, particles.
// Nothing is ever raised above initial.
func upgrade(s, initial Settings) (Settings, Dimension) {
	switch {
	case s.EntityBudget < initial.EntityBudget:
		s.EntityBudget = min(initial.EntityBudget, s.EntityBudget*4/3+1)
		return s, DimEntities
	case !s.AntiAliasing && initial.AntiAliasing:
		s.AntiAliasing = true
		return s, DimAntiAliasing
	case s.RenderScale < initial.RenderScale:
		s.RenderScale = min(initial.RenderScale, s.RenderScale+renderScaleStep)
		return s, DimRenderScale
	case s.ParticleBudget < initial.ParticleBudget:
		s.ParticleBudget = min(initial.ParticleBudget, s.ParticleBudget*2)
		return s, DimParticles
	}
	return s, DimNone
}
