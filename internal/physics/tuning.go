// Package physics moves the character through level geometry: collision,
// climbing, the jump arc, two-speed gravity and map transitions.
// Everything here is deterministic and driven by explicit ticks.
package physics

import (
	"fmt"
	"time"
)

// Box holds the hit-box margins relative to the character anchor.
// The anchor is the pixel row under the feet, so Top and Bottom are negative.
type Box struct {
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	// ClimbTop is the top row of the climb-sensing box, at arm height.
	ClimbTop int `yaml:"climb_top"`
}

// EdgeOffsets calibrate where a character leaves a map and where it
// reappears on the next one.
type EdgeOffsets struct {
	Left  int `yaml:"left"`
	Right int `yaml:"right"`
	Up    int `yaml:"up"`
	Down  int `yaml:"down"`
}

// Regime is one gravity speed model: the accumulator starts at Initial,
// grows by Acceleration per tick, and moves floor(speed/Divider) pixels
// every Period.
type Regime struct {
	Initial      float64       `yaml:"initial"`
	Divider      float64       `yaml:"divider"`
	Acceleration float64       `yaml:"acceleration"`
	Period       time.Duration `yaml:"period"`
}

// Tuning is the full set of movement constants.
type Tuning struct {
	Box   Box         `yaml:"box"`
	Edges EdgeOffsets `yaml:"edges"`

	Substeps     int           `yaml:"substeps"`
	JumpLift     int           `yaml:"jump_lift"`
	RisePerPhase int           `yaml:"rise_per_phase"`
	AscendPeriod time.Duration `yaml:"ascend_period"`

	Normal        Regime  `yaml:"normal"`
	Fast          Regime  `yaml:"fast"`
	Terminal      int     `yaml:"terminal"`
	FastThreshold float64 `yaml:"fast_threshold"`

	ResetOnEdgeWarp bool `yaml:"reset_on_edge_warp"`
	ResetOnNormWarp bool `yaml:"reset_on_norm_warp"`
}

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		Box:          Box{Left: 1, Right: 8, Top: -22, Bottom: -1, ClimbTop: -11},
		Edges:        EdgeOffsets{Left: 15, Right: 5, Up: 2, Down: 22},
		Substeps:     3,
		JumpLift:     3,
		RisePerPhase: 3,
		AscendPeriod: 120 * time.Millisecond,
		Normal: Regime{
			Initial:      4,
			Divider:      2,
			Acceleration: 0.5,
			Period:       120 * time.Millisecond,
		},
		Fast: Regime{
			Initial:      8,
			Divider:      6,
			Acceleration: 1,
			Period:       30 * time.Millisecond,
		},
		Terminal:      8,
		FastThreshold: 3,
	}
}

// Sanitize clamps values outside their domain to the nearest valid value.
// It returns the corrected tuning and one message per adjustment.
func (t Tuning) Sanitize() (Tuning, []string) {
	var notes []string
	atLeast := func(name string, v *int, min int) {
		if *v < min {
			notes = append(notes, fmt.Sprintf("%s=%d raised to %d", name, *v, min))
			*v = min
		}
	}
	atLeastF := func(name string, v *float64, min float64) {
		if *v < min {
			notes = append(notes, fmt.Sprintf("%s=%g raised to %g", name, *v, min))
			*v = min
		}
	}
	period := func(name string, v *time.Duration) {
		if *v < time.Millisecond {
			notes = append(notes, fmt.Sprintf("%s=%s raised to 1ms", name, *v))
			*v = time.Millisecond
		}
	}

	atLeast("substeps", &t.Substeps, 1)
	atLeast("jump_lift", &t.JumpLift, 0)
	atLeast("rise_per_phase", &t.RisePerPhase, 0)
	atLeast("terminal", &t.Terminal, 1)
	period("ascend_period", &t.AscendPeriod)
	regimes := []struct {
		name string
		r    *Regime
	}{{"normal", &t.Normal}, {"fast", &t.Fast}}
	for _, g := range regimes {
		atLeastF(g.name+".divider", &g.r.Divider, 1)
		atLeastF(g.name+".initial", &g.r.Initial, 0)
		atLeastF(g.name+".acceleration", &g.r.Acceleration, 0)
		period(g.name+".period", &g.r.Period)
	}
	atLeastF("fast_threshold", &t.FastThreshold, 1)

	if t.Box.Right < t.Box.Left {
		notes = append(notes, fmt.Sprintf("box.right=%d raised to box.left=%d", t.Box.Right, t.Box.Left))
		t.Box.Right = t.Box.Left
	}
	if t.Box.Top > t.Box.Bottom {
		notes = append(notes, fmt.Sprintf("box.top=%d lowered to box.bottom=%d", t.Box.Top, t.Box.Bottom))
		t.Box.Top = t.Box.Bottom
	}
	if t.Box.ClimbTop < t.Box.Top || t.Box.ClimbTop > t.Box.Bottom {
		clamped := min(max(t.Box.ClimbTop, t.Box.Top), t.Box.Bottom)
		notes = append(notes, fmt.Sprintf("box.climb_top=%d clamped to %d", t.Box.ClimbTop, clamped))
		t.Box.ClimbTop = clamped
	}
	return t, notes
}
