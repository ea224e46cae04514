// internal/game/wheel.go
//
// The reward wheel: 24 fixed segments of 15 degrees each, a rotation angle,
// and an angular velocity that decays by a constant friction per tick.
//
// Driving a spin is the caller's job:
//   1. StartSpin()
//   2. Tick() once per frame while Velocity() > 0
//   3. read SelectedSegment()
// SpinToRest runs step 2 in a tight loop for callers that don't animate.

package game

import (
	"math"
	"strconv"
)

const (
	SegmentWidth = 15.0 // degrees per segment
	Friction     = 0.08 // velocity lost per tick

	baseVelocity   = 8.0
	velocityJitter = 15.0
)

// defaultSegments is the fixed wheel layout, starting at angle 0.
var defaultSegments = [...]WheelSegment{
	{SegmentMoney, 400},
	{SegmentLoseATurn, 0},
	{SegmentMoney, 200},
	{SegmentMoney, 300},
	{SegmentMoney, 500},
	{SegmentMoney, 250},
	{SegmentMoney, 800},
	{SegmentMoney, 1000},
	{SegmentBankrupt, 0},
	{SegmentMoney, 400},
	{SegmentMoney, 600},
	{SegmentMoney, 150},
	{SegmentMoney, 400},
	{SegmentMoney, 750},
	{SegmentFreeSpin, 0},
	{SegmentMoney, 400},
	{SegmentMoney, 1000},
	{SegmentMoney, 450},
	{SegmentMoney, 700},
	{SegmentBankrupt, 0},
	{SegmentMoney, 200},
	{SegmentMoney, 500},
	{SegmentMoney, 900},
	{SegmentMoney, 1000},
}

// Wheel holds the segment table and spin physics.
type Wheel struct {
	segments []WheelSegment
	angle    float64
	velocity float64
	rng      Rand
}

// NewWheel builds a wheel at rest at angle 0.
func NewWheel(rng Rand) *Wheel {
	if rng == nil {
		rng = NewRand()
	}
	segs := make([]WheelSegment, len(defaultSegments))
	copy(segs, defaultSegments[:])
	return &Wheel{segments: segs, rng: rng}
}

// Segments returns a copy of the segment table.
func (w *Wheel) Segments() []WheelSegment {
	out := make([]WheelSegment, len(w.segments))
	copy(out, w.segments)
	return out
}

// SelectedIndex is floor(angle / 15) mod N.
func (w *Wheel) SelectedIndex() int {
	n := len(w.segments)
	i := int(math.Floor(w.angle/SegmentWidth)) % n
	if i < 0 {
		i += n
	}
	return i
}

// SelectedSegment returns the segment under the pointer.
func (w *Wheel) SelectedSegment() WheelSegment {
	return w.segments[w.SelectedIndex()]
}

// StartSpin sets velocity to a value in [8, 23). The angle is untouched.
func (w *Wheel) StartSpin() {
	w.velocity = baseVelocity + w.rng.Float64()*velocityJitter
}

// Tick advances the angle by the current velocity, wrapping at 360, then
// applies friction. It does not clamp: callers stop ticking once
// Velocity() <= 0.
func (w *Wheel) Tick() {
	if w.angle+w.velocity >= 360 {
		w.angle = w.angle + w.velocity - 360
	} else {
		w.angle += w.velocity
	}
	w.velocity -= Friction
}

// Stopped reports whether the wheel has come to rest.
func (w *Wheel) Stopped() bool { return w.velocity <= 0 }

// SpinToRest ticks until the wheel stops and returns the number of ticks.
func (w *Wheel) SpinToRest() int {
	n := 0
	for !w.Stopped() {
		w.Tick()
		n++
	}
	return n
}

// Angle is the current rotation in [0, 360).
func (w *Wheel) Angle() float64 { return w.angle }

// Velocity is the current angular velocity in degrees per tick.
func (w *Wheel) Velocity() float64 { return w.velocity }

// SetAngle places the wheel at a fixed angle (normalized into [0, 360)).
// Used for replays and tests.
func (w *Wheel) SetAngle(a float64) {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	w.angle = a
}

// SetVelocity overrides the spin velocity. Used for replays and tests.
func (w *Wheel) SetVelocity(v float64) { w.velocity = v }

func (w *Wheel) state() WheelState {
	return WheelState{
		Angle:    w.angle,
		Velocity: w.velocity,
		Index:    w.SelectedIndex(),
		Segment:  w.SelectedSegment(),
	}
}

// Label is the display text for a segment, e.g. "£400" or "Bankrupt".
func (s WheelSegment) Label() string {
	if s.Type == SegmentMoney {
		return "£" + strconv.Itoa(s.Value)
	}
	return s.Type.Label()
}
