// Package gcode implements S8 (motion planning) and S9 (G-code emission):
// handler.GCodeGenerator turns a slice's Islands/support/brim/raft
// geometry into an ordered list of moves, and Builder turns that move list
// into G-code text (section 4.8/4.9).
package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/aligator/goslice/data"
)

// Machine is the planner's mutable state: current position, accumulated
// extrusion, current feed rate and retraction flags (section 3's Machine
// entity). Position is kept on the same integer lattice as the rest of the
// geometry pipeline; only feed rates and filament length are real numbers.
type Machine struct {
	X, Y, Z data.Micrometer

	E float64 // accumulated filament length, mm

	FeedRate     data.Millimeter
	IsRetracted  bool
	ForceRetract bool
}

// Builder accumulates G-code text and tracks the running Machine state so
// it only ever prints the coordinate components that actually changed,
// the teacher's PreLayer/PostLayer idiom (gcode/renderer/layer.go)
// generalized to every move the motion planner emits, not just the
// per-layer header/footer commands.
type Builder struct {
	buf     strings.Builder
	machine Machine

	extrudeSpeed         data.Millimeter
	moveSpeed            data.Millimeter
	extrudeSpeedOverride data.Millimeter
	hasOverride          bool

	retractSpeed  data.Millimeter
	retractAmount data.Millimeter

	layerThickness data.Micrometer
	extrusionWidth data.Micrometer
	derived        data.Derived

	flowMultiplier  float64
	separateZTravel bool

	lastFeedRate  data.Millimeter
	totalExtruded float64 // mm of filament

	speedScale float64 // cooling-scale factor applied to extruding moves, section 4.8.5
	layerTime  float64 // seconds of planned motion accumulated for the current layer
}

// NewBuilder returns a Builder ready to accept commands for one print.
func NewBuilder(options *data.Options) *Builder {
	return &Builder{
		derived:         data.ComputeDerived(options),
		flowMultiplier:  options.Filament.FlowMultiplier,
		separateZTravel: options.Print.SeparateZTravel,
	}
}

// AddComment appends a semicolon-prefixed comment line.
func (b *Builder) AddComment(format string, args ...interface{}) {
	b.buf.WriteString("; ")
	fmt.Fprintf(&b.buf, format, args...)
	b.buf.WriteString("\n")
}

// AddCommand appends a raw G-code line verbatim (used for header/footer
// commands the motion planner doesn't need to track machine state for).
func (b *Builder) AddCommand(format string, args ...interface{}) {
	fmt.Fprintf(&b.buf, format, args...)
	b.buf.WriteString("\n")
}

// SetExtrusion records the layer thickness/width pair for the current layer
// (called on layer 0, and again at layer 1 when the initial layer thickness
// differs from the steady-state one). It does not recompute the
// extrusion-area scalars: Move and ExtrudeStationary keep using the ones
// NewBuilder derived from the options' LayerThickness and ExtrusionWidth.
func (b *Builder) SetExtrusion(layerThickness, extrusionWidth data.Micrometer) {
	b.layerThickness = layerThickness
	b.extrusionWidth = extrusionWidth
}

func (b *Builder) SetExtrudeSpeed(mmPerSec data.Millimeter)  { b.extrudeSpeed = mmPerSec }
func (b *Builder) SetMoveSpeed(mmPerSec data.Millimeter)     { b.moveSpeed = mmPerSec }
func (b *Builder) SetRetractionSpeed(mmPerSec data.Millimeter) { b.retractSpeed = mmPerSec }
func (b *Builder) SetRetractionAmount(mm data.Millimeter)      { b.retractAmount = mm }

// SetExtrudeSpeedOverride forces every extruding move on the current layer
// to this speed, regardless of what the motion planner requested -
// section 4.8.5's first-layer override.
func (b *Builder) SetExtrudeSpeedOverride(mmPerSec data.Millimeter) {
	b.extrudeSpeedOverride = mmPerSec
	b.hasOverride = true
}

func (b *Builder) DisableExtrudeSpeedOverride() { b.hasOverride = false }

// SetSpeedScale installs the cooling-scale factor (0 < factor <= 1) that
// scalable moves are multiplied by until the next call, section 4.8.5's
// per-layer feed-rate scale derived from the previous layers' planned time.
// A factor <= 0 is treated as 1 (no scaling).
func (b *Builder) SetSpeedScale(factor float64) { b.speedScale = factor }

func (b *Builder) effectiveScale() float64 {
	if b.speedScale <= 0 {
		return 1
	}
	return b.speedScale
}

// LayerTime returns the planned motion time (seconds) accumulated since the
// last ResetLayerTime, section 4.8.5's layer_time.
func (b *Builder) LayerTime() float64 { return b.layerTime }

// ResetLayerTime zeroes the per-layer time accumulator, called by the
// generator between layers.
func (b *Builder) ResetLayerTime() { b.layerTime = 0 }

// ResetExtruder zeroes the running extrusion total with an explicit G92,
// section 4.9's "between layers, reset the extruder total".
func (b *Builder) ResetExtruder() {
	b.machine.E = 0
	b.AddCommand("G92 E0")
}

// Move emits one planned move: travels have extrude=false; extrude=true
// moves add filament proportional to the XY distance traveled times the
// extrusion-area ratio NewBuilder derived from the options (section 3's
// extrusion length formula). feedOverride, if non-zero, replaces the normal
// extrude/move speed (used by infill smoothing and coasting).
func (b *Builder) Move(x, y, z data.Micrometer, extrude bool, flowAdjust float64, feedOverride data.Millimeter) {
	dx := float64(x-b.machine.X) / data.ScaleConstant
	dy := float64(y-b.machine.Y) / data.ScaleConstant
	length := dx*dx + dy*dy
	var lengthMM float64
	if length > 0 {
		lengthMM = math.Sqrt(length)
	}

	var eDelta float64
	if extrude && lengthMM > 0 {
		if flowAdjust == 0 {
			flowAdjust = 1
		}
		eDelta = b.derived.ExtrusionLength(lengthMM, b.flowMultiplier, flowAdjust)
		b.machine.E += eDelta
		b.machine.IsRetracted = false
	}

	feed := b.moveSpeed
	if extrude {
		feed = b.extrudeSpeed
		if b.hasOverride {
			feed = b.extrudeSpeedOverride
		}
		feed = data.Millimeter(float64(feed) * b.effectiveScale())
	}
	if feedOverride != 0 {
		feed = feedOverride
	}

	if lengthMM > 0 && feed > 0 {
		b.layerTime += lengthMM / float64(feed)
	}

	b.writeG1(x, y, z, eDelta, feed)
}

// ExtrudeStationary emits a zero-XY-motion extrusion of lengthMM filament
// at feed, section 4.8.2 step 5's anchor dot. Move cannot express this: a
// zero-length move always produces eDelta==0.
func (b *Builder) ExtrudeStationary(lengthMM float64, feed data.Millimeter) {
	eDelta := b.derived.ExtrusionLength(lengthMM, b.flowMultiplier, 1)
	b.machine.E += eDelta
	b.machine.IsRetracted = false

	scaledFeed := data.Millimeter(float64(feed) * b.effectiveScale())
	if lengthMM > 0 && scaledFeed > 0 {
		b.layerTime += lengthMM / float64(scaledFeed)
	}
	b.writeG1(b.machine.X, b.machine.Y, b.machine.Z, eDelta, scaledFeed)
}

// MoveRetracting moves to x,y,z while pulling back retractMM of filament
// over the move, section 4.8.2 step 7's moving retract: the pullback is
// distributed proportionally across the segments of the retract path
// instead of happening as one stationary retraction.
func (b *Builder) MoveRetracting(x, y, z data.Micrometer, retractMM float64, feed data.Millimeter) {
	dx := float64(x-b.machine.X) / data.ScaleConstant
	dy := float64(y-b.machine.Y) / data.ScaleConstant
	lengthMM := math.Sqrt(dx*dx + dy*dy)

	eDelta := -retractMM
	b.machine.E += eDelta

	if lengthMM > 0 && feed > 0 {
		b.layerTime += lengthMM / float64(feed)
	}
	b.writeG1(x, y, z, eDelta, feed)
}

// MarkRetracted records that the nozzle is now in the retracted state
// without emitting a command, used once a moving-retract/wipe sequence has
// pulled back the full retraction amount across several Move/MoveRetracting
// calls.
func (b *Builder) MarkRetracted() {
	b.machine.IsRetracted = true
	b.machine.ForceRetract = false
}

// Retract performs a stationary retraction of b.retractAmount at
// b.retractSpeed (section 4.8.4).
func (b *Builder) Retract() {
	if b.machine.IsRetracted {
		return
	}
	b.machine.E -= float64(b.retractAmount)
	b.AddCommand("G1 E%.5f F%d", b.machine.E, int(b.retractSpeed*60))
	b.machine.IsRetracted = true
	b.machine.ForceRetract = false
}

// Unretract restores the retracted filament before the next extruding move.
func (b *Builder) Unretract() {
	if !b.machine.IsRetracted {
		return
	}
	b.machine.E += float64(b.retractAmount)
	b.AddCommand("G1 E%.5f F%d", b.machine.E, int(b.retractSpeed*60))
	b.machine.IsRetracted = false
}

// ForceRetractNext flags that the next travel move must retract regardless of
// distance (layer change, cross-island exit, wipe sequence boundaries).
func (b *Builder) ForceRetractNext() { b.machine.ForceRetract = true }

// ShouldForceRetract reports whether a previous operation (layer change,
// cross-island exit, a finished wipe) demanded the next travel move retract
// regardless of distance.
func (b *Builder) ShouldForceRetract() bool { return b.machine.ForceRetract }

func (b *Builder) IsRetracted() bool { return b.machine.IsRetracted }
func (b *Builder) Position() (x, y, z data.Micrometer) {
	return b.machine.X, b.machine.Y, b.machine.Z
}

func (b *Builder) writeG1(x, y, z data.Micrometer, eDelta float64, feed data.Millimeter) {
	var parts []string
	parts = append(parts, "G1")

	if x != b.machine.X {
		parts = append(parts, fmt.Sprintf("X%.3f", float64(x.ToMillimeter())))
	}
	if y != b.machine.Y {
		parts = append(parts, fmt.Sprintf("Y%.3f", float64(y.ToMillimeter())))
	}
	if z != b.machine.Z {
		parts = append(parts, fmt.Sprintf("Z%.3f", float64(z.ToMillimeter())))
	}
	if eDelta != 0 {
		parts = append(parts, fmt.Sprintf("E%.5f", b.machine.E))
	}
	if feed != b.lastFeedRate {
		parts = append(parts, fmt.Sprintf("F%d", int(feed*60)))
		b.lastFeedRate = feed
	}

	if len(parts) > 1 {
		b.buf.WriteString(strings.Join(parts, " "))
		b.buf.WriteString("\n")
	}

	b.machine.X, b.machine.Y, b.machine.Z = x, y, z
	if eDelta > 0 {
		b.totalExtruded += eDelta
	}
}

// TotalExtruded returns the accumulated filament length (mm) extruded so
// far, used for the trailing material/cost totals (section 4.9).
func (b *Builder) TotalExtruded() float64 { return b.totalExtruded }

// String returns the accumulated G-code text.
func (b *Builder) String() string { return b.buf.String() }
