package gcode

import (
	"strings"
	"testing"

	"github.com/aligator/goslice/data"
)

func newTestBuilder() *Builder {
	options := data.NewDefaultOptions()
	b := NewBuilder(&options)
	b.SetExtrusion(options.Print.LayerThickness, options.Printer.ExtrusionWidth)
	b.SetExtrudeSpeed(options.Print.LayerSpeed)
	b.SetMoveSpeed(options.Print.MoveSpeed)
	b.SetRetractionSpeed(options.Filament.RetractionSpeed)
	b.SetRetractionAmount(options.Filament.RetractionLength)
	return b
}

func TestBuilderMoveOnlyEmitsChangedAxes(t *testing.T) {
	b := newTestBuilder()

	b.Move(data.Millimeter(10).ToMicrometer(), 0, data.Millimeter(1).ToMicrometer(), false, 0, 0)
	out := b.String()
	if !strings.Contains(out, "X10.000") {
		t.Fatalf("expected X to change, got %q", out)
	}
	if !strings.Contains(out, "Z1.000") {
		t.Fatalf("expected Z to change, got %q", out)
	}
	if strings.Contains(out, "Y") {
		t.Fatalf("unexpected Y component in first move: %q", out)
	}

	b.buf.Reset()
	b.Move(data.Millimeter(10).ToMicrometer(), 0, data.Millimeter(1).ToMicrometer(), false, 0, 0)
	if b.String() != "" {
		t.Fatalf("expected no command for a no-op move, got %q", b.String())
	}
}

func TestBuilderExtrudeAccumulatesFilament(t *testing.T) {
	b := newTestBuilder()

	b.Move(data.Millimeter(10).ToMicrometer(), 0, 0, true, 0, 0)
	if b.TotalExtruded() <= 0 {
		t.Fatalf("expected positive extrusion after a 10mm extruding move, got %v", b.TotalExtruded())
	}
	if !strings.Contains(b.String(), "E") {
		t.Fatalf("expected an E component in the emitted line, got %q", b.String())
	}
}

func TestBuilderRetractUnretractToggle(t *testing.T) {
	b := newTestBuilder()

	b.Retract()
	if !b.IsRetracted() {
		t.Fatalf("expected retracted state after Retract")
	}
	before := b.String()
	b.Retract()
	if b.String() != before {
		t.Fatalf("calling Retract twice in a row should be a no-op")
	}

	b.Unretract()
	if b.IsRetracted() {
		t.Fatalf("expected non-retracted state after Unretract")
	}
}

func TestBuilderExtrudeSpeedOverride(t *testing.T) {
	b := newTestBuilder()
	b.SetExtrudeSpeedOverride(5)

	b.Move(data.Millimeter(1).ToMicrometer(), 0, 0, true, 0, 0)
	if !strings.Contains(b.String(), "F300") {
		t.Fatalf("expected overridden feed rate 5mm/s (F300), got %q", b.String())
	}

	b.DisableExtrudeSpeedOverride()
	b.buf.Reset()
	b.machine.X = 0
	b.lastFeedRate = 0
	b.Move(data.Millimeter(1).ToMicrometer(), 0, 0, true, 0, 0)
	if strings.Contains(b.String(), "F300") {
		t.Fatalf("override should no longer apply: %q", b.String())
	}
}

func TestBuilderPositionTracksLastMove(t *testing.T) {
	b := newTestBuilder()
	x := data.Millimeter(3).ToMicrometer()
	y := data.Millimeter(4).ToMicrometer()
	b.Move(x, y, 0, false, 0, 0)

	gotX, gotY, _ := b.Position()
	if gotX != x || gotY != y {
		t.Fatalf("Position() = (%v, %v), want (%v, %v)", gotX, gotY, x, y)
	}
}
