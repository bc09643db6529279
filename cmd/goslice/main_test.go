package main

import (
	"testing"

	"github.com/aligator/goslice/data"
)

func TestApplyOverrideKnownKeys(t *testing.T) {
	options := data.NewDefaultOptions()

	cases := []struct {
		kv    string
		check func(*testing.T, *data.Options)
	}{
		{"support.enabled=true", func(t *testing.T, o *data.Options) {
			if !o.Print.Support.Enabled {
				t.Fatalf("expected support.enabled to be true")
			}
		}},
		{"support.angle=55", func(t *testing.T, o *data.Options) {
			if o.Print.Support.ThresholdAngle != 55 {
				t.Fatalf("expected support.angle 55, got %v", o.Print.Support.ThresholdAngle)
			}
		}},
		{"brim.enabled=true", func(t *testing.T, o *data.Options) {
			if !o.Print.Brim.Enabled {
				t.Fatalf("expected brim.enabled to be true")
			}
		}},
		{"brim.width=5", func(t *testing.T, o *data.Options) {
			if o.Print.Brim.Width != 5 {
				t.Fatalf("expected brim.width 5, got %v", o.Print.Brim.Width)
			}
		}},
		{"raft.enabled=true", func(t *testing.T, o *data.Options) {
			if !o.Print.Raft.Enabled {
				t.Fatalf("expected raft.enabled to be true")
			}
		}},
		{"ironing.enabled=true", func(t *testing.T, o *data.Options) {
			if !o.Print.IroningEnabled {
				t.Fatalf("expected ironing.enabled to be true")
			}
		}},
		{"infill.pattern=triangle2", func(t *testing.T, o *data.Options) {
			if o.Print.InfillPattern != data.InfillTriangle2 {
				t.Fatalf("expected InfillTriangle2, got %v", o.Print.InfillPattern)
			}
		}},
		{"flow-multiplier=1.1", func(t *testing.T, o *data.Options) {
			if o.Filament.FlowMultiplier != 1.1 {
				t.Fatalf("expected flow multiplier 1.1, got %v", o.Filament.FlowMultiplier)
			}
		}},
	}

	for _, c := range cases {
		if err := applyOverride(&options, c.kv); err != nil {
			t.Fatalf("applyOverride(%q) returned an error: %v", c.kv, err)
		}
		c.check(t, &options)
	}
}

func TestApplyOverrideRejectsUnknownKey(t *testing.T) {
	options := data.NewDefaultOptions()
	if err := applyOverride(&options, "nonsense.key=1"); err == nil {
		t.Fatalf("expected an error for an unknown override key")
	}
}

func TestApplyOverrideRejectsMalformedPair(t *testing.T) {
	options := data.NewDefaultOptions()
	if err := applyOverride(&options, "no-equals-sign"); err == nil {
		t.Fatalf("expected an error for a key=value pair missing '='")
	}
}

func TestApplyOverrideRejectsUnknownInfillPattern(t *testing.T) {
	options := data.NewDefaultOptions()
	if err := applyOverride(&options, "infill.pattern=hexagons"); err == nil {
		t.Fatalf("expected an error for an unknown infill pattern")
	}
}

func TestApplyOverrideRejectsNonBoolValue(t *testing.T) {
	options := data.NewDefaultOptions()
	if err := applyOverride(&options, "support.enabled=maybe"); err == nil {
		t.Fatalf("expected an error for a non-bool value on a bool setting")
	}
}
