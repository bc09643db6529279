package comb

import (
	"testing"

	"github.com/aligator/goslice/data"
)

func TestSpeedScalerNoScalingWhenLayerIsSlowEnough(t *testing.T) {
	s := NewSpeedScaler(10, 5, 1)
	factor := s.Scale(20, 60)
	if factor != 1 {
		t.Fatalf("expected no scaling when planned time already exceeds the minimum, got %v", factor)
	}
}

func TestSpeedScalerSlowsDownFastLayer(t *testing.T) {
	s := NewSpeedScaler(10, 1, 1)
	factor := s.Scale(5, 60)
	if factor >= 1 || factor <= 0 {
		t.Fatalf("expected a scaling factor in (0,1) for a layer printed twice as fast as the minimum time, got %v", factor)
	}
	if factor != 0.5 {
		t.Fatalf("expected factor 0.5 (5s planned vs 10s minimum), got %v", factor)
	}
}

func TestSpeedScalerNeverGoesBelowMinFeedRate(t *testing.T) {
	s := NewSpeedScaler(10, 50, 1)
	factor := s.Scale(1, 60)
	minAllowed := float64(data.Millimeter(50) / 60)
	if factor < minAllowed-1e-9 {
		t.Fatalf("factor %v would push feed rate below MinFeedRate", factor)
	}
}

func TestSpeedScalerAveragesOverWindow(t *testing.T) {
	s := NewSpeedScaler(10, 1, 2)
	s.Scale(20, 60) // avg 20, no scaling
	factor := s.Scale(0, 60) // avg (20+0)/2 = 10, right at the boundary
	if factor != 1 {
		t.Fatalf("expected no scaling when the windowed average still meets the minimum, got %v", factor)
	}
}
