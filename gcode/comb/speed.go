package comb

import "github.com/aligator/goslice/data"

// SpeedScaler implements section 4.8.5's minimum-layer-time rule: if a
// layer's planned print time is less than MinLayerTime, every extruding
// move on that layer is slowed down (down to MinFeedRate) so the layer
// takes at least that long - keeping a slim layer's plastic from being laid
// down before the previous bead has cooled.
type SpeedScaler struct {
	minLayerTime float64        // seconds
	minFeedRate  data.Millimeter // mm/s
	samples      []float64       // recent layers' wall-clock time, for the moving average
	window       int
}

// NewSpeedScaler builds a scaler from PrintOptions.MinLayerTime/MinFeedRate
// and the LayerTimeSamples moving-average window.
func NewSpeedScaler(minLayerTime float64, minFeedRate data.Millimeter, window int) *SpeedScaler {
	if window < 1 {
		window = 1
	}
	return &SpeedScaler{minLayerTime: minLayerTime, minFeedRate: minFeedRate, window: window}
}

// Scale returns the feed-rate multiplier (<=1) a layer whose unscaled
// planned duration is plannedSeconds (computed by summing each move's
// length/feed rate) must apply to every extruding move's speed.
func (s *SpeedScaler) Scale(plannedSeconds float64, normalFeedRate data.Millimeter) float64 {
	s.samples = append(s.samples, plannedSeconds)
	if len(s.samples) > s.window {
		s.samples = s.samples[len(s.samples)-s.window:]
	}

	avg := 0.0
	for _, v := range s.samples {
		avg += v
	}
	avg /= float64(len(s.samples))

	if avg >= s.minLayerTime || avg <= 0 {
		return 1
	}

	factor := avg / s.minLayerTime
	if normalFeedRate*data.Millimeter(factor) < s.minFeedRate {
		factor = float64(s.minFeedRate / normalFeedRate)
	}
	if factor > 1 {
		factor = 1
	}
	return factor
}
