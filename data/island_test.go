package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIslandOutlineEmptyWhenNoInsets(t *testing.T) {
	var isl Island
	assert.Nil(t, isl.Outline())
}

func TestIslandOutlineReturnsFirstInsetOutline(t *testing.T) {
	outline := square(0, 0, 10000, 10000)
	isl := Island{
		Insets: [][]LayerPart{{NewUnknownLayerPart(outline, nil)}},
	}
	assert.Equal(t, outline, isl.Outline())
}

func TestIslandShellsStopsAtFirstEmptyLevel(t *testing.T) {
	filled := []LayerPart{NewUnknownLayerPart(square(0, 0, 1000, 1000), nil)}
	isl := Island{
		Insets: [][]LayerPart{filled, filled, nil, filled},
	}
	assert.Equal(t, 2, isl.Shells(), "shell production stops at the first empty level, even if later levels look non-empty")
}

func TestIslandShellsZeroWhenFirstInsetEmpty(t *testing.T) {
	isl := Island{Insets: [][]LayerPart{nil}}
	assert.Equal(t, 0, isl.Shells())
}
