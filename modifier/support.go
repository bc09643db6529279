// This file provides the modifiers that generate support material
// (section 4.6): supportDetectorModifier flags per-layer overhang areas,
// and supportGeneratorModifier (run afterwards, since it needs every
// layer's detection result at once) grows them down to the build plate or
// the model and splits interface from body support.
package modifier

import (
	"errors"
	"fmt"
	"math"

	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
)

type supportDetectorModifier struct {
	handler.Named
	options *data.Options
}

func (m supportDetectorModifier) Init(_ handler.OptimizedModel) {}

// NewSupportDetectorModifier calculates the areas which need support and
// saves them as the attribute "support" ([]data.LayerPart) on the layer
// TopGapLayers below the one directly under the overhanging layer (with
// TopGapLayers 0, the layer directly under it), so the generator has a gap of
// bare layers before support starts (section 4.6 step 1).
//
// How it basically works:
// ### = the model
//
// ############
// ############
// ### ___d____  |
// ### |     /   |
// ### |    /    |
// ### h   /     | h = 1 layer height
// ### |  /      |
// ### |θ/       |
// ### |/        |
//
// d = h * tan θ
// The previous layer is offset outward by d and subtracted from the
// current layer; what remains overhangs steeper than the threshold angle
// and needs support.
func NewSupportDetectorModifier(options *data.Options) handler.LayerModifier {
	return &supportDetectorModifier{
		Named:   handler.Named{Name: "SupportDetector"},
		options: options,
	}
}

func (m supportDetectorModifier) Modify(layers []data.PartitionedLayer) error {
	if !m.options.Print.Support.Enabled {
		return nil
	}

	cl := clip.NewClipper()
	layerHeight := float64(m.options.Print.LayerThickness)
	angle := data.ToRadians(m.options.Print.Support.ThresholdAngle)
	growBy := data.Micrometer(math.Round(layerHeight * math.Tan(angle)))

	for layerNr := range layers {
		if layerNr == len(layers)-1 || layerNr < m.options.Print.Support.TopGapLayers {
			continue
		}

		offsetLayer, ok := cl.OffsetRound(layers[layerNr].LayerParts(), growBy)
		if !ok {
			return errors.New("could not offset layer for overhang detection")
		}

		support, ok := cl.Difference(layers[layerNr+1].LayerParts(), offsetLayer)
		if !ok {
			return errors.New("could not calculate the support parts")
		}

		// grow the detected area a bit to guarantee at least two support
		// lines almost everywhere.
		grow := m.options.Print.Support.PatternSpacing.ToMicrometer() * 3 / 2
		support, ok = cl.Offset(support, grow)
		if !ok {
			return errors.New("could not grow the support parts")
		}

		target := layerNr - m.options.Print.Support.TopGapLayers
		newLayer := newExtendedLayer(layers[target])
		newLayer.Attributes()["support"] = support
		layers[target] = newLayer
	}

	return nil
}

type supportGeneratorModifier struct {
	handler.Named
	options *data.Options
}

func (m supportGeneratorModifier) Init(_ handler.OptimizedModel) {}

// NewSupportGeneratorModifier generates the actual support material out of
// the overhang areas supportDetectorModifier found: it grows each
// detected area down until it either touches the model or reaches the
// build plate, and splits the top InterfaceLayers of each downward run
// into interface support (section 4.6 steps 2-7).
func NewSupportGeneratorModifier(options *data.Options) handler.LayerModifier {
	return &supportGeneratorModifier{
		Named:   handler.Named{Name: "SupportGenerator"},
		options: options,
	}
}

func (m supportGeneratorModifier) Modify(layers []data.PartitionedLayer) error {
	if !m.options.Print.Support.Enabled {
		return nil
	}

	var lastSupport []data.LayerPart

	for layerNr := len(layers) - 2; layerNr >= 1; layerNr-- {
		cl := clip.NewClipper()

		currentSupport := lastSupport
		if currentSupport == nil {
			var err error
			currentSupport, err = PartsAttribute(layers[layerNr], "support")
			if err != nil {
				return err
			}
		}

		belowSupport, err := PartsAttribute(layers[layerNr-1], "support")
		if err != nil {
			return err
		}

		if len(currentSupport) == 0 && len(belowSupport) == 0 {
			lastSupport = nil
			continue
		}

		result, ok := cl.Union(currentSupport, belowSupport)
		if !ok {
			return fmt.Errorf("could not union the supports for layer %d", layerNr)
		}

		// widen the model footprint a little to leave a gap between
		// support and the model (section 4.6 step 2's support_margin).
		biggerModel, ok := cl.Offset(layers[layerNr-1].LayerParts(), m.options.Print.Support.Gap.ToMicrometer())
		if !ok {
			return fmt.Errorf("could not grow the model for layer %d", layerNr)
		}

		actualSupport, ok := cl.Difference(result, biggerModel)
		if !ok {
			return fmt.Errorf("could not subtract the model from the supports for layer %d", layerNr)
		}

		var interfaceParts, body []data.LayerPart

		if len(actualSupport) > 0 {
			aboveInterface := layerNr + m.options.Print.Support.InterfaceLayers - 1
			if aboveInterface >= len(layers) {
				aboveInterface = len(layers) - 1
			}

			supportAboveInterface, err := PartsAttribute(layers[aboveInterface], "fullSupport")
			if err != nil {
				return err
			}

			interfaceParts, ok = cl.Difference(actualSupport, supportAboveInterface)
			if !ok {
				return errors.New("error while calculating interface parts")
			}

			body, ok = cl.Difference(actualSupport, interfaceParts)
			if !ok {
				return errors.New("error while calculating support body")
			}

			brimArea, err := BrimOuterDimension(layers[layerNr-1])
			if err != nil {
				return err
			}
			if len(brimArea) > 0 {
				interfaceParts, _ = cl.Difference(interfaceParts, brimArea)
				body, _ = cl.Difference(body, brimArea)
			}
		}

		lastSupport = actualSupport

		newLayer := newExtendedLayer(layers[layerNr-1])
		if len(actualSupport) > 0 {
			newLayer.Attributes()["fullSupport"] = actualSupport
		}
		if len(interfaceParts) > 0 {
			newLayer.Attributes()["supportInterface"] = interfaceParts
		}
		if len(body) > 0 {
			newLayer.Attributes()["support"] = body
		} else {
			newLayer.Attributes()["support"] = []data.LayerPart{}
		}
		layers[layerNr-1] = newLayer
	}

	return nil
}
