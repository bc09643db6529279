package modifier

import (
	"errors"
	"fmt"

	"github.com/aligator/goslice/data"
)

// newExtendedLayer returns a copy-on-write PartitionedLayer derived from
// layer, ready to have a new attribute set on it without mutating any
// other modifier's view of the same slice - the teacher's "extendedLayer"
// idiom (modifier/support.go), generalized into data.ExtendAttributes so
// every modifier in this package shares one implementation instead of each
// defining its own private extendedLayer type.
func newExtendedLayer(layer data.PartitionedLayer) data.PartitionedLayer {
	return data.ExtendAttributes(layer)
}

// PartsAttribute extracts a []data.LayerPart attribute from layer. Absent
// attributes return (nil, nil); an attribute present under the wrong type
// is an error, matching the teacher's FullSupport helper generalized to
// any attribute key.
func PartsAttribute(layer data.PartitionedLayer, key string) ([]data.LayerPart, error) {
	attr, ok := layer.Attributes()[key]
	if !ok {
		return nil, nil
	}

	parts, ok := attr.([]data.LayerPart)
	if !ok {
		return nil, fmt.Errorf("the attribute %q has the wrong datatype", key)
	}

	return parts, nil
}

// BrimOuterDimension returns the brim rings attached to layer (if any), so
// support generation can subtract them and avoid overlapping the brim
// (section 4.6 step 3 / section 4.7).
func BrimOuterDimension(layer data.PartitionedLayer) ([]data.LayerPart, error) {
	return PartsAttribute(layer, "brimOuter")
}

// errNoAttribute is returned by islandsOf when a layer's "islands"
// attribute is present but does not hold a []*data.Island; an absent
// attribute is not an error there.
var errNoAttribute = errors.New("modifier: the islands attribute has the wrong datatype")
