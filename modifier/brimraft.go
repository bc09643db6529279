// This file implements section 4.7's Brim and Raft builders. Both run
// once (not per-layer) against the layer-0 footprint, so they are
// LayerModifiers that only ever touch layers[0].
package modifier

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
)

type brimModifier struct {
	handler.Named
	options *data.Options
}

// NewBrimModifier generates the build-plate adhesion rings around
// layer-0's footprint (and its support, if any) and stores them as the
// "brim" ([]data.Paths, one per ring) and "brimOuter" ([]data.LayerPart,
// the outermost ring) attributes.
func NewBrimModifier(options *data.Options) handler.LayerModifier {
	return &brimModifier{Named: handler.Named{Name: "Brim"}, options: options}
}

func (m *brimModifier) Init(_ handler.OptimizedModel) {}

func (m *brimModifier) Modify(layers []data.PartitionedLayer) error {
	if !m.options.Print.Brim.Enabled || len(layers) == 0 {
		return nil
	}

	cl := clip.NewClipper()
	ew := m.options.Printer.ExtrusionWidth
	derived := data.ComputeDerived(m.options)
	edgeOffset := data.Micrometer(derived.EdgeOffset * data.ScaleConstant)

	base := layers[0].LayerParts()
	if support, err := PartsAttribute(layers[0], "support"); err == nil && len(support) > 0 {
		if union, ok := cl.Union(base, support); ok {
			base = union
		}
	}

	lines := int(m.options.Print.Brim.Width/ew.ToMillimeter() + 0.5)
	adhesion := m.options.Print.Brim.AdhesionFactor

	var rings []data.Paths
	var outer []data.LayerPart
	for k := 1; k <= lines; k++ {
		extra := data.Micrometer((-float64(edgeOffset)*2 - float64(ew)) * (1 - adhesion) * 2)
		delta := data.Micrometer(k)*ew + extra
		ring, ok := cl.Offset(base, delta)
		if !ok {
			continue
		}
		rings = append(rings, partsToOutlines(ring))
		outer = ring
	}

	newLayer := newExtendedLayer(layers[0])
	newLayer.Attributes()["brim"] = rings
	newLayer.Attributes()["brimOuter"] = outer
	layers[0] = newLayer

	return nil
}

type raftModifier struct {
	handler.Named
	options *data.Options
}

// NewRaftModifier generates the sacrificial raft base and interface lines
// beneath layer 0, expanding the brim (or the bare footprint) outward by
// RaftOptions.XYExpansion and filling it with a wide-stroke base pattern
// plus replicated interface lines.
func NewRaftModifier(options *data.Options) handler.LayerModifier {
	return &raftModifier{Named: handler.Named{Name: "Raft"}, options: options}
}

func (m *raftModifier) Init(_ handler.OptimizedModel) {}

func (m *raftModifier) Modify(layers []data.PartitionedLayer) error {
	if !m.options.Print.Raft.Enabled || len(layers) == 0 {
		return nil
	}

	cl := clip.NewClipper()
	ew := m.options.Printer.ExtrusionWidth

	base := layers[0].LayerParts()
	if outer, err := BrimOuterDimension(layers[0]); err == nil && len(outer) > 0 {
		base = outer
	}

	expanded, ok := cl.Offset(base, m.options.Print.Raft.XYExpansion.ToMicrometer())
	if !ok || len(expanded) == 0 {
		return nil
	}

	bounds := data.BoundsOfPaths(partsToOutlines(expanded))

	baseWidth := m.options.Print.Raft.BaseLayerWidth
	baseDensity := (float64(ew) / float64(baseWidth)) * m.options.Print.Raft.BaseLayerDensity
	basePattern := clip.RectilinearPattern(bounds, data.Micrometer(float64(baseWidth)/baseDensity), 0, 0)
	baseLines := clipToPaths(cl, expanded, basePattern)

	interfacePattern := clip.RectilinearPattern(bounds, ew, 90, 0)
	interfaceLines := clipToPaths(cl, expanded, interfacePattern)

	newLayer := newExtendedLayer(layers[0])
	newLayer.Attributes()["raftBase"] = baseLines
	newLayer.Attributes()["raftInterface"] = interfaceLines
	newLayer.Attributes()["raftInterfaceLayers"] = m.options.Print.Raft.InterfaceLayers
	layers[0] = newLayer

	return nil
}
