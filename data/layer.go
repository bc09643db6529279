package data

// LayerPart is one outer contour plus its immediate holes, the raw
// partitioning unit produced by clip.Clipper.GenerateLayerParts (section
// 4.2) before shells/fill are computed. It intentionally carries none of
// the Island's derived geometry — PerimeterModifier promotes LayerParts
// into Islands.
type LayerPart interface {
	Outline() Path
	Holes() Paths
}

type unknownLayerPart struct {
	outline Path
	holes   Paths
}

// NewUnknownLayerPart builds a LayerPart from an already-computed outline
// and hole set, the shape clip.Clipper returns after walking a PolyTree.
func NewUnknownLayerPart(outline Path, holes Paths) LayerPart {
	return unknownLayerPart{outline: outline, holes: holes}
}

func (p unknownLayerPart) Outline() Path  { return p.outline }
func (p unknownLayerPart) Holes() Paths   { return p.holes }

// AllPaths returns outline followed by holes, the shape most clipper calls
// that need "subject polygons for one part" want.
func AllPaths(part LayerPart) Paths {
	return append(Paths{part.Outline()}, part.Holes()...)
}

// PartitionedLayer is one layer's slice geometry after S2 stitching plus
// whatever attributes later stages (S3-S7) have attached to it — the
// teacher's attribute-map idiom for passing per-layer derived data (islands,
// support maps, brim rings, raft lines, ...) between modifiers without
// mutating a shared struct concurrently.
type PartitionedLayer interface {
	LayerParts() []LayerPart
	Attributes() map[string]interface{}
}

type partitionedLayer struct {
	parts      []LayerPart
	attributes map[string]interface{}
}

// NewPartitionedLayer wraps a set of LayerParts as the starting
// PartitionedLayer for a slice, with an empty attribute set.
func NewPartitionedLayer(parts []LayerPart) PartitionedLayer {
	return &partitionedLayer{
		parts:      parts,
		attributes: map[string]interface{}{},
	}
}

func (l *partitionedLayer) LayerParts() []LayerPart            { return l.parts }
func (l *partitionedLayer) Attributes() map[string]interface{} { return l.attributes }

// ExtendAttributes returns a new PartitionedLayer sharing the same parts but
// with its own attribute map seeded from the original (copy-on-write so
// concurrent modifiers never race on the same map, matching the
// per-slice-exclusive-ownership rule of section 5).
func ExtendAttributes(l PartitionedLayer) PartitionedLayer {
	attrs := make(map[string]interface{}, len(l.Attributes())+1)
	for k, v := range l.Attributes() {
		attrs[k] = v
	}
	return &partitionedLayer{parts: l.LayerParts(), attributes: attrs}
}
