// Package handler defines the pipeline-stage interfaces every component in
// this repository is built behind, the same seam the teacher repo uses to
// let main() assemble Reader/Optimizer/Slicer/Modifiers/Generator/Writer
// independently of their concrete implementations.
package handler

import "github.com/aligator/goslice/data"

// Named gives a component a human-readable name for logging, embedded by
// every LayerModifier implementation.
type Named struct {
	Name string
}

func (n Named) GetName() string { return n.Name }

// Model is the raw triangle mesh as read from disk (section 3's Mesh
// entity), before any optimization/deduplication.
type Model interface {
	FaceCount() int
	Min() data.MicroVec3
	Max() data.MicroVec3
}

// Face is one triangle of an OptimizedModel, annotated with the indices of
// the faces that share an edge with it — the adjacency information the
// segment stitcher (section 4.2) walks to connect segments face to face.
type Face interface {
	Vertices() [3]data.Vertex
	TouchingFaceIndices() [3]int
}

// OptimizedModel is the deduplicated, adjacency-indexed mesh the slicer
// actually walks (section 4.1/4.2).
type OptimizedModel interface {
	Model
	OptimizedFace(index int) Face
	FaceCount() int
}

// ModelReader loads a Model from a file path (or "-" for stdin). Binary-STL
// parsing itself is out of scope per spec.md section 1 — this interface is
// the only contract the rest of the pipeline depends on.
type ModelReader interface {
	Read(filePath string) (Model, error)
}

// ModelOptimizer turns a raw Model into an OptimizedModel (vertex
// deduplication, face adjacency).
type ModelOptimizer interface {
	Optimize(m Model) (OptimizedModel, error)
}

// ModelSlicer implements S1+S2: mesh to per-layer segments to stitched,
// partitioned layers.
type ModelSlicer interface {
	Slice(m OptimizedModel) ([]data.PartitionedLayer, error)
}

// LayerModifier implements one S3-S7 stage: it reads and/or attaches
// attributes on the layer slice in place.
type LayerModifier interface {
	Init(m OptimizedModel)
	Modify(layers []data.PartitionedLayer) error
	GetName() string
}

// GCodeGenerator implements S8+S9: motion planning and G-code emission.
type GCodeGenerator interface {
	Init(m OptimizedModel)
	Generate(layers []data.PartitionedLayer) (string, error)
}

// GCodeWriter persists the final G-code text.
type GCodeWriter interface {
	Write(gcode string, filename string) error
}
