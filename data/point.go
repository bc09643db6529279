package data

import "math"

// MicroPoint is a single 2D point on the integer lattice (section 3's
// Segment/Path endpoint representation).
type MicroPoint struct {
	x, y Micrometer
}

// NewMicroPoint creates a MicroPoint from lattice coordinates.
func NewMicroPoint(x, y Micrometer) MicroPoint {
	return MicroPoint{x: x, y: y}
}

// NewMicroPointMM creates a MicroPoint from real millimeter coordinates.
func NewMicroPointMM(x, y Millimeter) MicroPoint {
	return MicroPoint{x: x.ToMicrometer(), y: y.ToMicrometer()}
}

func (p MicroPoint) X() Micrometer { return p.x }
func (p MicroPoint) Y() Micrometer { return p.y }

func (p *MicroPoint) SetX(x Micrometer) { p.x = x }
func (p *MicroPoint) SetY(y Micrometer) { p.y = y }

// Add returns p + other.
func (p MicroPoint) Add(other MicroPoint) MicroPoint {
	return MicroPoint{x: p.x + other.x, y: p.y + other.y}
}

// Sub returns p - other.
func (p MicroPoint) Sub(other MicroPoint) MicroPoint {
	return MicroPoint{x: p.x - other.x, y: p.y - other.y}
}

// Mul scales both components by f.
func (p MicroPoint) Mul(f float64) MicroPoint {
	return MicroPoint{x: round(float64(p.x) * f), y: round(float64(p.y) * f)}
}

// Size returns the vector length of p (treating it as a vector from origin).
func (p MicroPoint) Size() Micrometer {
	return round(math.Sqrt(float64(p.x)*float64(p.x) + float64(p.y)*float64(p.y)))
}

// SizeSquared returns the squared vector length, avoiding the sqrt for
// threshold comparisons (used pervasively by the stitcher, section 4.2).
func (p MicroPoint) SizeSquared() int64 {
	return int64(p.x)*int64(p.x) + int64(p.y)*int64(p.y)
}

// Dist returns the Euclidean distance between p and other.
func (p MicroPoint) Dist(other MicroPoint) Micrometer {
	return p.Sub(other).Size()
}

// DistSquared returns the squared distance between p and other, the
// comparison the stitcher (section 4.2) actually needs against tolerance^2.
func (p MicroPoint) DistSquared(other MicroPoint) int64 {
	return p.Sub(other).SizeSquared()
}

// ShorterThan reports whether p's vector length is strictly shorter than d.
func (p MicroPoint) ShorterThan(d Micrometer) bool {
	return p.SizeSquared() < int64(d)*int64(d)
}

// ShorterThanOrEqual reports whether p's vector length is <= d.
func (p MicroPoint) ShorterThanOrEqual(d Micrometer) bool {
	return p.SizeSquared() <= int64(d)*int64(d)
}

// Rotate rotates p around the origin by angleRad radians.
func (p MicroPoint) Rotate(angleRad float64) MicroPoint {
	s, c := math.Sin(angleRad), math.Cos(angleRad)
	fx, fy := float64(p.x), float64(p.y)
	return MicroPoint{
		x: round(fx*c - fy*s),
		y: round(fx*s + fy*c),
	}
}

// Dot returns the dot product of p and other.
func (p MicroPoint) Dot(other MicroPoint) int64 {
	return int64(p.x)*int64(other.x) + int64(p.y)*int64(other.y)
}

// Cross returns the 2D cross product (z component) of p and other.
func (p MicroPoint) Cross(other MicroPoint) int64 {
	return int64(p.x)*int64(other.y) - int64(p.y)*int64(other.x)
}

// Normal returns p scaled to have length newLen (0 if p is the zero vector).
func (p MicroPoint) Normal(newLen Micrometer) MicroPoint {
	l := p.Size()
	if l == 0 {
		return MicroPoint{}
	}
	return p.Mul(float64(newLen) / float64(l))
}

// MicroVec3 is a 3D point on the integer lattice (XY) with a real-valued Z
// (section 3: heights are kept in real units and discretized only at
// emission).
type MicroVec3 struct {
	MicroPoint
	z Millimeter
}

// NewMicroVec3 creates a MicroVec3 from lattice XY and real Z.
func NewMicroVec3(x, y Micrometer, z Millimeter) MicroVec3 {
	return MicroVec3{MicroPoint: NewMicroPoint(x, y), z: z}
}

func (v MicroVec3) Z() Millimeter { return v.z }

// Vertex is a real-valued 3D point as read directly from the mesh, before
// projection to the lattice (section 3's Vertex entity).
type Vertex struct {
	X, Y, Z Millimeter
}

// Sub returns v - other.
func (v Vertex) Sub(other Vertex) Vertex {
	return Vertex{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// ToMicroPoint projects the vertex's XY onto the integer lattice, discarding Z.
func (v Vertex) ToMicroPoint() MicroPoint {
	return NewMicroPointMM(v.X, v.Y)
}
