package muscle

import "math"

// Geometry is the radial shape of the muscle derived from its length.
type Geometry struct {
	Radius float64 // m
	Volume float64 // m³, constant across lengths by construction
	Strain float64 // (L-L0)/L0, negative when contracted
}

// GeometryAt derives the shape at length l from volume conservation:
// r(l) = r0*sqrt(L0/l). Callers keep l above LengthFloor.
func (p Params) GeometryAt(l float64) Geometry {
	r := p.Radius * math.Sqrt(p.RestLength/l)
	return Geometry{
		Radius: r,
		Volume: math.Pi * r * r * l,
		Strain: (l - p.RestLength) / p.RestLength,
	}
}

// Contraction returns the fractional shortening at length l, positive
// when the muscle is shorter than rest. It is the negative strain.
func (p Params) Contraction(l float64) float64 {
	return (p.RestLength - l) / p.RestLength
}
