package weierstrass

import "fmt"

// AffinePoint is either the point at infinity or a finite point (x, y). The
// zero value is the point at infinity.
type AffinePoint struct {
	x, y   FieldElement
	finite bool
}

// ProjectivePoint is the triple (X : Y : Z) standing for the affine point
// (X/Z, Y/Z). Any triple with Z = 0 is the identity; the canonical identity is
// (0 : 1 : 0).
//
// Many triples describe the same point. Go's == on ProjectivePoint compares
// stored triples, not points; use Equivalent for the geometric comparison or
// convert with ToAffine.
type ProjectivePoint struct {
	x, y, z FieldElement
}

// Infinity returns the affine point at infinity.
func Infinity() AffinePoint {
	return AffinePoint{}
}

// NewAffinePoint returns the finite point (x, y).
func NewAffinePoint(x, y FieldElement) AffinePoint {
	x.mustMatch(y)
	return AffinePoint{x: x, y: y, finite: true}
}

// IsInfinity reports whether p is the point at infinity.
func (p AffinePoint) IsInfinity() bool {
	return !p.finite
}

// XY returns the coordinates of a finite point. ok is false for infinity.
func (p AffinePoint) XY() (x, y FieldElement, ok bool) {
	if !p.finite {
		return FieldElement{}, FieldElement{}, false
	}
	return p.x, p.y, true
}

// Equal reports whether p and q are the same point.
func (p AffinePoint) Equal(q AffinePoint) bool {
	if !p.finite || !q.finite {
		return p.finite == q.finite
	}
	return p.x == q.x && p.y == q.y
}

// Neg returns -p, the reflection in the x axis.
func (p AffinePoint) Neg() AffinePoint {
	if !p.finite {
		return p
	}
	return AffinePoint{x: p.x, y: p.y.Neg(), finite: true}
}

func (p AffinePoint) String() string {
	if !p.finite {
		return "Infinity"
	}
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}

// Identity returns the canonical projective identity (0 : 1 : 0).
func (c *Curve) Identity() ProjectivePoint {
	return ProjectivePoint{x: c.field.Zero(), y: c.field.One(), z: c.field.Zero()}
}

// NewProjectivePoint returns the triple (x : y : z) as given.
func NewProjectivePoint(x, y, z FieldElement) ProjectivePoint {
	x.mustMatch(y)
	x.mustMatch(z)
	return ProjectivePoint{x: x, y: y, z: z}
}

// ToProjective maps infinity to (0 : 1 : 0) and (x, y) to (x : y : 1).
func (c *Curve) ToProjective(p AffinePoint) ProjectivePoint {
	if !p.finite {
		return c.Identity()
	}
	return ProjectivePoint{x: p.x, y: p.y, z: c.field.One()}
}

// Coordinates returns the stored triple.
func (p ProjectivePoint) Coordinates() (x, y, z FieldElement) {
	return p.x, p.y, p.z
}

// IsInfinity reports whether p is the identity, i.e. Z = 0.
func (p ProjectivePoint) IsInfinity() bool {
	return p.z.IsZero()
}

// Equal reports whether p and q are literally the same triple.
func (p ProjectivePoint) Equal(q ProjectivePoint) bool {
	return p == q
}

// Equivalent reports whether p and q represent the same group element, by
// comparing (X1·Z2, Y1·Z2) with (X2·Z1, Y2·Z1).
func (p ProjectivePoint) Equivalent(q ProjectivePoint) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	return p.x.Mul(q.z) == q.x.Mul(p.z) && p.y.Mul(q.z) == q.y.Mul(p.z)
}

// Neg returns -p.
func (p ProjectivePoint) Neg() ProjectivePoint {
	if p.IsInfinity() {
		return p
	}
	return ProjectivePoint{x: p.x, y: p.y.Neg(), z: p.z}
}

// ToAffine returns (X/Z, Y/Z), or infinity when Z = 0. This costs one field
// inversion.
func (p ProjectivePoint) ToAffine() AffinePoint {
	if p.IsInfinity() {
		return AffinePoint{}
	}
	zInv := p.z.mustInverse()
	return AffinePoint{x: p.x.Mul(zInv), y: p.y.Mul(zInv), finite: true}
}

func (p ProjectivePoint) String() string {
	return fmt.Sprintf("(%s : %s : %s)", p.x, p.y, p.z)
}

// BatchToAffine converts every point with a single field inversion.
func (c *Curve) BatchToAffine(points []ProjectivePoint) []AffinePoint {
	out := make([]AffinePoint, len(points))

	zs := make([]FieldElement, 0, len(points))
	idx := make([]int, 0, len(points))
	for i, p := range points {
		if p.IsInfinity() {
			continue
		}
		zs = append(zs, p.z)
		idx = append(idx, i)
	}

	inv, err := BatchInverse(zs)
	if err != nil {
		// Every z collected above is non-zero.
		panic("weierstrass: " + err.Error())
	}
	for j, i := range idx {
		p := points[i]
		out[i] = AffinePoint{x: p.x.Mul(inv[j]), y: p.y.Mul(inv[j]), finite: true}
	}
	return out
}

// Neg returns -p.
func (c *Curve) Neg(p AffinePoint) AffinePoint {
	return p.Neg()
}

// AddAffine adds two affine points with the chord-and-tangent law directly in
// affine coordinates. Each call performs one field inversion; prefer Add on
// projective points for longer computations.
func (c *Curve) AddAffine(p, q AffinePoint) AffinePoint {
	if !p.finite {
		return q
	}
	if !q.finite {
		return p
	}

	var s FieldElement
	if p.x == q.x {
		// Vertical chord through P and -P.
		if p.y != q.y {
			return AffinePoint{}
		}
		// Vertical tangent at a point of order two.
		if p.y.IsZero() {
			return AffinePoint{}
		}
		// s = (3x² + A) / 2y
		num := p.x.Square().MulInt(3).Add(c.a)
		s = num.Mul(p.y.MulInt(2).mustInverse())
	} else {
		// s = (y2 - y1) / (x2 - x1)
		s = q.y.Sub(p.y).Mul(q.x.Sub(p.x).mustInverse())
	}

	x3 := s.Square().Sub(p.x).Sub(q.x)
	y3 := s.Mul(p.x.Sub(x3)).Sub(p.y)
	return AffinePoint{x: x3, y: y3, finite: true}
}
