package weierstrass

import (
	"errors"
	"fmt"
)

// Curve errors
var (
	// ErrCharacteristic is returned for fields of characteristic 2 or 3, where the
	// short Weierstrass form does not describe every curve.
	ErrCharacteristic = errors.New("field characteristic must be greater than 3")
	// ErrSingularCurve is returned when 4A³ + 27B² ≡ 0 (mod p).
	ErrSingularCurve = errors.New("curve is singular")
)

// Curve is the short Weierstrass curve y² = x³ + A·x + B over F_p. A Curve is
// immutable once constructed and may be shared between goroutines.
type Curve struct {
	field Field
	a, b  FieldElement
}

// NewCurve validates the parameters and returns the curve y² = x³ + a·x + b
// over F_p.
func NewCurve(p uint64, a, b int64) (*Curve, error) {
	f, err := NewField(p)
	if err != nil {
		return nil, fmt.Errorf("modulus %d: %w", p, err)
	}
	if p <= 3 {
		return nil, ErrCharacteristic
	}

	c := &Curve{
		field: f,
		a:     f.NewElement(a),
		b:     f.NewElement(b),
	}

	// Discriminant -16(4A³ + 27B²) must not vanish.
	disc := c.a.Exp(3).MulInt(4).Add(c.b.Square().MulInt(27))
	if disc.IsZero() {
		return nil, ErrSingularCurve
	}
	return c, nil
}

// MustCurve is like NewCurve but panics on invalid parameters. It is intended
// for package-level fixtures.
func MustCurve(p uint64, a, b int64) *Curve {
	c, err := NewCurve(p, a, b)
	if err != nil {
		panic(err)
	}
	return c
}

// Field returns the coordinate field.
func (c *Curve) Field() Field {
	return c.field
}

// A returns the coefficient of x.
func (c *Curve) A() FieldElement {
	return c.a
}

// B returns the constant coefficient.
func (c *Curve) B() FieldElement {
	return c.b
}

func (c *Curve) String() string {
	return fmt.Sprintf("y^2 = x^3 + %s*x + %s (mod %d)", c.a, c.b, c.field.p)
}

// Element reduces v into the coordinate field.
func (c *Curve) Element(v int64) FieldElement {
	return c.field.NewElement(v)
}

// Point returns the finite affine point (x mod p, y mod p). Membership on the
// curve is not checked; see IsOnCurve.
func (c *Curve) Point(x, y int64) AffinePoint {
	return NewAffinePoint(c.field.NewElement(x), c.field.NewElement(y))
}

// rhs evaluates x³ + A·x + B.
func (c *Curve) rhs(x FieldElement) FieldElement {
	return x.Square().Mul(x).Add(c.a.Mul(x)).Add(c.b)
}

// IsOnCurve reports whether p satisfies the curve equation. Infinity is always
// on the curve.
func (c *Curve) IsOnCurve(p AffinePoint) bool {
	x, y, ok := p.XY()
	if !ok {
		return true
	}
	if x.p != c.field.p || y.p != c.field.p {
		return false
	}
	return y.Square() == c.rhs(x)
}

// LiftX returns the point with the given x coordinate whose y has the requested
// parity. It returns false when x³ + A·x + B is not a square. When y = 0 the
// single root is returned regardless of odd.
func (c *Curve) LiftX(x FieldElement, odd bool) (AffinePoint, bool) {
	y, ok := c.rhs(x).Sqrt()
	if !ok {
		return AffinePoint{}, false
	}
	if y.IsOdd() != odd && !y.IsZero() {
		y = y.Neg()
	}
	return NewAffinePoint(x, y), true
}
