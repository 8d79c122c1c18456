package weierstrass

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrLengthMismatch is returned by ScalarMulBatch when the points and scalars
// slices differ in length.
var ErrLengthMismatch = errors.New("points and scalars differ in length")

// Double returns 2·p.
//
// The tangent slope numerator is W = 3·X² + A·Z². For A = 0, or for an input
// with Z = 1, this is the same as 3·x² + A.
func (c *Curve) Double(p ProjectivePoint) ProjectivePoint {
	if p.IsInfinity() {
		return c.Identity()
	}
	// Points of order two have a vertical tangent.
	if p.y.IsZero() {
		return c.Identity()
	}

	w := p.x.Square().MulInt(3).Add(c.a.Mul(p.z.Square()))
	s := p.y.Mul(p.z)
	b := p.x.Mul(p.y).Mul(s)
	h := w.Square().Sub(b.MulInt(8))
	s2 := s.Square()

	x3 := h.Mul(s).MulInt(2)
	y3 := w.Mul(b.MulInt(4).Sub(h)).Sub(p.y.Square().Mul(s2).MulInt(8))
	z3 := s2.Mul(s).MulInt(8)
	return ProjectivePoint{x: x3, y: y3, z: z3}
}

// Add returns p + q.
//
// Identical stored triples are routed straight to Double. Two different
// triples for the same point are not caught by that check; they reach the
// u = v = 0 branch below and are doubled there.
func (c *Curve) Add(p, q ProjectivePoint) ProjectivePoint {
	if p.IsInfinity() {
		return q
	}
	if q.IsInfinity() {
		return p
	}
	if p == q {
		return c.Double(p)
	}

	u := q.y.Mul(p.z).Sub(p.y.Mul(q.z))
	v := q.x.Mul(p.z).Sub(p.x.Mul(q.z))
	if v.IsZero() {
		if u.IsZero() {
			return c.Double(p)
		}
		return c.Identity()
	}

	v2 := v.Square()
	v3 := v2.Mul(v)
	z1z2 := p.z.Mul(q.z)
	v2x1z2 := v2.Mul(p.x).Mul(q.z)
	a := u.Square().Mul(z1z2).Sub(v3).Sub(v2x1z2.MulInt(2))

	x3 := v.Mul(a)
	y3 := u.Mul(v2x1z2.Sub(a)).Sub(v3.Mul(p.y).Mul(q.z))
	z3 := v3.Mul(z1z2)
	return ProjectivePoint{x: x3, y: y3, z: z3}
}

// ScalarMul returns k·p by double-and-add, scanning k from the least
// significant bit.
func (c *Curve) ScalarMul(p ProjectivePoint, k uint64) ProjectivePoint {
	if p.IsInfinity() || k == 0 {
		return c.Identity()
	}

	acc := c.Identity()
	base := p
	for k > 0 {
		if k&1 == 1 {
			acc = c.Add(acc, base)
		}
		base = c.Double(base)
		k >>= 1
	}
	return acc
}

// ScalarMulAffine returns k·p, working in projective coordinates and
// converting back once.
func (c *Curve) ScalarMulAffine(p AffinePoint, k uint64) AffinePoint {
	return c.ScalarMul(c.ToProjective(p), k).ToAffine()
}

// ScalarMulBatch computes scalars[i]·points[i] for every i on up to workers
// goroutines (workers <= 0 means no limit). It stops early and returns the
// context error if ctx is cancelled.
func (c *Curve) ScalarMulBatch(ctx context.Context, points []ProjectivePoint, scalars []uint64, workers int) ([]ProjectivePoint, error) {
	if len(points) != len(scalars) {
		return nil, ErrLengthMismatch
	}

	out := make([]ProjectivePoint, len(points))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range points {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = c.ScalarMul(points[i], scalars[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
