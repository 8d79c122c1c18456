// Package weierstrass implements prime-field arithmetic and the group law of
// short Weierstrass curves y² = x³ + A·x + B over fields whose modulus fits in
// 63 bits. Points are kept in projective coordinates during computation and
// converted to affine coordinates at the edges.
package weierstrass

import (
	"errors"
	"math/big"
	"strconv"
)

// Field errors
var (
	// ErrNotInvertible is returned when inverting (or dividing by) the zero element.
	ErrNotInvertible = errors.New("field element is not invertible")
	// ErrNotPrime is returned when a field modulus is not prime.
	ErrNotPrime = errors.New("field modulus is not prime")
	// ErrModulusTooLarge is returned when a field modulus does not fit below 2^63.
	ErrModulusTooLarge = errors.New("field modulus must be below 2^63")
)

// maxModulus bounds the modulus so that every residue fits in an int64 and the
// sum of two residues fits in a uint64.
const maxModulus = 1 << 63

// Field is the prime field F_p. It is a small value type and safe to copy.
type Field struct {
	p uint64
}

// NewField returns the field of integers modulo p. The modulus must be a prime
// below 2^63.
func NewField(p uint64) (Field, error) {
	if p >= maxModulus {
		return Field{}, ErrModulusTooLarge
	}
	// ProbablyPrime(0) runs Baillie-PSW, which has no known pseudoprimes and is
	// exact below 2^64.
	if !new(big.Int).SetUint64(p).ProbablyPrime(0) {
		return Field{}, ErrNotPrime
	}
	return Field{p: p}, nil
}

// Modulus returns p.
func (f Field) Modulus() uint64 {
	return f.p
}

// NewElement reduces v modulo p. Negative values are mapped into [0, p-1].
func (f Field) NewElement(v int64) FieldElement {
	r := v % int64(f.p)
	if r < 0 {
		r += int64(f.p)
	}
	return FieldElement{value: uint64(r), p: f.p}
}

// NewElementUint64 reduces v modulo p.
func (f Field) NewElementUint64(v uint64) FieldElement {
	return FieldElement{value: v % f.p, p: f.p}
}

// Zero returns the additive identity.
func (f Field) Zero() FieldElement {
	return FieldElement{value: 0, p: f.p}
}

// One returns the multiplicative identity.
func (f Field) One() FieldElement {
	return FieldElement{value: 1, p: f.p}
}

// FieldElement is a canonically reduced residue modulo a prime. Elements are
// immutable values: every operation returns a new element. Mixing elements of
// different fields panics.
//
// The zero value is not a valid element; obtain elements from a Field.
type FieldElement struct {
	value uint64
	p     uint64
}

// Uint64 returns the canonical representative in [0, p-1].
func (a FieldElement) Uint64() uint64 {
	return a.value
}

// Modulus returns the modulus of the field a belongs to.
func (a FieldElement) Modulus() uint64 {
	return a.p
}

func (a FieldElement) String() string {
	return strconv.FormatUint(a.value, 10)
}

// IsZero reports whether a is the additive identity.
func (a FieldElement) IsZero() bool {
	return a.value == 0
}

// IsOdd reports whether the canonical representative of a is odd.
func (a FieldElement) IsOdd() bool {
	return a.value&1 == 1
}

// Equal reports whether a and b are the same element of the same field.
func (a FieldElement) Equal(b FieldElement) bool {
	return a == b
}

func (a FieldElement) mustMatch(b FieldElement) {
	if a.p != b.p {
		panic("weierstrass: mixing elements of different fields")
	}
}

// Add returns a + b.
func (a FieldElement) Add(b FieldElement) FieldElement {
	a.mustMatch(b)
	return FieldElement{value: addMod(a.value, b.value, a.p), p: a.p}
}

// Sub returns a - b.
func (a FieldElement) Sub(b FieldElement) FieldElement {
	a.mustMatch(b)
	return FieldElement{value: subMod(a.value, b.value, a.p), p: a.p}
}

// Mul returns a * b.
func (a FieldElement) Mul(b FieldElement) FieldElement {
	a.mustMatch(b)
	return FieldElement{value: mulMod(a.value, b.value, a.p), p: a.p}
}

// MulInt returns a * k for a small signed integer k.
func (a FieldElement) MulInt(k int64) FieldElement {
	return a.Mul(Field{p: a.p}.NewElement(k))
}

// Neg returns -a.
func (a FieldElement) Neg() FieldElement {
	return FieldElement{value: subMod(0, a.value, a.p), p: a.p}
}

// Square returns a².
func (a FieldElement) Square() FieldElement {
	return a.Mul(a)
}

// Exp returns a^e. 0^0 is 1.
func (a FieldElement) Exp(e uint64) FieldElement {
	return FieldElement{value: expMod(a.value, e, a.p), p: a.p}
}

// Inverse returns a⁻¹ computed as a^(p-2) (Fermat's little theorem). The
// modulus is prime by construction, so this fails only for zero.
func (a FieldElement) Inverse() (FieldElement, error) {
	if a.IsZero() {
		return FieldElement{}, ErrNotInvertible
	}
	return a.Exp(a.p - 2), nil
}

// Div returns a / b.
func (a FieldElement) Div(b FieldElement) (FieldElement, error) {
	a.mustMatch(b)
	inv, err := b.Inverse()
	if err != nil {
		return FieldElement{}, err
	}
	return a.Mul(inv), nil
}

// mustInverse is used where the surrounding case analysis has already ruled
// out zero.
func (a FieldElement) mustInverse() FieldElement {
	inv, err := a.Inverse()
	if err != nil {
		panic("weierstrass: " + err.Error())
	}
	return inv
}

// BatchInverse inverts every element of a using a single field inversion
// (Montgomery's trick). It fails with ErrNotInvertible if any element is zero.
func BatchInverse(a []FieldElement) ([]FieldElement, error) {
	n := len(a)
	if n == 0 {
		return nil, nil
	}

	// s[i] = a[0] * a[1] * ... * a[i-1]
	s := make([]FieldElement, n)
	s[0] = Field{p: a[0].p}.One()
	for i := 1; i < n; i++ {
		s[i] = s[i-1].Mul(a[i-1])
	}

	u, err := s[n-1].Mul(a[n-1]).Inverse()
	if err != nil {
		return nil, err
	}

	// Walk backwards peeling one factor off u at a time.
	out := make([]FieldElement, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = u.Mul(s[i])
		u = u.Mul(a[i])
	}
	return out, nil
}
