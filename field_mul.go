package weierstrass

import "math/bits"

// All helpers below take residues already reduced into [0, p) with p < 2^63.

// addMod returns (a + b) mod p. a + b cannot overflow since both are below 2^63.
func addMod(a, b, p uint64) uint64 {
	s := a + b
	if s >= p {
		s -= p
	}
	return s
}

// subMod returns (a - b) mod p.
func subMod(a, b, p uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + (p - b)
}

// mulMod returns (a * b) mod p using the full 128-bit product.
func mulMod(a, b, p uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, p)
}

// expMod computes base^e mod p by right-to-left binary exponentiation.
func expMod(base, e, p uint64) uint64 {
	r := uint64(1) % p
	for e > 0 {
		if e&1 == 1 {
			r = mulMod(r, base, p)
		}
		base = mulMod(base, base, p)
		e >>= 1
	}
	return r
}

// IsSquare reports whether a is a quadratic residue (zero counts as a square),
// using Euler's criterion a^((p-1)/2) = 1.
func (a FieldElement) IsSquare() bool {
	if a.IsZero() || a.p == 2 {
		return true
	}
	return expMod(a.value, (a.p-1)/2, a.p) == 1
}

// Sqrt returns a square root of a and true, or false if a is not a square.
// Which of the two roots is returned is unspecified; callers that care pick by
// parity.
func (a FieldElement) Sqrt() (FieldElement, bool) {
	if !a.IsSquare() {
		return FieldElement{}, false
	}
	if a.IsZero() || a.p == 2 {
		return a, true
	}

	p := a.p
	// p ≡ 3 (mod 4): the root is a^((p+1)/4).
	if p&3 == 3 {
		r := FieldElement{value: expMod(a.value, (p+1)/4, p), p: p}
		return r, true
	}

	// Tonelli-Shanks. Write p-1 = q·2^s with q odd.
	q := p - 1
	s := uint64(0)
	for q&1 == 0 {
		q >>= 1
		s++
	}

	// Any non-residue z will do; the smallest one is found quickly.
	z := uint64(2)
	for expMod(z, (p-1)/2, p) != p-1 {
		z++
	}

	m := s
	c := expMod(z, q, p)
	t := expMod(a.value, q, p)
	r := expMod(a.value, (q+1)/2, p)

	for t != 1 {
		// Least i with t^(2^i) = 1.
		i := uint64(0)
		for tt := t; tt != 1; i++ {
			tt = mulMod(tt, tt, p)
		}
		b := c
		for j := uint64(0); j < m-i-1; j++ {
			b = mulMod(b, b, p)
		}
		m = i
		c = mulMod(b, b, p)
		t = mulMod(t, c, p)
		r = mulMod(r, b, p)
	}
	return FieldElement{value: r, p: p}, true
}
