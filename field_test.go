package weierstrass

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mersenne61 is 2^61 - 1, the largest prime used in these tests.
const mersenne61 = 1<<61 - 1

func mustField(t testing.TB, p uint64) Field {
	t.Helper()
	f, err := NewField(p)
	require.NoError(t, err)
	return f
}

func TestNewField(t *testing.T) {
	testCases := []struct {
		name string
		p    uint64
		err  error
	}{
		{name: "small_prime", p: 17},
		{name: "drill_prime", p: 211},
		{name: "mersenne61", p: mersenne61},
		{name: "zero", p: 0, err: ErrNotPrime},
		{name: "one", p: 1, err: ErrNotPrime},
		{name: "composite", p: 221, err: ErrNotPrime},
		{name: "carmichael", p: 561, err: ErrNotPrime},
		{name: "too_large", p: 1 << 63, err: ErrModulusTooLarge},
		{name: "max_uint64", p: math.MaxUint64, err: ErrModulusTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewField(tc.p)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.p, f.Modulus())
		})
	}
}

func TestFieldElementNew(t *testing.T) {
	f := mustField(t, 17)

	testCases := []struct {
		in   int64
		want uint64
	}{
		{0, 0},
		{5, 5},
		{16, 16},
		{17, 0},
		{34, 0},
		{-1, 16},
		{-17, 0},
		{-35, 16},
		{math.MaxInt64, uint64(math.MaxInt64 % 17)},
		{math.MinInt64, uint64(math.MinInt64%17 + 17)},
	}

	for _, tc := range testCases {
		got := f.NewElement(tc.in)
		assert.Equal(t, tc.want, got.Uint64(), "NewElement(%d)", tc.in)
		assert.Less(t, got.Uint64(), uint64(17))
	}

	assert.Equal(t, uint64(3), f.NewElementUint64(37).Uint64())
	assert.Equal(t, uint64(math.MaxUint64%17), f.NewElementUint64(math.MaxUint64).Uint64())
}

func TestFieldElementArithmetic(t *testing.T) {
	f := mustField(t, 17)
	a := f.NewElement(5)
	b := f.NewElement(15)

	assert.Equal(t, uint64(3), a.Add(b).Uint64())
	assert.Equal(t, uint64(7), a.Sub(b).Uint64())
	assert.Equal(t, uint64(10), b.Sub(a).Uint64())
	assert.Equal(t, uint64(7), a.Mul(b).Uint64())
	assert.Equal(t, uint64(12), a.Neg().Uint64())
	assert.Equal(t, uint64(8), a.Square().Uint64())
	assert.Equal(t, uint64(6), a.Exp(3).Uint64())
	assert.Equal(t, uint64(1), a.Exp(0).Uint64())
	assert.Equal(t, uint64(2), a.MulInt(-3).Uint64())
	assert.True(t, f.Zero().Neg().IsZero())

	// Operations never mutate their receiver.
	assert.Equal(t, uint64(5), a.Uint64())
	assert.Equal(t, "5", a.String())
}

func TestFieldElementInverse(t *testing.T) {
	for _, p := range []uint64{17, 211, mersenne61} {
		f := mustField(t, p)
		for _, v := range []int64{1, 2, 3, 7, 16, -1, -2, 1234567} {
			a := f.NewElement(v)
			if a.IsZero() {
				continue
			}
			inv, err := a.Inverse()
			require.NoError(t, err)
			assert.Equal(t, f.One(), a.Mul(inv), "p=%d a=%d", p, v)
		}

		_, err := f.Zero().Inverse()
		require.ErrorIs(t, err, ErrNotInvertible)
	}
}

func TestFieldElementDiv(t *testing.T) {
	f := mustField(t, 17)

	q, err := f.NewElement(3).Div(f.NewElement(2))
	require.NoError(t, err)
	assert.Equal(t, uint64(10), q.Uint64())
	assert.Equal(t, f.NewElement(3), q.Mul(f.NewElement(2)))

	_, err = f.One().Div(f.Zero())
	require.ErrorIs(t, err, ErrNotInvertible)
}

func TestFieldLaws(t *testing.T) {
	const p = 17
	f := mustField(t, p)
	zero, one := f.Zero(), f.One()

	for i := int64(0); i < p; i++ {
		a := f.NewElement(i)
		assert.Equal(t, a, a.Add(zero))
		assert.Equal(t, a, a.Mul(one))
		assert.True(t, a.Sub(a).IsZero())
		assert.True(t, a.Add(a.Neg()).IsZero())
		if !a.IsZero() {
			inv, err := a.Inverse()
			require.NoError(t, err)
			assert.Equal(t, one, a.Mul(inv))
		}

		for j := int64(0); j < p; j++ {
			b := f.NewElement(j)
			assert.Equal(t, a.Add(b), b.Add(a))
			assert.Equal(t, a.Mul(b), b.Mul(a))

			for k := int64(0); k < p; k++ {
				c := f.NewElement(k)
				assert.Equal(t, a.Add(b).Add(c), a.Add(b.Add(c)))
				assert.Equal(t, a.Mul(b).Mul(c), a.Mul(b.Mul(c)))
				assert.Equal(t, a.Mul(b.Add(c)), a.Mul(b).Add(a.Mul(c)))
			}
		}
	}
}

func TestFieldLargeModulus(t *testing.T) {
	f := mustField(t, mersenne61)
	minusOne := f.NewElement(-1)

	// Products of residues near p need the full 128-bit intermediate.
	assert.Equal(t, f.One(), minusOne.Mul(minusOne))
	assert.Equal(t, uint64(mersenne61-2), minusOne.Add(minusOne).Uint64())
	assert.Equal(t, f.One(), minusOne.Exp(mersenne61-1))

	big := f.NewElement(1 << 60)
	// 2^60 * 2 = 2^61 ≡ 1
	assert.Equal(t, f.One(), big.MulInt(2))
}

func TestFieldElementSqrt(t *testing.T) {
	// 17 and 97 take the Tonelli-Shanks path, 211 the p ≡ 3 (mod 4) path.
	for _, p := range []uint64{17, 97, 211} {
		f := mustField(t, p)
		squares := 0
		for v := int64(0); v < int64(p); v++ {
			a := f.NewElement(v)
			r, ok := a.Sqrt()
			assert.Equal(t, a.IsSquare(), ok)
			if !ok {
				continue
			}
			squares++
			assert.Equal(t, a, r.Square(), "p=%d a=%d", p, v)
		}
		assert.Equal(t, int(p+1)/2, squares, "p=%d", p)
	}

	f := mustField(t, mersenne61)
	a := f.NewElement(123456789)
	r, ok := a.Square().Sqrt()
	require.True(t, ok)
	assert.True(t, r == a || r == a.Neg())
}

func TestBatchInverse(t *testing.T) {
	f := mustField(t, 211)

	in := []FieldElement{f.NewElement(3), f.NewElement(-1), f.NewElement(100), f.One()}
	out, err := BatchInverse(in)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		want, err := in[i].Inverse()
		require.NoError(t, err)
		assert.Equal(t, want, out[i])
	}

	out, err = BatchInverse(nil)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = BatchInverse([]FieldElement{f.One(), f.Zero()})
	require.ErrorIs(t, err, ErrNotInvertible)
}

func TestFieldElementMixedModuli(t *testing.T) {
	a := mustField(t, 17).One()
	b := mustField(t, 211).One()

	assert.Panics(t, func() { a.Add(b) })
	assert.Panics(t, func() { a.Mul(b) })
	assert.False(t, a.Equal(b))
}
