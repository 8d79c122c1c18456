package weierstrass

import (
	"encoding/binary"
	"errors"

	sha256simd "github.com/minio/sha256-simd"
)

// ErrHashToPoint is returned when no counter value yields a point on the curve.
var ErrHashToPoint = errors.New("hash did not map to a curve point")

// maxHashToPointTries bounds the try-and-increment loop. The counter is a
// single byte.
const maxHashToPointTries = 256

// TaggedHash computes SHA256(SHA256(tag) || SHA256(tag) || data), the BIP-340
// domain-separated hash.
func TaggedHash(tag []byte, data []byte) [32]byte {
	tagHash := sha256simd.Sum256(tag)

	h := sha256simd.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	h.Write(data)

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// HashToField maps msg to a field element by reducing the first eight bytes of
// its tagged hash. The result is biased for moduli that are not close to a
// power of two.
func (c *Curve) HashToField(tag, msg []byte) FieldElement {
	digest := TaggedHash(tag, msg)
	return c.field.NewElementUint64(binary.BigEndian.Uint64(digest[:8]))
}

// HashToPoint deterministically maps msg to a finite point on the curve by
// try-and-increment: a counter byte is appended to msg until the hashed x
// coordinate lifts. The parity of y is taken from the last digest byte.
func (c *Curve) HashToPoint(tag, msg []byte) (AffinePoint, error) {
	buf := make([]byte, len(msg)+1)
	copy(buf, msg)

	for ctr := 0; ctr < maxHashToPointTries; ctr++ {
		buf[len(msg)] = byte(ctr)
		digest := TaggedHash(tag, buf)

		x := c.field.NewElementUint64(binary.BigEndian.Uint64(digest[:8]))
		odd := digest[31]&1 == 1
		if p, ok := c.LiftX(x, odd); ok {
			return p, nil
		}
	}
	return AffinePoint{}, ErrHashToPoint
}
