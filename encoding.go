package weierstrass

import (
	"encoding/binary"
	"errors"
)

// ErrInvalidEncoding is returned by Decompress for malformed input.
var ErrInvalidEncoding = errors.New("invalid point encoding")

const (
	tagInfinity = 0x00
	tagEven     = 0x02
	tagOdd      = 0x03

	// CompressedSize is the length of the encoding of a finite point.
	CompressedSize = 9
)

// Compress encodes p as a single 0x00 byte for infinity, or as a parity tag
// (0x02 even y, 0x03 odd y) followed by x as 8 big-endian bytes.
func (c *Curve) Compress(p AffinePoint) []byte {
	if p.IsInfinity() {
		return []byte{tagInfinity}
	}
	buf := make([]byte, CompressedSize)
	buf[0] = tagEven
	if p.y.IsOdd() {
		buf[0] = tagOdd
	}
	binary.BigEndian.PutUint64(buf[1:], p.x.Uint64())
	return buf
}

// Decompress parses the output of Compress. The x coordinate must be a
// canonical residue and must lie on the curve.
func (c *Curve) Decompress(b []byte) (AffinePoint, error) {
	if len(b) == 1 && b[0] == tagInfinity {
		return AffinePoint{}, nil
	}
	if len(b) != CompressedSize || (b[0] != tagEven && b[0] != tagOdd) {
		return AffinePoint{}, ErrInvalidEncoding
	}

	xv := binary.BigEndian.Uint64(b[1:])
	if xv >= c.field.p {
		return AffinePoint{}, ErrInvalidEncoding
	}
	odd := b[0] == tagOdd
	p, ok := c.LiftX(c.field.NewElementUint64(xv), odd)
	// y = 0 has no odd root.
	if !ok || p.y.IsOdd() != odd {
		return AffinePoint{}, ErrInvalidEncoding
	}
	return p, nil
}
