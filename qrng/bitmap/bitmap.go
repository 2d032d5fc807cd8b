// Package bitmap provides utilities for operating on densely-packed arrays of
// booleans, and for converting them to and from measurement bit-strings.
package bitmap

import (
	"math/bits"

	"github.com/pkg/errors"
)

// TODO: this could be more efficient on many architectures if we used larger
//   blocks than 8-bit bytes.
const byteSize = 8

// ErrInvalidRune is returned when parsing a bit-string containing something
// other than '0' or '1'.
var ErrInvalidRune = errors.New("invalid bit-string rune")

// Empty returns an empty, dense bit array.
func Empty() Dense {
	return Dense{}
}

// Parse converts a string of '1's and '0's to a Dense. The i-th rune of s
// becomes bit i, so the first rune is the least significant.
func Parse(s string) (Dense, error) {
	d := Dense{}
	for i, c := range s {
		switch c {
		case '1':
			d.AppendBit(true)
		case '0':
			d.AppendBit(false)
		default:
			return Dense{}, errors.Wrapf(ErrInvalidRune, "%q at offset %d of %q", c, i, s)
		}
	}
	return d, nil
}

// FromString is like Parse, but ignores spaces.
func FromString(s string) (Dense, error) {
	d := Dense{}
	for _, c := range s {
		switch c {
		case '1':
			d.AppendBit(true)
		case '0':
			d.AppendBit(false)
		case ' ':
			continue
		default:
			return Dense{}, errors.Errorf("invalid bitmap string rep: %s", s)
		}
	}
	return d, nil
}

// CountOnes returns the total number of bits set in d.
func CountOnes(d Dense) int {
	var sum int
	for i, b := range d.bits {
		if i == d.SizeBytes() {
			break
		}
		if i == d.SizeBytes()-1 && d.len%byteSize != 0 {
			b &= 0xFF >> (byteSize - d.len%byteSize)
		}
		sum += bits.OnesCount8(b)
	}
	return sum
}

// BytesFor returns the number of bytes necessary to hold the provided number of
// bits.
func BytesFor(bits int) int {
	return (bits + byteSize - 1) / byteSize
}
