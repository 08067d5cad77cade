package ringtarget

import "fmt"

// ValidateBits reports whether bits is a usable ring width.
func ValidateBits(bits int) error {
	if bits < MinBits || bits > MaxBits || bits%2 != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBitWidth, bits)
	}
	return nil
}

// Parity reports whether v has an even number of set bits.
func Parity(v Code) bool {
	even := true
	for v != 0 {
		even = !even
		v &= v - 1
	}
	return even
}

// RisingTransitions counts 0->1 edges scanning from the least significant
// bit upwards, with an implicit 0 below bit 0. Falling edges are not counted.
func RisingTransitions(v Code) int {
	n := 0
	var prev Code
	for v != 0 {
		bit := v & 1
		if bit > prev {
			n++
		}
		prev = bit
		v >>= 1
	}
	return n
}

// HasOppositePair reports whether some segment and the segment diametrically
// opposite it are both set. bits must be even.
func HasOppositePair(v Code, bits int) bool {
	half := bits / 2
	m := mask(half)
	low := uint64(v) & m
	high := (uint64(v) >> uint(half)) & m
	return low&high != 0
}
