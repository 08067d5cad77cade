package ringtarget

import "fmt"

// Code is a ring pattern read as a cyclic bit string. The least significant
// bit is the first position; segment 0 of a drawn ring is the most
// significant bit.
type Code uint32

// mask returns the all-ones value for a bits-wide field.
func mask(bits int) uint64 {
	return 1<<uint(bits) - 1
}

// RotateLeft rotates value left by shift positions inside a bits-wide field.
// A shift of 0 returns the value unchanged.
func RotateLeft(value Code, shift, bits int) (Code, error) {
	if err := ValidateBits(bits); err != nil {
		return 0, err
	}
	if shift < 0 || shift >= bits {
		return 0, fmt.Errorf("%w: shift %d for %d bits", ErrInvalidRotationShift, shift, bits)
	}
	return rotl(value, shift, bits), nil
}

// rotl is RotateLeft without argument checks. Callers guarantee
// 0 <= shift < bits <= MaxBits.
func rotl(value Code, shift, bits int) Code {
	m := mask(bits)
	v := uint64(value) & m
	return Code((v<<uint(shift))&m | v>>uint(bits-shift))
}

// CanonicalRotation returns the smallest of the bits cyclic rotations of
// value. Every rotation of a pattern maps to the same canonical code.
func CanonicalRotation(value Code, bits int) Code {
	smallest := value
	for shift := 1; shift < bits; shift++ {
		if r := rotl(value, shift, bits); r < smallest {
			smallest = r
		}
	}
	return smallest
}
