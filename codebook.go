package ringtarget

import "fmt"

type rotation struct {
	code  Code
	shift int
}

// Codebook maps any rotation of an issued code back to that code.
type Codebook struct {
	bits      int
	codes     []Code
	rotations map[Code]rotation // observed pattern → issued code + shift
}

// NewCodebook indexes every rotation of codes. Two codes that are rotations
// of each other cannot share a codebook.
func NewCodebook(bits int, codes []Code) (*Codebook, error) {
	if err := ValidateBits(bits); err != nil {
		return nil, err
	}
	cb := &Codebook{
		bits:      bits,
		codes:     append([]Code(nil), codes...),
		rotations: make(map[Code]rotation, len(codes)*bits),
	}
	m := Code(mask(bits))
	for _, c := range codes {
		if c&^m != 0 {
			return nil, fmt.Errorf("%w: code %d wider than %d bits", ErrInvalidConfig, c, bits)
		}
		for s := 0; s < bits; s++ {
			r := rotl(c, s, bits)
			prev, exists := cb.rotations[r]
			if !exists {
				cb.rotations[r] = rotation{code: c, shift: s}
				continue
			}
			if prev.code != c {
				return nil, fmt.Errorf("%w: codes %d and %d are rotations of each other",
					ErrInvalidConfig, prev.code, c)
			}
		}
	}
	return cb, nil
}

// Lookup returns the issued code whose left rotation by shift equals
// observed. Symmetric codes report their smallest such shift.
func (cb *Codebook) Lookup(observed Code) (Code, int, error) {
	r, ok := cb.rotations[observed]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %0*b", ErrUnknownCode, cb.bits, observed)
	}
	return r.code, r.shift, nil
}

// Contains reports whether code was issued as-is.
func (cb *Codebook) Contains(code Code) bool {
	r, ok := cb.rotations[code]
	return ok && r.code == code
}

// Bits returns the ring width of the codebook.
func (cb *Codebook) Bits() int { return cb.bits }

// Len returns the number of issued codes.
func (cb *Codebook) Len() int { return len(cb.codes) }

// Codes returns the issued codes in issue order.
func (cb *Codebook) Codes() []Code {
	return append([]Code(nil), cb.codes...)
}
