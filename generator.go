package ringtarget

import "fmt"

// GenerateOption narrows the set of codes returned by Generate.
//
// Example:
//
//	// First three 8-bit codes with exactly two rising edges
//	codes, err := ringtarget.Generate(8, ringtarget.WithTransitions(2), ringtarget.WithMaxCodes(3))
type GenerateOption func(*generateOptions)

type generateOptions struct {
	transitions    int
	hasTransitions bool
	maxCodes       int
	hasMax         bool
}

// WithTransitions keeps only codes with exactly n rising (0->1) edges.
func WithTransitions(n int) GenerateOption {
	return func(o *generateOptions) {
		o.transitions = n
		o.hasTransitions = true
	}
}

// WithMaxCodes stops the search once n codes have been found. The result is
// the first n codes in search order, not the n smallest.
func WithMaxCodes(n int) GenerateOption {
	return func(o *generateOptions) {
		o.maxCodes = n
		o.hasMax = true
	}
}

// Generate returns the rotation-canonical codes of the given width that have
// even parity and at least one pair of opposite filled segments.
//
// Candidates are the words with bit 0 set and the top bit clear, visited in
// increasing order. Each is reduced to its canonical rotation; codes are
// returned in the order they are first found.
func Generate(bits int, opts ...GenerateOption) ([]Code, error) {
	if err := ValidateBits(bits); err != nil {
		return nil, err
	}
	var o generateOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.hasTransitions && o.transitions < 0 {
		return nil, fmt.Errorf("%w: transitions %d", ErrInvalidOption, o.transitions)
	}
	if o.hasMax && o.maxCodes < 0 {
		return nil, fmt.Errorf("%w: max codes %d", ErrInvalidOption, o.maxCodes)
	}

	codes := []Code{}
	if o.hasMax && o.maxCodes == 0 {
		return codes, nil
	}
	seen := make(map[Code]struct{})

	limit := uint64(1) << uint(bits-2)
	var scanned uint64
	for i := uint64(0); i < limit; i++ {
		scanned++
		code := CanonicalRotation(Code(i<<1|1), bits)

		if !Parity(code) || !HasOppositePair(code, bits) {
			continue
		}
		if o.hasTransitions && RisingTransitions(code) != o.transitions {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)

		if o.hasMax && len(codes) >= o.maxCodes {
			break
		}
	}

	Logger().Debug("ringtarget: codes generated",
		"bits", bits,
		"scanned", scanned,
		"candidates", limit,
		"accepted", len(codes))
	return codes, nil
}
