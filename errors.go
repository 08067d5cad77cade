package ringtarget

import "errors"

var (
	ErrInvalidBitWidth      = errors.New("ringtarget: bit width must be even and between 2 and 32")
	ErrInvalidRotationShift = errors.New("ringtarget: rotation shift out of range")
	ErrInvalidOption        = errors.New("ringtarget: invalid generator option")
	ErrInvalidConfig        = errors.New("ringtarget: invalid config")
	ErrUnknownCode          = errors.New("ringtarget: pattern matches no issued code")
	ErrMagickNotFound       = errors.New("ringtarget: ImageMagick is not installed or not in PATH")
)
