package algebra

import "errors"

// ErrDecode is returned when a byte encoding is not the canonical
// representation of a Scalar or Point: wrong length, or an integer value
// outside [0, order).
var ErrDecode = errors.New("algebra: invalid canonical encoding")
