package frame

import "errors"

// ErrLevelRange reports a column level outside the 4-bit range.
var ErrLevelRange = errors.New("column level exceeds 4-bit range")
