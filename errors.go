package lazytable

import "errors"

// ErrInvalidParam is returned by New when construction arguments violate a
// precondition (for example a zero shard count).
var ErrInvalidParam = errors.New("lazytable: parameters are invalid")
