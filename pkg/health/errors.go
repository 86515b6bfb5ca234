package health

import "errors"

// ErrCheckTimeout is reported for a check that did not finish before the probe deadline.
var ErrCheckTimeout = errors.New("health: check timeout")
