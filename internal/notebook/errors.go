package notebook

import "errors"

// Sentinel errors for notebook parsing.
var (
	ErrParse   = errors.New("invalid notebook")
	ErrNoCells = errors.New("notebook has no cells field")
)
