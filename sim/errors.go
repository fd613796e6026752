package sim

import "github.com/pkg/errors"

var (
	// ErrInvalidAction is returned by Step for an action outside {0..N-1} ∪ {NoOp}.
	ErrInvalidAction = errors.New("invalid action")
	// ErrNotReset is returned by Step when Reset has never been called.
	ErrNotReset = errors.New("step called before reset")
	// ErrInvalidConfig wraps every EnvConfig validation failure.
	ErrInvalidConfig = errors.New("invalid env config")
)
