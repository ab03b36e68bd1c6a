package probe

import "errors"

// Sentinel kinds for probe failures.
var (
	ErrUnhealthy  = errors.New("explorer is not healthy")
	ErrLoadFailed = errors.New("explorer failed to load its dataset")
	ErrMismatch   = errors.New("explorer disagrees with the local dataset")
	ErrStatus     = errors.New("unexpected HTTP status")
)

func isMismatch(err error) bool { return errors.Is(err, ErrMismatch) }
