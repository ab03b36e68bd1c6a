package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrLoad      = errors.New("dataset load failed")
	ErrNotLoaded = errors.New("dataset not loaded")
	ErrNotFound  = errors.New("player not found")
)
