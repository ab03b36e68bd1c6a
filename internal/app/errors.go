package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotReady   = errors.New("dataset is still loading")
	ErrLoadFailed = errors.New("dataset failed to load")
	ErrNoSource   = errors.New("no dataset source configured")
)
