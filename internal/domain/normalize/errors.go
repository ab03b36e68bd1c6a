package normalize

import "errors"

// Sentinel kinds for normalization errors.
var (
	ErrEmptyInput        = errors.New("dataset is empty")
	ErrMissingNameColumn = errors.New("dataset has no Player Name column")
	ErrMalformedCSV      = errors.New("malformed csv")
	ErrDuplicateName     = errors.New("duplicate player name")
	ErrUnknownPolicy     = errors.New("unknown duplicate policy")
)
