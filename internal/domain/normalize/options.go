package normalize

import (
	"fmt"
	"strings"
)

// DuplicatePolicy decides what happens when a player name appears twice.
type DuplicatePolicy string

// Supported duplicate policies.
const (
	KeepFirst DuplicatePolicy = "keep_first"
	KeepLast  DuplicatePolicy = "keep_last"
	Reject    DuplicatePolicy = "reject"
)

// ParseDuplicatePolicy accepts keep_first, keep_last or reject (case-insensitive).
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case KeepFirst, KeepLast, Reject:
		return p, nil
	case "":
		return KeepFirst, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithDuplicatePolicy sets the duplicate-name policy. Unknown values are ignored.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(n *Normalizer) {
		if parsed, err := ParseDuplicatePolicy(string(p)); err == nil {
			n.policy = parsed
		}
	}
}

// WithCaseInsensitiveNames treats names differing only in letter case as
// duplicates of each other.
func WithCaseInsensitiveNames(enabled bool) Option {
	return func(n *Normalizer) {
		n.foldNames = enabled
	}
}
