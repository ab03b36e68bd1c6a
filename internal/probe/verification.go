package probe

import (
	"fmt"

	"github.com/okian/vnl/internal/domain/projection"
)

// verifyProjection checks that the explorer plotted the same players, in the
// same order and at the same coordinates, as the local computation.
func verifyProjection(local []projection.Point, remote projectionResult) error {
	if remote.Count != len(local) || len(remote.Points) != len(local) {
		return fmt.Errorf("%w: %d points, expected %d", ErrMismatch, len(remote.Points), len(local))
	}
	for i, p := range local {
		r := remote.Points[i]
		if r.Name != p.Record.Name {
			return fmt.Errorf("%w: point %d is %q, expected %q", ErrMismatch, i, r.Name, p.Record.Name)
		}
		if r.X != p.X || r.Y != p.Y {
			return fmt.Errorf("%w: %q at (%v, %v), expected (%v, %v)", ErrMismatch, r.Name, r.X, r.Y, p.X, p.Y)
		}
	}
	return nil
}
