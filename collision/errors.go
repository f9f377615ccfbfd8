package collision

import (
	"errors"
	"fmt"

	"github.com/milk9111/satcollide/geom"
)

var (
	// ErrDegenerateGeometry rejects a single event whose body or obstacle
	// polygon cannot be resolved against. The rest of the tick continues.
	ErrDegenerateGeometry = fmt.Errorf("collision: %w", geom.ErrDegenerateGeometry)
	// ErrContractViolation means the overlap test handed back an unusable
	// normal or vector. The tick is aborted.
	ErrContractViolation = errors.New("collision: detector contract violation")
	// ErrConfigOutOfRange flags coefficients outside their documented range.
	// It is never fatal; the values are still used as given.
	ErrConfigOutOfRange = errors.New("collision: config out of range")
)

// EventError ties a resolution failure to the obstacle that produced it.
type EventError struct {
	Obstacle int
	Err      error
}

func (e *EventError) Error() string {
	return fmt.Sprintf("collision: obstacle %d: %v", e.Obstacle, e.Err)
}

func (e *EventError) Unwrap() error {
	return e.Err
}
