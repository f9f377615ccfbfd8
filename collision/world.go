package collision

import (
	"errors"
	"fmt"

	"github.com/milk9111/satcollide/geom"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// World owns the fixed obstacle list and runs the detect/resolve pass for
// one tick.
type World struct {
	obstacles []*geom.Polygon
	detector  *Detector
	resolver  *Resolver
	logger    *zap.Logger
	tick      uint64
}

type Option func(w *World)

// WithPrimitive swaps the overlap test used by the Detector.
func WithPrimitive(p Primitive) Option {
	return func(w *World) {
		w.detector = NewDetector(p)
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWorld validates every obstacle up front; a scene with a degenerate or
// concave obstacle is rejected as a whole.
func NewWorld(obstacles []*geom.Polygon, config ConfigSource, opts ...Option) (*World, error) {
	for i, o := range obstacles {
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("collision: obstacle %d: %w", i, err)
		}
	}
	w := &World{
		obstacles: append([]*geom.Polygon(nil), obstacles...),
		detector:  NewDetector(nil),
		resolver:  NewResolver(config),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Obstacles returns the obstacle list in resolution order.
func (w *World) Obstacles() []*geom.Polygon {
	if w == nil {
		return nil
	}
	return append([]*geom.Polygon(nil), w.obstacles...)
}

// Report summarises one Step.
type Report struct {
	Tick     uint64
	Contacts int
	Resolved int
	// Skipped combines the errors of contacts that were dropped for
	// degenerate geometry.
	Skipped error
}

// SkippedErrors splits Skipped back into one error per contact.
func (r Report) SkippedErrors() []error {
	return multierr.Errors(r.Skipped)
}

// Step detects and resolves every contact of body for one tick, strictly in
// obstacle order. A contact with degenerate geometry is skipped and noted in
// the report; a contract violation stops the tick and is returned.
func (w *World) Step(body *Body, debug *DebugLog) (Report, error) {
	w.tick++
	report := Report{Tick: w.tick}
	if body == nil {
		return report, fmt.Errorf("%w: nil body", ErrDegenerateGeometry)
	}
	body.Sync()

	for c := range w.detector.Detect(body.Polygon(), w.obstacles) {
		report.Contacts++
		err := w.resolver.Resolve(body, c, debug)
		switch {
		case err == nil:
			report.Resolved++
		case errors.Is(err, ErrContractViolation):
			w.logger.Error("collision: contract violation",
				zap.Uint64("tick", w.tick),
				zap.Int("obstacle", c.Index),
				zap.Float64("normal_x", c.Event.OverlapN.X),
				zap.Float64("normal_y", c.Event.OverlapN.Y),
				zap.Error(err),
			)
			return report, err
		default:
			w.logger.Warn("collision: skipped contact",
				zap.Uint64("tick", w.tick),
				zap.Int("obstacle", c.Index),
				zap.Error(err),
			)
			report.Skipped = multierr.Append(report.Skipped, err)
		}
	}
	return report, nil
}
