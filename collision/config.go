package collision

import (
	"fmt"
	"math"
	"sync/atomic"

	"go.uber.org/multierr"
)

// Config holds the coefficients read by the Resolver on every call.
//
// Values outside the documented ranges are not clamped. Validate reports
// them and the Resolver applies them verbatim:
//   - BounceCoefficient < 0 pushes the normal component further along its
//     current direction instead of reflecting it.
//   - FrictionCoefficient < 0 speeds up sliding; > 1 reverses it.
type Config struct {
	// BounceCoefficient scales the reflected normal velocity. 0 absorbs it,
	// 1 is an elastic rebound, above 1 amplifies.
	BounceCoefficient float64 `yaml:"bounce_coefficient"`
	// FrictionCoefficient is the share of tangential velocity removed on
	// contact, 0 to 1.
	FrictionCoefficient float64 `yaml:"friction_coefficient"`
	// ApproachingOnly leaves velocity untouched for contacts the body is
	// already moving away from. Position is corrected either way.
	ApproachingOnly bool `yaml:"approaching_only"`
	// StopSliding zeroes a post-friction tangential velocity shorter than
	// SlideThreshold.
	StopSliding    bool    `yaml:"stop_sliding"`
	SlideThreshold float64 `yaml:"slide_threshold"`
	// Debug asks callers to collect a DebugLog. The Resolver itself only
	// looks at whether a log was passed.
	Debug bool `yaml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		BounceCoefficient:   0.2,
		FrictionCoefficient: 0.01,
		SlideThreshold:      5,
	}
}

// Validate returns every out-of-range field combined into one error, each
// wrapping ErrConfigOutOfRange.
func (c Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrConfigOutOfRange, fmt.Sprintf(format, args...)))
		}
	}

	check(!math.IsNaN(c.BounceCoefficient) && !math.IsInf(c.BounceCoefficient, 0), "bounce coefficient %v is not finite", c.BounceCoefficient)
	check(!(c.BounceCoefficient < 0), "bounce coefficient %v < 0", c.BounceCoefficient)
	check(!math.IsNaN(c.FrictionCoefficient) && !math.IsInf(c.FrictionCoefficient, 0), "friction coefficient %v is not finite", c.FrictionCoefficient)
	check(!(c.FrictionCoefficient < 0 || c.FrictionCoefficient > 1), "friction coefficient %v outside [0,1]", c.FrictionCoefficient)
	check(!(c.SlideThreshold < 0) && !math.IsNaN(c.SlideThreshold), "slide threshold %v < 0", c.SlideThreshold)
	return err
}

// ConfigSource hands the Resolver the configuration in force right now.
type ConfigSource interface {
	Load() Config
}

// LiveConfig is a ConfigSource that can be replaced at runtime, for example
// by a key toggle or a file reload, and is safe to swap from another
// goroutine.
type LiveConfig struct {
	cur atomic.Pointer[Config]
}

func NewLiveConfig(c Config) *LiveConfig {
	l := &LiveConfig{}
	l.Store(c)
	return l
}

func (l *LiveConfig) Load() Config {
	if l == nil {
		return DefaultConfig()
	}
	c := l.cur.Load()
	if c == nil {
		return DefaultConfig()
	}
	return *c
}

func (l *LiveConfig) Store(c Config) {
	l.cur.Store(&c)
}

// Update applies fn to a copy of the current config and stores the result.
func (l *LiveConfig) Update(fn func(c *Config)) Config {
	for {
		old := l.cur.Load()
		next := DefaultConfig()
		if old != nil {
			next = *old
		}
		fn(&next)
		if l.cur.CompareAndSwap(old, &next) {
			return next
		}
	}
}
