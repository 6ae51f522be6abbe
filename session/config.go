package session

import (
	"golang.org/x/time/rate"

	"github.com/shpnet/tts-scheduler/constraint"
	"github.com/shpnet/tts-scheduler/model"
)

// Algorithm selects which strategy driver Solve invokes.
type Algorithm int

const (
	// OneShotAlgorithm builds the whole model and solves once.
	OneShotAlgorithm Algorithm = iota
	// IncrementalAlgorithm grows the model FramesPerIteration frames at
	// a time.
	IncrementalAlgorithm
)

func (a Algorithm) String() string {
	if a == IncrementalAlgorithm {
		return "Incremental"
	}

	return "OneShot"
}

// config holds every value spec §9 flags as a process-wide global in
// the reference implementation, now owned exclusively by a Session.
type config struct {
	weights            constraint.Config
	algorithm          Algorithm
	framesPerIteration int
	timeLimitSeconds   float64
	mipGap             float64
	shp                model.SHP
	switchMinTime      int64
	limiter            *rate.Limiter
}

func defaultConfig() config {
	return config{
		weights:            constraint.DefaultConfig(),
		algorithm:          OneShotAlgorithm,
		framesPerIteration: 1,
		timeLimitSeconds:   0,
		mipGap:             0,
		shp:                model.SHP{},
		switchMinTime:      0,
		limiter:            nil,
	}
}

// Option configures a Session before Load.
type Option func(*config)

// WithWeights overrides the FrameDist/LinkDist objective weights.
func WithWeights(w constraint.Config) Option { return func(c *config) { c.weights = w } }

// WithAlgorithm selects the strategy driver Solve invokes.
func WithAlgorithm(a Algorithm) Option { return func(c *config) { c.algorithm = a } }

// WithFramesPerIteration sets the incremental driver's batch size K.
func WithFramesPerIteration(k int) Option {
	return func(c *config) { c.framesPerIteration = k }
}

// WithTimeLimit sets the per-solve wall-clock budget, in seconds. <= 0
// means unbounded.
func WithTimeLimit(seconds float64) Option { return func(c *config) { c.timeLimitSeconds = seconds } }

// WithMIPGap sets the acceptable relative optimality gap. 0 means
// solve to optimality.
func WithMIPGap(gap float64) Option { return func(c *config) { c.mipGap = gap } }

// WithSHP registers the Self-Healing Protocol reservation for this
// session.
func WithSHP(shp model.SHP) Option { return func(c *config) { c.shp = shp } }

// WithSwitchMinTime sets the minimum per-hop switching time added to
// path-dependency constraints.
func WithSwitchMinTime(t int64) Option { return func(c *config) { c.switchMinTime = t } }

// WithLimiter paces the incremental driver's solver invocations. nil
// (the default) leaves it unthrottled.
func WithLimiter(l *rate.Limiter) Option { return func(c *config) { c.limiter = l } }
