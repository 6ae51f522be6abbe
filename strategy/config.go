package strategy

import "golang.org/x/time/rate"

// Config holds the solver invocation parameters spec §4.3's "Solver
// parameters" names, plus the incremental batch size and an optional
// pacing limiter.
type Config struct {
	// TimeLimitSeconds bounds each Optimize call; in Incremental this
	// applies per iteration. <= 0 means unbounded.
	TimeLimitSeconds float64

	// MipGap is the solver's optimality gap; 0 means solve to
	// optimality.
	MipGap float64

	// K is the incremental batch size: frames introduced per
	// iteration. Ignored by OneShot.
	K int

	// Limiter, when non-nil, is waited on before every Incremental
	// iteration's Optimize call — carefully paced incremental solving,
	// so a large instance does not hammer the backend iteration after
	// iteration with no breathing room for other work sharing it.
	Limiter *rate.Limiter
}

// DefaultConfig returns solve-to-optimality, unbounded time, K=1, no
// pacing.
func DefaultConfig() Config {
	return Config{TimeLimitSeconds: 0, MipGap: 0, K: 1}
}
