package resilience

import "time"

// Policy bounds how aggressively the executor re-drives a collaborator.
type Policy struct {
	// Attempts is the total number of tries per Execute call. 1 disables
	// retries entirely.
	Attempts   int
	Backoff    time.Duration
	MaxBackoff time.Duration

	BreakerEnabled      bool
	BreakerMinRequests  uint32
	BreakerFailureRatio float64
	BreakerCooldown     time.Duration
	BreakerProbeCalls   uint32
}

// RecognitionPolicy guards text-recognition engines: no retries, since a
// failed extraction reports upward immediately, plus a breaker that sheds
// calls once the engine looks down.
func RecognitionPolicy() Policy {
	return Policy{
		Attempts:   1,
		Backoff:    100 * time.Millisecond,
		MaxBackoff: 400 * time.Millisecond,

		BreakerEnabled:      true,
		BreakerMinRequests:  5,
		BreakerFailureRatio: 0.6,
		BreakerCooldown:     30 * time.Second,
		BreakerProbeCalls:   1,
	}
}

func (p Policy) normalize() Policy {
	out := p
	def := RecognitionPolicy()

	if out.Attempts <= 0 {
		out.Attempts = 1
	}
	if out.Backoff <= 0 {
		out.Backoff = def.Backoff
	}
	if out.MaxBackoff < out.Backoff {
		out.MaxBackoff = out.Backoff
	}
	if out.BreakerMinRequests == 0 {
		out.BreakerMinRequests = def.BreakerMinRequests
	}
	if out.BreakerFailureRatio <= 0 || out.BreakerFailureRatio > 1 {
		out.BreakerFailureRatio = def.BreakerFailureRatio
	}
	if out.BreakerCooldown <= 0 {
		out.BreakerCooldown = def.BreakerCooldown
	}
	if out.BreakerProbeCalls == 0 {
		out.BreakerProbeCalls = def.BreakerProbeCalls
	}
	return out
}
