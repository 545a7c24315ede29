package mint

// RetryPolicy decides whether a failed attempt leaves the asset retryable
type RetryPolicy interface {
	ShouldAllowRetry(attemptCount, maxAttempts int, errorCode string) bool
}

// attemptCountPolicy allows retries until the attempt budget is spent. The
// error code is recorded for diagnosis but deliberately does not influence
// the decision; no failure is classified as immediately terminal.
type attemptCountPolicy struct{}

// NewAttemptCountPolicy creates the default retry policy
func NewAttemptCountPolicy() RetryPolicy {
	return &attemptCountPolicy{}
}

func (p *attemptCountPolicy) ShouldAllowRetry(attemptCount, maxAttempts int, errorCode string) bool {
	return attemptCount < maxAttempts
}
