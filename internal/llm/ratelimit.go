package llm

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/ppiankov/claimflow/internal/model"
)

// RateLimitedProvider wraps a Provider with a token-bucket rate limit so
// concurrent batch runs cannot exceed the completion service's quota
type RateLimitedProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// NewRateLimited wraps provider with a rate limiter. A zero or negative
// requestsPerSecond returns the provider unwrapped.
func NewRateLimited(provider Provider, requestsPerSecond float64, burst int) Provider {
	if provider == nil || requestsPerSecond <= 0 {
		return provider
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitedProvider{
		inner:   provider,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Name returns the wrapped provider name
func (p *RateLimitedProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable checks the wrapped provider without consuming rate budget
func (p *RateLimitedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// CompleteFields waits for rate limit clearance, then delegates.
// A cancelled context surfaces as an error, which the extractor treats the
// same as any other completion failure.
func (p *RateLimitedProvider) CompleteFields(ctx context.Context, rawText string) (*model.FieldSet, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.CompleteFields(ctx, rawText)
}
