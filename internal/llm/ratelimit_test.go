package llm

import (
	"context"
	"testing"
	"time"

	"github.com/ppiankov/claimflow/internal/model"
)

type stubProvider struct {
	calls  int
	fields *model.FieldSet
	err    error
}

func (s *stubProvider) Name() string                         { return "stub" }
func (s *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func (s *stubProvider) CompleteFields(ctx context.Context, rawText string) (*model.FieldSet, error) {
	s.calls++
	return s.fields, s.err
}

func TestNewRateLimited_Passthrough(t *testing.T) {
	stub := &stubProvider{fields: &model.FieldSet{}}

	if got := NewRateLimited(nil, 10, 1); got != nil {
		t.Errorf("Expected nil provider to stay nil, got %T", got)
	}
	if got := NewRateLimited(stub, 0, 1); got != Provider(stub) {
		t.Errorf("Expected zero rate to return the provider unwrapped, got %T", got)
	}
	if got := NewRateLimited(stub, -1, 1); got != Provider(stub) {
		t.Errorf("Expected negative rate to return the provider unwrapped, got %T", got)
	}
}

func TestRateLimitedProvider_EnforcesRate(t *testing.T) {
	stub := &stubProvider{fields: &model.FieldSet{}}
	limited := NewRateLimited(stub, 20, 1)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := limited.CompleteFields(context.Background(), "text"); err != nil {
			t.Fatalf("CompleteFields failed: %v", err)
		}
	}
	elapsed := time.Since(start)

	// Burst of 1 at 20 req/s means calls 2 and 3 each wait ~50ms.
	if elapsed < 80*time.Millisecond {
		t.Errorf("Expected three calls to take at least 80ms, took %v", elapsed)
	}
	if stub.calls != 3 {
		t.Errorf("Expected 3 delegated calls, got %d", stub.calls)
	}
}

func TestRateLimitedProvider_CancelledContext(t *testing.T) {
	stub := &stubProvider{fields: &model.FieldSet{}}
	limited := NewRateLimited(stub, 0.001, 1)

	// Drain the single burst token so the next call has to wait.
	if _, err := limited.CompleteFields(context.Background(), "text"); err != nil {
		t.Fatalf("CompleteFields failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := limited.CompleteFields(ctx, "text"); err == nil {
		t.Fatal("Expected error from cancelled context, got nil")
	}
	if stub.calls != 1 {
		t.Errorf("Expected cancelled call not to reach the provider, calls = %d", stub.calls)
	}
}
