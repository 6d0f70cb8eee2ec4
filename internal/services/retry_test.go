package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"reclip/internal/services"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	attempts := 0
	policy := services.RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}
	err := services.Retry(context.Background(), policy, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry returned %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestRetryExhaustsBudget(t *testing.T) {
	want := services.Wrap(services.ErrAcquisition, "acquire", "download", "boom", nil)
	attempts := 0
	policy := services.RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}
	err := services.Retry(context.Background(), policy, func() error {
		attempts++
		return want
	})
	if !errors.Is(err, services.ErrAcquisition) {
		t.Fatalf("expected marker to survive, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("attempts = %d, want 2", attempts)
	}
}

func TestRetryHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := services.Retry(ctx, services.DefaultRetryPolicy(), func() error {
		t.Fatal("fn should not run after cancellation")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
