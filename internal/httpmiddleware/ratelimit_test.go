package httpmiddleware

import (
	"context"
	"testing"
)

func TestRateLimiterLocalWindow(t *testing.T) {
	l := NewRateLimiter(nil, 3)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if !l.allow(ctx, "10.0.0.1") {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	if l.allow(ctx, "10.0.0.1") {
		t.Fatal("fourth request should be limited")
	}
	if !l.allow(ctx, "10.0.0.2") {
		t.Fatal("limits must be per IP")
	}
}

func TestRateLimiterDefaultsPerMinute(t *testing.T) {
	l := NewRateLimiter(nil, 0)
	if l.perMin != 60 {
		t.Fatalf("expected default 60, got %d", l.perMin)
	}
}
