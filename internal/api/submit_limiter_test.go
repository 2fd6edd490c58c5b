package api

import (
	"testing"
	"time"
)

func TestSubmitLimiterBlocksBurstPerClient(t *testing.T) {
	limiter := newSubmitLimiter(2)
	now := time.Date(2024, time.February, 10, 9, 0, 0, 0, time.UTC)

	if !limiter.allow("10.0.0.1", now) || !limiter.allow("10.0.0.1", now) {
		t.Fatal("expected burst of two to be allowed")
	}
	if limiter.allow("10.0.0.1", now) {
		t.Fatal("expected third submission to be blocked")
	}
	if !limiter.allow("10.0.0.2", now) {
		t.Fatal("expected another client to have its own bucket")
	}
}

func TestSubmitLimiterEvictsIdleClients(t *testing.T) {
	limiter := newSubmitLimiter(1)
	start := time.Date(2024, time.February, 10, 9, 0, 0, 0, time.UTC)

	for index, key := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		limiter.allow(key, start.Add(time.Duration(index)*time.Second))
	}
	if len(limiter.buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(limiter.buckets))
	}

	later := start.Add(submitLimiterIdleTTL + time.Minute)
	if !limiter.allow("10.0.0.4", later) {
		t.Fatal("expected new client to be allowed")
	}
	if len(limiter.buckets) != 1 {
		t.Fatalf("expected idle buckets to be evicted, got %d", len(limiter.buckets))
	}
	if !limiter.allow("10.0.0.1", later) {
		t.Fatal("expected evicted client to start with a full bucket")
	}
}

func TestSubmitLimiterDisabledWithZeroRate(t *testing.T) {
	limiter := newSubmitLimiter(0)
	now := time.Date(2024, time.February, 10, 9, 0, 0, 0, time.UTC)
	for range 5 {
		if !limiter.allow("10.0.0.1", now) {
			t.Fatal("expected disabled limiter to allow every submission")
		}
	}
	if len(limiter.buckets) != 0 {
		t.Fatalf("expected no buckets for a disabled limiter, got %d", len(limiter.buckets))
	}
}
