// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"fmt"
	"sync"
	"testing"
)

func TestIPRateLimiter_BurstThenDeny(t *testing.T) {
	rl := NewIPRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d within burst denied", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request beyond burst allowed")
	}
}

func TestIPRateLimiter_PerIPIsolation(t *testing.T) {
	rl := NewIPRateLimiter(1, 1)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first IP denied")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("first IP not limited after burst")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("second IP affected by first IP's limit")
	}
}

func TestLimiterCache_ReusesLimiter(t *testing.T) {
	lc := newLimiterCache[string](1, 1)

	a := lc.get("key")
	b := lc.get("key")
	if a != b {
		t.Error("same key returned different limiters")
	}
}

func TestLimiterCache_ClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	for i := 0; i < 5; i++ {
		lc.get(fmt.Sprintf("ip-%d", i))
	}

	if lc.clearIfExceeds(10) {
		t.Error("cache cleared below the cap")
	}
	if !lc.clearIfExceeds(4) {
		t.Error("cache not cleared above the cap")
	}
	if len(lc.limiters) != 0 {
		t.Errorf("limiters = %d after clear, want 0", len(lc.limiters))
	}
}

func TestLimiterCache_ConcurrentAccess(t *testing.T) {
	lc := newLimiterCache[string](100, 100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				lc.get(fmt.Sprintf("ip-%d", j%7)).Allow()
			}
		}(i)
	}
	wg.Wait()

	if len(lc.limiters) != 7 {
		t.Errorf("limiters = %d, want 7", len(lc.limiters))
	}
}
