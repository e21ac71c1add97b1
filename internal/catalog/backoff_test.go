package catalog

import (
	"testing"
	"time"
)

func TestBackoff_DoublesWithoutRetryAfter(t *testing.T) {
	b := newBackoff(5, time.Second)

	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second}
	for i, w := range want {
		d, ok := b.Delay(0)
		if !ok {
			t.Fatalf("attempt %d: ceiling hit early", i+1)
		}
		if d != w {
			t.Errorf("attempt %d: delay = %v, want %v", i+1, d, w)
		}
	}

	if _, ok := b.Delay(0); ok {
		t.Error("expected ceiling after max attempts")
	}
}

func TestBackoff_RetryAfterTakesPrecedence(t *testing.T) {
	b := newBackoff(3, time.Second)

	d, ok := b.Delay(7 * time.Second)
	if !ok || d != 7*time.Second {
		t.Fatalf("Delay = %v, %v; want 7s, true", d, ok)
	}

	// Fallback does not shrink below an advertised wait already honored.
	d, ok = b.Delay(0)
	if !ok || d != 7*time.Second {
		t.Errorf("Delay = %v, %v; want 7s, true", d, ok)
	}
}

func TestBackoff_CeilingCountsAllAttempts(t *testing.T) {
	b := newBackoff(2, time.Second)

	if _, ok := b.Delay(3 * time.Second); !ok {
		t.Fatal("attempt 1 should be allowed")
	}
	if _, ok := b.Delay(0); !ok {
		t.Fatal("attempt 2 should be allowed")
	}
	if _, ok := b.Delay(5 * time.Second); ok {
		t.Error("attempt 3 should exceed the ceiling even with retry-after")
	}
}
