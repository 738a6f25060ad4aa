package safety_test

import (
	"testing"

	"github.com/virtgraph/vgcore/internal/safety"
)

func TestDefaultLimits(t *testing.T) {
	limits := safety.DefaultLimits()

	if limits.MaxDepth != 50 {
		t.Errorf("MaxDepth = %d, want 50", limits.MaxDepth)
	}

	if limits.MaxNodes != 10000 {
		t.Errorf("MaxNodes = %d, want 10000", limits.MaxNodes)
	}

	if limits.StatementTimeout.Seconds() != 30 {
		t.Errorf("StatementTimeout = %v, want 30s", limits.StatementTimeout)
	}
}

func TestClampDepth_WithinBound(t *testing.T) {
	if got := safety.ClampDepth(10, 50); got != 10 {
		t.Errorf("ClampDepth(10, 50) = %d, want 10", got)
	}
}

func TestClampDepth_ClampsDownward(t *testing.T) {
	if got := safety.ClampDepth(100, 50); got != 50 {
		t.Errorf("ClampDepth(100, 50) = %d, want 50 (clamped, not rejected)", got)
	}
}

func TestClampDepth_NegativeFlooredToZero(t *testing.T) {
	if got := safety.ClampDepth(-5, 50); got != 0 {
		t.Errorf("ClampDepth(-5, 50) = %d, want 0", got)
	}
}

func TestClampDepth_ZeroPreserved(t *testing.T) {
	if got := safety.ClampDepth(0, 50); got != 0 {
		t.Errorf("ClampDepth(0, 50) = %d, want 0 (path_aggregate depends on this for its empty-result case)", got)
	}
}
