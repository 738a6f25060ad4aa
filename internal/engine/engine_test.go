package engine_test

import (
	"context"
	"testing"

	"github.com/virtgraph/vgcore/internal/engine"
	"github.com/virtgraph/vgcore/internal/safety"
)

// These integration tests assume the BOM demo schema seeded with the
// worked diamond example: R->A(qty2), R->B(qty3), A->X(qty5), B->X(qty4).

func TestTraverse_VisitsWholeDiamond(t *testing.T) {
	pool := getTestPool(t)
	ctx := context.Background()

	result, err := engine.Traverse(ctx, pool, bomBinding(), safety.DefaultLimits(), engine.TraverseOptions{
		StartIDs:  []any{"R"},
		Direction: engine.Outbound,
		MaxDepth:  5,
	})
	if err != nil {
		t.Fatalf("Traverse() = %v, want nil error", err)
	}

	if result.NodesVisited != 4 {
		t.Errorf("NodesVisited = %d, want 4 (R, A, B, X)", result.NodesVisited)
	}

	if result.TerminatedAt != engine.TerminatedFrontierEmpty && result.TerminatedAt != engine.TerminatedDepthExhausted {
		t.Errorf("TerminatedAt = %q, want frontier_empty or depth_exhausted", result.TerminatedAt)
	}
}

func TestShortestPath_Unweighted(t *testing.T) {
	pool := getTestPool(t)
	ctx := context.Background()

	b := bomBinding()
	b.WeightCol = ""

	result, err := engine.ShortestPath(ctx, pool, b, safety.DefaultLimits(), "R", "X", nil)
	if err != nil {
		t.Fatalf("ShortestPath() = %v, want nil error", err)
	}

	if result.Error != "" {
		t.Fatalf("ShortestPath() error field = %q, want none", result.Error)
	}

	if len(result.Path) != 3 {
		t.Errorf("Path = %v, want length 3 (R, {A|B}, X)", result.Path)
	}

	if *result.Distance != 2 {
		t.Errorf("Distance = %v, want 2", *result.Distance)
	}
}

func TestAllShortestPaths_FindsBothDiamondArms(t *testing.T) {
	pool := getTestPool(t)
	ctx := context.Background()

	b := bomBinding()
	b.WeightCol = ""

	result, err := engine.AllShortestPaths(ctx, pool, b, safety.DefaultLimits(), "R", "X", nil, 10)
	if err != nil {
		t.Fatalf("AllShortestPaths() = %v, want nil error", err)
	}

	if result.PathCount != 2 {
		t.Errorf("PathCount = %d, want 2 (via A and via B)", result.PathCount)
	}
}

func TestPathAggregate_MultiplyDiamond(t *testing.T) {
	pool := getTestPool(t)
	ctx := context.Background()

	result, err := engine.PathAggregate(ctx, pool, bomBinding(), safety.DefaultLimits(), engine.PathAggregateOptions{
		Start:     "R",
		ValueCol:  "quantity",
		Operation: engine.OpMultiply,
		MaxDepth:  5,
	})
	if err != nil {
		t.Fatalf("PathAggregate() = %v, want nil error", err)
	}

	if result.AggregatedValues["X"] != 22 {
		t.Errorf("AggregatedValues[X] = %v, want 22 (2*5 + 3*4)", result.AggregatedValues["X"])
	}
}

func TestShortestPath_WeightedPrefersCheaperRouteOverEqualHopCount(t *testing.T) {
	pool := getTestPool(t)
	ctx := context.Background()

	result, err := engine.ShortestPath(ctx, pool, facilityBinding(), safety.DefaultLimits(), "DC1", "STORE1", nil)
	if err != nil {
		t.Fatalf("ShortestPath() = %v, want nil error", err)
	}

	if result.Error != "" {
		t.Fatalf("ShortestPath() error field = %q, want none", result.Error)
	}

	if *result.Distance != 55 {
		t.Errorf("Distance = %v, want 55 (DC1->HUB1->STORE1, the cheaper of two equal-hop routes)", *result.Distance)
	}

	wantPath := []any{"DC1", "HUB1", "STORE1"}
	if len(result.Path) != len(wantPath) || result.Path[1] != "HUB1" {
		t.Errorf("Path = %v, want %v", result.Path, wantPath)
	}
}

func TestPathAggregate_ZeroDepthReturnsEmpty(t *testing.T) {
	pool := getTestPool(t)
	ctx := context.Background()

	result, err := engine.PathAggregate(ctx, pool, bomBinding(), safety.DefaultLimits(), engine.PathAggregateOptions{
		Start:     "R",
		ValueCol:  "quantity",
		Operation: engine.OpSum,
		MaxDepth:  0,
	})
	if err != nil {
		t.Fatalf("PathAggregate() = %v, want nil error", err)
	}

	if len(result.Nodes) != 0 || len(result.AggregatedValues) != 0 {
		t.Errorf("PathAggregate(max_depth=0) = %+v, want empty nodes and aggregated_values", result)
	}
}
