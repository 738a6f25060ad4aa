package engine

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/virtgraph/vgcore/internal/dbconn"
	"github.com/virtgraph/vgcore/internal/safety"
	"github.com/virtgraph/vgcore/internal/sqlbuilder"
)

// ConnectedComponents repeatedly seeds an unvisited node and runs the
// Frontier Engine's bidirectional BFS until the node set (capped at
// maxNodes) is exhausted, treating each BFS run as one component — the
// supplier/DC cluster detection handler.
func ConnectedComponents(ctx context.Context, pool *dbconn.Pool, b sqlbuilder.Binding, limits safety.Limits, maxNodes int) ([]Component, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	b = b.Normalize()

	var components []Component

	visited := make([]any, 0, maxNodes)

	for len(visited) < maxNodes {
		seed, ok, err := sampleUnvisitedNode(ctx, pool, b, visited)
		if err != nil {
			return nil, err
		}

		if !ok {
			break
		}

		run, err := Traverse(ctx, pool, b, limits, TraverseOptions{
			StartIDs:       []any{seed},
			Direction:      Both,
			MaxDepth:       limits.MaxDepth,
			ExcludedNodes:  visited,
			SkipEstimation: true,
		})
		if err != nil {
			return nil, err
		}

		nodes := make([]any, 0, run.NodesVisited)
		for _, n := range run.Nodes {
			nodes = append(nodes, n.ID)
		}

		if len(nodes) == 0 {
			nodes = []any{seed}
		}

		components = append(components, Component{Nodes: nodes})
		visited = append(visited, nodes...)
	}

	return components, nil
}

// sampleUnvisitedNode fetches one node id not already in visited.
func sampleUnvisitedNode(ctx context.Context, q dbconn.Queryer, b sqlbuilder.Binding, visited []any) (any, bool, error) {
	sql, args := sqlbuilder.BuildUnvisitedNodeSQL(b, visited)

	var id any
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, nil
		}

		return nil, false, dbconn.MapError("connected_components: sample seed", err)
	}

	return id, true, nil
}

// DegreeCentrality computes, for each of nodeIDs, the count of edges
// touching it from either endpoint — one aggregate query, no traversal.
// This is degree centrality rather than a weighted PageRank-style measure:
// the supplier-criticality ranking handler's schema-agnostic equivalent.
func DegreeCentrality(ctx context.Context, q dbconn.Queryer, b sqlbuilder.Binding, nodeIDs []any) (map[any]int, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	result := make(map[any]int, len(nodeIDs))
	for _, id := range nodeIDs {
		result[id] = 0
	}

	if len(nodeIDs) == 0 {
		return result, nil
	}

	b = b.Normalize()

	sql, args := sqlbuilder.BuildDegreeCentralitySQL(b, nodeIDs)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbconn.MapError("degree_centrality: query", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id any
		var count int

		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("scanning degree centrality row: %w", err)
		}

		result[id] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating degree centrality rows: %w", err)
	}

	return result, nil
}

// ResilienceAnalysis simulates removing removedNodeID: it traverses from
// every direct neighbor of removedNodeID with removedNodeID excluded, and
// reports which nodes originally reachable from those neighbors became
// unreachable — the single-point-of-failure pattern (e.g. a single-source
// ingredient's supplier, or a distribution center, failing).
func ResilienceAnalysis(ctx context.Context, pool *dbconn.Pool, b sqlbuilder.Binding, limits safety.Limits, removedNodeID any, maxDepth int) (*ResilienceResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	b = b.Normalize()

	before, err := Traverse(ctx, pool, b, limits, TraverseOptions{
		StartIDs:  []any{removedNodeID},
		Direction: Both,
		MaxDepth:  maxDepth,
	})
	if err != nil {
		return nil, err
	}

	neighbors := make([]any, 0, len(before.Nodes))

	for _, n := range before.Nodes {
		if n.ID == removedNodeID {
			continue
		}

		if len(before.Paths[n.ID]) == 2 { // [removedNodeID, neighbor]
			neighbors = append(neighbors, n.ID)
		}
	}

	originallyReachable := make([]any, 0, len(before.Nodes))
	for _, n := range before.Nodes {
		if n.ID != removedNodeID {
			originallyReachable = append(originallyReachable, n.ID)
		}
	}

	if len(neighbors) == 0 {
		return &ResilienceResult{
			RemovedNode:         removedNodeID,
			OriginallyReachable: originallyReachable,
			StillReachable:      []any{},
			NowUnreachable:      originallyReachable,
		}, nil
	}

	after, err := Traverse(ctx, pool, b, limits, TraverseOptions{
		StartIDs:      neighbors,
		Direction:     Both,
		MaxDepth:      maxDepth,
		ExcludedNodes: []any{removedNodeID},
	})
	if err != nil {
		return nil, err
	}

	stillReachableSet := make(map[any]bool, len(after.Nodes))
	for _, n := range after.Nodes {
		stillReachableSet[n.ID] = true
	}

	stillReachable := make([]any, 0, len(after.Nodes))
	nowUnreachable := make([]any, 0, len(originallyReachable))

	for _, id := range originallyReachable {
		if stillReachableSet[id] {
			stillReachable = append(stillReachable, id)
		} else {
			nowUnreachable = append(nowUnreachable, id)
		}
	}

	return &ResilienceResult{
		RemovedNode:         removedNodeID,
		OriginallyReachable: originallyReachable,
		StillReachable:      stillReachable,
		NowUnreachable:      nowUnreachable,
	}, nil
}
