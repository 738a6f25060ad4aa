package engine

import (
	"context"
	"fmt"

	"github.com/virtgraph/vgcore/internal/dbconn"
	"github.com/virtgraph/vgcore/internal/safety"
	"github.com/virtgraph/vgcore/internal/sqlbuilder"
)

// pathAggregateFanoutFactor bounds the weighted-path and path-aggregate
// CTEs at MaxNodes times this factor, matching spec §4.5's "row-capped at
// MAX_NODES × a small fan-out factor (implementation-defined, e.g. 10×)".
const pathAggregateFanoutFactor = 10

// ShortestPath finds the shortest path between start and end. Without a
// weight column it reuses the Frontier Engine's BFS and walks the parent
// map; with one, it drives the bounded weighted recursive CTE and selects
// the minimum cumulative-weight row at end.
func ShortestPath(ctx context.Context, pool *dbconn.Pool, b sqlbuilder.Binding, limits safety.Limits, start, end any, excludedNodes []any) (*ShortestPathResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if start == end {
		tx, err := pool.BeginReadOnly(ctx)
		if err != nil {
			return nil, dbconn.MapError("shortest_path: begin", err)
		}
		defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

		nodes, err := hydrateNodes(ctx, tx, b, []any{start})
		if err != nil {
			return nil, fmt.Errorf("hydrating trivial path node: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, dbconn.MapError("shortest_path: commit", err)
		}

		zero := 0.0

		return &ShortestPathResult{
			Path:          []any{start},
			PathNodes:     nodes,
			Distance:      &zero,
			Edges:         []Edge{},
			ExcludedNodes: excludedNodes,
		}, nil
	}

	b = b.Normalize()

	tx, err := pool.BeginReadOnly(ctx)
	if err != nil {
		return nil, dbconn.MapError("shortest_path: begin", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var result *ShortestPathResult

	if b.WeightCol == "" {
		result, err = unweightedShortestPath(ctx, tx, b, limits, start, end, excludedNodes)
	} else {
		result, err = weightedShortestPath(ctx, tx, b, limits, start, end, excludedNodes)
	}

	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dbconn.MapError("shortest_path: commit", err)
	}

	return result, nil
}

func unweightedShortestPath(ctx context.Context, q dbconn.Queryer, b sqlbuilder.Binding, limits safety.Limits, start, end any, excludedNodes []any) (*ShortestPathResult, error) {
	run, err := runFrontier(ctx, q, b, limits, TraverseOptions{
		StartIDs:       []any{start},
		Direction:      Both,
		MaxDepth:       limits.MaxDepth,
		ExcludedNodes:  excludedNodes,
		SkipEstimation: true,
	}, "")
	if err != nil {
		return nil, err
	}

	path, ok := run.Paths[end]
	if !ok {
		return &ShortestPathResult{
			Path:          nil,
			Distance:      nil,
			Edges:         []Edge{},
			NodesExplored: run.NodesVisited,
			ExcludedNodes: excludedNodes,
			Error:         "no path",
		}, nil
	}

	nodes, err := hydrateNodes(ctx, q, b, path)
	if err != nil {
		return nil, fmt.Errorf("hydrating shortest path nodes: %w", err)
	}

	distance := float64(len(path) - 1)
	edges := pathToEdges(path)

	return &ShortestPathResult{
		Path:          path,
		PathNodes:     nodes,
		Distance:      &distance,
		Edges:         edges,
		NodesExplored: run.NodesVisited,
		ExcludedNodes: excludedNodes,
	}, nil
}

func weightedShortestPath(ctx context.Context, q dbconn.Queryer, b sqlbuilder.Binding, limits safety.Limits, start, end any, excludedNodes []any) (*ShortestPathResult, error) {
	startStr := fmt.Sprintf("%v", start)
	rowCap := limits.MaxNodes * pathAggregateFanoutFactor

	sql, args := sqlbuilder.BuildWeightedPathSQL(b, startStr, limits.MaxDepth, rowCap, excludedNodes)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbconn.MapError("shortest_path: weighted query", err)
	}
	defer rows.Close()

	var (
		bestPath     []any
		bestWeight   float64
		bestExplored int
		found        bool
	)

	endStr := fmt.Sprintf("%v", end)

	for rows.Next() {
		var node string
		var cumWeight float64
		var path []string

		if err := rows.Scan(&node, &cumWeight, &path); err != nil {
			return nil, fmt.Errorf("scanning weighted path row: %w", err)
		}

		bestExplored++

		if node != endStr {
			continue
		}

		if !found || cumWeight < bestWeight {
			bestWeight = cumWeight
			bestPath = toAnySlice(path)
			found = true
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating weighted path rows: %w", err)
	}

	if !found {
		return &ShortestPathResult{
			Path:          nil,
			Distance:      nil,
			Edges:         []Edge{},
			NodesExplored: bestExplored,
			ExcludedNodes: excludedNodes,
			Error:         "no path",
		}, nil
	}

	nodes, err := hydrateNodes(ctx, q, b, bestPath)
	if err != nil {
		return nil, fmt.Errorf("hydrating weighted path nodes: %w", err)
	}

	edges, err := fetchPathEdgeWeights(ctx, q, b, bestPath)
	if err != nil {
		return nil, fmt.Errorf("fetching weighted path edge weights: %w", err)
	}

	return &ShortestPathResult{
		Path:          bestPath,
		PathNodes:     nodes,
		Distance:      &bestWeight,
		Edges:         edges,
		NodesExplored: bestExplored,
		ExcludedNodes: excludedNodes,
	}, nil
}

// fetchPathEdgeWeights looks up the weight of each consecutive edge along
// path, one small query per hop — the path length is bounded by MaxDepth,
// so this stays cheap even though it is not batched.
func fetchPathEdgeWeights(ctx context.Context, q dbconn.Queryer, b sqlbuilder.Binding, path []any) ([]Edge, error) {
	edges := make([]Edge, 0, len(path)-1)

	edgesTable := sqlbuilder.Quote(b.EdgesTable)
	fromCol := sqlbuilder.Quote(b.FromCol)
	toCol := sqlbuilder.Quote(b.ToCol)
	weightCol := sqlbuilder.Quote(b.WeightCol)

	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = $2 LIMIT 1", weightCol, edgesTable, fromCol, toCol)

	for i := 0; i+1 < len(path); i++ {
		var weight float64

		if err := q.QueryRow(ctx, sql, path[i], path[i+1]).Scan(&weight); err != nil {
			return nil, err
		}

		edges = append(edges, Edge{From: path[i], To: path[i+1], Weight: &weight})
	}

	return edges, nil
}

// AllShortestPaths computes the shortest distance D via ShortestPath, then
// enumerates every simple path of length exactly D from start to end,
// capped at maxPaths, per spec §4.4's two-phase algorithm.
func AllShortestPaths(ctx context.Context, pool *dbconn.Pool, b sqlbuilder.Binding, limits safety.Limits, start, end any, excludedNodes []any, maxPaths int) (*AllShortestPathsResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	shortest, err := ShortestPath(ctx, pool, b, limits, start, end, excludedNodes)
	if err != nil {
		return nil, err
	}

	if shortest.Error != "" {
		return &AllShortestPathsResult{
			Paths:         [][]any{},
			Distance:      nil,
			PathCount:     0,
			NodesExplored: shortest.NodesExplored,
			ExcludedNodes: excludedNodes,
			Error:         shortest.Error,
		}, nil
	}

	distance := int(*shortest.Distance)

	if start == end {
		return &AllShortestPathsResult{
			Paths:         [][]any{{start}},
			Distance:      shortest.Distance,
			PathCount:     1,
			NodesExplored: shortest.NodesExplored,
			ExcludedNodes: excludedNodes,
		}, nil
	}

	b = b.Normalize()

	tx, err := pool.BeginReadOnly(ctx)
	if err != nil {
		return nil, dbconn.MapError("all_shortest_paths: begin", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	startStr := fmt.Sprintf("%v", start)
	endStr := fmt.Sprintf("%v", end)

	// Phase 1 (ShortestPath) walks unweighted distances with Direction: Both
	// (see unweightedShortestPath); enumeration must use the same
	// directionality or a distance only achievable via a reverse edge would
	// enumerate zero matching paths.
	sql, args := sqlbuilder.BuildAllPathsAtDistanceSQL(b, startStr, distance, maxPaths, excludedNodes, b.WeightCol == "")

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbconn.MapError("all_shortest_paths: enumerate", err)
	}

	var paths [][]any

	for rows.Next() {
		var path []string

		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning enumerated path row: %w", err)
		}

		if len(path) == 0 || path[len(path)-1] != endStr {
			continue
		}

		paths = append(paths, toAnySlice(path))
	}

	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating enumerated path rows: %w", err)
	}

	rows.Close()

	if err := tx.Commit(ctx); err != nil {
		return nil, dbconn.MapError("all_shortest_paths: commit", err)
	}

	if len(paths) > maxPaths {
		paths = paths[:maxPaths]
	}

	return &AllShortestPathsResult{
		Paths:         paths,
		Distance:      shortest.Distance,
		PathCount:     len(paths),
		NodesExplored: shortest.NodesExplored,
		ExcludedNodes: excludedNodes,
	}, nil
}

func pathToEdges(path []any) []Edge {
	edges := make([]Edge, 0, len(path)-1)

	for i := 0; i+1 < len(path); i++ {
		edges = append(edges, Edge{From: path[i], To: path[i+1]})
	}

	return edges
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}

	return out
}
