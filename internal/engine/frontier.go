package engine

import (
	"context"
	"fmt"

	"github.com/virtgraph/vgcore/internal/dbconn"
	"github.com/virtgraph/vgcore/internal/safety"
	"github.com/virtgraph/vgcore/internal/sqlbuilder"
	"github.com/virtgraph/vgcore/internal/vgerrors"
)

// visitedEntry is the Visited map's per-node bookkeeping: the hop it was
// first seen at, its parent on the path from start, and the weight of the
// incoming edge (nil when the binding is unweighted).
type visitedEntry struct {
	hop    int
	parent any
	weight *float64
}

// TraverseOptions parameterizes the Frontier Engine's traverse operation.
type TraverseOptions struct {
	StartIDs       []any
	Direction      Direction
	MaxDepth       int
	ExcludedNodes  []any
	SkipEstimation bool
}

// nextHopFrontierCap bounds how many node ids may carry forward to the
// next hop before being randomly truncated, mirroring the teacher's BFS
// frontier-width cap.
const nextHopFrontierCap = 2000

// Traverse performs the bounded BFS frontier traversal of spec §4.3: it
// materializes only the current frontier and visited map in memory,
// batches edge fetches per hop through a single read-only transaction,
// and hydrates node rows only after the hop loop completes.
func Traverse(ctx context.Context, pool *dbconn.Pool, b sqlbuilder.Binding, limits safety.Limits, opts TraverseOptions) (*TraverseResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	maxDepth := safety.ClampDepth(opts.MaxDepth, limits.MaxDepth)

	if !opts.SkipEstimation {
		tooLarge, err := preflightCheck(ctx, pool, b, opts.Direction, opts.StartIDs, maxDepth, limits)
		if err != nil {
			return nil, err
		}

		if tooLarge {
			estimate, _ := safety.EstimateReachable(ctx, pool, b, opts.Direction == Both, opts.StartIDs, maxDepth, limits)
			return nil, vgerrors.NewSubgraphTooLarge(estimate, limits.MaxNodes)
		}
	}

	tx, err := pool.BeginReadOnly(ctx)
	if err != nil {
		return nil, dbconn.MapError("traverse: begin", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	result, err := runFrontier(ctx, tx, b, limits, opts, "")
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dbconn.MapError("traverse: commit", err)
	}

	return &result.TraverseResult, nil
}

// frontierRun carries the shared BFS state traverse and traverse_collecting
// both build on.
type frontierRun struct {
	TraverseResult
	visited map[any]visitedEntry
}

// runFrontier executes the hop loop shared by Traverse and
// TraverseCollecting. The trailing string parameter is unused: the loop
// has no notion of a target predicate and always runs until the frontier
// empties or a depth or node limit is reached; TraverseCollecting applies
// its condition to the hydrated result afterwards.
func runFrontier(ctx context.Context, q dbconn.Queryer, b sqlbuilder.Binding, limits safety.Limits, opts TraverseOptions, _ string) (*frontierRun, error) {
	b = b.Normalize()

	maxDepth := safety.ClampDepth(opts.MaxDepth, limits.MaxDepth)

	budget := safety.NewBudget(limits.MaxNodes)
	visited := make(map[any]visitedEntry, len(opts.StartIDs))
	frontier := make([]any, 0, len(opts.StartIDs))

	for _, id := range opts.StartIDs {
		if _, ok := visited[id]; ok {
			continue
		}

		if err := budget.Enter(); err != nil {
			return nil, err
		}

		visited[id] = visitedEntry{hop: 0}
		frontier = append(frontier, id)
	}

	terminatedAt := TerminatedFrontierEmpty
	depthReached := 0

	for hop := 1; hop <= maxDepth && len(frontier) > 0; hop++ {
		nextFrontier, err := expandHop(ctx, q, b, frontier, opts, visited, hop, budget)
		if err != nil {
			if err == errSafetyLimitMidHop {
				terminatedAt = TerminatedSafetyLimit
				depthReached = hop - 1

				break
			}

			return nil, err
		}

		if len(nextFrontier) == 0 {
			terminatedAt = TerminatedFrontierEmpty
			break
		}

		depthReached = hop

		if hop == maxDepth {
			terminatedAt = TerminatedDepthExhausted
		}

		frontier = safety.ShuffleAndTruncate(nextFrontier, nextHopFrontierCap)
	}

	ids := make([]any, 0, len(visited))
	for id := range visited {
		ids = append(ids, id)
	}

	nodes, err := hydrateNodes(ctx, q, b, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrating traversed nodes: %w", err)
	}

	paths := make(map[any][]any, len(visited))
	for id := range visited {
		paths[id] = reconstructPathFromVisited(id, visited)
	}

	return &frontierRun{
		TraverseResult: TraverseResult{
			Nodes:        nodes,
			Paths:        paths,
			Edges:        collectEdgesFromVisited(visited),
			DepthReached: depthReached,
			NodesVisited: len(visited),
			TerminatedAt: terminatedAt,
		},
		visited: visited,
	}, nil
}

// errSafetyLimitMidHop signals expandHop hit the node budget mid-hop;
// runFrontier converts this into a terminated_at="safety_limit" result
// rather than propagating an error, matching spec §7's "traverse returns
// terminated_at = safety_limit... pathfinders raise instead" policy.
var errSafetyLimitMidHop = fmt.Errorf("safety limit reached mid-hop")

// expandHop fetches one hop's worth of edges for the given direction(s)
// and returns the next frontier, updating visited in place.
func expandHop(
	ctx context.Context,
	q dbconn.Queryer,
	b sqlbuilder.Binding,
	frontier []any,
	opts TraverseOptions,
	visited map[any]visitedEntry,
	hop int,
	budget *safety.Budget,
) ([]any, error) {
	var nextFrontier []any

	dirs := []sqlbuilder.Direction{}

	switch opts.Direction {
	case Outbound:
		dirs = []sqlbuilder.Direction{sqlbuilder.Outbound}
	case Inbound:
		dirs = []sqlbuilder.Direction{sqlbuilder.Inbound}
	case Both:
		dirs = []sqlbuilder.Direction{sqlbuilder.Outbound, sqlbuilder.Inbound}
	}

	for _, dir := range dirs {
		sql, args := sqlbuilder.BuildFrontierEdgesSQL(b, dir, frontier, opts.ExcludedNodes)

		rows, err := q.Query(ctx, sql, args...)
		if err != nil {
			return nil, dbconn.MapError("traverse: fetch frontier edges", err)
		}

		for rows.Next() {
			var from, to any
			var weight *float64

			scanArgs := []any{&from, &to}
			if b.WeightCol != "" {
				scanArgs = append(scanArgs, &weight)
			}

			if err := rows.Scan(scanArgs...); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning frontier edge: %w", err)
			}

			traversalFrom, traversalTo := from, to
			if dir == sqlbuilder.Inbound {
				traversalFrom, traversalTo = to, from
			}

			if _, seen := visited[traversalTo]; seen {
				continue
			}

			if err := budget.Enter(); err != nil {
				rows.Close()
				return nil, errSafetyLimitMidHop
			}

			visited[traversalTo] = visitedEntry{hop: hop, parent: traversalFrom, weight: weight}
			nextFrontier = append(nextFrontier, traversalTo)
		}

		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterating frontier edges: %w", err)
		}

		rows.Close()
	}

	return nextFrontier, nil
}

func reconstructPathFromVisited(node any, visited map[any]visitedEntry) []any {
	trail := []any{node}

	for current := node; ; {
		entry := visited[current]
		if entry.parent == nil {
			break
		}

		trail = append(trail, entry.parent)
		current = entry.parent
	}

	for i, j := 0, len(trail)-1; i < j; i, j = i+1, j-1 {
		trail[i], trail[j] = trail[j], trail[i]
	}

	return trail
}

func collectEdgesFromVisited(visited map[any]visitedEntry) []Edge {
	edges := make([]Edge, 0, len(visited))

	for id, entry := range visited {
		if entry.parent == nil {
			continue
		}

		edges = append(edges, Edge{From: entry.parent, To: id, Weight: entry.weight})
	}

	return edges
}

// preflightCheck asks the estimator for a conservative upper bound and
// reports whether it reaches or exceeds MaxNodes, per spec §4.2's
// pre-flight subgraph-size estimate. EstimateReachable saturates at
// MaxNodes rather than overshooting it, so this must be >=, not >.
func preflightCheck(ctx context.Context, pool *dbconn.Pool, b sqlbuilder.Binding, dir Direction, startIDs []any, maxDepth int, limits safety.Limits) (bool, error) {
	estimate, err := safety.EstimateReachable(ctx, pool, b, dir == Both, startIDs, maxDepth, limits)
	if err != nil {
		return false, fmt.Errorf("pre-flight estimate: %w", err)
	}

	return estimate >= limits.MaxNodes, nil
}

// TraverseCollecting runs the same engine as Traverse but filters the
// hydrated result by a caller-supplied SQL predicate over the node
// table's columns. Per spec §4.3 and the Open Question this module
// resolves, targetCondition is trusted-caller input: the engine appends
// it as raw SQL text without re-parsing it as an AST.
func TraverseCollecting(ctx context.Context, pool *dbconn.Pool, b sqlbuilder.Binding, opts TraverseOptions, limits safety.Limits, targetCondition string) (*CollectResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	tx, err := pool.BeginReadOnly(ctx)
	if err != nil {
		return nil, dbconn.MapError("traverse_collecting: begin", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	run, err := runFrontier(ctx, tx, b, limits, opts, targetCondition)
	if err != nil {
		return nil, err
	}

	matchingNodes, err := filterByCondition(ctx, tx, b, run.Nodes, targetCondition)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dbconn.MapError("traverse_collecting: commit", err)
	}

	matchingPaths := make(map[any][]any, len(matchingNodes))
	for _, n := range matchingNodes {
		matchingPaths[n.ID] = run.Paths[n.ID]
	}

	terminatedAt := run.TerminatedAt
	if len(matchingNodes) > 0 {
		terminatedAt = TerminatedTargetReached
	}

	return &CollectResult{
		MatchingNodes:  matchingNodes,
		MatchingPaths:  matchingPaths,
		TotalTraversed: run.NodesVisited,
		DepthReached:   run.DepthReached,
		TerminatedAt:   terminatedAt,
	}, nil
}

// filterByCondition re-queries the hydrated node set with targetCondition
// appended as a WHERE clause, scoping the predicate to only the nodes the
// traversal actually visited.
func filterByCondition(ctx context.Context, q dbconn.Queryer, b sqlbuilder.Binding, visited []NodeRow, targetCondition string) ([]NodeRow, error) {
	if targetCondition == "" || len(visited) == 0 {
		return nil, nil
	}

	ids := make([]any, len(visited))
	for i, n := range visited {
		ids[i] = n.ID
	}

	nodesTable := sqlbuilder.Quote(b.NodesTable)
	pkCol := sqlbuilder.Quote(b.Normalize().PKCol)

	sql := fmt.Sprintf("SELECT * FROM %s WHERE %s = ANY($1) AND (%s)", nodesTable, pkCol, targetCondition)

	rows, err := q.Query(ctx, sql, ids)
	if err != nil {
		return nil, dbconn.MapError("traverse_collecting: apply predicate", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()

	pkIndex := -1
	for i, f := range fields {
		if string(f.Name) == b.Normalize().PKCol {
			pkIndex = i
			break
		}
	}

	var matched []NodeRow

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("reading matched node values: %w", err)
		}

		columns := make(map[string]any, len(fields))
		for i, f := range fields {
			columns[string(f.Name)] = values[i]
		}

		var id any
		if pkIndex >= 0 {
			id = values[pkIndex]
		}

		matched = append(matched, NodeRow{ID: id, Columns: columns})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating matched nodes: %w", err)
	}

	return matched, nil
}
