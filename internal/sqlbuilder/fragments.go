package sqlbuilder

import (
	"fmt"
)

// Direction selects which edge endpoint must lie in the frontier.
type Direction int

const (
	// Outbound matches edges whose from-column is in the frontier.
	Outbound Direction = iota
	// Inbound matches edges whose to-column is in the frontier.
	Inbound
)

// BuildFrontierEdgesSQL builds the batched per-hop edge fetch the Frontier
// Engine issues once per direction per hop: all edges with their
// traversal-side endpoint bound by ANY($1), optionally excluding a set of
// node ids ($2, when len(excludedNodes) > 0) and optionally joining the
// node table to filter soft-deleted endpoints. Returns deterministic
// ORDER BY (from, to) so tie-breaks are stable across identical calls.
func BuildFrontierEdgesSQL(b Binding, dir Direction, frontier, excludedNodes []any) (string, []any) {
	b = b.Normalize()

	nodesTable := Quote(b.NodesTable)
	edgesTable := Quote(b.EdgesTable)
	fromCol := Quote(b.FromCol)
	toCol := Quote(b.ToCol)
	pkCol := Quote(b.PKCol)

	frontierCol := fromCol
	otherCol := toCol

	if dir == Inbound {
		frontierCol, otherCol = toCol, fromCol
	}

	cols := fmt.Sprintf("e.%s, e.%s", fromCol, toCol)
	if b.WeightCol != "" {
		cols += fmt.Sprintf(", e.%s", Quote(b.WeightCol))
	}

	join := ""
	if b.SoftDeleteCol != "" {
		join = fmt.Sprintf(" JOIN %s n ON n.%s = e.%s AND n.%s IS NULL",
			nodesTable, pkCol, otherCol, Quote(b.SoftDeleteCol))
	}

	args := []any{frontier}
	excludeClause := ""

	if len(excludedNodes) > 0 {
		excludeClause = fmt.Sprintf(" AND e.%s != ALL($2)", otherCol)
		args = append(args, excludedNodes)
	}

	sql := fmt.Sprintf(
		"SELECT %s\nFROM %s e%s\nWHERE e.%s = ANY($1)%s\nORDER BY e.%s, e.%s",
		cols, edgesTable, join, frontierCol, excludeClause, fromCol, toCol,
	)

	return sql, args
}

// BuildNodeHydrationSQL builds the SELECT * FROM nodes_table WHERE pk =
// ANY(ids) fetch used after a BFS hop loop completes, optionally ordered by
// Binding.OrderBy. ids is bound as $1.
func BuildNodeHydrationSQL(b Binding, ids []any) (string, []any) {
	b = b.Normalize()

	nodesTable := Quote(b.NodesTable)
	pkCol := Quote(b.PKCol)

	sql := fmt.Sprintf("SELECT * FROM %s WHERE %s = ANY($1)", nodesTable, pkCol)

	if b.SoftDeleteCol != "" {
		sql += fmt.Sprintf(" AND %s IS NULL", Quote(b.SoftDeleteCol))
	}

	orderCol := pkCol
	if b.OrderBy != "" {
		orderCol = Quote(b.OrderBy)
	}

	sql += fmt.Sprintf(" ORDER BY %s", orderCol)

	return sql, []any{ids}
}

// BuildWeightedPathSQL builds the bounded recursive CTE driving the
// Dijkstra-style weighted shortest path. It maintains (node, cum_weight,
// path) rows, relaxing edges at each recursion step, bounded by maxDepth
// recursion steps and a MaxNodes row cap ($1 start, $2 maxDepth, $3 row
// cap, $4 excluded nodes when present).
func BuildWeightedPathSQL(b Binding, start string, maxDepth, rowCap int, excludedNodes []any) (string, []any) {
	b = b.Normalize()

	edgesTable := Quote(b.EdgesTable)
	fromCol := Quote(b.FromCol)
	toCol := Quote(b.ToCol)
	weightCol := Quote(b.WeightCol)
	nodesTable := Quote(b.NodesTable)
	pkCol := Quote(b.PKCol)

	softDeleteJoin := ""
	if b.SoftDeleteCol != "" {
		softDeleteJoin = fmt.Sprintf(
			" JOIN %s nd ON nd.%s = e.%s AND nd.%s IS NULL",
			nodesTable, pkCol, toCol, Quote(b.SoftDeleteCol),
		)
	}

	args := []any{start, maxDepth, rowCap}
	excludeClause := ""

	if len(excludedNodes) > 0 {
		excludeClause = fmt.Sprintf(" AND e.%s != ALL($4)", toCol)
		args = append(args, excludedNodes)
	}

	sql := fmt.Sprintf(`WITH RECURSIVE path_search(node, cum_weight, path, depth) AS (
	SELECT $1::text, 0::numeric, ARRAY[$1::text], 0
	UNION ALL
	SELECT e.%[3]s, ps.cum_weight + e.%[4]s, ps.path || e.%[3]s, ps.depth + 1
	FROM path_search ps
	JOIN %[1]s e ON e.%[2]s = ps.node%[5]s
	WHERE ps.depth < $2
		AND NOT e.%[3]s = ANY(ps.path)%[6]s
)
SELECT node, cum_weight, path
FROM path_search
ORDER BY cum_weight ASC
LIMIT $3`,
		edgesTable, fromCol, toCol, weightCol, softDeleteJoin, excludeClause)

	return sql, args
}

// BuildAllPathsAtDistanceSQL builds the recursive CTE enumerating every
// simple path of length exactly targetDistance from start, carrying the
// full path array and rejecting steps that would revisit a node on their
// own prefix ($1 start, $2 targetDistance, $3 maxPaths, $4 excluded nodes
// when present). Callers filter the result rows to those ending at the
// desired end node. both controls whether a step may also traverse an edge
// against its from/to direction, matching the directionality the distance
// phase (ShortestPath) used to produce targetDistance.
func BuildAllPathsAtDistanceSQL(b Binding, start string, targetDistance, maxPaths int, excludedNodes []any, both bool) (string, []any) {
	b = b.Normalize()

	edgesTable := Quote(b.EdgesTable)
	fromCol := Quote(b.FromCol)
	toCol := Quote(b.ToCol)
	nodesTable := Quote(b.NodesTable)
	pkCol := Quote(b.PKCol)

	softDeleteJoin := ""
	if b.SoftDeleteCol != "" {
		softDeleteJoin = fmt.Sprintf(
			" JOIN %s nd ON nd.%s = pe_next.nxt AND nd.%s IS NULL",
			nodesTable, pkCol, Quote(b.SoftDeleteCol),
		)
	}

	steps := fmt.Sprintf("SELECT %[1]s AS cur, %[2]s AS nxt FROM %[3]s e", fromCol, toCol, edgesTable)
	if both {
		steps += fmt.Sprintf(
			"\n\tUNION ALL\n\tSELECT %[2]s AS cur, %[1]s AS nxt FROM %[3]s e",
			fromCol, toCol, edgesTable,
		)
	}

	args := []any{start, targetDistance, maxPaths}
	excludeClause := ""

	if len(excludedNodes) > 0 {
		excludeClause = " AND pe_next.nxt != ALL($4)"
		args = append(args, excludedNodes)
	}

	sql := fmt.Sprintf(`WITH RECURSIVE path_enum(node, path, depth) AS (
	SELECT $1::text, ARRAY[$1::text], 0
	UNION ALL
	SELECT pe_next.nxt, pe.path || pe_next.nxt, pe.depth + 1
	FROM path_enum pe
	JOIN (%[1]s) pe_next ON pe_next.cur = pe.node%[2]s
	WHERE pe.depth < $2
		AND NOT pe_next.nxt = ANY(pe.path)%[3]s
)
SELECT path
FROM path_enum
WHERE depth = $2
LIMIT $3`,
		steps, softDeleteJoin, excludeClause)

	return sql, args
}

// AggregateOp names the per-path accumulation BuildPathAggregateSQL
// compiles into the recursive CTE's running column. Cross-path
// combination (the other half of spec §4.5's operation table) happens in
// Go once rows are fetched, since it operates across rows the CTE has
// already produced.
type AggregateOp string

// Per-path accumulations path_aggregate supports.
const (
	AggSum      AggregateOp = "sum"
	AggMultiply AggregateOp = "multiply"
	AggMax      AggregateOp = "max"
	AggMin      AggregateOp = "min"
	AggCount    AggregateOp = "count"
)

// BuildPathAggregateSQL builds the recursive CTE underlying path_aggregate.
// Rows are keyed by the full path prefix (never deduplicated by terminal
// node), so a node reached by two distinct parents produces two
// independent rows, each carrying that path's own running accumulation
// (sum/product/running-max/running-min of edge values along exactly that
// path, per op) in its `running` column — the engine groups by terminal
// node and applies the cross-path combiner once rows are fetched, per the
// diamond-aware algorithm ($1 start, $2 maxDepth, $3 row cap).
func BuildPathAggregateSQL(b Binding, valueCol, start string, maxDepth, rowCap int, op AggregateOp) (string, []any) {
	b = b.Normalize()

	edgesTable := Quote(b.EdgesTable)
	fromCol := Quote(b.FromCol)
	toCol := Quote(b.ToCol)
	valueColQ := Quote(valueCol)
	nodesTable := Quote(b.NodesTable)
	pkCol := Quote(b.PKCol)

	softDeleteJoin := ""
	if b.SoftDeleteCol != "" {
		softDeleteJoin = fmt.Sprintf(
			" JOIN %s nd ON nd.%s = e.%s AND nd.%s IS NULL",
			nodesTable, pkCol, toCol, Quote(b.SoftDeleteCol),
		)
	}

	var seedRunning, stepRunning string

	switch op {
	case AggMultiply:
		seedRunning = "1::numeric"
		stepRunning = fmt.Sprintf("pa.running * e.%s", valueColQ)
	case AggMax:
		seedRunning = fmt.Sprintf("(SELECT min(%s) FROM %s)", valueColQ, edgesTable)
		stepRunning = fmt.Sprintf("GREATEST(pa.running, e.%s)", valueColQ)
	case AggMin:
		seedRunning = fmt.Sprintf("(SELECT max(%s) FROM %s)", valueColQ, edgesTable)
		stepRunning = fmt.Sprintf("LEAST(pa.running, e.%s)", valueColQ)
	case AggCount:
		seedRunning = "0::numeric"
		stepRunning = "pa.running + 1"
	default: // AggSum
		seedRunning = "0::numeric"
		stepRunning = fmt.Sprintf("pa.running + e.%s", valueColQ)
	}

	sql := fmt.Sprintf(`WITH RECURSIVE path_agg(node, running, path, depth) AS (
	SELECT $1::text, %[6]s, ARRAY[$1::text], 0
	UNION ALL
	SELECT e.%[3]s, %[7]s, pa.path || e.%[3]s, pa.depth + 1
	FROM path_agg pa
	JOIN %[1]s e ON e.%[2]s = pa.node%[5]s
	WHERE pa.depth < $2
		AND NOT e.%[3]s = ANY(pa.path)
)
SELECT node, running, path, depth
FROM path_agg
WHERE depth > 0
ORDER BY depth, node
LIMIT $3`,
		edgesTable, fromCol, toCol, valueColQ, softDeleteJoin, seedRunning, stepRunning)

	return sql, []any{start, maxDepth, rowCap}
}

// BuildUnvisitedNodeSQL builds the query ConnectedComponents uses to seed
// each new component: one node id not already in excluded, deterministically
// ordered so repeated calls make forward progress ($1 excluded node ids).
func BuildUnvisitedNodeSQL(b Binding, excluded []any) (string, []any) {
	b = b.Normalize()

	nodesTable := Quote(b.NodesTable)
	pkCol := Quote(b.PKCol)

	orderCol := pkCol
	if b.OrderBy != "" {
		orderCol = Quote(b.OrderBy)
	}

	where := ""
	args := []any{}

	if len(excluded) > 0 {
		where = fmt.Sprintf(" WHERE %s != ALL($1)", pkCol)
		args = append(args, excluded)
	}

	if b.SoftDeleteCol != "" {
		cond := fmt.Sprintf("%s IS NULL", Quote(b.SoftDeleteCol))
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	sql := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT 1", pkCol, nodesTable, where, orderCol)

	return sql, args
}

// BuildDegreeCentralitySQL builds the single aggregate query underlying
// degree_centrality: every edge touching a node in nodeIDs, counted from
// either endpoint, grouped to one row per node ($1 node ids). When
// SoftDeleteCol is set, an edge only contributes if neither endpoint is
// soft-deleted, matching the soft-delete filtering the Frontier Engine
// applies everywhere else.
func BuildDegreeCentralitySQL(b Binding, nodeIDs []any) (string, []any) {
	b = b.Normalize()

	edgesTable := Quote(b.EdgesTable)
	fromCol := Quote(b.FromCol)
	toCol := Quote(b.ToCol)
	nodesTable := Quote(b.NodesTable)
	pkCol := Quote(b.PKCol)

	softDeleteJoin := ""
	if b.SoftDeleteCol != "" {
		softDeleteCol := Quote(b.SoftDeleteCol)
		softDeleteJoin = fmt.Sprintf(
			" JOIN %[1]s nf ON nf.%[2]s = e.%[3]s AND nf.%[4]s IS NULL\n\tJOIN %[1]s nt ON nt.%[2]s = e.%[5]s AND nt.%[4]s IS NULL",
			nodesTable, pkCol, fromCol, softDeleteCol, toCol,
		)
	}

	sql := fmt.Sprintf(`SELECT id, count(*)
FROM (
	SELECT e.%[2]s AS id FROM %[1]s e%[4]s WHERE e.%[2]s = ANY($1)
	UNION ALL
	SELECT e.%[3]s AS id FROM %[1]s e%[4]s WHERE e.%[3]s = ANY($1)
) touched
GROUP BY id`,
		edgesTable, fromCol, toCol, softDeleteJoin)

	return sql, []any{nodeIDs}
}
