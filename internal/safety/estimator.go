package safety

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/virtgraph/vgcore/internal/dbconn"
	"github.com/virtgraph/vgcore/internal/sqlbuilder"
)

// sampleSize bounds how many candidate nodes the estimator samples for
// out-degree (and in-degree, for bidirectional traversal). Small and
// fixed: the estimate only needs to be a loose upper bound, not a mean.
const sampleSize = 5

// EstimateReachable returns a conservative upper bound on the number of
// nodes reachable from startIDs within maxDepth hops in the given
// direction, without performing the traversal itself. It samples
// out-degree (and in-degree, for both directions) from a handful of
// existing nodes concurrently — via independently acquired connections,
// never the caller's own transaction, since out-of-band sampling must not
// contend with the handler's single exclusively-owned connection — and
// multiplies hop over hop, capping at limits.MaxNodes.
func EstimateReachable(
	ctx context.Context,
	q dbconn.Queryer,
	b sqlbuilder.Binding,
	bidirectional bool,
	startIDs []any,
	maxDepth int,
	limits Limits,
) (int, error) {
	if len(startIDs) == 0 || maxDepth <= 0 {
		return len(startIDs), nil
	}

	avgDegree, err := sampleAverageDegree(ctx, q, b, bidirectional)
	if err != nil {
		return 0, fmt.Errorf("sampling average degree: %w", err)
	}

	estimate := float64(len(startIDs))
	for hop := 0; hop < maxDepth; hop++ {
		estimate *= avgDegree
		if estimate >= float64(limits.MaxNodes) {
			return limits.MaxNodes, nil
		}
	}

	if int(estimate) > limits.MaxNodes {
		return limits.MaxNodes, nil
	}

	return int(estimate), nil
}

// sampleAverageDegree samples out-degree (and in-degree when bidirectional)
// across sampleSize randomly chosen existing node ids, running one query
// per candidate concurrently through an errgroup, and returns the mean.
func sampleAverageDegree(ctx context.Context, q dbconn.Queryer, b sqlbuilder.Binding, bidirectional bool) (float64, error) {
	b = b.Normalize()

	ids, err := sampleNodeIDs(ctx, q, b, sampleSize)
	if err != nil {
		return 0, fmt.Errorf("sampling node ids: %w", err)
	}

	if len(ids) == 0 {
		return 1, nil // empty table: no fan-out to estimate, assume minimal branching.
	}

	degrees := make([]int, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id

		g.Go(func() error {
			degree, err := nodeDegree(gctx, q, b, id, bidirectional)
			if err != nil {
				return err
			}

			degrees[i] = degree

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total int
	for _, d := range degrees {
		total += d
	}

	avg := float64(total) / float64(len(degrees))
	if avg < 1 {
		avg = 1
	}

	return avg, nil
}

// sampleNodeIDs fetches up to n random existing node ids to seed the
// degree sample.
func sampleNodeIDs(ctx context.Context, q dbconn.Queryer, b sqlbuilder.Binding, n int) ([]any, error) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY random() LIMIT $1",
		sqlbuilder.Quote(b.PKCol), sqlbuilder.Quote(b.NodesTable),
	)

	rows, err := q.Query(ctx, sql, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []any

	for rows.Next() {
		var id any
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// nodeDegree counts edges touching id: out-degree alone, or out+in when
// bidirectional.
func nodeDegree(ctx context.Context, q dbconn.Queryer, b sqlbuilder.Binding, id any, bidirectional bool) (int, error) {
	edgesTable := sqlbuilder.Quote(b.EdgesTable)
	fromCol := sqlbuilder.Quote(b.FromCol)
	toCol := sqlbuilder.Quote(b.ToCol)

	sql := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s = $1", edgesTable, fromCol)
	if bidirectional {
		sql = fmt.Sprintf(
			"SELECT count(*) FROM %s WHERE %s = $1 OR %s = $1",
			edgesTable, fromCol, toCol,
		)
	}

	var count int
	if err := q.QueryRow(ctx, sql, id).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// ShuffleAndTruncate bounds an over-sized slice of candidate node ids to
// max entries via an unbiased shuffle, used by the Frontier Engine to cap
// next-hop frontier width without biasing which nodes carry forward —
// matching the teacher's BFS frontier-truncation strategy.
func ShuffleAndTruncate(ids []any, max int) []any {
	if len(ids) <= max {
		return ids
	}

	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	return ids[:max]
}
