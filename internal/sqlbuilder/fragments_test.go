package sqlbuilder_test

import (
	"strings"
	"testing"

	"github.com/virtgraph/vgcore/internal/sqlbuilder"
)

func testBinding() sqlbuilder.Binding {
	return sqlbuilder.Binding{
		NodesTable: "parts",
		EdgesTable: "bill_of_materials",
		FromCol:    "parent_id",
		ToCol:      "child_id",
		WeightCol:  "qty",
	}
}

func TestBuildFrontierEdgesSQL_Outbound(t *testing.T) {
	b := testBinding()
	frontier := []any{"R"}

	sql, args := sqlbuilder.BuildFrontierEdgesSQL(b, sqlbuilder.Outbound, frontier, nil)

	if !strings.Contains(sql, `"parent_id" = ANY($1)`) {
		t.Errorf("outbound SQL missing frontier predicate on parent_id: %s", sql)
	}

	if !strings.Contains(sql, `ORDER BY e."parent_id", e."child_id"`) {
		t.Errorf("SQL missing deterministic ORDER BY: %s", sql)
	}

	if len(args) != 1 {
		t.Fatalf("args = %v, want 1 element (frontier)", args)
	}
}

func TestBuildFrontierEdgesSQL_Inbound(t *testing.T) {
	b := testBinding()

	sql, _ := sqlbuilder.BuildFrontierEdgesSQL(b, sqlbuilder.Inbound, []any{"X"}, nil)

	if !strings.Contains(sql, `"child_id" = ANY($1)`) {
		t.Errorf("inbound SQL missing frontier predicate on child_id: %s", sql)
	}
}

func TestBuildFrontierEdgesSQL_ExcludedNodes(t *testing.T) {
	b := testBinding()

	sql, args := sqlbuilder.BuildFrontierEdgesSQL(b, sqlbuilder.Outbound, []any{"R"}, []any{"B"})

	if !strings.Contains(sql, "!= ALL($2)") {
		t.Errorf("SQL missing exclusion predicate: %s", sql)
	}

	if len(args) != 2 {
		t.Fatalf("args = %v, want 2 elements", args)
	}
}

func TestBuildFrontierEdgesSQL_SoftDeleteJoin(t *testing.T) {
	b := testBinding()
	b.SoftDeleteCol = "deleted_at"

	sql, _ := sqlbuilder.BuildFrontierEdgesSQL(b, sqlbuilder.Outbound, []any{"R"}, nil)

	if !strings.Contains(sql, `JOIN "parts" n ON n."id" = e."child_id" AND n."deleted_at" IS NULL`) {
		t.Errorf("SQL missing soft-delete join: %s", sql)
	}
}

func TestBuildFrontierEdgesSQL_WeightColumnIncluded(t *testing.T) {
	b := testBinding()

	sql, _ := sqlbuilder.BuildFrontierEdgesSQL(b, sqlbuilder.Outbound, []any{"R"}, nil)

	if !strings.Contains(sql, `e."qty"`) {
		t.Errorf("SQL missing weight column selection: %s", sql)
	}
}

func TestBuildNodeHydrationSQL(t *testing.T) {
	b := testBinding()

	sql, args := sqlbuilder.BuildNodeHydrationSQL(b, []any{"A", "B"})

	if !strings.Contains(sql, `FROM "parts" WHERE "id" = ANY($1)`) {
		t.Errorf("SQL missing hydration predicate: %s", sql)
	}

	if len(args) != 1 {
		t.Fatalf("args = %v, want 1 element", args)
	}
}

func TestBuildNodeHydrationSQL_OrderByOverride(t *testing.T) {
	b := testBinding()
	b.OrderBy = "sort_key"

	sql, _ := sqlbuilder.BuildNodeHydrationSQL(b, []any{"A"})

	if !strings.Contains(sql, `ORDER BY "sort_key"`) {
		t.Errorf("SQL should order by sort_key: %s", sql)
	}
}

func TestBuildWeightedPathSQL(t *testing.T) {
	b := testBinding()

	sql, args := sqlbuilder.BuildWeightedPathSQL(b, "A", 50, 10000, nil)

	if !strings.Contains(sql, "WITH RECURSIVE path_search") {
		t.Errorf("SQL missing recursive CTE: %s", sql)
	}

	if !strings.Contains(sql, "ORDER BY cum_weight ASC") {
		t.Errorf("SQL should order by cumulative weight: %s", sql)
	}

	if args[0] != "A" || args[1] != 50 || args[2] != 10000 {
		t.Errorf("args = %v, want [A 50 10000]", args)
	}
}

func TestBuildWeightedPathSQL_ExcludedNodes(t *testing.T) {
	b := testBinding()

	sql, args := sqlbuilder.BuildWeightedPathSQL(b, "A", 50, 10000, []any{"B"})

	if !strings.Contains(sql, "!= ALL($4)") {
		t.Errorf("SQL missing exclusion clause: %s", sql)
	}

	if len(args) != 4 {
		t.Fatalf("args = %v, want 4 elements", args)
	}
}

func TestBuildAllPathsAtDistanceSQL(t *testing.T) {
	b := testBinding()

	sql, args := sqlbuilder.BuildAllPathsAtDistanceSQL(b, "A", 2, 100, nil, false)

	if !strings.Contains(sql, "WITH RECURSIVE path_enum") {
		t.Errorf("SQL missing recursive CTE: %s", sql)
	}

	if !strings.Contains(sql, "WHERE depth = $2") {
		t.Errorf("SQL should filter on exact target distance: %s", sql)
	}

	if args[1] != 2 || args[2] != 100 {
		t.Errorf("args = %v, want distance=2 maxPaths=100", args)
	}
}

func TestBuildAllPathsAtDistanceSQL_BothDirectionsUnionsReverseEdges(t *testing.T) {
	b := testBinding()

	sql, _ := sqlbuilder.BuildAllPathsAtDistanceSQL(b, "A", 2, 100, nil, true)

	if !strings.Contains(sql, "UNION ALL") {
		t.Errorf("both-direction SQL should union the reverse edge scan: %s", sql)
	}
}

func TestBuildPathAggregateSQL(t *testing.T) {
	b := testBinding()

	sql, args := sqlbuilder.BuildPathAggregateSQL(b, "qty", "R", 3, 100000, sqlbuilder.AggMultiply)

	if !strings.Contains(sql, "WITH RECURSIVE path_agg") {
		t.Errorf("SQL missing recursive CTE: %s", sql)
	}

	if !strings.Contains(sql, "NOT e.\"child_id\" = ANY(pa.path)") {
		t.Errorf("SQL must dedup on path prefix, not terminal node: %s", sql)
	}

	if !strings.Contains(sql, "pa.running * e.\"qty\"") {
		t.Errorf("multiply op must accumulate a running product: %s", sql)
	}

	if args[0] != "R" || args[1] != 3 || args[2] != 100000 {
		t.Errorf("args = %v, want [R 3 100000]", args)
	}
}

func TestBuildPathAggregateSQL_SumAccumulates(t *testing.T) {
	b := testBinding()

	sql, _ := sqlbuilder.BuildPathAggregateSQL(b, "qty", "R", 3, 100000, sqlbuilder.AggSum)

	if !strings.Contains(sql, "pa.running + e.\"qty\"") {
		t.Errorf("sum op must accumulate a running total: %s", sql)
	}
}

func TestBuildPathAggregateSQL_CountIgnoresValueColumn(t *testing.T) {
	b := testBinding()

	sql, _ := sqlbuilder.BuildPathAggregateSQL(b, "qty", "R", 3, 100000, sqlbuilder.AggCount)

	if !strings.Contains(sql, "pa.running + 1") {
		t.Errorf("count op must increment per hop regardless of value column: %s", sql)
	}
}

func TestBuildDegreeCentralitySQL_NoSoftDelete(t *testing.T) {
	b := testBinding()

	sql, args := sqlbuilder.BuildDegreeCentralitySQL(b, []any{"R", "X"})

	if strings.Contains(sql, "JOIN") {
		t.Errorf("SQL without a soft-delete column should not join the node table: %s", sql)
	}

	if len(args) != 1 {
		t.Fatalf("args = %v, want 1 element (node ids)", args)
	}
}

func TestBuildDegreeCentralitySQL_SoftDeleteExcludesDeletedEndpoint(t *testing.T) {
	b := testBinding()
	b.SoftDeleteCol = "deleted_at"

	sql, _ := sqlbuilder.BuildDegreeCentralitySQL(b, []any{"R"})

	if !strings.Contains(sql, `nf."deleted_at" IS NULL`) || !strings.Contains(sql, `nt."deleted_at" IS NULL`) {
		t.Errorf("SQL must exclude edges whose from- or to-endpoint is soft-deleted: %s", sql)
	}
}
