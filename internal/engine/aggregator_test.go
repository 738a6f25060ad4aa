package engine

import "testing"

// diamondRows reproduces spec's worked BOM explosion example:
// R -[qty2]-> A -[qty5]-> X
// R -[qty3]-> B -[qty4]-> X
// X is reached by two independent paths through A and B, so path_aggregate
// must keep their contributions separate until the cross-path combine step.
func diamondRows() []pathRow {
	return []pathRow{
		{node: "A", running: 2, path: []string{"R", "A"}, depth: 1},
		{node: "X", running: 10, path: []string{"R", "A", "X"}, depth: 2},
		{node: "B", running: 3, path: []string{"R", "B"}, depth: 1},
		{node: "X", running: 12, path: []string{"R", "B", "X"}, depth: 2},
	}
}

func TestCombinePathRows_MultiplyDiamond(t *testing.T) {
	got := combinePathRows(diamondRows(), OpMultiply)

	want := map[any]float64{"A": 2, "B": 3, "X": 22}

	for node, wantValue := range want {
		if got[node] != wantValue {
			t.Errorf("combinePathRows(multiply)[%v] = %v, want %v", node, got[node], wantValue)
		}
	}

	if len(got) != len(want) {
		t.Errorf("combinePathRows(multiply) = %v, want exactly %v", got, want)
	}
}

func TestCombinePathRows_SumDiamond(t *testing.T) {
	rows := []pathRow{
		{node: "A", running: 2, path: []string{"R", "A"}, depth: 1},
		{node: "X", running: 7, path: []string{"R", "A", "X"}, depth: 2},
		{node: "B", running: 3, path: []string{"R", "B"}, depth: 1},
		{node: "X", running: 9, path: []string{"R", "B", "X"}, depth: 2},
	}

	got := combinePathRows(rows, OpSum)

	if got["X"] != 16 {
		t.Errorf("combinePathRows(sum)[X] = %v, want 16", got["X"])
	}
}

func TestCombinePathRows_MaxTakesLargestAcrossPaths(t *testing.T) {
	rows := []pathRow{
		{node: "X", running: 10, path: []string{"R", "A", "X"}, depth: 2},
		{node: "X", running: 12, path: []string{"R", "B", "X"}, depth: 2},
	}

	got := combinePathRows(rows, OpMax)

	if got["X"] != 12 {
		t.Errorf("combinePathRows(max)[X] = %v, want 12", got["X"])
	}
}

func TestCombinePathRows_MinTakesSmallestAcrossPaths(t *testing.T) {
	rows := []pathRow{
		{node: "X", running: 10, path: []string{"R", "A", "X"}, depth: 2},
		{node: "X", running: 12, path: []string{"R", "B", "X"}, depth: 2},
	}

	got := combinePathRows(rows, OpMin)

	if got["X"] != 10 {
		t.Errorf("combinePathRows(min)[X] = %v, want 10", got["X"])
	}
}

func TestCombinePathRows_CountTakesShortestPath(t *testing.T) {
	rows := []pathRow{
		{node: "X", running: 3, path: []string{"R", "A", "B", "X"}, depth: 3},
		{node: "X", running: 1, path: []string{"R", "X"}, depth: 1},
	}

	got := combinePathRows(rows, OpCount)

	if got["X"] != 1 {
		t.Errorf("combinePathRows(count)[X] = %v, want 1 (shortest path)", got["X"])
	}
}

func TestSqlOp_MapsEveryOperation(t *testing.T) {
	cases := map[Operation]string{
		OpSum:      "sum",
		OpMultiply: "multiply",
		OpMax:      "max",
		OpMin:      "min",
		OpCount:    "count",
	}

	for op, want := range cases {
		if string(sqlOp(op)) != want {
			t.Errorf("sqlOp(%v) = %v, want %v", op, sqlOp(op), want)
		}
	}
}
