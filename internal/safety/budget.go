package safety

import "github.com/virtgraph/vgcore/internal/vgerrors"

// Budget tracks the distinct nodes entered into a single handler call's
// visited map. It is not safe for concurrent use; each handler call owns
// one Budget, matching the connection-exclusivity rule of the
// concurrency model.
type Budget struct {
	limit   int
	entered int
}

// NewBudget returns a Budget capped at maxNodes.
func NewBudget(maxNodes int) *Budget {
	return &Budget{limit: maxNodes}
}

// Enter records one more node entering the visited map. It returns
// vgerrors.ErrSafetyLimitExceeded once the next entry would exceed the
// configured MaxNodes, without incrementing the counter.
func (b *Budget) Enter() error {
	if b.entered >= b.limit {
		return vgerrors.NewSafetyLimit("max_nodes", b.entered+1, b.limit)
	}

	b.entered++

	return nil
}

// Count returns the number of nodes entered so far.
func (b *Budget) Count() int {
	return b.entered
}

// Remaining returns how many more nodes can be entered before the budget
// is exhausted.
func (b *Budget) Remaining() int {
	remaining := b.limit - b.entered
	if remaining < 0 {
		return 0
	}

	return remaining
}
