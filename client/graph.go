package client

import "context"

// SchemaBinding names the tables and columns a query runs over. It mirrors
// the server's schema binding exactly — every operation is schema-agnostic,
// so the caller supplies it on every request.
type SchemaBinding struct {
	NodesTable    string `json:"nodes_table"`
	EdgesTable    string `json:"edges_table"`
	FromCol       string `json:"edge_from_col"`
	ToCol         string `json:"edge_to_col"`
	PKCol         string `json:"node_pk_col,omitempty"`
	WeightCol     string `json:"weight_col,omitempty"`
	SoftDeleteCol string `json:"soft_delete_col,omitempty"`
	OrderBy       string `json:"order_by,omitempty"`
}

// NodeRow is a hydrated node: its primary key plus arbitrary payload columns.
type NodeRow struct {
	ID      any            `json:"id"`
	Columns map[string]any `json:"columns"`
}

// Edge is a directed edge observed during traversal.
type Edge struct {
	From   any      `json:"from"`
	To     any      `json:"to"`
	Weight *float64 `json:"weight,omitempty"`
}

// TraverseResult is the bounded-traversal endpoint's response.
type TraverseResult struct {
	Nodes        []NodeRow     `json:"nodes"`
	Paths        map[any][]any `json:"paths"`
	Edges        []Edge        `json:"edges"`
	DepthReached int           `json:"depth_reached"`
	NodesVisited int           `json:"nodes_visited"`
	TerminatedAt string        `json:"terminated_at"`
}

// CollectResult is the predicate-collecting endpoint's response.
type CollectResult struct {
	MatchingNodes  []NodeRow     `json:"matching_nodes"`
	MatchingPaths  map[any][]any `json:"matching_paths"`
	TotalTraversed int           `json:"total_traversed"`
	DepthReached   int           `json:"depth_reached"`
	TerminatedAt   string        `json:"terminated_at"`
}

// ShortestPathResult is the shortest-path endpoint's response.
type ShortestPathResult struct {
	Path          []any     `json:"path"`
	PathNodes     []NodeRow `json:"path_nodes"`
	Distance      *float64  `json:"distance"`
	Edges         []Edge    `json:"edges"`
	NodesExplored int       `json:"nodes_explored"`
	ExcludedNodes []any     `json:"excluded_nodes"`
	Error         string    `json:"error,omitempty"`
}

// AllShortestPathsResult is the all-shortest-paths endpoint's response.
type AllShortestPathsResult struct {
	Paths         [][]any  `json:"paths"`
	Distance      *float64 `json:"distance"`
	PathCount     int      `json:"path_count"`
	NodesExplored int      `json:"nodes_explored"`
	ExcludedNodes []any    `json:"excluded_nodes"`
	Error         string   `json:"error,omitempty"`
}

// PathAggregateResult is the path-aggregate endpoint's response.
type PathAggregateResult struct {
	Nodes            []NodeRow       `json:"nodes"`
	AggregatedValues map[any]float64 `json:"aggregated_values"`
	Operation        string          `json:"operation"`
	ValueColumn      string          `json:"value_column"`
	MaxDepth         int             `json:"max_depth"`
	NodesVisited     int             `json:"nodes_visited"`
}

// TraverseService handles bounded-traversal operations.
type TraverseService struct {
	c *Client
}

// TraverseRequest is the request body for Traverse.
type TraverseRequest struct {
	SchemaBinding
	StartIDs       []any  `json:"start_ids"`
	Direction      string `json:"direction"`
	MaxDepth       int    `json:"max_depth"`
	ExcludedNodes  []any  `json:"excluded_nodes,omitempty"`
	SkipEstimation bool   `json:"skip_estimation,omitempty"`
}

// Traverse performs a bounded BFS from StartIDs.
func (s *TraverseService) Traverse(ctx context.Context, req TraverseRequest) (*TraverseResult, error) {
	var resp TraverseResult
	if err := s.c.post(ctx, "/v1/traverse", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// CollectRequest is the request body for Collect.
type CollectRequest struct {
	TraverseRequest
	TargetCondition string `json:"target_condition"`
}

// Collect performs a bounded BFS, returning only nodes matching
// TargetCondition.
func (s *TraverseService) Collect(ctx context.Context, req CollectRequest) (*CollectResult, error) {
	var resp CollectResult
	if err := s.c.post(ctx, "/v1/traverse/collect", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// GraphService handles pathfinding and aggregation operations.
type GraphService struct {
	c *Client
}

// ShortestPathRequest is the request body for ShortestPath and
// AllShortestPaths.
type ShortestPathRequest struct {
	SchemaBinding
	Start         any   `json:"start"`
	End           any   `json:"end"`
	ExcludedNodes []any `json:"excluded_nodes,omitempty"`
}

// ShortestPath finds the shortest path between Start and End.
func (s *GraphService) ShortestPath(ctx context.Context, req ShortestPathRequest) (*ShortestPathResult, error) {
	var resp ShortestPathResult
	if err := s.c.post(ctx, "/v1/shortest-path", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// AllShortestPathsRequest is the request body for AllShortestPaths.
type AllShortestPathsRequest struct {
	ShortestPathRequest
	MaxPaths int `json:"max_paths,omitempty"`
}

// AllShortestPaths enumerates every shortest path between Start and End.
func (s *GraphService) AllShortestPaths(ctx context.Context, req AllShortestPathsRequest) (*AllShortestPathsResult, error) {
	var resp AllShortestPathsResult
	if err := s.c.post(ctx, "/v1/shortest-path/all", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// PathAggregateRequest is the request body for PathAggregate.
type PathAggregateRequest struct {
	SchemaBinding
	Start     any    `json:"start"`
	ValueCol  string `json:"value_col"`
	Operation string `json:"operation"`
	MaxDepth  int    `json:"max_depth"`
}

// PathAggregate aggregates ValueCol across every path from Start.
func (s *GraphService) PathAggregate(ctx context.Context, req PathAggregateRequest) (*PathAggregateResult, error) {
	var resp PathAggregateResult
	if err := s.c.post(ctx, "/v1/path-aggregate", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
