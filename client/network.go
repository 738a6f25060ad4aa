package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Component is one connected component.
type Component struct {
	Nodes []any `json:"nodes"`
}

// ResilienceResult reports which nodes became unreachable after removing a
// single node from the graph.
type ResilienceResult struct {
	RemovedNode         any   `json:"removed_node"`
	OriginallyReachable []any `json:"originally_reachable"`
	StillReachable      []any `json:"still_reachable"`
	NowUnreachable      []any `json:"now_unreachable"`
}

// NetworkService handles connected-component, centrality, and resilience
// analysis.
type NetworkService struct {
	c *Client
}

func (b SchemaBinding) queryValues() url.Values {
	v := url.Values{}
	v.Set("nodes_table", b.NodesTable)
	v.Set("edges_table", b.EdgesTable)
	v.Set("edge_from_col", b.FromCol)
	v.Set("edge_to_col", b.ToCol)

	if b.PKCol != "" {
		v.Set("node_pk_col", b.PKCol)
	}

	if b.WeightCol != "" {
		v.Set("weight_col", b.WeightCol)
	}

	if b.SoftDeleteCol != "" {
		v.Set("soft_delete_col", b.SoftDeleteCol)
	}

	if b.OrderBy != "" {
		v.Set("order_by", b.OrderBy)
	}

	return v
}

// Components returns the graph's connected components. maxNodes of 0 uses
// the server's configured default.
func (s *NetworkService) Components(ctx context.Context, b SchemaBinding, maxNodes int) ([]Component, error) {
	params := b.queryValues()
	if maxNodes > 0 {
		params.Set("max_nodes", strconv.Itoa(maxNodes))
	}

	var resp struct {
		Components []Component `json:"components"`
	}
	if err := s.c.get(ctx, "/v1/network/components", params, &resp); err != nil {
		return nil, err
	}

	return resp.Components, nil
}

// Centrality returns each node's degree (in-edges plus out-edges).
func (s *NetworkService) Centrality(ctx context.Context, b SchemaBinding, nodeIDs []string) (map[string]int, error) {
	params := b.queryValues()
	params.Set("node_ids", strings.Join(nodeIDs, ","))

	var resp struct {
		Degrees map[string]int `json:"degrees"`
	}
	if err := s.c.get(ctx, "/v1/network/centrality", params, &resp); err != nil {
		return nil, err
	}

	return resp.Degrees, nil
}

// Resilience removes a node and reports which previously-reachable nodes
// became unreachable.
func (s *NetworkService) Resilience(ctx context.Context, b SchemaBinding, removedNode any, maxDepth int) (*ResilienceResult, error) {
	req := struct {
		SchemaBinding
		RemovedNode any `json:"removed_node"`
		MaxDepth    int `json:"max_depth"`
	}{SchemaBinding: b, RemovedNode: removedNode, MaxDepth: maxDepth}

	var resp ResilienceResult
	if err := s.c.post(ctx, "/v1/network/resilience", req, &resp); err != nil {
		return nil, fmt.Errorf("resilience: %w", err)
	}

	return &resp, nil
}
