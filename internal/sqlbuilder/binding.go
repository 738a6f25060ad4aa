// Package sqlbuilder constructs parameterized SQL fragments from
// caller-supplied schema identifiers. It is the only package in this module
// allowed to concatenate caller-controlled strings into SQL text, and it
// does so only after every identifier has passed ValidateIdentifier.
package sqlbuilder

import (
	"regexp"
	"strings"

	"github.com/virtgraph/vgcore/internal/vgerrors"
)

// Binding is the schema bundle every handler accepts: the node table, the
// edge table, and the columns that connect them. All fields are subject to
// ValidateIdentifier before use.
type Binding struct {
	NodesTable    string `json:"nodes_table"`
	EdgesTable    string `json:"edges_table"`
	FromCol       string `json:"edge_from_col"`
	ToCol         string `json:"edge_to_col"`
	PKCol         string `json:"node_pk_col,omitempty"`      // defaults to "id" via Normalize
	WeightCol     string `json:"weight_col,omitempty"`       // optional
	SoftDeleteCol string `json:"soft_delete_col,omitempty"`  // optional
	OrderBy       string `json:"order_by,omitempty"`         // optional
}

// Normalize returns a copy of b with PKCol defaulted to "id" when empty.
func (b Binding) Normalize() Binding {
	if b.PKCol == "" {
		b.PKCol = "id"
	}

	return b
}

// Validate checks every non-empty identifier field against the allow-list.
// Optional fields (WeightCol, SoftDeleteCol, OrderBy) are skipped when
// empty; required fields (NodesTable, EdgesTable, FromCol, ToCol, PKCol)
// must be present after Normalize.
func (b Binding) Validate() error {
	b = b.Normalize()

	required := map[string]string{
		"nodes_table":   b.NodesTable,
		"edges_table":   b.EdgesTable,
		"edge_from_col": b.FromCol,
		"edge_to_col":   b.ToCol,
		"node_pk_col":   b.PKCol,
	}

	for field, value := range required {
		if err := ValidateIdentifier(value); err != nil {
			return vgerrors.NewInvalidIdentifier(field, value)
		}
	}

	optional := map[string]string{
		"weight_col":      b.WeightCol,
		"soft_delete_col": b.SoftDeleteCol,
		"order_by":        b.OrderBy,
	}

	for field, value := range optional {
		if value == "" {
			continue
		}

		if err := ValidateIdentifier(value); err != nil {
			return vgerrors.NewInvalidIdentifier(field, value)
		}
	}

	return nil
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reservedWords blocks identifiers that would be ambiguous or dangerous to
// interpolate even though they satisfy the character pattern.
var reservedWords = map[string]bool{
	"select": true, "from": true, "where": true, "table": true,
	"insert": true, "update": true, "delete": true, "drop": true,
	"union": true, "join": true, "grant": true, "revoke": true,
}

// ValidateIdentifier reports whether name is safe to interpolate as a SQL
// identifier: non-empty, matching ^[A-Za-z_][A-Za-z0-9_]*$, and not a
// reserved word. It returns vgerrors.ErrInvalidIdentifier (via
// errors.Is) on failure.
func ValidateIdentifier(name string) error {
	if name == "" {
		return vgerrors.NewInvalidIdentifier("identifier", name)
	}

	if !identifierPattern.MatchString(name) {
		return vgerrors.NewInvalidIdentifier("identifier", name)
	}

	if reservedWords[strings.ToLower(name)] {
		return vgerrors.NewInvalidIdentifier("identifier", name)
	}

	return nil
}

// Quote applies postgres-style double-quote identifier quoting. Callers
// must validate the identifier first; Quote does not re-validate.
func Quote(identifier string) string {
	escaped := strings.ReplaceAll(identifier, `"`, `""`)

	return `"` + escaped + `"`
}
