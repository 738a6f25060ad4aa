// Package schema supplies the engine's one dependency on "the ontology":
// a fixed, minimal interface an external ontology accessor implements, and
// a Resolve function that turns a role/class triple into a
// sqlbuilder.Binding. The engine never parses an ontology file itself —
// per the module's scope, the ontology file format and its parser are an
// external collaborator.
package schema

import "github.com/virtgraph/vgcore/internal/sqlbuilder"

// Binding re-exports sqlbuilder.Binding so callers assembling a schema
// binding by hand only need to import this package.
type Binding = sqlbuilder.Binding

// Source is the ontology collaborator's public surface as the engine
// depends on it: six accessors over a named relationship ("role") and the
// classes at its endpoints. Any component that can answer these six
// questions is an equally valid Source — a YAML-backed accessor, an
// in-memory map, a generated client for some other ontology store.
type Source interface {
	// GetRoleTable returns the edge table backing role.
	GetRoleTable(role string) (string, error)
	// GetRoleKeys returns the (domain_key, range_key) FK column pair for role.
	GetRoleKeys(role string) (domainKey, rangeKey string, err error)
	// GetRoleWeightColumns returns the numeric weight columns declared for
	// role, if any. An empty slice means the role is unweighted.
	GetRoleWeightColumns(role string) ([]string, error)
	// GetClassTable returns the node table backing class.
	GetClassTable(class string) (string, error)
	// GetClassPK returns the primary-key column for class.
	GetClassPK(class string) (string, error)
	// GetClassSoftDelete reports whether class declares a soft-delete
	// column and, if so, its name.
	GetClassSoftDelete(class string) (enabled bool, column string, err error)
}

// Resolve assembles a sqlbuilder.Binding for traversing role from
// domainClass to rangeClass, using src for every lookup. This is the one
// call site where "ontology" becomes "schema strings" — the engine itself
// never calls a Source method directly.
func Resolve(src Source, role, domainClass, rangeClass string) (Binding, error) {
	edgesTable, err := src.GetRoleTable(role)
	if err != nil {
		return Binding{}, err
	}

	fromCol, toCol, err := src.GetRoleKeys(role)
	if err != nil {
		return Binding{}, err
	}

	weightCols, err := src.GetRoleWeightColumns(role)
	if err != nil {
		return Binding{}, err
	}

	nodesTable, err := src.GetClassTable(domainClass)
	if err != nil {
		return Binding{}, err
	}

	pkCol, err := src.GetClassPK(domainClass)
	if err != nil {
		return Binding{}, err
	}

	softDeleteEnabled, softDeleteCol, err := src.GetClassSoftDelete(rangeClass)
	if err != nil {
		return Binding{}, err
	}

	b := Binding{
		NodesTable: nodesTable,
		EdgesTable: edgesTable,
		FromCol:    fromCol,
		ToCol:      toCol,
		PKCol:      pkCol,
	}

	if len(weightCols) > 0 {
		b.WeightCol = weightCols[0]
	}

	if softDeleteEnabled {
		b.SoftDeleteCol = softDeleteCol
	}

	return b, nil
}
