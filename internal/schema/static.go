package schema

import "fmt"

// ClassDef is one TBox-style class entry: the table/pk/soft-delete shape
// the ontology's class accessors expose.
type ClassDef struct {
	Table         string
	PK            string
	SoftDelete    bool
	SoftDeleteCol string
}

// RoleDef is one RBox-style role entry: the edge table, FK columns, and
// optional weight columns the ontology's role accessors expose.
type RoleDef struct {
	Table         string
	DomainKey     string
	RangeKey      string
	WeightColumns []string
}

// StaticSource is an in-memory Source, for tests and for callers embedding
// schema strings directly rather than reading them from a file.
type StaticSource struct {
	Classes map[string]ClassDef
	Roles   map[string]RoleDef
}

// NewStaticSource returns an empty StaticSource ready to populate.
func NewStaticSource() *StaticSource {
	return &StaticSource{
		Classes: make(map[string]ClassDef),
		Roles:   make(map[string]RoleDef),
	}
}

func (s *StaticSource) class(name string) (ClassDef, error) {
	c, ok := s.Classes[name]
	if !ok {
		return ClassDef{}, fmt.Errorf("schema: unknown class %q", name)
	}

	return c, nil
}

func (s *StaticSource) role(name string) (RoleDef, error) {
	r, ok := s.Roles[name]
	if !ok {
		return RoleDef{}, fmt.Errorf("schema: unknown role %q", name)
	}

	return r, nil
}

// GetRoleTable implements Source.
func (s *StaticSource) GetRoleTable(role string) (string, error) {
	r, err := s.role(role)
	if err != nil {
		return "", err
	}

	return r.Table, nil
}

// GetRoleKeys implements Source.
func (s *StaticSource) GetRoleKeys(role string) (string, string, error) {
	r, err := s.role(role)
	if err != nil {
		return "", "", err
	}

	return r.DomainKey, r.RangeKey, nil
}

// GetRoleWeightColumns implements Source.
func (s *StaticSource) GetRoleWeightColumns(role string) ([]string, error) {
	r, err := s.role(role)
	if err != nil {
		return nil, err
	}

	return r.WeightColumns, nil
}

// GetClassTable implements Source.
func (s *StaticSource) GetClassTable(class string) (string, error) {
	c, err := s.class(class)
	if err != nil {
		return "", err
	}

	return c.Table, nil
}

// GetClassPK implements Source.
func (s *StaticSource) GetClassPK(class string) (string, error) {
	c, err := s.class(class)
	if err != nil {
		return "", err
	}

	return c.PK, nil
}

// GetClassSoftDelete implements Source.
func (s *StaticSource) GetClassSoftDelete(class string) (bool, string, error) {
	c, err := s.class(class)
	if err != nil {
		return false, "", err
	}

	return c.SoftDelete, c.SoftDeleteCol, nil
}
