package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlDocument mirrors the flat shape this module reads from an ontology
// file: a tbox.classes map and an rbox.roles map, named after the
// TBox/RBox terminology the original ontology accessor uses. This is
// deliberately a subset of that accessor's full schema (row counts,
// OWL properties, cardinality) — only the six fields Source exposes.
type yamlDocument struct {
	TBox struct {
		Classes map[string]yamlClass `yaml:"classes"`
	} `yaml:"tbox"`
	RBox struct {
		Roles map[string]yamlRole `yaml:"roles"`
	} `yaml:"rbox"`
}

type yamlClass struct {
	SQL struct {
		Table      string `yaml:"table"`
		PrimaryKey string `yaml:"primary_key"`
	} `yaml:"sql"`
	SoftDelete struct {
		Enabled bool   `yaml:"enabled"`
		Column  string `yaml:"column"`
	} `yaml:"soft_delete"`
}

type yamlRole struct {
	SQL struct {
		Table         string   `yaml:"table"`
		DomainKey     string   `yaml:"domain_key"`
		RangeKey      string   `yaml:"range_key"`
		WeightColumns []string `yaml:"weight_columns"`
	} `yaml:"sql"`
}

// YAMLSource reads schema bindings from a flat YAML document shaped like
// the TBox/RBox ontology file's classes/roles sections. It is not a
// reimplementation of the ontology's full YAML schema — only the fields
// Source's six methods need.
type YAMLSource struct {
	doc yamlDocument
}

// LoadYAMLSource parses path into a YAMLSource.
func LoadYAMLSource(path string) (*YAMLSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ontology file %s: %w", path, err)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing ontology file %s: %w", path, err)
	}

	return &YAMLSource{doc: doc}, nil
}

func (y *YAMLSource) class(name string) (yamlClass, error) {
	c, ok := y.doc.TBox.Classes[name]
	if !ok {
		return yamlClass{}, fmt.Errorf("schema: unknown class %q", name)
	}

	return c, nil
}

func (y *YAMLSource) role(name string) (yamlRole, error) {
	r, ok := y.doc.RBox.Roles[name]
	if !ok {
		return yamlRole{}, fmt.Errorf("schema: unknown role %q", name)
	}

	return r, nil
}

// GetRoleTable implements Source.
func (y *YAMLSource) GetRoleTable(role string) (string, error) {
	r, err := y.role(role)
	if err != nil {
		return "", err
	}

	return r.SQL.Table, nil
}

// GetRoleKeys implements Source.
func (y *YAMLSource) GetRoleKeys(role string) (string, string, error) {
	r, err := y.role(role)
	if err != nil {
		return "", "", err
	}

	return r.SQL.DomainKey, r.SQL.RangeKey, nil
}

// GetRoleWeightColumns implements Source.
func (y *YAMLSource) GetRoleWeightColumns(role string) ([]string, error) {
	r, err := y.role(role)
	if err != nil {
		return nil, err
	}

	return r.SQL.WeightColumns, nil
}

// GetClassTable implements Source.
func (y *YAMLSource) GetClassTable(class string) (string, error) {
	c, err := y.class(class)
	if err != nil {
		return "", err
	}

	return c.SQL.Table, nil
}

// GetClassPK implements Source.
func (y *YAMLSource) GetClassPK(class string) (string, error) {
	c, err := y.class(class)
	if err != nil {
		return "", err
	}

	return c.SQL.PrimaryKey, nil
}

// GetClassSoftDelete implements Source.
func (y *YAMLSource) GetClassSoftDelete(class string) (bool, string, error) {
	c, err := y.class(class)
	if err != nil {
		return false, "", err
	}

	return c.SoftDelete.Enabled, c.SoftDelete.Column, nil
}
