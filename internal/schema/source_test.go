package schema_test

import (
	"testing"

	"github.com/virtgraph/vgcore/internal/schema"
)

func bomSource() *schema.StaticSource {
	src := schema.NewStaticSource()

	src.Classes["Part"] = schema.ClassDef{
		Table: "parts",
		PK:    "id",
	}

	src.Roles["has_component"] = schema.RoleDef{
		Table:         "bill_of_materials",
		DomainKey:     "parent_id",
		RangeKey:      "child_id",
		WeightColumns: []string{"qty"},
	}

	return src
}

func TestResolve_AssemblesBinding(t *testing.T) {
	src := bomSource()

	b, err := schema.Resolve(src, "has_component", "Part", "Part")
	if err != nil {
		t.Fatalf("Resolve() = %v, want nil", err)
	}

	if b.NodesTable != "parts" || b.EdgesTable != "bill_of_materials" {
		t.Errorf("Resolve() tables = %q/%q, want parts/bill_of_materials", b.NodesTable, b.EdgesTable)
	}

	if b.FromCol != "parent_id" || b.ToCol != "child_id" {
		t.Errorf("Resolve() cols = %q/%q, want parent_id/child_id", b.FromCol, b.ToCol)
	}

	if b.WeightCol != "qty" {
		t.Errorf("Resolve() weight col = %q, want qty", b.WeightCol)
	}

	if b.SoftDeleteCol != "" {
		t.Errorf("Resolve() soft delete col = %q, want empty", b.SoftDeleteCol)
	}
}

func TestResolve_SoftDelete(t *testing.T) {
	src := bomSource()
	src.Classes["Part"] = schema.ClassDef{
		Table:         "parts",
		PK:            "id",
		SoftDelete:    true,
		SoftDeleteCol: "deleted_at",
	}

	b, err := schema.Resolve(src, "has_component", "Part", "Part")
	if err != nil {
		t.Fatalf("Resolve() = %v, want nil", err)
	}

	if b.SoftDeleteCol != "deleted_at" {
		t.Errorf("Resolve() soft delete col = %q, want deleted_at", b.SoftDeleteCol)
	}
}

func TestResolve_UnknownRole(t *testing.T) {
	src := bomSource()

	if _, err := schema.Resolve(src, "nonexistent_role", "Part", "Part"); err == nil {
		t.Fatal("Resolve() with unknown role = nil, want error")
	}
}

func TestResolve_UnknownClass(t *testing.T) {
	src := bomSource()

	if _, err := schema.Resolve(src, "has_component", "Nonexistent", "Part"); err == nil {
		t.Fatal("Resolve() with unknown class = nil, want error")
	}
}
