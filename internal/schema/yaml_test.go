package schema_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/virtgraph/vgcore/internal/schema"
)

func writeTestOntology(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "ontology.yaml")

	content := `
tbox:
  classes:
    Part:
      sql:
        table: parts
        primary_key: id
      soft_delete:
        enabled: true
        column: deleted_at
rbox:
  roles:
    has_component:
      sql:
        table: bill_of_materials
        domain_key: parent_id
        range_key: child_id
        weight_columns: [qty]
`

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing test ontology: %v", err)
	}

	return path
}

func TestYAMLSource_LoadAndResolve(t *testing.T) {
	path := writeTestOntology(t)

	src, err := schema.LoadYAMLSource(path)
	if err != nil {
		t.Fatalf("LoadYAMLSource() = %v, want nil", err)
	}

	b, err := schema.Resolve(src, "has_component", "Part", "Part")
	if err != nil {
		t.Fatalf("Resolve() = %v, want nil", err)
	}

	if b.NodesTable != "parts" || b.EdgesTable != "bill_of_materials" {
		t.Errorf("Resolve() tables = %q/%q", b.NodesTable, b.EdgesTable)
	}

	if b.SoftDeleteCol != "deleted_at" {
		t.Errorf("Resolve() soft delete = %q, want deleted_at", b.SoftDeleteCol)
	}

	if b.WeightCol != "qty" {
		t.Errorf("Resolve() weight col = %q, want qty", b.WeightCol)
	}
}

func TestYAMLSource_UnknownPath(t *testing.T) {
	if _, err := schema.LoadYAMLSource("/nonexistent/path/ontology.yaml"); err == nil {
		t.Fatal("LoadYAMLSource() with bad path = nil, want error")
	}
}
