package sqlsketch

import (
	"fmt"

	"github.com/zoobzio/dbml"
)

// NewFromDBML builds a catalog from a DBML project. Column names and data
// types carry over directly; key roles and references are layered on
// afterwards with PrimaryKey and References, since DBML projects built
// programmatically often carry names and types only.
func NewFromDBML(project *dbml.Project) (*Catalog, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	catalog := NewCatalog()
	for _, table := range project.Tables {
		t := NewTable(table.Name)
		for _, col := range table.Columns {
			t.AddColumn(NewColumn(col.Name, col.Type))
		}
		catalog.AddTable(t)
	}
	return catalog, nil
}
