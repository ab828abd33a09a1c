package sqlsketch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogDoc is the YAML document shape for a catalog:
//
//	tables:
//	  - name: orders
//	    columns:
//	      - {name: id, type: bigint, key: primary}
//	      - {name: customer_id, type: bigint, ref: {table: customers, column: id}}
type catalogDoc struct {
	Tables []*Table `yaml:"tables"`
}

// LoadCatalogYAML parses a YAML catalog document.
func LoadCatalogYAML(data []byte) (*Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	catalog := NewCatalog()
	for _, t := range doc.Tables {
		if t.Name == "" {
			return nil, fmt.Errorf("parsing catalog: table with empty name")
		}
		for _, col := range t.Columns {
			if col.Name == "" {
				return nil, fmt.Errorf("parsing catalog: table %s has a column with empty name", t.Name)
			}
			if col.Ref != nil && col.Key == KeyNone {
				col.Key = KeyForeign
			}
		}
		catalog.AddTable(t)
	}
	return catalog, nil
}

// LoadCatalogFile reads and parses a YAML catalog file.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return LoadCatalogYAML(data)
}
