package sqlsketch

import "strings"

// KeyRole marks a column's key participation in its table.
type KeyRole string

const (
	KeyNone    KeyRole = ""
	KeyPrimary KeyRole = "primary"
	KeyForeign KeyRole = "foreign"
)

// ForeignKey is a reference from one column to a column in another table.
type ForeignKey struct {
	Table  string `yaml:"table" json:"table"`
	Column string `yaml:"column" json:"column"`
}

// Column describes one column of a catalog table.
type Column struct {
	Name     string      `yaml:"name" json:"name"`
	DataType string      `yaml:"type" json:"type"`
	Nullable bool        `yaml:"nullable" json:"nullable"`
	Key      KeyRole     `yaml:"key,omitempty" json:"key,omitempty"`
	Ref      *ForeignKey `yaml:"ref,omitempty" json:"ref,omitempty"`
}

// Table describes one catalog table with its ordered columns.
type Table struct {
	Name    string    `yaml:"name" json:"name"`
	Columns []*Column `yaml:"columns" json:"columns"`
}

// Catalog is the read-only schema the model, suggestion engine, and
// decompiler resolve against. Lookups are case-insensitive.
type Catalog struct {
	Tables []*Table

	byName map[string]*Table
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*Table)}
}

// NewTable creates a table with no columns.
func NewTable(name string) *Table {
	return &Table{Name: name}
}

// NewColumn creates a column with a name and data type.
func NewColumn(name, dataType string) *Column {
	return &Column{Name: name, DataType: dataType}
}

// PrimaryKey marks the column as (part of) the table's primary key.
func (c *Column) PrimaryKey() *Column {
	c.Key = KeyPrimary
	return c
}

// NotNull marks the column as non-nullable.
func (c *Column) NotNull() *Column {
	c.Nullable = false
	return c
}

// Null marks the column as nullable.
func (c *Column) Null() *Column {
	c.Nullable = true
	return c
}

// References marks the column as a foreign key to table.column.
func (c *Column) References(table, column string) *Column {
	c.Key = KeyForeign
	c.Ref = &ForeignKey{Table: table, Column: column}
	return c
}

// AddColumn appends a column, preserving declaration order.
func (t *Table) AddColumn(c *Column) *Table {
	t.Columns = append(t.Columns, c)
	return t
}

// Column resolves a column by name, case-insensitively.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return nil, false
}

// SinglePrimaryKey returns the primary key column when the table has exactly
// one; composite or missing keys return nil.
func (t *Table) SinglePrimaryKey() *Column {
	var pk *Column
	for _, c := range t.Columns {
		if c.Key == KeyPrimary {
			if pk != nil {
				return nil
			}
			pk = c
		}
	}
	return pk
}

// ColumnNames returns the ordered column names.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// AddTable registers a table in the catalog. A table with the same
// case-insensitive name replaces the previous entry.
func (c *Catalog) AddTable(t *Table) *Catalog {
	if c.byName == nil {
		c.byName = make(map[string]*Table)
	}
	key := strings.ToLower(t.Name)
	if prev, ok := c.byName[key]; ok {
		for i, existing := range c.Tables {
			if existing == prev {
				c.Tables[i] = t
				break
			}
		}
	} else {
		c.Tables = append(c.Tables, t)
	}
	c.byName[key] = t
	return c
}

// Table resolves a table by name, case-insensitively.
func (c *Catalog) Table(name string) (*Table, bool) {
	if c == nil || c.byName == nil {
		return nil, false
	}
	t, ok := c.byName[strings.ToLower(name)]
	return t, ok
}

// ColumnNames returns the ordered column names for a table, or nil when the
// table is not in the catalog.
func (c *Catalog) ColumnNames(table string) []string {
	t, ok := c.Table(table)
	if !ok {
		return nil
	}
	return t.ColumnNames()
}
