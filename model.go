package sqlsketch

import (
	"fmt"
	"strings"
)

// QueryModel is the mutable in-memory representation of one SELECT query:
// table references, per-table column selections, joins, a flat condition
// chain, grouping, ordering, and pagination.
//
// Every mutator validates first and only then mutates, so a returned error
// always means the model is unchanged. Removing a table cascades to every
// join, condition, order, and group entry that referenced its key.
//
// A QueryModel is single-owner state: callers on multiple goroutines must
// serialize access externally.
type QueryModel struct {
	catalog *Catalog

	tables     []TableRef
	columns    map[string][]string
	joins      []JoinSpec
	conditions []ConditionSpec
	groupBy    []string
	orderBy    []OrderSpec
	limit      *int
	offset     *int

	nextOrdinal int
}

// NewQueryModel creates an empty model resolving against catalog. A nil
// catalog is allowed; tables then start with no pre-selected columns.
func NewQueryModel(catalog *Catalog) *QueryModel {
	return &QueryModel{
		catalog: catalog,
		columns: make(map[string][]string),
	}
}

// Catalog returns the schema catalog the model resolves against.
func (m *QueryModel) Catalog() *Catalog { return m.catalog }

// Tables returns the table references in insertion order.
func (m *QueryModel) Tables() []TableRef {
	out := make([]TableRef, len(m.tables))
	copy(out, m.tables)
	return out
}

// SelectedColumns returns the ordered column selection for a table key. An
// empty (non-nil) slice is the explicit "select everything" state that
// compiles to key.*.
func (m *QueryModel) SelectedColumns(key string) ([]string, bool) {
	sel, ok := m.columns[key]
	if !ok {
		return nil, false
	}
	out := make([]string, len(sel))
	copy(out, sel)
	return out, true
}

// Joins returns the join specs in insertion order.
func (m *QueryModel) Joins() []JoinSpec {
	out := make([]JoinSpec, len(m.joins))
	copy(out, m.joins)
	return out
}

// Conditions returns the condition chain in insertion order.
func (m *QueryModel) Conditions() []ConditionSpec {
	out := make([]ConditionSpec, len(m.conditions))
	copy(out, m.conditions)
	return out
}

// GroupBy returns the grouping columns in insertion order.
func (m *QueryModel) GroupBy() []string {
	out := make([]string, len(m.groupBy))
	copy(out, m.groupBy)
	return out
}

// OrderBy returns the ordering entries in insertion order.
func (m *QueryModel) OrderBy() []OrderSpec {
	out := make([]OrderSpec, len(m.orderBy))
	copy(out, m.orderBy)
	return out
}

// Limit returns the row limit, if set.
func (m *QueryModel) Limit() (int, bool) {
	if m.limit == nil {
		return 0, false
	}
	return *m.limit, true
}

// Offset returns the row offset, if set.
func (m *QueryModel) Offset() (int, bool) {
	if m.offset == nil {
		return 0, false
	}
	return *m.offset, true
}

// refIndex resolves a table key to its position in the table list.
func (m *QueryModel) refIndex(key string) (int, bool) {
	for i, t := range m.tables {
		if t.Key() == key {
			return i, true
		}
	}
	return -1, false
}

func (m *QueryModel) hasKey(key string) bool {
	_, ok := m.refIndex(key)
	return ok
}

// AddTable adds a table to the model. When the name is already present and
// forceSelfJoin is false it fails with ErrDuplicateTable; the caller decides
// whether to retry with forceSelfJoin, which always succeeds and assigns a
// disambiguating alias of the form name_<n>.
//
// Every column of the table known to the catalog is pre-selected.
func (m *QueryModel) AddTable(name string, forceSelfJoin bool) (TableRef, error) {
	if name == "" {
		return TableRef{}, fmt.Errorf("add table: %w", ErrEmptyIdentifier)
	}

	prior := 0
	for _, t := range m.tables {
		if t.Name == name {
			prior++
		}
	}
	if !forceSelfJoin && (prior > 0 || m.hasKey(name)) {
		return TableRef{}, fmt.Errorf("add table %s: %w", name, ErrDuplicateTable)
	}

	alias := ""
	if prior > 0 || m.hasKey(name) {
		n := prior + 1
		alias = fmt.Sprintf("%s_%d", name, n)
		for m.hasKey(alias) {
			n++
			alias = fmt.Sprintf("%s_%d", name, n)
		}
	}

	ref := TableRef{Name: name, Alias: alias, Ordinal: m.nextOrdinal}
	m.nextOrdinal++
	m.tables = append(m.tables, ref)
	m.columns[ref.Key()] = append([]string(nil), m.catalog.ColumnNames(name)...)
	return ref, nil
}

// RemoveTable removes the table with the given key and cascades: its column
// selection, any join touching the key, and any condition, order, or group
// entry qualified with the key are dropped with it.
func (m *QueryModel) RemoveTable(key string) error {
	idx, ok := m.refIndex(key)
	if !ok {
		return fmt.Errorf("remove table %s: %w", key, ErrUnknownTable)
	}

	m.tables = append(m.tables[:idx], m.tables[idx+1:]...)
	delete(m.columns, key)

	joins := m.joins[:0]
	for _, j := range m.joins {
		if j.LeftTable != key && j.RightTable != key {
			joins = append(joins, j)
		}
	}
	m.joins = joins

	prefix := key + "."
	conds := m.conditions[:0]
	for _, c := range m.conditions {
		if !strings.HasPrefix(c.Column, prefix) {
			conds = append(conds, c)
		}
	}
	m.conditions = conds

	orders := m.orderBy[:0]
	for _, o := range m.orderBy {
		if !strings.HasPrefix(o.Column, prefix) {
			orders = append(orders, o)
		}
	}
	m.orderBy = orders

	groups := m.groupBy[:0]
	for _, g := range m.groupBy {
		if !strings.HasPrefix(g, prefix) {
			groups = append(groups, g)
		}
	}
	m.groupBy = groups

	return nil
}

// SetAlias renames a table's alias and atomically rewrites every reference to
// the old key: the selection map, join sides, and key-qualified prefixes in
// conditions, ordering, and grouping. An empty alias reverts the key to the
// underlying table name. Fails with ErrAliasCollision when the new key is
// already taken.
func (m *QueryModel) SetAlias(key, alias string) error {
	idx, ok := m.refIndex(key)
	if !ok {
		return fmt.Errorf("set alias on %s: %w", key, ErrUnknownTable)
	}

	newKey := alias
	if newKey == "" {
		newKey = m.tables[idx].Name
	}
	if newKey != key {
		if m.hasKey(newKey) {
			return fmt.Errorf("set alias %s: %w", newKey, ErrAliasCollision)
		}
	}

	m.tables[idx].Alias = alias
	if newKey == key {
		return nil
	}

	m.columns[newKey] = m.columns[key]
	delete(m.columns, key)

	for i := range m.joins {
		if m.joins[i].LeftTable == key {
			m.joins[i].LeftTable = newKey
		}
		if m.joins[i].RightTable == key {
			m.joins[i].RightTable = newKey
		}
	}

	oldPrefix, newPrefix := key+".", newKey+"."
	for i := range m.conditions {
		if strings.HasPrefix(m.conditions[i].Column, oldPrefix) {
			m.conditions[i].Column = newPrefix + m.conditions[i].Column[len(oldPrefix):]
		}
	}
	for i := range m.orderBy {
		if strings.HasPrefix(m.orderBy[i].Column, oldPrefix) {
			m.orderBy[i].Column = newPrefix + m.orderBy[i].Column[len(oldPrefix):]
		}
	}
	for i := range m.groupBy {
		if strings.HasPrefix(m.groupBy[i], oldPrefix) {
			m.groupBy[i] = newPrefix + m.groupBy[i][len(oldPrefix):]
		}
	}

	return nil
}

// ToggleColumn adds the column to the table's selection if absent, removes it
// if present. Selection order is append order.
func (m *QueryModel) ToggleColumn(key, column string) error {
	if column == "" {
		return fmt.Errorf("toggle column: %w", ErrEmptyIdentifier)
	}
	if !m.hasKey(key) {
		return fmt.Errorf("toggle column on %s: %w", key, ErrUnknownTable)
	}

	sel := m.columns[key]
	for i, c := range sel {
		if c == column {
			m.columns[key] = append(sel[:i], sel[i+1:]...)
			return nil
		}
	}
	m.columns[key] = append(sel, column)
	return nil
}

// SelectAll resets the table's selection to the full catalog column list.
func (m *QueryModel) SelectAll(key string) error {
	idx, ok := m.refIndex(key)
	if !ok {
		return fmt.Errorf("select all on %s: %w", key, ErrUnknownTable)
	}
	m.columns[key] = append([]string(nil), m.catalog.ColumnNames(m.tables[idx].Name)...)
	return nil
}

// SelectNone clears the table's selection to the explicit-empty state, which
// compiles to key.*.
func (m *QueryModel) SelectNone(key string) error {
	if !m.hasKey(key) {
		return fmt.Errorf("select none on %s: %w", key, ErrUnknownTable)
	}
	m.columns[key] = []string{}
	return nil
}

// AddJoin appends a join. Both table keys must resolve to tables currently in
// the model; an unset type defaults to INNER JOIN. Joins with empty columns
// are accepted and skipped by the compiler until both sides are filled in.
func (m *QueryModel) AddJoin(spec JoinSpec) error {
	if spec.Type == "" {
		spec.Type = InnerJoin
	}
	switch spec.Type {
	case InnerJoin, LeftJoin, RightJoin:
	default:
		return fmt.Errorf("add join: %q: %w", spec.Type, ErrUnknownJoinType)
	}
	if !m.hasKey(spec.LeftTable) {
		return fmt.Errorf("add join: left %s: %w", spec.LeftTable, ErrUnknownTable)
	}
	if !m.hasKey(spec.RightTable) {
		return fmt.Errorf("add join: right %s: %w", spec.RightTable, ErrUnknownTable)
	}
	m.joins = append(m.joins, spec)
	return nil
}

// RemoveJoin deletes the join at index i.
func (m *QueryModel) RemoveJoin(i int) error {
	if i < 0 || i >= len(m.joins) {
		return fmt.Errorf("remove join %d: %w", i, ErrIndexOutOfRange)
	}
	m.joins = append(m.joins[:i], m.joins[i+1:]...)
	return nil
}

// AddCondition appends a condition to the chain. The operator is normalized
// to its canonical spelling; the connector defaults to AND. Values of IS NULL
// and IS NOT NULL conditions are discarded.
func (m *QueryModel) AddCondition(spec ConditionSpec) error {
	op, ok := ParseOperator(string(spec.Operator))
	if !ok {
		return fmt.Errorf("add condition: %q: %w", spec.Operator, ErrUnknownOperator)
	}
	spec.Operator = op
	if op.IgnoresValue() {
		spec.Value = ""
	}

	switch strings.ToUpper(string(spec.Connector)) {
	case "", string(AND):
		spec.Connector = AND
	case string(OR):
		spec.Connector = OR
	default:
		return fmt.Errorf("add condition: connector %q: %w", spec.Connector, ErrUnknownConnector)
	}

	m.conditions = append(m.conditions, spec)
	return nil
}

// RemoveCondition deletes the condition at index i.
func (m *QueryModel) RemoveCondition(i int) error {
	if i < 0 || i >= len(m.conditions) {
		return fmt.Errorf("remove condition %d: %w", i, ErrIndexOutOfRange)
	}
	m.conditions = append(m.conditions[:i], m.conditions[i+1:]...)
	return nil
}

// AddOrder appends an ascending order entry for the column. Adding a column
// already in the list is a no-op; entries are unique by column.
func (m *QueryModel) AddOrder(column string) error {
	if column == "" {
		return fmt.Errorf("add order: %w", ErrEmptyIdentifier)
	}
	for _, o := range m.orderBy {
		if o.Column == column {
			return nil
		}
	}
	m.orderBy = append(m.orderBy, OrderSpec{Column: column, Direction: ASC})
	return nil
}

// RemoveOrder deletes the order entry for the column, if any.
func (m *QueryModel) RemoveOrder(column string) {
	for i, o := range m.orderBy {
		if o.Column == column {
			m.orderBy = append(m.orderBy[:i], m.orderBy[i+1:]...)
			return
		}
	}
}

// ToggleDirection flips the sort direction of an existing order entry.
func (m *QueryModel) ToggleDirection(column string) error {
	for i, o := range m.orderBy {
		if o.Column == column {
			if o.Direction == ASC {
				m.orderBy[i].Direction = DESC
			} else {
				m.orderBy[i].Direction = ASC
			}
			return nil
		}
	}
	return fmt.Errorf("toggle direction on %s: %w", column, ErrUnknownColumn)
}

// AddGroup appends a grouping column. Duplicates are no-ops.
func (m *QueryModel) AddGroup(column string) error {
	if column == "" {
		return fmt.Errorf("add group: %w", ErrEmptyIdentifier)
	}
	for _, g := range m.groupBy {
		if g == column {
			return nil
		}
	}
	m.groupBy = append(m.groupBy, column)
	return nil
}

// RemoveGroup deletes the grouping column, if present.
func (m *QueryModel) RemoveGroup(column string) {
	for i, g := range m.groupBy {
		if g == column {
			m.groupBy = append(m.groupBy[:i], m.groupBy[i+1:]...)
			return
		}
	}
}

// SetLimit sets the row limit. Negative values are rejected.
func (m *QueryModel) SetLimit(n int) error {
	if n < 0 {
		return fmt.Errorf("set limit %d: %w", n, ErrNegativeBound)
	}
	m.limit = &n
	return nil
}

// ClearLimit removes the limit. OFFSET is only emitted alongside LIMIT, so
// this also suppresses any configured offset in the output.
func (m *QueryModel) ClearLimit() { m.limit = nil }

// SetOffset sets the row offset. It only takes effect in compiled SQL while a
// limit is set. Negative values are rejected.
func (m *QueryModel) SetOffset(n int) error {
	if n < 0 {
		return fmt.Errorf("set offset %d: %w", n, ErrNegativeBound)
	}
	m.offset = &n
	return nil
}

// ClearOffset removes the offset.
func (m *QueryModel) ClearOffset() { m.offset = nil }

// SQL compiles the model; shorthand for Compile(m).
func (m *QueryModel) SQL() string { return Compile(m) }
