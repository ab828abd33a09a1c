package sqlsketch

import "strings"

// SuggestJoins infers candidate joins for the model's selected tables from
// the catalog: declared foreign keys in either direction first, then a
// "<table>_<pk>" naming heuristic. Suggestions are deduplicated against the
// model's existing joins and against each other, orientation-insensitively,
// and never mutate the model; applying one is an explicit AddJoin by the
// caller.
func SuggestJoins(m *QueryModel) []JoinSpec {
	catalog := m.catalog
	if catalog == nil || len(m.tables) < 2 {
		return nil
	}

	seen := make(map[string]bool)
	for _, j := range m.joins {
		seen[pairKey(j.LeftTable, j.LeftColumn, j.RightTable, j.RightColumn)] = true
	}

	var out []JoinSpec
	emit := func(j JoinSpec) {
		k := pairKey(j.LeftTable, j.LeftColumn, j.RightTable, j.RightColumn)
		if seen[k] {
			return
		}
		seen[k] = true
		out = append(out, j)
	}

	for i := 0; i < len(m.tables); i++ {
		for k := i + 1; k < len(m.tables); k++ {
			a, b := m.tables[i], m.tables[k]
			suggestForeignKeys(catalog, a, b, emit)
			suggestForeignKeys(catalog, b, a, emit)
			suggestByNaming(catalog, a, b, emit)
			suggestByNaming(catalog, b, a, emit)
		}
	}
	return out
}

// suggestForeignKeys scans from's columns for declared foreign keys pointing
// at to's underlying table.
func suggestForeignKeys(catalog *Catalog, from, to TableRef, emit func(JoinSpec)) {
	table, ok := catalog.Table(from.Name)
	if !ok {
		return
	}
	for _, col := range table.Columns {
		if col.Ref == nil || !strings.EqualFold(col.Ref.Table, to.Name) {
			continue
		}
		emit(JoinSpec{
			Type:        InnerJoin,
			LeftTable:   from.Key(),
			LeftColumn:  col.Name,
			RightTable:  to.Key(),
			RightColumn: col.Ref.Column,
		})
	}
}

// suggestByNaming looks in other for a column named "<owner.name>_<pk>",
// case-insensitively, where pk is owner's single-column primary key.
func suggestByNaming(catalog *Catalog, owner, other TableRef, emit func(JoinSpec)) {
	ownerTable, ok := catalog.Table(owner.Name)
	if !ok {
		return
	}
	pk := ownerTable.SinglePrimaryKey()
	if pk == nil {
		return
	}
	otherTable, ok := catalog.Table(other.Name)
	if !ok {
		return
	}

	want := owner.Name + "_" + pk.Name
	for _, col := range otherTable.Columns {
		if !strings.EqualFold(col.Name, want) {
			continue
		}
		emit(JoinSpec{
			Type:        InnerJoin,
			LeftTable:   owner.Key(),
			LeftColumn:  pk.Name,
			RightTable:  other.Key(),
			RightColumn: col.Name,
		})
	}
}

// pairKey normalizes a join's four-tuple so the same relationship in either
// orientation produces the same key.
func pairKey(lt, lc, rt, rc string) string {
	left := strings.ToLower(lt) + "." + strings.ToLower(lc)
	right := strings.ToLower(rt) + "." + strings.ToLower(rc)
	if left > right {
		left, right = right, left
	}
	return left + "|" + right
}
