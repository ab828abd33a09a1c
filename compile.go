package sqlsketch

import (
	"fmt"
	"strings"

	"github.com/sqlsketch/sqlsketch/internal/sqltext"
)

// NoTablesSQL is the sentinel Compile returns for a model with no tables. It
// is a SQL comment so downstream executors fail soft.
const NoTablesSQL = "-- no tables selected"

// Compile renders a model to SQL text. It is total: every structurally valid
// model has a defined output, including the all-empty one.
//
// Identifiers are emitted exactly as they appear in the model, with no
// quoting or escaping. This is a statement builder, not a sanitizer; callers
// supplying untrusted identifiers must validate them upstream.
func Compile(m *QueryModel) string {
	if len(m.tables) == 0 {
		return NoTablesSQL
	}

	var sql strings.Builder

	sql.WriteString("SELECT ")
	sql.WriteString(strings.Join(selectList(m), ", "))

	first := m.tables[0]
	sql.WriteString("\nFROM ")
	writeTableIntro(&sql, first)

	introduced := map[string]bool{first.Key(): true}
	for _, j := range m.joins {
		if j.LeftColumn == "" || j.RightColumn == "" {
			continue
		}
		switch {
		case !introduced[j.RightTable]:
			writeJoin(&sql, m, j.Type, j.RightTable, j.LeftTable, j.LeftColumn, j.RightTable, j.RightColumn)
			introduced[j.RightTable] = true
		case !introduced[j.LeftTable]:
			writeJoin(&sql, m, j.Type, j.LeftTable, j.RightTable, j.RightColumn, j.LeftTable, j.LeftColumn)
			introduced[j.LeftTable] = true
		default:
			// Both sides already introduced: an extra predicate clause, as
			// used for composite keys expressed as two JoinSpecs. The clause
			// names the key directly; re-introducing "name AS alias" here
			// would redefine the alias.
			fmt.Fprintf(&sql, "\n%s %s ON %s.%s = %s.%s",
				j.Type, j.RightTable, j.LeftTable, j.LeftColumn, j.RightTable, j.RightColumn)
		}
	}

	wroteWhere := false
	for _, c := range m.conditions {
		if c.Column == "" {
			continue
		}
		if !wroteWhere {
			sql.WriteString("\nWHERE ")
			wroteWhere = true
		} else {
			sql.WriteString(" ")
			sql.WriteString(string(c.Connector))
			sql.WriteString(" ")
		}
		sql.WriteString(formatCondition(c))
	}

	if len(m.groupBy) > 0 {
		sql.WriteString("\nGROUP BY ")
		sql.WriteString(strings.Join(m.groupBy, ", "))
	}

	var orderParts []string
	for _, o := range m.orderBy {
		if o.Column == "" {
			continue
		}
		orderParts = append(orderParts, o.Column+" "+string(o.Direction))
	}
	if len(orderParts) > 0 {
		sql.WriteString("\nORDER BY ")
		sql.WriteString(strings.Join(orderParts, ", "))
	}

	if m.limit != nil {
		fmt.Fprintf(&sql, "\nLIMIT %d", *m.limit)
		if m.offset != nil {
			fmt.Fprintf(&sql, " OFFSET %d", *m.offset)
		}
	}

	sql.WriteString(";")
	return sql.String()
}

// selectList builds the column list in table-insertion order. An explicitly
// empty selection compiles to key.*.
func selectList(m *QueryModel) []string {
	var cols []string
	for _, t := range m.tables {
		key := t.Key()
		sel := m.columns[key]
		if len(sel) == 0 {
			cols = append(cols, key+".*")
			continue
		}
		for _, c := range sel {
			cols = append(cols, key+"."+c)
		}
	}
	return cols
}

// writeTableIntro emits "name" or "name AS alias".
func writeTableIntro(sql *strings.Builder, t TableRef) {
	sql.WriteString(t.Name)
	if t.Alias != "" {
		sql.WriteString(" AS ")
		sql.WriteString(t.Alias)
	}
}

// writeJoin emits one join clause introducing introKey, with the ON predicate
// ordered known-side first.
func writeJoin(sql *strings.Builder, m *QueryModel, jt JoinType, introKey, onLeftKey, onLeftCol, onRightKey, onRightCol string) {
	sql.WriteString("\n")
	sql.WriteString(string(jt))
	sql.WriteString(" ")
	if idx, ok := m.refIndex(introKey); ok {
		writeTableIntro(sql, m.tables[idx])
	} else {
		sql.WriteString(introKey)
	}
	fmt.Fprintf(sql, " ON %s.%s = %s.%s", onLeftKey, onLeftCol, onRightKey, onRightCol)
}

// formatCondition renders one WHERE entry with operator-specific value
// formatting. The numeric-or-string literal choice is a documented heuristic:
// values that parse as numbers stay bare, everything else is quoted.
func formatCondition(c ConditionSpec) string {
	switch c.Operator {
	case IsNull, IsNotNull:
		return c.Column + " " + string(c.Operator)
	case IN, NotIn:
		// Value is a pre-formatted comma list; no further quoting.
		return c.Column + " " + string(c.Operator) + " (" + c.Value + ")"
	case BETWEEN, NotBetween:
		return c.Column + " " + string(c.Operator) + " " + formatRange(c.Value)
	default:
		return c.Column + " " + string(c.Operator) + " " + sqltext.Literal(c.Value)
	}
}

// formatRange renders a BETWEEN value. The "min, max" form re-quotes each
// bound individually; a value already containing AND passes through verbatim.
func formatRange(v string) string {
	if !strings.Contains(v, ",") {
		return v
	}
	bounds := strings.SplitN(v, ",", 2)
	lo := sqltext.Literal(strings.TrimSpace(bounds[0]))
	hi := sqltext.Literal(strings.TrimSpace(bounds[1]))
	return lo + " AND " + hi
}
