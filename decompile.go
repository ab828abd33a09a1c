package sqlsketch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sqlsketch/sqlsketch/internal/sqltext"
)

// Report describes how much of a statement Decompile could represent.
// Complete stays true only when every construct in the input made it into the
// model; each dropped or unresolved fragment appends a note and clears it.
type Report struct {
	Complete bool
	Notes    []string
}

func (r *Report) add(format string, args ...any) {
	r.Complete = false
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// StatementKind returns the upper-cased leading keyword of a statement
// ("SELECT", "INSERT", ...), or "" for blank input. Callers use it to gate
// Decompile, which only decomposes SELECTs.
func StatementKind(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(strings.TrimSuffix(fields[0], ";"))
}

var (
	fromRe = regexp.MustCompile(`(?i)\bFROM\s+([A-Za-z_]\w*)(?:\s+(?:AS\s+)?([A-Za-z_]\w*))?`)
	joinRe = regexp.MustCompile(`(?i)\b(?:(INNER|LEFT\s+OUTER|LEFT|RIGHT\s+OUTER|RIGHT|FULL\s+OUTER|FULL|CROSS)\s+)?JOIN\s+([A-Za-z_]\w*)(?:\s+(?:AS\s+)?([A-Za-z_]\w*))?\s+ON\s+([A-Za-z_]\w*)\.([A-Za-z_]\w*)\s*=\s*([A-Za-z_]\w*)\.([A-Za-z_]\w*)`)

	selectListRe = regexp.MustCompile(`(?is)^\s*SELECT\s+(?:DISTINCT\s+)?(.*?)\s+FROM\b`)
	whereRe      = regexp.MustCompile(`(?is)\bWHERE\s+(.*?)\s*(?:\bGROUP\s+BY\b|\bORDER\s+BY\b|\bHAVING\b|\bLIMIT\b|$)`)
	groupByRe    = regexp.MustCompile(`(?is)\bGROUP\s+BY\s+(.*?)\s*(?:\bORDER\s+BY\b|\bHAVING\b|\bLIMIT\b|$)`)
	orderByRe    = regexp.MustCompile(`(?is)\bORDER\s+BY\s+(.*?)\s*(?:\bLIMIT\b|$)`)
	limitRe      = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+)(?:\s+OFFSET\s+(\d+))?`)

	conditionRe   = regexp.MustCompile(`(?is)^([A-Za-z_][\w.]*)\s*(IS\s+NOT\s+NULL|IS\s+NULL|NOT\s+BETWEEN|NOT\s+LIKE|NOT\s+IN|BETWEEN|LIKE|IN|>=|<=|<>|!=|=|>|<)\s*(.*)$`)
	andSplitRe    = regexp.MustCompile(`(?i)\s+AND\s+`)
	orDetectRe    = regexp.MustCompile(`(?i)\s+OR\s+`)
	betweenTailRe = regexp.MustCompile(`(?i)\bBETWEEN\s+('[^']*'|\S+)$`)
)

// Decompile reconstructs a QueryModel from SQL text, best-effort. It never
// fails: constructs outside the supported grammar subset (subqueries, OR,
// parenthesized WHERE groups, unions, window functions) are left out of the
// model and recorded in the report. Non-SELECT statements are treated as
// opaque and produce an empty model.
//
// Table and column tokens resolve against the catalog case-insensitively;
// unresolved tokens pass through verbatim so a stale or absent catalog
// degrades resolution instead of failing it.
func Decompile(catalog *Catalog, sql string) (*QueryModel, Report) {
	rep := Report{Complete: true}
	m := NewQueryModel(catalog)

	text := strings.TrimSuffix(strings.TrimSpace(sql), ";")
	if StatementKind(text) != "SELECT" {
		rep.add("statement is not a SELECT; model left empty")
		return m, rep
	}

	d := &decompiler{m: m, catalog: catalog, rep: &rep, keys: make(map[string]string)}
	d.parseFrom(text)
	d.parseJoins(text)
	d.parseSelectList(text)
	d.defaultSelections()
	d.parseWhere(text)
	d.parseGroupBy(text)
	d.parseOrderBy(text)
	d.parseLimit(text)
	return m, rep
}

type decompiler struct {
	m       *QueryModel
	catalog *Catalog
	rep     *Report

	// keys maps lower-cased alias and table-name tokens to model keys, so ON
	// and column references written either way resolve to the same table.
	keys map[string]string
}

// registerTable records a table discovered in FROM or a JOIN clause. Tables
// must be registered before column parsing since columns reference them by
// alias or name.
func (d *decompiler) registerTable(name, alias string) {
	if alias != "" && sqltext.IsClauseKeyword(alias) {
		alias = ""
	}

	canonical := name
	if t, ok := d.catalog.Table(name); ok {
		canonical = t.Name
	} else {
		d.rep.add("table %q not found in schema", name)
	}

	ref := TableRef{Name: canonical, Alias: alias, Ordinal: d.m.nextOrdinal}
	key := ref.Key()
	if d.m.hasKey(key) {
		return
	}
	d.m.nextOrdinal++
	d.m.tables = append(d.m.tables, ref)
	d.m.columns[key] = []string{}

	d.keys[strings.ToLower(key)] = key
	if lower := strings.ToLower(canonical); d.keys[lower] == "" {
		d.keys[lower] = key
	}
}

func (d *decompiler) resolveKey(token string) (string, bool) {
	key, ok := d.keys[strings.ToLower(token)]
	return key, ok
}

func (d *decompiler) parseFrom(text string) {
	loc := fromRe.FindStringSubmatchIndex(text)
	if loc == nil {
		d.rep.add("no FROM clause found")
		return
	}
	fm := fromRe.FindStringSubmatch(text)
	d.registerTable(fm[1], fm[2])

	// A comma after the first table is a cross-product FROM list, which the
	// model cannot hold; only the first table is kept.
	if rest := strings.TrimSpace(text[loc[1]:]); strings.HasPrefix(rest, ",") {
		d.rep.add("comma-separated FROM list; only %q kept", fm[1])
	}
}

func (d *decompiler) parseJoins(text string) {
	for _, jm := range joinRe.FindAllStringSubmatch(text, -1) {
		jt, ok := ParseJoinType(sqltext.CollapseSpaces(jm[1]))
		if !ok {
			d.rep.add("join type %q not supported; kept as INNER", strings.TrimSpace(jm[1]))
			jt = InnerJoin
		}
		d.registerTable(jm[2], jm[3])

		left, right := jm[4], jm[6]
		if key, ok := d.resolveKey(left); ok {
			left = key
		}
		if key, ok := d.resolveKey(right); ok {
			right = key
		}
		d.m.joins = append(d.m.joins, JoinSpec{
			Type:        jt,
			LeftTable:   left,
			LeftColumn:  jm[5],
			RightTable:  right,
			RightColumn: jm[7],
		})
	}
}

func (d *decompiler) parseSelectList(text string) {
	sm := selectListRe.FindStringSubmatch(text)
	if sm == nil {
		d.rep.add("no column list found")
		return
	}

	for _, item := range sqltext.SplitTop(sm[1], ',') {
		switch {
		case item == "":
		case item == "*":
			for _, t := range d.m.tables {
				d.selectAllOf(t.Key())
			}
		case strings.Contains(item, "("):
			// Function calls cannot be represented as a column selection;
			// dropping them is the documented lossy behavior.
			d.rep.add("select expression %q dropped", item)
		case strings.HasSuffix(item, ".*"):
			token := strings.TrimSuffix(item, ".*")
			key, ok := d.resolveKey(token)
			if !ok {
				d.rep.add("wildcard %q references unknown table", item)
				continue
			}
			d.selectAllOf(key)
		default:
			d.selectColumn(item)
		}
	}
}

// selectColumn assigns one plain column item to its table: the qualifying
// prefix when present, else the first selected table.
func (d *decompiler) selectColumn(item string) {
	if i := strings.LastIndexByte(item, '.'); i >= 0 {
		token, col := item[:i], item[i+1:]
		key, ok := d.resolveKey(token)
		if !ok {
			d.rep.add("column %q references unknown table", item)
			return
		}
		d.appendColumn(key, col)
		return
	}

	if len(d.m.tables) == 0 {
		d.rep.add("column %q has no table to attach to", item)
		return
	}
	d.appendColumn(d.m.tables[0].Key(), item)
}

// appendColumn adds a column to a table's selection, canonicalizing its
// casing against the catalog and skipping duplicates.
func (d *decompiler) appendColumn(key, col string) {
	if idx, ok := d.m.refIndex(key); ok {
		if t, ok := d.catalog.Table(d.m.tables[idx].Name); ok {
			if c, ok := t.Column(col); ok {
				col = c.Name
			}
		}
	}
	for _, existing := range d.m.columns[key] {
		if existing == col {
			return
		}
	}
	d.m.columns[key] = append(d.m.columns[key], col)
}

func (d *decompiler) selectAllOf(key string) {
	idx, ok := d.m.refIndex(key)
	if !ok {
		return
	}
	if names := d.catalog.ColumnNames(d.m.tables[idx].Name); names != nil {
		d.m.columns[key] = append([]string(nil), names...)
	}
}

// defaultSelections restores the builder's select-all default for any table
// that finished parsing with no columns assigned.
func (d *decompiler) defaultSelections() {
	for _, t := range d.m.tables {
		key := t.Key()
		if len(d.m.columns[key]) == 0 {
			d.selectAllOf(key)
		}
	}
}

func (d *decompiler) parseWhere(text string) {
	wm := whereRe.FindStringSubmatch(text)
	if wm == nil {
		return
	}

	frags := andSplitRe.Split(wm[1], -1)

	// Re-join the bound that the AND split severed from its BETWEEN.
	var merged []string
	for i := 0; i < len(frags); i++ {
		frag := strings.TrimSpace(frags[i])
		if betweenTailRe.MatchString(frag) && i+1 < len(frags) {
			frag += " AND " + strings.TrimSpace(frags[i+1])
			i++
		}
		merged = append(merged, frag)
	}

	for _, frag := range merged {
		if frag == "" {
			continue
		}
		if orDetectRe.MatchString(frag) {
			d.rep.add("OR conditions are not supported; dropped %q", frag)
			continue
		}
		cm := conditionRe.FindStringSubmatch(frag)
		if cm == nil {
			d.rep.add("condition %q not recognized", frag)
			continue
		}

		op, ok := ParseOperator(cm[2])
		if !ok {
			d.rep.add("operator in %q not recognized", frag)
			continue
		}

		d.m.conditions = append(d.m.conditions, ConditionSpec{
			Column:    d.canonicalColumnRef(cm[1]),
			Operator:  op,
			Value:     conditionValue(op, strings.TrimSpace(cm[3])),
			Connector: AND,
		})
	}
}

// canonicalColumnRef rewrites a qualified column's table token to its model
// key; bare columns pass through untouched.
func (d *decompiler) canonicalColumnRef(token string) string {
	i := strings.LastIndexByte(token, '.')
	if i < 0 {
		return token
	}
	key, ok := d.resolveKey(token[:i])
	if !ok {
		return token
	}
	col := token[i+1:]
	if idx, ok := d.m.refIndex(key); ok {
		if t, ok := d.catalog.Table(d.m.tables[idx].Name); ok {
			if c, ok := t.Column(col); ok {
				col = c.Name
			}
		}
	}
	return key + "." + col
}

// conditionValue normalizes the raw right-hand side for storage: IN keeps its
// pre-formatted list, BETWEEN becomes "min,max" with quotes stripped, and
// plain values lose their surrounding quotes.
func conditionValue(op Operator, raw string) string {
	switch op {
	case IsNull, IsNotNull:
		return ""
	case IN, NotIn:
		raw = strings.TrimSpace(raw)
		if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
			raw = raw[1 : len(raw)-1]
		}
		return strings.TrimSpace(raw)
	case BETWEEN, NotBetween:
		bounds := andSplitRe.Split(raw, 2)
		if len(bounds) != 2 {
			return raw
		}
		lo := sqltext.StripQuotes(strings.TrimSpace(bounds[0]))
		hi := sqltext.StripQuotes(strings.TrimSpace(bounds[1]))
		return lo + "," + hi
	default:
		return sqltext.StripQuotes(raw)
	}
}

func (d *decompiler) parseGroupBy(text string) {
	gm := groupByRe.FindStringSubmatch(text)
	if gm == nil {
		return
	}
	for _, item := range sqltext.SplitTop(gm[1], ',') {
		if item == "" {
			continue
		}
		col := sqltext.LastSegment(strings.Fields(item)[0])
		_ = d.m.AddGroup(col)
	}
}

func (d *decompiler) parseOrderBy(text string) {
	om := orderByRe.FindStringSubmatch(text)
	if om == nil {
		return
	}
	for _, item := range sqltext.SplitTop(om[1], ',') {
		if item == "" {
			continue
		}
		fields := strings.Fields(item)
		col := sqltext.LastSegment(fields[0])
		if err := d.m.AddOrder(col); err != nil {
			continue
		}
		if len(fields) > 1 && strings.EqualFold(fields[1], string(DESC)) {
			_ = d.m.ToggleDirection(col)
		}
	}
}

func (d *decompiler) parseLimit(text string) {
	lm := limitRe.FindStringSubmatch(text)
	if lm == nil {
		return
	}
	if n, err := strconv.Atoi(lm[1]); err == nil {
		d.m.limit = &n
	}
	if lm[2] != "" {
		if n, err := strconv.Atoi(lm[2]); err == nil {
			d.m.offset = &n
		}
	}
}
