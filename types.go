package sqlsketch

import (
	"strings"

	"github.com/sqlsketch/sqlsketch/internal/sqltext"
)

// Operator represents condition comparison operators.
type Operator string

const (
	// Basic comparison operators.
	EQ Operator = "="
	NE Operator = "!="
	GT Operator = ">"
	GE Operator = ">="
	LT Operator = "<"
	LE Operator = "<="

	// Extended operators.
	LIKE       Operator = "LIKE"
	NotLike    Operator = "NOT LIKE"
	IN         Operator = "IN"
	NotIn      Operator = "NOT IN"
	BETWEEN    Operator = "BETWEEN"
	NotBetween Operator = "NOT BETWEEN"
	IsNull     Operator = "IS NULL"
	IsNotNull  Operator = "IS NOT NULL"
)

// operators maps every recognized spelling to its canonical Operator.
var operators = map[string]Operator{
	"=":           EQ,
	"!=":          NE,
	"<>":          NE,
	">":           GT,
	">=":          GE,
	"<":           LT,
	"<=":          LE,
	"LIKE":        LIKE,
	"NOT LIKE":    NotLike,
	"IN":          IN,
	"NOT IN":      NotIn,
	"BETWEEN":     BETWEEN,
	"NOT BETWEEN": NotBetween,
	"IS NULL":     IsNull,
	"IS NOT NULL": IsNotNull,
}

// ParseOperator normalizes a raw operator token (case and internal whitespace
// insensitive) to its canonical Operator.
func ParseOperator(tok string) (Operator, bool) {
	op, ok := operators[sqltext.CollapseSpaces(strings.ToUpper(tok))]
	return op, ok
}

// IgnoresValue reports whether the operator takes no right-hand value.
func (op Operator) IgnoresValue() bool {
	return op == IsNull || op == IsNotNull
}

// JoinType represents the type of SQL join.
type JoinType string

const (
	InnerJoin JoinType = "INNER JOIN"
	LeftJoin  JoinType = "LEFT JOIN"
	RightJoin JoinType = "RIGHT JOIN"
)

// ParseJoinType maps a join-type modifier token ("LEFT", "left outer", "",
// ...) to a JoinType. A bare JOIN is an inner join.
func ParseJoinType(tok string) (JoinType, bool) {
	switch strings.ToUpper(strings.TrimSpace(tok)) {
	case "", "INNER":
		return InnerJoin, true
	case "LEFT", "LEFT OUTER":
		return LeftJoin, true
	case "RIGHT", "RIGHT OUTER":
		return RightJoin, true
	}
	return "", false
}

// Direction represents sort direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// Connector joins a condition to the one before it.
type Connector string

const (
	AND Connector = "AND"
	OR  Connector = "OR"
)

// TableRef is one table occurrence in a model. Ordinal is an opaque creation
// index kept stable for callers that color or identify tables by it; it never
// affects the generated SQL.
type TableRef struct {
	Name    string `json:"name"`
	Alias   string `json:"alias,omitempty"`
	Ordinal int    `json:"ordinal"`
}

// Key returns the identifier used to reference this table everywhere else in
// the model: the alias if set, else the name.
func (t TableRef) Key() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

// JoinSpec describes an equality join between two table keys.
type JoinSpec struct {
	Type        JoinType `json:"type"`
	LeftTable   string   `json:"leftTable"`
	LeftColumn  string   `json:"leftColumn"`
	RightTable  string   `json:"rightTable"`
	RightColumn string   `json:"rightColumn"`
}

// ConditionSpec is one entry in the flat WHERE chain. Column may be bare or
// qualified as "key.column". The Connector on the first condition is ignored
// since there is no preceding clause to join.
type ConditionSpec struct {
	Column    string    `json:"column"`
	Operator  Operator  `json:"operator"`
	Value     string    `json:"value,omitempty"`
	Connector Connector `json:"connector,omitempty"`
}

// OrderSpec is one ORDER BY entry, unique by column.
type OrderSpec struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}
