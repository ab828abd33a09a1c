package sqlsketch

import "errors"

// Mutator errors. A rejected mutation always leaves the model unchanged.
var (
	// ErrDuplicateTable is returned by AddTable when the name is already in
	// the model and forceSelfJoin is false. Callers that want a self-join
	// retry with forceSelfJoin set.
	ErrDuplicateTable = errors.New("table already in model")

	// ErrAliasCollision is returned by SetAlias when the new alias would
	// shadow another table's key.
	ErrAliasCollision = errors.New("alias collides with existing table key")

	// ErrUnknownTable is returned when a table key does not resolve to a
	// table currently in the model.
	ErrUnknownTable = errors.New("unknown table key")

	// ErrUnknownOperator is returned by AddCondition for operators outside
	// the supported set.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrUnknownJoinType is returned by AddJoin for join types outside
	// INNER/LEFT/RIGHT.
	ErrUnknownJoinType = errors.New("unknown join type")

	// ErrIndexOutOfRange is returned by index-based removals.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNegativeBound is returned by SetLimit and SetOffset for negative
	// values.
	ErrNegativeBound = errors.New("limit and offset must be non-negative")

	// ErrUnknownConnector is returned by AddCondition for connectors other
	// than AND and OR.
	ErrUnknownConnector = errors.New("unknown connector")

	// ErrUnknownColumn is returned when a column is not in the targeted list.
	ErrUnknownColumn = errors.New("column not in list")

	// ErrEmptyIdentifier is returned when a required name or column is blank.
	ErrEmptyIdentifier = errors.New("empty identifier")
)
