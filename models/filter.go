package models

import "time"

// Record is one row of a list view as handed to the filter engine: a plain
// mapping from field name to scalar value (string, number, bool, time, or
// nil/absent). Records are owned by the caller and never mutated.
type Record map[string]interface{}

// ValueKind tells the evaluator how to interpret a condition's value and the
// record field it is tested against.
type ValueKind string

const (
	ValueKindString ValueKind = "string"
	ValueKindNumber ValueKind = "number"
	ValueKindDate   ValueKind = "date"
	ValueKindEnum   ValueKind = "enum"
)

// OperatorKind identifies one comparison in the filter grammar. The set is
// closed; the evaluator switches over it exhaustively.
type OperatorKind string

const (
	OpEquals         OperatorKind = "equals"
	OpNotEquals      OperatorKind = "not_equals"
	OpContains       OperatorKind = "contains"
	OpNotContains    OperatorKind = "not_contains"
	OpStartsWith     OperatorKind = "starts_with"
	OpEndsWith       OperatorKind = "ends_with"
	OpGreaterThan    OperatorKind = "greater_than"
	OpLessThan       OperatorKind = "less_than"
	OpGreaterOrEqual OperatorKind = "greater_or_equal"
	OpLessOrEqual    OperatorKind = "less_or_equal"
	OpBetween        OperatorKind = "between"
	OpIn             OperatorKind = "in"
	OpNotIn          OperatorKind = "not_in"
	OpIsEmpty        OperatorKind = "is_empty"
	OpIsNotEmpty     OperatorKind = "is_not_empty"
)

// GroupLogic combines the conditions of a group.
type GroupLogic string

const (
	LogicAnd GroupLogic = "and"
	LogicOr  GroupLogic = "or"
)

// FilterCondition is one atomic field/operator/value test.
// Value is a scalar for most operators, a 2-element array for between, and
// an array for in/not_in.
type FilterCondition struct {
	ID        string       `json:"id"`
	Field     string       `json:"field"`
	Operator  OperatorKind `json:"operator"`
	Value     interface{}  `json:"value"`
	ValueKind ValueKind    `json:"valueKind"`
}

// FilterGroup is a flat list of conditions under a single AND/OR logic.
// An empty Items list matches everything.
type FilterGroup struct {
	Items []FilterCondition `json:"items"`
	Logic GroupLogic        `json:"logic"`
}

// StoredFilterEnvelope wraps a serialized group with its format version.
// A consumer that reads an unknown version must discard the payload.
type StoredFilterEnvelope struct {
	FormatVersion int         `json:"formatVersion"`
	Group         FilterGroup `json:"group"`
}

// FilterPreset is a named, durably saved filter group. Identity is ID, not
// Name; presets are immutable once created except for deletion.
type FilterPreset struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Group     FilterGroup `json:"group"`
	CreatedAt time.Time   `json:"createdAt"`
}
