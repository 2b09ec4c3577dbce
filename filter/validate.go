package filter

import (
	"errors"
	"fmt"

	"casetrack/backend/models"
)

// ValidateCondition checks a condition's structure: the field must exist in
// the registry (when one is supplied), the operator must be known, and the
// value's shape must match what the operator expects. Shape problems are
// caught here so decoders can drop the condition with a message; evaluation
// itself never errors.
func ValidateCondition(cond models.FilterCondition, reg *FieldRegistry) error {
	if cond.Field == "" {
		return errors.New("condition is missing a field")
	}
	if reg != nil && !reg.Has(cond.Field) {
		return fmt.Errorf("unknown field %q", cond.Field)
	}

	switch cond.Operator {
	case models.OpIsEmpty, models.OpIsNotEmpty:
		return nil

	case models.OpEquals, models.OpNotEquals:
		// nil is allowed: it matches a null/absent field
		if isCompositeValue(cond.Value) {
			return fmt.Errorf("operator %s on field %q requires a scalar value", cond.Operator, cond.Field)
		}
		return nil

	case models.OpContains, models.OpNotContains, models.OpStartsWith, models.OpEndsWith:
		if err := requireScalar(cond); err != nil {
			return err
		}
		switch cond.ValueKind {
		case models.ValueKindString, models.ValueKindEnum, "":
			return nil
		default:
			return fmt.Errorf("operator %s on field %q applies to string values, not %s", cond.Operator, cond.Field, cond.ValueKind)
		}

	case models.OpGreaterThan, models.OpLessThan, models.OpGreaterOrEqual, models.OpLessOrEqual:
		if err := requireScalar(cond); err != nil {
			return err
		}
		return requireOrderedKind(cond)

	case models.OpBetween:
		bounds, ok := cond.Value.([]interface{})
		if !ok || len(bounds) != 2 {
			return fmt.Errorf("operator between on field %q requires a two-element range", cond.Field)
		}
		return requireOrderedKind(cond)

	case models.OpIn, models.OpNotIn:
		if _, ok := cond.Value.([]interface{}); !ok {
			return fmt.Errorf("operator %s on field %q requires an array value", cond.Operator, cond.Field)
		}
		return nil

	default:
		return fmt.Errorf("unknown operator %q", cond.Operator)
	}
}

func requireScalar(cond models.FilterCondition) error {
	if cond.Value == nil || isCompositeValue(cond.Value) {
		return fmt.Errorf("operator %s on field %q requires a scalar value", cond.Operator, cond.Field)
	}
	return nil
}

func requireOrderedKind(cond models.FilterCondition) error {
	if cond.ValueKind != models.ValueKindNumber && cond.ValueKind != models.ValueKindDate {
		return fmt.Errorf("operator %s on field %q requires a number or date value kind, not %q", cond.Operator, cond.Field, cond.ValueKind)
	}
	return nil
}

func isCompositeValue(v interface{}) bool {
	switch v.(type) {
	case []interface{}, map[string]interface{}:
		return true
	default:
		return false
	}
}
