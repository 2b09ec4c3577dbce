package filter

import (
	"strconv"
	"strings"
	"time"

	"casetrack/backend/models"
)

// Matches reports whether one record satisfies one condition. It is pure and
// total: a condition that cannot be evaluated against the record (uncoercible
// field value, wrong value shape) fails closed and reports false instead of
// panicking, so a malformed field can never match everything or abort a scan.
// Only is_empty/is_not_empty inspect absence directly.
func Matches(record models.Record, cond models.FilterCondition) bool {
	raw := record[cond.Field]

	switch cond.Operator {
	case models.OpIsEmpty:
		return isEmptyValue(raw)
	case models.OpIsNotEmpty:
		return !isEmptyValue(raw)

	case models.OpEquals:
		if raw == nil {
			return cond.Value == nil
		}
		if cond.Value == nil {
			return false
		}
		eq, ok := scalarEquals(raw, cond.Value, cond.ValueKind)
		return ok && eq

	case models.OpNotEquals:
		if raw == nil {
			return cond.Value != nil
		}
		if cond.Value == nil {
			return true
		}
		eq, ok := scalarEquals(raw, cond.Value, cond.ValueKind)
		if !ok {
			// fail closed, not the negation of a failed comparison
			return false
		}
		return !eq

	case models.OpContains, models.OpNotContains, models.OpStartsWith, models.OpEndsWith:
		return matchesString(raw, cond)

	case models.OpGreaterThan, models.OpLessThan, models.OpGreaterOrEqual, models.OpLessOrEqual:
		cmp, ok := compareScalars(raw, cond.Value, cond.ValueKind)
		if !ok {
			return false
		}
		switch cond.Operator {
		case models.OpGreaterThan:
			return cmp > 0
		case models.OpLessThan:
			return cmp < 0
		case models.OpGreaterOrEqual:
			return cmp >= 0
		default:
			return cmp <= 0
		}

	case models.OpBetween:
		return matchesBetween(raw, cond)

	case models.OpIn, models.OpNotIn:
		return matchesMembership(raw, cond)

	default:
		// unknown operator never matches
		return false
	}
}

// ApplyFilters keeps the records that satisfy the group: under "and" a record
// must satisfy every condition, under "or" at least one. An empty condition
// list is the neutral filter and returns the input unchanged. Record order is
// preserved and the input is never mutated.
func ApplyFilters(records []models.Record, items []models.FilterCondition, logic models.GroupLogic) []models.Record {
	if len(items) == 0 {
		return records
	}

	filtered := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if groupMatches(rec, items, logic) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

func groupMatches(rec models.Record, items []models.FilterCondition, logic models.GroupLogic) bool {
	if logic == models.LogicOr {
		for _, cond := range items {
			if Matches(rec, cond) {
				return true
			}
		}
		return false
	}

	// anything other than "or" combines as "and" so evaluation stays total
	for _, cond := range items {
		if !Matches(rec, cond) {
			return false
		}
	}
	return true
}

func matchesString(raw interface{}, cond models.FilterCondition) bool {
	if raw == nil || cond.Value == nil {
		return false
	}
	field, ok := coerceString(raw)
	if !ok {
		return false
	}
	want, ok := coerceString(cond.Value)
	if !ok {
		return false
	}

	// string operators compare case-insensitively
	field = strings.ToLower(field)
	want = strings.ToLower(want)

	switch cond.Operator {
	case models.OpContains:
		return strings.Contains(field, want)
	case models.OpNotContains:
		return !strings.Contains(field, want)
	case models.OpStartsWith:
		return strings.HasPrefix(field, want)
	default:
		return strings.HasSuffix(field, want)
	}
}

func matchesBetween(raw interface{}, cond models.FilterCondition) bool {
	bounds, ok := cond.Value.([]interface{})
	if !ok || len(bounds) != 2 {
		return false
	}

	lowCmp, ok := compareScalars(raw, bounds[0], cond.ValueKind)
	if !ok {
		return false
	}
	highCmp, ok := compareScalars(raw, bounds[1], cond.ValueKind)
	if !ok {
		return false
	}
	rangeCmp, ok := compareScalars(bounds[0], bounds[1], cond.ValueKind)
	if !ok || rangeCmp > 0 {
		// reversed range never matches
		return false
	}

	return lowCmp >= 0 && highCmp <= 0
}

func matchesMembership(raw interface{}, cond models.FilterCondition) bool {
	candidates, ok := cond.Value.([]interface{})
	if !ok {
		// a non-array value is a shape problem; fail closed for both in and not_in
		return false
	}

	member := false
	if raw == nil {
		for _, candidate := range candidates {
			if candidate == nil {
				member = true
				break
			}
		}
	} else {
		if !coercible(raw, cond.ValueKind) {
			return false
		}
		for _, candidate := range candidates {
			if candidate == nil {
				continue
			}
			if eq, ok := scalarEquals(raw, candidate, cond.ValueKind); ok && eq {
				member = true
				break
			}
		}
	}

	if cond.Operator == models.OpIn {
		return member
	}
	return !member
}

// scalarEquals compares two scalars after coercing both toward the value
// kind. The second return is false when either side does not coerce.
func scalarEquals(a, b interface{}, kind models.ValueKind) (bool, bool) {
	switch kind {
	case models.ValueKindNumber:
		fa, ok := coerceNumber(a)
		if !ok {
			return false, false
		}
		fb, ok := coerceNumber(b)
		if !ok {
			return false, false
		}
		return fa == fb, true
	case models.ValueKindDate:
		ta, ok := coerceTime(a)
		if !ok {
			return false, false
		}
		tb, ok := coerceTime(b)
		if !ok {
			return false, false
		}
		return ta.Equal(tb), true
	default:
		// string, enum, and unspecified kinds compare as strings
		sa, ok := coerceString(a)
		if !ok {
			return false, false
		}
		sb, ok := coerceString(b)
		if !ok {
			return false, false
		}
		return sa == sb, true
	}
}

// compareScalars orders two scalars under the value kind, returning
// -1, 0, or 1. Only number and date kinds have an ordering.
func compareScalars(a, b interface{}, kind models.ValueKind) (int, bool) {
	switch kind {
	case models.ValueKindNumber:
		fa, ok := coerceNumber(a)
		if !ok {
			return 0, false
		}
		fb, ok := coerceNumber(b)
		if !ok {
			return 0, false
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		default:
			return 0, true
		}
	case models.ValueKindDate:
		ta, ok := coerceTime(a)
		if !ok {
			return 0, false
		}
		tb, ok := coerceTime(b)
		if !ok {
			return 0, false
		}
		switch {
		case ta.Before(tb):
			return -1, true
		case ta.After(tb):
			return 1, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}

func coercible(v interface{}, kind models.ValueKind) bool {
	switch kind {
	case models.ValueKindNumber:
		_, ok := coerceNumber(v)
		return ok
	case models.ValueKindDate:
		_, ok := coerceTime(v)
		return ok
	default:
		_, ok := coerceString(v)
		return ok
	}
}

func coerceString(v interface{}) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	case time.Time:
		return x.Format(time.RFC3339), true
	default:
		return "", false
	}
}

func coerceNumber(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceTime(v interface{}) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, x); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func isEmptyValue(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
