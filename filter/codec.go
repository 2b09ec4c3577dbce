package filter

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"casetrack/backend/models"
)

// FormatVersion is the current version of the encoded filter envelope. Bump
// it when the grammar changes so an old link is discarded instead of being
// silently misread.
const FormatVersion = 1

// EncodeFiltersToURL serializes a group into a string that is safe to embed
// as a single query-parameter value (base64url alphabet, no padding).
// Encoding is deterministic and preserves condition order.
func EncodeFiltersToURL(group models.FilterGroup) (string, error) {
	env := models.StoredFilterEnvelope{
		FormatVersion: FormatVersion,
		Group:         group,
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("failed to encode filters: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// DecodeFiltersFromURL is the defensive inverse of EncodeFiltersToURL; it
// never fails the caller. A payload that is not a valid envelope at all
// yields a nil group and one message. An envelope whose individual conditions
// are invalid (unknown field, unknown operator, wrong value shape) loses only
// those conditions, one message each, and the rest of the group survives.
// Callers tell "no filters" apart from "all filters were invalid" by
// checking the messages.
func DecodeFiltersFromURL(text string, reg *FieldRegistry) (*models.FilterGroup, []string) {
	if text == "" {
		return nil, []string{"filter payload is empty"}
	}

	payload, err := base64.RawURLEncoding.DecodeString(text)
	if err != nil {
		return nil, []string{"filter payload is not valid base64url"}
	}

	var env models.StoredFilterEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, []string{"filter payload is not a valid filter envelope"}
	}

	if env.FormatVersion != FormatVersion {
		return nil, []string{fmt.Sprintf("unsupported filter format version %d", env.FormatVersion)}
	}

	switch env.Group.Logic {
	case models.LogicAnd, models.LogicOr:
	case "":
		env.Group.Logic = models.LogicAnd
	default:
		return nil, []string{fmt.Sprintf("unknown group logic %q", env.Group.Logic)}
	}

	var kept []models.FilterCondition
	var problems []string
	for _, cond := range env.Group.Items {
		if err := ValidateCondition(cond, reg); err != nil {
			problems = append(problems, fmt.Sprintf("dropped condition: %v", err))
			continue
		}
		kept = append(kept, cond)
	}

	return &models.FilterGroup{Items: kept, Logic: env.Group.Logic}, problems
}
