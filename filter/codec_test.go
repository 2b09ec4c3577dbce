package filter

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"casetrack/backend/models"
)

func testRegistry() *FieldRegistry {
	return NewFieldRegistry(
		Field{Name: "key", Kind: models.ValueKindString},
		Field{Name: "title", Kind: models.ValueKindString},
		Field{Name: "status", Kind: models.ValueKindEnum, Values: []string{"Open", "In Progress", "Closed"}},
		Field{Name: "priority", Kind: models.ValueKindEnum, Values: []string{"High", "Medium", "Low"}},
		Field{Name: "points", Kind: models.ValueKindNumber},
		Field{Name: "createdAt", Kind: models.ValueKindDate},
	)
}

func TestCodecRoundTrip(t *testing.T) {
	group := models.FilterGroup{
		Items: []models.FilterCondition{
			{ID: "c1", Field: "status", Operator: models.OpEquals, Value: "Open", ValueKind: models.ValueKindEnum},
			{ID: "c2", Field: "points", Operator: models.OpBetween, Value: []interface{}{float64(1), float64(8)}, ValueKind: models.ValueKindNumber},
			{ID: "c3", Field: "priority", Operator: models.OpIn, Value: []interface{}{"High", "Medium"}, ValueKind: models.ValueKindEnum},
			{ID: "c4", Field: "title", Operator: models.OpContains, Value: "crash", ValueKind: models.ValueKindString},
		},
		Logic: models.LogicOr,
	}

	encoded, err := EncodeFiltersToURL(group)
	if err != nil {
		t.Fatalf("Error encoding filters: %v", err)
	}

	decoded, problems := DecodeFiltersFromURL(encoded, testRegistry())
	if len(problems) != 0 {
		t.Fatalf("Expected no decode problems, got %v", problems)
	}
	if decoded == nil {
		t.Fatal("Expected a decoded group, got nil")
	}
	if !reflect.DeepEqual(*decoded, group) {
		t.Errorf("Round trip mismatch:\nwant %+v\ngot  %+v", group, *decoded)
	}
}

func TestEncodeIsDeterministicAndURLSafe(t *testing.T) {
	group := models.FilterGroup{
		Items: []models.FilterCondition{
			{ID: "c1", Field: "status", Operator: models.OpEquals, Value: "Open", ValueKind: models.ValueKindEnum},
			{ID: "c2", Field: "points", Operator: models.OpGreaterThan, Value: float64(3), ValueKind: models.ValueKindNumber},
		},
		Logic: models.LogicAnd,
	}

	first, err := EncodeFiltersToURL(group)
	if err != nil {
		t.Fatalf("Error encoding filters: %v", err)
	}
	second, err := EncodeFiltersToURL(group)
	if err != nil {
		t.Fatalf("Error encoding filters: %v", err)
	}

	if first != second {
		t.Errorf("Expected deterministic encoding, got %q and %q", first, second)
	}

	const urlSafe = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	for _, r := range first {
		if !strings.ContainsRune(urlSafe, r) {
			t.Errorf("Encoded string contains non-URL-safe character %q", r)
		}
	}
}

func TestDecodeDefensive(t *testing.T) {
	reg := testRegistry()

	valid, err := EncodeFiltersToURL(models.FilterGroup{
		Items: []models.FilterCondition{
			{Field: "status", Operator: models.OpEquals, Value: "Open", ValueKind: models.ValueKindEnum},
		},
		Logic: models.LogicAnd,
	})
	if err != nil {
		t.Fatalf("Error encoding filters: %v", err)
	}

	inputs := []string{
		"",
		"not-a-valid-payload!!",
		valid[:len(valid)-6], // truncated
		base64.RawURLEncoding.EncodeToString([]byte("plain text")),
		base64.RawURLEncoding.EncodeToString([]byte(`{"formatVersion":99,"group":{}}`)),
		base64.RawURLEncoding.EncodeToString([]byte(`{"formatVersion":1,"group":{"logic":"xor"}}`)),
	}

	for _, input := range inputs {
		group, problems := DecodeFiltersFromURL(input, reg)
		if len(problems) == 0 {
			t.Errorf("Expected decode problems for %q, got none", input)
		}
		if group != nil && len(group.Items) != 0 {
			t.Errorf("Expected nil or empty group for %q, got %+v", input, group)
		}
	}
}

func TestDecodeDropsInvalidConditionsOnly(t *testing.T) {
	envelope := map[string]interface{}{
		"formatVersion": FormatVersion,
		"group": map[string]interface{}{
			"logic": "and",
			"items": []interface{}{
				map[string]interface{}{"field": "status", "operator": "equals", "value": "Open", "valueKind": "enum"},
				map[string]interface{}{"field": "nonsense", "operator": "equals", "value": "x", "valueKind": "string"},
				map[string]interface{}{"field": "points", "operator": "between", "value": []interface{}{1.0}, "valueKind": "number"},
				map[string]interface{}{"field": "priority", "operator": "in", "value": "High", "valueKind": "enum"},
			},
		},
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		t.Fatal(err)
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)

	group, problems := DecodeFiltersFromURL(encoded, testRegistry())
	if group == nil {
		t.Fatal("Expected a partial group, got nil")
	}
	if len(group.Items) != 1 {
		t.Fatalf("Expected 1 surviving condition, got %d", len(group.Items))
	}
	if group.Items[0].Field != "status" {
		t.Errorf("Expected the status condition to survive, got %+v", group.Items[0])
	}
	if len(problems) != 3 {
		t.Errorf("Expected 3 problem messages, got %d: %v", len(problems), problems)
	}
}

func TestDecodeAllConditionsDroppedIsEmptyGroup(t *testing.T) {
	envelope := fmt.Sprintf(
		`{"formatVersion":%d,"group":{"logic":"or","items":[{"field":"bogus","operator":"equals","value":"x","valueKind":"string"}]}}`,
		FormatVersion,
	)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(envelope))

	group, problems := DecodeFiltersFromURL(encoded, testRegistry())
	if group == nil {
		t.Fatal("Expected a non-nil group when only conditions were invalid")
	}
	if len(group.Items) != 0 {
		t.Errorf("Expected an empty item list, got %d items", len(group.Items))
	}
	if len(problems) != 1 {
		t.Errorf("Expected 1 problem message, got %v", problems)
	}
	// an empty group is the neutral filter
	records := sampleRecords()
	if got := ApplyFilters(records, group.Items, group.Logic); len(got) != len(records) {
		t.Errorf("Expected the empty group to match everything, got %d of %d", len(got), len(records))
	}
}

func TestDecodeDefaultsMissingLogicToAnd(t *testing.T) {
	envelope := fmt.Sprintf(`{"formatVersion":%d,"group":{}}`, FormatVersion)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(envelope))

	group, problems := DecodeFiltersFromURL(encoded, testRegistry())
	if len(problems) != 0 {
		t.Fatalf("Expected no problems, got %v", problems)
	}
	if group == nil || group.Logic != models.LogicAnd {
		t.Errorf("Expected missing logic to default to and, got %+v", group)
	}
}

func TestValidateCondition(t *testing.T) {
	reg := testRegistry()

	valid := models.FilterCondition{Field: "status", Operator: models.OpEquals, Value: "Open", ValueKind: models.ValueKindEnum}
	if err := ValidateCondition(valid, reg); err != nil {
		t.Errorf("Expected valid condition to pass, got %v", err)
	}

	invalid := []models.FilterCondition{
		{Field: "", Operator: models.OpEquals, Value: "x"},
		{Field: "bogus", Operator: models.OpEquals, Value: "x"},
		{Field: "status", Operator: "matches", Value: "x"},
		{Field: "points", Operator: models.OpBetween, Value: []interface{}{1.0, 2.0, 3.0}, ValueKind: models.ValueKindNumber},
		{Field: "points", Operator: models.OpGreaterThan, Value: 1.0, ValueKind: models.ValueKindString},
		{Field: "status", Operator: models.OpIn, Value: "Open", ValueKind: models.ValueKindEnum},
		{Field: "title", Operator: models.OpContains, Value: nil, ValueKind: models.ValueKindString},
	}
	for _, cond := range invalid {
		if err := ValidateCondition(cond, reg); err == nil {
			t.Errorf("Expected condition %+v to be rejected", cond)
		}
	}

	// without a registry only shape is checked
	unknownField := models.FilterCondition{Field: "anything", Operator: models.OpEquals, Value: "x"}
	if err := ValidateCondition(unknownField, nil); err != nil {
		t.Errorf("Expected nil registry to skip the field check, got %v", err)
	}
}
