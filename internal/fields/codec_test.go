package fields

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func accountSchema() []Field {
	return []Field{
		{
			Label:    "account",
			Type:     TypeString,
			Target:   NewSplitTarget("recipient_part1", "recipient_part2"),
			MinChars: intPtr(1),
		},
	}
}

func TestValidateThenPackSplitsAcrossSlots(t *testing.T) {
	fields := accountSchema()
	values := map[string]string{"account": "ABCDEFGHIJKLMNOP"} // 16 chars, fits 2x12

	if err := Validate(fields, values); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	details := Pack(fields, values)
	if got := details["recipient_part1"]; got != "ABCDEFGHIJKL" {
		t.Fatalf("recipient_part1 = %q", got)
	}
	if got := details["recipient_part2"]; got != "MNOP" {
		t.Fatalf("recipient_part2 = %q", got)
	}
}

func TestPackShortValueLeavesTrailingSlotsEmpty(t *testing.T) {
	fields := accountSchema()
	values := map[string]string{"account": "X"}

	if err := Validate(fields, values); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	details := Pack(fields, values)
	if got := details["recipient_part1"]; got != "X" {
		t.Fatalf("recipient_part1 = %q", got)
	}
	if got := details["recipient_part2"]; got != "" {
		t.Fatalf("recipient_part2 = %q, want empty", got)
	}
}

func TestPackNeverExceedsSlotWidth(t *testing.T) {
	fields := []Field{{
		Label:  "account",
		Type:   TypeString,
		Target: NewSplitTarget("a", "b", "c"),
	}}
	value := strings.Repeat("z", 3*MaxDetailChars)
	values := map[string]string{"account": value}

	if err := Validate(fields, values); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	details := Pack(fields, values)
	var rejoined string
	for _, slot := range []string{"a", "b", "c"} {
		if len(details[slot]) > MaxDetailChars {
			t.Fatalf("slot %s has %d chars", slot, len(details[slot]))
		}
		rejoined += details[slot]
	}
	if rejoined != value {
		t.Fatalf("rejoined %q != original", rejoined)
	}
}

func TestValidateRejectsTooLongValue(t *testing.T) {
	fields := accountSchema()
	values := map[string]string{"account": strings.Repeat("A", 25)} // > 2x12

	err := Validate(fields, values)
	if err == nil {
		t.Fatal("expected error for 25 char value")
	}
	if !strings.Contains(err.Error(), "too long") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestValidateMissingValue(t *testing.T) {
	fields := []Field{{Label: "code", Type: TypeString, Target: NewTarget("code")}}

	err := Validate(fields, map[string]string{})
	if err == nil {
		t.Fatal("expected error for missing value")
	}
	if !strings.Contains(err.Error(), "please enter a value for 'code'") {
		t.Fatalf("unexpected message: %v", err)
	}

	fields[0].AllowEmpty = true
	if err := Validate(fields, map[string]string{}); err != nil {
		t.Fatalf("allow_empty should pass: %v", err)
	}
}

func TestValidateNumberRules(t *testing.T) {
	fields := []Field{{
		Label:  "units",
		Type:   TypeNumber,
		Target: NewTarget("reference"),
		Min:    int64Ptr(10),
		Max:    int64Ptr(99),
	}}

	t.Run("not a number", func(t *testing.T) {
		err := Validate(fields, map[string]string{"units": "12x"})
		if err == nil || !strings.Contains(err.Error(), "must be a number") {
			t.Fatalf("unexpected: %v", err)
		}
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		if err := Validate(fields, map[string]string{"units": "10"}); err != nil {
			t.Fatalf("min boundary should pass: %v", err)
		}
		if err := Validate(fields, map[string]string{"units": "99"}); err != nil {
			t.Fatalf("max boundary should pass: %v", err)
		}
	})

	t.Run("below minimum", func(t *testing.T) {
		err := Validate(fields, map[string]string{"units": "9"})
		if err == nil || !strings.Contains(err.Error(), "minimum of 10") {
			t.Fatalf("unexpected: %v", err)
		}
	})

	t.Run("above maximum", func(t *testing.T) {
		err := Validate(fields, map[string]string{"units": "100"})
		if err == nil || !strings.Contains(err.Error(), "maximum of 99") {
			t.Fatalf("unexpected: %v", err)
		}
	})
}

// The length cap counts digits of the literal, not the numeric value,
// so a 13 digit number overflows a single 12 char slot.
func TestValidateNumberLengthCountsLiteralChars(t *testing.T) {
	fields := []Field{{Label: "ref", Type: TypeNumber, Target: NewTarget("reference")}}

	if err := Validate(fields, map[string]string{"ref": "123456789012"}); err != nil {
		t.Fatalf("12 digits should pass: %v", err)
	}
	err := Validate(fields, map[string]string{"ref": "1234567890123"})
	if err == nil || !strings.Contains(err.Error(), "too long") {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestValidateMinChars(t *testing.T) {
	fields := []Field{{
		Label:    "particulars",
		Type:     TypeString,
		Target:   NewTarget("particulars"),
		MinChars: intPtr(4),
	}}

	err := Validate(fields, map[string]string{"particulars": "abc"})
	if err == nil || !strings.Contains(err.Error(), "minimum number of characters of 4") {
		t.Fatalf("unexpected: %v", err)
	}
	if err := Validate(fields, map[string]string{"particulars": "abcd"}); err != nil {
		t.Fatalf("exact minimum should pass: %v", err)
	}
}

func TestValidateFailsFastInSchemaOrder(t *testing.T) {
	fields := []Field{
		{Label: "first", Type: TypeString, Target: NewTarget("a")},
		{Label: "second", Type: TypeString, Target: NewTarget("b")},
	}
	err := Validate(fields, map[string]string{"second": "ok"})
	if err == nil {
		t.Fatal("expected error")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Label != "first" {
		t.Fatalf("expected failure on 'first', got %v", err)
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	fields := accountSchema()
	values := map[string]string{"account": "ABCDEFGHIJKLMNOP"}

	first := Validate(fields, values)
	second := Validate(fields, values)
	if first != nil || second != nil {
		t.Fatalf("unexpected errors: %v, %v", first, second)
	}
	if values["account"] != "ABCDEFGHIJKLMNOP" {
		t.Fatal("Validate mutated input values")
	}
}

func TestPackScalarTargetVerbatim(t *testing.T) {
	fields := []Field{{Label: "code", Type: TypeString, Target: NewTarget("code")}}
	details := Pack(fields, map[string]string{"code": "00-1234-5678"})
	if got := details["code"]; got != "00-1234-5678" {
		t.Fatalf("code = %q", got)
	}
}

func TestFieldUnmarshalFromSchemaJSON(t *testing.T) {
	raw := `[
        {"label":"account","type":"string","target":["recipient_part1","recipient_part2"],"min_chars":1},
        {"label":"units","type":"number","target":"reference","min":1,"max":500},
        {"label":"note","type":"string","target":"particulars","allow_empty":true}
    ]`
	var fields []Field
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if !fields[0].Target.IsList() || len(fields[0].Target.Slots()) != 2 {
		t.Fatalf("account target parsed wrong: %+v", fields[0].Target)
	}
	if fields[1].Target.IsList() || fields[1].Target.Slots()[0] != "reference" {
		t.Fatalf("units target parsed wrong: %+v", fields[1].Target)
	}
	if fields[1].Min == nil || *fields[1].Min != 1 || fields[1].Max == nil || *fields[1].Max != 500 {
		t.Fatal("units bounds parsed wrong")
	}
	if !fields[2].AllowEmpty {
		t.Fatal("note allow_empty parsed wrong")
	}

	var bad Field
	if err := json.Unmarshal([]byte(`{"label":"x","type":"string","target":5}`), &bad); err == nil {
		t.Fatal("expected error for numeric target")
	}
}
