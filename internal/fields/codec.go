package fields

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxDetailChars is the width of one recipient detail slot in the
// outbound bank transfer request.
const MaxDetailChars = 12

// Field types.
const (
	TypeNumber = "number"
	TypeString = "string"
)

// Target is the destination of a field value: either a single recipient
// detail slot, or an ordered list of slots the value is split across.
// It unmarshals from a JSON string or a JSON array of strings.
type Target struct {
	slots []string
	list  bool
}

// NewTarget builds a scalar target.
func NewTarget(slot string) Target { return Target{slots: []string{slot}} }

// NewSplitTarget builds a multi-slot target.
func NewSplitTarget(slots ...string) Target { return Target{slots: slots, list: true} }

// Slots returns the destination slot names in order. A scalar target
// has exactly one slot.
func (t Target) Slots() []string { return t.slots }

// IsList reports whether the value is split across several slots.
func (t Target) IsList() bool { return t.list }

func (t *Target) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		t.slots = []string{single}
		t.list = false
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.New("field target must be a string or a list of strings")
	}
	t.slots = many
	t.list = true
	return nil
}

func (t Target) MarshalJSON() ([]byte, error) {
	if t.list {
		return json.Marshal(t.slots)
	}
	if len(t.slots) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(t.slots[0])
}

// Field describes one form field of a utility.
type Field struct {
	Label      string `json:"label"`
	Type       string `json:"type"`
	Target     Target `json:"target"`
	AllowEmpty bool   `json:"allow_empty,omitempty"`
	Min        *int64 `json:"min,omitempty"`
	Max        *int64 `json:"max,omitempty"`
	MinChars   *int   `json:"min_chars,omitempty"`
}

// ValidationError is a user facing message about a single field.
type ValidationError struct {
	Label   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func errf(label, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Label: label, Message: fmt.Sprintf(format, args...)}
}

// Validate checks values against the schema in order and stops at the
// first failing field.
func Validate(fields []Field, values map[string]string) error {
	for _, field := range fields {
		name := field.Label
		value := values[name]
		if value == "" {
			if !field.AllowEmpty {
				return errf(name, "please enter a value for '%s'", name)
			}
			continue
		}
		switch strings.ToLower(field.Type) {
		case TypeNumber:
			num, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return errf(name, "value for '%s' must be a number", name)
			}
			if field.Min != nil && num < *field.Min {
				return errf(name, "value for '%s' has a minimum of %d", name, *field.Min)
			}
			if field.Max != nil && num > *field.Max {
				return errf(name, "value for '%s' has a maximum of %d", name, *field.Max)
			}
		case TypeString:
			if field.MinChars != nil && len(value) < *field.MinChars {
				return errf(name, "value for '%s' has a minimum number of characters of %d", name, *field.MinChars)
			}
		}
		// The cap counts characters of the literal value for every
		// field type, number fields included.
		maxChars := MaxDetailChars * len(field.Target.Slots())
		if len(value) > maxChars {
			return errf(name, "value for '%s' is too long", name)
		}
	}
	return nil
}

// Pack distributes field values into recipient detail slots. A
// multi-slot target receives consecutive chunks of MaxDetailChars
// characters in slot order, trailing slots staying empty when the value
// runs out; a scalar target receives the value verbatim. Values must
// have passed Validate first, Pack does not re-check lengths.
func Pack(fields []Field, values map[string]string) map[string]string {
	details := make(map[string]string)
	for _, field := range fields {
		value := values[field.Label]
		if field.Target.IsList() {
			for _, slot := range field.Target.Slots() {
				chunk := value
				if len(chunk) > MaxDetailChars {
					chunk = chunk[:MaxDetailChars]
				}
				details[slot] = chunk
				value = value[len(chunk):]
			}
			continue
		}
		for _, slot := range field.Target.Slots() {
			details[slot] = value
		}
	}
	return details
}
