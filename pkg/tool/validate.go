package tool

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	scopey "github.com/mutablelogic/go-scopey"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ValidationKind is the kind of a validation finding
type ValidationKind int

// ValidationError is a single finding when checking arguments against
// an input schema
type ValidationError struct {
	Kind     ValidationKind
	Field    string
	Expected string   // TypeMismatch
	Actual   string   // TypeMismatch
	Value    any      // InvalidEnumValue, OutOfRange
	Allowed  []any    // InvalidEnumValue
	Minimum  *float64 // OutOfRange
	Maximum  *float64 // OutOfRange
}

// ValidationErrors collects all findings for one set of arguments
type ValidationErrors []ValidationError

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	MissingRequiredField ValidationKind = iota
	TypeMismatch
	InvalidEnumValue
	OutOfRange
)

const (
	typeString  = "string"
	typeNumber  = "number"
	typeInteger = "integer"
	typeBoolean = "boolean"
	typeArray   = "array"
	typeNull    = "null"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Validate checks arguments against the top level of an object schema:
// required fields, declared primitive types, enum membership and numeric
// ranges. Array elements are checked against their item schema, but nested
// objects are not descended into. Properties which are not declared in the
// schema are ignored. Returns nil or ValidationErrors with all findings.
func Validate(s *jsonschema.Schema, args map[string]any) error {
	if s == nil {
		return nil
	}

	var result ValidationErrors

	// Required fields, in schema order
	for _, name := range s.Required {
		if _, exists := args[name]; !exists {
			result = append(result, ValidationError{Kind: MissingRequiredField, Field: name})
		}
	}

	// Declared properties, in name order
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value, exists := args[name]
		if !exists {
			continue
		}
		prop := s.Properties[name]
		if prop == nil {
			continue
		}
		result = append(result, validateValue(name, prop, value)...)

		// One level into arrays
		if items := prop.Items; items != nil {
			if elems, ok := value.([]any); ok {
				for i, elem := range elems {
					result = append(result, validateValue(fmt.Sprintf("%s[%d]", name, i), items, elem)...)
				}
			}
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func validateValue(field string, s *jsonschema.Schema, value any) []ValidationError {
	var result []ValidationError

	// Type check, and stop on mismatch
	actual := typeOf(value)
	if expected := schemaTypes(s); len(expected) > 0 && !matchesType(expected, actual, value) {
		return append(result, ValidationError{
			Kind:     TypeMismatch,
			Field:    field,
			Expected: strings.Join(expected, "|"),
			Actual:   actual,
		})
	}

	// Enum membership
	if len(s.Enum) > 0 && !slices.ContainsFunc(s.Enum, func(allowed any) bool {
		return equalValue(allowed, value)
	}) {
		result = append(result, ValidationError{
			Kind:    InvalidEnumValue,
			Field:   field,
			Value:   value,
			Allowed: s.Enum,
		})
	}

	// Inclusive range
	if s.Minimum != nil || s.Maximum != nil {
		if n, ok := toFloat(value); ok {
			if (s.Minimum != nil && n < *s.Minimum) || (s.Maximum != nil && n > *s.Maximum) {
				result = append(result, ValidationError{
					Kind:    OutOfRange,
					Field:   field,
					Value:   value,
					Minimum: s.Minimum,
					Maximum: s.Maximum,
				})
			}
		}
	}

	return result
}

func schemaTypes(s *jsonschema.Schema) []string {
	if s.Type != "" {
		return []string{s.Type}
	}
	return s.Types
}

func matchesType(expected []string, actual string, value any) bool {
	for _, t := range expected {
		switch {
		case t == actual:
			return true
		case t == typeNumber && actual == typeInteger:
			return true
		case t == typeInteger && actual == typeNumber:
			if n, ok := toFloat(value); ok && n == math.Trunc(n) && !math.IsInf(n, 0) {
				return true
			}
		}
	}
	return false
}

// typeOf returns the JSON type name of a decoded value
func typeOf(value any) string {
	switch v := value.(type) {
	case nil:
		return typeNull
	case string:
		return typeString
	case bool:
		return typeBoolean
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return typeInteger
		}
		return typeNumber
	case float32, float64:
		return typeNumber
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return typeInteger
	case []any:
		return typeArray
	case map[string]any:
		return typeObject
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return typeArray
	case reflect.Map, reflect.Struct:
		return typeObject
	case reflect.Pointer:
		if rv.IsNil() {
			return typeNull
		}
		return typeOf(rv.Elem().Interface())
	}
	return fmt.Sprintf("%T", value)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// equalValue compares two values, treating all numbers as float64
func equalValue(a, b any) bool {
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return x == y
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func formatBound(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

///////////////////////////////////////////////////////////////////////////////
// ERRORS

func (k ValidationKind) String() string {
	switch k {
	case MissingRequiredField:
		return "MissingRequiredField"
	case TypeMismatch:
		return "TypeMismatch"
	case InvalidEnumValue:
		return "InvalidEnumValue"
	case OutOfRange:
		return "OutOfRange"
	}
	return fmt.Sprintf("ValidationKind(%d)", int(k))
}

func (e ValidationError) Error() string {
	switch e.Kind {
	case MissingRequiredField:
		return fmt.Sprintf("%q is required", e.Field)
	case TypeMismatch:
		return fmt.Sprintf("%q must be of type %s, got %s", e.Field, e.Expected, e.Actual)
	case InvalidEnumValue:
		return fmt.Sprintf("%q has value %v, expected one of %v", e.Field, e.Value, e.Allowed)
	case OutOfRange:
		return fmt.Sprintf("%q has value %v, outside range [%s, %s]", e.Field, e.Value, formatBound(e.Minimum), formatBound(e.Maximum))
	}
	return fmt.Sprintf("%q: %v", e.Field, e.Kind)
}

func (e ValidationError) Unwrap() error {
	return scopey.ErrBadParameter
}

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, err := range e {
		parts = append(parts, err.Error())
	}
	return scopey.ErrBadParameter.Error() + ": " + strings.Join(parts, "; ")
}

func (e ValidationErrors) Unwrap() []error {
	result := make([]error, 0, len(e))
	for _, err := range e {
		result = append(result, err)
	}
	return result
}

// Fields returns the field names of all findings
func (e ValidationErrors) Fields() []string {
	result := make([]string, 0, len(e))
	for _, err := range e {
		result = append(result, err.Field)
	}
	return result
}

// AsValidationErrors returns the findings wrapped in err, if any
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var result ValidationErrors
	if errors.As(err, &result) {
		return result, true
	}
	return nil, false
}
