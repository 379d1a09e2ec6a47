package application

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"

	"boardgame-catalog-api/internal/domain"
)

// FieldType selects how a field is checked and coerced
type FieldType int

const (
	TextField FieldType = iota
	EmailField
	IntegerField
	NumberField
	StringListField
)

// FieldRule declares one field of a resource
type FieldRule struct {
	Name     string
	Type     FieldType
	Optional bool
	Min      *int64
	// Message replaces every failure message of the rule when set
	Message string
	Default func() any
}

// Text declares a required non-empty string field
func Text(name string) FieldRule {
	return FieldRule{Name: name, Type: TextField}
}

// Email declares a required email address field
func Email(name string) FieldRule {
	return FieldRule{Name: name, Type: EmailField}
}

// Integer declares a required integer field with a lower bound
func Integer(name string, min int64) FieldRule {
	return FieldRule{Name: name, Type: IntegerField, Min: &min}
}

// Number declares a required numeric field
func Number(name string) FieldRule {
	return FieldRule{Name: name, Type: NumberField}
}

// StringList declares a required list of strings
func StringList(name string) FieldRule {
	return FieldRule{Name: name, Type: StringListField}
}

// WithMessage overrides the failure message
func (r FieldRule) WithMessage(msg string) FieldRule {
	r.Message = msg
	return r
}

// WithDefault makes the field optional on create, filling it with fn()
func (r FieldRule) WithDefault(fn func() any) FieldRule {
	r.Optional = true
	r.Default = fn
	return r
}

// Schema declares the stored fields of one resource kind
type Schema struct {
	Kind       string
	Label      string
	Collection string
	Fields     []FieldRule
}

// ValidateCreate checks a full payload and returns the coerced fields to store.
// Unknown fields are dropped.
func (s Schema) ValidateCreate(input map[string]any) (map[string]any, error) {
	return s.validate(input, false)
}

// ValidatePatch checks a partial payload; only supplied fields are returned
func (s Schema) ValidatePatch(input map[string]any) (map[string]any, error) {
	return s.validate(input, true)
}

func (s Schema) validate(input map[string]any, partial bool) (map[string]any, error) {
	verr := &domain.ValidationError{}
	out := make(map[string]any, len(s.Fields))

	for _, rule := range s.Fields {
		raw, present := input[rule.Name]
		if !present || raw == nil {
			switch {
			case partial:
			case rule.Default != nil:
				out[rule.Name] = rule.Default()
			case !rule.Optional:
				verr.Add(rule.Name, rule.message(rule.Name+" is required"))
			}
			continue
		}

		value, msg := rule.coerce(raw)
		if msg != "" {
			verr.Add(rule.Name, rule.message(msg))
			continue
		}
		out[rule.Name] = value
	}

	if verr.HasErrors() {
		return nil, verr
	}
	if partial && len(out) == 0 {
		verr.Add("body", "at least one updatable field must be supplied")
		return nil, verr
	}
	return out, nil
}

// FieldNames returns the declared field names in order
func (s Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

func (r FieldRule) message(fallback string) string {
	if r.Message != "" {
		return r.Message
	}
	return fallback
}

func (r FieldRule) coerce(raw any) (any, string) {
	switch r.Type {
	case TextField:
		s, ok := raw.(string)
		if !ok {
			return nil, r.Name + " must be a string"
		}
		if strings.TrimSpace(s) == "" {
			return nil, r.Name + " must not be empty"
		}
		return s, ""

	case EmailField:
		s, ok := raw.(string)
		if !ok || !isEmail(s) {
			return nil, r.Name + " must be a valid email address"
		}
		return s, ""

	case IntegerField:
		msg := r.Name + " must be an integer"
		if r.Min != nil {
			msg = fmt.Sprintf("%s must be an integer of at least %d", r.Name, *r.Min)
		}
		n, ok := toInt(raw)
		if !ok || (r.Min != nil && n < *r.Min) {
			return nil, msg
		}
		return n, ""

	case NumberField:
		f, ok := toFloat(raw)
		if !ok {
			return nil, r.Name + " must be a number"
		}
		return f, ""

	case StringListField:
		list, ok := toStrings(raw)
		if !ok {
			return nil, r.Name + " must be an array of strings"
		}
		return list, ""
	}

	return nil, "unsupported field type"
}

func toInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(v)
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func toFloat(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toStrings(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}
