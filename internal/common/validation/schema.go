// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

const (
	CodeMissingRequired = "MISSING_REQUIRED"
	CodeInvalidFormat   = "INVALID_FORMAT"
	CodeTooLong         = "MAX_LENGTH_VIOLATION"
	CodeInvalidChoice   = "INVALID_CHOICE"
	CodeInvalidDate     = "INVALID_DATE"
)

// SubmissionRules shape the JSON schema a submission is checked against.
type SubmissionRules struct {
	RequiredFields []string
	EmailFields    []string
	ChoiceFields   []string
	DateFields     []string
	MaxFieldLength int
}

const (
	nonBlankPattern = `\S`
	choicePattern   = `^(?i)\s*(yes|no|y|n|true|false|on|off|1|0|checked)?\s*$`
	datePattern     = `^\s*(\d{4}-\d{1,2}-\d{1,2}|\d{1,2}/\d{1,2}/\d{4})?\s*$`
)

// SubmissionSchema builds the JSON schema for a flat map of form values.
func SubmissionSchema(rules SubmissionRules) map[string]interface{} {
	properties := map[string]interface{}{}
	set := func(field string, extra map[string]interface{}) {
		prop, ok := properties[field].(map[string]interface{})
		if !ok {
			prop = map[string]interface{}{"type": "string"}
		}
		for k, v := range extra {
			prop[k] = v
		}
		if rules.MaxFieldLength > 0 {
			prop["maxLength"] = rules.MaxFieldLength
		}
		properties[field] = prop
	}

	for _, f := range rules.RequiredFields {
		set(f, map[string]interface{}{"minLength": 1, "pattern": nonBlankPattern})
	}
	for _, f := range rules.EmailFields {
		set(f, map[string]interface{}{"format": "email"})
	}
	for _, f := range rules.ChoiceFields {
		set(f, map[string]interface{}{"pattern": choicePattern})
	}
	for _, f := range rules.DateFields {
		set(f, map[string]interface{}{"pattern": datePattern})
	}

	additional := map[string]interface{}{"type": "string"}
	if rules.MaxFieldLength > 0 {
		additional["maxLength"] = rules.MaxFieldLength
	}

	return map[string]interface{}{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"type":                 "object",
		"properties":           properties,
		"required":             append([]string{}, rules.RequiredFields...),
		"additionalProperties": additional,
	}
}

// ValidateSubmission checks fields against the schema built from rules.
// Errors are sorted by field so output is stable.
func ValidateSubmission(fields map[string]string, rules SubmissionRules) (*ValidationResult, error) {
	if fields == nil {
		fields = map[string]string{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(SubmissionSchema(rules)),
		gojsonschema.NewGoLoader(fields),
	)
	if err != nil {
		return nil, fmt.Errorf("validate submission: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	seen := map[string]bool{}
	for _, re := range result.Errors() {
		ve := toValidationError(re, rules)
		key := ve.Field + "|" + ve.Code
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Errors = append(out.Errors, ve)
	}
	sort.SliceStable(out.Errors, func(i, j int) bool {
		return out.Errors[i].Field < out.Errors[j].Field
	})
	return out, nil
}

func toValidationError(re gojsonschema.ResultError, rules SubmissionRules) ValidationError {
	field := re.Field()
	if p, ok := re.Details()["property"].(string); ok && re.Type() == "required" {
		field = p
	}

	switch re.Type() {
	case "required", "string_gte":
		return ValidationError{Field: field, Code: CodeMissingRequired, Message: field + " is required"}
	case "string_lte":
		return ValidationError{
			Field:   field,
			Code:    CodeTooLong,
			Message: fmt.Sprintf("value must be at most %d characters", rules.MaxFieldLength),
		}
	case "format":
		return ValidationError{Field: field, Code: CodeInvalidFormat, Message: "invalid email address"}
	case "pattern":
		switch {
		case contains(rules.ChoiceFields, field):
			return ValidationError{Field: field, Code: CodeInvalidChoice, Message: "answer must be yes or no"}
		case contains(rules.DateFields, field):
			return ValidationError{Field: field, Code: CodeInvalidDate, Message: "date must be YYYY-MM-DD or MM/DD/YYYY"}
		default:
			return ValidationError{Field: field, Code: CodeMissingRequired, Message: field + " is required"}
		}
	}
	return ValidationError{Field: field, Code: strings.ToUpper(re.Type()), Message: re.Description()}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}
