// internal/common/validation/validation_test.go
package validation

import (
	"strings"
	"testing"

	"benevolence-intake/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() SubmissionRules {
	return SubmissionRules{
		RequiredFields: []string{"first_name", "last_name", "email"},
		EmailFields:    []string{"email"},
		ChoiceFields:   []string{"other_assistance", "need_rent"},
		DateFields:     []string{"deadline_date"},
		MaxFieldLength: 20,
	}
}

func validFields() map[string]string {
	return map[string]string{
		"first_name":       "Maria",
		"last_name":        "Lopez",
		"email":            "maria@example.com",
		"other_assistance": "Yes",
		"need_rent":        "on",
		"deadline_date":    "10/20/2026",
		"monthly_income":   "about 900",
	}
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(map[string]string)
		expectedValid bool
		expectedField string
		expectedCode  string
	}{
		{
			name:          "valid submission",
			mutate:        func(map[string]string) {},
			expectedValid: true,
		},
		{
			name:          "missing first name",
			mutate:        func(f map[string]string) { delete(f, "first_name") },
			expectedField: "first_name",
			expectedCode:  CodeMissingRequired,
		},
		{
			name:          "blank last name",
			mutate:        func(f map[string]string) { f["last_name"] = "   " },
			expectedField: "last_name",
			expectedCode:  CodeMissingRequired,
		},
		{
			name:          "malformed email",
			mutate:        func(f map[string]string) { f["email"] = "maria-at-example" },
			expectedField: "email",
			expectedCode:  CodeInvalidFormat,
		},
		{
			name:          "choice outside vocabulary",
			mutate:        func(f map[string]string) { f["other_assistance"] = "sometimes" },
			expectedField: "other_assistance",
			expectedCode:  CodeInvalidChoice,
		},
		{
			name:          "empty choice allowed",
			mutate:        func(f map[string]string) { f["need_rent"] = "" },
			expectedValid: true,
		},
		{
			name:          "unparseable date",
			mutate:        func(f map[string]string) { f["deadline_date"] = "next friday" },
			expectedField: "deadline_date",
			expectedCode:  CodeInvalidDate,
		},
		{
			name:          "iso date allowed",
			mutate:        func(f map[string]string) { f["deadline_date"] = "2026-10-20" },
			expectedValid: true,
		},
		{
			name:          "unknown field too long",
			mutate:        func(f map[string]string) { f["situation_description"] = strings.Repeat("a", 21) },
			expectedField: "situation_description",
			expectedCode:  CodeTooLong,
		},
		{
			name:          "length counts characters not bytes",
			mutate:        func(f map[string]string) { f["situation_description"] = strings.Repeat("ñ", 20) },
			expectedValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			tt.mutate(fields)

			result, err := ValidateSubmission(fields, testRules())
			require.NoError(t, err)

			assert.Equal(t, tt.expectedValid, result.Valid, "errors: %v", result.Errors)
			if !tt.expectedValid {
				errs := errorsFor(result, tt.expectedField)
				require.NotEmpty(t, errs, "errors: %v", result.Errors)
				assert.Equal(t, tt.expectedCode, errs[0].Code)
			}
		})
	}
}

func TestValidateSubmission_EmptyReportsEachRequiredFieldOnce(t *testing.T) {
	result, err := ValidateSubmission(nil, testRules())
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 3)
	assert.Equal(t, []string{"email", "first_name", "last_name"}, []string{
		result.Errors[0].Field, result.Errors[1].Field, result.Errors[2].Field,
	})
	assert.Len(t, result.GetErrorMessages(), 3)
	assert.Len(t, errorsFor(result, "email"), 1)
}

func errorsFor(result *ValidationResult, field string) []ValidationError {
	var out []ValidationError
	for _, e := range result.Errors {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

func TestValidateDocuments(t *testing.T) {
	rules := DocumentRules{
		KnownFields:         []string{"photo_id", "proof_of_income"},
		AllowedContentTypes: []string{"application/pdf", "image/jpeg"},
		MaxFileSize:         1000,
		MaxFilesPerField:    2,
	}

	t.Run("valid documents", func(t *testing.T) {
		docs := []models.Document{
			{FieldName: "photo_id", Filename: "id.jpg", ContentType: "image/jpeg", Size: 500},
			{FieldName: "proof_of_income", Filename: "pay.pdf", ContentType: "Application/PDF; name=pay.pdf", Size: 1000},
		}
		assert.Empty(t, ValidateDocuments(docs, rules))
	})

	t.Run("each problem reported", func(t *testing.T) {
		docs := []models.Document{
			{FieldName: "selfie", Filename: "me.png", ContentType: "image/png", Size: 10},
			{FieldName: "photo_id", Filename: "big.jpg", ContentType: "image/jpeg", Size: 1001},
			{FieldName: "proof_of_income", Filename: "pay.exe", ContentType: "application/octet-stream", Size: 10},
		}

		errs := ValidateDocuments(docs, rules)
		codes := make([]string, 0, len(errs))
		for _, e := range errs {
			codes = append(codes, e.Code)
		}

		assert.Equal(t, []string{CodeUnknownDocument, CodeDocumentTooLarge, CodeUnsupportedDocumentType}, codes)
		assert.Equal(t, "documents[0]", errs[0].Field)
		assert.Equal(t, "photo_id", errs[1].Field)
	})

	t.Run("too many files for one field reported once", func(t *testing.T) {
		docs := []models.Document{
			{FieldName: "photo_id", Filename: "1.jpg", ContentType: "image/jpeg", Size: 1},
			{FieldName: "photo_id", Filename: "2.jpg", ContentType: "image/jpeg", Size: 1},
			{FieldName: "photo_id", Filename: "3.jpg", ContentType: "image/jpeg", Size: 1},
			{FieldName: "photo_id", Filename: "4.jpg", ContentType: "image/jpeg", Size: 1},
		}

		errs := ValidateDocuments(docs, rules)
		require.Len(t, errs, 1)
		assert.Equal(t, CodeTooManyDocuments, errs[0].Code)
	})
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, "image/png", MediaType("IMAGE/PNG"))
	assert.Equal(t, "application/pdf", MediaType("application/pdf; charset=binary"))
	assert.Equal(t, "", MediaType(""))
}
