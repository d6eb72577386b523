// internal/workers/application/validate-application-data/models.go
package validateapplicationdata

import (
	"benevolence-intake/internal/common/validation"
	"benevolence-intake/internal/models"
)

type Input struct {
	Fields    map[string]string `json:"fields"`
	Documents []models.Document `json:"documents"`
}

type Output struct {
	IsValid          bool                         `json:"isValid"`
	ValidationErrors []validation.ValidationError `json:"validationErrors"`
}

// Messages flattens the errors into "field: message" strings.
func (o *Output) Messages() []string {
	result := validation.ValidationResult{Errors: o.ValidationErrors}
	return result.GetErrorMessages()
}
