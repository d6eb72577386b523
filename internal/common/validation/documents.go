// internal/common/validation/documents.go
package validation

import (
	"fmt"
	"mime"
	"strings"

	"benevolence-intake/internal/models"
)

const (
	CodeUnknownDocument         = "UNKNOWN_DOCUMENT_FIELD"
	CodeDocumentTooLarge        = "DOCUMENT_TOO_LARGE"
	CodeUnsupportedDocumentType = "UNSUPPORTED_DOCUMENT_TYPE"
	CodeTooManyDocuments        = "TOO_MANY_DOCUMENTS"
)

type DocumentRules struct {
	KnownFields         []string
	AllowedContentTypes []string
	MaxFileSize         int64
	MaxFilesPerField    int
}

// MediaType strips parameters and lowercases a Content-Type value.
func MediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

// ValidateDocuments checks upload descriptors. Content is never inspected.
func ValidateDocuments(docs []models.Document, rules DocumentRules) []ValidationError {
	var errs []ValidationError
	perField := map[string]int{}

	for i, d := range docs {
		field := fmt.Sprintf("documents[%d]", i)

		if !contains(rules.KnownFields, d.FieldName) {
			errs = append(errs, ValidationError{
				Field:   field,
				Code:    CodeUnknownDocument,
				Message: fmt.Sprintf("unknown document field %q", d.FieldName),
			})
			continue
		}
		field = d.FieldName

		perField[d.FieldName]++
		if rules.MaxFilesPerField > 0 && perField[d.FieldName] == rules.MaxFilesPerField+1 {
			errs = append(errs, ValidationError{
				Field:   field,
				Code:    CodeTooManyDocuments,
				Message: fmt.Sprintf("at most %d files allowed", rules.MaxFilesPerField),
			})
		}

		if rules.MaxFileSize > 0 && d.Size > rules.MaxFileSize {
			errs = append(errs, ValidationError{
				Field:   field,
				Code:    CodeDocumentTooLarge,
				Message: fmt.Sprintf("%s is %d bytes, limit is %d", d.Filename, d.Size, rules.MaxFileSize),
			})
		}

		if len(rules.AllowedContentTypes) > 0 && !contains(rules.AllowedContentTypes, MediaType(d.ContentType)) {
			errs = append(errs, ValidationError{
				Field:   field,
				Code:    CodeUnsupportedDocumentType,
				Message: fmt.Sprintf("%s has unsupported type %q", d.Filename, d.ContentType),
			})
		}
	}
	return errs
}
