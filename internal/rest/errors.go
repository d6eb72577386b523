// internal/rest/errors.go
package rest

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "benevolence-intake/internal/common/errors"
	"benevolence-intake/internal/common/validation"
	"benevolence-intake/internal/intake"

	"github.com/labstack/echo/v4"
)

type ResponseError struct {
	Code             string                       `json:"code"`
	Message          string                       `json:"message"`
	Details          string                       `json:"details,omitempty"`
	ValidationErrors []validation.ValidationError `json:"validationErrors,omitempty"`
}

// respondError writes err with the status its code maps to. Details of
// server-side failures are not returned to the applicant.
func respondError(c echo.Context, err error) error {
	var invalid *intake.InvalidSubmissionError
	if errors.As(err, &invalid) {
		return c.JSON(http.StatusUnprocessableEntity, ResponseError{
			Code:             string(apperrors.ErrCodeApplicationValidationFailed),
			Message:          "Application data validation failed",
			ValidationErrors: invalid.Errors,
		})
	}

	stdErr := apperrors.Normalize(err)
	status := apperrors.HTTPStatus(stdErr.Code)

	if stdErr.Code == apperrors.ErrCodeRateLimited {
		if secs, ok := stdErr.Metadata["retryAfterSeconds"].(int); ok && secs > 0 {
			c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
		}
	}

	resp := ResponseError{Code: string(stdErr.Code), Message: stdErr.Message}
	if status < http.StatusInternalServerError {
		resp.Details = stdErr.Details
	}
	return c.JSON(status, resp)
}
