// Package errors provides structured error handling for the application
// Following enterprise patterns for error management and observability
package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode represents an error code
type ErrorCode string

// Error codes surfaced through the calculation API
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Server errors (5xx)
	CodeInternal             ErrorCode = "INTERNAL_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Calculation errors
	CodeEmptyRecipe          ErrorCode = "EMPTY_RECIPE"
	CodeZeroMass             ErrorCode = "ZERO_MASS"
	CodeUnresolvedIngredient ErrorCode = "UNRESOLVED_INGREDIENT"
	CodeInvalidYieldWeight   ErrorCode = "INVALID_YIELD_WEIGHT"
	CodeInvalidServingConfig ErrorCode = "INVALID_SERVING_CONFIG"
	CodeLookupUnavailable    ErrorCode = "LOOKUP_UNAVAILABLE"
)

// AppError represents an application error with structured information
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed, CodeInvalidYieldWeight, CodeInvalidServingConfig:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeEmptyRecipe, CodeZeroMass, CodeUnresolvedIngredient:
		return http.StatusUnprocessableEntity
	case CodeLookupUnavailable, CodeExternalServiceError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// NewEmptyRecipeError reports aggregation over a recipe with no ingredients.
func NewEmptyRecipeError() *AppError {
	return NewAppError(
		CodeEmptyRecipe,
		"Recipe has no ingredients",
		"At least one ingredient with a resolved weight is required",
	)
}

// NewZeroMassError reports aggregation over ingredients whose weights sum to zero.
func NewZeroMassError() *AppError {
	return NewAppError(
		CodeZeroMass,
		"Total ingredient mass is zero",
		"The combined nutrient profile is undefined for a zero-mass recipe",
	)
}

// NewUnresolvedIngredientError reports an ingredient that has not been
// converted to grams; aggregation refuses to proceed rather than guess.
func NewUnresolvedIngredientError(name string) *AppError {
	return NewAppError(
		CodeUnresolvedIngredient,
		"Ingredient weight not resolved",
		fmt.Sprintf("Ingredient %q has no resolved gram weight", name),
	).WithMetadata("ingredient", name)
}

// NewInvalidYieldWeightError reports a non-positive yield weight.
func NewInvalidYieldWeightError(yieldWeightG float64) *AppError {
	return NewAppError(
		CodeInvalidYieldWeight,
		"Yield weight must be greater than 0",
		fmt.Sprintf("Got yield weight %.2fg", yieldWeightG),
	).WithMetadata("yield_weight_g", yieldWeightG)
}

// NewInvalidServingConfigError reports an invalid serving configuration.
func NewInvalidServingConfigError(details string) *AppError {
	return NewAppError(CodeInvalidServingConfig, "Invalid serving configuration", details)
}

// NewLookupUnavailableError reports a failed or timed-out external food lookup.
// The unit converter recovers from this locally by degrading to an estimate.
func NewLookupUnavailableError(service string, cause error) *AppError {
	return NewAppError(
		CodeLookupUnavailable,
		"Food lookup unavailable",
		fmt.Sprintf("Failed to query %s", service),
	).WithCause(cause)
}

// NewExternalServiceError creates an external service error
func NewExternalServiceError(service string, cause error) *AppError {
	return NewAppError(
		CodeExternalServiceError,
		"External service error",
		fmt.Sprintf("Failed to communicate with %s", service),
	).WithCause(cause)
}

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
	Message string      `json:"message"`
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// NewValidationErrors creates an AppError from field validation errors
func NewValidationErrors(errs []ValidationError) *AppError {
	validationErrs := ValidationErrors(errs)
	return NewAppError(
		CodeValidationFailed,
		"Validation failed",
		validationErrs.Error(),
	).WithMetadata("validation_errors", validationErrs)
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails represents the error details in API responses
type ErrorDetails struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// ToErrorResponse converts an AppError to an API error response
func ToErrorResponse(err *AppError, requestID string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetails{
			Code:      err.Code,
			Message:   err.Message,
			Details:   err.Details,
			Metadata:  err.Metadata,
			RequestID: requestID,
		},
	}
}
