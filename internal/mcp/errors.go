package mcp

import (
	"errors"
	"fmt"

	"github.com/latticehq/lattice/internal/domain/entity"
	"github.com/latticehq/lattice/internal/domain/schema"
	"github.com/latticehq/lattice/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Missing ids never reach
// here: reads return empty results and deletes are silent no-ops.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var validationErr *schema.ValidationError
	if errors.As(err, &validationErr) {
		return &APIError{
			Code:         "SCHEMA_INVALID",
			Message:      "schema failed validation",
			Details:      validationErr.Problems,
			RecoveryHint: "Fix every listed problem and save again",
		}
	}

	var duplicateErr *schema.DuplicateSlugError
	if errors.As(err, &duplicateErr) {
		return &APIError{
			Code:         "DUPLICATE_SLUG",
			Message:      duplicateErr.Error(),
			RecoveryHint: "Pick a slug not already in use",
		}
	}

	switch {
	case errors.Is(err, entity.ErrInvalidInput), errors.Is(err, repository.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check required fields"}
	case errors.Is(err, repository.ErrForeignKeyViolation):
		return &APIError{Code: "UNKNOWN_REFERENCE", Message: "referenced entity does not exist", RecoveryHint: "Create the entity first"}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}
