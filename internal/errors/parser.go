package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps a low-level error to a code and message. Sensitive
// details stay out of the message; the caller logs the raw error.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "an internal error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations

	if strings.Contains(errStrLower, "duplicate key") ||
		strings.Contains(errStrLower, "unique constraint") ||
		strings.Contains(errStrLower, "unique failed") {
		return parseDuplicateKeyError(errStrLower)
	}

	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "a referenced record does not exist",
		}
	}

	if strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "a required field is missing",
		}
	}

	if strings.Contains(errStrLower, "check constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidRange,
			Message: "a field value is out of range",
		}
	}

	// Network errors from external collaborators
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "an external service is unavailable, please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: defaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email"):
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "this email is already registered",
		}
	case strings.Contains(errLower, "username") || strings.Contains(errLower, "idx_users_username"):
		return ErrorInfo{
			Code:    AuthUsernameExists,
			Message: "this username is already taken",
		}
	case strings.Contains(errLower, "idx_items_seller_name"):
		return ErrorInfo{
			Code:    ItemNameExists,
			Message: "you already have a listing with this name",
		}
	case strings.Contains(errLower, "idx_reviews_author_target"):
		return ErrorInfo{
			Code:    ReviewAlreadyExists,
			Message: "you have already reviewed this target",
		}
	case strings.Contains(errLower, "order_number"):
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "order number collision, please retry",
		}
	default:
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "this record already exists",
		}
	}
}

func notFoundMessage(context string) string {
	switch context {
	case "user":
		return "user not found"
	case "item":
		return "item not found"
	case "cart":
		return "cart not found"
	case "order":
		return "order not found"
	case "return":
		return "return not found"
	case "review":
		return "review not found"
	default:
		return "resource not found"
	}
}

func defaultErrorMessage(context string) string {
	if context == "" {
		return "an internal error occurred"
	}
	return "failed to process " + context + " request"
}
