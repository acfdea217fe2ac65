package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// Clients map these codes to their own messages.

const (
	// Authentication (AUTH_)
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"

	// Authorization (AUTHZ_)
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"
	AuthzOwnerOnly = "AUTHZ_OWNER_ONLY"

	// Validation (VALIDATION_)
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationTooLong       = "VALIDATION_TOO_LONG"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// Resources (RESOURCE_)
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// Items (ITEM_)
	ItemNotFound   = "ITEM_NOT_FOUND"
	ItemNameExists = "ITEM_NAME_EXISTS"

	// Cart (CART_)
	CartEmpty       = "CART_EMPTY"
	CartMixedSeller = "CART_MIXED_SELLER"

	// Orders (ORDER_)
	OrderNotFound = "ORDER_NOT_FOUND"

	// Returns (RETURN_)
	ReturnNotFound        = "RETURN_NOT_FOUND"
	ReturnAlreadyRefunded = "RETURN_ALREADY_REFUNDED"

	// Reviews (REVIEW_)
	ReviewNotFound       = "REVIEW_NOT_FOUND"
	ReviewInvalidRating  = "REVIEW_INVALID_RATING"
	ReviewAlreadyExists  = "REVIEW_ALREADY_EXISTS"
	ReviewSelfForbidden  = "REVIEW_SELF_FORBIDDEN"
	ReviewInvalidTarget  = "REVIEW_INVALID_TARGET"
	ReviewOwnerMismatch  = "REVIEW_OWNER_MISMATCH"

	// Payment (PAYMENT_)
	PaymentDeclined = "PAYMENT_DECLINED"
	PaymentFailed   = "PAYMENT_FAILED"

	// Internal (INTERNAL_)
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
