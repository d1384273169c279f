// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthEmailTaken         = "auth.email_taken"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAdminAccessDenied      = "admin.access_denied"

	// Users
	KeyUserNotFound = "user.not_found"

	// Factories
	KeyFactoryCreated  = "factory.created"
	KeyFactoryUpdated  = "factory.updated"
	KeyFactoryDeleted  = "factory.deleted"
	KeyFactoryNotFound = "factory.not_found"

	// Reviews
	KeyReviewCreated = "review.created"

	// Uploads
	KeyUploadInvalidImage = "upload.invalid_image"
	KeyUploadTooLarge     = "upload.too_large"
	KeyUploadFailed       = "upload.failed"

	// Generic
	KeyValidationInvalid = "validation.invalid"
	KeyInternalError     = "error.internal"
)
