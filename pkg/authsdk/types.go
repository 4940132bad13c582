package authsdk

import "time"

// ============================================================================
// Token Types
// ============================================================================

// GrantTypePassword is the only grant accepted by POST /v1/auth/token.
const GrantTypePassword = "password"

// TokenRequest is the body of POST /v1/auth/token.
type TokenRequest struct {
	// GrantType must be "password" (case-insensitive)
	GrantType string `json:"grant_type" validate:"required"`

	// Email of the account
	Email string `json:"email" validate:"required,email,max=254"`

	// Password in plain text. Only carried over TLS.
	Password string `json:"password" validate:"required,max=128"`
}

// RefreshRequest is the body of POST /v1/auth/refresh and /v1/auth/revoke.
// Either field may be omitted when the matching cookie is sent instead.
type RefreshRequest struct {
	AccountID    string `json:"account_id,omitempty" validate:"required,ulid"`
	RefreshToken string `json:"refresh_token,omitempty" validate:"required,max=512"`
}

// TokenResponse is returned from POST /v1/auth/token and /v1/auth/refresh.
type TokenResponse struct {
	// AccountID of the authenticated account
	AccountID string `json:"account_id"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// AccessToken is the HS256 signed JWT used to authenticate API requests
	AccessToken string `json:"access_token"`

	// AccessTokenExpiry is when the access token stops being accepted
	AccessTokenExpiry time.Time `json:"access_token_expiry"`

	// RefreshToken is the single-use opaque code used to obtain new tokens
	RefreshToken string `json:"refresh_token"`

	// RefreshTokenExpiry is when the refresh code can no longer be redeemed
	RefreshTokenExpiry time.Time `json:"refresh_token_expiry"`
}

// ============================================================================
// Account Types
// ============================================================================

// RegisterRequest is the body of POST /v1/accounts.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// ChangePasswordRequest is the body of POST /v1/accounts/me/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,max=128"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128,nefield=CurrentPassword"`
}

// ChangeRoleRequest is the body of PUT /v1/accounts/{id}/role.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,max=64"`
}

// AccountResponse is the public projection of an account.
type AccountResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ============================================================================
// Error Types
// ============================================================================

// MessageResponse is the body of business failures, e.g. {"message": "Invalid token."}.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse is returned when request validation fails.
type ValidationErrorResponse struct {
	// Code is the error code (always "validation_error")
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains field-specific validation errors (field name: error message)
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned from /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
