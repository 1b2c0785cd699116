package auth

import "github.com/hrportal/leave-management/internal/user"

// LoginDTO is the transport shape used by the HTTP handler to accept login
// requests. Sessions are keyed by email alone; there is no password concept
// in the portal.
type LoginDTO struct {
	Email string `json:"email"`
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse carries the resolved user alongside the session tokens so
// the client can route to the role-specific view immediately.
type LoginResponse struct {
	User   *user.User `json:"user"`
	Tokens AuthTokens `json:"tokens"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Validate checks required fields and returns a ValidationError on failure.
func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	return nil
}

// Validate for refresh token DTO
func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return ValidationError{Msg: "refresh_token is required"}
	}
	return nil
}
