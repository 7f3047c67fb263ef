package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// Authentication and authorization error types. These cover every failure the
// login, token, and media-grant flows can surface to a client.
const (
	ErrorTypeInvalidProvider          ErrorType = "invalid_provider"
	ErrorTypeMissingParameter         ErrorType = "missing_parameter"
	ErrorTypeInvalidState             ErrorType = "invalid_state"
	ErrorTypeProviderExchangeFailed   ErrorType = "provider_exchange_failed"
	ErrorTypeProviderIdentityRejected ErrorType = "provider_identity_rejected"
	ErrorTypeIdentityConflict         ErrorType = "identity_conflict"
	ErrorTypeInvalidExchangeCode      ErrorType = "invalid_exchange_code"
	ErrorTypeInvalidRefreshToken      ErrorType = "invalid_refresh_token"
	ErrorTypeInvalidAccessToken       ErrorType = "invalid_access_token"
	ErrorTypeGrantRoomMismatch        ErrorType = "grant_room_mismatch"
)

// NewInvalidProviderError is returned when the URL names an OAuth provider
// that is not registered.
func NewInvalidProviderError(provider string, supported []string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidProvider,
		Message: "Invalid provider",
		Code:    http.StatusNotFound,
		Details: fmt.Sprintf("unknown OAuth provider %q, supported providers: %s", provider, strings.Join(supported, ", ")),
	}
}

// NewMissingParameterError is returned when a required query or body
// parameter is absent.
func NewMissingParameterError(name string) *AppError {
	return &AppError{
		Type:    ErrorTypeMissingParameter,
		Message: fmt.Sprintf("No %s provided", name),
		Code:    http.StatusBadRequest,
	}
}

// NewInvalidStateError is returned when the anti-CSRF state is unknown or
// older than its 15 minute window. The two cases are deliberately not
// distinguishable to the caller.
func NewInvalidStateError() *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidState,
		Message: "Invalid state",
		Code:    http.StatusBadRequest,
	}
}

// NewProviderExchangeFailedError wraps a provider-reported failure when
// trading the authorization code for provider tokens.
func NewProviderExchangeFailedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeProviderExchangeFailed,
		Message: message,
		Code:    http.StatusBadRequest,
	}
}

// NewProviderIdentityRejectedError is returned when the provider's identity
// payload is unusable, e.g. no verified primary email.
func NewProviderIdentityRejectedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeProviderIdentityRejected,
		Message: message,
		Code:    http.StatusBadRequest,
	}
}

// NewIdentityConflictError is returned when a login's email already belongs
// to a user registered under a different provider or provider id. The
// existing record is never merged or modified.
func NewIdentityConflictError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeIdentityConflict,
		Message: message,
		Code:    http.StatusConflict,
	}
}

// NewInvalidExchangeCodeError is returned for unknown or already-redeemed
// exchange codes.
func NewInvalidExchangeCodeError() *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidExchangeCode,
		Message: "Invalid code",
		Code:    http.StatusBadRequest,
	}
}

// NewInvalidRefreshTokenError is returned when a refresh token is unknown,
// revoked, or past its 30 day hard expiry.
func NewInvalidRefreshTokenError() *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidRefreshToken,
		Message: "Invalid refresh token",
		Code:    http.StatusBadRequest,
	}
}

// NewInvalidAccessTokenError is returned by guards when a bearer token is
// missing, malformed, expired, or signed with the wrong secret.
func NewInvalidAccessTokenError() *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidAccessToken,
		Message: "Invalid token",
		Code:    http.StatusUnauthorized,
	}
}

// NewGrantRoomMismatchError is returned when a media grant is presented
// against an operation scoped to a different room than the grant names.
func NewGrantRoomMismatchError() *AppError {
	return &AppError{
		Type:    ErrorTypeGrantRoomMismatch,
		Message: "Invalid livekit token",
		Code:    http.StatusUnauthorized,
	}
}
