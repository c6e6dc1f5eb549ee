package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrWrongTokenType indicates a token of one type was presented where
	// another type was required (e.g. a refresh token on an access route)
	ErrWrongTokenType = errors.New("incorrect token type")

	// ErrInvalidRefreshToken indicates the refresh token is malformed or its
	// signature doesn't match
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken indicates the refresh token has expired
	ErrExpiredRefreshToken = errors.New("refresh token has expired")

	// ErrInvalidCredentials indicates the email/password pair did not match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrProviderUnavailable indicates the identity provider failed in an
	// unexpected way, distinct from rejecting the credential
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)
