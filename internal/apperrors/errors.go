// Package apperrors defines the error taxonomy shared across service layers.
// Handlers map these sentinels to HTTP status codes; everything else is a
// store failure and surfaces as a generic internal error.
package apperrors

import "errors"

// ErrDuplicateCredential is returned when a username or email is already taken.
var ErrDuplicateCredential = errors.New("username or email already exists")

// ErrInvalidCredentials is returned for both unknown users and wrong passwords,
// so a caller cannot probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnauthenticated is returned when a request carries no usable token.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden is returned when an authenticated caller lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when an operation targets a nonexistent account.
var ErrNotFound = errors.New("not found")

// ErrTokenMalformed is returned when a token does not parse structurally.
var ErrTokenMalformed = errors.New("token is malformed")

// ErrTokenSignatureInvalid is returned when a token's signature does not verify.
var ErrTokenSignatureInvalid = errors.New("token signature is invalid")

// ErrTokenExpired is returned when a token's expiry is in the past.
var ErrTokenExpired = errors.New("token is expired")
