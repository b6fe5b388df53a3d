package auth

import "hostel/internal/pkg/apperr"

var (
	ErrInvalidCredentials = apperr.Unauthorized("INVALID_CREDENTIALS", "Email or password is incorrect")
	ErrEmailAlreadyExists = apperr.Conflict("EMAIL_EXISTS", "Email already registered")
	ErrUserNotFound       = apperr.NotFound("USER_NOT_FOUND", "User not found")
)
