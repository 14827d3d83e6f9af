package domain

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrLoginFailed        = errors.New("login failed")
	ErrSignupFailed       = errors.New("signup failed")
	ErrForbidden          = errors.New("admin access required")
	ErrAuthRequired       = errors.New("authentication required")
)
