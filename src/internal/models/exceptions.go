package models

import "errors"

var (
	ErrRedisConnection = errors.New("redis connection error")
	ErrRedisGet        = errors.New("redis get error")
	ErrRedisSet        = errors.New("redis set error")
	ErrRedisDelete     = errors.New("redis delete error")
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionExpired    = errors.New("session expired")
	ErrSessionCreating   = errors.New("error creating session")
	ErrTokenGeneration   = errors.New("error generating session token")
	ErrInvalidTheme      = errors.New("invalid theme value")
	ErrMissingCredential = errors.New("username and password are required")
	ErrBadCredentials    = errors.New("invalid credentials")
)

var (
	ErrDatabaseConnection = errors.New("database connection error")
	ErrDatabaseQuery      = errors.New("database query error")
	ErrUserNotFound       = errors.New("user not found")
)
