package domain

import "errors"

var (
	ErrNotFound             = errors.New("record not found")
	ErrUsernameTaken        = errors.New("username already in use")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrTokenInvalid         = errors.New("invalid jwt token")
	ErrPersistence          = errors.New("persistence fault")
	ErrUnknownProperty      = errors.New("inquiry references unknown property")
	ErrGeneratorUnavailable = errors.New("description generator unavailable")
	ErrCollectionMissing    = errors.New("collection document does not exist")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnsupportedMedia     = errors.New("unsupported media type")
)
