package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("[service]: validation error")
	ErrInvalidURL    = fmt.Errorf("%w: invalid URL", ErrValidation)
	ErrInvalidCode   = errors.New("[service]: invalid code")
	ErrNotFound      = errors.New("[service]: record not found")
	ErrExpired       = errors.New("[service]: link expired")
	ErrAllocation    = errors.New("[service]: unique code could not be allocated")
	ErrRegistryWrite = errors.New("[service]: code registry write failed")
	ErrStorage       = errors.New("[service]: storage error")
	ErrUnauthorized  = errors.New("[service]: unauthorized")
)
