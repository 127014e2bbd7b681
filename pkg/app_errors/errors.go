package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrStorage       = errors.New("storage error")

	// InvalidInput 的細分類別，errors.Is(err, ErrInvalidInput) 仍成立
	ErrInvalidTimestamp   = fmt.Errorf("%w: malformed timestamp", ErrInvalidInput)
	ErrNegativeExtraCount = fmt.Errorf("%w: extra count must not be negative", ErrInvalidInput)
	ErrInvalidStatus      = fmt.Errorf("%w: unknown participation status", ErrInvalidInput)
)
