package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUnknown            = errors.New("unknown error")

	ErrInvalidMovie         = errors.New("invalid movie")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrQuantityExceedsLimit = errors.New("quantity exceeds limit")
	ErrPriceChanged         = errors.New("stock price changed")
)

// QuantityLimitError возвращается при попытке купить больше акций, чем допускает леджер.
// errors.Is(err, ErrQuantityExceedsLimit) для нее истинно.
type QuantityLimitError struct {
	MovieID    string
	Requested  int64
	MaxAllowed int64
}

func NewQuantityLimitError(movieID string, requested, maxAllowed int64) error {
	return &QuantityLimitError{MovieID: movieID, Requested: requested, MaxAllowed: maxAllowed}
}

func (e *QuantityLimitError) Error() string {
	return fmt.Sprintf(
		"requested %d stocks of movie %s, allowed from 1 to %d",
		e.Requested,
		e.MovieID,
		e.MaxAllowed,
	)
}

func (e *QuantityLimitError) Unwrap() error {
	return ErrQuantityExceedsLimit
}

type InvalidMovieError struct {
	Reason string
}

func NewInvalidMovieError(reason string) error {
	return &InvalidMovieError{Reason: reason}
}

func (e *InvalidMovieError) Error() string {
	return "invalid movie: " + e.Reason
}

func (e *InvalidMovieError) Unwrap() error {
	return ErrInvalidMovie
}
