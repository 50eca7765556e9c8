package linkage

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidChainLength indicates a linkage that does not have exactly three links.
	ErrInvalidChainLength = errors.New("linkage: invalid chain length")

	// ErrInvalidInputVectorLength indicates an input vector of the wrong size.
	ErrInvalidInputVectorLength = errors.New("linkage: invalid input vector length")

	// ErrFactorization indicates the inverse dynamics system could not be decomposed.
	ErrFactorization = errors.New("linkage: singular value decomposition failed")
)

// ShapeError reports which operation rejected its input and why.
type ShapeError struct {
	Op   string
	Want int
	Got  int
	Err  error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: want %d, got %d: %v", e.Op, e.Want, e.Got, e.Err)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

func chainLengthError(op string, got int) error {
	return &ShapeError{Op: op, Want: NumLinks, Got: got, Err: ErrInvalidChainLength}
}

func vectorLengthError(op string, want, got int) error {
	return &ShapeError{Op: op, Want: want, Got: got, Err: ErrInvalidInputVectorLength}
}
