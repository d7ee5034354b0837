package voxbvh

import (
	"errors"
	"fmt"

	"github.com/hupe1980/voxbvh/internal/tree"
)

var (
	// ErrClosed is returned by every operation on an index after Close.
	ErrClosed = errors.New("voxbvh: index closed")

	// ErrInvalidArgument is returned for nil items or collections, invalid
	// boxes (Start > End on some axis) and negative distances.
	ErrInvalidArgument = errors.New("voxbvh: invalid argument")

	// ErrCorrupt is returned by Validate when a structural invariant is broken.
	ErrCorrupt = errors.New("voxbvh: invariant violated")
)

// InvariantError reports a broken tree invariant found by Validate.
//
// It matches ErrCorrupt with errors.Is.
type InvariantError struct {
	Depth  int
	Reason string
	cause  error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("voxbvh: invariant violated at depth %d: %s", e.Depth, e.Reason)
}

func (e *InvariantError) Is(target error) bool { return target == ErrCorrupt }

func (e *InvariantError) Unwrap() error { return e.cause }

// CountMismatchReason is the InvariantError reason when the item count
// disagrees with the tree contents.
const CountMismatchReason = "count mismatch"

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ve *tree.ViolationError
	if errors.As(err, &ve) {
		return &InvariantError{Depth: ve.Depth, Reason: ve.Reason, cause: err}
	}

	return err
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
