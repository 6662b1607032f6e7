package filtering

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrInvalidGroup is returned when the value under a reserved group key
// (_or, _multi_or) does not have the expected shape.
type ErrInvalidGroup struct {
	Key    string
	Reason string
}

func (e ErrInvalidGroup) Error() string {
	return fmt.Sprintf("invalid group(%s): %s", e.Key, e.Reason)
}
func (e ErrInvalidGroup) Is(target error) bool {
	var errInvalidGroup ErrInvalidGroup
	return errors.As(target, &errInvalidGroup)
}
func (e ErrInvalidGroup) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}

// ErrInvalidComputed is returned when a _fields_diff or _fields_sum value
// cannot be split into field names, thresholds and a comparator.
type ErrInvalidComputed struct {
	Key    string
	Reason string
}

func (e ErrInvalidComputed) Error() string {
	return fmt.Sprintf("invalid computed filter(%s): %s", e.Key, e.Reason)
}
func (e ErrInvalidComputed) Is(target error) bool {
	var errInvalidComputed ErrInvalidComputed
	return errors.As(target, &errInvalidComputed)
}
func (e ErrInvalidComputed) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}
