package searchkit

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrInvalidTimezone is returned when the timezone name passed to
// WithTimezone is not a valid IANA timezone.
type ErrInvalidTimezone struct {
	name string
	err  error
}

func (e ErrInvalidTimezone) Error() string {
	return fmt.Sprintf("invalid timezone(%s): %s", e.name, e.err)
}
func (e ErrInvalidTimezone) Is(target error) bool {
	var errInvalidTimezone ErrInvalidTimezone
	return errors.As(target, &errInvalidTimezone)
}
func (e ErrInvalidTimezone) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}
