package errors

import (
	stderrors "errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// ErrInvalidOffset rejects writes at a non-zero position and negative read offsets.
	ErrInvalidOffset      = fmt.Errorf("invalid offset")
	ErrNoContent          = fmt.Errorf("no content")
	ErrUnsupportedCommand = fmt.Errorf("unsupported command")
	// ErrTransportFailure wraps whatever the byte-copy boundary returned.
	ErrTransportFailure = fmt.Errorf("transport failure")
)

var grpcCodes = []struct {
	err  error
	code codes.Code
}{
	{ErrInvalidOffset, codes.InvalidArgument},
	{ErrNoContent, codes.NotFound},
	{ErrUnsupportedCommand, codes.Unimplemented},
	{ErrTransportFailure, codes.DataLoss},
}

// MapToGRPCError converts a domain error into a gRPC status error.
// Unknown errors become codes.Internal.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	for _, c := range grpcCodes {
		if stderrors.Is(err, c.err) {
			return status.Error(c.code, err.Error())
		}
	}
	return status.Error(codes.Internal, err.Error())
}

// FromGRPCError is the client side of MapToGRPCError: it restores the sentinel
// so callers can keep using errors.Is across the wire.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for _, c := range grpcCodes {
		if st.Code() == c.code {
			return fmt.Errorf("%w: %s", c.err, st.Message())
		}
	}
	return err
}
