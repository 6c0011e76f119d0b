package domain

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Errno struct {
	err  error
	code codes.Code
}

// GRPCStatus lets status.FromError recover the code.
func (en *Errno) GRPCStatus() *status.Status {
	return status.New(en.code, en.err.Error())
}

func (en *Errno) Error() string {
	return en.err.Error()
}

// Code returns the error code.
func (en *Errno) Code() codes.Code { return en.code }

// NewErrno creates a coded error.
func NewErrno(code codes.Code, err error) *Errno {
	return &Errno{
		err:  err,
		code: code,
	}
}

var (
	ErrSessionNotFound    = NewErrno(codes.NotFound, errors.New("session not found"))
	ErrSessionExists      = NewErrno(codes.AlreadyExists, errors.New("session already exists"))
	ErrEmptyMessage       = NewErrno(codes.InvalidArgument, errors.New("message text is required"))
	ErrCheckInNotActive   = NewErrno(codes.FailedPrecondition, errors.New("no check-in is active"))
	ErrInvalidCheckInStep = NewErrno(codes.FailedPrecondition, errors.New("check-in step out of range"))
)
