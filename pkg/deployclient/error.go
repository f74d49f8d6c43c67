package deployclient

import (
	"errors"
	"fmt"
)

type ExitCode int

// Keep separate to avoid skewing exit codes
const (
	ExitSuccess ExitCode = iota
	ExitDeploymentFailure
	ExitNoDeployment
	ExitUnavailable
	ExitInvocationFailure
	ExitInternalError
	ExitTemplateError
	ExitTimeout
	ExitNotFound
)

func (code ExitCode) String() string {
	switch code {
	case ExitSuccess:
		return "success"
	case ExitDeploymentFailure:
		return "deployment failure"
	case ExitNoDeployment:
		return "no deployment"
	case ExitUnavailable:
		return "unavailable"
	case ExitInvocationFailure:
		return "invocation failure"
	case ExitInternalError:
		return "internal error"
	case ExitTemplateError:
		return "template error"
	case ExitTimeout:
		return "timeout"
	case ExitNotFound:
		return "not found"
	default:
		return fmt.Sprintf("exit code %d", int(code))
	}
}

type Error struct {
	Code ExitCode
	Err  error
}

func (err *Error) Error() string {
	return err.Err.Error()
}

func (err *Error) Unwrap() error {
	return err.Err
}

func Errorf(exitCode ExitCode, format string, args ...any) *Error {
	return &Error{
		Code: exitCode,
		Err:  fmt.Errorf(format, args...),
	}
}

func ErrorWrap(exitCode ExitCode, err error) *Error {
	return &Error{
		Code: exitCode,
		Err:  err,
	}
}

// ConfigErrorf reports missing or invalid input. Never retried.
func ConfigErrorf(format string, args ...any) *Error {
	return Errorf(ExitInvocationFailure, format, args...)
}

// NotFoundErrorf reports that the deployment target could not be resolved unambiguously.
func NotFoundErrorf(format string, args ...any) *Error {
	return Errorf(ExitNotFound, format, args...)
}

// TransportError reports a failure to reach the remote service.
func TransportError(err error) *Error {
	return ErrorWrap(ExitUnavailable, err)
}

func ErrorExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var e *Error
	if !errors.As(err, &e) {
		return ExitInternalError
	}
	return e.Code
}

// IsTransportError returns true if err signals that the remote service could not be reached,
// either before or after a deployment was created.
func IsTransportError(err error) bool {
	switch ErrorExitCode(err) {
	case ExitUnavailable, ExitNoDeployment:
		return true
	default:
		return false
	}
}
