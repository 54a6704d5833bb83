package errors

import (
	"fmt"
	"time"
)

type ErrorCode string

const (
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeConfig     ErrorCode = "CONFIG_ERROR"
	CodeValidation ErrorCode = "VALIDATION_ERROR"
	CodeInput      ErrorCode = "INPUT_ERROR"
	CodeOutput     ErrorCode = "OUTPUT_ERROR"
)

type AppError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Cause     error     `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Cause:     err,
		Timestamp: time.Now().UTC(),
	}
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func InternalWrap(err error, message string) *AppError {
	return Wrap(err, CodeInternal, message)
}

func Config(message string) *AppError {
	return New(CodeConfig, message)
}

func ConfigWrap(err error, message string) *AppError {
	return Wrap(err, CodeConfig, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

func Input(message string) *AppError {
	return New(CodeInput, message)
}

func InputWrap(err error, message string) *AppError {
	return Wrap(err, CodeInput, message)
}

func Output(message string) *AppError {
	return New(CodeOutput, message)
}

func OutputWrap(err error, message string) *AppError {
	return Wrap(err, CodeOutput, message)
}

// ExitCode maps an error to the process exit code used by cmd/analyze.
// Configuration mistakes, unreadable inputs and failed writes get distinct
// codes so operators can tell them apart in scripts.
func ExitCode(err error) int {
	appErr, ok := err.(*AppError)
	if !ok {
		return 1
	}
	switch appErr.Code {
	case CodeConfig, CodeValidation:
		return 2
	case CodeInput:
		return 3
	case CodeOutput:
		return 4
	default:
		return 1
	}
}
