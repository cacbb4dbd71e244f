package tools

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"gitscout/constants"
	"gitscout/vcs"
)

// Envelope status values. Every tool returns exactly one of the two.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the envelope a tool invocation produces: an operation-specific
// success record, or an *Error. Nothing else implements it.
type Result interface {
	envelope()
}

// Error is the failure arm of the envelope.
type Error struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (*Error) envelope() {}

func errorf(format string, args ...any) *Error {
	return &Error{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// guard runs a tool body and converts any failure into the error arm of the
// envelope: structured upstream rejections keep their message behind the
// GitHub prefix, everything else (including a panic in the body) gets the
// generic prefix. No error ever escapes to the host runtime.
func guard(logger zerolog.Logger, fn func() (Result, error)) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("Recovered panic")
			result = errorf("%s%v", constants.UNEXPECTED_ERROR_PREFIX, r)
		}
	}()

	result, err := fn()
	if err == nil {
		return result
	}

	var apiErr *vcs.APIError
	if errors.As(err, &apiErr) {
		logger.Error().Err(err).Msg("GitHub API error")
		return errorf("%s%s", constants.GITHUB_ERROR_PREFIX, apiErr.Message)
	}

	logger.Error().Err(err).Msg("Unexpected error")
	return errorf("%s%s", constants.UNEXPECTED_ERROR_PREFIX, err.Error())
}
