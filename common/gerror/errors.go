package gerror

import (
	"errors"
)

const (
	ErrCodeValidationFailed Code = "ValidationFailed"
	ErrCodeParseFailed      Code = "ParseFailed"
	ErrCodeMissingElement   Code = "MissingElement"
	ErrCodeDownloadFailed   Code = "DownloadFailed"
	ErrCodeLocked           Code = "Locked"
)

const (
	DetailFile    DetailKey = "file"
	DetailJob     DetailKey = "job"
	DetailElement DetailKey = "element"
	DetailURL     DetailKey = "url"
	DetailStatus  DetailKey = "status"
)

// ToError locates an Error in the provided error chain and returns it if it
// matches the provided code. Otherwise, returns nil.
func ToError(err error, code Code) *Error {
	if err == nil {
		return nil
	}
	var gErr Error
	if errors.As(err, &gErr) && gErr.Code() == code {
		return &gErr
	}
	return nil
}

func NewErrValidationFailed(message string) Error {
	return NewError(message, ErrCodeValidationFailed, nil)
}

func ToValidationFailed(err error) *Error {
	return ToError(err, ErrCodeValidationFailed)
}

func IsValidationFailed(err error) bool {
	return ToValidationFailed(err) != nil
}

// NewErrParseFailed is returned when an XML document could not be parsed at all.
func NewErrParseFailed(message string, err error) Error {
	return NewError(message, ErrCodeParseFailed, err)
}

func ToParseFailed(err error) *Error {
	return ToError(err, ErrCodeParseFailed)
}

func IsParseFailed(err error) bool {
	return ToParseFailed(err) != nil
}

// NewErrMissingElement is returned when a recognised element lacks a child element it cannot be
// converted without, e.g. a shell builder with no command.
func NewErrMissingElement(parent string, child string) Error {
	return NewError("missing required element", ErrCodeMissingElement, nil).
		Detail(DetailElement, parent+"/"+child)
}

func ToMissingElement(err error) *Error {
	return ToError(err, ErrCodeMissingElement)
}

func IsMissingElement(err error) bool {
	return ToMissingElement(err) != nil
}

func NewErrDownloadFailed(message string, err error) Error {
	return NewError(message, ErrCodeDownloadFailed, err)
}

func ToDownloadFailed(err error) *Error {
	return ToError(err, ErrCodeDownloadFailed)
}

func IsDownloadFailed(err error) bool {
	return ToDownloadFailed(err) != nil
}

func NewErrLocked(message string) Error {
	return NewError(message, ErrCodeLocked, nil)
}

func IsLocked(err error) bool {
	return ToError(err, ErrCodeLocked) != nil
}
