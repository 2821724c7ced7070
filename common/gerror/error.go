package gerror

import (
	"fmt"
	"sort"
)

type Code string
type DetailKey string
type Details map[DetailKey]Detail

type Error struct {
	innerErr error
	// errorText is the full error chain suitable for logging and debugging
	errorText string
	// message is the short human friendly error message
	message string
	details Details
	code    Code
}

func NewError(message string, code Code, inner error) Error {
	return NewErrorWithDetails(message, nil, code, inner)
}

func NewErrorWithDetails(message string, details Details, code Code, inner error) Error {
	return Error{
		innerErr:  inner,
		message:   message,
		errorText: makeErrorText(message, details, inner),
		details:   details,
		code:      code,
	}
}

func (e Error) Error() string {
	if e.errorText != "" {
		return e.errorText
	} else {
		// If errorText not set, return the message
		return e.message
	}
}

func (e Error) Unwrap() error {
	return e.innerErr
}

func (e Error) Message() string {
	return e.message
}

func (e Error) Details() map[DetailKey]Detail {
	m := make(Details, len(e.details))
	for k, v := range e.details {
		m[k] = v
	}
	return m
}

func (e Error) Code() Code {
	return e.code
}

// Wrap returns a copy of the error with the inner error set to the specified err.
func (e Error) Wrap(innerErr error) Error {
	return Error{
		innerErr:  innerErr,
		errorText: makeErrorText(e.message, e.details, innerErr),
		message:   e.message,
		details:   e.Details(),
		code:      e.code,
	}
}

// Detail returns a copy of the error with a new detail appended to it.
func (e Error) Detail(key DetailKey, value interface{}) Error {
	details := e.Details()
	details[key] = NewDetail(key, value)
	return Error{
		details:   details,
		errorText: makeErrorText(e.message, details, e.innerErr),
		innerErr:  e.innerErr,
		message:   e.message,
		code:      e.code,
	}
}

// makeErrorText renders details in key order so the same error always reads the same way.
func makeErrorText(message string, details Details, inner error) string {
	var detailsStr string
	if len(details) > 0 {
		keys := make([]string, 0, len(details))
		for k := range details {
			keys = append(keys, string(k))
		}
		sort.Strings(keys)
		detailsStr = " ["
		for _, k := range keys {
			if detailsStr == " [" {
				detailsStr += fmt.Sprintf("%s=%v", k, details[DetailKey(k)].value)
			} else {
				detailsStr += fmt.Sprintf(", %s=%v", k, details[DetailKey(k)].value)
			}
		}
		detailsStr += "]"
	}
	var errStr string
	if inner != nil {
		errStr = fmt.Sprintf(": %v", inner)
	}
	return fmt.Sprintf("%s%s%s", message, detailsStr, errStr)
}

type Detail struct {
	key   DetailKey
	value interface{}
}

func NewDetail(key DetailKey, value interface{}) Detail {
	return Detail{
		key:   key,
		value: value,
	}
}

func (a Detail) Key() DetailKey {
	return a.key
}

func (a Detail) Value() interface{} {
	return a.value
}
