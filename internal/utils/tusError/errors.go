package tusError

import (
	"errors"
	"fmt"
)

type TusErrorCode string

const (
	// UnexpectedStatus the server answered with a status code the exchange does not expect
	UnexpectedStatus TusErrorCode = "UNEXPECTED_STATUS"

	// NotFound the upload resource is unknown to the server
	NotFound TusErrorCode = "NOT_FOUND"

	// MissingHeader a required header was missing from the server response
	MissingHeader TusErrorCode = "MISSING_HEADER"

	// Parsing a header value that must be an integer could not be parsed
	Parsing TusErrorCode = "PARSING"

	// DecodeError upload metadata was not valid base64 or utf-8
	DecodeError TusErrorCode = "DECODE_ERROR"

	// UnequalSize the local file size and the size declared by the server differ
	UnequalSize TusErrorCode = "UNEQUAL_SIZE"

	// FileReadError the local file could not be read up to its full length
	FileReadError TusErrorCode = "FILE_READ_ERROR"

	// WrongOffset the server rejected the chunk because of an offset conflict
	WrongOffset TusErrorCode = "WRONG_OFFSET"

	// FileTooLarge the upload is larger than the server accepts
	FileTooLarge TusErrorCode = "FILE_TOO_LARGE"

	// TransportError the transport failed to execute the exchange
	TransportError TusErrorCode = "TRANSPORT_ERROR"
)

var (
	ErrUnexpectedStatus = NewTusError(UnexpectedStatus)
	ErrNotFound         = NewTusError(NotFound)
	ErrMissingHeader    = NewTusError(MissingHeader)
	ErrParsing          = NewTusError(Parsing)
	ErrDecode           = NewTusError(DecodeError)
	ErrUnequalSize      = NewTusError(UnequalSize)
	ErrFileRead         = NewTusError(FileReadError)
	ErrWrongOffset      = NewTusError(WrongOffset)
	ErrFileTooLarge     = NewTusError(FileTooLarge)
	ErrTransport        = NewTusError(TransportError)
)

type TusError struct {
	Code       TusErrorCode
	StatusCode int
	Header     string
	Message    string
	Err        error
}

func NewTusError(code TusErrorCode) *TusError {
	return &TusError{
		Code: code,
	}
}

func (e *TusError) WithMessage(message string) *TusError {
	e.Message = message
	return e
}

func (e *TusError) WithStatusCode(statusCode int) *TusError {
	e.StatusCode = statusCode
	return e
}

func (e *TusError) WithHeader(header string) *TusError {
	e.Header = header
	return e
}

func (e *TusError) Wrap(err error) *TusError {
	e.Err = err
	return e
}

func (e *TusError) Error() string {
	var detail string
	switch {
	case e.Code == UnexpectedStatus && e.StatusCode != 0:
		detail = fmt.Sprintf("status code %d", e.StatusCode)

	case e.Code == MissingHeader && e.Header != "":
		detail = fmt.Sprintf("'%s' header was missing from the server response", e.Header)
	}

	if e.Message != "" {
		if detail != "" {
			detail += ", "
		}
		detail += e.Message
	}

	if e.Err != nil {
		if detail != "" {
			detail += ": "
		}
		detail += e.Err.Error()
	}

	if detail == "" {
		return string(e.Code)
	}

	return fmt.Sprintf("%s: %s", e.Code, detail)
}

func (e *TusError) Unwrap() error {
	return e.Err
}

// Is matches on the error code only, so the Err* values work with errors.Is.
func (e *TusError) Is(target error) bool {
	var other *TusError
	if !errors.As(target, &other) {
		return false
	}

	return e.Code == other.Code
}

// CodeOf returns the code of the first TusError in err's chain, or "" if there is none.
func CodeOf(err error) TusErrorCode {
	var tusErr *TusError
	if errors.As(err, &tusErr) {
		return tusErr.Code
	}

	return ""
}

// StatusCodeOf returns the status code carried by an UnexpectedStatus error, or 0.
func StatusCodeOf(err error) int {
	var tusErr *TusError
	if errors.As(err, &tusErr) {
		return tusErr.StatusCode
	}

	return 0
}
