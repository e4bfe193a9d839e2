package apiError

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/the127/tusk/internal/args"
	"github.com/the127/tusk/internal/logging"
)

var ErrApiBadRequest = errors.New("bad request")
var ErrApiUnsupportedMediaType = errors.New("unsupported media type")
var ErrApiPreconditionFailed = errors.New("precondition failed")
var ErrApiEntityTooLarge = errors.New("request entity too large")
var ErrApiConflict = errors.New("conflict")

var ErrApiNotFound = errors.New("not found")
var ErrApiUploadNotFound = fmt.Errorf("upload not found: %w", ErrApiNotFound)

var ErrApiOffsetMismatch = fmt.Errorf("upload offset does not match: %w", ErrApiConflict)

func HandleHttpError(w http.ResponseWriter, err error) {
	var code int
	var message string

	switch {
	case errors.Is(err, ErrApiBadRequest):
		code = http.StatusBadRequest
		message = err.Error()

	case errors.Is(err, ErrApiNotFound):
		code = http.StatusNotFound
		message = err.Error()

	case errors.Is(err, ErrApiConflict):
		code = http.StatusConflict
		message = err.Error()

	case errors.Is(err, ErrApiPreconditionFailed):
		code = http.StatusPreconditionFailed
		message = err.Error()

	case errors.Is(err, ErrApiEntityTooLarge):
		code = http.StatusRequestEntityTooLarge
		message = err.Error()

	case errors.Is(err, ErrApiUnsupportedMediaType):
		code = http.StatusUnsupportedMediaType
		message = err.Error()

	default:
		code = http.StatusInternalServerError
		if args.IsProduction() {
			message = "Internal Server Error"
		} else {
			message = err.Error()
		}
	}

	logging.Logger.Debugf("HTTP Error: %d %s", code, message)
	http.Error(w, message, code)
}
