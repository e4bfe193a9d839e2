package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/the127/tusk/internal/sources"
	"github.com/the127/tusk/internal/utils"
	"github.com/the127/tusk/internal/utils/tusError"
)

func sourceSize(ctx context.Context, source sources.Source) (int64, error) {
	stream, err := source.Open(ctx)
	if err != nil {
		return 0, tusError.NewTusError(tusError.FileReadError).
			WithMessage("opening source").
			Wrap(err)
	}
	defer utils.IgnoreError(stream.Close)

	return stream.Size(), nil
}

func fingerprintOf(ctx context.Context, source sources.Source) (string, error) {
	fingerprinter, ok := source.(sources.Fingerprinter)
	if !ok {
		return "", errors.New("source cannot be fingerprinted")
	}

	fingerprint, err := fingerprinter.Fingerprint(ctx)
	if err != nil {
		return "", fmt.Errorf("fingerprinting source: %w", err)
	}

	return fingerprint, nil
}

// isRetryable reports whether re-entering the upload can get past err.
func isRetryable(err error) bool {
	switch tusError.CodeOf(err) {
	case tusError.TransportError, tusError.WrongOffset:
		return true

	case tusError.UnexpectedStatus:
		return tusError.StatusCodeOf(err) >= 500

	default:
		return false
	}
}
