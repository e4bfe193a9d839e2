package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/The127/ioc"
	"github.com/avast/retry-go"
	"github.com/the127/tusk/internal/jsontypes"
	"github.com/the127/tusk/internal/logging"
	"github.com/the127/tusk/internal/middlewares"
	"github.com/the127/tusk/internal/services/uploadStore"
	"github.com/the127/tusk/internal/sources/file"
	"github.com/the127/tusk/internal/tus"
	"github.com/the127/tusk/internal/utils/tusError"
	"github.com/the127/tusk/internal/utils/validate"
)

type RetryPolicy struct {
	// Attempts is the total number of upload attempts, 0 means one.
	Attempts uint
	Delay    time.Duration
}

// UploadFile uploads the file at Path. The upload goes to Location when set,
// otherwise to a previously stored upload of the same file, otherwise to a
// new upload created at Url.
type UploadFile struct {
	Path      string `validate:"required"`
	Url       string `validate:"omitempty,url"`
	Location  string `validate:"omitempty,url"`
	ChunkSize int    `validate:"gte=0"`
	Metadata  map[string]string
	Retry     RetryPolicy
}

type UploadFileResponse struct {
	Location string
	Size     int64
	// Resumed is set when no new upload had to be created.
	Resumed  bool
	Attempts uint
}

func HandleUploadFile(ctx context.Context, command UploadFile) (*UploadFileResponse, error) {
	err := validate.Validate(command)
	if err != nil {
		return nil, err
	}
	if command.Url == "" && command.Location == "" {
		return nil, fmt.Errorf("%w: either Url or Location is required", validate.ErrInvalidRequest)
	}

	scope := middlewares.GetScope(ctx)
	client := ioc.GetDependency[*tus.Client](scope)
	store := ioc.GetDependency[uploadStore.Service](scope)

	source := file.New(command.Path)
	size, err := sourceSize(ctx, source)
	if err != nil {
		return nil, err
	}

	fingerprint, err := fingerprintOf(ctx, source)
	if err != nil {
		return nil, err
	}

	location, resumed, err := resolveLocation(ctx, client, store, command, fingerprint, size)
	if err != nil {
		return nil, err
	}

	attempts := command.Retry.Attempts
	if attempts == 0 {
		attempts = 1
	}

	var tries uint
	err = retry.Do(
		func() error {
			tries++
			return client.UploadWithChunkSize(ctx, location, source, command.ChunkSize)
		},
		retry.Attempts(attempts),
		retry.Delay(command.Retry.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil && isRetryable(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			logging.Logger.Warnf("upload of %s failed: %s, retrying in %s", command.Path, err, command.Retry.Delay)
		}),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", command.Path, err)
	}

	err = store.Remove(ctx, fingerprint)
	if err != nil {
		return nil, err
	}

	return &UploadFileResponse{
		Location: location,
		Size:     size,
		Resumed:  resumed,
		Attempts: tries,
	}, nil
}

// resolveLocation picks the upload url for the file and reports whether it
// refers to an upload that already existed.
func resolveLocation(ctx context.Context, client *tus.Client, store uploadStore.Service, command UploadFile, fingerprint string, size int64) (string, bool, error) {
	if command.Location != "" {
		return command.Location, true, nil
	}

	record, err := store.Find(ctx, fingerprint)
	if err != nil {
		return "", false, err
	}

	if record != nil {
		_, err := client.GetInfo(ctx, record.Url)
		switch {
		case err == nil && record.Size == size:
			logging.Logger.Infof("resuming upload of %s at %s", command.Path, record.Url)
			return record.Url, true, nil

		case err == nil, tusError.CodeOf(err) == tusError.NotFound:
			logging.Logger.Infof("discarding stored upload %s of %s", record.Url, command.Path)
			err = store.Remove(ctx, fingerprint)
			if err != nil {
				return "", false, err
			}

		default:
			return "", false, fmt.Errorf("inspecting stored upload: %w", err)
		}
	}

	location, err := client.CreateWithMetadata(ctx, command.Url, size, command.Metadata)
	if err != nil {
		return "", false, fmt.Errorf("creating upload: %w", err)
	}

	err = store.Save(ctx, jsontypes.UploadRecord{
		Fingerprint: fingerprint,
		Url:         location,
		Size:        size,
		Metadata:    command.Metadata,
	})
	if err != nil {
		return "", false, err
	}

	return location, false, nil
}
