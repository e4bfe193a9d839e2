package commands

import (
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/the127/tusk/internal/jsontypes"
	"github.com/the127/tusk/internal/middlewares"
	"github.com/the127/tusk/internal/services/uploadStore"
	"github.com/the127/tusk/internal/sources/file"
	"github.com/the127/tusk/internal/tus"
	"github.com/the127/tusk/internal/utils/validate"
)

type CreateUpload struct {
	Path     string `validate:"required"`
	Url      string `validate:"required,url"`
	Metadata map[string]string
}

type CreateUploadResponse struct {
	Location string
	Size     int64
}

func HandleCreateUpload(ctx context.Context, command CreateUpload) (*CreateUploadResponse, error) {
	err := validate.Validate(command)
	if err != nil {
		return nil, err
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

	location, err := client.CreateWithMetadata(ctx, command.Url, size, command.Metadata)
	if err != nil {
		return nil, fmt.Errorf("creating upload: %w", err)
	}

	err = store.Save(ctx, jsontypes.UploadRecord{
		Fingerprint: fingerprint,
		Url:         location,
		Size:        size,
		Metadata:    command.Metadata,
	})
	if err != nil {
		return nil, err
	}

	return &CreateUploadResponse{
		Location: location,
		Size:     size,
	}, nil
}
