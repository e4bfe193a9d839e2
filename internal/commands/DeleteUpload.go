package commands

import (
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/the127/tusk/internal/middlewares"
	"github.com/the127/tusk/internal/tus"
	"github.com/the127/tusk/internal/utils/validate"
)

type DeleteUpload struct {
	Location string `validate:"required,url"`
}

type DeleteUploadResponse struct{}

func HandleDeleteUpload(ctx context.Context, command DeleteUpload) (*DeleteUploadResponse, error) {
	err := validate.Validate(command)
	if err != nil {
		return nil, err
	}

	scope := middlewares.GetScope(ctx)
	client := ioc.GetDependency[*tus.Client](scope)

	err = client.Delete(ctx, command.Location)
	if err != nil {
		return nil, fmt.Errorf("deleting upload: %w", err)
	}

	return &DeleteUploadResponse{}, nil
}
