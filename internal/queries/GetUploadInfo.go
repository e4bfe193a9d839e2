package queries

import (
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/the127/tusk/internal/middlewares"
	"github.com/the127/tusk/internal/tus"
	"github.com/the127/tusk/internal/utils/validate"
)

type GetUploadInfo struct {
	Location string `validate:"required,url"`
}

type GetUploadInfoResponse struct {
	Location      string
	BytesUploaded int64
	TotalSize     *int64
	Metadata      map[string]string
}

func HandleGetUploadInfo(ctx context.Context, query GetUploadInfo) (*GetUploadInfoResponse, error) {
	err := validate.Validate(query)
	if err != nil {
		return nil, err
	}

	scope := middlewares.GetScope(ctx)
	client := ioc.GetDependency[*tus.Client](scope)

	info, err := client.GetInfo(ctx, query.Location)
	if err != nil {
		return nil, fmt.Errorf("getting upload info: %w", err)
	}

	return &GetUploadInfoResponse{
		Location:      query.Location,
		BytesUploaded: info.BytesUploaded,
		TotalSize:     info.TotalSize,
		Metadata:      info.Metadata,
	}, nil
}
