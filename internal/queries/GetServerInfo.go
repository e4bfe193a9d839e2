package queries

import (
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/the127/tusk/internal/headers"
	"github.com/the127/tusk/internal/middlewares"
	"github.com/the127/tusk/internal/tus"
	"github.com/the127/tusk/internal/utils/validate"
)

type GetServerInfo struct {
	Url string `validate:"required,url"`
}

type GetServerInfoResponse struct {
	SupportedVersions []string
	Extensions        []headers.Extension
	MaxUploadSize     *int64
}

func HandleGetServerInfo(ctx context.Context, query GetServerInfo) (*GetServerInfoResponse, error) {
	err := validate.Validate(query)
	if err != nil {
		return nil, err
	}

	scope := middlewares.GetScope(ctx)
	client := ioc.GetDependency[*tus.Client](scope)

	info, err := client.GetServerInfo(ctx, query.Url)
	if err != nil {
		return nil, fmt.Errorf("getting server info: %w", err)
	}

	return &GetServerInfoResponse{
		SupportedVersions: info.SupportedVersions,
		Extensions:        info.Extensions,
		MaxUploadSize:     info.MaxUploadSize,
	}, nil
}
