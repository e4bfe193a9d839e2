package tus

import (
	"context"
	"net/http"

	"github.com/the127/tusk/internal/headers"
	"github.com/the127/tusk/internal/transport"
)

// ServerInfo describes the capabilities of a tus server.
type ServerInfo struct {
	// SupportedVersions of the protocol, ordered by the server's preference.
	SupportedVersions []string
	// Extensions the server supports and this client knows about.
	Extensions []headers.Extension
	// MaxUploadSize is the largest upload the server accepts, nil if unlimited or not reported.
	MaxUploadSize *int64
}

func (s *ServerInfo) Supports(extension headers.Extension) bool {
	for _, e := range s.Extensions {
		if e == extension {
			return true
		}
	}

	return false
}

// GetServerInfo discovers the capabilities of the server at url.
func (c *Client) GetServerInfo(ctx context.Context, url string) (*ServerInfo, error) {
	req := c.newRequest(transport.MethodOptions, url, nil, nil)

	response, err := c.execute(ctx, req)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusNoContent {
		return nil, unexpectedStatus(response.StatusCode)
	}

	versions, ok := response.Headers.Get(headers.TusVersion)
	if !ok {
		return nil, missingHeader(headers.TusVersion)
	}

	var extensions []headers.Extension
	if value, ok := response.Headers.Get(headers.TusExtension); ok {
		extensions = headers.ParseExtensionList(value)
	}

	return &ServerInfo{
		SupportedVersions: headers.ParseVersionList(versions),
		Extensions:        extensions,
		MaxUploadSize:     response.Headers.GetInt(headers.TusMaxSize),
	}, nil
}
