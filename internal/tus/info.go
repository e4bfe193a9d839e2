package tus

import (
	"context"
	"net/http"

	"github.com/the127/tusk/internal/headers"
	"github.com/the127/tusk/internal/transport"
	"github.com/the127/tusk/internal/utils/tusError"
)

// UploadInfo describes an upload resource as the server sees it.
type UploadInfo struct {
	// BytesUploaded is how many bytes the server has received.
	BytesUploaded int64
	// TotalSize is the declared size of the upload, nil if the server did not report it.
	TotalSize *int64
	// Metadata supplied when the upload was created, nil if the server did not report any.
	Metadata map[string]string
}

// GetInfo queries the current state of the upload at url. Every 4xx status
// and a missing upload-offset header are reported as tusError.ErrNotFound.
func (c *Client) GetInfo(ctx context.Context, url string) (*UploadInfo, error) {
	req := c.newRequest(transport.MethodHead, url, nil, headers.Default())

	response, err := c.execute(ctx, req)
	if err != nil {
		return nil, err
	}

	offsetValue, hasOffset := response.Headers.Get(headers.UploadOffset)
	if isClientError(response.StatusCode) || !hasOffset {
		return nil, tusError.NewTusError(tusError.NotFound).
			WithStatusCode(response.StatusCode)
	}

	bytesUploaded, err := headers.ParseInt(headers.UploadOffset, offsetValue)
	if err != nil {
		return nil, err
	}

	var metadata map[string]string
	if raw, ok := response.Headers.Get(headers.UploadMetadata); ok {
		metadata, err = headers.DecodeMetadata(raw)
		if err != nil {
			return nil, err
		}
	}

	return &UploadInfo{
		BytesUploaded: bytesUploaded,
		TotalSize:     response.Headers.GetInt(headers.UploadLength),
		Metadata:      metadata,
	}, nil
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}
