package tus

import (
	"context"
	"net/http"
	"strconv"

	"github.com/the127/tusk/internal/headers"
	"github.com/the127/tusk/internal/transport"
	"github.com/the127/tusk/internal/utils/tusError"
)

// Create creates an upload resource of size bytes below url and returns its address.
func (c *Client) Create(ctx context.Context, url string, size int64) (string, error) {
	return c.CreateWithMetadata(ctx, url, size, nil)
}

// CreateWithMetadata is like Create but attaches metadata to the upload.
func (c *Client) CreateWithMetadata(ctx context.Context, url string, size int64, metadata map[string]string) (string, error) {
	h := headers.Default()
	h.Set(headers.UploadLength, strconv.FormatInt(size, 10))
	if len(metadata) > 0 {
		h.Set(headers.UploadMetadata, headers.EncodeMetadata(metadata))
	}

	req := c.newRequest(transport.MethodPost, url, nil, h)

	response, err := c.execute(ctx, req)
	if err != nil {
		return "", err
	}

	if response.StatusCode == http.StatusRequestEntityTooLarge {
		return "", tusError.NewTusError(tusError.FileTooLarge).
			WithStatusCode(response.StatusCode)
	}

	if response.StatusCode != http.StatusCreated {
		return "", unexpectedStatus(response.StatusCode)
	}

	location, ok := response.Headers.Get(headers.Location)
	if !ok || location == "" {
		return "", missingHeader(headers.Location)
	}

	return location, nil
}

// Delete terminates the upload at url.
func (c *Client) Delete(ctx context.Context, url string) error {
	req := c.newRequest(transport.MethodDelete, url, nil, headers.Default())

	response, err := c.execute(ctx, req)
	if err != nil {
		return err
	}

	if response.StatusCode != http.StatusNoContent {
		return unexpectedStatus(response.StatusCode)
	}

	return nil
}
