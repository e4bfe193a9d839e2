package tus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/the127/tusk/internal/headers"
	"github.com/the127/tusk/internal/logging"
	"github.com/the127/tusk/internal/sources"
	"github.com/the127/tusk/internal/transport"
	"github.com/the127/tusk/internal/utils/tusError"
)

// Upload transfers source to the upload at url in chunks of DefaultChunkSize.
func (c *Client) Upload(ctx context.Context, url string, source sources.Source) error {
	return c.UploadWithChunkSize(ctx, url, source, DefaultChunkSize)
}

// UploadWithChunkSize transfers source to the upload at url, starting at the
// offset the server reports. Chunks are sent one after another and a failed
// exchange ends the call; calling it again resumes from wherever the server
// is at that point.
func (c *Client) UploadWithChunkSize(ctx context.Context, url string, source sources.Source, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	t := &tracker{
		fn: c.onProgress,
		progress: Progress{
			Url:   url,
			State: StateNotStarted,
		},
	}

	t.transition(StateInspecting)
	info, err := c.GetInfo(ctx, url)
	if err != nil {
		return t.fail(err)
	}

	stream, err := source.Open(ctx)
	if err != nil {
		return t.fail(fileReadError("opening source", err))
	}
	defer func() {
		_ = stream.Close()
	}()

	size := stream.Size()
	t.progress.Size = size
	t.progress.Offset = info.BytesUploaded

	if info.TotalSize != nil && *info.TotalSize != size {
		return t.fail(tusError.NewTusError(tusError.UnequalSize).
			WithMessage(fmt.Sprintf("local size %d, server size %d", size, *info.TotalSize)))
	}

	offset := info.BytesUploaded
	if offset >= size {
		logging.Logger.Debugf("upload %s already complete at offset %d", url, offset)
		t.transition(StateComplete)
		return nil
	}

	_, err = stream.Seek(offset, io.SeekStart)
	if err != nil {
		return t.fail(fileReadError("seeking source", err))
	}

	logging.Logger.Debugf("resuming upload %s at offset %d of %d", url, offset, size)
	t.transition(StateTransferring)

	buffer := make([]byte, chunkSize)
	for {
		n, err := io.ReadFull(stream, buffer)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return t.fail(fileReadError("reading source", err))
		}
		if n == 0 {
			return t.fail(tusError.NewTusError(tusError.FileReadError).
				WithMessage(fmt.Sprintf("source ended at offset %d before its length %d", offset, size)))
		}

		acknowledged, err := c.sendChunk(ctx, url, offset, buffer[:n])
		if err != nil {
			return t.fail(err)
		}

		if acknowledged <= offset {
			return t.fail(tusError.NewTusError(tusError.WrongOffset).
				WithMessage(fmt.Sprintf("server did not advance past offset %d", offset)))
		}

		// the server may accept only part of a chunk
		if acknowledged != offset+int64(n) && acknowledged < size {
			_, err = stream.Seek(acknowledged, io.SeekStart)
			if err != nil {
				return t.fail(fileReadError("seeking source", err))
			}
		}

		offset = acknowledged
		t.advance(offset)

		if offset >= size {
			logging.Logger.Debugf("upload %s complete at offset %d", url, offset)
			t.transition(StateComplete)
			return nil
		}
	}
}

// sendChunk transfers one chunk at offset and returns the offset the server
// acknowledged.
func (c *Client) sendChunk(ctx context.Context, url string, offset int64, chunk []byte) (int64, error) {
	h := headers.Default()
	h.Set(headers.ContentType, headers.OffsetOctetStream)
	h.Set(headers.UploadOffset, strconv.FormatInt(offset, 10))

	req := c.newRequest(transport.MethodPatch, url, chunk, h)

	response, err := c.execute(ctx, req)
	if err != nil {
		return 0, err
	}

	switch response.StatusCode {
	case http.StatusNoContent:
		break

	case http.StatusConflict:
		return 0, tusError.NewTusError(tusError.WrongOffset).
			WithStatusCode(response.StatusCode).
			WithMessage(fmt.Sprintf("server rejected offset %d", offset))

	case http.StatusNotFound:
		return 0, tusError.NewTusError(tusError.NotFound).
			WithStatusCode(response.StatusCode)

	default:
		return 0, unexpectedStatus(response.StatusCode)
	}

	value, ok := response.Headers.Get(headers.UploadOffset)
	if !ok {
		return 0, missingHeader(headers.UploadOffset)
	}

	return headers.ParseInt(headers.UploadOffset, value)
}

func fileReadError(message string, err error) error {
	return tusError.NewTusError(tusError.FileReadError).
		WithMessage(message).
		Wrap(err)
}
