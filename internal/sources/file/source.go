package file

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/minio/sha256-simd"
	"github.com/the127/tusk/internal/sources"
)

type source struct {
	path string
}

type stream struct {
	*os.File
	size int64
}

func (s *stream) Size() int64 {
	return s.size
}

func New(path string) sources.Source {
	return &source{
		path: path,
	}
}

func (s *source) Open(_ context.Context) (sources.Stream, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("getting file info: %w", err)
	}

	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s is a directory", s.path)
	}

	return &stream{
		File: f,
		size: info.Size(),
	}, nil
}

// Fingerprint identifies the file by absolute path, size and modification
// time, so an edited file never resumes a stale upload.
func (s *source) Fingerprint(_ context.Context) (string, error) {
	absPath, err := filepath.Abs(s.path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("getting file info: %w", err)
	}

	hasher := sha256.New()
	hasher.Write([]byte(absPath))
	hasher.Write([]byte{0})
	hasher.Write([]byte(strconv.FormatInt(info.Size(), 10)))
	hasher.Write([]byte{0})
	hasher.Write([]byte(strconv.FormatInt(info.ModTime().UnixNano(), 10)))

	return "file:" + hex.EncodeToString(hasher.Sum(nil)), nil
}
