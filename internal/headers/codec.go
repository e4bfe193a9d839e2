package headers

import (
	"encoding/base64"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/the127/tusk/internal/utils/tusError"
)

// EncodeMetadata renders metadata for the upload-metadata request header as
// "key base64(value)" pairs joined by ",". Keys are sorted. An empty map
// encodes to "" and the header should then be omitted.
func EncodeMetadata(metadata map[string]string) string {
	pairs := make([]string, 0, len(metadata))
	for _, key := range slices.Sorted(maps.Keys(metadata)) {
		pairs = append(pairs, fmt.Sprintf("%s %s", key, base64.StdEncoding.EncodeToString([]byte(metadata[key]))))
	}

	return strings.Join(pairs, ",")
}

// DecodeMetadata reads the upload-metadata response header. The whole value is
// base64 encoded once and holds "key:value" entries joined by ";". An entry
// without ":" maps its key to "".
func DecodeMetadata(value string) (map[string]string, error) {
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, tusError.NewTusError(tusError.DecodeError).
			WithMessage("upload metadata is not valid base64").
			Wrap(err)
	}

	if !utf8.Valid(decoded) {
		return nil, tusError.NewTusError(tusError.DecodeError).
			WithMessage("upload metadata is not valid utf-8")
	}

	metadata := make(map[string]string)
	for _, entry := range strings.Split(string(decoded), ";") {
		key, val, _ := strings.Cut(entry, ":")
		metadata[key] = val
	}

	return metadata, nil
}

// ParseVersionList splits a tus-version value. Order is the server's preference.
func ParseVersionList(value string) []string {
	return strings.Split(value, ",")
}

// ParseInt parses a non-negative decimal header value such as upload-offset.
func ParseInt(name string, value string) (int64, error) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, tusError.NewTusError(tusError.Parsing).
			WithHeader(name).
			WithMessage(fmt.Sprintf("'%s' header must be an integer", name)).
			Wrap(err)
	}

	if parsed < 0 {
		return 0, tusError.NewTusError(tusError.Parsing).
			WithHeader(name).
			WithMessage(fmt.Sprintf("'%s' header must not be negative", name))
	}

	return parsed, nil
}

// GetInt looks up an optional integer header. Absent and malformed values both
// yield nil.
func (h Headers) GetInt(name string) *int64 {
	value, ok := h.Get(name)
	if !ok {
		return nil
	}

	parsed, err := ParseInt(name, value)
	if err != nil {
		return nil
	}

	return &parsed
}
