package headers

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/the127/tusk/internal/utils/tusError"
)

func TestEncodeMetadata(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		metadata map[string]string
		expected string
	}{
		{
			name:     "single pair",
			metadata: map[string]string{"k": "v"},
			expected: "k " + base64.StdEncoding.EncodeToString([]byte("v")),
		},
		{
			name:     "pairs are sorted by key",
			metadata: map[string]string{"filetype": "text/plain", "filename": "a.txt"},
			expected: "filename YS50eHQ=,filetype dGV4dC9wbGFpbg==",
		},
		{
			name:     "empty value",
			metadata: map[string]string{"is_confidential": ""},
			expected: "is_confidential ",
		},
		{
			name:     "empty map",
			metadata: map[string]string{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, EncodeMetadata(tt.metadata))
		})
	}
}

func TestDecodeMetadata(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		expected map[string]string
	}{
		{
			name:     "two entries",
			raw:      "k:v;k2:v2",
			expected: map[string]string{"k": "v", "k2": "v2"},
		},
		{
			name:     "entry without separator",
			raw:      "key_one:value_one;key_two:value_two;k",
			expected: map[string]string{"key_one": "value_one", "key_two": "value_two", "k": ""},
		},
		{
			name:     "splits on the first colon only",
			raw:      "url:http://example.com",
			expected: map[string]string{"url": "http://example.com"},
		},
		{
			name:     "trailing separator yields empty key",
			raw:      "k:v;",
			expected: map[string]string{"k": "v", "": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			metadata, err := DecodeMetadata(base64.StdEncoding.EncodeToString([]byte(tt.raw)))

			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, metadata); diff != "" {
				t.Errorf("DecodeMetadata() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeMetadataIsNotTheInverseOfEncode(t *testing.T) {
	t.Parallel()

	metadata := map[string]string{"k": "v"}

	decoded, err := DecodeMetadata(EncodeMetadata(metadata))

	assert.Error(t, err)
	assert.Nil(t, decoded)
}

func TestDecodeMetadataInvalidBase64(t *testing.T) {
	t.Parallel()

	_, err := DecodeMetadata("not base64!")

	assert.True(t, errors.Is(err, tusError.ErrDecode))
}

func TestDecodeMetadataInvalidUtf8(t *testing.T) {
	t.Parallel()

	_, err := DecodeMetadata(base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, ':', 'v'}))

	assert.True(t, errors.Is(err, tusError.ErrDecode))
}

func TestParseExtensionListIsLenient(t *testing.T) {
	t.Parallel()

	extensions := ParseExtensionList("creation, bogus, termination")

	assert.Equal(t, []Extension{ExtensionCreation, ExtensionTermination}, extensions)
}

func TestParseExtensionListIgnoresCaseAndDuplicates(t *testing.T) {
	t.Parallel()

	extensions := ParseExtensionList("Creation,CHECKSUM , creation,expiration,concatenation,creation-defer-length")

	assert.Equal(t, []Extension{
		ExtensionCreation,
		ExtensionChecksum,
		ExtensionExpiration,
		ExtensionConcatenation,
	}, extensions)
}

func TestParseExtensionListEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ParseExtensionList(""))
}

func TestParseVersionListKeepsOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"1.0.0", "0.2.2", "0.2.1"}, ParseVersionList("1.0.0,0.2.2,0.2.1"))
}

func TestParseInt(t *testing.T) {
	t.Parallel()

	value, err := ParseInt(UploadOffset, "1024")

	require.NoError(t, err)
	assert.Equal(t, int64(1024), value)
}

func TestParseIntMalformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "abc", "1.5", "-1"} {
		_, err := ParseInt(UploadOffset, raw)

		assert.True(t, errors.Is(err, tusError.ErrParsing), "value %q", raw)
	}
}
