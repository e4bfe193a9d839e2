package headers

import "strings"

// Extension is an optional protocol capability a server may advertise.
type Extension string

const (
	// ExtensionCreation the server supports creating uploads.
	ExtensionCreation Extension = "creation"

	// ExtensionExpiration the server may expire unfinished uploads.
	ExtensionExpiration Extension = "expiration"

	// ExtensionChecksum the server verifies checksums of uploaded chunks.
	ExtensionChecksum Extension = "checksum"

	// ExtensionTermination the server supports deleting uploads.
	ExtensionTermination Extension = "termination"

	// ExtensionConcatenation the server supports concatenating partial uploads.
	ExtensionConcatenation Extension = "concatenation"
)

var knownExtensions = []Extension{
	ExtensionCreation,
	ExtensionExpiration,
	ExtensionChecksum,
	ExtensionTermination,
	ExtensionConcatenation,
}

// ParseExtension matches a single token case-insensitively. ok is false for
// extensions this client does not know, which is not an error.
func ParseExtension(token string) (Extension, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	for _, extension := range knownExtensions {
		if string(extension) == token {
			return extension, true
		}
	}

	return "", false
}

// ParseExtensionList parses a tus-extension value, silently dropping unknown
// tokens and duplicates.
func ParseExtensionList(value string) []Extension {
	var extensions []Extension
	seen := make(map[Extension]struct{})

	for _, token := range strings.Split(value, ",") {
		extension, ok := ParseExtension(token)
		if !ok {
			continue
		}

		if _, dup := seen[extension]; dup {
			continue
		}

		seen[extension] = struct{}{}
		extensions = append(extensions, extension)
	}

	return extensions
}

func (e Extension) String() string {
	return string(e)
}
