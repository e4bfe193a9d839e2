package headers

// Header names are sent lowercase and matched case-insensitively on receipt.
const (
	// UploadOffset is the byte offset within an upload resource.
	UploadOffset = "upload-offset"

	// UploadLength is the size of the entire upload in bytes.
	UploadLength = "upload-length"

	// TusVersion is a comma-separated list of protocol versions supported by the server.
	TusVersion = "tus-version"

	// TusResumable is the protocol version used by the client or the server.
	TusResumable = "tus-resumable"

	// TusExtension is a comma-separated list of the extensions supported by the server.
	TusExtension = "tus-extension"

	// TusMaxSize is the maximum allowed size of an entire upload in bytes.
	TusMaxSize = "tus-max-size"

	// XHttpMethodOverride carries the real method when PATCH or DELETE cannot be sent directly.
	XHttpMethodOverride = "x-http-method-override"

	ContentType    = "content-type"
	UploadMetadata = "upload-metadata"
	Location       = "location"
)

const (
	// ProtocolVersion is the only protocol version this client speaks.
	ProtocolVersion = "1.0.0"

	// OffsetOctetStream is the media type of every chunk transfer.
	OffsetOctetStream = "application/offset+octet-stream"
)
