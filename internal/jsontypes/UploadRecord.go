package jsontypes

import "time"

// UploadRecord remembers where the content of a local source is being
// uploaded to, so an interrupted upload can be resumed later.
type UploadRecord struct {
	Fingerprint string            `json:"fingerprint"`
	Url         string            `json:"url"`
	Size        int64             `json:"size"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}
