package uploadStore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/the127/tusk/internal/jsontypes"
	"github.com/the127/tusk/internal/services/clock"
	"github.com/the127/tusk/internal/services/kv"
)

type Service interface {
	// Find returns the record stored for fingerprint, or nil if there is none.
	Find(ctx context.Context, fingerprint string) (*jsontypes.UploadRecord, error)
	Save(ctx context.Context, record jsontypes.UploadRecord) error
	Remove(ctx context.Context, fingerprint string) error
}

func buildRecordCacheKey(fingerprint string) string {
	return fmt.Sprintf("upload_record:%s", fingerprint)
}

type service struct {
	kvStore    kv.Store
	clock      clock.Service
	expiration time.Duration
}

// NewService stores records in kvStore. Records expire after expiration, a
// zero expiration keeps them until they are removed.
func NewService(kvStore kv.Store, clockService clock.Service, expiration time.Duration) Service {
	return &service{
		kvStore:    kvStore,
		clock:      clockService,
		expiration: expiration,
	}
}

func (s *service) Find(ctx context.Context, fingerprint string) (*jsontypes.UploadRecord, error) {
	value, ok, err := s.kvStore.Get(ctx, buildRecordCacheKey(fingerprint))
	if err != nil {
		return nil, fmt.Errorf("failed to get upload record: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var record jsontypes.UploadRecord
	err = json.Unmarshal([]byte(value), &record)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal upload record: %w", err)
	}

	return &record, nil
}

func (s *service) Save(ctx context.Context, record jsontypes.UploadRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.clock.Now()
	}

	jsonBytes, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal upload record: %w", err)
	}

	err = s.kvStore.Set(ctx, buildRecordCacheKey(record.Fingerprint), string(jsonBytes), kv.WithExpiration(s.expiration))
	if err != nil {
		return fmt.Errorf("failed to set upload record: %w", err)
	}

	return nil
}

func (s *service) Remove(ctx context.Context, fingerprint string) error {
	err := s.kvStore.Delete(ctx, buildRecordCacheKey(fingerprint))
	if err != nil {
		return fmt.Errorf("failed to delete upload record: %w", err)
	}

	return nil
}
