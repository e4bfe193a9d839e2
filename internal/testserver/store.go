package testserver

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
	"github.com/the127/tusk/internal/utils/apiError"
)

const uploadsTable = "uploads"

// Upload is the server side state of one upload resource.
type Upload struct {
	Id       uuid.UUID
	Length   int64
	Offset   int64
	Metadata map[string]string
	Data     []byte
}

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		uploadsTable: {
			Name: uploadsTable,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:   "id",
					Unique: true,
					Indexer: &UUIDValueIndexer{
						Getter: func(obj interface{}) uuid.UUID {
							return obj.(Upload).Id
						},
					},
				},
			},
		},
	},
}

type uploadRepository struct {
	db *memdb.MemDB
}

func newUploadRepository() (*uploadRepository, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory database: %w", err)
	}

	return &uploadRepository{
		db: db,
	}, nil
}

func (r *uploadRepository) Single(id uuid.UUID) (*Upload, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	obj, err := txn.First(uploadsTable, "id", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}
	if obj == nil {
		return nil, apiError.ErrApiUploadNotFound
	}

	upload := obj.(Upload)
	return &upload, nil
}

// Save inserts or replaces the upload.
func (r *uploadRepository) Save(upload Upload) error {
	txn := r.db.Txn(true)
	defer txn.Abort()

	err := txn.Insert(uploadsTable, upload)
	if err != nil {
		return fmt.Errorf("failed to insert upload: %w", err)
	}

	txn.Commit()
	return nil
}

func (r *uploadRepository) Delete(id uuid.UUID) error {
	txn := r.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First(uploadsTable, "id", id)
	if err != nil {
		return fmt.Errorf("failed to get upload: %w", err)
	}
	if obj == nil {
		return apiError.ErrApiUploadNotFound
	}

	err = txn.Delete(uploadsTable, obj)
	if err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}

	txn.Commit()
	return nil
}
