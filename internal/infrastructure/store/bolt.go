package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sharebite/backend/internal/domain"
	"github.com/sharebite/backend/internal/infrastructure/model"
	"go.etcd.io/bbolt"
)

var (
	bucketArtifacts = []byte("artifacts")
	bucketMetadata  = []byte("metadata")
	metadataKey     = []byte("current")
)

// BoltStore persists artifacts in a BoltDB file
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens or creates the artifact database at path
func OpenBoltStore(path string) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{bucketArtifacts, bucketMetadata} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Save encodes and stores a predictor under name
func (s *BoltStore) Save(ctx context.Context, name string, p domain.Predictor) error {
	data, err := model.Marshal(p)
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return s.put(bucketArtifacts, []byte(name), data)
}

// Load decodes the predictor stored under name
func (s *BoltStore) Load(ctx context.Context, name string) (domain.Predictor, error) {
	data, err := s.get(bucketArtifacts, []byte(name))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
	}
	return model.Unmarshal(data)
}

// SaveMetadata stores the model schema metadata
func (s *BoltStore) SaveMetadata(ctx context.Context, meta *domain.ModelMetadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	return s.put(bucketMetadata, metadataKey, data)
}

// LoadMetadata returns the stored model schema metadata
func (s *BoltStore) LoadMetadata(ctx context.Context) (*domain.ModelMetadata, error) {
	data, err := s.get(bucketMetadata, metadataKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: metadata", domain.ErrArtifactNotFound)
	}
	var meta domain.ModelMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &meta, nil
}

func (s *BoltStore) put(bucket, key, value []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucket)
		}
		return b.Put(key, value)
	})
}

// get copies the value out of the read transaction; nil means absent
func (s *BoltStore) get(bucket, key []byte) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucket)
		}
		if v := b.Get(key); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, err
}
