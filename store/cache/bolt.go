package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// Bump when the bucket layout or the encoded result format changes; entries
// written under another version are dropped on open.
const boltSchemaVersion = 1

var (
	bucketResults  = []byte("results")
	bucketInternal = []byte("_meta")
)

// storedEntry is the on-disk envelope of one cached result list.
type storedEntry struct {
	ExpiresAt time.Time       `json:"expires_at"`
	Results   json.RawMessage `json:"results"`
}

// BoltCache is a file-backed L2 tier for single-host deployments and the
// CLI. Expired entries are dropped when read and by Sweep.
type BoltCache struct {
	db         *bolt.DB
	defaultTTL time.Duration
	now        func() time.Time
}

// OpenBoltCache opens (or creates) the cache file at path. Parent
// directories are created automatically.
func OpenBoltCache(path string, defaultTTL time.Duration) (*BoltCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "failed to create cache directory")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open cache %s", path)
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultConfig().TTL
	}

	b := &BoltCache{db: db, defaultTTL: defaultTTL, now: time.Now}
	if err := b.migrate(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to migrate cache")
	}
	return b, nil
}

func (b *BoltCache) migrate() error {
	return b.db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketInternal)
		if err != nil {
			return err
		}
		version := []byte(strconv.Itoa(boltSchemaVersion))
		if string(meta.Get([]byte("schema_version"))) != string(version) {
			if tx.Bucket(bucketResults) != nil {
				if err := tx.DeleteBucket(bucketResults); err != nil {
					return err
				}
			}
			if err := meta.Put([]byte("schema_version"), version); err != nil {
				return err
			}
		}
		_, err = tx.CreateBucketIfNotExists(bucketResults)
		return err
	})
}

// Get implements L2.
func (b *BoltCache) Get(_ context.Context, key string) ([]byte, bool) {
	var entry storedEntry
	found := false
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketResults).Get([]byte(KeyHash(key)))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &entry)
	})
	if err != nil {
		slog.Warn("failed to get cache value", "error", err)
		return nil, false
	}
	if !found || !b.now().Before(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Results, true
}

// Set implements L2.
func (b *BoltCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = b.defaultTTL
	}
	data, err := json.Marshal(storedEntry{ExpiresAt: b.now().Add(ttl), Results: value})
	if err != nil {
		slog.Warn("failed to encode cache value", "error", err)
		return
	}
	err = b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketResults).Put([]byte(KeyHash(key)), data)
	})
	if err != nil {
		slog.Warn("failed to set cache value", "error", err)
	}
}

// Sweep deletes expired entries and reports how many were removed.
func (b *BoltCache) Sweep() (int, error) {
	now := b.now()
	removed := 0
	err := b.db.Update(func(tx *bolt.Tx) error {
		var expired [][]byte
		bucket := tx.Bucket(bucketResults)
		err := bucket.ForEach(func(k, v []byte) error {
			var entry storedEntry
			if err := json.Unmarshal(v, &entry); err != nil || !now.Before(entry.ExpiresAt) {
				expired = append(expired, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range expired {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		removed = len(expired)
		return nil
	})
	return removed, err
}

// Len returns the number of stored entries, expired ones included.
func (b *BoltCache) Len() int {
	n := 0
	_ = b.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketResults).Stats().KeyN
		return nil
	})
	return n
}

// Clear implements L2.
func (b *BoltCache) Clear(_ context.Context) {
	err := b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketResults); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketResults)
		return err
	})
	if err != nil {
		slog.Warn("failed to clear cache", "error", err)
	}
}

// Path returns the filesystem path of the cache file.
func (b *BoltCache) Path() string {
	return b.db.Path()
}

// Close implements L2.
func (b *BoltCache) Close() error {
	return b.db.Close()
}

var _ L2 = (*BoltCache)(nil)
