package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
)

// ErrInvalidKey is returned for keys outside [A-Za-z0-9._-]{1,128}.
var ErrInvalidKey = errors.New("invalid store key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// DefaultClientID namespaces requests that carry no client header.
const DefaultClientID = "default"

// Store keeps JSON values under string keys.
type Store interface {
	// Get decodes the value under key into dst and reports whether it was
	// present.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
}

func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// ClientKey scopes key to a client. An invalid client ID falls back to the
// default namespace.
func ClientKey(clientID, key string) string {
	if clientID == "" || ValidateKey(clientID) != nil {
		clientID = DefaultClientID
	}
	return clientID + "." + key
}

// GetOr loads key into dst, leaving def there when the key is absent or the
// stored value cannot be read.
func GetOr[T any](ctx context.Context, store Store, key string, def T) T {
	var out T
	found, err := store.Get(ctx, key, &out)
	if err != nil {
		log.Printf("store: reading %s: %v", key, err)
		return def
	}
	if !found {
		return def
	}
	return out
}

// MemoryStore keeps encoded values in memory.
type MemoryStore struct {
	cache *CacheService
}

func NewMemoryStore(cache *CacheService) *MemoryStore {
	return &MemoryStore{cache: cache}
}

func (s *MemoryStore) Get(_ context.Context, key string, dst any) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	v, found := s.cache.Get(key)
	if !found {
		return false, nil
	}
	raw, ok := v.([]byte)
	if !ok {
		return false, fmt.Errorf("unexpected value type %T under %s", v, key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value any) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	s.cache.SetPermanent(key, raw)
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s.cache.Delete(key)
	return nil
}

// objectBackend is the part of MinIOService the object store needs.
type objectBackend interface {
	GetObject(ctx context.Context, objectPath string) ([]byte, bool, error)
	PutObject(ctx context.Context, objectPath string, data []byte, contentType string) error
	RemoveObject(ctx context.Context, objectPath string) error
}

// ObjectStore keeps values as JSON objects under kv/ in a bucket.
type ObjectStore struct {
	backend objectBackend
}

func NewObjectStore(backend objectBackend) *ObjectStore {
	return &ObjectStore{backend: backend}
}

func objectKey(key string) string {
	return "kv/" + key + ".json"
}

func (s *ObjectStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	raw, found, err := s.backend.GetObject(ctx, objectKey(key))
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (s *ObjectStore) Set(ctx context.Context, key string, value any) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.backend.PutObject(ctx, objectKey(key), raw, "application/json")
}

func (s *ObjectStore) Remove(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return s.backend.RemoveObject(ctx, objectKey(key))
}
