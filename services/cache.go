package services

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheService is an in-process TTL cache.
type CacheService struct {
	cache *cache.Cache
}

func NewCacheService(defaultExpiration, cleanupInterval time.Duration) *CacheService {
	return &CacheService{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

func (s *CacheService) Get(key string) (interface{}, bool) {
	return s.cache.Get(key)
}

// GetString returns a cached string value.
func (s *CacheService) GetString(key string) (string, bool) {
	v, found := s.cache.Get(key)
	if !found {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Set stores value; a zero duration uses the cache default, a negative one
// never expires.
func (s *CacheService) Set(key string, value interface{}, duration time.Duration) {
	s.cache.Set(key, value, duration)
}

// SetPermanent stores value without expiration.
func (s *CacheService) SetPermanent(key string, value interface{}) {
	s.cache.Set(key, value, cache.NoExpiration)
}

func (s *CacheService) Delete(key string) {
	s.cache.Delete(key)
}

func (s *CacheService) Flush() {
	s.cache.Flush()
}

func (s *CacheService) ItemCount() int {
	return s.cache.ItemCount()
}
