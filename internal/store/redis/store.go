package redis

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Store handles Redis persistence for alarms, videos and history.
//
// Entities are stored as JSON blobs under per-id keys, with a set of all
// ids per collection. There is no schema versioning: reads tolerate absent
// keys (empty collection) and skip entries that fail to decode, so blobs
// written by older versions keep loading.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

func isNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
