package notify

import (
	"context"

	"github.com/Kim-wonder/routineon/internal/index"
	"github.com/Kim-wonder/routineon/internal/logger"
	redisstore "github.com/Kim-wonder/routineon/internal/store/redis"
)

// Syncer primes the memory index from Redis on startup so the engine's
// first poll tick already sees the stored alarms.
type Syncer struct {
	store  *redisstore.Store
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewSyncer creates a new store-to-index syncer
func NewSyncer(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
) *Syncer {
	return &Syncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync loads alarms and videos from Redis and replaces the index contents.
func (s *Syncer) Sync(ctx context.Context) error {
	s.logger.Info("syncing alarms and videos from redis to memory")

	alarms, err := s.store.GetAllAlarms(ctx)
	if err != nil {
		return err
	}
	videos, err := s.store.GetAllVideos(ctx)
	if err != nil {
		return err
	}

	s.index.ReplaceAll(alarms, videos)

	s.logger.Info("synced from redis",
		logger.Int("alarms", len(alarms)),
		logger.Int("videos", len(videos)))

	return nil
}
