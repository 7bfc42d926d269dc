package seed

import (
	"context"
	"fmt"

	"github.com/Kim-wonder/routineon/internal/index"
	"github.com/Kim-wonder/routineon/internal/logger"
	redisstore "github.com/Kim-wonder/routineon/internal/store/redis"
)

// Importer loads the seed file into the store and index: once at startup
// and again whenever the manual trigger fires. There is no periodic
// re-import; the seed file is not a source of truth after startup.
type Importer struct {
	loader        *Loader
	mapper        *Mapper
	store         *redisstore.Store
	index         *index.MemoryIndex
	logger        logger.Logger
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewImporter creates a new seed importer
func NewImporter(
	seedFile string,
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	manualTrigger chan struct{},
) *Importer {
	return &Importer{
		loader:        NewLoader(seedFile),
		mapper:        NewMapper(),
		store:         store,
		index:         idx,
		logger:        log,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs the initial import and then listens for manual triggers.
func (im *Importer) Start(ctx context.Context) error {
	if err := im.Import(ctx); err != nil {
		return fmt.Errorf("initial seed import failed: %w", err)
	}

	go func() {
		for {
			select {
			case <-im.manualTrigger:
				im.logger.Info("manual seed import triggered")
				if err := im.Import(ctx); err != nil {
					im.logger.Error("failed to import seed file",
						logger.Error(err))
				}
			case <-im.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the importer
func (im *Importer) Stop() {
	close(im.stopCh)
}

// Import loads the seed file and upserts its videos and alarms. Individual
// bad entries are logged and skipped; only an unreadable file is an error.
func (im *Importer) Import(ctx context.Context) error {
	config, err := im.loader.Load()
	if err != nil {
		return err
	}

	videos := im.mapper.MapVideos(config)
	alarms, mapErrs := im.mapper.MapAlarms(config)
	for _, mapErr := range mapErrs {
		im.logger.Warn("skipping seed entry", logger.Error(mapErr))
	}

	for _, video := range videos {
		if err := im.store.SaveVideo(ctx, video); err != nil {
			im.logger.Warn("failed to save seeded video",
				logger.String("video_id", video.ID),
				logger.Error(err))
			continue
		}
		im.index.PutVideo(video)
	}

	for _, alarm := range alarms {
		// Deterministic ids make re-imports overwrite, never duplicate.
		if err := im.store.SaveAlarm(ctx, alarm); err != nil {
			im.logger.Warn("failed to save seeded alarm",
				logger.String("alarm_id", alarm.ID),
				logger.Error(err))
			continue
		}
		im.index.PutAlarm(alarm)
	}

	im.logger.Info("seed import completed",
		logger.Int("videos", len(videos)),
		logger.Int("alarms", len(alarms)),
		logger.Int("skipped", len(mapErrs)))

	return nil
}
