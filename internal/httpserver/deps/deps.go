package deps

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/Kim-wonder/routineon/internal/domain"
	"github.com/Kim-wonder/routineon/internal/index"
	"github.com/Kim-wonder/routineon/internal/logger"
	"github.com/Kim-wonder/routineon/internal/notify"
	"github.com/Kim-wonder/routineon/internal/youtube"
)

// Store is the persistence surface the handlers write through. Satisfied by
// the Redis store.
type Store interface {
	SaveAlarm(ctx context.Context, alarm *domain.Alarm) error
	DeleteAlarm(ctx context.Context, id string) error
	SaveVideo(ctx context.Context, video *domain.Video) error
	GetHistory(ctx context.Context) ([]*domain.HistoryRecord, error)
}

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	AllowedHosts []string // Host headers allowed to access the server
	AllowedCIDRS []string // IPs allowed to access health/infra endpoints
	TrustProxy   bool     // true if running behind a trusted reverse proxy

	RedisClient *redis.Client
	Store       Store
	MemoryIndex *index.MemoryIndex
	Engine      *notify.Engine
	YouTube     *youtube.Client
	Validate    *validator.Validate

	SeedReloadTrigger chan struct{} // nil when seeding is disabled

	ResolveBurst        int // rate limit on the metadata-resolve endpoint
	ResolveRefillPerMin int
}
