package index

import (
	"sync"
	"time"

	"github.com/Kim-wonder/routineon/internal/domain"
)

// MemoryIndex is an in-memory mirror of the alarm and video collections.
//
// It is primed from Redis at startup and written through on every mutation,
// so the notification engine can poll it on each tick without a round-trip
// to the store.
type MemoryIndex struct {
	mu       sync.RWMutex
	alarms   map[string]*domain.Alarm
	videos   map[string]*domain.Video
	lastSync time.Time
}

// NewMemoryIndex creates an empty index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		alarms: make(map[string]*domain.Alarm),
		videos: make(map[string]*domain.Video),
	}
}

// ReplaceAll swaps in full collections, typically from a startup sync.
func (idx *MemoryIndex) ReplaceAll(alarms []*domain.Alarm, videos []*domain.Video) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.alarms = make(map[string]*domain.Alarm, len(alarms))
	for _, alarm := range alarms {
		idx.alarms[alarm.ID] = alarm
	}
	idx.videos = make(map[string]*domain.Video, len(videos))
	for _, video := range videos {
		idx.videos[video.ID] = video
	}
	idx.lastSync = time.Now()
}

// PutAlarm adds or replaces a single alarm
func (idx *MemoryIndex) PutAlarm(alarm *domain.Alarm) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.alarms[alarm.ID] = alarm
}

// Alarm retrieves an alarm by ID
func (idx *MemoryIndex) Alarm(id string) (*domain.Alarm, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	alarm, ok := idx.alarms[id]
	return alarm, ok
}

// AllAlarms returns all alarms
func (idx *MemoryIndex) AllAlarms() []*domain.Alarm {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	alarms := make([]*domain.Alarm, 0, len(idx.alarms))
	for _, alarm := range idx.alarms {
		alarms = append(alarms, alarm)
	}
	return alarms
}

// DeleteAlarm removes an alarm from the index
func (idx *MemoryIndex) DeleteAlarm(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.alarms, id)
}

// PutVideo adds or replaces a single video
func (idx *MemoryIndex) PutVideo(video *domain.Video) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.videos[video.ID] = video
}

// Video retrieves a video by ID
func (idx *MemoryIndex) Video(id string) (*domain.Video, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	video, ok := idx.videos[id]
	return video, ok
}

// AllVideos returns all videos
func (idx *MemoryIndex) AllVideos() []*domain.Video {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	videos := make([]*domain.Video, 0, len(idx.videos))
	for _, video := range idx.videos {
		videos = append(videos, video)
	}
	return videos
}

// AlarmCount returns the number of indexed alarms
func (idx *MemoryIndex) AlarmCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.alarms)
}

// VideoCount returns the number of indexed videos
func (idx *MemoryIndex) VideoCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.videos)
}

// LastSync returns when the index was last primed from the store
func (idx *MemoryIndex) LastSync() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastSync
}
