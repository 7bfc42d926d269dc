package seed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kim-wonder/routineon/internal/domain"
	"github.com/Kim-wonder/routineon/internal/youtube"
)

// alarmNamespace derives deterministic alarm ids so re-importing the same
// seed file upserts instead of duplicating.
var alarmNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("routineon/seed/alarm"))

var weekdayNames = map[string]int{
	"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
}

// Mapper converts seed file entries to domain entities
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapVideos converts seed video entries, skipping entries whose URL does
// not contain a recognizable video id.
func (m *Mapper) MapVideos(config *Config) []*domain.Video {
	videos := make([]*domain.Video, 0, len(config.Videos))
	for _, props := range config.Videos {
		id, ok := youtube.ExtractVideoID(props.URL)
		if !ok {
			continue
		}
		videos = append(videos, &domain.Video{
			ID:           id,
			SourceURL:    youtube.WatchURL(id),
			Title:        props.Title,
			ChannelName:  props.Channel,
			ThumbnailURL: props.Thumbnail,
		})
	}
	return videos
}

// MapAlarms converts seed alarm entries to domain alarms. Entries that fail
// validation are returned as errors so the importer can report them without
// aborting the rest of the import.
func (m *Mapper) MapAlarms(config *Config) ([]*domain.Alarm, []error) {
	now := time.Now()
	alarms := make([]*domain.Alarm, 0, len(config.Alarms))
	var errs []error

	for i, props := range config.Alarms {
		videoID, ok := resolveVideoRef(props.Video)
		if !ok {
			errs = append(errs, fmt.Errorf("alarm %d: unrecognized video reference %q", i, props.Video))
			continue
		}

		days, err := parseDays(props.Days)
		if err != nil {
			errs = append(errs, fmt.Errorf("alarm %d: %w", i, err))
			continue
		}

		enabled := true
		if props.Enabled != nil {
			enabled = *props.Enabled
		}

		alarm := &domain.Alarm{
			ID:         seedAlarmID(videoID, props.Time, props.Title),
			VideoID:    videoID,
			Title:      props.Title,
			DaysOfWeek: days,
			Time:       props.Time,
			Enabled:    enabled,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := alarm.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("alarm %d: %w", i, err))
			continue
		}
		alarms = append(alarms, alarm)
	}

	return alarms, errs
}

// seedAlarmID is stable across imports for the same logical alarm.
func seedAlarmID(videoID, at, title string) string {
	return uuid.NewSHA1(alarmNamespace, []byte(videoID+"|"+at+"|"+title)).String()
}

// resolveVideoRef accepts a full URL or a bare 11-character id.
func resolveVideoRef(ref string) (string, bool) {
	if id, ok := youtube.ExtractVideoID(ref); ok {
		return id, true
	}
	if len(ref) == 11 && !strings.ContainsAny(ref, "/:?&") {
		return ref, true
	}
	return "", false
}

func parseDays(names []string) ([]int, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one weekday is required")
	}
	days := make([]int, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if d, ok := weekdayNames[key]; ok {
			days = append(days, d)
			continue
		}
		if d, err := strconv.Atoi(key); err == nil && d >= 0 && d <= 6 {
			days = append(days, d)
			continue
		}
		return nil, fmt.Errorf("unrecognized weekday %q", name)
	}
	return days, nil
}
