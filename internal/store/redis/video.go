package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Kim-wonder/routineon/internal/domain"
)

// SaveVideo upserts a video under its platform id. Re-saving the same id
// overwrites the record wholesale.
func (s *Store) SaveVideo(ctx context.Context, video *domain.Video) error {
	data, err := json.Marshal(video)
	if err != nil {
		return fmt.Errorf("failed to marshal video: %w", err)
	}

	if err := s.client.Set(ctx, VideoKey(video.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save video: %w", err)
	}

	if err := s.client.SAdd(ctx, KeyAllVideos, video.ID).Err(); err != nil {
		return fmt.Errorf("failed to add video to set: %w", err)
	}

	return nil
}

// GetVideo retrieves a video by ID. Returns ErrNotFound when absent.
func (s *Store) GetVideo(ctx context.Context, id string) (*domain.Video, error) {
	data, err := s.client.Get(ctx, VideoKey(id)).Bytes()
	if err != nil {
		if isNil(err) {
			return nil, fmt.Errorf("video %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	var video domain.Video
	if err := json.Unmarshal(data, &video); err != nil {
		return nil, fmt.Errorf("failed to unmarshal video: %w", err)
	}

	return &video, nil
}

// GetAllVideos retrieves every stored video, skipping unreadable entries.
func (s *Store) GetAllVideos(ctx context.Context) ([]*domain.Video, error) {
	ids, err := s.client.SMembers(ctx, KeyAllVideos).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get video IDs: %w", err)
	}

	videos := make([]*domain.Video, 0, len(ids))
	for _, id := range ids {
		video, err := s.GetVideo(ctx, id)
		if err != nil {
			continue
		}
		videos = append(videos, video)
	}

	return videos, nil
}
