package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Kim-wonder/routineon/internal/domain"
)

// SaveAlarm stores an alarm, creating or replacing it.
func (s *Store) SaveAlarm(ctx context.Context, alarm *domain.Alarm) error {
	data, err := json.Marshal(alarm)
	if err != nil {
		return fmt.Errorf("failed to marshal alarm: %w", err)
	}

	if err := s.client.Set(ctx, AlarmKey(alarm.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save alarm: %w", err)
	}

	if err := s.client.SAdd(ctx, KeyAllAlarms, alarm.ID).Err(); err != nil {
		return fmt.Errorf("failed to add alarm to set: %w", err)
	}

	return nil
}

// GetAlarm retrieves an alarm by ID. Returns ErrNotFound when absent.
func (s *Store) GetAlarm(ctx context.Context, id string) (*domain.Alarm, error) {
	data, err := s.client.Get(ctx, AlarmKey(id)).Bytes()
	if err != nil {
		if isNil(err) {
			return nil, fmt.Errorf("alarm %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get alarm: %w", err)
	}

	var alarm domain.Alarm
	if err := json.Unmarshal(data, &alarm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alarm: %w", err)
	}

	return &alarm, nil
}

// GetAllAlarms retrieves every stored alarm. Entries that cannot be read
// or decoded are skipped.
func (s *Store) GetAllAlarms(ctx context.Context) ([]*domain.Alarm, error) {
	ids, err := s.client.SMembers(ctx, KeyAllAlarms).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get alarm IDs: %w", err)
	}

	alarms := make([]*domain.Alarm, 0, len(ids))
	for _, id := range ids {
		alarm, err := s.GetAlarm(ctx, id)
		if err != nil {
			continue
		}
		alarms = append(alarms, alarm)
	}

	return alarms, nil
}

// DeleteAlarm removes an alarm. History records referencing it are left in
// place on purpose: readers tolerate the orphaned reference.
func (s *Store) DeleteAlarm(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, AlarmKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete alarm: %w", err)
	}

	if err := s.client.SRem(ctx, KeyAllAlarms, id).Err(); err != nil {
		return fmt.Errorf("failed to remove alarm from set: %w", err)
	}

	return nil
}
