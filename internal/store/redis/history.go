package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Kim-wonder/routineon/internal/domain"
)

// AppendHistory appends a record to the history list. History is
// append-only: records are never mutated or deleted.
func (s *Store) AppendHistory(ctx context.Context, record *domain.HistoryRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal history record: %w", err)
	}

	if err := s.client.RPush(ctx, KeyHistory, data).Err(); err != nil {
		return fmt.Errorf("failed to append history record: %w", err)
	}

	return nil
}

// GetHistory retrieves the full history in insertion order. A record that
// fails to decode is skipped; an absent key is an empty history.
func (s *Store) GetHistory(ctx context.Context) ([]*domain.HistoryRecord, error) {
	entries, err := s.client.LRange(ctx, KeyHistory, 0, -1).Result()
	if err != nil {
		if isNil(err) {
			return []*domain.HistoryRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	records := make([]*domain.HistoryRecord, 0, len(entries))
	for _, entry := range entries {
		var record domain.HistoryRecord
		if err := json.Unmarshal([]byte(entry), &record); err != nil {
			continue
		}
		records = append(records, &record)
	}

	return records, nil
}
