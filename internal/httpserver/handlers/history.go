package handlers

import (
	"net/http"
	"sort"

	"github.com/Kim-wonder/routineon/internal/domain"
	"github.com/Kim-wonder/routineon/internal/httpserver/deps"
	"github.com/Kim-wonder/routineon/internal/logger"
)

func ListHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := d.Store.GetHistory(r.Context())
		if err != nil {
			d.Logger.Error("failed to load history", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load history")
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

type dateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Stats aggregates completion history into per-date counts, oldest first.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := d.Store.GetHistory(r.Context())
		if err != nil {
			d.Logger.Error("failed to load history", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load history")
			return
		}

		writeJSON(w, http.StatusOK, aggregateStats(records))
	}
}

func aggregateStats(records []*domain.HistoryRecord) []dateCount {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.Date]++
	}

	stats := make([]dateCount, 0, len(counts))
	for date, n := range counts {
		stats = append(stats, dateCount{Date: date, Count: n})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })
	return stats
}
