package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"todo_service/internal/models"
)

// ActivityMemory keeps the activity history in a slice guarded by a mutex.
type ActivityMemory struct {
	mu     sync.RWMutex
	events []models.ActivityEvent
}

func NewActivityMemory() *ActivityMemory { return &ActivityMemory{} }

var _ ActivityRepo = (*ActivityMemory)(nil)

func (r *ActivityMemory) Append(_ context.Context, e models.ActivityEvent) error {
	e = normalizeEvent(e)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *ActivityMemory) List(_ context.Context, username string, from, to time.Time, typ string) ([]models.ActivityEvent, error) {
	typ = strings.ToUpper(strings.TrimSpace(typ))

	r.mu.RLock()
	out := make([]models.ActivityEvent, 0, 16)
	for _, ev := range r.events {
		if ev.Username != username {
			continue
		}
		if !from.IsZero() && ev.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && ev.OccurredAt.After(to) {
			continue
		}
		if typ != "" && ev.Type != typ {
			continue
		}
		out = append(out, ev)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out, nil
}
