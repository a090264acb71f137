package infra

import (
	"context"
	"sync"
	"time"

	"github.com/Vovarama1992/file_converter/internal/ports"
)

type sessionLog struct {
	records []ports.Record
	touched time.Time
}

// recordRepo живёт столько же, сколько процесс; на диск ничего не пишется
type recordRepo struct {
	mu       sync.RWMutex
	sessions map[string]*sessionLog
	now      func() time.Time
}

func NewRecordRepo() ports.RecordRepo {
	return &recordRepo{
		sessions: make(map[string]*sessionLog),
		now:      time.Now,
	}
}

func (r *recordRepo) Append(_ context.Context, session string, rec ports.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[session]
	if !ok {
		s = &sessionLog{}
		r.sessions[session] = s
	}
	s.records = append(s.records, rec)
	s.touched = r.now()
	return nil
}

func (r *recordRepo) List(_ context.Context, session string) ([]ports.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[session]
	if !ok {
		return []ports.Record{}, nil
	}
	out := make([]ports.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (r *recordRepo) Clear(_ context.Context, session string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, session)
	return nil
}

// DeleteIdle убирает сессии без новых записей дольше idle
func (r *recordRepo) DeleteIdle(_ context.Context, idle time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	removed := 0
	for id, s := range r.sessions {
		if s.touched.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}
