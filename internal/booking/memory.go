package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iliyamo/restaurant-seat-reservation/internal/model"
)

// MemoryPersister keeps reservations in process memory.  It backs the
// server when STORAGE=memory and stands in for MySQL in tests.
type MemoryPersister struct {
	mu     sync.Mutex
	rows   []model.Reservation
	nextID uint64
	now    func() time.Time
}

// NewMemoryPersister returns an empty persister seeded with rows, which
// keep their IDs.
func NewMemoryPersister(rows ...model.Reservation) *MemoryPersister {
	m := &MemoryPersister{now: func() time.Time { return time.Now().UTC() }}
	for _, r := range rows {
		m.rows = append(m.rows, r.Clone())
		if r.ID > m.nextID {
			m.nextID = r.ID
		}
	}
	return m
}

func (m *MemoryPersister) InsertReservation(_ context.Context, r *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	r.CreatedAt = m.now()
	r.UpdatedAt = r.CreatedAt
	m.rows = append(m.rows, r.Clone())
	return nil
}

func (m *MemoryPersister) UpdateReservationStatus(_ context.Context, id uint64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Status = status
			m.rows[i].UpdatedAt = m.now()
			return nil
		}
	}
	return fmt.Errorf("reservation %d: no such row", id)
}

func (m *MemoryPersister) ListReservations(_ context.Context) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Reservation, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.Clone()
	}
	return out, nil
}
