package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pandastore/facturacion/internal/application/billing"
	"github.com/pandastore/facturacion/internal/domain"
)

var _ billing.DraftStore = (*DraftStore)(nil)

// DraftStore borradores en memoria del proceso. Un único mutex serializa las
// operaciones; el volumen es el de un operador armando facturas.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[string]*billing.Draft
}

// NewDraftStore crea un store vacío.
func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]*billing.Draft)}
}

func (s *DraftStore) Save(_ context.Context, d *billing.Draft) error {
	if d == nil || d.ID == "" {
		return fmt.Errorf("%w: borrador sin id", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = d
	return nil
}

func (s *DraftStore) Update(ctx context.Context, id string, fn func(d *billing.Draft) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return fmt.Errorf("borrador %s: %w", id, domain.ErrNotFound)
	}
	return fn(d)
}

func (s *DraftStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[id]; !ok {
		return fmt.Errorf("borrador %s: %w", id, domain.ErrNotFound)
	}
	delete(s.drafts, id)
	return nil
}

// Len cantidad de borradores abiertos.
func (s *DraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

// EvictIdle borra los borradores sin cambios desde antes de cutoff y devuelve
// cuántos eliminó. Un borrador ya facturado sigue disponible hasta que vence.
func (s *DraftStore) EvictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, d := range s.drafts {
		if d.UpdatedAt.Before(cutoff) {
			delete(s.drafts, id)
			n++
		}
	}
	return n
}

// RunJanitor cada every elimina los borradores inactivos por más de ttl.
// Bloquea hasta que ctx se cancela; ttl <= 0 desactiva la limpieza.
func (s *DraftStore) RunJanitor(ctx context.Context, ttl, every time.Duration, log zerolog.Logger) {
	if ttl <= 0 {
		return
	}
	if every <= 0 {
		every = ttl / 4
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.EvictIdle(now.Add(-ttl)); n > 0 {
				log.Info().Int("evicted", n).Int("open", s.Len()).Msg("borradores inactivos eliminados")
			}
		}
	}
}
