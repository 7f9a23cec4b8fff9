package billing

import (
	"sync"

	"github.com/pandastore/facturacion/internal/domain/invoice"
)

// Sequence consecutivo de facturas en memoria.
type Sequence struct {
	mu   sync.Mutex
	next string
}

// NewSequence arranca en first (ej. "A001197").
func NewSequence(first string) *Sequence {
	return &Sequence{next: first}
}

// Peek devuelve el consecutivo vigente sin consumirlo.
func (s *Sequence) Peek() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// Reserve entrega el consecutivo vigente y avanza la secuencia en la misma
// operación: dos borradores nunca reciben el mismo número.
func (s *Sequence) Reserve() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := invoice.NextNumber(s.next)
	if err != nil {
		return "", err
	}
	reserved := s.next
	s.next = n
	return reserved, nil
}

// Advance avanza al siguiente solo si used es el consecutivo vigente; un número
// editado a mano por el operador no mueve la secuencia.
func (s *Sequence) Advance(used string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if used != s.next {
		return nil
	}
	n, err := invoice.NextNumber(used)
	if err != nil {
		return err
	}
	s.next = n
	return nil
}
