package repository

import (
	"slices"
	"sync"
)

type memoryStore[T any, P Entity[T]] struct {
	mu     sync.RWMutex
	prefix string
	seq    int64
	items  []T
}

// NewMemoryStore returns an in-process Store. Data is lost on restart.
func NewMemoryStore[T any, P Entity[T]](prefix string) Store[T] {
	return &memoryStore[T, P]{prefix: prefix}
}

func (s *memoryStore[T, P]) List() ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items), nil
}

func (s *memoryStore[T, P]) Get(id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	item := s.items[i]
	return &item, nil
}

func (s *memoryStore[T, P]) Add(record T) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	P(&record).SetID(NewID(s.prefix))
	stored := s.append(record)
	return &stored, nil
}

func (s *memoryStore[T, P]) Update(id string, mutate func(*T) error) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}

	next := s.items[i]
	storedID := P(&next).GetID()
	if err := mutate(&next); err != nil {
		return nil, err
	}
	P(&next).SetID(storedID)

	s.items[i] = next
	return &next, nil
}

func (s *memoryStore[T, P]) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.items = slices.Delete(slices.Clone(s.items), i, i+1)
	return true, nil
}

func (s *memoryStore[T, P]) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// Seed appends records keeping their ids. Records without an id get a minted one.
func (s *memoryStore[T, P]) Seed(records ...T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range records {
		if P(&record).GetID() == "" {
			P(&record).SetID(NewID(s.prefix))
		}
		s.append(record)
	}
	return nil
}

func (s *memoryStore[T, P]) append(record T) T {
	s.seq++
	P(&record).SetSeq(s.seq)
	s.items = append(s.items, record)
	return record
}

func (s *memoryStore[T, P]) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(item T) bool {
		return P(&item).GetID() == id
	})
}
