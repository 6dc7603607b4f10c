package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrRecordNotFound = errors.New("record not found")

// Entity is the pointer side of a record type stored by a Store
type Entity[T any] interface {
	*T
	GetID() string
	SetID(id string)
	SetSeq(seq int64)
}

// Store is an ordered collection of records of one panel.
//
// List returns records in insertion order. Add always mints a new id.
// Remove drops the first record with the id and reports whether one existed.
// Update hands mutate a copy of the record and keeps the stored id whatever
// mutate does to it. mutate must replace maps and slices instead of editing
// them in place, since earlier reads share them.
type Store[T any] interface {
	List() ([]T, error)
	Get(id string) (*T, error)
	Add(record T) (*T, error)
	Update(id string, mutate func(*T) error) (*T, error)
	Remove(id string) (bool, error)
	Count() (int, error)
	Seed(records ...T) error
}

// NewID mints a record id with the store prefix
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
