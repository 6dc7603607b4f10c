package repository

import (
	"errors"

	"gorm.io/gorm"
)

type gormStore[T any, P Entity[T]] struct {
	db     *gorm.DB
	prefix string
}

// NewGormStore returns a Store backed by the table of T. Insertion order is kept in the seq column.
func NewGormStore[T any, P Entity[T]](db *gorm.DB, prefix string) Store[T] {
	return &gormStore[T, P]{db: db, prefix: prefix}
}

func (r *gormStore[T, P]) List() ([]T, error) {
	var items []T
	if err := r.db.Order("seq ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormStore[T, P]) Get(id string) (*T, error) {
	var item T
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormStore[T, P]) Add(record T) (*T, error) {
	P(&record).SetID(NewID(r.prefix))

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return r.insert(tx, &record)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *gormStore[T, P]) Update(id string, mutate func(*T) error) (*T, error) {
	var updated T

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing T
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		storedID := P(&existing).GetID()
		if err := mutate(&existing); err != nil {
			return err
		}
		P(&existing).SetID(storedID)

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *gormStore[T, P]) Remove(id string) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *gormStore[T, P]) Count() (int, error) {
	var count int64
	if err := r.db.Model(new(T)).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// Seed inserts records that don't exist yet, keeping their ids
func (r *gormStore[T, P]) Seed(records ...T) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			id := P(&record).GetID()
			if id == "" {
				P(&record).SetID(NewID(r.prefix))
			} else {
				var existing T
				err := tx.First(&existing, "id = ?", id).Error
				if err == nil {
					continue
				}
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
			}
			if err := r.insert(tx, &record); err != nil {
				return err
			}
		}
		return nil
	})
}

// insert appends record after the current last row
func (r *gormStore[T, P]) insert(tx *gorm.DB, record *T) error {
	var last int64
	if err := tx.Model(new(T)).Select("COALESCE(MAX(seq), 0)").Scan(&last).Error; err != nil {
		return err
	}
	P(record).SetSeq(last + 1)
	return tx.Create(record).Error
}
