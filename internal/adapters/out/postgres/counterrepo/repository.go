// Package counterrepo persists the shared order number counter. A single row
// holds the last issued value; allocation locks that row for the rest of the
// transaction, so concurrent creations serialize on it and an aborted
// creation returns its value to the pool.
package counterrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const counterID = 1

// CounterDTO is the single-row table backing the order number sequence.
type CounterDTO struct {
	ID        int `gorm:"primaryKey"`
	LastValue int64
}

// TableName specifies the database table name for the counter.
func (CounterDTO) TableName() string {
	return "order_number_counters"
}

// GormCounterRepository implements CounterRepository using GORM. It must run
// on a transaction-bound connection; the FOR UPDATE lock is what makes the
// sequence gapless under concurrency.
type GormCounterRepository struct {
	db *gorm.DB
}

// NewGormCounterRepository creates a new GORM counter repository.
func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// Next allocates the next order number value within the bound transaction.
// The issued value is max(last+1, floor).
func (r *GormCounterRepository) Next(ctx context.Context, floor int64) (int64, error) {
	var dto CounterDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&dto, "id = ?", counterID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		dto = CounterDTO{ID: counterID}
		if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	next := dto.LastValue + 1
	if next < floor {
		next = floor
	}

	result := r.db.WithContext(ctx).
		Model(&CounterDTO{}).
		Where("id = ?", counterID).
		Update("last_value", next)
	if result.Error != nil {
		return 0, result.Error
	}

	return next, nil
}
