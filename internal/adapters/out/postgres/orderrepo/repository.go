package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// Updates are guarded by the version the aggregate was loaded with: the row
// is only written when the stored version still matches, and the version is
// bumped in the same statement. A lost race surfaces as a conflict instead of
// silently overwriting the other writer's changes.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause(
				fmt.Sprintf("order %s already exists", dto.Number), err)
		}
		return err
	}

	return nil
}

// Update saves an existing order, conditional on its loaded version. The
// aggregate's version is advanced on success so it can be written again
// within the same transaction.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version++

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("number = ? AND version = ?", dto.Number, aggregate.Version()).
		Select("*").
		Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError(
			fmt.Sprintf("order %s was modified concurrently", dto.Number))
	}

	aggregate.SetVersion(dto.Version)
	return nil
}

// Get retrieves an order by its order number.
func (r *GormOrderRepository) Get(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "number = ?", number.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInTransit retrieves non-terminal orders with at least one shipment
// leg attached, the candidates for a scheduled tracking sync.
func (r *GormOrderRepository) GetAllInTransit(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []int{int(order.Completed), int(order.Cancelled)}).
		Where("outbound IS NOT NULL OR inbound IS NOT NULL").
		Order("number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetReOfferExpiredBefore retrieves orders whose pending negotiation window
// closed before the cutoff, the candidates for auto-requote.
func (r *GormOrderRepository) GetReOfferExpiredBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", int(order.ReOfferedPending)).
		Where("auto_accept_at IS NOT NULL AND auto_accept_at < ?", cutoff).
		Order("number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}
