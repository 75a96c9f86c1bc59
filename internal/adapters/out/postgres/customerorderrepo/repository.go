package customerorderrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradein/internal/core/domain/model/order"
)

// GormCustomerOrderRepository implements CustomerOrderRepository using GORM.
type GormCustomerOrderRepository struct {
	db *gorm.DB
}

// NewGormCustomerOrderRepository creates a new GORM customer copy repository.
func NewGormCustomerOrderRepository(db *gorm.DB) *GormCustomerOrderRepository {
	return &GormCustomerOrderRepository{db: db}
}

// Upsert writes the customer copy for the aggregate, inserting on first write
// and replacing the row afterwards. Runs in the caller's transaction.
func (r *GormCustomerOrderRepository) Upsert(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "number"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"customer_email",
				"device_model",
				"status",
				"estimated_quote",
				"final_payout_amount",
				"outbound_tracking",
				"inbound_tracking",
				"kit_sent_at",
				"kit_delivered_at",
				"received_at",
				"accepted_at",
				"declined_at",
				"cancelled_at",
				"updated_at",
			}),
		}).
		Create(&dto).Error
}
