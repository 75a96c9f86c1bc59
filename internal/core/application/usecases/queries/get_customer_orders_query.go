// Package queries contains read-only operations in the CQRS architecture.
// Queries bypass the domain model and read the denormalized customer copy
// directly, so a customer-facing screen never pays for aggregate hydration.
package queries

import (
	"errors"
	"time"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/pkg/guard"
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

// GetCustomerOrdersQuery retrieves every order belonging to one customer from
// the denormalized copy kept in step with the primary records.
type GetCustomerOrdersQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates a query for one customer's orders.
func NewGetCustomerOrdersQuery(customerID kernel.UUID) (GetCustomerOrdersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerOrdersQuery{}, err
	}

	return GetCustomerOrdersQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer whose orders are requested.
func (q GetCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetCustomerOrdersQueryResponse is one row of the customer's order list.
type GetCustomerOrdersQueryResponse struct {
	Number            string
	Status            string
	DeviceModel       string
	EstimatedQuote    float64
	FinalPayoutAmount float64
	OutboundTracking  string
	InboundTracking   string
	UpdatedAt         time.Time
}
