package commands_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"tradein/internal/core/application/usecases/commands"
	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/core/domain/model/order"
	"tradein/internal/core/ports"
	"tradein/internal/pkg/errs"
)

// fakeStore is a shared in-memory backend for the fake unit of work. It
// mimics the transactional store closely enough for handler flows: orders
// keyed by number, version bumped on update, a counter for number
// allocation, and call counters for dual-write assertions.
type fakeStore struct {
	mu sync.Mutex

	orders  map[string]*order.Order
	counter int64

	nextErrs   []error
	updateErrs []error

	commits     int
	rollbacks   int
	upserts     int
	lastUpsert  *order.Order
	updateCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: map[string]*order.Order{}}
}

func (s *fakeStore) put(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.Number().String()] = o
}

type fakeUoW struct{ store *fakeStore }

func (u *fakeUoW) Begin(_ context.Context) error { return nil }

func (u *fakeUoW) Commit(_ context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.commits++
	return nil
}

func (u *fakeUoW) Rollback(_ context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.rollbacks++
	return nil
}

func (u *fakeUoW) OrderRepository() ports.OrderRepository {
	return fakeOrderRepo{store: u.store}
}

func (u *fakeUoW) CustomerOrderRepository() ports.CustomerOrderRepository {
	return fakeCustomerOrderRepo{store: u.store}
}

func (u *fakeUoW) CounterRepository() ports.CounterRepository {
	return fakeCounterRepo{store: u.store}
}

type fakeUoWFactory struct{ store *fakeStore }

func (f fakeUoWFactory) Create() commands.UoW { return &fakeUoW{store: f.store} }

type fakeOrderUoWFactory struct{ store *fakeStore }

func (f fakeOrderUoWFactory) Create() commands.OrderUoW { return &fakeUoW{store: f.store} }

type fakeOrderRepo struct{ store *fakeStore }

func (r fakeOrderRepo) Add(_ context.Context, aggregate *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := aggregate.Number().String()
	if _, exists := r.store.orders[key]; exists {
		return errs.NewConflictError(fmt.Sprintf("order %s already exists", key))
	}
	r.store.orders[key] = aggregate
	return nil
}

func (r fakeOrderRepo) Update(_ context.Context, aggregate *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.updateCalls++
	if len(r.store.updateErrs) > 0 {
		err := r.store.updateErrs[0]
		r.store.updateErrs = r.store.updateErrs[1:]
		if err != nil {
			return err
		}
	}

	aggregate.SetVersion(aggregate.Version() + 1)
	r.store.orders[aggregate.Number().String()] = aggregate
	return nil
}

func (r fakeOrderRepo) Get(_ context.Context, number kernel.OrderNumber) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	aggregate, ok := r.store.orders[number.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("number", number.String())
	}
	return aggregate, nil
}

func (r fakeOrderRepo) GetAllInTransit(_ context.Context) ([]*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*order.Order
	for _, o := range r.store.orders {
		if o.Outbound() != nil || o.Inbound() != nil {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r fakeOrderRepo) GetReOfferExpiredBefore(_ context.Context, cutoff time.Time) ([]*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*order.Order
	for _, o := range r.store.orders {
		if o.Status() == order.ReOfferedPending && o.ReOffer() != nil &&
			o.ReOffer().AutoAcceptDate.Before(cutoff) {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeCustomerOrderRepo struct{ store *fakeStore }

func (r fakeCustomerOrderRepo) Upsert(_ context.Context, aggregate *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.upserts++
	r.store.lastUpsert = aggregate
	return nil
}

type fakeCounterRepo struct{ store *fakeStore }

func (r fakeCounterRepo) Next(_ context.Context, floor int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if len(r.store.nextErrs) > 0 {
		err := r.store.nextErrs[0]
		r.store.nextErrs = r.store.nextErrs[1:]
		if err != nil {
			return 0, err
		}
	}

	next := r.store.counter + 1
	if next < floor {
		next = floor
	}
	r.store.counter = next
	return next, nil
}

type MockEmailClient struct{ mock.Mock }

func (m *MockEmailClient) Send(ctx context.Context, msg ports.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockCarrierClient struct{ mock.Mock }

func (m *MockCarrierClient) Track(ctx context.Context, carrierCode, trackingNumber string) (ports.TrackingSnapshot, error) {
	args := m.Called(ctx, carrierCode, trackingNumber)
	return args.Get(0).(ports.TrackingSnapshot), args.Error(1)
}

type stubRenderer struct{ err error }

func (s stubRenderer) Render(kind order.NotificationKind, _ map[string]string) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return "subject " + string(kind), "<p>" + string(kind) + "</p>", nil
}

func countLogs(aggregate *order.Order, logType string) int {
	n := 0
	for _, entry := range aggregate.Logs() {
		if entry.Type == logType {
			n++
		}
	}
	return n
}

func storedOrder(store *fakeStore, number kernel.OrderNumber) *order.Order {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.orders[number.String()]
}
