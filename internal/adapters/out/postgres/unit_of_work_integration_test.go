package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tradein/internal/adapters/out/postgres"
	"tradein/internal/adapters/out/postgres/counterrepo"
	"tradein/internal/adapters/out/postgres/customerorderrepo"
	"tradein/internal/adapters/out/postgres/orderrepo"
	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/core/domain/model/order"
)

// UnitOfWorkIntegrationTestSuite verifies transactional behavior across the
// order repositories: counter allocation rolls back with its order, and the
// customer copy commits with the primary record or not at all.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&customerorderrepo.CustomerOrderDTO{},
		&counterrepo.CounterDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, customer_orders, order_number_counters").Error)
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createOrder(ctx context.Context, floor int64) *order.Order {
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	value, err := uow.CounterRepository().Next(ctx, floor)
	suite.Require().NoError(err)

	number, err := kernel.NewOrderNumber("TI", value)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(number, kernel.NewUUID(), "jo@example.com",
		"Pixel 8", "SN42", 100.00, false)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.CustomerOrderRepository().Upsert(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSequence_StartsAtFloor() {
	ctx := context.Background()

	first := suite.createOrder(ctx, 10000)
	second := suite.createOrder(ctx, 10000)

	suite.Equal("TI-10000", first.Number().String())
	suite.Equal("TI-10001", second.Number().String())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSequence_RollbackLeavesNoGap() {
	ctx := context.Background()

	suite.createOrder(ctx, 1)

	// Allocate a value and abandon the transaction.
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	_, err := uow.CounterRepository().Next(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Rollback(ctx))

	next := suite.createOrder(ctx, 1)
	suite.Equal("TI-00002", next.Number().String())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSequence_ConcurrentAllocationsAreUnique() {
	ctx := context.Background()
	const workers = 8

	var wg sync.WaitGroup
	numbers := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			numbers <- suite.createOrder(ctx, 1).Number().String()
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	for number := range numbers {
		suite.False(seen[number], "duplicate order number %s", number)
		seen[number] = true
	}
	suite.Len(seen, workers)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDualWrite_RollbackDiscardsBoth() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	number, err := kernel.NewOrderNumber("TI", 500)
	suite.Require().NoError(err)
	aggregate, err := order.NewOrder(number, kernel.NewUUID(), "jo@example.com",
		"Pixel 8", "", 100.00, false)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.CustomerOrderRepository().Upsert(ctx, aggregate))
	suite.Require().NoError(uow.Rollback(ctx))

	var orders, copies int64
	suite.Require().NoError(suite.db.Table("orders").Count(&orders).Error)
	suite.Require().NoError(suite.db.Table("customer_orders").Count(&copies).Error)
	suite.Zero(orders)
	suite.Zero(copies)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDualWrite_CustomerCopyTracksUpdates() {
	ctx := context.Background()

	aggregate := suite.createOrder(ctx, 1)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(aggregate.MarkKitSent("OUT1", "RET1", "usps", time.Now().UTC()))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, aggregate))
	suite.Require().NoError(uow.CustomerOrderRepository().Upsert(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	var copy customerorderrepo.CustomerOrderDTO
	suite.Require().NoError(suite.db.
		Where("number = ?", aggregate.Number().String()).
		First(&copy).Error)
	suite.Equal(order.KitSent.String(), copy.Status)
	suite.Require().NotNil(copy.KitSentAt)
	suite.WithinDuration(*aggregate.KitSentAt(), *copy.KitSentAt, time.Second)
	suite.Nil(copy.ReceivedAt)
	suite.Nil(copy.CancelledAt)
}

// Phase timestamps reach the copy through the upsert's update path too, not
// only on first insert.
func (suite *UnitOfWorkIntegrationTestSuite) TestDualWrite_CustomerCopyCarriesPhaseTimestamps() {
	ctx := context.Background()

	aggregate := suite.createOrder(ctx, 1)
	now := time.Now().UTC()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(aggregate.MarkKitSent("OUT1", "RET1", "usps", now))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, aggregate))
	suite.Require().NoError(uow.CustomerOrderRepository().Upsert(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(aggregate.Cancel("customer changed their mind", now.Add(time.Minute)))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, aggregate))
	suite.Require().NoError(uow.CustomerOrderRepository().Upsert(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	var copy customerorderrepo.CustomerOrderDTO
	suite.Require().NoError(suite.db.
		Where("number = ?", aggregate.Number().String()).
		First(&copy).Error)
	suite.Equal(order.Cancelled.String(), copy.Status)
	suite.Require().NotNil(copy.KitSentAt)
	suite.WithinDuration(*aggregate.KitSentAt(), *copy.KitSentAt, time.Second)
	suite.Require().NotNil(copy.CancelledAt)
	suite.WithinDuration(*aggregate.CancelledAt(), *copy.CancelledAt, time.Second)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
