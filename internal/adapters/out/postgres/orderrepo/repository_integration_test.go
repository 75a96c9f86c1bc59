package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tradein/internal/adapters/out/postgres/orderrepo"
	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

// OrderRepositoryIntegrationTestSuite provides integration tests for
// GormOrderRepository using PostgreSQL containers to verify persistence of
// the aggregate's nested jsonb state and the optimistic lock.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(value int64) *order.Order {
	number, err := kernel.NewOrderNumber("TI", value)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(number, kernel.NewUUID(), "jo@example.com",
		"Pixel 8", "SN42", 100.00, false)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	aggregate := suite.newOrder(10001)
	suite.Require().NoError(aggregate.MarkKitSent("OUT1", "RET1", "usps", now))
	suite.Require().NoError(aggregate.MarkReceived(now))
	suite.Require().NoError(aggregate.ProposeReOffer(60.00, []string{"cracked screen"}, "front glass", now))
	aggregate.MarkNotified(order.NotificationReOfferMade, now)

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.Number())
	suite.Require().NoError(err)

	suite.Equal(aggregate.Number().String(), restored.Number().String())
	suite.Equal(order.ReOfferedPending, restored.Status())
	suite.Require().NotNil(restored.ReOffer())
	suite.InEpsilon(60.00, restored.ReOffer().NewPrice, 1e-9)
	suite.Equal([]string{"cracked screen"}, restored.ReOffer().Reasons)
	suite.Require().NotNil(restored.Outbound())
	suite.Equal("OUT1", restored.Outbound().TrackingNumber)
	suite.Require().NotNil(restored.Inbound())
	suite.Equal("RET1", restored.Inbound().TrackingNumber)
	suite.Len(restored.Logs(), len(aggregate.Logs()))

	_, sent := restored.NotifiedAt(order.NotificationReOfferMade)
	suite.True(sent)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateNumber_Conflict() {
	ctx := context.Background()

	first := suite.newOrder(10002)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	duplicate := suite.newOrder(10002)
	err := suite.repository.Add(ctx, duplicate)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()

	aggregate := suite.newOrder(10003)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	suite.Require().EqualValues(0, aggregate.Version())

	suite.Require().NoError(aggregate.MarkKitSent("OUT1", "RET1", "usps", time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))
	suite.Require().EqualValues(1, aggregate.Version())

	restored, err := suite.repository.Get(ctx, aggregate.Number())
	suite.Require().NoError(err)
	suite.Equal(order.KitSent, restored.Status())
	suite.EqualValues(1, restored.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_Conflict() {
	ctx := context.Background()

	aggregate := suite.newOrder(10004)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	winner, err := suite.repository.Get(ctx, aggregate.Number())
	suite.Require().NoError(err)
	loser, err := suite.repository.Get(ctx, aggregate.Number())
	suite.Require().NoError(err)

	now := time.Now().UTC()
	suite.Require().NoError(winner.MarkKitSent("OUT1", "RET1", "usps", now))
	suite.Require().NoError(suite.repository.Update(ctx, winner))

	suite.Require().NoError(loser.Cancel("changed my mind", now))
	err = suite.repository.Update(ctx, loser)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	restored, getErr := suite.repository.Get(ctx, aggregate.Number())
	suite.Require().NoError(getErr)
	suite.Equal(order.KitSent, restored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_Unknown_NotFound() {
	ctx := context.Background()

	number, err := kernel.NewOrderNumber("TI", 99999)
	suite.Require().NoError(err)

	_, err = suite.repository.Get(ctx, number)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInTransit() {
	ctx := context.Background()
	now := time.Now().UTC()

	shipping := suite.newOrder(10005)
	suite.Require().NoError(shipping.MarkKitSent("OUT1", "RET1", "usps", now))
	suite.Require().NoError(suite.repository.Add(ctx, shipping))

	pending := suite.newOrder(10006)
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	cancelled := suite.newOrder(10007)
	suite.Require().NoError(cancelled.MarkKitSent("OUT2", "RET2", "usps", now))
	suite.Require().NoError(cancelled.Cancel("lost interest", now))
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	inTransit, err := suite.repository.GetAllInTransit(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(inTransit, 1)
	suite.Equal(shipping.Number().String(), inTransit[0].Number().String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetReOfferExpiredBefore() {
	ctx := context.Background()
	now := time.Now().UTC()

	expired := suite.newOrder(10008)
	suite.Require().NoError(expired.MarkReceived(now.Add(-10*24*time.Hour)))
	suite.Require().NoError(expired.ProposeReOffer(60.00, []string{"scratches"}, "",
		now.Add(-8*24*time.Hour)))
	suite.Require().NoError(suite.repository.Add(ctx, expired))

	open := suite.newOrder(10009)
	suite.Require().NoError(open.MarkReceived(now))
	suite.Require().NoError(open.ProposeReOffer(60.00, []string{"scratches"}, "", now))
	suite.Require().NoError(suite.repository.Add(ctx, open))

	due, err := suite.repository.GetReOfferExpiredBefore(ctx, now)
	suite.Require().NoError(err)
	suite.Require().Len(due, 1)
	suite.Equal(expired.Number().String(), due[0].Number().String())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
