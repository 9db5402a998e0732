package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers. The interesting part is the
// aggregate tree: lines and their batch allocations must round trip, and
// allocations released in the domain must disappear from storage on Update.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&orderrepo.AllocationDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_lines, allocations").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsAggregateTree() {
	ctx := context.Background()
	ord := suite.newOrder("ORD-1001")
	line := ord.Lines()[0]
	batchID := kernel.NewUUID()
	suite.Require().NoError(line.RecordAllocation(batchID, decimal.NewFromInt(6)))

	suite.Require().NoError(suite.repository.Add(ctx, ord))

	loaded, err := suite.repository.Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Equal("ORD-1001", loaded.OrderNo())
	suite.Equal("ACME Corp", loaded.CustomerName())
	suite.Equal(order.New, loaded.Status())
	suite.Require().Len(loaded.Lines(), 1)

	loadedLine := loaded.Lines()[0]
	suite.True(decimal.NewFromInt(10).Equal(loadedLine.QtyRequested()))
	suite.True(decimal.NewFromInt(6).Equal(loadedLine.QtyAllocated()))
	suite.Require().Len(loadedLine.Allocations(), 1)
	suite.True(batchID.IsEqual(loadedLine.Allocations()[0].BatchID()))
	suite.True(decimal.NewFromInt(6).Equal(loadedLine.Allocations()[0].Qty()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ReturnsLinesInStoredSequence() {
	ctx := context.Background()

	lines := make([]*order.Line, 0, 4)
	for qty := int64(1); qty <= 4; qty++ {
		line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(qty))
		suite.Require().NoError(err)
		lines = append(lines, line)
	}
	ord, err := order.NewOrder(kernel.NewUUID(), "ORD-1001", "ACME Corp", lines)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, ord))

	var seqs []int
	suite.Require().NoError(suite.db.Model(&orderrepo.LineDTO{}).
		Order("seq").Pluck("seq", &seqs).Error)
	suite.Equal([]int{0, 1, 2, 3}, seqs, "each line stores its position")

	loaded, err := suite.repository.Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Require().Len(loaded.Lines(), 4)
	for i, line := range lines {
		suite.True(line.ID().IsEqual(loaded.Lines()[i].ID()))
		suite.True(line.QtyRequested().Equal(loaded.Lines()[i].QtyRequested()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusTransition() {
	ctx := context.Background()
	ord := suite.newOrder("ORD-1001")
	suite.Require().NoError(ord.Lines()[0].RecordAllocation(kernel.NewUUID(), decimal.NewFromInt(10)))
	suite.Require().NoError(suite.repository.Add(ctx, ord))

	loaded, err := suite.repository.Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.MarkAllocated())
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Allocated, reloaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClearedAllocations_RemovesRows() {
	ctx := context.Background()
	ord := suite.newOrder("ORD-1001")
	suite.Require().NoError(ord.Lines()[0].RecordAllocation(kernel.NewUUID(), decimal.NewFromInt(4)))
	suite.Require().NoError(ord.Lines()[0].RecordAllocation(kernel.NewUUID(), decimal.NewFromInt(6)))
	suite.Require().NoError(suite.repository.Add(ctx, ord))
	suite.assertAllocationCount(2)

	loaded, err := suite.repository.Get(ctx, ord.ID())
	suite.Require().NoError(err)
	loaded.Lines()[0].ClearAllocations()
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	suite.assertAllocationCount(0)

	reloaded, err := suite.repository.Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Empty(reloaded.Lines()[0].Allocations())
	suite.True(reloaded.Lines()[0].QtyAllocated().IsZero())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsError() {
	err := suite.repository.Update(context.Background(), suite.newOrder("ORD-1001"))

	suite.Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInNewStatus_ReturnsOldestFirst() {
	ctx := context.Background()
	first := suite.newOrder("ORD-1001")
	second := suite.newOrder("ORD-1002")
	allocated := suite.newOrder("ORD-1003")
	suite.Require().NoError(allocated.Lines()[0].RecordAllocation(kernel.NewUUID(), decimal.NewFromInt(10)))
	suite.Require().NoError(allocated.MarkAllocated())

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))
	suite.Require().NoError(suite.repository.Add(ctx, allocated))

	pending, err := suite.repository.GetAllInNewStatus(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(pending, 2)
	suite.Equal("ORD-1001", pending[0].OrderNo())
	suite.Equal("ORD-1002", pending[1].OrderNo())
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(orderNo string) *order.Order {
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(10))
	suite.Require().NoError(err)

	ord, err := order.NewOrder(kernel.NewUUID(), orderNo, "ACME Corp", []*order.Line{line})
	suite.Require().NoError(err)
	return ord
}

func (suite *OrderRepositoryIntegrationTestSuite) assertAllocationCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.AllocationDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
