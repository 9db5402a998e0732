package postgres_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/batchrepo"
	"fulfillment/internal/adapters/out/postgres/itemrepo"
	"fulfillment/internal/adapters/out/postgres/ledgerrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction coordination across
// repositories: writes made through one unit of work become visible to
// others only after commit, and rollback discards everything.
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&itemrepo.ItemDTO{},
		&batchrepo.BatchDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&orderrepo.AllocationDTO{},
		&shipmentrepo.ShipmentDTO{},
		&ledgerrepo.EntryDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE items, batches, orders, order_lines, allocations, shipments, ledger_entries",
	).Error)

	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	ord := suite.newOrder()
	b := suite.newBatch()
	entry := suite.newReceiveEntry(b)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, ord))
	suite.Require().NoError(uow.BatchRepository().Add(ctx, b))
	suite.Require().NoError(uow.LedgerRepository().Append(ctx, entry))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	loadedOrder, err := reader.OrderRepository().Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Equal(ord.OrderNo(), loadedOrder.OrderNo())

	loadedBatch, err := reader.BatchRepository().Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(b.LotNo(), loadedBatch.LotNo())

	suite.assertLedgerCount(1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllChanges() {
	ctx := context.Background()
	ord := suite.newOrder()
	b := suite.newBatch()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, ord))
	suite.Require().NoError(uow.BatchRepository().Add(ctx, b))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err := reader.OrderRepository().Get(ctx, ord.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	_, err = reader.BatchRepository().Get(ctx, b.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUncommittedChanges_InvisibleToOthers() {
	ctx := context.Background()
	ord := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, ord))

	reader := suite.factory.Create()
	_, err := reader.OrderRepository().Get(ctx, ord.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	suite.Require().NoError(uow.Commit(ctx))

	_, err = reader.OrderRepository().Get(ctx, ord.ID())
	suite.NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	err := suite.factory.Create().Commit(context.Background())

	suite.ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_AfterCommit_ReturnsError() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_Twice_KeepsTransaction() {
	ctx := context.Background()
	ord := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, ord))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err := reader.OrderRepository().Get(ctx, ord.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound, "the second Begin must not swallow the first transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(10))
	suite.Require().NoError(err)

	ord, err := order.NewOrder(kernel.NewUUID(), "ORD-1001", "ACME Corp", []*order.Line{line})
	suite.Require().NoError(err)
	return ord
}

func (suite *UnitOfWorkIntegrationTestSuite) newBatch() *batch.Batch {
	b, err := batch.NewBatch(kernel.NewUUID(), kernel.NewUUID(), "LOT-A", decimal.NewFromInt(100), nil)
	suite.Require().NoError(err)
	return b
}

func (suite *UnitOfWorkIntegrationTestSuite) newReceiveEntry(b *batch.Batch) *ledger.Entry {
	entry, err := ledger.NewEntry(
		kernel.NewUUID(),
		ledger.Receive,
		decimal.NewFromInt(100),
		b.ItemID(),
		b.ID(),
		nil,
		nil,
		"goods.in",
		"",
		time.Now(),
	)
	suite.Require().NoError(err)
	return entry
}

func (suite *UnitOfWorkIntegrationTestSuite) assertLedgerCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&ledgerrepo.EntryDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
