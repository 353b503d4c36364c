package queries_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/eventrepo"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderEventsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderEventsQueryHandler
	eventRepo *eventrepo.GormEventRepository
}

func (suite *GetOrderEventsQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&eventrepo.EventDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderEventsQueryHandler(db)
	suite.eventRepo = eventrepo.NewGormEventRepository(db)
}

func (suite *GetOrderEventsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderEventsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_events").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderEventsQueryHandlerTestSuite) TestHandle_NoEvents_ReturnsEmptySlice() {
	query, err := queries.NewGetOrderEventsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOrderEventsQueryHandlerTestSuite) TestHandle_ReturnsTrailInChronologicalOrder() {
	orderID := kernel.NewUUID()
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	// Seed newest first to make sure ordering comes from the query.
	kinds := []event.Type{event.TypePrepClosedOK, event.TypeSendToPrep}
	for i, kind := range kinds {
		suite.seedEvent(orderID, kind, base.Add(time.Duration(len(kinds)-i)*time.Hour), nil)
	}

	query, err := queries.NewGetOrderEventsQuery(orderID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(event.TypeSendToPrep, result[0].Kind)
	suite.Equal(event.TypePrepClosedOK, result[1].Kind)
	suite.True(result[0].At.Before(result[1].At))
}

func (suite *GetOrderEventsQueryHandlerTestSuite) TestHandle_FiltersByOrder() {
	orderID := kernel.NewUUID()
	otherOrderID := kernel.NewUUID()
	at := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	suite.seedEvent(orderID, event.TypeSendToPrep, at, nil)
	suite.seedEvent(otherOrderID, event.TypeSendToPrep, at, nil)

	query, err := queries.NewGetOrderEventsQuery(orderID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(orderID.IsEqual(result[0].OrderID))
}

func (suite *GetOrderEventsQueryHandlerTestSuite) TestHandle_MapsActorAndMeta() {
	orderID := kernel.NewUUID()
	at := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	meta := map[string]string{"from": "PREP", "to": "A_FATURAR"}

	suite.seedEvent(orderID, event.TypePrepClosedOK, at, meta)

	query, err := queries.NewGetOrderEventsQuery(orderID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("op-1", result[0].ActorID)
	suite.Equal("Operator One", result[0].ActorName)
	suite.Equal(meta, result[0].Meta)
}

func (suite *GetOrderEventsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderEventsQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, queries.ErrGetOrderEventsQueryIsNotConstructed)
}

func (suite *GetOrderEventsQueryHandlerTestSuite) seedEvent(
	orderID kernel.UUID,
	kind event.Type,
	at time.Time,
	meta map[string]string,
) {
	actor, err := kernel.NewActor("op-1", "armazem", "Operator One")
	suite.Require().NoError(err)

	evt, err := event.RestoreEvent(kernel.NewUUID(), orderID, kind, actor, at, meta)
	suite.Require().NoError(err)

	err = suite.eventRepo.Add(context.Background(), evt)
	suite.Require().NoError(err)
}

func TestGetOrderEventsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderEventsQueryHandlerTestSuite))
}
