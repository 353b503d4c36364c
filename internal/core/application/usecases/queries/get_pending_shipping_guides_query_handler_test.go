package queries_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/guiderepo"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/guide"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetPendingShippingGuidesQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetPendingShippingGuidesQueryHandler
	guideRepo *guiderepo.GormGuideRepository
}

func (suite *GetPendingShippingGuidesQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&guiderepo.GuideDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetPendingShippingGuidesQueryHandler(db)
	suite.guideRepo = guiderepo.NewGormGuideRepository(db)
}

func (suite *GetPendingShippingGuidesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetPendingShippingGuidesQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipping_guides").Error
	suite.Require().NoError(err)
}

func (suite *GetPendingShippingGuidesQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetPendingShippingGuidesQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetPendingShippingGuidesQueryHandlerTestSuite) TestHandle_ReturnsOnlyPendingGuides() {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	pending := suite.seedGuide(guide.StatusPendente, base)
	invoiced := suite.seedGuide(guide.StatusFaturada, base.Add(time.Hour))
	voided := suite.seedGuide(guide.StatusCancelada, base.Add(2*time.Hour))

	query := queries.NewGetPendingShippingGuidesQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(pending.ID().IsEqual(result[0].ID))
	suite.True(pending.OrderID().IsEqual(result[0].OrderID))
	suite.True(pending.BatchID().IsEqual(result[0].BatchID))
	suite.Equal(pending.ClientID(), result[0].ClientID)

	for _, excluded := range []*guide.ShippingGuide{invoiced, voided} {
		for _, r := range result {
			suite.False(excluded.ID().IsEqual(r.ID),
				"guide %s should not be in results", excluded.ID())
		}
	}
}

func (suite *GetPendingShippingGuidesQueryHandlerTestSuite) TestHandle_GuidesAreSortedByIssuance() {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	// Seed newest first to make sure ordering comes from the query.
	for i := 2; i >= 0; i-- {
		suite.seedGuide(guide.StatusPendente, base.Add(time.Duration(i)*time.Hour))
	}

	query := queries.NewGetPendingShippingGuidesQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	for i := 0; i < len(result)-1; i++ {
		suite.False(result[i].CreatedAt.After(result[i+1].CreatedAt),
			"guides should be sorted by issuance time ascending")
	}
}

func (suite *GetPendingShippingGuidesQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetPendingShippingGuidesQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, queries.ErrGetPendingShippingGuidesQueryIsNotConstructed)
}

func (suite *GetPendingShippingGuidesQueryHandlerTestSuite) seedGuide(
	status guide.Status,
	createdAt time.Time,
) *guide.ShippingGuide {
	key, err := kernel.NewProductKey("P-001", "kg", "Arroz Agulha")
	suite.Require().NoError(err)
	item, err := order.NewItem(key, kernel.QuantityFromFloat(10))
	suite.Require().NoError(err)

	g, err := guide.RestoreShippingGuide(guide.RestoreShippingGuideParams{
		ID:         kernel.NewUUID(),
		OrderID:    kernel.NewUUID(),
		BatchID:    kernel.NewUUID(),
		ClientID:   "CL-1",
		ContractID: "CT-1",
		LocationID: "LOC-1",
		Items:      []order.Item{item},
		Status:     status,
		CreatedAt:  createdAt,
		CreatedBy:  "op-1",
	})
	suite.Require().NoError(err)

	err = suite.guideRepo.Add(context.Background(), g)
	suite.Require().NoError(err)
	return g
}

func TestGetPendingShippingGuidesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetPendingShippingGuidesQueryHandlerTestSuite))
}
