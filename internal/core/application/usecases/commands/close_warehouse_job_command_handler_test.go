package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

func closeWarehouseHandler(
	factory commands.UoWFactory,
	events *MockEventRepository,
) commands.CloseWarehouseJobCommandHandler {
	closeBatch := commands.NewCloseBulkBatchCommandHandler(factory, events, testLogger())
	return commands.NewCloseWarehouseJobCommandHandler(factory, &closeBatch, events, testLogger())
}

func TestNewCloseWarehouseJobCommand_Validation(t *testing.T) {
	_, err := commands.NewCloseWarehouseJobCommand(kernel.NewUUID(), nil, testActor(t))
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	draft := []order.Item{preparedItem(t, "P-001", 10, 10)}
	_, err = commands.NewCloseWarehouseJobCommand(kernel.UUID{}, draft, testActor(t))
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	cmd, err := commands.NewCloseWarehouseJobCommand(kernel.NewUUID(), draft, testActor(t))
	require.NoError(t, err)
	assert.Len(t, cmd.ItemsDraft(), 1)
}

func TestCloseWarehouseJobCommandHandler_Handle_CompleteLandsOnAFaturar(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	aggregate := restoredOrder(t, order.RestoreOrderParams{
		ID:       id,
		Kind:     order.KindNormal,
		Status:   order.StatusPrep,
		ClientID: "CL-1",
		Items:    []order.Item{testItem(t, "P-001", 10)},
	})
	draft := []order.Item{preparedItem(t, "P-001", 10, 10)}

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == order.StatusAFaturar && o.WarehouseClosedAt() != nil
	})).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	events := new(MockEventRepository)
	events.On("Add", mock.Anything, mock.MatchedBy(func(e *event.Event) bool {
		return e.Kind() == event.TypePrepClosedOK
	})).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewCloseWarehouseJobCommand(id, draft, testActor(t))
	require.NoError(t, err)

	h := closeWarehouseHandler(factory, events)
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCloseWarehouseJobCommandHandler_Handle_ShortLandsOnFaltas(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	aggregate := restoredOrder(t, order.RestoreOrderParams{
		ID:       id,
		Kind:     order.KindNormal,
		Status:   order.StatusPrep,
		ClientID: "CL-1",
		Items:    []order.Item{testItem(t, "P-001", 10), testItem(t, "P-002", 4)},
	})
	draft := []order.Item{
		preparedItem(t, "P-001", 10, 10),
		preparedItem(t, "P-002", 4, 1),
	}

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == order.StatusFaltas
	})).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	events := new(MockEventRepository)
	events.On("Add", mock.Anything, mock.MatchedBy(func(e *event.Event) bool {
		return e.Kind() == event.TypePrepClosedMissing
	})).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewCloseWarehouseJobCommand(id, draft, testActor(t))
	require.NoError(t, err)

	h := closeWarehouseHandler(factory, events)
	require.NoError(t, h.Handle(ctx, cmd))
	events.AssertExpectations(t)
}

// A purchased quantity covers a short prepared line, so the order still
// closes complete.
func TestCloseWarehouseJobCommandHandler_Handle_PurchasedCoversShortfall(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	aggregate := restoredOrder(t, order.RestoreOrderParams{
		ID:       id,
		Kind:     order.KindNormal,
		Status:   order.StatusPrep,
		ClientID: "CL-1",
		Items:    []order.Item{testItem(t, "P-001", 10)},
	})

	short := preparedItem(t, "P-001", 10, 6).WithPurchased(kernel.QuantityFromFloat(4))
	draft := []order.Item{short}

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == order.StatusAFaturar
	})).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	events := new(MockEventRepository)
	events.On("Add", mock.Anything, mock.AnythingOfType("*event.Event")).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewCloseWarehouseJobCommand(id, draft, testActor(t))
	require.NoError(t, err)

	h := closeWarehouseHandler(factory, events)
	require.NoError(t, h.Handle(ctx, cmd))
}

func TestCloseWarehouseJobCommandHandler_Handle_UnknownDraftKey(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	aggregate := restoredOrder(t, order.RestoreOrderParams{
		ID:       id,
		Kind:     order.KindNormal,
		Status:   order.StatusPrep,
		ClientID: "CL-1",
		Items:    []order.Item{testItem(t, "P-001", 10)},
	})
	draft := []order.Item{preparedItem(t, "P-999", 3, 3)}

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(aggregate, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	events := new(MockEventRepository)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewCloseWarehouseJobCommand(id, draft, testActor(t))
	require.NoError(t, err)

	h := closeWarehouseHandler(factory, events)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// Closing the warehouse job of a BULK_BATCH is the batch close.
func TestCloseWarehouseJobCommandHandler_Handle_DelegatesBatch(t *testing.T) {
	ctx := t.Context()
	batchID := kernel.NewUUID()
	subID := kernel.NewUUID()
	batch := restoredOrder(t, order.RestoreOrderParams{
		ID:          batchID,
		Kind:        order.KindBulkBatch,
		Status:      order.StatusPrep,
		Items:       []order.Item{testItem(t, "P-001", 15)},
		SubOrderIDs: []kernel.UUID{subID},
	})
	sub := restoredOrder(t, order.RestoreOrderParams{
		ID:            subID,
		Kind:          order.KindBulkSub,
		Status:        order.StatusEspera,
		ClientID:      "CL-A",
		Items:         []order.Item{testItem(t, "P-001", 15)},
		LinkedBatchID: &batchID,
	})
	draft := []order.Item{preparedItem(t, "P-001", 15, 15)}

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, batchID).Return(batch, nil).Twice()
	repo.On("GetByIDs", mock.Anything, []kernel.UUID{subID}).
		Return([]*order.Order{sub}, nil).Once()
	repo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Twice()

	guides := new(MockGuideRepository)
	guides.On("ExistsForOrder", mock.Anything, subID).Return(false, nil).Once()
	guides.On("Add", mock.Anything, mock.AnythingOfType("*guide.ShippingGuide")).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("OrderRepository").Return(repo)
	uow.On("GuideRepository").Return(guides).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	events := new(MockEventRepository)
	events.On("Add", mock.Anything, mock.AnythingOfType("*event.Event")).Return(nil).Twice()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	cmd, err := commands.NewCloseWarehouseJobCommand(batchID, draft, testActor(t))
	require.NoError(t, err)

	h := closeWarehouseHandler(factory, events)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, batch.IsArchived())
	assert.Equal(t, order.StatusAFaturar, sub.Status())
	guides.AssertExpectations(t)
	events.AssertExpectations(t)
}
