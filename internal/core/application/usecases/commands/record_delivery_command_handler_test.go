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

func TestNewRecordDeliveryCommand_OutcomeMustBeTerminalDelivery(t *testing.T) {
	_, err := commands.NewRecordDeliveryCommand(kernel.NewUUID(), order.StatusEntregue, "", testActor(t))
	require.NoError(t, err)

	_, err = commands.NewRecordDeliveryCommand(kernel.NewUUID(), order.StatusNaoEntregue, "ninguem em casa", testActor(t))
	require.NoError(t, err)

	_, err = commands.NewRecordDeliveryCommand(kernel.NewUUID(), order.StatusCancelada, "", testActor(t))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewRecordDeliveryCommand(kernel.NewUUID(), order.StatusPrep, "", testActor(t))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRecordDeliveryCommandHandler_Handle_Delivered(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	aggregate := restoredOrder(t, order.RestoreOrderParams{
		ID:       id,
		Kind:     order.KindNormal,
		Status:   order.StatusEmRota,
		ClientID: "CL-1",
		Items:    []order.Item{preparedItem(t, "P-001", 10, 10)},
	})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.StatusEntregue
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	events := new(MockEventRepository)
	events.On("Add", mock.Anything, mock.MatchedBy(func(e *event.Event) bool {
		return e.Kind() == event.TypeSendToPrep && e.Meta()["to"] == "ENTREGUE"
	})).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRecordDeliveryCommand(id, order.StatusEntregue, "", testActor(t))
	require.NoError(t, err)

	h := commands.NewRecordDeliveryCommandHandler(factory, events, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.StatusEntregue, aggregate.Status())
	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestRecordDeliveryCommandHandler_Handle_NotOnTheRoad(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	aggregate := restoredOrder(t, order.RestoreOrderParams{
		ID:       id,
		Kind:     order.KindNormal,
		Status:   order.StatusPrep,
		ClientID: "CL-1",
		Items:    []order.Item{testItem(t, "P-001", 10)},
	})

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(aggregate, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	events := new(MockEventRepository)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRecordDeliveryCommand(id, order.StatusEntregue, "", testActor(t))
	require.NoError(t, err)

	h := commands.NewRecordDeliveryCommandHandler(factory, events, testLogger())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, order.StatusPrep, aggregate.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	events.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

// An audit append failure is logged and swallowed: the committed status
// change stands.
func TestRecordDeliveryCommandHandler_Handle_AuditFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	aggregate := restoredOrder(t, order.RestoreOrderParams{
		ID:       id,
		Kind:     order.KindNormal,
		Status:   order.StatusExpedida,
		ClientID: "CL-1",
		Items:    []order.Item{preparedItem(t, "P-001", 10, 10)},
	})

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	events := new(MockEventRepository)
	events.On("Add", mock.Anything, mock.AnythingOfType("*event.Event")).
		Return(errs.NewValueIsInvalidError("event store down")).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRecordDeliveryCommand(id, order.StatusNaoEntregue, "morada errada", testActor(t))
	require.NoError(t, err)

	h := commands.NewRecordDeliveryCommandHandler(factory, events, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.StatusNaoEntregue, aggregate.Status())
	events.AssertExpectations(t)
}
