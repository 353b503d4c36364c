package ports

import (
	"orderflow/internal/core/domain/model/kernel"
)

// Action names an operation a caller may or may not perform.
type Action string

const (
	ActionCreateOrder    Action = "order:create"
	ActionUpdateStatus   Action = "order:update-status"
	ActionCloseWarehouse Action = "order:close-warehouse"
	ActionCloseBatch     Action = "order:close-batch"
	ActionRecordDelivery Action = "order:record-delivery"
	ActionViewOrders     Action = "order:view"
)

// AuthorizationChecker answers whether an actor may perform an action.
// Rule evaluation lives outside this module; handlers consume the answer
// as a plain boolean.
type AuthorizationChecker interface {
	Can(actor kernel.Actor, action Action) bool
}
