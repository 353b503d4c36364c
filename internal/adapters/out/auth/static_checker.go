// Package auth provides a static, role-based implementation of the
// authorization capability check. Permission rules are authored elsewhere;
// this adapter only answers whether a role carries a capability.
package auth

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
)

// StaticAuthorizationChecker grants actions per actor role from a fixed
// table. Unknown roles and unknown actions are denied.
type StaticAuthorizationChecker struct {
	grants map[string]map[ports.Action]bool
}

// NewStaticAuthorizationChecker creates a checker with the default role
// grants of the operation:
//
//   - gestor: everything
//   - comercial: create orders, view
//   - armazem: warehouse close, batch close, status updates, view
//   - faturacao: status updates, view
//   - motorista: record deliveries, view
func NewStaticAuthorizationChecker() *StaticAuthorizationChecker {
	return &StaticAuthorizationChecker{
		grants: map[string]map[ports.Action]bool{
			"gestor": {
				ports.ActionCreateOrder:    true,
				ports.ActionUpdateStatus:   true,
				ports.ActionCloseWarehouse: true,
				ports.ActionCloseBatch:     true,
				ports.ActionRecordDelivery: true,
				ports.ActionViewOrders:     true,
			},
			"comercial": {
				ports.ActionCreateOrder: true,
				ports.ActionViewOrders:  true,
			},
			"armazem": {
				ports.ActionUpdateStatus:   true,
				ports.ActionCloseWarehouse: true,
				ports.ActionCloseBatch:     true,
				ports.ActionViewOrders:     true,
			},
			"faturacao": {
				ports.ActionUpdateStatus: true,
				ports.ActionViewOrders:   true,
			},
			"motorista": {
				ports.ActionRecordDelivery: true,
				ports.ActionViewOrders:     true,
			},
		},
	}
}

// NewStaticAuthorizationCheckerWithGrants creates a checker with a custom
// grant table. Useful when grants come from configuration.
func NewStaticAuthorizationCheckerWithGrants(grants map[string]map[ports.Action]bool) *StaticAuthorizationChecker {
	return &StaticAuthorizationChecker{grants: grants}
}

// Can reports whether the actor's role carries the given action.
func (c *StaticAuthorizationChecker) Can(actor kernel.Actor, action ports.Action) bool {
	if err := actor.Validate(); err != nil {
		return false
	}

	roleGrants, ok := c.grants[actor.Role()]
	if !ok {
		return false
	}
	return roleGrants[action]
}
