package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order as it moves through
// warehouse preparation, invoicing and delivery.
//
// State transitions:
//
//	ESPERA <──> PREP ──┬──> A_FATURAR ──> A_EXPEDIR ──┬──> EMROTA ───┬──> ENTREGUE
//	                   │        ^                     │      │       └──> NAOENTREGUE
//	                   │        │                     └──> EXPEDIDA ──> ENTREGUE / NAOENTREGUE
//	                   └──> FALTAS
//
// FALTAS and A_FATURAR have rework edges back to PREP. CANCELADA is reachable
// from every status up to A_EXPEDIR. ENTREGUE, NAOENTREGUE and CANCELADA are
// terminal.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusEspera is the initial status: the order waits for the warehouse
	// to pick it up.
	StatusEspera

	// StatusPrep indicates the warehouse is actively preparing the order.
	StatusPrep

	// StatusFaltas indicates preparation closed with at least one item whose
	// prepared plus purchased quantity falls short of the requested quantity.
	StatusFaltas

	// StatusAFaturar indicates preparation closed complete; the order is
	// ready for invoicing.
	StatusAFaturar

	// StatusAExpedir indicates the order has been invoiced and awaits
	// dispatch.
	StatusAExpedir

	// StatusEmRota indicates the order is out with a carrier on a route.
	StatusEmRota

	// StatusExpedida indicates the order left the facility outside a managed
	// route (e.g. client pickup or third-party carrier).
	StatusExpedida

	// StatusEntregue is the terminal status for a successful delivery.
	StatusEntregue

	// StatusNaoEntregue is the terminal status for a failed delivery.
	StatusNaoEntregue

	// StatusCancelada is the terminal status for a cancelled order.
	StatusCancelada
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "UNKNOWN",
		StatusEspera:      "ESPERA",
		StatusPrep:        "PREP",
		StatusFaltas:      "FALTAS",
		StatusAFaturar:    "A_FATURAR",
		StatusAExpedir:    "A_EXPEDIR",
		StatusEmRota:      "EMROTA",
		StatusExpedida:    "EXPEDIDA",
		StatusEntregue:    "ENTREGUE",
		StatusNaoEntregue: "NAOENTREGUE",
		StatusCancelada:   "CANCELADA",
	}
}

// legalTransitions is the explicit edge-validity table for the order state
// machine. An edge absent from this table is illegal; there is no implicit
// fallback.
func legalTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusEspera:   {StatusPrep, StatusCancelada},
		StatusPrep:     {StatusEspera, StatusFaltas, StatusAFaturar, StatusCancelada},
		StatusFaltas:   {StatusPrep, StatusAFaturar, StatusCancelada},
		StatusAFaturar: {StatusPrep, StatusAExpedir, StatusCancelada},
		StatusAExpedir: {StatusEmRota, StatusExpedida, StatusCancelada},
		StatusEmRota:   {StatusExpedida, StatusEntregue, StatusNaoEntregue},
		StatusExpedida: {StatusEntregue, StatusNaoEntregue},
		// StatusEntregue, StatusNaoEntregue and StatusCancelada are terminal.
	}
}

// StatusFromString parses a persisted or transport-level status token,
// e.g. "A_FATURAR". Returns an error for unknown tokens.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the status token used in persistence and transport,
// or "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s Status) IsTerminal() bool {
	return s == StatusEntregue || s == StatusNaoEntregue || s == StatusCancelada
}

// CanTransitionTo reports whether the edge s -> target is legal.
// The self-edge is never legal: a no-op update is not a transition.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range legalTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the edge s -> target and returns the new status.
//
// Returns:
//   - (target, nil) on a legal transition
//   - (0, error) when target is invalid or the edge is not in the legal table
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(target) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("transition %s -> %s is not allowed", s, target),
		)
	}

	return target, nil
}
