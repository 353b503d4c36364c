package services

import (
	"fmt"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// TransitionEngine is a domain service that validates order status changes
// and classifies them for the audit trail.
//
// Classification is a pure function of the destination status only, not of
// the edge: the same audit type is recorded for FALTAS no matter where the
// order came from. Edge legality is a separate concern, checked against the
// order state machine's legal-transition table before classification.
//
// Example usage:
//
//	engine := services.NewTransitionEngine()
//	kind, err := engine.Classify(order.StatusPrep, order.StatusAFaturar)
//	if err != nil {
//	    // illegal edge or no-op change
//	}
//	// kind == event.TypePrepClosedOK
type TransitionEngine struct{}

// NewTransitionEngine creates a new TransitionEngine instance.
func NewTransitionEngine() TransitionEngine {
	return TransitionEngine{}
}

// Classify validates the edge oldStatus -> newStatus and returns the audit
// classification of the change. It is invoked only for genuine status
// changes; a no-op (oldStatus == newStatus) is rejected, since non-status
// field updates record no event.
func (TransitionEngine) Classify(oldStatus, newStatus order.Status) (event.Type, error) {
	if oldStatus == newStatus {
		return event.TypeUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("order is already in status %s", oldStatus),
		)
	}

	if _, err := oldStatus.TransitionTo(newStatus); err != nil {
		return event.TypeUnknown, err
	}

	return ClassifyDestination(newStatus), nil
}

// ClassifyDestination maps a destination status to its audit type.
// Any destination without a specific classification defaults to
// SEND_TO_PREP.
func ClassifyDestination(newStatus order.Status) event.Type {
	switch newStatus {
	case order.StatusFaltas:
		return event.TypePrepClosedMissing
	case order.StatusAFaturar:
		return event.TypePrepClosedOK
	case order.StatusAExpedir:
		return event.TypeInvoiced
	default:
		return event.TypeSendToPrep
	}
}
