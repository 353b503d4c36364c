package event

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Type classifies an order status transition for the audit trail.
// Classification is a pure function of the destination status; see
// services.TransitionEngine.
type Type int

const (
	// TypeUnknown represents an invalid or undefined event type.
	TypeUnknown Type = iota

	// TypeSendToPrep is the default classification for any transition whose
	// destination is not one of the specifically classified statuses.
	TypeSendToPrep

	// TypePrepClosedMissing records a preparation close with missing items
	// (destination FALTAS).
	TypePrepClosedMissing

	// TypePrepClosedOK records a complete preparation close
	// (destination A_FATURAR).
	TypePrepClosedOK

	// TypeInvoiced records the hand-off to expedition
	// (destination A_EXPEDIR).
	TypeInvoiced
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:           "UNKNOWN",
		TypeSendToPrep:        "SEND_TO_PREP",
		TypePrepClosedMissing: "PREP_CLOSED_MISSING",
		TypePrepClosedOK:      "PREP_CLOSED_OK",
		TypeInvoiced:          "INVOICED",
	}
}

// TypeFromString parses a persisted event type token.
func TypeFromString(s string) (Type, error) {
	for t, str := range getTypeStrings() {
		if str == s && t != TypeUnknown {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"eventType",
		fmt.Errorf("%q is not a valid event type", s),
	)
}

// Validate checks if the Type value is valid.
func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok || t == TypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"eventType",
			fmt.Errorf("%d is not a valid event type", t),
		)
	}
	return nil
}

// String returns the event type token used in persistence.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}
