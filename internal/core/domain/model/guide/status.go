package guide

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status is the invoicing state of a shipping guide. Guides are created
// PENDENTE; invoicing marks them FATURADA or CANCELADA downstream.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPendente means the guide awaits invoicing.
	StatusPendente

	// StatusFaturada means an invoice was issued from the guide.
	StatusFaturada

	// StatusCancelada means the guide was voided before invoicing.
	StatusCancelada
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "UNKNOWN",
		StatusPendente:  "PENDENTE",
		StatusFaturada:  "FATURADA",
		StatusCancelada: "CANCELADA",
	}
}

// StatusFromString parses a persisted guide status token.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"guideStatus",
		fmt.Errorf("%q is not a valid guide status", s),
	)
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"guideStatus",
			fmt.Errorf("%d is not a valid guide status", s),
		)
	}
	return nil
}

// String returns the status token used in persistence.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
