package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Kind distinguishes the three shapes an order can take.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindNormal is a regular customer order prepared on its own.
	KindNormal

	// KindBulkBatch is a synthetic order aggregating the requested quantities
	// of several customer orders into one consolidated warehouse job.
	KindBulkBatch

	// KindBulkSub is a customer order whose preparation is delegated to a
	// bulk batch; its prepared quantities are written back when the batch
	// closes.
	KindBulkSub
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:   "UNKNOWN",
		KindNormal:    "NORMAL",
		KindBulkBatch: "BULK_BATCH",
		KindBulkSub:   "BULK_SUB",
	}
}

// KindFromString parses a persisted kind token, e.g. "BULK_BATCH".
func KindFromString(s string) (Kind, error) {
	for kind, str := range getKindStrings() {
		if str == s && kind != KindUnknown {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause(
		"kind",
		fmt.Errorf("%q is not a valid order kind", s),
	)
}

// Validate checks if the Kind value is valid.
func (k Kind) Validate() error {
	if _, ok := getKindStrings()[k]; !ok || k == KindUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"kind",
			fmt.Errorf("%d is not a valid order kind", k),
		)
	}
	return nil
}

// String returns the kind token used in persistence and transport.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "UNKNOWN"
}
