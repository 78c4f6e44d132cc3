package pricing

import "errors"

// ErrNoContract: no effective rate contract exists for the selection. Expected
// outcome, the caller falls back to defaults. Never an operator-facing error.
var ErrNoContract = errors.New("no effective rate contract")

// Unit errors are programmer/data faults. A calculator must never guess a
// pricing unit: a guessed unit risks a wrong charge landing on an invoice.
var (
	ErrUnknownRateUnit   = errors.New("unknown rate unit")
	ErrUnknownLabourUnit = errors.New("unknown labour unit")
)
