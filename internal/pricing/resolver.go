package pricing

import (
	"fmt"
	"time"

	"bilty-backend/internal/models"
)

// ContractStore is the one external collaborator of the pricing core. It
// returns the single effective contract for the scope, or nil when none
// qualifies. A non-nil error is a lookup fault (store unreachable, bad data),
// which is distinct from "not found".
type ContractStore interface {
	FindEffective(consignorID, destinationID uint, asOf time.Time) (*models.RateContract, error)
}

type Resolver struct {
	store ContractStore
}

func NewResolver(store ContractStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the contract effective on asOf, ErrNoContract when none
// exists, or a wrapped store error. ErrNoContract is the expected default-path
// trigger and must not be surfaced to the operator as a failure.
func (r *Resolver) Resolve(consignorID, destinationID uint, asOf time.Time) (*models.RateContract, error) {
	contract, err := r.store.FindEffective(consignorID, destinationID, asOf)
	if err != nil {
		return nil, fmt.Errorf("rate contract lookup: %w", err)
	}
	if contract == nil {
		return nil, ErrNoContract
	}
	return contract, nil
}

// MostRecentEffective selects from candidate contracts the one effective on
// asOf with the latest start date. Overlapping windows should not exist by
// construction upstream; when they do, the most recent contract wins.
//
// Validity is date-granular on both ends: a contract whose window ends on day
// D stays effective for the whole of D, whatever time of day the caller asks.
func MostRecentEffective(contracts []models.RateContract, asOf time.Time) *models.RateContract {
	day := dateOf(asOf)
	var best *models.RateContract
	for i := range contracts {
		c := &contracts[i]
		if dateOf(c.EffectiveFrom).After(day) {
			continue
		}
		if c.EffectiveTo != nil && dateOf(*c.EffectiveTo).Before(day) {
			continue
		}
		if best == nil || c.EffectiveFrom.After(best.EffectiveFrom) {
			best = c
		}
	}
	return best
}

// dateOf strips the time of day. Window bounds are stored as midnight dates,
// but asOf often arrives as a wall-clock timestamp.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
