package pricing

import (
	"errors"
	"testing"
	"time"

	"bilty-backend/internal/models"
)

type fakeContractStore struct {
	contract *models.RateContract
	err      error
}

func (f *fakeContractStore) FindEffective(consignorID, destinationID uint, asOf time.Time) (*models.RateContract, error) {
	return f.contract, f.err
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolver_Found(t *testing.T) {
	want := &models.RateContract{ID: 7, Rate: 5}
	r := NewResolver(&fakeContractStore{contract: want})
	got, err := r.Resolve(1, 2, date("2024-07-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want contract 7", got)
	}
}

func TestResolver_NotFound(t *testing.T) {
	r := NewResolver(&fakeContractStore{})
	_, err := r.Resolve(1, 2, date("2024-07-01"))
	if !errors.Is(err, ErrNoContract) {
		t.Fatalf("err = %v, want ErrNoContract", err)
	}
}

func TestResolver_LookupFault(t *testing.T) {
	storeErr := errors.New("connection refused")
	r := NewResolver(&fakeContractStore{err: storeErr})
	_, err := r.Resolve(1, 2, date("2024-07-01"))
	if err == nil || errors.Is(err, ErrNoContract) {
		t.Fatalf("err = %v, want a wrapped store fault distinct from ErrNoContract", err)
	}
	if !errors.Is(err, storeErr) {
		t.Fatalf("err = %v, must wrap the store error", err)
	}
}

func TestMostRecentEffective_TieBreak(t *testing.T) {
	// Two overlapping windows both covering the query date: latest start wins.
	contracts := []models.RateContract{
		{ID: 1, EffectiveFrom: date("2024-01-01")},
		{ID: 2, EffectiveFrom: date("2024-06-01")},
	}
	got := MostRecentEffective(contracts, date("2024-07-15"))
	if got == nil || got.ID != 2 {
		t.Fatalf("got %+v, want contract 2 (started 2024-06-01)", got)
	}
}

func TestMostRecentEffective_Windows(t *testing.T) {
	to := date("2024-03-31")
	contracts := []models.RateContract{
		{ID: 1, EffectiveFrom: date("2024-01-01"), EffectiveTo: &to},
		{ID: 2, EffectiveFrom: date("2024-09-01")}, // starts after query date
	}

	if got := MostRecentEffective(contracts, date("2024-02-15")); got == nil || got.ID != 1 {
		t.Errorf("inside window: got %+v, want contract 1", got)
	}
	if got := MostRecentEffective(contracts, date("2024-05-15")); got != nil {
		t.Errorf("between windows: got %+v, want nil", got)
	}
	if got := MostRecentEffective(contracts, date("2024-03-31")); got == nil || got.ID != 1 {
		t.Errorf("effectiveTo is inclusive: got %+v, want contract 1", got)
	}
	if got := MostRecentEffective(contracts, date("2024-09-01")); got == nil || got.ID != 2 {
		t.Errorf("effectiveFrom is inclusive: got %+v, want contract 2", got)
	}
}

func TestMostRecentEffective_TimestampedAsOf(t *testing.T) {
	// Bookings resolve with a wall-clock timestamp while window bounds are
	// stored at midnight. The last effective day must cover the whole day,
	// not just its first instant.
	to := date("2024-03-31")
	contracts := []models.RateContract{
		{ID: 1, EffectiveFrom: date("2024-01-01"), EffectiveTo: &to},
	}

	afternoon := date("2024-03-31").Add(14 * time.Hour)
	if got := MostRecentEffective(contracts, afternoon); got == nil || got.ID != 1 {
		t.Fatalf("got %+v, want contract 1 at 2024-03-31 14:00", got)
	}
	morning := date("2024-01-01").Add(9 * time.Hour)
	if got := MostRecentEffective(contracts, morning); got == nil || got.ID != 1 {
		t.Errorf("got %+v, want contract 1 at 2024-01-01 09:00", got)
	}
	if got := MostRecentEffective(contracts, date("2024-04-01").Add(1*time.Hour)); got != nil {
		t.Errorf("got %+v, want nil the day after the window closes", got)
	}
}

func TestMostRecentEffective_Empty(t *testing.T) {
	if got := MostRecentEffective(nil, date("2024-01-01")); got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}
