package pricing

import "bilty-backend/internal/models"

// CalculateDoorDelivery computes the last-mile charge from the contract.
// Per-nag takes priority over per-kg; only one ever applies, never their sum.
// No contract means no door-delivery charge, there is no default.
//
// The one-time receiving-slip charge is deliberately NOT added here: it is
// per consignment, and the caller adds it exactly once.
func CalculateDoorDelivery(packages, weight float64, contract *models.RateContract) float64 {
	if contract == nil {
		return 0
	}
	if contract.DDChargePerNag > 0 {
		return Round2(packages * contract.DDChargePerNag)
	}
	if contract.DDChargePerKg > 0 {
		return Round2(weight * contract.DDChargePerKg)
	}
	return 0
}
