package bilty

import (
	"errors"
	"log"
	"time"

	"bilty-backend/internal/config"
	"bilty-backend/internal/database"
	"bilty-backend/internal/models"
	"bilty-backend/internal/pricing"
	"bilty-backend/internal/rates"

	"github.com/gofiber/fiber/v2"
)

type QuoteRequest struct {
	ConsignorID   uint    `json:"consignor_id"`
	DestinationID uint    `json:"destination_id"`
	Date          *string `json:"date"` // booking date, defaults to today

	Weight       float64             `json:"weight"`
	PackageCount float64             `json:"package_count"`
	DeliveryType models.DeliveryType `json:"delivery_type"`
	OtherCharge  float64             `json:"other_charge"` // current draft value
}

type FreightBreakdown struct {
	ChargedWeight        float64 `json:"charged_weight"`
	WeightMinimumApplied bool    `json:"weight_minimum_applied"`
	CalculatedFreight    float64 `json:"calculated_freight"`
	FreightAmount        float64 `json:"freight_amount"`
	EffectiveRate        float64 `json:"effective_rate"`
	MinimumApplied       bool    `json:"minimum_applied"`
}

type QuoteResponse struct {
	ContractFound bool `json:"contract_found"`

	Rate           *float64           `json:"rate,omitempty"`
	RateUnit       *models.RateUnit   `json:"rate_unit,omitempty"`
	MinimumFreight *float64           `json:"minimum_freight,omitempty"`
	LabourRate     *float64           `json:"labour_rate,omitempty"`
	LabourUnit     *models.LabourUnit `json:"labour_unit,omitempty"`
	LabourCharge   *float64           `json:"labour_charge,omitempty"`
	BillCharge     *float64           `json:"bill_charge,omitempty"`
	TollCharge     *float64           `json:"toll_charge,omitempty"`
	OtherCharge    *float64           `json:"other_charge,omitempty"`
	TransportName  *string            `json:"transport_name,omitempty"`
	TransportGST   *string            `json:"transport_gst,omitempty"`

	DoorDeliveryCharge  float64 `json:"door_delivery_charge"`
	ReceivingSlipCharge float64 `json:"receiving_slip_charge"`
	UseMinimumWeight    bool    `json:"use_minimum_weight"`

	Freight *FreightBreakdown `json:"freight,omitempty"`
}

// POST /api/bilties/quote
//
// Runs the rate resolution and charge computation for the operator's current
// draft and returns a patch of field values. The draft itself is never
// touched server-side; the client merges the patch into its form state, and a
// stale response (selection changed while the request was in flight) is the
// client's to discard.
func QuoteHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body QuoteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.ConsignorID == 0 || body.DestinationID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "consignor_id and destination_id are required")
		}

		asOf := time.Now()
		if body.Date != nil && *body.Date != "" {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			asOf = d
		}

		var city models.City
		if err := database.DB.First(&city, body.DestinationID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Destination city not found")
		}

		resolver := pricing.NewResolver(rates.NewStore(database.DB))
		contract, err := resolver.Resolve(body.ConsignorID, body.DestinationID, asOf)
		if err != nil && !errors.Is(err, pricing.ErrNoContract) {
			// Lookup fault: distinct from "no contract". The operator falls
			// back to manual entry, the booking is not blocked.
			log.Println("rate contract lookup failed:", err)
			return fiber.NewError(fiber.StatusBadGateway, "Could not look up the rate contract; enter rates manually")
		}

		defaults := pricing.Defaults{
			MinimumWeight: cfg.MinimumWeightKg,
			Labour: pricing.LabourDefaults{
				HubMarker:   cfg.HubCityMarker,
				HubRate:     cfg.HubLabourRate,
				GeneralRate: cfg.GeneralLabourRate,
			},
		}
		draft := pricing.DraftSnapshot{
			Weight:         body.Weight,
			Packages:       body.PackageCount,
			IsDoorDelivery: body.DeliveryType == models.DeliveryTypeDoor,
			OtherCharge:    body.OtherCharge,
		}

		patch, err := pricing.Apply(contract, draft, pricing.CityInfo{Name: city.Name, Code: city.Code}, defaults)
		if err != nil {
			// Unknown unit on a stored contract is a data fault, not operator error.
			log.Println("charge computation rejected contract:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Rate contract has an invalid pricing unit")
		}

		resp := QuoteResponse{
			ContractFound:      patch.ContractFound,
			Rate:               patch.Rate,
			RateUnit:           patch.RateUnit,
			MinimumFreight:     patch.MinimumFreight,
			LabourRate:         patch.LabourRate,
			LabourUnit:         patch.LabourUnit,
			BillCharge:         patch.BillCharge,
			TollCharge:         patch.TollCharge,
			OtherCharge:        patch.OtherCharge,
			TransportName:      patch.TransportName,
			TransportGST:       patch.TransportGST,
			DoorDeliveryCharge: patch.DoorDeliveryCharge,
			UseMinimumWeight:   patch.UseMinimumWeight,
		}

		// Receiving slip: once per consignment on door delivery, added by this
		// caller (never by the calculator) and waived by a no-charge contract.
		if draft.IsDoorDelivery && (contract == nil || !contract.IsNoCharge) {
			resp.ReceivingSlipCharge = cfg.ReceivingSlipCharge
			base := body.OtherCharge + patch.DoorDeliveryCharge
			if patch.OtherCharge != nil {
				base = *patch.OtherCharge
			}
			total := pricing.Round2(base + cfg.ReceivingSlipCharge)
			resp.OtherCharge = &total
		}

		// Freight preview when a contract supplied the rate.
		if patch.Rate != nil && patch.RateUnit != nil {
			ew := pricing.NormalizeWeight(body.Weight, cfg.MinimumWeightKg)
			fr, err := pricing.CalculateFreight(ew.EffectiveWeight, body.PackageCount, *patch.Rate, *patch.RateUnit, pricing.Num(patch.MinimumFreight))
			if err != nil {
				log.Println("freight computation rejected contract:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Rate contract has an invalid pricing unit")
			}
			resp.Freight = &FreightBreakdown{
				ChargedWeight:        ew.EffectiveWeight,
				WeightMinimumApplied: ew.IsMinimumApplied,
				CalculatedFreight:    fr.CalculatedFreight,
				FreightAmount:        fr.FreightAmount,
				EffectiveRate:        fr.EffectiveRate,
				MinimumApplied:       fr.IsMinimumApplied,
			}
		}

		// Labour preview whenever a rate is known (contract or default).
		if patch.LabourRate != nil {
			unit := models.LabourUnitPerNag
			if patch.LabourUnit != nil {
				unit = *patch.LabourUnit
			}
			lab, err := pricing.CalculateLabour(body.PackageCount, body.Weight, *patch.LabourRate, unit)
			if err != nil {
				log.Println("labour computation rejected contract:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Rate contract has an invalid pricing unit")
			}
			resp.LabourCharge = &lab
		}

		return c.JSON(resp)
	}
}
