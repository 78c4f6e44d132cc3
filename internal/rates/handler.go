package rates

import (
	"fmt"
	"time"

	"bilty-backend/internal/audit"
	"bilty-backend/internal/auth"
	"bilty-backend/internal/database"
	"bilty-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateRateContractRequest struct {
	ConsignorID   uint    `json:"consignor_id"`
	DestinationID uint    `json:"destination_id"`
	EffectiveFrom string  `json:"effective_from"` // "2025-01-01"
	EffectiveTo   *string `json:"effective_to"`   // null = open-ended

	Rate                 float64         `json:"rate"`
	RateUnit             models.RateUnit `json:"rate_unit"`
	FreightMinimumAmount float64         `json:"freight_minimum_amount"`

	LabourRate *float64          `json:"labour_rate"`
	LabourUnit models.LabourUnit `json:"labour_unit"`

	BiltyCharge         *float64 `json:"bilty_charge"`
	IsTollTaxApplicable bool     `json:"is_toll_tax_applicable"`
	TollTaxAmount       *float64 `json:"toll_tax_amount"`

	DDChargePerNag float64 `json:"dd_charge_per_nag"`
	DDChargePerKg  float64 `json:"dd_charge_per_kg"`

	IsNoCharge bool `json:"is_no_charge"`

	TransportName string `json:"transport_name"`
	TransportGST  string `json:"transport_gst"`
}

type RateContractResponse struct {
	ID            uint    `json:"id"`
	ConsignorID   uint    `json:"consignor_id"`
	Consignor     string  `json:"consignor"`
	DestinationID uint    `json:"destination_id"`
	Destination   string  `json:"destination"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to"`

	Rate                 float64         `json:"rate"`
	RateUnit             models.RateUnit `json:"rate_unit"`
	FreightMinimumAmount float64         `json:"freight_minimum_amount"`

	LabourRate *float64          `json:"labour_rate"`
	LabourUnit models.LabourUnit `json:"labour_unit"`

	BiltyCharge         *float64 `json:"bilty_charge"`
	IsTollTaxApplicable bool     `json:"is_toll_tax_applicable"`
	TollTaxAmount       *float64 `json:"toll_tax_amount"`

	DDChargePerNag float64 `json:"dd_charge_per_nag"`
	DDChargePerKg  float64 `json:"dd_charge_per_kg"`

	IsNoCharge bool `json:"is_no_charge"`

	TransportName string `json:"transport_name"`
	TransportGST  string `json:"transport_gst"`

	IsActive bool `json:"is_active"`
}

func toResponse(rc models.RateContract) RateContractResponse {
	resp := RateContractResponse{
		ID:                   rc.ID,
		ConsignorID:          rc.ConsignorID,
		Consignor:            rc.Consignor.Name,
		DestinationID:        rc.DestinationID,
		Destination:          rc.Destination.Name,
		EffectiveFrom:        rc.EffectiveFrom.Format("2006-01-02"),
		Rate:                 rc.Rate,
		RateUnit:             rc.RateUnit,
		FreightMinimumAmount: rc.FreightMinimumAmount,
		LabourRate:           rc.LabourRate,
		LabourUnit:           rc.LabourUnit,
		BiltyCharge:          rc.BiltyCharge,
		IsTollTaxApplicable:  rc.IsTollTaxApplicable,
		TollTaxAmount:        rc.TollTaxAmount,
		DDChargePerNag:       rc.DDChargePerNag,
		DDChargePerKg:        rc.DDChargePerKg,
		IsNoCharge:           rc.IsNoCharge,
		TransportName:        rc.TransportName,
		TransportGST:         rc.TransportGST,
		IsActive:             rc.IsActive,
	}
	if rc.EffectiveTo != nil {
		s := rc.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &s
	}
	return resp
}

// POST /api/rate-contracts
func CreateRateContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRateContractRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ConsignorID == 0 || body.DestinationID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "consignor_id and destination_id are required")
		}
		if body.Rate <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "rate must be greater than 0")
		}
		if body.RateUnit == "" {
			body.RateUnit = models.RateUnitPerKg
		}
		if !body.RateUnit.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "rate_unit must be PER_KG or PER_NAG")
		}
		if body.LabourUnit != "" && !body.LabourUnit.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "labour_unit must be PER_KG, PER_NAG or PER_BILTY")
		}

		from, err := time.Parse("2006-01-02", body.EffectiveFrom)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "effective_from must be 'YYYY-MM-DD'")
		}
		var to *time.Time
		if body.EffectiveTo != nil && *body.EffectiveTo != "" {
			t, err := time.Parse("2006-01-02", *body.EffectiveTo)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "effective_to must be 'YYYY-MM-DD'")
			}
			if t.Before(from) {
				return fiber.NewError(fiber.StatusBadRequest, "effective_to must not be before effective_from")
			}
			to = &t
		}

		var consignor models.Party
		if err := database.DB.First(&consignor, body.ConsignorID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Consignor not found")
		}
		var destination models.City
		if err := database.DB.First(&destination, body.DestinationID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Destination city not found")
		}

		rc := models.RateContract{
			ConsignorID:          body.ConsignorID,
			DestinationID:        body.DestinationID,
			EffectiveFrom:        from,
			EffectiveTo:          to,
			Rate:                 body.Rate,
			RateUnit:             body.RateUnit,
			FreightMinimumAmount: body.FreightMinimumAmount,
			LabourRate:           body.LabourRate,
			LabourUnit:           body.LabourUnit,
			BiltyCharge:          body.BiltyCharge,
			IsTollTaxApplicable:  body.IsTollTaxApplicable,
			TollTaxAmount:        body.TollTaxAmount,
			DDChargePerNag:       body.DDChargePerNag,
			DDChargePerKg:        body.DDChargePerKg,
			IsNoCharge:           body.IsNoCharge,
			TransportName:        body.TransportName,
			TransportGST:         body.TransportGST,
			IsActive:             true,
		}

		if err := database.DB.Create(&rc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create rate contract")
		}

		writeAudit(c, rc.ID, models.AuditActionCreate,
			fmt.Sprintf("Rate contract created: %s -> %s, %v %s", consignor.Name, destination.Name, rc.Rate, rc.RateUnit),
			nil, rc)

		rc.Consignor = consignor
		rc.Destination = destination
		return c.Status(fiber.StatusCreated).JSON(toResponse(rc))
	}
}

// GET /api/rate-contracts?consignor_id=&destination_id=&active=true
func ListRateContractsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.RateContract{}).
			Preload("Consignor").Preload("Destination")

		if v := c.QueryInt("consignor_id"); v > 0 {
			dbq = dbq.Where("consignor_id = ?", v)
		}
		if v := c.QueryInt("destination_id"); v > 0 {
			dbq = dbq.Where("destination_id = ?", v)
		}
		if c.Query("active") == "true" {
			dbq = dbq.Where("is_active = ?", true)
		}

		var contracts []models.RateContract
		if err := dbq.Order("consignor_id asc, destination_id asc, effective_from desc").Find(&contracts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list rate contracts")
		}

		resp := make([]RateContractResponse, 0, len(contracts))
		for _, rc := range contracts {
			resp = append(resp, toResponse(rc))
		}
		return c.JSON(resp)
	}
}

type UpdateRateContractRequest struct {
	EffectiveTo          *string  `json:"effective_to"`
	Rate                 *float64 `json:"rate"`
	FreightMinimumAmount *float64 `json:"freight_minimum_amount"`
	LabourRate           *float64 `json:"labour_rate"`
	BiltyCharge          *float64 `json:"bilty_charge"`
	IsTollTaxApplicable  *bool    `json:"is_toll_tax_applicable"`
	TollTaxAmount        *float64 `json:"toll_tax_amount"`
	DDChargePerNag       *float64 `json:"dd_charge_per_nag"`
	DDChargePerKg        *float64 `json:"dd_charge_per_kg"`
	IsNoCharge           *bool    `json:"is_no_charge"`
	TransportName        *string  `json:"transport_name"`
	TransportGST         *string  `json:"transport_gst"`
}

// PUT /api/rate-contracts/:id
func UpdateRateContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var rc models.RateContract
		if err := database.DB.First(&rc, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rate contract not found")
		}
		before := rc

		var body UpdateRateContractRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.EffectiveTo != nil {
			if *body.EffectiveTo == "" {
				rc.EffectiveTo = nil
			} else {
				t, err := time.Parse("2006-01-02", *body.EffectiveTo)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "effective_to must be 'YYYY-MM-DD'")
				}
				rc.EffectiveTo = &t
			}
		}
		if body.Rate != nil {
			if *body.Rate <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "rate must be greater than 0")
			}
			rc.Rate = *body.Rate
		}
		if body.FreightMinimumAmount != nil {
			rc.FreightMinimumAmount = *body.FreightMinimumAmount
		}
		if body.LabourRate != nil {
			rc.LabourRate = body.LabourRate
		}
		if body.BiltyCharge != nil {
			rc.BiltyCharge = body.BiltyCharge
		}
		if body.IsTollTaxApplicable != nil {
			rc.IsTollTaxApplicable = *body.IsTollTaxApplicable
		}
		if body.TollTaxAmount != nil {
			rc.TollTaxAmount = body.TollTaxAmount
		}
		if body.DDChargePerNag != nil {
			rc.DDChargePerNag = *body.DDChargePerNag
		}
		if body.DDChargePerKg != nil {
			rc.DDChargePerKg = *body.DDChargePerKg
		}
		if body.IsNoCharge != nil {
			rc.IsNoCharge = *body.IsNoCharge
		}
		if body.TransportName != nil {
			rc.TransportName = *body.TransportName
		}
		if body.TransportGST != nil {
			rc.TransportGST = *body.TransportGST
		}

		if err := database.DB.Save(&rc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update rate contract")
		}

		writeAudit(c, rc.ID, models.AuditActionUpdate,
			fmt.Sprintf("Rate contract %d updated", rc.ID), before, rc)

		database.DB.Preload("Consignor").Preload("Destination").First(&rc, rc.ID)
		return c.JSON(toResponse(rc))
	}
}

// DELETE /api/rate-contracts/:id is a soft delete: the contract stops resolving
// but stays for history.
func DeactivateRateContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var rc models.RateContract
		if err := database.DB.First(&rc, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rate contract not found")
		}
		if !rc.IsActive {
			return fiber.NewError(fiber.StatusConflict, "Rate contract is already inactive")
		}
		before := rc

		rc.IsActive = false
		if err := database.DB.Save(&rc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not deactivate rate contract")
		}

		writeAudit(c, rc.ID, models.AuditActionDelete,
			fmt.Sprintf("Rate contract %d deactivated", rc.ID), before, rc)

		return c.JSON(fiber.Map{"id": rc.ID, "is_active": false})
	}
}

func writeAudit(c *fiber.Ctx, entityID uint, action models.AuditAction, desc string, before, after any) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	var user models.User
	_ = database.DB.First(&user, userID).Error

	if err := audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		UserName:    user.Name,
		EntityType:  "rate_contract",
		EntityID:    entityID,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	}); err != nil {
		// Audit failure must not fail the business write.
		fmt.Printf("audit log failed: %v\n", err)
	}
}
