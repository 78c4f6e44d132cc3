package bilty

import (
	"fmt"
	"time"

	"bilty-backend/internal/audit"
	"bilty-backend/internal/auth"
	"bilty-backend/internal/config"
	"bilty-backend/internal/database"
	"bilty-backend/internal/models"
	"bilty-backend/internal/pricing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateBiltyRequest struct {
	Date          *string `json:"date"` // "2025-12-09", empty = today
	ConsignorID   uint    `json:"consignor_id"`
	ConsigneeID   uint    `json:"consignee_id"`
	DestinationID uint    `json:"destination_id"`

	PackageCount float64             `json:"package_count"`
	Weight       float64             `json:"weight"`
	Contents     string              `json:"contents"`
	DeliveryType models.DeliveryType `json:"delivery_type"`
	PaymentMode  models.PaymentMode  `json:"payment_mode"`

	// Pricing fields as accepted by the operator (usually the quote patch,
	// possibly overridden by hand).
	Rate           float64           `json:"rate"`
	RateUnit       models.RateUnit   `json:"rate_unit"`
	MinimumFreight float64           `json:"minimum_freight"`
	LabourRate     float64           `json:"labour_rate"`
	LabourUnit     models.LabourUnit `json:"labour_unit"`
	BillCharge     float64           `json:"bill_charge"`
	TollCharge     float64           `json:"toll_charge"`
	OtherCharge    float64           `json:"other_charge"`

	TransportName string `json:"transport_name"`
	TransportGST  string `json:"transport_gst"`
	EWayBillNo    string `json:"eway_bill_no"`
}

type BiltyResponse struct {
	ID            uint   `json:"id"`
	GRNumber      string `json:"gr_number"`
	Date          string `json:"date"`
	ConsignorID   uint   `json:"consignor_id"`
	Consignor     string `json:"consignor"`
	ConsigneeID   uint   `json:"consignee_id"`
	Consignee     string `json:"consignee"`
	DestinationID uint   `json:"destination_id"`
	Destination   string `json:"destination"`

	PackageCount  float64             `json:"package_count"`
	Weight        float64             `json:"weight"`
	ChargedWeight float64             `json:"charged_weight"`
	Contents      string              `json:"contents"`
	DeliveryType  models.DeliveryType `json:"delivery_type"`
	PaymentMode   models.PaymentMode  `json:"payment_mode"`

	Rate           float64           `json:"rate"`
	RateUnit       models.RateUnit   `json:"rate_unit"`
	MinimumFreight float64           `json:"minimum_freight"`
	FreightAmount  float64           `json:"freight_amount"`
	LabourCharge   float64           `json:"labour_charge"`
	BillCharge     float64           `json:"bill_charge"`
	TollCharge     float64           `json:"toll_charge"`
	OtherCharge    float64           `json:"other_charge"`
	TotalAmount    float64           `json:"total_amount"`

	TransportName string `json:"transport_name"`
	TransportGST  string `json:"transport_gst"`
	EWayBillNo    string `json:"eway_bill_no"`

	Status models.BiltyStatus `json:"status"`
}

func toResponse(b models.Bilty) BiltyResponse {
	return BiltyResponse{
		ID:             b.ID,
		GRNumber:       b.GRNumber,
		Date:           b.Date.Format("2006-01-02"),
		ConsignorID:    b.ConsignorID,
		Consignor:      b.Consignor.Name,
		ConsigneeID:    b.ConsigneeID,
		Consignee:      b.Consignee.Name,
		DestinationID:  b.DestinationID,
		Destination:    b.Destination.Name,
		PackageCount:   b.PackageCount,
		Weight:         b.Weight,
		ChargedWeight:  b.ChargedWeight,
		Contents:       b.Contents,
		DeliveryType:   b.DeliveryType,
		PaymentMode:    b.PaymentMode,
		Rate:           b.Rate,
		RateUnit:       b.RateUnit,
		MinimumFreight: b.MinimumFreight,
		FreightAmount:  b.FreightAmount,
		LabourCharge:   b.LabourCharge,
		BillCharge:     b.BillCharge,
		TollCharge:     b.TollCharge,
		OtherCharge:    b.OtherCharge,
		TotalAmount:    b.TotalAmount,
		TransportName:  b.TransportName,
		TransportGST:   b.TransportGST,
		EWayBillNo:     b.EWayBillNo,
		Status:         b.Status,
	}
}

// POST /api/bilties
//
// The server recomputes freight, labour and the total from the submitted rate
// fields: the client's displayed numbers are previews, never the billed truth.
func CreateBiltyHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBiltyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ConsignorID == 0 || body.ConsigneeID == 0 || body.DestinationID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "consignor_id, consignee_id and destination_id are required")
		}
		if body.Weight < 0 || body.PackageCount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "package_count must be positive and weight non-negative")
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
		switch body.DeliveryType {
		case "", models.DeliveryTypeGodown:
			body.DeliveryType = models.DeliveryTypeGodown
		case models.DeliveryTypeDoor:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "delivery_type must be godown or door")
		}
		switch body.PaymentMode {
		case "", models.PaymentModeToPay:
			body.PaymentMode = models.PaymentModeToPay
		case models.PaymentModePaid, models.PaymentModeBilled:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "payment_mode must be paid, to_pay or billed")
		}

		var date time.Time
		if body.Date == nil || *body.Date == "" {
			now := time.Now()
			date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		} else {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			date = d
		}

		var consignor, consignee models.Party
		if err := database.DB.First(&consignor, body.ConsignorID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Consignor not found")
		}
		if err := database.DB.First(&consignee, body.ConsigneeID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Consignee not found")
		}
		var destination models.City
		if err := database.DB.First(&destination, body.DestinationID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Destination city not found")
		}

		// Authoritative recomputation.
		ew := pricing.NormalizeWeight(body.Weight, cfg.MinimumWeightKg)
		fr, err := pricing.CalculateFreight(ew.EffectiveWeight, body.PackageCount, body.Rate, body.RateUnit, body.MinimumFreight)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid rate unit")
		}
		labour, err := pricing.CalculateLabour(body.PackageCount, body.Weight, body.LabourRate, body.LabourUnit)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid labour unit")
		}
		total := pricing.Round2(fr.FreightAmount + labour + body.BillCharge + body.TollCharge + body.OtherCharge)

		b := models.Bilty{
			Date:           date,
			ConsignorID:    body.ConsignorID,
			ConsigneeID:    body.ConsigneeID,
			DestinationID:  body.DestinationID,
			PackageCount:   body.PackageCount,
			Weight:         body.Weight,
			ChargedWeight:  ew.EffectiveWeight,
			Contents:       body.Contents,
			DeliveryType:   body.DeliveryType,
			PaymentMode:    body.PaymentMode,
			Rate:           body.Rate,
			RateUnit:       body.RateUnit,
			MinimumFreight: body.MinimumFreight,
			FreightAmount:  fr.FreightAmount,
			LabourCharge:   labour,
			BillCharge:     pricing.Round2(body.BillCharge),
			TollCharge:     pricing.Round2(body.TollCharge),
			OtherCharge:    pricing.Round2(body.OtherCharge),
			TotalAmount:    total,
			TransportName:  body.TransportName,
			TransportGST:   body.TransportGST,
			EWayBillNo:     body.EWayBillNo,
			Status:         models.BiltyStatusBooked,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			gr, err := nextGRNumber(tx, cfg.GRSeries)
			if err != nil {
				return err
			}
			b.GRNumber = gr

			if err := tx.Create(&b).Error; err != nil {
				return err
			}

			// Billed bilties post a debit on the consignor's account.
			if b.PaymentMode == models.PaymentModeBilled {
				entry := models.LedgerEntry{
					PartyID:     b.ConsignorID,
					BiltyID:     &b.ID,
					Date:        b.Date,
					Type:        models.LedgerDebit,
					Amount:      b.TotalAmount,
					Description: fmt.Sprintf("Bilty %s to %s", b.GRNumber, destination.Name),
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create bilty")
		}

		writeAudit(c, b.ID, models.AuditActionCreate,
			fmt.Sprintf("Bilty %s booked: %s -> %s, %.2f", b.GRNumber, consignor.Name, destination.Name, b.TotalAmount),
			nil, b)

		b.Consignor = consignor
		b.Consignee = consignee
		b.Destination = destination
		return c.Status(fiber.StatusCreated).JSON(toResponse(b))
	}
}

// GET /api/bilties?from=&to=&consignor_id=&destination_id=&status=
func ListBiltiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Bilty{}).
			Preload("Consignor").Preload("Consignee").Preload("Destination")

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid 'from' date")
			}
			dbq = dbq.Where("date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid 'to' date")
			}
			dbq = dbq.Where("date <= ?", to)
		}
		if v := c.QueryInt("consignor_id"); v > 0 {
			dbq = dbq.Where("consignor_id = ?", v)
		}
		if v := c.QueryInt("destination_id"); v > 0 {
			dbq = dbq.Where("destination_id = ?", v)
		}
		if s := c.Query("status"); s != "" {
			dbq = dbq.Where("status = ?", s)
		}

		var bilties []models.Bilty
		if err := dbq.Order("date desc, id desc").Find(&bilties).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list bilties")
		}

		resp := make([]BiltyResponse, 0, len(bilties))
		for _, b := range bilties {
			resp = append(resp, toResponse(b))
		}
		return c.JSON(resp)
	}
}

// GET /api/bilties/:id
func GetBiltyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var b models.Bilty
		err = database.DB.
			Preload("Consignor").Preload("Consignee").Preload("Destination").
			First(&b, id).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bilty not found")
		}
		return c.JSON(toResponse(b))
	}
}

func writeAudit(c *fiber.Ctx, entityID uint, action models.AuditAction, desc string, before, after any) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	var user models.User
	_ = database.DB.First(&user, userID).Error

	if err := audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		UserName:    user.Name,
		EntityType:  "bilty",
		EntityID:    entityID,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	}); err != nil {
		fmt.Printf("audit log failed: %v\n", err)
	}
}
