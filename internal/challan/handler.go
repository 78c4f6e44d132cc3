package challan

import (
	"fmt"
	"time"

	"bilty-backend/internal/audit"
	"bilty-backend/internal/auth"
	"bilty-backend/internal/database"
	"bilty-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateChallanRequest struct {
	Date        *string `json:"date"`
	VehicleNo   string  `json:"vehicle_no"`
	DriverName  string  `json:"driver_name"`
	DriverPhone string  `json:"driver_phone"`
	ToCityID    uint    `json:"to_city_id"`
	Freight     float64 `json:"freight"`
	Advance     float64 `json:"advance"`
	Note        string  `json:"note"`
	BiltyIDs    []uint  `json:"bilty_ids"`
}

type ChallanItemResponse struct {
	BiltyID     uint    `json:"bilty_id"`
	GRNumber    string  `json:"gr_number"`
	Consignor   string  `json:"consignor"`
	Consignee   string  `json:"consignee"`
	Packages    float64 `json:"packages"`
	Weight      float64 `json:"weight"`
	TotalAmount float64 `json:"total_amount"`
}

type ChallanResponse struct {
	ID          uint                  `json:"id"`
	ChallanNo   string                `json:"challan_no"`
	Date        string                `json:"date"`
	VehicleNo   string                `json:"vehicle_no"`
	DriverName  string                `json:"driver_name"`
	DriverPhone string                `json:"driver_phone"`
	ToCityID    uint                  `json:"to_city_id"`
	ToCity      string                `json:"to_city"`
	Freight     float64               `json:"freight"`
	Advance     float64               `json:"advance"`
	Note        string                `json:"note"`
	Status      models.ChallanStatus  `json:"status"`
	Items       []ChallanItemResponse `json:"items,omitempty"`
}

func toResponse(ch models.Challan, withItems bool) ChallanResponse {
	resp := ChallanResponse{
		ID:          ch.ID,
		ChallanNo:   ch.ChallanNo,
		Date:        ch.Date.Format("2006-01-02"),
		VehicleNo:   ch.VehicleNo,
		DriverName:  ch.DriverName,
		DriverPhone: ch.DriverPhone,
		ToCityID:    ch.ToCityID,
		ToCity:      ch.ToCity.Name,
		Freight:     ch.Freight,
		Advance:     ch.Advance,
		Note:        ch.Note,
		Status:      ch.Status,
	}
	if withItems {
		resp.Items = make([]ChallanItemResponse, 0, len(ch.Items))
		for _, it := range ch.Items {
			resp.Items = append(resp.Items, ChallanItemResponse{
				BiltyID:     it.BiltyID,
				GRNumber:    it.Bilty.GRNumber,
				Consignor:   it.Bilty.Consignor.Name,
				Consignee:   it.Bilty.Consignee.Name,
				Packages:    it.Bilty.PackageCount,
				Weight:      it.Bilty.Weight,
				TotalAmount: it.Bilty.TotalAmount,
			})
		}
	}
	return resp
}

// POST /api/challans
//
// Groups booked bilties onto one vehicle trip and marks them dispatched,
// atomically: a bilty on a challan can never stay "booked".
func CreateChallanHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateChallanRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.VehicleNo == "" {
			return fiber.NewError(fiber.StatusBadRequest, "vehicle_no is required")
		}
		if body.ToCityID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "to_city_id is required")
		}
		if len(body.BiltyIDs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "at least one bilty is required")
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

		var toCity models.City
		if err := database.DB.First(&toCity, body.ToCityID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "City not found")
		}

		var bilties []models.Bilty
		if err := database.DB.Where("id IN ?", body.BiltyIDs).Find(&bilties).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load bilties")
		}
		if len(bilties) != len(body.BiltyIDs) {
			return fiber.NewError(fiber.StatusBadRequest, "One or more bilties do not exist")
		}
		for _, b := range bilties {
			if b.Status != models.BiltyStatusBooked {
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("Bilty %s is %s, only booked bilties can be dispatched", b.GRNumber, b.Status))
			}
		}

		ch := models.Challan{
			Date:        date,
			VehicleNo:   body.VehicleNo,
			DriverName:  body.DriverName,
			DriverPhone: body.DriverPhone,
			ToCityID:    body.ToCityID,
			Freight:     body.Freight,
			Advance:     body.Advance,
			Note:        body.Note,
			Status:      models.ChallanStatusDispatched,
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			no, err := nextChallanNo(tx)
			if err != nil {
				return err
			}
			ch.ChallanNo = no

			if err := tx.Create(&ch).Error; err != nil {
				return err
			}

			for _, id := range body.BiltyIDs {
				if err := tx.Create(&models.ChallanItem{ChallanID: ch.ID, BiltyID: id}).Error; err != nil {
					return err
				}
			}

			return tx.Model(&models.Bilty{}).
				Where("id IN ?", body.BiltyIDs).
				Update("status", models.BiltyStatusDispatched).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create challan")
		}

		writeAudit(c, ch.ID, models.AuditActionCreate,
			fmt.Sprintf("Challan %s dispatched to %s with %d bilties", ch.ChallanNo, toCity.Name, len(body.BiltyIDs)),
			nil, ch)

		ch.ToCity = toCity
		return c.Status(fiber.StatusCreated).JSON(toResponse(ch, false))
	}
}

// GET /api/challans?from=&to=&status=
func ListChallansHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Challan{}).Preload("ToCity")

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
		if s := c.Query("status"); s != "" {
			dbq = dbq.Where("status = ?", s)
		}

		var challans []models.Challan
		if err := dbq.Order("date desc, id desc").Find(&challans).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list challans")
		}

		resp := make([]ChallanResponse, 0, len(challans))
		for _, ch := range challans {
			resp = append(resp, toResponse(ch, false))
		}
		return c.JSON(resp)
	}
}

// GET /api/challans/:id
func GetChallanHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var ch models.Challan
		err = database.DB.
			Preload("ToCity").
			Preload("Items").
			Preload("Items.Bilty").
			Preload("Items.Bilty.Consignor").
			Preload("Items.Bilty.Consignee").
			First(&ch, id).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Challan not found")
		}
		return c.JSON(toResponse(ch, true))
	}
}

// POST /api/challans/:id/close marks the trip arrived and bilties delivered.
func CloseChallanHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var ch models.Challan
		if err := database.DB.Preload("Items").First(&ch, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Challan not found")
		}
		if ch.Status == models.ChallanStatusClosed {
			return fiber.NewError(fiber.StatusConflict, "Challan is already closed")
		}

		biltyIDs := make([]uint, 0, len(ch.Items))
		for _, it := range ch.Items {
			biltyIDs = append(biltyIDs, it.BiltyID)
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&ch).Update("status", models.ChallanStatusClosed).Error; err != nil {
				return err
			}
			if len(biltyIDs) == 0 {
				return nil
			}
			return tx.Model(&models.Bilty{}).
				Where("id IN ?", biltyIDs).
				Update("status", models.BiltyStatusDelivered).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not close challan")
		}

		writeAudit(c, ch.ID, models.AuditActionUpdate,
			fmt.Sprintf("Challan %s closed, %d bilties delivered", ch.ChallanNo, len(biltyIDs)),
			nil, nil)

		return c.JSON(fiber.Map{"id": ch.ID, "status": models.ChallanStatusClosed})
	}
}

func writeAudit(c *fiber.Ctx, entityID uint, action models.AuditAction, desc string, before, after any) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	var user models.User
	_ = database.DB.First(&user, userID).Error

	if err := audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		UserName:    user.Name,
		EntityType:  "challan",
		EntityID:    entityID,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	}); err != nil {
		fmt.Printf("audit log failed: %v\n", err)
	}
}
