package masters

import (
	"fmt"
	"strings"

	"bilty-backend/internal/database"
	"bilty-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PartyRequest struct {
	Name     string `json:"name"`
	GSTIN    string `json:"gstin"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	CityName string `json:"city_name"`
}

// POST /api/parties
func CreatePartyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PartyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		party := models.Party{
			Name:     body.Name,
			GSTIN:    strings.ToUpper(strings.TrimSpace(body.GSTIN)),
			Address:  strings.TrimSpace(body.Address),
			Phone:    strings.TrimSpace(body.Phone),
			CityName: strings.TrimSpace(body.CityName),
		}
		if err := database.DB.Create(&party).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create party")
		}

		writeAudit(c, "party", party.ID, models.AuditActionCreate,
			fmt.Sprintf("Party created: %s", party.Name), nil, party)
		return c.Status(fiber.StatusCreated).JSON(party)
	}
}

// GET /api/parties?q=
// Name search backs the consignor/consignee picker on the booking form.
func ListPartiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Party{})
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			like := "%" + q + "%"
			dbq = dbq.Where("name ILIKE ? OR gstin ILIKE ? OR phone ILIKE ?", like, like, like)
		}
		var parties []models.Party
		if err := dbq.Order("name asc").Find(&parties).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list parties")
		}
		return c.JSON(parties)
	}
}

// GET /api/parties/:id
func GetPartyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid party id")
		}
		var party models.Party
		if err := database.DB.First(&party, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Party not found")
		}
		return c.JSON(party)
	}
}

// PUT /api/parties/:id
func UpdatePartyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid party id")
		}

		var party models.Party
		if err := database.DB.First(&party, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Party not found")
		}
		before := party

		var body PartyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		party.Name = body.Name
		party.GSTIN = strings.ToUpper(strings.TrimSpace(body.GSTIN))
		party.Address = strings.TrimSpace(body.Address)
		party.Phone = strings.TrimSpace(body.Phone)
		party.CityName = strings.TrimSpace(body.CityName)
		if err := database.DB.Save(&party).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update party")
		}

		writeAudit(c, "party", party.ID, models.AuditActionUpdate,
			fmt.Sprintf("Party %d updated", party.ID), before, party)
		return c.JSON(party)
	}
}

// DELETE /api/parties/:id
// Refused while bilties, contracts or ledger entries refer to the party.
func DeletePartyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid party id")
		}

		var party models.Party
		if err := database.DB.First(&party, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Party not found")
		}

		var inUse int64
		database.DB.Model(&models.Bilty{}).
			Where("consignor_id = ? OR consignee_id = ?", party.ID, party.ID).Count(&inUse)
		if inUse > 0 {
			return fiber.NewError(fiber.StatusConflict, "Party is used by existing bilties")
		}
		database.DB.Model(&models.RateContract{}).Where("consignor_id = ?", party.ID).Count(&inUse)
		if inUse > 0 {
			return fiber.NewError(fiber.StatusConflict, "Party is used by existing rate contracts")
		}
		database.DB.Model(&models.LedgerEntry{}).Where("party_id = ?", party.ID).Count(&inUse)
		if inUse > 0 {
			return fiber.NewError(fiber.StatusConflict, "Party has ledger entries")
		}

		if err := database.DB.Delete(&party).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete party")
		}

		writeAudit(c, "party", party.ID, models.AuditActionDelete,
			fmt.Sprintf("Party deleted: %s", party.Name), party, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
