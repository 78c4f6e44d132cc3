package masters

import (
	"fmt"
	"strings"

	"bilty-backend/internal/audit"
	"bilty-backend/internal/auth"
	"bilty-backend/internal/database"
	"bilty-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CityRequest struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	State string `json:"state"`
}

// POST /api/cities
func CreateCityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CityRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		var count int64
		database.DB.Model(&models.City{}).Where("LOWER(name) = LOWER(?)", body.Name).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "City already exists")
		}

		city := models.City{
			Name:  body.Name,
			Code:  strings.ToUpper(strings.TrimSpace(body.Code)),
			State: strings.TrimSpace(body.State),
		}
		if err := database.DB.Create(&city).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create city")
		}

		writeAudit(c, "city", city.ID, models.AuditActionCreate,
			fmt.Sprintf("City created: %s", city.Name), nil, city)
		return c.Status(fiber.StatusCreated).JSON(city)
	}
}

// GET /api/cities?q=
func ListCitiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.City{})
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			like := "%" + q + "%"
			dbq = dbq.Where("name ILIKE ? OR code ILIKE ?", like, like)
		}
		var cities []models.City
		if err := dbq.Order("name asc").Find(&cities).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list cities")
		}
		return c.JSON(cities)
	}
}

// PUT /api/cities/:id
func UpdateCityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid city id")
		}

		var city models.City
		if err := database.DB.First(&city, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "City not found")
		}
		before := city

		var body CityRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		var count int64
		database.DB.Model(&models.City{}).
			Where("LOWER(name) = LOWER(?) AND id <> ?", body.Name, city.ID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Another city already has this name")
		}

		city.Name = body.Name
		city.Code = strings.ToUpper(strings.TrimSpace(body.Code))
		city.State = strings.TrimSpace(body.State)
		if err := database.DB.Save(&city).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update city")
		}

		writeAudit(c, "city", city.ID, models.AuditActionUpdate,
			fmt.Sprintf("City %d updated", city.ID), before, city)
		return c.JSON(city)
	}
}

// DELETE /api/cities/:id, refused while bilties or rate contracts refer to it.
func DeleteCityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid city id")
		}

		var city models.City
		if err := database.DB.First(&city, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "City not found")
		}

		var inUse int64
		database.DB.Model(&models.Bilty{}).Where("destination_id = ?", city.ID).Count(&inUse)
		if inUse > 0 {
			return fiber.NewError(fiber.StatusConflict, "City is used by existing bilties")
		}
		database.DB.Model(&models.RateContract{}).Where("destination_id = ?", city.ID).Count(&inUse)
		if inUse > 0 {
			return fiber.NewError(fiber.StatusConflict, "City is used by existing rate contracts")
		}

		if err := database.DB.Delete(&city).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete city")
		}

		writeAudit(c, "city", city.ID, models.AuditActionDelete,
			fmt.Sprintf("City deleted: %s", city.Name), city, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func writeAudit(c *fiber.Ctx, entityType string, entityID uint, action models.AuditAction, desc string, before, after any) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	var user models.User
	_ = database.DB.First(&user, userID).Error

	if err := audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		UserName:    user.Name,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	}); err != nil {
		fmt.Printf("audit log failed: %v\n", err)
	}
}
