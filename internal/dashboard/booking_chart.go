package dashboard

import (
	"time"

	"bilty-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

type BookingChartPoint struct {
	Date         string  `json:"date"`
	BiltyCount   int64   `json:"bilty_count"`
	FreightTotal float64 `json:"freight_total"`
	GrandTotal   float64 `json:"grand_total"`
}

// GET /api/dashboard/booking-chart?from=&to=
// One point per day in the range, zero-filled for days with no bookings.
func BookingChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fromStr := c.Query("from")
		toStr := c.Query("to")
		if fromStr == "" || toStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "'from' and 'to' are required")
		}
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid 'from' date")
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid 'to' date")
		}
		if to.Before(from) {
			return fiber.NewError(fiber.StatusBadRequest, "'to' must not be before 'from'")
		}
		if to.Sub(from) > 366*24*time.Hour {
			return fiber.NewError(fiber.StatusBadRequest, "Range too large, maximum one year")
		}

		type row struct {
			Day          time.Time
			BiltyCount   int64
			FreightTotal float64
			GrandTotal   float64
		}
		var rows []row
		err = database.DB.Raw(`
			SELECT date_trunc('day', date) AS day,
			       COUNT(*) AS bilty_count,
			       COALESCE(SUM(freight_amount), 0) AS freight_total,
			       COALESCE(SUM(total_amount), 0) AS grand_total
			FROM bilties
			WHERE date >= ? AND date < ? AND status <> 'cancelled'
			GROUP BY day
			ORDER BY day`, from, to.AddDate(0, 0, 1)).Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build chart")
		}

		byDay := make(map[string]row, len(rows))
		for _, r := range rows {
			byDay[r.Day.Format("2006-01-02")] = r
		}

		var points []BookingChartPoint
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			key := d.Format("2006-01-02")
			p := BookingChartPoint{Date: key}
			if r, ok := byDay[key]; ok {
				p.BiltyCount = r.BiltyCount
				p.FreightTotal = r.FreightTotal
				p.GrandTotal = r.GrandTotal
			}
			points = append(points, p)
		}
		return c.JSON(points)
	}
}
