package finance

import (
	"time"

	"bilty-backend/internal/database"
	"bilty-backend/internal/models"
	"bilty-backend/internal/pricing"

	"github.com/gofiber/fiber/v2"
)

type CreateLedgerEntryRequest struct {
	PartyID     uint                   `json:"party_id"`
	Date        *string                `json:"date"`
	Type        models.LedgerEntryType `json:"type"`
	Amount      float64                `json:"amount"`
	Description string                 `json:"description"`
}

type LedgerEntryResponse struct {
	ID          uint                   `json:"id"`
	PartyID     uint                   `json:"party_id"`
	Party       string                 `json:"party"`
	BiltyID     *uint                  `json:"bilty_id"`
	Date        string                 `json:"date"`
	Type        models.LedgerEntryType `json:"type"`
	Amount      float64                `json:"amount"`
	Description string                 `json:"description"`
}

// POST /api/ledger-entries: manual payment/receipt against a party. Billed
// bilty debits are posted automatically at booking and are not entered here.
func CreateLedgerEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateLedgerEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.PartyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "party_id is required")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than 0")
		}
		switch body.Type {
		case models.LedgerDebit, models.LedgerCredit:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "type must be debit or credit")
		}

		var party models.Party
		if err := database.DB.First(&party, body.PartyID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Party not found")
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

		entry := models.LedgerEntry{
			PartyID:     body.PartyID,
			Date:        date,
			Type:        body.Type,
			Amount:      pricing.Round2(body.Amount),
			Description: body.Description,
		}
		if err := database.DB.Create(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create ledger entry")
		}

		return c.Status(fiber.StatusCreated).JSON(LedgerEntryResponse{
			ID:          entry.ID,
			PartyID:     entry.PartyID,
			Party:       party.Name,
			Date:        entry.Date.Format("2006-01-02"),
			Type:        entry.Type,
			Amount:      entry.Amount,
			Description: entry.Description,
		})
	}
}

// GET /api/ledger-entries?party_id=&from=&to=
func ListLedgerEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.LedgerEntry{}).Preload("Party")

		if v := c.QueryInt("party_id"); v > 0 {
			dbq = dbq.Where("party_id = ?", v)
		}
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

		var entries []models.LedgerEntry
		if err := dbq.Order("date asc, id asc").Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list ledger entries")
		}

		resp := make([]LedgerEntryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, LedgerEntryResponse{
				ID:          e.ID,
				PartyID:     e.PartyID,
				Party:       e.Party.Name,
				BiltyID:     e.BiltyID,
				Date:        e.Date.Format("2006-01-02"),
				Type:        e.Type,
				Amount:      e.Amount,
				Description: e.Description,
			})
		}
		return c.JSON(resp)
	}
}

type MonthlyLedgerSummaryItem struct {
	PartyID     uint    `json:"party_id"`
	PartyName   string  `json:"party_name"`
	DebitTotal  float64 `json:"debit_total"`
	CreditTotal float64 `json:"credit_total"`
	Balance     float64 `json:"balance"` // positive = party owes us
}

type MonthlyLedgerSummaryResponse struct {
	Year  int                        `json:"year"`
	Month int                        `json:"month"`
	Items []MonthlyLedgerSummaryItem `json:"items"`
}

// GET /api/ledger/summary/monthly?year=2025&month=12
func MonthlyLedgerSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year := c.QueryInt("year")
		month := c.QueryInt("month")
		if year < 2000 || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "year and month are required")
		}

		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		type row struct {
			PartyID     uint
			PartyName   string
			DebitTotal  float64
			CreditTotal float64
		}
		var rows []row
		err := database.DB.Model(&models.LedgerEntry{}).
			Select(`ledger_entries.party_id,
				parties.name as party_name,
				COALESCE(SUM(CASE WHEN ledger_entries.type = 'debit' THEN ledger_entries.amount ELSE 0 END), 0) as debit_total,
				COALESCE(SUM(CASE WHEN ledger_entries.type = 'credit' THEN ledger_entries.amount ELSE 0 END), 0) as credit_total`).
			Joins("JOIN parties ON parties.id = ledger_entries.party_id").
			Where("ledger_entries.date >= ? AND ledger_entries.date < ?", start, end).
			Group("ledger_entries.party_id, parties.name").
			Order("parties.name asc").
			Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build summary")
		}

		resp := MonthlyLedgerSummaryResponse{Year: year, Month: month}
		resp.Items = make([]MonthlyLedgerSummaryItem, 0, len(rows))
		for _, r := range rows {
			resp.Items = append(resp.Items, MonthlyLedgerSummaryItem{
				PartyID:     r.PartyID,
				PartyName:   r.PartyName,
				DebitTotal:  r.DebitTotal,
				CreditTotal: r.CreditTotal,
				Balance:     pricing.Round2(r.DebitTotal - r.CreditTotal),
			})
		}
		return c.JSON(resp)
	}
}
