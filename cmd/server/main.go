package main

import (
	"log"
	"strings"

	"bilty-backend/internal/audit"
	"bilty-backend/internal/auth"
	"bilty-backend/internal/bilty"
	"bilty-backend/internal/challan"
	"bilty-backend/internal/config"
	"bilty-backend/internal/dashboard"
	"bilty-backend/internal/database"
	"bilty-backend/internal/finance"
	"bilty-backend/internal/masters"
	"bilty-backend/internal/models"
	"bilty-backend/internal/rates"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin routes: masters, rate contracts, users
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/users", auth.CreateUserHandler())
	adminRoutes.Get("/users", auth.ListUsersHandler())

	adminRoutes.Post("/cities", masters.CreateCityHandler())
	adminRoutes.Put("/cities/:id", masters.UpdateCityHandler())
	adminRoutes.Delete("/cities/:id", masters.DeleteCityHandler())

	adminRoutes.Post("/parties", masters.CreatePartyHandler())
	adminRoutes.Put("/parties/:id", masters.UpdatePartyHandler())
	adminRoutes.Delete("/parties/:id", masters.DeletePartyHandler())

	adminRoutes.Post("/rate-contracts", rates.CreateRateContractHandler())
	adminRoutes.Put("/rate-contracts/:id", rates.UpdateRateContractHandler())
	adminRoutes.Delete("/rate-contracts/:id", rates.DeactivateRateContractHandler())

	// Masters are readable by every logged-in user, the booking form needs them
	protected.Get("/cities", masters.ListCitiesHandler())
	protected.Get("/parties", masters.ListPartiesHandler())
	protected.Get("/parties/:id", masters.GetPartyHandler())
	protected.Get("/rate-contracts", rates.ListRateContractsHandler())

	// Bilty booking
	protected.Post("/bilties/quote", bilty.QuoteHandler(cfg))
	protected.Post("/bilties", bilty.CreateBiltyHandler(cfg))
	protected.Get("/bilties", bilty.ListBiltiesHandler())
	protected.Get("/bilties/:id", bilty.GetBiltyHandler())

	// Challan dispatch
	protected.Post("/challans", challan.CreateChallanHandler())
	protected.Get("/challans", challan.ListChallansHandler())
	protected.Get("/challans/:id", challan.GetChallanHandler())
	protected.Post("/challans/:id/close", challan.CloseChallanHandler())

	// Party ledger
	protected.Post("/ledger-entries", finance.CreateLedgerEntryHandler())
	protected.Get("/ledger-entries", finance.ListLedgerEntriesHandler())
	protected.Get("/ledger/summary/monthly", finance.MonthlyLedgerSummaryHandler())

	// Dashboard
	protected.Get("/dashboard/booking-chart", dashboard.BookingChartHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
