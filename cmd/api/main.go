package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/hegaajarad/cashbox/internal/adapter/handler"
	"github.com/hegaajarad/cashbox/internal/adapter/middleware"
	"github.com/hegaajarad/cashbox/internal/adapter/storage"
	"github.com/hegaajarad/cashbox/internal/core/config"
	"github.com/hegaajarad/cashbox/internal/core/ledger"
	"github.com/hegaajarad/cashbox/internal/core/worker"
)

func main() {
	// 1. Load Config
	cfg := config.LoadConfig()

	// 2. Setup Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 3. Connect to Database
	dbPool, err := storage.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("❌ Database connection failed", "error", err)
		os.Exit(1)
	}
	if err := storage.EnsureSchema(context.Background(), dbPool); err != nil {
		slog.Error("❌ Schema bootstrap failed", "error", err)
		os.Exit(1)
	}

	// 4. Setup Repos, Services & Handlers
	customerRepo := storage.NewCustomerRepository(dbPool)
	cashBoxRepo := storage.NewCashBoxRepository(dbPool)
	txnRepo := storage.NewTransactionRepository(dbPool)
	currencyRepo := storage.NewCurrencyRepository(dbPool)
	accountTypeRepo := storage.NewAccountTypeRepository(dbPool)

	ledgerSvc := ledger.NewService(cashBoxRepo, txnRepo, currencyRepo)

	customerHandler := &handler.CustomerHandler{Store: customerRepo}
	cashBoxHandler := &handler.CashBoxHandler{Store: cashBoxRepo, Currencies: currencyRepo, Ledger: ledgerSvc}
	txnHandler := &handler.TransactionHandler{Store: txnRepo, WebhookURL: cfg.WebhookURL}
	reportHandler := &handler.ReportHandler{Customers: customerRepo, Ledger: ledgerSvc}
	referenceHandler := &handler.ReferenceHandler{Currencies: currencyRepo, AccountTypes: accountTypeRepo}
	statementHandler := &handler.StatementHandler{
		Boxes: cashBoxRepo, Customers: customerRepo, Currencies: currencyRepo,
		Txns: txnRepo, Ledger: ledgerSvc,
	}
	dashboardHandler := &handler.DashboardHandler{Db: dbPool}
	keyHandler := &handler.KeyHandler{Db: dbPool}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New())

	// 6. Routes
	api := app.Group("/v1")

	// Public: operator key bootstrap
	api.Post("/operators/keys", keyHandler.GenerateKey)

	// Protected
	private := api.Use(middleware.Protected(dbPool))

	private.Get("/dashboard", dashboardHandler.GetDashboard)

	private.Post("/customers", customerHandler.CreateCustomer)
	private.Get("/customers", customerHandler.ListCustomers)
	private.Get("/customers/:id", customerHandler.GetCustomer)
	private.Delete("/customers/:id", customerHandler.DeleteCustomer)
	private.Get("/customers/:id/report", reportHandler.GetCustomerReport)
	private.Get("/customers/:id/transactions", txnHandler.ListForCustomer)

	private.Post("/cashboxes", cashBoxHandler.CreateCashBox)
	private.Get("/cashboxes/:id", cashBoxHandler.GetCashBox)
	private.Get("/cashboxes/:id/balance", cashBoxHandler.GetBalance)
	private.Get("/cashboxes/:id/transactions", txnHandler.ListForCashBox)
	private.Get("/cashboxes/:id/statement", statementHandler.GetStatement)

	private.Post("/transactions", middleware.Idempotency(dbPool), txnHandler.CreateTransaction)
	private.Get("/transactions/:id", txnHandler.GetTransaction)

	private.Post("/currencies", referenceHandler.CreateCurrency)
	private.Get("/currencies", referenceHandler.ListCurrencies)
	private.Post("/account-types", referenceHandler.CreateAccountType)
	private.Get("/account-types", referenceHandler.ListAccountTypes)

	// 7. Start Worker
	worker.StartWebhookWorker(dbPool, cfg.WebhookSecret)

	// Graceful shutdown: finish active requests, then close the pool.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("🚀 Server starting", "env", cfg.Env, "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("Server forced to shutdown", "error", err)
		}
	}()

	<-stop
	slog.Info("🛑 Shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	dbPool.Close()
	slog.Info("✅ Database connection closed")

	slog.Info("👋 Server exited successfully")
}
