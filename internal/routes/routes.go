package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/patron-pay/patron_pay/internal/account"
	"github.com/patron-pay/patron_pay/internal/action"
	"github.com/patron-pay/patron_pay/internal/charge"
	"github.com/patron-pay/patron_pay/internal/config"
	"github.com/patron-pay/patron_pay/internal/ledger"
	"github.com/patron-pay/patron_pay/internal/middleware"
	"github.com/patron-pay/patron_pay/internal/notification"
	"github.com/patron-pay/patron_pay/internal/patron"
	"github.com/patron-pay/patron_pay/internal/tenant"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(tenant.Middleware(d.Cfg.DefaultTenant))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Stores
	var accountRepo account.Repository
	var entryStore ledger.Store
	var patronRepo patron.Repository
	if d.DB != nil {
		accountRepo = account.NewPostgresRepository(d.DB)
		entryStore = ledger.NewPostgresStore(d.DB)
		patronRepo = patron.NewPostgresRepository(d.DB)
	} else {
		accountRepo = account.NewMemoryRepository()
		entryStore = ledger.NewInMemory()
		patronRepo = patron.NewMemoryRepository()
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	patronSvc := patron.NewService(patronRepo)
	chargeHandler := charge.NewHandler(charge.NewService(accountRepo, entryStore, patronRepo, notifier))

	handlers := map[action.Action]*action.Handler{}
	for _, act := range []action.Action{action.Pay, action.Waive, action.Transfer, action.Refund} {
		var svc *action.BulkService
		switch act {
		case action.Pay:
			svc = action.NewBulkPayService(accountRepo, entryStore, notifier, d.Logger)
		case action.Waive:
			svc = action.NewBulkWaiveService(accountRepo, entryStore, notifier, d.Logger)
		case action.Transfer:
			svc = action.NewBulkTransferService(accountRepo, entryStore, notifier, d.Logger)
		case action.Refund:
			svc = action.NewBulkRefundService(accountRepo, entryStore, notifier, d.Logger)
		}
		handlers[act] = action.NewHandler(svc, action.NewCheckService(act, accountRepo, entryStore))
	}
	cancelHandler := action.NewCancelHandler(action.NewCancelService(accountRepo, entryStore, notifier, d.Logger))

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": middleware.RequestIDFrom(c),
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	rateLimiter := middleware.ActionRateLimit(d.Cache, 60)

	RegisterPatronRoutes(api, patronSvc)
	RegisterAccountRoutes(api, accountRepo, entryStore, chargeHandler, rateLimiter)
	RegisterActionRoutes(api, handlers, cancelHandler, rateLimiter)

	return nil
}
