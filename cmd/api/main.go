package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/tu-usuario/planta-pos/docs"
	"github.com/tu-usuario/planta-pos/internal/application/auth"
	"github.com/tu-usuario/planta-pos/internal/application/inventory"
	"github.com/tu-usuario/planta-pos/internal/application/pricing"
	"github.com/tu-usuario/planta-pos/internal/application/production"
	"github.com/tu-usuario/planta-pos/internal/application/sales"
	"github.com/tu-usuario/planta-pos/internal/application/supply"
	"github.com/tu-usuario/planta-pos/internal/application/sync"
	"github.com/tu-usuario/planta-pos/internal/infrastructure/cache"
	infrapdf "github.com/tu-usuario/planta-pos/internal/infrastructure/pdf"
	"github.com/tu-usuario/planta-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/planta-pos/internal/interfaces/http"
	"github.com/tu-usuario/planta-pos/pkg/config"
	"github.com/tu-usuario/planta-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	supplyRepo := postgres.NewSupplyRepository(pool)
	movRepo := postgres.NewInventoryMovementRepository(pool)
	supplyMovRepo := postgres.NewSupplyMovementRepository(pool)
	priceRepo := postgres.NewPriceRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	queueRepo := postgres.NewSyncQueueRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	prodRepo := postgres.NewProductionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de precios: Redis si está configurado, Noop si no.
	var priceCache pricing.Cache = cache.NewNoopPriceCache()
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		priceCache = cache.NewRedisPriceCache(redisClient)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de precios sobre Redis")
	}

	stockEngine := inventory.NewStockEngine(txRunner, productRepo, movRepo, log)
	supplyEngine := supply.NewDeductionEngine(txRunner.Supplies(), supplyRepo, supplyMovRepo, log)
	priceResolver := pricing.NewResolver(priceRepo, priceCache,
		time.Duration(cfg.Redis.PriceTTLSeconds)*time.Second, log)
	receiptGen := infrapdf.NewReceiptGenerator(cfg.App.Name)
	salesUC := sales.NewOrchestrator(txRunner, stockEngine, supplyEngine, priceResolver,
		saleRepo, productRepo, customerRepo, receiptGen, log)
	syncUC := sync.NewProcessor(salesUC, stockEngine, queueRepo, userRepo, log)
	productionUC := production.NewRecorder(txRunner, stockEngine, supplyEngine, productRepo, prodRepo, log)
	authUC := auth.NewUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Planta POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		SalesUC:      salesUC,
		SyncUC:       syncUC,
		StockEngine:  stockEngine,
		SupplyEngine: supplyEngine,
		Pricing:      priceResolver,
		ProductionUC: productionUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
