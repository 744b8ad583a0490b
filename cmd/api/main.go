package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/Mamba1099/milk-farm-sub002/internal/application/analytics"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/auth"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/media"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/production"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/usecase"
	infrapdf "github.com/Mamba1099/milk-farm-sub002/internal/infrastructure/pdf"
	"github.com/Mamba1099/milk-farm-sub002/internal/infrastructure/postgres"
	"github.com/Mamba1099/milk-farm-sub002/internal/infrastructure/storage"
	httpRouter "github.com/Mamba1099/milk-farm-sub002/internal/interfaces/http"
	"github.com/Mamba1099/milk-farm-sub002/pkg/config"
	"github.com/Mamba1099/milk-farm-sub002/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	animalRepo := postgres.NewAnimalRepository(pool)
	productionRepo := postgres.NewProductionRepository(pool)
	summaryRepo := postgres.NewDailySummaryRepository(pool)
	servingRepo := postgres.NewServingRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Imágenes: Supabase Storage si está configurado; si no, memoria (solo desarrollo).
	var imageStorage media.ImageStorage
	if cfg.Storage.Enabled() {
		imageStorage = storage.NewSupabaseStorage(cfg.Storage.SupabaseURL, cfg.Storage.ServiceKey, cfg.Storage.Bucket)
	} else {
		log.Warn().Msg("SUPABASE_URL no configurado: imágenes en memoria")
		imageStorage = storage.NewMemoryStorage("/uploads")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:          cfg.JWT.Secret,
		RefreshSecret:   cfg.JWT.RefreshKey(),
		ExpMinutes:      cfg.JWT.Expiration,
		RefreshExpHours: cfg.JWT.RefreshExpiration,
		Issuer:          cfg.JWT.Issuer,
	})
	ledgerUC := production.NewLedgerUseCase(
		txRunner, productionRepo, summaryRepo,
		infrapdf.NewMarotoLedgerGenerator(cfg.App.Name),
	)

	maxUpload := cfg.Storage.MaxUploadBytes()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		// multipart: margen sobre el tamaño máximo de imagen
		BodyLimit: int(maxUpload) + 1024*1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.ReplaceAll(cfg.HTTP.AllowedOrigins, " ", ""),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	metrics := httpRouter.NewMetrics("milkfarm")
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Milk Farm API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       usecase.NewUserUseCase(userRepo),
		AnimalUC:     usecase.NewAnimalUseCase(animalRepo),
		RecordUC:     production.NewRecordUseCase(txRunner, productionRepo, animalRepo),
		LedgerUC:     ledgerUC,
		ServingUC:    usecase.NewServingUseCase(servingRepo, animalRepo),
		SaleUC:       usecase.NewSaleUseCase(saleRepo),
		UploadUC:     media.NewUploadUseCase(imageStorage, maxUpload),
		DashboardUC:  appanalytics.NewDashboardUseCase(dashboardRepo, animalRepo, summaryRepo),
		JWTSecret:    cfg.JWT.Secret,
		CookieSecure: cfg.HTTP.CookieSecure,
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
