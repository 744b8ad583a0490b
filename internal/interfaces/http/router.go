package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/Mamba1099/milk-farm-sub002/internal/application/analytics"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/auth"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/media"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/production"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/usecase"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	AnimalUC     *usecase.AnimalUseCase
	RecordUC     *production.RecordUseCase
	LedgerUC     *production.LedgerUseCase
	ServingUC    *usecase.ServingUseCase
	SaleUC       *usecase.SaleUseCase
	UploadUC     *media.UploadUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	JWTSecret    string
	CookieSecure bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	managerOnly := RequireRole(entity.RoleFarmManager)
	anyRole := RequireRole(entity.RoleFarmManager, entity.RoleEmployee)

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieSecure)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Get("/farm-manager/exists", authHandler.FarmManagerExists)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	productionHandler := NewProductionHandler(deps.RecordUC, deps.LedgerUC)

	// Cálculo del libro sin estado (público)
	api.Post("/ledger/preview", productionHandler.Preview)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), anyRole)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", managerOnly, userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", managerOnly, userHandler.Delete)

	animals := protected.Group("/animals")
	animalHandler := NewAnimalHandler(deps.AnimalUC)
	animals.Post("/", animalHandler.Create)
	animals.Get("/", animalHandler.List)
	animals.Get("/:id", animalHandler.GetByID)
	animals.Put("/:id", animalHandler.Update)
	animals.Delete("/:id", managerOnly, animalHandler.Delete)

	// Production: las rutas del libro van antes de /:id
	prod := protected.Group("/production")
	prod.Get("/ledger", productionHandler.Range)
	prod.Get("/ledger/pdf", productionHandler.StatementPDF)
	prod.Post("/ledger/:date/close", productionHandler.CloseDay)
	prod.Post("/", productionHandler.Create)
	prod.Get("/", productionHandler.ListByDate)
	prod.Get("/:id", productionHandler.GetByID)
	prod.Put("/:id", productionHandler.Update)
	prod.Delete("/:id", productionHandler.Delete)

	servings := protected.Group("/servings")
	servingHandler := NewServingHandler(deps.ServingUC)
	servings.Post("/", servingHandler.Create)
	servings.Get("/", servingHandler.List)
	servings.Get("/:id", servingHandler.GetByID)
	servings.Put("/:id", servingHandler.Update)
	servings.Delete("/:id", servingHandler.Delete)

	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", saleHandler.Update)
	sales.Delete("/:id", managerOnly, saleHandler.Delete)

	uploads := protected.Group("/uploads")
	uploadHandler := NewUploadHandler(deps.UploadUC)
	uploads.Post("/", uploadHandler.Upload)
	uploads.Delete("/*", managerOnly, uploadHandler.Delete)

	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
