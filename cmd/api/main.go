package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/RomeshCG/Zentra/internal/config"
	"github.com/RomeshCG/Zentra/internal/database"
	"github.com/RomeshCG/Zentra/internal/middleware"
	"github.com/RomeshCG/Zentra/internal/modules/auth"
	"github.com/RomeshCG/Zentra/internal/modules/customers"
	"github.com/RomeshCG/Zentra/internal/modules/plans"
	"github.com/RomeshCG/Zentra/internal/modules/prices"
	"github.com/RomeshCG/Zentra/internal/modules/reports"
	"github.com/RomeshCG/Zentra/internal/modules/subscriptions"
	jwtsvc "github.com/RomeshCG/Zentra/internal/pkg/jwt"
	"github.com/RomeshCG/Zentra/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	managerRepo := repository.NewPlanManagerRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	plansService := plans.NewService(managerRepo, customerRepo)
	plansHandler := plans.NewHandler(plansService)

	customersService := customers.NewService(customerRepo, managerRepo, ledgerRepo, priceRepo, time.Now)
	customersHandler := customers.NewHandler(customersService)

	subscriptionsService := subscriptions.NewService(subscriptionRepo, paymentRepo, customerRepo, time.Now)
	subscriptionsHandler := subscriptions.NewHandler(subscriptionsService)

	pricesService := prices.NewService(priceRepo, time.Now)
	pricesHandler := prices.NewHandler(pricesService)

	reportsService := reports.NewService(ledgerRepo, managerRepo, customerRepo, time.Now)
	reportsHandler := reports.NewHandler(reportsService)

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			plansHandler.RegisterRoutes(protected)
			customersHandler.RegisterRoutes(protected)
			subscriptionsHandler.RegisterRoutes(protected)
			pricesHandler.RegisterRoutes(protected)
			reportsHandler.RegisterRoutes(protected)

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				authHandler.RegisterAdminRoutes(admin)
				plansHandler.RegisterAdminRoutes(admin)
				customersHandler.RegisterAdminRoutes(admin)
				subscriptionsHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
