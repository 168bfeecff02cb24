// Seed loads a development database with an admin user, two plan managers,
// the platform price list and a handful of customers with ledgers.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/RomeshCG/Zentra/internal/accrual"
	"github.com/RomeshCG/Zentra/internal/config"
	"github.com/RomeshCG/Zentra/internal/database"
	"github.com/RomeshCG/Zentra/internal/domain"
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

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	managers := repository.NewPlanManagerRepository(db)
	customers := repository.NewCustomerRepository(db)
	prices := repository.NewPriceRepository(db)
	subscriptions := repository.NewSubscriptionRepository(db)

	seedAdmin(ctx, users)
	priceHistory := seedPrices(ctx, prices)
	yt, sp := seedManagers(ctx, managers)
	seedCustomers(ctx, customers, subscriptions, yt, sp, priceHistory)

	log.Println("seed complete")
}

func seedAdmin(ctx context.Context, users *repository.UserRepository) {
	exists, err := users.ExistsByEmail(ctx, "admin@zentra.app")
	if err != nil {
		log.Fatal(err)
	}
	if exists {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-dev-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	admin := &domain.User{
		Email:        "admin@zentra.app",
		PasswordHash: string(hash),
		Name:         "Admin",
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal(err)
	}
	log.Println("created admin@zentra.app")
}

func seedPrices(ctx context.Context, prices *repository.PriceRepository) []domain.PlatformPrice {
	existing, err := prices.ListAll(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if len(existing) > 0 {
		return existing
	}

	effectiveFrom := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.PlatformPrice{
		{Platform: domain.PlatformYouTube, EffectiveFrom: effectiveFrom, Price: decimal.NewFromInt(500)},
		{Platform: domain.PlatformSpotify, EffectiveFrom: effectiveFrom, Price: decimal.NewFromInt(400)},
	}
	for i := range rows {
		if err := prices.Create(ctx, &rows[i]); err != nil {
			log.Fatal(err)
		}
	}
	log.Println("seeded platform prices")
	return rows
}

func seedManagers(ctx context.Context, managers *repository.PlanManagerRepository) (*domain.PlanManager, *domain.PlanManager) {
	existing, err := managers.List(ctx, "")
	if err != nil {
		log.Fatal(err)
	}
	if len(existing) >= 2 {
		return &existing[0], &existing[1]
	}

	ytCost := decimal.NewFromInt(500)
	ytRenewal := time.Now().UTC().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	yt := &domain.PlanManager{
		Username:      "yt-family-01",
		DisplayName:   "YouTube Family 01",
		Email:         "yt-family-01@zentra.app",
		Platform:      domain.PlatformYouTube,
		MonthlyCost:   &ytCost,
		SlotsTotal:    5,
		RenewalDate:   &ytRenewal,
		RenewalPeriod: domain.RenewalMonthly,
		IsActive:      true,
	}
	if err := managers.Create(ctx, yt); err != nil {
		log.Fatal(err)
	}

	spCost := decimal.NewFromInt(400)
	spRenewal := time.Now().UTC().AddDate(0, 0, 10).Truncate(24 * time.Hour)
	sp := &domain.PlanManager{
		Username:      "sp-family-01",
		DisplayName:   "Spotify Family 01",
		Email:         "sp-family-01@zentra.app",
		Platform:      domain.PlatformSpotify,
		MonthlyCost:   &spCost,
		SlotsTotal:    5,
		RenewalDate:   &spRenewal,
		RenewalPeriod: domain.RenewalMonthly,
		IsActive:      true,
		Address:       "12 Family Plan Street",
	}
	if err := managers.Create(ctx, sp); err != nil {
		log.Fatal(err)
	}

	log.Println("seeded plan managers")
	return yt, sp
}

func seedCustomers(
	ctx context.Context,
	customers *repository.CustomerRepository,
	subscriptions *repository.SubscriptionRepository,
	yt, sp *domain.PlanManager,
	priceHistory []domain.PlatformPrice,
) {
	existing, err := customers.List(ctx, repository.CustomerFilter{})
	if err != nil {
		log.Fatal(err)
	}
	if len(existing) > 0 {
		return
	}

	now := time.Now().UTC()
	renewal := now.AddDate(0, 0, 14).Truncate(24 * time.Hour)

	seedOne := func(name, email string, manager *domain.PlanManager, income int64) *domain.Customer {
		var history []domain.PlatformPrice
		for _, row := range priceHistory {
			if row.Platform.Equals(manager.Platform) {
				history = append(history, row)
			}
		}

		c := &domain.Customer{
			Name:          name,
			Email:         email,
			Platform:      manager.Platform,
			ManagerPlanID: &manager.ID,
			RenewalDate:   &renewal,
			Income:        decimal.NewFromInt(income),
			IsActive:      true,
		}
		rows := accrual.BuildMonthlyLedger(*c, *manager, history, now)
		if err := customers.AssignWithLedger(ctx, c, rows, manager.SlotsTotal); err != nil {
			log.Fatal(err)
		}
		return c
	}

	alice := seedOne("Alice Perera", "alice@example.com", yt, 650)
	seedOne("Bimal Silva", "bimal@example.com", yt, 650)
	seedOne("Chamari Fernando", "chamari@example.com", sp, 500)

	start := now.AddDate(0, -1, 0).Truncate(24 * time.Hour)
	sub := &domain.Subscription{
		CustomerID: alice.ID,
		PlanType:   "1 month",
		StartDate:  start,
		EndDate:    accrual.AdvanceRenewalDate(start, 1),
		Status:     domain.SubscriptionPaid,
		Platform:   domain.PlatformYouTube,
	}
	platform := domain.PlatformYouTube
	payment := &domain.Payment{
		CustomerID:    alice.ID,
		Amount:        decimal.NewFromInt(650),
		PaymentMethod: "manual",
		Reference:     "seed-payment-001",
		PaidOn:        start,
		Platform:      &platform,
	}
	if err := subscriptions.CreateWithPayment(ctx, sub, payment); err != nil {
		log.Fatal(err)
	}

	log.Println("seeded customers")
}
