package customers

import (
	"context"
	"time"

	"github.com/RomeshCG/Zentra/internal/domain"
	"github.com/RomeshCG/Zentra/internal/repository"
)

// CustomerRepositoryInterface — only the methods the customers service uses
type CustomerRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context, f repository.CustomerFilter) ([]domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetFlagged(ctx context.Context, id int64, flagged bool) error
	CountActiveByManager(ctx context.Context, managerID int64) (int, error)
	AssignWithLedger(ctx context.Context, c *domain.Customer, rows []domain.CustomerSubscriptionMonth, slotsTotal int) error
	RenewWithLedger(ctx context.Context, c *domain.Customer, rows []domain.CustomerSubscriptionMonth) error
}

// ManagerReader resolves the plan manager a customer occupies.
type ManagerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.PlanManager, error)
	List(ctx context.Context, platform string) ([]domain.PlanManager, error)
}

// LedgerReader reads the append-only months for detail views.
type LedgerReader interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.CustomerSubscriptionMonth, error)
}

// PriceReader supplies the platform price history the accrual runs against.
type PriceReader interface {
	ListByPlatform(ctx context.Context, platform string) ([]domain.PlatformPrice, error)
}

// Clock lets tests pin "now" for trial-window and due-soon decisions.
type Clock func() time.Time
