package plans

import (
	"context"

	"github.com/RomeshCG/Zentra/internal/domain"
)

// PlanManagerRepositoryInterface — only the methods the plans service uses
type PlanManagerRepositoryInterface interface {
	Create(ctx context.Context, p *domain.PlanManager) error
	GetByID(ctx context.Context, id int64) (*domain.PlanManager, error)
	List(ctx context.Context, platform string) ([]domain.PlanManager, error)
	Update(ctx context.Context, p *domain.PlanManager) error
	Delete(ctx context.Context, id int64) error
	RenewWithHistory(ctx context.Context, p *domain.PlanManager, h *domain.PlanManagerFinancialHistory) error
	HistoryByManager(ctx context.Context, managerID int64) ([]domain.PlanManagerFinancialHistory, error)
}

// CustomerReader provides the occupancy figures the manager views annotate.
type CustomerReader interface {
	ListByManager(ctx context.Context, managerID int64) ([]domain.Customer, error)
	CountActiveByManager(ctx context.Context, managerID int64) (int, error)
	CountActiveGroupedByManager(ctx context.Context) (map[int64]int, error)
}
