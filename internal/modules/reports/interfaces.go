package reports

import (
	"context"
	"time"

	"github.com/RomeshCG/Zentra/internal/domain"
	"github.com/RomeshCG/Zentra/internal/repository"
)

// LedgerReader aggregates the append-only customer ledger.
type LedgerReader interface {
	SumTotals(ctx context.Context, from, to *time.Time) (repository.LedgerTotals, error)
	SumByMonth(ctx context.Context, from, to *time.Time) (map[time.Time]repository.LedgerTotals, []time.Time, error)
}

// ManagerReader lists the managers the overview groups.
type ManagerReader interface {
	List(ctx context.Context, platform string) ([]domain.PlanManager, error)
}

// CustomerCounter supplies per-manager occupancy in one query.
type CustomerCounter interface {
	CountActiveGroupedByManager(ctx context.Context) (map[int64]int, error)
}
