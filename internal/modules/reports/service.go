package reports

import (
	"context"
	"sort"
	"time"

	"github.com/RomeshCG/Zentra/internal/slots"
)

// Service computes the read-only dashboards. The overview applies the fixed
// per-platform family plan slot rule, which is this view's historical
// capacity model; the plans module's list and detail use the configurable
// slots_total instead.
type Service struct {
	ledger    LedgerReader
	managers  ManagerReader
	customers CustomerCounter
	now       func() time.Time
}

func NewService(ledger LedgerReader, managers ManagerReader, customers CustomerCounter, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		ledger:    ledger,
		managers:  managers,
		customers: customers,
		now:       now,
	}
}

func (s *Service) ProfitExpenses(ctx context.Context, from, to *time.Time) (*ProfitExpensesResponse, error) {
	totals, err := s.ledger.SumTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byMonth, order, err := s.ledger.SumByMonth(ctx, from, to)
	if err != nil {
		return nil, err
	}

	months := make([]MonthTotals, 0, len(order))
	for _, month := range order {
		t := byMonth[month]
		months = append(months, MonthTotals{
			Month:   month.Format("2006-01"),
			Income:  t.Income,
			Expense: t.Expense,
			Profit:  t.Profit,
		})
	}

	return &ProfitExpensesResponse{
		TotalIncome:  totals.Income,
		TotalExpense: totals.Expense,
		TotalProfit:  totals.Profit,
		ByMonth:      months,
	}, nil
}

func (s *Service) Overview(ctx context.Context) (*OverviewResponse, error) {
	managers, err := s.managers.List(ctx, "")
	if err != nil {
		return nil, err
	}
	counts, err := s.customers.CountActiveGroupedByManager(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	byPlatform := make(map[string]*PlatformOverview)
	overdue, dueSoon := 0, 0

	for _, m := range managers {
		active := counts[m.ID]
		calc := slots.Calculate(string(m.Platform), active)
		status := renewalStatus(m.RenewalDate, m.IsActive, now)

		switch status {
		case StatusOverdue:
			overdue++
		case StatusDue7:
			dueSoon++
		}

		key := string(m.Platform)
		group, ok := byPlatform[key]
		if !ok {
			group = &PlatformOverview{Platform: key}
			byPlatform[key] = group
		}

		name := m.DisplayName
		if name == "" {
			name = m.Username
		}
		group.Managers = append(group.Managers, ManagerOverview{
			ManagerID:       m.ID,
			DisplayName:     name,
			Platform:        key,
			ActiveCustomers: active,
			TotalSlots:      calc.TotalSlots,
			EmptySlots:      calc.EmptySlots,
			RenewalStatus:   status,
		})
		group.Accounts++
		group.ActiveCustomers += active
		group.TotalSlots += calc.TotalSlots
		group.EmptySlots += calc.EmptySlots
	}

	platforms := make([]PlatformOverview, 0, len(byPlatform))
	for _, group := range byPlatform {
		if group.TotalSlots > 0 {
			used := group.TotalSlots - group.EmptySlots
			group.Utilization = float64(used) / float64(group.TotalSlots)
		}
		platforms = append(platforms, *group)
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i].Platform < platforms[j].Platform })

	return &OverviewResponse{
		Platforms: platforms,
		Overdue:   overdue,
		DueSoon:   dueSoon,
	}, nil
}

func renewalStatus(renewal *time.Time, isActive bool, now time.Time) string {
	if !isActive {
		return StatusInactive
	}
	if renewal == nil {
		return StatusActive
	}
	until := renewal.Sub(now)
	switch {
	case until < 0:
		return StatusOverdue
	case until <= 7*24*time.Hour:
		return StatusDue7
	case until <= 30*24*time.Hour:
		return StatusDue30
	default:
		return StatusActive
	}
}
