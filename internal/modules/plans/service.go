package plans

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RomeshCG/Zentra/internal/accrual"
	"github.com/RomeshCG/Zentra/internal/domain"
	"github.com/RomeshCG/Zentra/internal/pkg/validator"
	"github.com/RomeshCG/Zentra/internal/slots"
)

const defaultSlotsTotal = 5

// Service contains the plan manager business logic, including both slot
// capacity rules. List and detail views use the configurable slots_total;
// the reports overview uses slots.Calculate separately.
type Service struct {
	managers  PlanManagerRepositoryInterface
	customers CustomerReader
}

func NewService(managers PlanManagerRepositoryInterface, customers CustomerReader) *Service {
	return &Service{managers: managers, customers: customers}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.PlanManager, error) {
	platform := domain.NormalizePlatform(req.Platform)

	cost, err := parseMoney(req.MonthlyCost)
	if err != nil {
		return nil, fmt.Errorf("%w: monthly_cost must be a number", ErrValidation)
	}
	renewal, err := parseDate(req.RenewalDate)
	if err != nil {
		return nil, fmt.Errorf("%w: renewal_date must be YYYY-MM-DD", ErrValidation)
	}

	slotsTotal := defaultSlotsTotal
	if req.SlotsTotal != nil && *req.SlotsTotal > 0 {
		slotsTotal = *req.SlotsTotal
	}

	period := domain.RenewalMonthly
	if req.RenewalPeriod == string(domain.RenewalYearly) {
		period = domain.RenewalYearly
	}

	// Address is a Spotify artifact (family plan address checks); other
	// platforms never carry one.
	address := ""
	if platform.IsSpotify() {
		address = req.Address
	}

	manager := &domain.PlanManager{
		Username:      req.Username,
		DisplayName:   req.DisplayName,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         req.Phone,
		Platform:      platform,
		MonthlyCost:   cost,
		SlotsTotal:    slotsTotal,
		RenewalDate:   renewal,
		RenewalPeriod: period,
		IsActive:      true,
		BankCard:      req.BankCard,
		Address:       address,
		Notes:         req.Notes,
	}
	if fields := validator.Validate(manager); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fields)
	}
	if err := s.managers.Create(ctx, manager); err != nil {
		return nil, err
	}
	return manager, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]ListItem, error) {
	managers, err := s.managers.List(ctx, f.Platform)
	if err != nil {
		return nil, err
	}

	counts, err := s.customers.CountActiveGroupedByManager(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(managers))
	for _, m := range managers {
		active := counts[m.ID]
		calc := slots.Calculate(string(m.Platform), active)
		remaining := m.SlotsTotal - active
		if remaining < 0 {
			remaining = 0
		}

		item := ListItem{
			PlanManager:     m,
			ActiveCustomers: active,
			TotalSlots:      calc.TotalSlots,
			EmptySlots:      calc.EmptySlots,
			SlotsRemaining:  remaining,
			SlotsLabel:      slots.Describe(string(m.Platform), m.IsActive),
		}

		switch f.Sort {
		case "has":
			if remaining == 0 {
				continue
			}
		case "full":
			if remaining > 0 {
				continue
			}
		}
		items = append(items, item)
	}

	// Managers with free slots come first so operators find a home for a new
	// customer without scrolling past full accounts.
	sort.SliceStable(items, func(i, j int) bool {
		return (items[i].SlotsRemaining > 0) && (items[j].SlotsRemaining == 0)
	})
	return items, nil
}

func (s *Service) GetDetail(ctx context.Context, id int64) (*DetailResponse, error) {
	manager, err := s.managers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	customers, err := s.customers.ListByManager(ctx, id)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, c := range customers {
		if c.IsActive {
			active++
		}
	}

	calc := slots.Calculate(string(manager.Platform), active)
	remaining := manager.SlotsTotal - active
	if remaining < 0 {
		remaining = 0
	}

	return &DetailResponse{
		Manager:         *manager,
		Customers:       customers,
		ActiveCustomers: active,
		TotalSlots:      calc.TotalSlots,
		EmptySlots:      calc.EmptySlots,
		SlotsRemaining:  remaining,
	}, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*domain.PlanManager, error) {
	manager, err := s.managers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Username != nil {
		manager.Username = *req.Username
	}
	if req.DisplayName != nil {
		manager.DisplayName = *req.DisplayName
	}
	if req.Email != nil {
		manager.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		manager.Phone = *req.Phone
	}
	if req.Platform != nil {
		manager.Platform = domain.NormalizePlatform(*req.Platform)
	}
	if req.MonthlyCost != nil {
		cost, err := parseMoney(req.MonthlyCost)
		if err != nil {
			return nil, fmt.Errorf("%w: monthly_cost must be a number", ErrValidation)
		}
		manager.MonthlyCost = cost
	}
	if req.SlotsTotal != nil {
		if *req.SlotsTotal <= 0 {
			return nil, fmt.Errorf("%w: slots_total must be positive", ErrValidation)
		}
		manager.SlotsTotal = *req.SlotsTotal
	}
	if req.RenewalDate != nil {
		renewal, err := parseDate(req.RenewalDate)
		if err != nil {
			return nil, fmt.Errorf("%w: renewal_date must be YYYY-MM-DD", ErrValidation)
		}
		manager.RenewalDate = renewal
	}
	if req.RenewalPeriod != nil {
		manager.RenewalPeriod = domain.RenewalPeriod(*req.RenewalPeriod)
	}
	if req.IsActive != nil {
		manager.IsActive = *req.IsActive
	}
	if req.BankCard != nil {
		manager.BankCard = *req.BankCard
	}
	if req.Address != nil {
		if manager.Platform.IsSpotify() {
			manager.Address = *req.Address
		} else {
			manager.Address = ""
		}
	}
	if req.Notes != nil {
		manager.Notes = *req.Notes
	}

	if err := s.managers.Update(ctx, manager); err != nil {
		return nil, err
	}
	return manager, nil
}

// Renew advances the renewal date by one billing period and records the
// month's financial snapshot. The date move and the history row commit
// together or not at all.
func (s *Service) Renew(ctx context.Context, id int64, req RenewRequest) (*RenewResult, error) {
	manager, err := s.managers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if manager.RenewalDate == nil {
		return nil, ErrNoRenewal
	}

	months := 1
	if manager.RenewalPeriod == domain.RenewalYearly {
		months = 12
	}

	current := *manager.RenewalDate
	next := accrual.AdvanceRenewalDate(current, months)
	manager.RenewalDate = &next

	expense := decimal.Zero
	if manager.MonthlyCost != nil {
		expense = *manager.MonthlyCost
	}

	customers, err := s.customers.ListByManager(ctx, id)
	if err != nil {
		return nil, err
	}
	profit := decimal.Zero
	for _, c := range customers {
		if c.IsActive {
			profit = profit.Add(c.Profit)
		}
	}
	profit = profit.Sub(expense)

	history := &domain.PlanManagerFinancialHistory{
		PlanManagerID: manager.ID,
		Month:         time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, time.UTC),
		Expense:       expense,
		Profit:        profit,
		Notes:         req.Notes,
	}

	if err := s.managers.RenewWithHistory(ctx, manager, history); err != nil {
		return nil, err
	}

	return &RenewResult{Manager: *manager, History: *history}, nil
}

func (s *Service) History(ctx context.Context, id int64) ([]domain.PlanManagerFinancialHistory, error) {
	if _, err := s.managers.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.managers.HistoryByManager(ctx, id)
}

// Delete refuses while any customer, active or not, still points at the
// manager.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.managers.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	customers, err := s.customers.ListByManager(ctx, id)
	if err != nil {
		return err
	}
	if len(customers) > 0 {
		return ErrHasCustomers
	}
	return s.managers.Delete(ctx, id)
}
