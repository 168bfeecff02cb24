package customers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RomeshCG/Zentra/internal/accrual"
	"github.com/RomeshCG/Zentra/internal/domain"
	"github.com/RomeshCG/Zentra/internal/repository"
)

const dueSoonWindow = 7 * 24 * time.Hour

// ValidationError carries the per-field messages from ValidateForm.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Service owns the customer lifecycle: slot assignment, renewal accrual,
// transfers and the soft state toggles.
type Service struct {
	customers CustomerRepositoryInterface
	managers  ManagerReader
	ledger    LedgerReader
	prices    PriceReader
	now       Clock
}

func NewService(customers CustomerRepositoryInterface, managers ManagerReader, ledger LedgerReader, prices PriceReader, now Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		customers: customers,
		managers:  managers,
		ledger:    ledger,
		prices:    prices,
		now:       now,
	}
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]ListItem, error) {
	repoFilter := repository.CustomerFilter{
		Query:     f.Query,
		ManagerID: f.ManagerID,
		Platform:  f.Platform,
	}
	now := s.now()
	if f.RenewalDate != "" {
		day, err := time.Parse("2006-01-02", f.RenewalDate)
		if err != nil {
			return nil, &ValidationError{Messages: []string{"Renewal Date is required."}}
		}
		repoFilter.RenewalDate = &day
	}
	if f.DueThisWeek {
		from := now
		to := now.Add(dueSoonWindow)
		repoFilter.DueAfter = &from
		repoFilter.DueBefore = &to
	}

	list, err := s.customers.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	managers, err := s.managers.List(ctx, "")
	if err != nil {
		return nil, err
	}
	managerByID := make(map[int64]domain.PlanManager, len(managers))
	for _, m := range managers {
		managerByID[m.ID] = m
	}

	items := make([]ListItem, 0, len(list))
	for _, c := range list {
		item := ListItem{Customer: c}
		if c.ManagerPlanID != nil {
			if m, ok := managerByID[*c.ManagerPlanID]; ok {
				item.ManagerName = m.DisplayName
				if item.ManagerName == "" {
					item.ManagerName = string(m.Platform)
				}
				item.ManagerPlatform = string(m.Platform)
			}
		}
		if c.RenewalDate != nil {
			until := c.RenewalDate.Sub(now)
			item.RenewalDueSoon = until >= 0 && until <= dueSoonWindow
		}
		items = append(items, item)
	}
	return items, nil
}

// Assign places a new customer on a plan manager's slot and writes the
// opening ledger in one transaction. Capacity follows the manager's
// configured slots_total over active customers.
func (s *Service) Assign(ctx context.Context, managerID int64, req AssignRequest) (*AssignResult, error) {
	if msgs := ValidateForm(req.FormInput); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	manager, err := s.managers.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrManagerNotFound
		}
		return nil, err
	}

	active, err := s.customers.CountActiveByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if active >= manager.SlotsTotal {
		return nil, ErrNoCapacity
	}

	customer, err := customerFromForm(req, managerID, manager.Platform)
	if err != nil {
		return nil, err
	}

	history, err := s.prices.ListByPlatform(ctx, string(manager.Platform))
	if err != nil {
		return nil, err
	}
	rows := accrual.BuildMonthlyLedger(*customer, *manager, history, s.now())

	// The count repeats inside the transaction. A stale read here only
	// costs an extra round trip, never an oversold slot.
	if err := s.customers.AssignWithLedger(ctx, customer, rows, manager.SlotsTotal); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotCapacity):
			return nil, ErrNoCapacity
		case isUniqueViolation(err):
			return nil, ErrLedgerConflict
		}
		return nil, err
	}

	return &AssignResult{Customer: *customer, Months: rows}, nil
}

func (s *Service) GetDetail(ctx context.Context, id int64) (*DetailResponse, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	months, err := s.ledger.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DetailResponse{Customer: *customer, Months: months}, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		if !emailShape.MatchString(*req.Email) {
			return nil, &ValidationError{Messages: []string{"Email is invalid."}}
		}
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.RenewalDate != nil {
		day, err := time.Parse("2006-01-02", *req.RenewalDate)
		if err != nil {
			return nil, &ValidationError{Messages: []string{"Renewal Date is required."}}
		}
		customer.RenewalDate = &day
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			customer.EndDate = nil
		} else {
			day, err := time.Parse("2006-01-02", *req.EndDate)
			if err != nil {
				return nil, &ValidationError{Messages: []string{"End Date must be a valid date."}}
			}
			customer.EndDate = &day
		}
	}
	if req.Income != nil {
		v, ok := parseMoney(*req.Income)
		if !ok {
			return nil, &ValidationError{Messages: []string{"Income is required and must be a number."}}
		}
		customer.Income = v
	}
	if req.Expense != nil {
		v, ok := parseMoney(*req.Expense)
		if !ok {
			return nil, &ValidationError{Messages: []string{"Expense is required and must be a number."}}
		}
		customer.Expense = v
	}
	if req.Profit != nil {
		v, ok := parseMoney(*req.Profit)
		if !ok {
			return nil, &ValidationError{Messages: []string{"Profit is required and must be a number."}}
		}
		customer.Profit = v
	}
	if req.Username != nil {
		customer.Username = *req.Username
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Renew advances the customer's renewal date by the requested months and
// appends ledger rows for the paid span, atomically.
func (s *Service) Renew(ctx context.Context, id int64, req RenewRequest) (*RenewResult, error) {
	if req.Months < 1 {
		return nil, &ValidationError{Messages: []string{"Months must be at least 1."}}
	}

	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if customer.RenewalDate == nil {
		return nil, &ValidationError{Messages: []string{"Renewal Date is required."}}
	}

	var manager domain.PlanManager
	var history []domain.PlatformPrice
	if customer.ManagerPlanID != nil {
		m, err := s.managers.GetByID(ctx, *customer.ManagerPlanID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if m != nil {
			manager = *m
			history, err = s.prices.ListByPlatform(ctx, string(m.Platform))
			if err != nil {
				return nil, err
			}
		}
	}

	income := customer.Income
	if req.Income != nil {
		v, ok := parseMoney(*req.Income)
		if !ok {
			return nil, &ValidationError{Messages: []string{"Income is required and must be a number."}}
		}
		income = v
	}

	spanStart := *customer.RenewalDate
	spanEnd := accrual.AdvanceRenewalDate(spanStart, req.Months-1)
	next := accrual.AdvanceRenewalDate(spanStart, req.Months)

	span := *customer
	span.RenewalDate = &spanStart
	span.EndDate = &spanEnd
	span.Income = income
	rows := accrual.BuildMonthlyLedger(span, manager, history, s.now())

	if req.Expense != nil {
		v, ok := parseMoney(*req.Expense)
		if !ok {
			return nil, &ValidationError{Messages: []string{"Expense is required and must be a number."}}
		}
		for i := range rows {
			if rows[i].IsTrial {
				continue
			}
			rows[i].Expense = v
			rows[i].Profit = rows[i].Income.Sub(v)
		}
	}

	customer.RenewalDate = &next
	customer.Income = income
	customer.IsActive = true
	recomputeSnapshot(customer, rows)

	if err := s.customers.RenewWithLedger(ctx, customer, rows); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrLedgerConflict
		}
		return nil, err
	}
	return &RenewResult{Customer: *customer, Months: rows}, nil
}

// Transfer moves the customer to another plan manager on the same platform,
// re-checking the target's capacity.
func (s *Service) Transfer(ctx context.Context, id int64, req TransferRequest) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	target, err := s.managers.GetByID(ctx, req.PlanManagerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrManagerNotFound
		}
		return nil, err
	}

	if customer.Platform != "" && !target.Platform.Equals(customer.Platform) {
		return nil, ErrPlatformMismatch
	}

	active, err := s.customers.CountActiveByManager(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	if active >= target.SlotsTotal {
		return nil, ErrNoCapacity
	}

	customer.ManagerPlanID = &target.ID
	customer.Platform = target.Platform
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*domain.Customer, error) {
	if _, err := s.customers.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.customers.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	return s.customers.GetByID(ctx, id)
}

func (s *Service) SetFlagged(ctx context.Context, id int64, flagged bool) (*domain.Customer, error) {
	if _, err := s.customers.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.customers.SetFlagged(ctx, id, flagged); err != nil {
		return nil, err
	}
	return s.customers.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.customers.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.customers.Delete(ctx, id)
}

func (s *Service) Months(ctx context.Context, id int64) ([]domain.CustomerSubscriptionMonth, error) {
	if _, err := s.customers.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.ledger.ListByCustomer(ctx, id)
}

func customerFromForm(req AssignRequest, managerID int64, platform domain.Platform) (*domain.Customer, error) {
	renewal, err := time.Parse("2006-01-02", req.RenewalDate)
	if err != nil {
		return nil, &ValidationError{Messages: []string{"Renewal Date is required."}}
	}

	income, _ := parseMoney(req.Income)
	expense, _ := parseMoney(req.Expense)
	profit, _ := parseMoney(req.Profit)

	customer := &domain.Customer{
		Name:          strings.TrimSpace(req.Name),
		Email:         req.Email,
		Phone:         req.Phone,
		Platform:      platform,
		ManagerPlanID: &managerID,
		RenewalDate:   &renewal,
		Income:        income,
		Expense:       expense,
		Profit:        profit,
		IsActive:      true,
		Username:      req.Username,
		Notes:         req.Notes,
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, &ValidationError{Messages: []string{"End Date must be a valid date."}}
		}
		customer.EndDate = &end
	}
	return customer, nil
}

// recomputeSnapshot refreshes the customer's current-cycle totals from the
// freshly built ledger rows.
func recomputeSnapshot(c *domain.Customer, rows []domain.CustomerSubscriptionMonth) {
	if len(rows) == 0 {
		return
	}
	expense := decimal.Zero
	for _, r := range rows {
		expense = expense.Add(r.Expense)
	}
	c.Expense = expense
	c.Profit = c.Income.Sub(expense)
}

func parseMoney(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// isUniqueViolation reports a Postgres 23505 on the (customer_id, month)
// unique index. SQLite surfaces the same condition as a gorm duplicated-key
// error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
