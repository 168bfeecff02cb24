package plans

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/RomeshCG/Zentra/internal/domain"
)

type mockManagerRepo struct {
	mock.Mock
}

func (m *mockManagerRepo) Create(ctx context.Context, p *domain.PlanManager) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockManagerRepo) GetByID(ctx context.Context, id int64) (*domain.PlanManager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanManager), args.Error(1)
}

func (m *mockManagerRepo) List(ctx context.Context, platform string) ([]domain.PlanManager, error) {
	args := m.Called(ctx, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanManager), args.Error(1)
}

func (m *mockManagerRepo) Update(ctx context.Context, p *domain.PlanManager) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockManagerRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockManagerRepo) RenewWithHistory(ctx context.Context, p *domain.PlanManager, h *domain.PlanManagerFinancialHistory) error {
	args := m.Called(ctx, p, h)
	return args.Error(0)
}

func (m *mockManagerRepo) HistoryByManager(ctx context.Context, managerID int64) ([]domain.PlanManagerFinancialHistory, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanManagerFinancialHistory), args.Error(1)
}

type mockCustomerReader struct {
	mock.Mock
}

func (m *mockCustomerReader) ListByManager(ctx context.Context, managerID int64) ([]domain.Customer, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *mockCustomerReader) CountActiveByManager(ctx context.Context, managerID int64) (int, error) {
	args := m.Called(ctx, managerID)
	return args.Int(0), args.Error(1)
}

func (m *mockCustomerReader) CountActiveGroupedByManager(ctx context.Context) (map[int64]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func d(s string) decimal.Decimal {
	out, _ := decimal.NewFromString(s)
	return out
}

func TestList_FreeSlotsSortFirst(t *testing.T) {
	managers := new(mockManagerRepo)
	customers := new(mockCustomerReader)
	svc := NewService(managers, customers)

	managers.On("List", mock.Anything, "").Return([]domain.PlanManager{
		{ID: 1, Platform: domain.PlatformYouTube, SlotsTotal: 2},
		{ID: 2, Platform: domain.PlatformYouTube, SlotsTotal: 5},
	}, nil)
	customers.On("CountActiveGroupedByManager", mock.Anything).Return(map[int64]int{
		1: 2, // full
		2: 1,
	}, nil)

	items, err := svc.List(context.Background(), ListFilter{})

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ID)
	assert.Equal(t, 4, items[0].SlotsRemaining)
	assert.Equal(t, int64(1), items[1].ID)
	assert.Equal(t, 0, items[1].SlotsRemaining)
}

func TestList_FamilySlotAnnotation(t *testing.T) {
	managers := new(mockManagerRepo)
	customers := new(mockCustomerReader)
	svc := NewService(managers, customers)

	managers.On("List", mock.Anything, "").Return([]domain.PlanManager{
		{ID: 1, Platform: domain.PlatformYouTube, SlotsTotal: 5},
	}, nil)
	customers.On("CountActiveGroupedByManager", mock.Anything).Return(map[int64]int{1: 2}, nil)

	items, err := svc.List(context.Background(), ListFilter{})

	assert.NoError(t, err)
	// Family platforms show the fixed 6-slot plan with the manager occupying
	// one, alongside the configured slots_total remainder.
	assert.Equal(t, 6, items[0].TotalSlots)
	assert.Equal(t, 3, items[0].EmptySlots)
	assert.Equal(t, 3, items[0].SlotsRemaining)
	assert.Equal(t, "5 slots (unmanaged)", items[0].SlotsLabel)
}

func TestList_HasFilterDropsFullManagers(t *testing.T) {
	managers := new(mockManagerRepo)
	customers := new(mockCustomerReader)
	svc := NewService(managers, customers)

	managers.On("List", mock.Anything, "").Return([]domain.PlanManager{
		{ID: 1, SlotsTotal: 1},
		{ID: 2, SlotsTotal: 5},
	}, nil)
	customers.On("CountActiveGroupedByManager", mock.Anything).Return(map[int64]int{1: 1}, nil)

	items, err := svc.List(context.Background(), ListFilter{Sort: "has"})

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID)
}

func TestCreate_AddressOnlyForSpotify(t *testing.T) {
	managers := new(mockManagerRepo)
	customers := new(mockCustomerReader)
	svc := NewService(managers, customers)

	managers.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.PlanManager) bool {
		return p.Address == "" && p.Platform == domain.PlatformYouTube
	})).Return(nil)

	_, err := svc.Create(context.Background(), CreateRequest{
		Username: "yt-fam-01",
		Email:    "yt@zentra.app",
		Platform: "YouTube",
		Address:  "123 Family St",
	})

	assert.NoError(t, err)
	managers.AssertExpectations(t)
}

func TestCreate_DefaultSlots(t *testing.T) {
	managers := new(mockManagerRepo)
	customers := new(mockCustomerReader)
	svc := NewService(managers, customers)

	managers.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.PlanManager) bool {
		return p.SlotsTotal == 5
	})).Return(nil)

	_, err := svc.Create(context.Background(), CreateRequest{
		Username: "sp-fam-01",
		Email:    "sp@zentra.app",
		Platform: "spotify",
	})

	assert.NoError(t, err)
}

func TestRenew_MonthlyAdvancesOneMonthWithHistory(t *testing.T) {
	managers := new(mockManagerRepo)
	customers := new(mockCustomerReader)
	svc := NewService(managers, customers)

	renewal := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	cost := d("500")
	managers.On("GetByID", mock.Anything, int64(7)).Return(&domain.PlanManager{
		ID:            7,
		Platform:      domain.PlatformYouTube,
		MonthlyCost:   &cost,
		RenewalDate:   &renewal,
		RenewalPeriod: domain.RenewalMonthly,
	}, nil)
	customers.On("ListByManager", mock.Anything, int64(7)).Return([]domain.Customer{
		{IsActive: true, Profit: d("300")},
		{IsActive: true, Profit: d("250")},
		{IsActive: false, Profit: d("999")},
	}, nil)
	managers.On("RenewWithHistory", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Renew(context.Background(), 7, RenewRequest{})

	assert.NoError(t, err)
	// Jan 31 + 1 month clamps to the end of February.
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *result.Manager.RenewalDate)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), result.History.Month)
	assert.True(t, result.History.Expense.Equal(d("500")))
	assert.True(t, result.History.Profit.Equal(d("50")))
}

func TestRenew_YearlyAdvancesTwelveMonths(t *testing.T) {
	managers := new(mockManagerRepo)
	customers := new(mockCustomerReader)
	svc := NewService(managers, customers)

	renewal := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	managers.On("GetByID", mock.Anything, int64(3)).Return(&domain.PlanManager{
		ID:            3,
		RenewalDate:   &renewal,
		RenewalPeriod: domain.RenewalYearly,
	}, nil)
	customers.On("ListByManager", mock.Anything, int64(3)).Return([]domain.Customer{}, nil)
	managers.On("RenewWithHistory", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Renew(context.Background(), 3, RenewRequest{})

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), *result.Manager.RenewalDate)
}

func TestRenew_NoRenewalDate(t *testing.T) {
	managers := new(mockManagerRepo)
	customers := new(mockCustomerReader)
	svc := NewService(managers, customers)

	managers.On("GetByID", mock.Anything, int64(3)).Return(&domain.PlanManager{ID: 3}, nil)

	_, err := svc.Renew(context.Background(), 3, RenewRequest{})
	assert.ErrorIs(t, err, ErrNoRenewal)
}

func TestDelete_BlockedByCustomers(t *testing.T) {
	managers := new(mockManagerRepo)
	customers := new(mockCustomerReader)
	svc := NewService(managers, customers)

	managers.On("GetByID", mock.Anything, int64(5)).Return(&domain.PlanManager{ID: 5}, nil)
	customers.On("ListByManager", mock.Anything, int64(5)).Return([]domain.Customer{{ID: 9}}, nil)

	err := svc.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrHasCustomers)
}

func TestDelete_NotFound(t *testing.T) {
	managers := new(mockManagerRepo)
	customers := new(mockCustomerReader)
	svc := NewService(managers, customers)

	managers.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}
