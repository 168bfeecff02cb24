package customers

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/RomeshCG/Zentra/internal/domain"
	"github.com/RomeshCG/Zentra/internal/repository"
)

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]domain.Customer, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCustomerRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCustomerRepo) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *mockCustomerRepo) SetFlagged(ctx context.Context, id int64, flagged bool) error {
	args := m.Called(ctx, id, flagged)
	return args.Error(0)
}

func (m *mockCustomerRepo) CountActiveByManager(ctx context.Context, managerID int64) (int, error) {
	args := m.Called(ctx, managerID)
	return args.Int(0), args.Error(1)
}

func (m *mockCustomerRepo) AssignWithLedger(ctx context.Context, c *domain.Customer, rows []domain.CustomerSubscriptionMonth, slotsTotal int) error {
	args := m.Called(ctx, c, rows, slotsTotal)
	return args.Error(0)
}

func (m *mockCustomerRepo) RenewWithLedger(ctx context.Context, c *domain.Customer, rows []domain.CustomerSubscriptionMonth) error {
	args := m.Called(ctx, c, rows)
	return args.Error(0)
}

type mockManagerReader struct {
	mock.Mock
}

func (m *mockManagerReader) GetByID(ctx context.Context, id int64) (*domain.PlanManager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanManager), args.Error(1)
}

func (m *mockManagerReader) List(ctx context.Context, platform string) ([]domain.PlanManager, error) {
	args := m.Called(ctx, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanManager), args.Error(1)
}

type mockLedgerReader struct {
	mock.Mock
}

func (m *mockLedgerReader) ListByCustomer(ctx context.Context, customerID int64) ([]domain.CustomerSubscriptionMonth, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerSubscriptionMonth), args.Error(1)
}

type mockPriceReader struct {
	mock.Mock
}

func (m *mockPriceReader) ListByPlatform(ctx context.Context, platform string) ([]domain.PlatformPrice, error) {
	args := m.Called(ctx, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlatformPrice), args.Error(1)
}

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mockCustomerRepo, *mockManagerReader, *mockLedgerReader, *mockPriceReader) {
	t.Helper()
	customers := new(mockCustomerRepo)
	managers := new(mockManagerReader)
	ledger := new(mockLedgerReader)
	prices := new(mockPriceReader)
	svc := NewService(customers, managers, ledger, prices, func() time.Time { return testNow })
	return svc, customers, managers, ledger, prices
}

func d(s string) decimal.Decimal {
	out, _ := decimal.NewFromString(s)
	return out
}

func TestAssign_ValidationErrors(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	_, err := svc.Assign(context.Background(), 1, AssignRequest{
		FormInput: FormInput{
			Name:        "",
			Email:       "a@b.com",
			RenewalDate: "2024-01-01",
			Income:      "1",
			Expense:     "1",
			Profit:      "0",
		},
	})

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"Name is required."}, vErr.Messages)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAssign_NoCapacity(t *testing.T) {
	svc, customers, managers, _, _ := newTestService(t)

	managers.On("GetByID", mock.Anything, int64(4)).Return(&domain.PlanManager{
		ID: 4, Platform: domain.PlatformSpotify, SlotsTotal: 5,
	}, nil)
	customers.On("CountActiveByManager", mock.Anything, int64(4)).Return(5, nil)

	_, err := svc.Assign(context.Background(), 4, AssignRequest{FormInput: validForm()})
	assert.ErrorIs(t, err, ErrNoCapacity)
}

func TestAssign_Success(t *testing.T) {
	svc, customers, managers, _, prices := newTestService(t)

	cost := d("400")
	managers.On("GetByID", mock.Anything, int64(4)).Return(&domain.PlanManager{
		ID:          4,
		Platform:    domain.PlatformSpotify,
		SlotsTotal:  5,
		MonthlyCost: &cost,
		CreatedAt:   testNow.AddDate(-1, 0, 0),
	}, nil)
	customers.On("CountActiveByManager", mock.Anything, int64(4)).Return(3, nil)
	prices.On("ListByPlatform", mock.Anything, "spotify").Return([]domain.PlatformPrice{
		{Platform: domain.PlatformSpotify, EffectiveFrom: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Price: d("400")},
	}, nil)
	customers.On("AssignWithLedger", mock.Anything, mock.Anything, mock.Anything, 5).Return(nil)

	form := validForm()
	form.Income = "500"
	result, err := svc.Assign(context.Background(), 4, AssignRequest{FormInput: form})

	assert.NoError(t, err)
	assert.True(t, result.Customer.IsActive)
	assert.Equal(t, int64(4), *result.Customer.ManagerPlanID)
	assert.Len(t, result.Months, 1)
	assert.True(t, result.Months[0].Income.Equal(d("500")))
	assert.True(t, result.Months[0].Expense.Equal(d("400")))
	customers.AssertExpectations(t)
}

func TestAssign_TrialFirstMonthForYoungYouTubeManager(t *testing.T) {
	svc, customers, managers, _, prices := newTestService(t)

	managers.On("GetByID", mock.Anything, int64(9)).Return(&domain.PlanManager{
		ID:         9,
		Platform:   domain.PlatformYouTube,
		SlotsTotal: 5,
		CreatedAt:  testNow.AddDate(0, 0, -10),
	}, nil)
	customers.On("CountActiveByManager", mock.Anything, int64(9)).Return(0, nil)
	prices.On("ListByPlatform", mock.Anything, "youtube").Return([]domain.PlatformPrice{
		{Platform: domain.PlatformYouTube, EffectiveFrom: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Price: d("500")},
	}, nil)
	customers.On("AssignWithLedger", mock.Anything, mock.Anything, mock.Anything, 5).Return(nil)

	form := validForm()
	form.RenewalDate = "2024-03-01"
	form.Income = "1000"
	req := AssignRequest{FormInput: form, EndDate: "2024-04-01"}

	result, err := svc.Assign(context.Background(), 9, req)

	assert.NoError(t, err)
	assert.Len(t, result.Months, 2)
	assert.True(t, result.Months[0].IsTrial)
	assert.True(t, result.Months[0].Expense.IsZero())
	assert.True(t, result.Months[0].PriceUsed.Equal(d("500")))
	assert.False(t, result.Months[1].IsTrial)
	assert.True(t, result.Months[1].Expense.Equal(d("500")))
}

func TestAssign_SlotRaceLostInTransaction(t *testing.T) {
	svc, customers, managers, _, prices := newTestService(t)

	managers.On("GetByID", mock.Anything, int64(4)).Return(&domain.PlanManager{
		ID: 4, Platform: domain.PlatformSpotify, SlotsTotal: 5,
	}, nil)
	customers.On("CountActiveByManager", mock.Anything, int64(4)).Return(4, nil)
	prices.On("ListByPlatform", mock.Anything, "spotify").Return([]domain.PlatformPrice{}, nil)
	customers.On("AssignWithLedger", mock.Anything, mock.Anything, mock.Anything, 5).Return(repository.ErrSlotCapacity)

	_, err := svc.Assign(context.Background(), 4, AssignRequest{FormInput: validForm()})
	assert.ErrorIs(t, err, ErrNoCapacity)
}

func TestRenew_TwoMonthsAppendsTwoRows(t *testing.T) {
	svc, customers, managers, _, prices := newTestService(t)

	renewal := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	managerID := int64(4)
	cost := d("400")
	customers.On("GetByID", mock.Anything, int64(7)).Return(&domain.Customer{
		ID:            7,
		ManagerPlanID: &managerID,
		RenewalDate:   &renewal,
		Income:        d("1000"),
		IsActive:      true,
	}, nil)
	managers.On("GetByID", mock.Anything, managerID).Return(&domain.PlanManager{
		ID:          managerID,
		Platform:    domain.PlatformSpotify,
		MonthlyCost: &cost,
		CreatedAt:   testNow.AddDate(-1, 0, 0),
	}, nil)
	prices.On("ListByPlatform", mock.Anything, "spotify").Return([]domain.PlatformPrice{}, nil)
	customers.On("RenewWithLedger", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Renew(context.Background(), 7, RenewRequest{Months: 2})

	assert.NoError(t, err)
	// Jan 31 + 2 months clamps to Mar 31; the paid span covers Jan and Feb.
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), *result.Customer.RenewalDate)
	assert.Len(t, result.Months, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), result.Months[0].Month)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), result.Months[1].Month)
	assert.True(t, result.Months[0].Income.Equal(d("500")))
	assert.True(t, result.Months[0].Expense.Equal(d("400")))
}

func TestRenew_NoRenewalDate(t *testing.T) {
	svc, customers, _, _, _ := newTestService(t)

	customers.On("GetByID", mock.Anything, int64(7)).Return(&domain.Customer{ID: 7}, nil)

	_, err := svc.Renew(context.Background(), 7, RenewRequest{Months: 1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTransfer_PlatformMismatch(t *testing.T) {
	svc, customers, managers, _, _ := newTestService(t)

	customers.On("GetByID", mock.Anything, int64(7)).Return(&domain.Customer{
		ID: 7, Platform: domain.PlatformYouTube,
	}, nil)
	managers.On("GetByID", mock.Anything, int64(2)).Return(&domain.PlanManager{
		ID: 2, Platform: domain.PlatformSpotify, SlotsTotal: 5,
	}, nil)

	_, err := svc.Transfer(context.Background(), 7, TransferRequest{PlanManagerID: 2})
	assert.ErrorIs(t, err, ErrPlatformMismatch)
}

func TestTransfer_TargetFull(t *testing.T) {
	svc, customers, managers, _, _ := newTestService(t)

	customers.On("GetByID", mock.Anything, int64(7)).Return(&domain.Customer{
		ID: 7, Platform: domain.PlatformSpotify,
	}, nil)
	managers.On("GetByID", mock.Anything, int64(2)).Return(&domain.PlanManager{
		ID: 2, Platform: domain.PlatformSpotify, SlotsTotal: 2,
	}, nil)
	customers.On("CountActiveByManager", mock.Anything, int64(2)).Return(2, nil)

	_, err := svc.Transfer(context.Background(), 7, TransferRequest{PlanManagerID: 2})
	assert.ErrorIs(t, err, ErrNoCapacity)
}

func TestTransfer_Success(t *testing.T) {
	svc, customers, managers, _, _ := newTestService(t)

	oldManager := int64(1)
	customers.On("GetByID", mock.Anything, int64(7)).Return(&domain.Customer{
		ID: 7, Platform: domain.PlatformSpotify, ManagerPlanID: &oldManager,
	}, nil)
	managers.On("GetByID", mock.Anything, int64(2)).Return(&domain.PlanManager{
		ID: 2, Platform: domain.PlatformSpotify, SlotsTotal: 5,
	}, nil)
	customers.On("CountActiveByManager", mock.Anything, int64(2)).Return(1, nil)
	customers.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.ManagerPlanID != nil && *c.ManagerPlanID == 2
	})).Return(nil)

	customer, err := svc.Transfer(context.Background(), 7, TransferRequest{PlanManagerID: 2})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), *customer.ManagerPlanID)
	customers.AssertExpectations(t)
}

func TestList_DueSoonFlag(t *testing.T) {
	svc, customers, managers, _, _ := newTestService(t)

	managerID := int64(1)
	soon := testNow.Add(3 * 24 * time.Hour)
	far := testNow.Add(20 * 24 * time.Hour)
	customers.On("List", mock.Anything, mock.Anything).Return([]domain.Customer{
		{ID: 1, ManagerPlanID: &managerID, RenewalDate: &soon},
		{ID: 2, ManagerPlanID: &managerID, RenewalDate: &far},
	}, nil)
	managers.On("List", mock.Anything, "").Return([]domain.PlanManager{
		{ID: 1, DisplayName: "YT Family A", Platform: domain.PlatformYouTube},
	}, nil)

	items, err := svc.List(context.Background(), ListFilter{})

	assert.NoError(t, err)
	assert.True(t, items[0].RenewalDueSoon)
	assert.False(t, items[1].RenewalDueSoon)
	assert.Equal(t, "YT Family A", items[0].ManagerName)
	assert.Equal(t, "youtube", items[0].ManagerPlatform)
}

func TestDelete_NotFound(t *testing.T) {
	svc, customers, _, _, _ := newTestService(t)

	customers.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}
