package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RomeshCG/Zentra/internal/accrual"
	"github.com/RomeshCG/Zentra/internal/domain"
)

// Service owns subscription spans and their loosely joined payments.
type Service struct {
	subscriptions SubscriptionRepositoryInterface
	payments      PaymentRepositoryInterface
	customers     CustomerReader
	now           func() time.Time
}

func NewService(subscriptions SubscriptionRepositoryInterface, payments PaymentRepositoryInterface, customers CustomerReader, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		subscriptions: subscriptions,
		payments:      payments,
		customers:     customers,
		now:           now,
	}
}

// ListByCustomer returns subscriptions newest first, each annotated with
// the first payment whose platform matches (or that carries no platform).
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]ListItem, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	subs, err := s.subscriptions.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(subs))
	for _, sub := range subs {
		item := ListItem{Subscription: sub}
		if p := matchPayment(sub, payments); p != nil {
			amount := p.Amount
			item.PaidAmount = &amount
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, customerID int64, req CreateRequest) (*CreateResult, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrValidation)
	}
	if req.DurationMonths < 1 {
		return nil, fmt.Errorf("%w: duration_months must be at least 1", ErrValidation)
	}

	sub := &domain.Subscription{
		CustomerID: customerID,
		PlanType:   fmt.Sprintf("%d month", req.DurationMonths),
		StartDate:  start,
		EndDate:    accrual.AdvanceRenewalDate(start, req.DurationMonths),
		Status:     domain.SubscriptionPaid,
		Platform:   domain.NormalizePlatform(req.Platform),
	}

	var payment *domain.Payment
	if req.Amount != nil && *req.Amount != "" {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: amount must be a number", ErrValidation)
		}
		platform := sub.Platform
		payment = &domain.Payment{
			CustomerID:    customerID,
			Amount:        amount,
			PaymentMethod: "manual",
			Reference:     uuid.NewString(),
			PaidOn:        s.now(),
		}
		if platform != "" {
			payment.Platform = &platform
		}
	}

	if err := s.subscriptions.CreateWithPayment(ctx, sub, payment); err != nil {
		return nil, err
	}
	return &CreateResult{Subscription: *sub, Payment: payment}, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*domain.Subscription, error) {
	sub, err := s.subscriptions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.PlanType != nil {
		sub.PlanType = *req.PlanType
	}
	if req.StartDate != nil {
		start, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrValidation)
		}
		sub.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrValidation)
		}
		sub.EndDate = end
	}
	if req.Status != nil {
		switch domain.SubscriptionStatus(*req.Status) {
		case domain.SubscriptionPaid, domain.SubscriptionExpired:
			sub.Status = domain.SubscriptionStatus(*req.Status)
		default:
			return nil, fmt.Errorf("%w: status must be Paid or Expired", ErrValidation)
		}
	}
	if req.Platform != nil {
		sub.Platform = domain.NormalizePlatform(*req.Platform)
	}

	if err := s.subscriptions.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.subscriptions.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.subscriptions.Delete(ctx, id)
}

func (s *Service) ListPayments(ctx context.Context, customerID int64) ([]domain.Payment, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.payments.ListByCustomer(ctx, customerID)
}

func (s *Service) CreatePayment(ctx context.Context, customerID int64, req CreatePaymentRequest) (*domain.Payment, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount must be a number", ErrValidation)
	}

	paidOn := s.now()
	if req.PaidOn != "" {
		paidOn, err = time.Parse("2006-01-02", req.PaidOn)
		if err != nil {
			return nil, fmt.Errorf("%w: paid_on must be YYYY-MM-DD", ErrValidation)
		}
	}

	method := req.PaymentMethod
	if method == "" {
		method = "manual"
	}

	payment := &domain.Payment{
		CustomerID:    customerID,
		Amount:        amount,
		PaymentMethod: method,
		Reference:     uuid.NewString(),
		PaidOn:        paidOn,
	}
	if req.Platform != "" {
		platform := domain.NormalizePlatform(req.Platform)
		payment.Platform = &platform
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *Service) requireCustomer(ctx context.Context, customerID int64) error {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	return nil
}

// matchPayment picks the first payment on the subscription's platform, then
// falls back to one with no platform recorded.
func matchPayment(sub domain.Subscription, payments []domain.Payment) *domain.Payment {
	for i := range payments {
		if payments[i].Platform != nil && payments[i].Platform.Equals(sub.Platform) {
			return &payments[i]
		}
	}
	for i := range payments {
		if payments[i].Platform == nil {
			return &payments[i]
		}
	}
	return nil
}
