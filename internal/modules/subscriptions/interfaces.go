package subscriptions

import (
	"context"

	"github.com/RomeshCG/Zentra/internal/domain"
)

// SubscriptionRepositoryInterface — only the methods the service uses
type SubscriptionRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Subscription, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Subscription, error)
	CreateWithPayment(ctx context.Context, s *domain.Subscription, p *domain.Payment) error
	Update(ctx context.Context, s *domain.Subscription) error
	Delete(ctx context.Context, id int64) error
}

// PaymentRepositoryInterface — payments for the loose platform join
type PaymentRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Payment, error)
}

// CustomerReader verifies the customer exists before touching its rows.
type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}
