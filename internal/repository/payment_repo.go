package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RomeshCG/Zentra/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	m := toPaymentModel(p)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*p = toDomainPayment(m)
	return nil
}

// ListByCustomer returns payments newest first. Subscriptions match their
// payments loosely by platform, so callers get the full set and pair rows
// themselves.
func (r *PaymentRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Payment, error) {
	var models []paymentModel
	tx := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("paid_on DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Payment, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainPayment(m))
	}
	return out, nil
}
