package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RomeshCG/Zentra/internal/domain"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

type subscriptionModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	CustomerID int64     `gorm:"column:customer_id;index"`
	PlanType   string    `gorm:"column:plan_type"`
	StartDate  time.Time `gorm:"column:start_date"`
	EndDate    time.Time `gorm:"column:end_date"`
	Status     string    `gorm:"column:status"`
	Platform   *string   `gorm:"column:platform"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (subscriptionModel) TableName() string { return "subscriptions" }

type paymentModel struct {
	ID            int64           `gorm:"column:id;primaryKey"`
	CustomerID    int64           `gorm:"column:customer_id;index"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric"`
	PaymentMethod string          `gorm:"column:payment_method"`
	Reference     *string         `gorm:"column:reference"`
	PaidOn        time.Time       `gorm:"column:paid_on"`
	Platform      *string         `gorm:"column:platform"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainSubscription(m subscriptionModel) domain.Subscription {
	out := domain.Subscription{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		PlanType:   m.PlanType,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		Status:     domain.SubscriptionStatus(m.Status),
		CreatedAt:  m.CreatedAt,
	}
	if m.Platform != nil {
		out.Platform = domain.Platform(*m.Platform)
	}
	return out
}

func toSubscriptionModel(s *domain.Subscription) subscriptionModel {
	return subscriptionModel{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		PlanType:   s.PlanType,
		StartDate:  s.StartDate,
		EndDate:    s.EndDate,
		Status:     string(s.Status),
		Platform:   optString(string(s.Platform)),
	}
}

func toDomainPayment(m paymentModel) domain.Payment {
	out := domain.Payment{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		Amount:        m.Amount,
		PaymentMethod: m.PaymentMethod,
		PaidOn:        m.PaidOn,
		CreatedAt:     m.CreatedAt,
	}
	if m.Reference != nil {
		out.Reference = *m.Reference
	}
	if m.Platform != nil {
		p := domain.Platform(*m.Platform)
		out.Platform = &p
	}
	return out
}

func toPaymentModel(p *domain.Payment) paymentModel {
	m := paymentModel{
		ID:            p.ID,
		CustomerID:    p.CustomerID,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		Reference:     optString(p.Reference),
		PaidOn:        p.PaidOn,
	}
	if p.Platform != nil {
		s := string(*p.Platform)
		m.Platform = &s
	}
	return m
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	var m subscriptionModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	s := toDomainSubscription(m)
	return &s, nil
}

func (r *SubscriptionRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Subscription, error) {
	var models []subscriptionModel
	tx := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("start_date DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Subscription, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainSubscription(m))
	}
	return out, nil
}

// CreateWithPayment inserts the subscription and its payment together so a
// paid span can never exist without its payment record.
func (r *SubscriptionRepository) CreateWithPayment(ctx context.Context, s *domain.Subscription, p *domain.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sm := toSubscriptionModel(s)
		if err := tx.Create(&sm).Error; err != nil {
			return err
		}
		*s = toDomainSubscription(sm)

		if p != nil {
			p.CustomerID = s.CustomerID
			pm := toPaymentModel(p)
			if err := tx.Create(&pm).Error; err != nil {
				return err
			}
			*p = toDomainPayment(pm)
		}
		return nil
	})
}

func (r *SubscriptionRepository) Update(ctx context.Context, s *domain.Subscription) error {
	m := toSubscriptionModel(s)
	tx := r.db.WithContext(ctx).Model(&subscriptionModel{ID: s.ID}).
		Select("*").Omit("id", "created_at").Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	updated, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = *updated
	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&subscriptionModel{}, id).Error
}
