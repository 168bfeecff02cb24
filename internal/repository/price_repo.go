package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RomeshCG/Zentra/internal/domain"
)

type PriceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

type priceModel struct {
	ID            int64           `gorm:"column:id;primaryKey"`
	Platform      string          `gorm:"column:platform;index"`
	EffectiveFrom time.Time       `gorm:"column:effective_from"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
}

func (priceModel) TableName() string { return "platform_price_history" }

func toDomainPrice(m priceModel) domain.PlatformPrice {
	return domain.PlatformPrice{
		ID:            m.ID,
		Platform:      domain.Platform(m.Platform),
		EffectiveFrom: m.EffectiveFrom,
		Price:         m.Price,
		CreatedAt:     m.CreatedAt,
	}
}

func (r *PriceRepository) Create(ctx context.Context, p *domain.PlatformPrice) error {
	m := priceModel{
		Platform:      string(p.Platform),
		EffectiveFrom: p.EffectiveFrom,
		Price:         p.Price,
	}
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*p = toDomainPrice(m)
	return nil
}

// ListAll returns the whole price history ordered oldest effective date
// first, which is the order the accrual walk expects.
func (r *PriceRepository) ListAll(ctx context.Context) ([]domain.PlatformPrice, error) {
	var models []priceModel
	tx := r.db.WithContext(ctx).Order("effective_from ASC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.PlatformPrice, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainPrice(m))
	}
	return out, nil
}

func (r *PriceRepository) ListByPlatform(ctx context.Context, platform string) ([]domain.PlatformPrice, error) {
	var models []priceModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(platform) = LOWER(?)", platform).
		Order("effective_from ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.PlatformPrice, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainPrice(m))
	}
	return out, nil
}
