package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RomeshCG/Zentra/internal/domain"
)

type PlanManagerRepository struct {
	db *gorm.DB
}

func NewPlanManagerRepository(db *gorm.DB) *PlanManagerRepository {
	return &PlanManagerRepository{db: db}
}

type planManagerModel struct {
	ID            int64            `gorm:"column:id;primaryKey"`
	Username      string           `gorm:"column:username"`
	DisplayName   *string          `gorm:"column:display_name"`
	Email         string           `gorm:"column:email"`
	Phone         *string          `gorm:"column:phone"`
	Platform      string           `gorm:"column:platform;index"`
	MonthlyCost   *decimal.Decimal `gorm:"column:monthly_cost;type:numeric"`
	SlotsTotal    int              `gorm:"column:slots_total"`
	RenewalDate   *time.Time       `gorm:"column:renewal_date"`
	RenewalPeriod *string          `gorm:"column:renewal_period"`
	IsActive      bool             `gorm:"column:is_active"`
	BankCard      *string          `gorm:"column:bank_card"`
	Address       *string          `gorm:"column:address"`
	Notes         *string          `gorm:"column:notes"`
	CreatedAt     time.Time        `gorm:"column:created_at"`
	UpdatedAt     time.Time        `gorm:"column:updated_at"`
}

func (planManagerModel) TableName() string { return "plan_managers" }

type planManagerHistoryModel struct {
	ID            int64           `gorm:"column:id;primaryKey"`
	PlanManagerID int64           `gorm:"column:plan_manager_id;index"`
	Month         time.Time       `gorm:"column:month"`
	Expense       decimal.Decimal `gorm:"column:expense;type:numeric"`
	Profit        decimal.Decimal `gorm:"column:profit;type:numeric"`
	Notes         *string         `gorm:"column:notes"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
}

func (planManagerHistoryModel) TableName() string { return "plan_manager_financial_history" }

func toDomainPlanManager(m planManagerModel) *domain.PlanManager {
	out := &domain.PlanManager{
		ID:          m.ID,
		Username:    m.Username,
		Email:       m.Email,
		Platform:    domain.Platform(m.Platform),
		MonthlyCost: m.MonthlyCost,
		SlotsTotal:  m.SlotsTotal,
		RenewalDate: m.RenewalDate,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.DisplayName != nil {
		out.DisplayName = *m.DisplayName
	}
	if m.Phone != nil {
		out.Phone = *m.Phone
	}
	if m.RenewalPeriod != nil {
		out.RenewalPeriod = domain.RenewalPeriod(*m.RenewalPeriod)
	}
	if m.BankCard != nil {
		out.BankCard = *m.BankCard
	}
	if m.Address != nil {
		out.Address = *m.Address
	}
	if m.Notes != nil {
		out.Notes = *m.Notes
	}
	return out
}

func toPlanManagerModel(p *domain.PlanManager) planManagerModel {
	return planManagerModel{
		ID:            p.ID,
		Username:      p.Username,
		DisplayName:   optString(p.DisplayName),
		Email:         p.Email,
		Phone:         optString(p.Phone),
		Platform:      string(p.Platform),
		MonthlyCost:   p.MonthlyCost,
		SlotsTotal:    p.SlotsTotal,
		RenewalDate:   p.RenewalDate,
		RenewalPeriod: optString(string(p.RenewalPeriod)),
		IsActive:      p.IsActive,
		BankCard:      optString(p.BankCard),
		Address:       optString(p.Address),
		Notes:         optString(p.Notes),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toDomainPlanManagerHistory(m planManagerHistoryModel) domain.PlanManagerFinancialHistory {
	out := domain.PlanManagerFinancialHistory{
		ID:            m.ID,
		PlanManagerID: m.PlanManagerID,
		Month:         m.Month,
		Expense:       m.Expense,
		Profit:        m.Profit,
		CreatedAt:     m.CreatedAt,
	}
	if m.Notes != nil {
		out.Notes = *m.Notes
	}
	return out
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *PlanManagerRepository) Create(ctx context.Context, p *domain.PlanManager) error {
	m := toPlanManagerModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPlanManager(m)
	return nil
}

func (r *PlanManagerRepository) GetByID(ctx context.Context, id int64) (*domain.PlanManager, error) {
	var m planManagerModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPlanManager(m), nil
}

// List returns managers newest first, optionally narrowed to one platform.
func (r *PlanManagerRepository) List(ctx context.Context, platform string) ([]domain.PlanManager, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if platform != "" {
		q = q.Where("LOWER(platform) = LOWER(?)", platform)
	}

	var models []planManagerModel
	if tx := q.Find(&models); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.PlanManager, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainPlanManager(m))
	}
	return out, nil
}

func (r *PlanManagerRepository) Update(ctx context.Context, p *domain.PlanManager) error {
	m := toPlanManagerModel(p)
	tx := r.db.WithContext(ctx).Model(&planManagerModel{ID: p.ID}).
		Select("*").Omit("id", "created_at").Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	updated, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = *updated
	return nil
}

func (r *PlanManagerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&planManagerModel{}, id).Error
}

// RenewWithHistory advances the manager's renewal date and appends the
// monthly financial snapshot in a single transaction, so the date can never
// move without its matching ledger row.
func (r *PlanManagerRepository) RenewWithHistory(ctx context.Context, p *domain.PlanManager, h *domain.PlanManagerFinancialHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&planManagerModel{ID: p.ID}).
			Update("renewal_date", p.RenewalDate).Error; err != nil {
			return err
		}

		hm := planManagerHistoryModel{
			PlanManagerID: h.PlanManagerID,
			Month:         h.Month,
			Expense:       h.Expense,
			Profit:        h.Profit,
			Notes:         optString(h.Notes),
		}
		if err := tx.Create(&hm).Error; err != nil {
			return err
		}
		*h = toDomainPlanManagerHistory(hm)
		return nil
	})
}

// HistoryByManager returns the financial snapshots, newest month first.
func (r *PlanManagerRepository) HistoryByManager(ctx context.Context, managerID int64) ([]domain.PlanManagerFinancialHistory, error) {
	var models []planManagerHistoryModel
	tx := r.db.WithContext(ctx).
		Where("plan_manager_id = ?", managerID).
		Order("month DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.PlanManagerFinancialHistory, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainPlanManagerHistory(m))
	}
	return out, nil
}
