package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RomeshCG/Zentra/internal/domain"
)

// ErrSlotCapacity is returned when an assignment would exceed the plan
// manager's slots_total. The check runs inside the assignment transaction so
// two concurrent assignments cannot both land on the last slot.
var ErrSlotCapacity = errors.New("plan manager has no free slots")

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

type customerModel struct {
	ID            int64           `gorm:"column:id;primaryKey"`
	Name          string          `gorm:"column:name"`
	Email         string          `gorm:"column:email"`
	Phone         *string         `gorm:"column:phone"`
	Platform      *string         `gorm:"column:platform;index"`
	ManagerPlanID *int64          `gorm:"column:manager_plan_id;index"`
	RenewalDate   *time.Time      `gorm:"column:renewal_date;index"`
	EndDate       *time.Time      `gorm:"column:end_date"`
	Income        decimal.Decimal `gorm:"column:income;type:numeric"`
	Expense       decimal.Decimal `gorm:"column:expense;type:numeric"`
	Profit        decimal.Decimal `gorm:"column:profit;type:numeric"`
	IsActive      bool            `gorm:"column:is_active;index"`
	IsFlagged     bool            `gorm:"column:is_flagged"`
	Username      *string         `gorm:"column:username"`
	Notes         *string         `gorm:"column:notes"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (customerModel) TableName() string { return "customers" }

func toDomainCustomer(m customerModel) *domain.Customer {
	out := &domain.Customer{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		ManagerPlanID: m.ManagerPlanID,
		RenewalDate:   m.RenewalDate,
		EndDate:       m.EndDate,
		Income:        m.Income,
		Expense:       m.Expense,
		Profit:        m.Profit,
		IsActive:      m.IsActive,
		IsFlagged:     m.IsFlagged,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Phone != nil {
		out.Phone = *m.Phone
	}
	if m.Platform != nil {
		out.Platform = domain.Platform(*m.Platform)
	}
	if m.Username != nil {
		out.Username = *m.Username
	}
	if m.Notes != nil {
		out.Notes = *m.Notes
	}
	return out
}

func toCustomerModel(c *domain.Customer) customerModel {
	return customerModel{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         optString(c.Phone),
		Platform:      optString(string(c.Platform)),
		ManagerPlanID: c.ManagerPlanID,
		RenewalDate:   c.RenewalDate,
		EndDate:       c.EndDate,
		Income:        c.Income,
		Expense:       c.Expense,
		Profit:        c.Profit,
		IsActive:      c.IsActive,
		IsFlagged:     c.IsFlagged,
		Username:      optString(c.Username),
		Notes:         optString(c.Notes),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// CustomerFilter narrows List. Zero values mean "do not filter".
type CustomerFilter struct {
	Query       string
	ManagerID   int64
	Platform    string
	RenewalDate *time.Time
	DueBefore   *time.Time
	DueAfter    *time.Time
	ActiveOnly  bool
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	m := toCustomerModel(c)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCustomer(m)
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var m customerModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCustomer(m), nil
}

func (r *CustomerRepository) List(ctx context.Context, f CustomerFilter) ([]domain.Customer, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(phone) LIKE LOWER(?) OR LOWER(notes) LIKE LOWER(?)",
			like, like, like, like)
	}
	if f.ManagerID != 0 {
		q = q.Where("manager_plan_id = ?", f.ManagerID)
	}
	if f.Platform != "" {
		q = q.Where("LOWER(platform) = LOWER(?)", f.Platform)
	}
	if f.RenewalDate != nil {
		day := f.RenewalDate.Truncate(24 * time.Hour)
		q = q.Where("renewal_date >= ? AND renewal_date < ?", day, day.AddDate(0, 0, 1))
	}
	if f.DueAfter != nil {
		q = q.Where("renewal_date >= ?", *f.DueAfter)
	}
	if f.DueBefore != nil {
		q = q.Where("renewal_date <= ?", *f.DueBefore)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var models []customerModel
	if tx := q.Find(&models); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Customer, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainCustomer(m))
	}
	return out, nil
}

func (r *CustomerRepository) ListByManager(ctx context.Context, managerID int64) ([]domain.Customer, error) {
	return r.List(ctx, CustomerFilter{ManagerID: managerID})
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	m := toCustomerModel(c)
	tx := r.db.WithContext(ctx).Model(&customerModel{ID: c.ID}).
		Select("*").Omit("id", "created_at").Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	updated, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *updated
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&customerModel{}, id).Error
}

func (r *CustomerRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).Model(&customerModel{ID: id}).
		Update("is_active", active).Error
}

func (r *CustomerRepository) SetFlagged(ctx context.Context, id int64, flagged bool) error {
	return r.db.WithContext(ctx).Model(&customerModel{ID: id}).
		Update("is_flagged", flagged).Error
}

func (r *CustomerRepository) CountActiveByManager(ctx context.Context, managerID int64) (int, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&customerModel{}).
		Where("manager_plan_id = ? AND is_active = ?", managerID, true).
		Count(&count)
	return int(count), tx.Error
}

// CountActiveGroupedByManager returns active-customer counts keyed by plan
// manager id, for list views that annotate every manager in one query.
func (r *CustomerRepository) CountActiveGroupedByManager(ctx context.Context) (map[int64]int, error) {
	type row struct {
		ManagerPlanID int64
		Cnt           int
	}
	var rows []row
	tx := r.db.WithContext(ctx).Model(&customerModel{}).
		Select("manager_plan_id, COUNT(*) AS cnt").
		Where("manager_plan_id IS NOT NULL AND is_active = ?", true).
		Group("manager_plan_id").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make(map[int64]int, len(rows))
	for _, r := range rows {
		out[r.ManagerPlanID] = r.Cnt
	}
	return out, nil
}

// AssignWithLedger creates the customer and its opening ledger rows in one
// transaction. When slotsTotal > 0 the active occupant count is re-checked
// inside the transaction and the whole assignment rolls back on overflow.
func (r *CustomerRepository) AssignWithLedger(ctx context.Context, c *domain.Customer, rows []domain.CustomerSubscriptionMonth, slotsTotal int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if slotsTotal > 0 && c.ManagerPlanID != nil {
			var occupied int64
			if err := tx.Model(&customerModel{}).
				Where("manager_plan_id = ? AND is_active = ?", *c.ManagerPlanID, true).
				Count(&occupied).Error; err != nil {
				return err
			}
			if int(occupied) >= slotsTotal {
				return ErrSlotCapacity
			}
		}

		m := toCustomerModel(c)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*c = *toDomainCustomer(m)

		for i := range rows {
			rows[i].CustomerID = c.ID
			lm := toLedgerModel(&rows[i])
			if err := tx.Create(&lm).Error; err != nil {
				return err
			}
			rows[i] = toDomainLedger(lm)
		}
		return nil
	})
}

// RenewWithLedger updates the customer's renewal snapshot and appends the
// new cycle's ledger rows atomically.
func (r *CustomerRepository) RenewWithLedger(ctx context.Context, c *domain.Customer, rows []domain.CustomerSubscriptionMonth) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toCustomerModel(c)
		if err := tx.Model(&customerModel{ID: c.ID}).
			Select("renewal_date", "end_date", "income", "expense", "profit", "is_active").
			Updates(&m).Error; err != nil {
			return err
		}

		for i := range rows {
			rows[i].CustomerID = c.ID
			lm := toLedgerModel(&rows[i])
			if err := tx.Create(&lm).Error; err != nil {
				return err
			}
			rows[i] = toDomainLedger(lm)
		}

		updated, err := getCustomerTx(tx, c.ID)
		if err != nil {
			return err
		}
		*c = *updated
		return nil
	})
}

func getCustomerTx(tx *gorm.DB, id int64) (*domain.Customer, error) {
	var m customerModel
	if err := tx.First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainCustomer(m), nil
}
