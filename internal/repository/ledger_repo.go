package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RomeshCG/Zentra/internal/domain"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

type ledgerModel struct {
	ID         int64           `gorm:"column:id;primaryKey"`
	CustomerID int64           `gorm:"column:customer_id;uniqueIndex:uniq_customer_month"`
	Month      time.Time       `gorm:"column:month;uniqueIndex:uniq_customer_month"`
	Income     decimal.Decimal `gorm:"column:income;type:numeric"`
	Expense    decimal.Decimal `gorm:"column:expense;type:numeric"`
	Profit     decimal.Decimal `gorm:"column:profit;type:numeric"`
	PriceUsed  decimal.Decimal `gorm:"column:price_used;type:numeric"`
	IsTrial    bool            `gorm:"column:is_trial"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
}

func (ledgerModel) TableName() string { return "customer_subscription_months" }

func toDomainLedger(m ledgerModel) domain.CustomerSubscriptionMonth {
	return domain.CustomerSubscriptionMonth{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Month:      m.Month,
		Income:     m.Income,
		Expense:    m.Expense,
		Profit:     m.Profit,
		PriceUsed:  m.PriceUsed,
		IsTrial:    m.IsTrial,
		CreatedAt:  m.CreatedAt,
	}
}

func toLedgerModel(l *domain.CustomerSubscriptionMonth) ledgerModel {
	return ledgerModel{
		ID:         l.ID,
		CustomerID: l.CustomerID,
		Month:      l.Month,
		Income:     l.Income,
		Expense:    l.Expense,
		Profit:     l.Profit,
		PriceUsed:  l.PriceUsed,
		IsTrial:    l.IsTrial,
	}
}

func (r *LedgerRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.CustomerSubscriptionMonth, error) {
	var models []ledgerModel
	tx := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("month ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.CustomerSubscriptionMonth, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainLedger(m))
	}
	return out, nil
}

// LedgerTotals aggregates the append-only ledger over an optional month
// range. A nil bound leaves that end open.
type LedgerTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Profit  decimal.Decimal `json:"profit"`
}

func (r *LedgerRepository) SumTotals(ctx context.Context, from, to *time.Time) (LedgerTotals, error) {
	type row struct {
		Income  decimal.NullDecimal
		Expense decimal.NullDecimal
		Profit  decimal.NullDecimal
	}

	q := r.db.WithContext(ctx).Model(&ledgerModel{}).
		Select("SUM(income) AS income, SUM(expense) AS expense, SUM(profit) AS profit")
	if from != nil {
		q = q.Where("month >= ?", *from)
	}
	if to != nil {
		q = q.Where("month <= ?", *to)
	}

	var agg row
	if tx := q.Scan(&agg); tx.Error != nil {
		return LedgerTotals{}, tx.Error
	}

	return LedgerTotals{
		Income:  agg.Income.Decimal,
		Expense: agg.Expense.Decimal,
		Profit:  agg.Profit.Decimal,
	}, nil
}

// SumByMonth returns per-month totals ordered oldest first, for the
// income/expense report series.
func (r *LedgerRepository) SumByMonth(ctx context.Context, from, to *time.Time) (map[time.Time]LedgerTotals, []time.Time, error) {
	var models []ledgerModel
	q := r.db.WithContext(ctx).Order("month ASC")
	if from != nil {
		q = q.Where("month >= ?", *from)
	}
	if to != nil {
		q = q.Where("month <= ?", *to)
	}
	if tx := q.Find(&models); tx.Error != nil {
		return nil, nil, tx.Error
	}

	totals := make(map[time.Time]LedgerTotals)
	var order []time.Time
	for _, m := range models {
		month := time.Date(m.Month.Year(), m.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
		t, seen := totals[month]
		if !seen {
			order = append(order, month)
		}
		t.Income = t.Income.Add(m.Income)
		t.Expense = t.Expense.Add(m.Expense)
		t.Profit = t.Profit.Add(m.Profit)
		totals[month] = t
	}
	return totals, order, nil
}
