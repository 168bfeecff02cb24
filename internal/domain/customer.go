package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is one end-user occupying a slot on a plan manager. Income,
// expense and profit are the current-cycle snapshot; the authoritative
// per-month figures live in CustomerSubscriptionMonth.
type Customer struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name" validate:"required"`
	Email         string          `json:"email" validate:"required,email"`
	Phone         string          `json:"phone,omitempty"`
	Platform      Platform        `json:"platform,omitempty"`
	ManagerPlanID *int64          `json:"manager_plan_id,omitempty"`
	RenewalDate   *time.Time      `json:"renewal_date,omitempty"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	Income        decimal.Decimal `json:"income"`
	Expense       decimal.Decimal `json:"expense"`
	Profit        decimal.Decimal `json:"profit"`
	IsActive      bool            `json:"is_active"`
	IsFlagged     bool            `json:"is_flagged"`
	Username      string          `json:"username,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CustomerSubscriptionMonth is one row of the append-only monthly ledger.
// Rows are created when a customer is assigned or marked renewed and are
// never mutated afterwards.
type CustomerSubscriptionMonth struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customer_id"`
	Month      time.Time       `json:"month"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Profit     decimal.Decimal `json:"profit"`
	PriceUsed  decimal.Decimal `json:"price_used"`
	IsTrial    bool            `json:"is_trial"`
	CreatedAt  time.Time       `json:"created_at"`
}
