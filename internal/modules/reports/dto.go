package reports

import (
	"github.com/shopspring/decimal"
)

type MonthTotals struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Profit  decimal.Decimal `json:"profit"`
}

type ProfitExpensesResponse struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	ByMonth      []MonthTotals   `json:"by_month"`
}

// ManagerOverview is one row of the per-platform grouping: a manager with
// its occupancy, the fixed family-plan slot figures and a renewal bucket.
type ManagerOverview struct {
	ManagerID       int64  `json:"manager_id"`
	DisplayName     string `json:"display_name"`
	Platform        string `json:"platform"`
	ActiveCustomers int    `json:"active_customers"`
	TotalSlots      int    `json:"total_slots"`
	EmptySlots      int    `json:"empty_slots"`
	RenewalStatus   string `json:"renewal_status"`
}

type PlatformOverview struct {
	Platform        string            `json:"platform"`
	Accounts        int               `json:"accounts"`
	ActiveCustomers int               `json:"active_customers"`
	TotalSlots      int               `json:"total_slots"`
	EmptySlots      int               `json:"empty_slots"`
	Utilization     float64           `json:"utilization"`
	Managers        []ManagerOverview `json:"managers"`
}

type OverviewResponse struct {
	Platforms []PlatformOverview `json:"platforms"`
	Overdue   int                `json:"overdue"`
	DueSoon   int                `json:"due_soon"`
}

// Renewal status buckets, most urgent first.
const (
	StatusOverdue  = "overdue"
	StatusDue7     = "due_within_7_days"
	StatusDue30    = "due_within_30_days"
	StatusActive   = "active"
	StatusInactive = "inactive"
)
