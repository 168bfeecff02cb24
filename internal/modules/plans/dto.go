package plans

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/RomeshCG/Zentra/internal/domain"
)

type CreateRequest struct {
	Username      string  `json:"username" binding:"required"`
	DisplayName   string  `json:"display_name"`
	Email         string  `json:"email" binding:"required,email"`
	Phone         string  `json:"phone"`
	Platform      string  `json:"platform" binding:"required"`
	MonthlyCost   *string `json:"monthly_cost"`
	SlotsTotal    *int    `json:"slots_total"`
	RenewalDate   *string `json:"renewal_date"`
	RenewalPeriod string  `json:"renewal_period"`
	BankCard      string  `json:"bank_card"`
	Address       string  `json:"address"`
	Notes         string  `json:"notes"`
}

type UpdateRequest struct {
	Username      *string `json:"username"`
	DisplayName   *string `json:"display_name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Platform      *string `json:"platform"`
	MonthlyCost   *string `json:"monthly_cost"`
	SlotsTotal    *int    `json:"slots_total"`
	RenewalDate   *string `json:"renewal_date"`
	RenewalPeriod *string `json:"renewal_period"`
	IsActive      *bool   `json:"is_active"`
	BankCard      *string `json:"bank_card"`
	Address       *string `json:"address"`
	Notes         *string `json:"notes"`
}

type RenewRequest struct {
	Notes string `json:"notes"`
}

// ListItem is a plan manager annotated with its slot occupancy.
type ListItem struct {
	domain.PlanManager
	ActiveCustomers int    `json:"active_customers"`
	TotalSlots      int    `json:"total_slots"`
	EmptySlots      int    `json:"empty_slots"`
	SlotsRemaining  int    `json:"slots_remaining"`
	SlotsLabel      string `json:"slots_label"`
}

// DetailResponse pairs the manager with its occupants and capacity figures.
// SlotsRemaining here follows the configured slots_total, while TotalSlots
// and EmptySlots follow the fixed per-platform family plan sizes.
type DetailResponse struct {
	Manager         domain.PlanManager `json:"manager"`
	Customers       []domain.Customer  `json:"customers"`
	ActiveCustomers int                `json:"active_customers"`
	TotalSlots      int                `json:"total_slots"`
	EmptySlots      int                `json:"empty_slots"`
	SlotsRemaining  int                `json:"slots_remaining"`
}

type RenewResult struct {
	Manager domain.PlanManager                 `json:"manager"`
	History domain.PlanManagerFinancialHistory `json:"history"`
}

type ListFilter struct {
	Platform string
	Sort     string
}

func parseMoney(s *string) (*decimal.Decimal, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
