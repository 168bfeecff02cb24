package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Platform string

const (
	PlatformSpotify Platform = "spotify"
	PlatformYouTube Platform = "youtube"
)

type RenewalPeriod string

const (
	RenewalMonthly RenewalPeriod = "monthly"
	RenewalYearly  RenewalPeriod = "yearly"
)

// NormalizePlatform lowercases free-form platform input so that
// "YouTube", "youtube" and "YOUTUBE" all map to the same stored value.
func NormalizePlatform(p string) Platform {
	return Platform(strings.ToLower(strings.TrimSpace(p)))
}

func (p Platform) IsYouTube() bool {
	return strings.EqualFold(string(p), "youtube") || strings.EqualFold(string(p), "yt")
}

func (p Platform) IsSpotify() bool {
	return strings.EqualFold(string(p), "spotify")
}

func (p Platform) Equals(other Platform) bool {
	return strings.EqualFold(string(p), string(other))
}

// PlanManager is a bulk-purchased streaming account with a fixed number of
// resellable slots. Customers occupy slots via Customer.ManagerPlanID.
type PlanManager struct {
	ID            int64            `json:"id"`
	Username      string           `json:"username" validate:"required"`
	DisplayName   string           `json:"display_name,omitempty"`
	Email         string           `json:"email" validate:"required,email"`
	Phone         string           `json:"phone,omitempty"`
	Platform      Platform         `json:"platform" validate:"required"`
	MonthlyCost   *decimal.Decimal `json:"monthly_cost,omitempty"`
	SlotsTotal    int              `json:"slots_total"`
	RenewalDate   *time.Time       `json:"renewal_date,omitempty"`
	RenewalPeriod RenewalPeriod    `json:"renewal_period,omitempty"`
	IsActive      bool             `json:"is_active"`
	BankCard      string           `json:"bank_card,omitempty"`
	Address       string           `json:"address,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// PlanManagerFinancialHistory is one append-only monthly snapshot recorded
// when a plan manager is marked renewed.
type PlanManagerFinancialHistory struct {
	ID            int64           `json:"id"`
	PlanManagerID int64           `json:"plan_manager_id"`
	Month         time.Time       `json:"month"`
	Expense       decimal.Decimal `json:"expense"`
	Profit        decimal.Decimal `json:"profit"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
