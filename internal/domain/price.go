package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlatformPrice is one row of the time-versioned price list. The price in
// effect for a month is the latest row with EffectiveFrom on or before the
// first of that month.
type PlatformPrice struct {
	ID            int64           `json:"id"`
	Platform      Platform        `json:"platform"`
	EffectiveFrom time.Time       `json:"effective_from"`
	Price         decimal.Decimal `json:"price"`
	CreatedAt     time.Time       `json:"created_at"`
}
