package subscriptions

import (
	"github.com/shopspring/decimal"

	"github.com/RomeshCG/Zentra/internal/domain"
)

type CreateRequest struct {
	StartDate      string  `json:"start_date" binding:"required"`
	DurationMonths int     `json:"duration_months" binding:"required,min=1"`
	Amount         *string `json:"amount"`
	Platform       string  `json:"platform"`
}

type UpdateRequest struct {
	PlanType  *string `json:"plan_type"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Status    *string `json:"status"`
	Platform  *string `json:"platform"`
}

type CreatePaymentRequest struct {
	Amount        string `json:"amount" binding:"required"`
	PaymentMethod string `json:"payment_method"`
	PaidOn        string `json:"paid_on"`
	Platform      string `json:"platform"`
}

// ListItem pairs a subscription with the payment amount matched to it. The
// match is by platform equality, not a foreign key, so it is best-effort:
// a payment on the same platform, or one with no platform recorded.
type ListItem struct {
	domain.Subscription
	PaidAmount *decimal.Decimal `json:"paid_amount,omitempty"`
}

type CreateResult struct {
	Subscription domain.Subscription `json:"subscription"`
	Payment      *domain.Payment     `json:"payment,omitempty"`
}
