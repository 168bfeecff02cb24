package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubscriptionStatus string

const (
	SubscriptionPaid    SubscriptionStatus = "Paid"
	SubscriptionExpired SubscriptionStatus = "Expired"
)

// Subscription links a customer to a purchased plan span ("1 month",
// "3 month", ...). Payments are associated loosely, by platform equality,
// not by foreign key.
type Subscription struct {
	ID         int64              `json:"id"`
	CustomerID int64              `json:"customer_id"`
	PlanType   string             `json:"plan_type"`
	StartDate  time.Time          `json:"start_date"`
	EndDate    time.Time          `json:"end_date"`
	Status     SubscriptionStatus `json:"status"`
	Platform   Platform           `json:"platform,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

type Payment struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Reference     string          `json:"reference,omitempty"`
	PaidOn        time.Time       `json:"paid_on"`
	Platform      *Platform       `json:"platform,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
