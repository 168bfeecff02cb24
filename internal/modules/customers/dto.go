package customers

import (
	"github.com/RomeshCG/Zentra/internal/domain"
)

// AssignRequest is the customer form plus the span length. ManagerID comes
// from the URL.
type AssignRequest struct {
	FormInput
	EndDate string `json:"end_date"`
}

type UpdateRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	RenewalDate *string `json:"renewal_date"`
	EndDate     *string `json:"end_date"`
	Income      *string `json:"income"`
	Expense     *string `json:"expense"`
	Profit      *string `json:"profit"`
	Username    *string `json:"username"`
	Notes       *string `json:"notes"`
}

type RenewRequest struct {
	Months  int     `json:"months" binding:"required,min=1"`
	Income  *string `json:"income"`
	Expense *string `json:"expense"`
}

type TransferRequest struct {
	PlanManagerID int64 `json:"plan_manager_id" binding:"required"`
}

type FlagRequest struct {
	Flagged bool `json:"flagged"`
}

type DeactivateRequest struct {
	Active bool `json:"active"`
}

// ListFilter mirrors the query params on GET /customers.
type ListFilter struct {
	Query       string
	ManagerID   int64
	Platform    string
	RenewalDate string
	DueThisWeek bool
}

// ListItem annotates a customer with its manager's display fields so list
// rows render without a second lookup.
type ListItem struct {
	domain.Customer
	ManagerName     string `json:"manager_name,omitempty"`
	ManagerPlatform string `json:"manager_platform,omitempty"`
	RenewalDueSoon  bool   `json:"renewal_due_soon"`
}

type DetailResponse struct {
	Customer domain.Customer                    `json:"customer"`
	Months   []domain.CustomerSubscriptionMonth `json:"months"`
}

type AssignResult struct {
	Customer domain.Customer                    `json:"customer"`
	Months   []domain.CustomerSubscriptionMonth `json:"months"`
}

type RenewResult struct {
	Customer domain.Customer                    `json:"customer"`
	Months   []domain.CustomerSubscriptionMonth `json:"months"`
}
