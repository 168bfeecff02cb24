package customers

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// FormInput is the raw customer form as submitted, all fields still
// strings. Validation happens before any parsing or persistence.
type FormInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	RenewalDate string `json:"renewal_date"`
	Income      string `json:"income"`
	Expense     string `json:"expense"`
	Profit      string `json:"profit"`
	Username    string `json:"username"`
	Notes       string `json:"notes"`
	Months      int    `json:"months"`
}

var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidateForm returns human-readable errors in form order. The wording is
// load-bearing: operators and their scripts match on these exact strings.
func ValidateForm(form FormInput) []string {
	var errs []string
	if strings.TrimSpace(form.Name) == "" {
		errs = append(errs, "Name is required.")
	}
	if strings.TrimSpace(form.Email) == "" {
		errs = append(errs, "Email is required.")
	} else if !emailShape.MatchString(form.Email) {
		errs = append(errs, "Email is invalid.")
	}
	if form.RenewalDate == "" {
		errs = append(errs, "Renewal Date is required.")
	}
	if !isNumber(form.Income) {
		errs = append(errs, "Income is required and must be a number.")
	}
	if !isNumber(form.Expense) {
		errs = append(errs, "Expense is required and must be a number.")
	}
	if !isNumber(form.Profit) {
		errs = append(errs, "Profit is required and must be a number.")
	}
	return errs
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	_, err := decimal.NewFromString(s)
	return err == nil
}
