// Package accrual holds the renewal date arithmetic and the per-month
// income/expense/profit ledger computation. Everything here is pure:
// callers fetch the inputs, services persist the outputs.
package accrual

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RomeshCG/Zentra/internal/domain"
)

// TrialWindowDays is how long after creation a plan manager still counts as
// "new" for trial pricing. The boundary is strict: exactly 31 days is no
// longer eligible.
const TrialWindowDays = 31

// AdvanceRenewalDate adds months calendar months to current. When the
// day-of-month does not exist in the target month the result clamps to that
// month's last day: Jan 31 + 1 month is Feb 28 (29 in leap years), never
// Mar 3.
func AdvanceRenewalDate(current time.Time, months int) time.Time {
	y, m, d := current.Date()
	candidate := time.Date(y, m+time.Month(months), d, 0, 0, 0, 0, current.Location())
	if candidate.Day() != d {
		// Day overflowed into the following month; day zero of the month
		// after the target is the target month's last day.
		candidate = time.Date(y, m+time.Month(months)+1, 0, 0, 0, 0, 0, current.Location())
	}
	return candidate
}

// MonthsBetween enumerates the first-of-month date for every calendar month
// from start through end inclusive, ascending. Both ends are normalized to
// the 1st before comparing, so 2024-01-15..2024-03-20 yields Jan, Feb and
// Mar. A start after end yields nil.
func MonthsBetween(start, end time.Time) []time.Time {
	current := firstOfMonth(start)
	last := firstOfMonth(end)

	var months []time.Time
	for !current.After(last) {
		months = append(months, current)
		current = current.AddDate(0, 1, 0)
	}
	return months
}

// PriceInEffect resolves the platform price for a month: the latest history
// row with EffectiveFrom on or before the first of that month, falling back
// to the earliest row when none qualifies. The second return is false when
// the history is empty; callers substitute the plan manager's configured
// monthly cost in that case.
func PriceInEffect(month time.Time, history []domain.PlatformPrice) (decimal.Decimal, bool) {
	if len(history) == 0 {
		return decimal.Zero, false
	}

	rows := make([]domain.PlatformPrice, len(history))
	copy(rows, history)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].EffectiveFrom.Before(rows[j].EffectiveFrom)
	})

	monthStart := firstOfMonth(month)
	price := rows[0].Price
	for _, row := range rows {
		if row.EffectiveFrom.After(monthStart) {
			break
		}
		price = row.Price
	}
	return price, true
}

// IsTrialEligible reports whether the first month of a span qualifies for
// trial pricing: YouTube platform and a manager created less than
// TrialWindowDays before now.
func IsTrialEligible(platformIsYouTube bool, managerCreatedAt, now time.Time) bool {
	if !platformIsYouTube {
		return false
	}
	age := now.Sub(managerCreatedAt)
	return age < time.Duration(TrialWindowDays)*24*time.Hour
}

// BuildMonthlyLedger produces the append-only ledger rows for a customer's
// subscription span: one row per month from the renewal date through the
// end date (a single month when no end date is set), income split evenly
// across the span, expense taken from the price history (or the manager's
// monthly cost) except for a trial first month where expense is zero.
func BuildMonthlyLedger(customer domain.Customer, manager domain.PlanManager, history []domain.PlatformPrice, now time.Time) []domain.CustomerSubscriptionMonth {
	if customer.RenewalDate == nil {
		return nil
	}
	start := *customer.RenewalDate
	end := start
	if customer.EndDate != nil {
		end = *customer.EndDate
	}

	months := MonthsBetween(start, end)
	if len(months) == 0 {
		return nil
	}

	perMonthIncome := customer.Income.Div(decimal.NewFromInt(int64(len(months))))
	trial := IsTrialEligible(manager.Platform.IsYouTube(), manager.CreatedAt, now)

	rows := make([]domain.CustomerSubscriptionMonth, 0, len(months))
	for i, month := range months {
		priceUsed, ok := PriceInEffect(month, history)
		if !ok {
			if manager.MonthlyCost != nil {
				priceUsed = *manager.MonthlyCost
			} else {
				priceUsed = decimal.Zero
			}
		}

		expense := priceUsed
		isTrialMonth := trial && i == 0
		if isTrialMonth {
			expense = decimal.Zero
		}

		rows = append(rows, domain.CustomerSubscriptionMonth{
			CustomerID: customer.ID,
			Month:      month,
			Income:     perMonthIncome,
			Expense:    expense,
			Profit:     perMonthIncome.Sub(expense),
			PriceUsed:  priceUsed,
			IsTrial:    isTrialMonth,
		})
	}
	return rows
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
