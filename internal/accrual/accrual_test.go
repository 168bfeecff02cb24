package accrual

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RomeshCG/Zentra/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvanceRenewalDate(t *testing.T) {
	tests := []struct {
		name    string
		current time.Time
		months  int
		want    time.Time
	}{
		{"plain month", date(2024, time.January, 15), 1, date(2024, time.February, 15)},
		{"several months", date(2024, time.January, 15), 3, date(2024, time.April, 15)},
		{"leap year clamp", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"non leap clamp", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"clamp to april", date(2024, time.March, 31), 1, date(2024, time.April, 30)},
		{"year rollover", date(2024, time.December, 15), 1, date(2025, time.January, 15)},
		{"twelve months", date(2024, time.March, 10), 12, date(2025, time.March, 10)},
		{"negative months", date(2024, time.February, 15), -1, date(2024, time.January, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdvanceRenewalDate(tt.current, tt.months))
		})
	}
}

func TestAdvanceRenewalDateRoundTrips(t *testing.T) {
	// For any day <= 28 adding and removing a month returns the original date.
	for day := 1; day <= 28; day++ {
		start := date(2024, time.January, day)
		assert.Equal(t, start, AdvanceRenewalDate(AdvanceRenewalDate(start, 1), -1))
	}
}

func TestMonthsBetween(t *testing.T) {
	got := MonthsBetween(date(2024, time.January, 15), date(2024, time.March, 20))
	require.Len(t, got, 3)
	assert.Equal(t, date(2024, time.January, 1), got[0])
	assert.Equal(t, date(2024, time.February, 1), got[1])
	assert.Equal(t, date(2024, time.March, 1), got[2])
}

func TestMonthsBetweenSingleMonth(t *testing.T) {
	got := MonthsBetween(date(2024, time.May, 3), date(2024, time.May, 28))
	require.Len(t, got, 1)
	assert.Equal(t, date(2024, time.May, 1), got[0])
}

func TestMonthsBetweenStartAfterEnd(t *testing.T) {
	assert.Empty(t, MonthsBetween(date(2024, time.June, 1), date(2024, time.May, 1)))
}

func TestMonthsBetweenYearBoundary(t *testing.T) {
	got := MonthsBetween(date(2023, time.November, 30), date(2024, time.February, 1))
	require.Len(t, got, 4)
	assert.Equal(t, date(2023, time.November, 1), got[0])
	assert.Equal(t, date(2024, time.February, 1), got[3])
}

func priceRow(platform domain.Platform, from time.Time, price string) domain.PlatformPrice {
	return domain.PlatformPrice{
		Platform:      platform,
		EffectiveFrom: from,
		Price:         decimal.RequireFromString(price),
	}
}

func TestPriceInEffect(t *testing.T) {
	history := []domain.PlatformPrice{
		priceRow(domain.PlatformYouTube, date(2024, time.January, 1), "500"),
		priceRow(domain.PlatformYouTube, date(2024, time.April, 1), "550"),
	}

	price, ok := PriceInEffect(date(2024, time.February, 10), history)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("500")))

	price, ok = PriceInEffect(date(2024, time.April, 1), history)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("550")))

	price, ok = PriceInEffect(date(2024, time.June, 1), history)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("550")))
}

func TestPriceInEffectFallsBackToFirstRow(t *testing.T) {
	history := []domain.PlatformPrice{
		priceRow(domain.PlatformSpotify, date(2024, time.June, 1), "400"),
	}

	// Month predates every row: the first row's price still applies.
	price, ok := PriceInEffect(date(2024, time.January, 1), history)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("400")))
}

func TestPriceInEffectEmptyHistory(t *testing.T) {
	_, ok := PriceInEffect(date(2024, time.January, 1), nil)
	assert.False(t, ok)
}

func TestPriceInEffectUnsortedHistory(t *testing.T) {
	history := []domain.PlatformPrice{
		priceRow(domain.PlatformYouTube, date(2024, time.April, 1), "550"),
		priceRow(domain.PlatformYouTube, date(2024, time.January, 1), "500"),
	}
	price, ok := PriceInEffect(date(2024, time.February, 1), history)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("500")))
}

func TestIsTrialEligible(t *testing.T) {
	now := date(2024, time.June, 30)

	assert.True(t, IsTrialEligible(true, now.AddDate(0, 0, -30), now))
	assert.False(t, IsTrialEligible(true, now.AddDate(0, 0, -31), now))
	assert.True(t, IsTrialEligible(true, now.AddDate(0, 0, -1), now))
	assert.False(t, IsTrialEligible(false, now.AddDate(0, 0, -5), now))
}

func ptrTime(t time.Time) *time.Time { return &t }

func ptrDecimal(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestBuildMonthlyLedgerSingleMonth(t *testing.T) {
	now := date(2024, time.June, 1)
	manager := domain.PlanManager{
		ID:          1,
		Platform:    domain.PlatformSpotify,
		MonthlyCost: ptrDecimal("400"),
		CreatedAt:   date(2023, time.January, 1),
	}
	customer := domain.Customer{
		ID:          7,
		RenewalDate: ptrTime(date(2024, time.June, 15)),
		Income:      decimal.RequireFromString("600"),
	}

	rows := BuildMonthlyLedger(customer, manager, nil, now)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0].CustomerID)
	assert.Equal(t, date(2024, time.June, 1), rows[0].Month)
	assert.True(t, rows[0].Income.Equal(decimal.RequireFromString("600")))
	assert.True(t, rows[0].Expense.Equal(decimal.RequireFromString("400")))
	assert.True(t, rows[0].Profit.Equal(decimal.RequireFromString("200")))
	assert.False(t, rows[0].IsTrial)
}

func TestBuildMonthlyLedgerIncomeConservation(t *testing.T) {
	now := date(2024, time.June, 1)
	manager := domain.PlanManager{
		Platform:    domain.PlatformSpotify,
		MonthlyCost: ptrDecimal("400"),
		CreatedAt:   date(2023, time.January, 1),
	}

	for spanMonths := 1; spanMonths <= 12; spanMonths++ {
		customer := domain.Customer{
			RenewalDate: ptrTime(date(2024, time.January, 10)),
			EndDate:     ptrTime(date(2024, time.January, 10).AddDate(0, spanMonths-1, 0)),
			Income:      decimal.RequireFromString("1000"),
		}
		rows := BuildMonthlyLedger(customer, manager, nil, now)
		require.Len(t, rows, spanMonths)

		total := decimal.Zero
		for _, r := range rows {
			total = total.Add(r.Income)
		}
		diff := total.Sub(customer.Income).Abs()
		assert.True(t, diff.LessThan(decimal.RequireFromString("0.01")),
			"span %d months: income drifted by %s", spanMonths, diff)
	}
}

func TestBuildMonthlyLedgerTrialFirstMonthOnly(t *testing.T) {
	now := date(2024, time.June, 1)
	manager := domain.PlanManager{
		Platform:    domain.PlatformYouTube,
		MonthlyCost: ptrDecimal("500"),
		CreatedAt:   now.AddDate(0, 0, -10), // manager is new
	}
	customer := domain.Customer{
		RenewalDate: ptrTime(date(2024, time.June, 1)),
		EndDate:     ptrTime(date(2024, time.August, 1)),
		Income:      decimal.RequireFromString("1500"),
	}

	rows := BuildMonthlyLedger(customer, manager, nil, now)
	require.Len(t, rows, 3)

	assert.True(t, rows[0].IsTrial)
	assert.True(t, rows[0].Expense.IsZero())
	// PriceUsed records what the month would have cost even when waived.
	assert.True(t, rows[0].PriceUsed.Equal(decimal.RequireFromString("500")))

	for _, r := range rows[1:] {
		assert.False(t, r.IsTrial)
		assert.True(t, r.Expense.Equal(decimal.RequireFromString("500")))
	}
}

func TestBuildMonthlyLedgerUsesPriceHistory(t *testing.T) {
	now := date(2024, time.June, 1)
	manager := domain.PlanManager{
		Platform:    domain.PlatformSpotify,
		MonthlyCost: ptrDecimal("999"),
		CreatedAt:   date(2023, time.January, 1),
	}
	customer := domain.Customer{
		RenewalDate: ptrTime(date(2024, time.January, 1)),
		EndDate:     ptrTime(date(2024, time.February, 1)),
		Income:      decimal.RequireFromString("800"),
	}
	history := []domain.PlatformPrice{
		priceRow(domain.PlatformSpotify, date(2023, time.December, 1), "400"),
		priceRow(domain.PlatformSpotify, date(2024, time.February, 1), "450"),
	}

	rows := BuildMonthlyLedger(customer, manager, history, now)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Expense.Equal(decimal.RequireFromString("400")))
	assert.True(t, rows[1].Expense.Equal(decimal.RequireFromString("450")))
}

func TestBuildMonthlyLedgerNoRenewalDate(t *testing.T) {
	rows := BuildMonthlyLedger(domain.Customer{}, domain.PlanManager{}, nil, time.Now())
	assert.Nil(t, rows)
}

func TestBuildMonthlyLedgerNilMonthlyCost(t *testing.T) {
	now := date(2024, time.June, 1)
	manager := domain.PlanManager{
		Platform:  domain.PlatformSpotify,
		CreatedAt: date(2023, time.January, 1),
	}
	customer := domain.Customer{
		RenewalDate: ptrTime(date(2024, time.June, 1)),
		Income:      decimal.RequireFromString("300"),
	}

	rows := BuildMonthlyLedger(customer, manager, nil, now)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Expense.IsZero())
	assert.True(t, rows[0].Profit.Equal(decimal.RequireFromString("300")))
}
