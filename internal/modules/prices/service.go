package prices

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RomeshCG/Zentra/internal/accrual"
	"github.com/RomeshCG/Zentra/internal/domain"
)

// Service maintains the time-versioned platform price list.
type Service struct {
	prices PriceRepositoryInterface
	now    func() time.Time
}

func NewService(prices PriceRepositoryInterface, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{prices: prices, now: now}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.PlatformPrice, error) {
	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: effective_from must be YYYY-MM-DD", ErrValidation)
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be a non-negative number", ErrValidation)
	}

	row := &domain.PlatformPrice{
		Platform:      domain.NormalizePlatform(req.Platform),
		EffectiveFrom: effectiveFrom,
		Price:         price,
	}
	if err := s.prices.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) History(ctx context.Context) (HistoryResponse, error) {
	rows, err := s.prices.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(HistoryResponse)
	for _, row := range rows {
		key := string(row.Platform)
		grouped[key] = append(grouped[key], row)
	}
	return grouped, nil
}

// Current resolves today's price per platform, sorted by platform name for
// a stable payload.
func (s *Service) Current(ctx context.Context) ([]CurrentPrice, error) {
	grouped, err := s.History(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]CurrentPrice, 0, len(grouped))
	for platform, rows := range grouped {
		price, ok := accrual.PriceInEffect(now, rows)
		if !ok {
			continue
		}
		out = append(out, CurrentPrice{Platform: platform, Price: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Platform < out[j].Platform })
	return out, nil
}
