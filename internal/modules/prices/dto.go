package prices

import (
	"github.com/shopspring/decimal"

	"github.com/RomeshCG/Zentra/internal/domain"
)

type CreateRequest struct {
	Platform      string `json:"platform" binding:"required"`
	EffectiveFrom string `json:"effective_from" binding:"required"`
	Price         string `json:"price" binding:"required"`
}

// HistoryResponse groups the full price history by platform, rows ascending
// by effective date.
type HistoryResponse map[string][]domain.PlatformPrice

type CurrentPrice struct {
	Platform string          `json:"platform"`
	Price    decimal.Decimal `json:"price"`
}
