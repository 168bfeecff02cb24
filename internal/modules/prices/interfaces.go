package prices

import (
	"context"

	"github.com/RomeshCG/Zentra/internal/domain"
)

// PriceRepositoryInterface — only the methods the prices service uses
type PriceRepositoryInterface interface {
	Create(ctx context.Context, p *domain.PlatformPrice) error
	ListAll(ctx context.Context) ([]domain.PlatformPrice, error)
}
