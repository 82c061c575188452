package catalog

import (
	"context"

	vo "github.com/servio-inc/servio/internal/domain/catalog/valueobjects"
)

// Repository provides read access to the immutable pricing catalog.
type Repository interface {
	ListPlans(ctx context.Context) ([]*Plan, error)
	GetPlanByTier(ctx context.Context, tier vo.PlanTier) (*Plan, error)
	ListModules(ctx context.Context) ([]*Module, error)
	GetModulesByCodes(ctx context.Context, codes []string) ([]*Module, error)
	ListBundles(ctx context.Context) ([]*Bundle, error)
	GetBundleByCode(ctx context.Context, code string) (*Bundle, error)
}

// PromoCodeRepository manages promo code persistence.
type PromoCodeRepository interface {
	Create(ctx context.Context, promo *PromoCode) error
	Update(ctx context.Context, promo *PromoCode) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*PromoCode, error)
	GetByCode(ctx context.Context, code string) (*PromoCode, error)
	List(ctx context.Context, offset, limit int) ([]*PromoCode, int64, error)
}
