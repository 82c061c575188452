// Package dto shapes domain aggregates into the JSON the API returns.
package dto

import (
	"time"

	"github.com/servio-inc/servio/internal/domain/catalog"
)

type PlanResponse struct {
	Tier         string           `json:"tier"`
	Name         string           `json:"name"`
	MonthlyPrice int64            `json:"monthly_price"`
	CyclePrices  map[string]int64 `json:"cycle_prices"`
	UserLimit    int              `json:"user_limit"`
	ProductLimit int              `json:"product_limit"`
}

func NewPlanResponse(plan *catalog.Plan) PlanResponse {
	cyclePrices := make(map[string]int64)
	for cycle, price := range plan.CyclePrices() {
		cyclePrices[cycle.String()] = price
	}

	return PlanResponse{
		Tier:         plan.Tier().String(),
		Name:         plan.Name(),
		MonthlyPrice: plan.MonthlyPrice(),
		CyclePrices:  cyclePrices,
		UserLimit:    plan.UserLimit(),
		ProductLimit: plan.ProductLimit(),
	}
}

func NewPlanResponses(plans []*catalog.Plan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for _, plan := range plans {
		out = append(out, NewPlanResponse(plan))
	}
	return out
}

type ModuleResponse struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	MonthlyPrice int64  `json:"monthly_price"`
}

func NewModuleResponse(module *catalog.Module) ModuleResponse {
	return ModuleResponse{
		Code:         module.Code(),
		Name:         module.Name(),
		MonthlyPrice: module.MonthlyPrice(),
	}
}

func NewModuleResponses(modules []*catalog.Module) []ModuleResponse {
	out := make([]ModuleResponse, 0, len(modules))
	for _, module := range modules {
		out = append(out, NewModuleResponse(module))
	}
	return out
}

type BundleResponse struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	ModuleCodes []string `json:"module_codes"`
	Price       int64    `json:"price"`
}

func NewBundleResponse(bundle *catalog.Bundle) BundleResponse {
	return BundleResponse{
		Code:        bundle.Code(),
		Name:        bundle.Name(),
		ModuleCodes: bundle.ModuleCodes(),
		Price:       bundle.Price(),
	}
}

func NewBundleResponses(bundles []*catalog.Bundle) []BundleResponse {
	out := make([]BundleResponse, 0, len(bundles))
	for _, bundle := range bundles {
		out = append(out, NewBundleResponse(bundle))
	}
	return out
}

type PromoCodeResponse struct {
	ID              uint       `json:"id"`
	Code            string     `json:"code"`
	DiscountPercent int        `json:"discount_percent"`
	MaxUses         int        `json:"max_uses"`
	UsedCount       int        `json:"used_count"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	Active          bool       `json:"active"`
	CreatedAt       time.Time  `json:"created_at"`
}

func NewPromoCodeResponse(promo *catalog.PromoCode) PromoCodeResponse {
	return PromoCodeResponse{
		ID:              promo.ID(),
		Code:            promo.Code(),
		DiscountPercent: promo.DiscountPercent(),
		MaxUses:         promo.MaxUses(),
		UsedCount:       promo.UsedCount(),
		ExpiresAt:       promo.ExpiresAt(),
		Active:          promo.IsActive(),
		CreatedAt:       promo.CreatedAt(),
	}
}

func NewPromoCodeResponses(promos []*catalog.PromoCode) []PromoCodeResponse {
	out := make([]PromoCodeResponse, 0, len(promos))
	for _, promo := range promos {
		out = append(out, NewPromoCodeResponse(promo))
	}
	return out
}
