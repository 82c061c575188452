package catalog

import "errors"

var (
	ErrPlanNotFound      = errors.New("plan not found")
	ErrModuleNotFound    = errors.New("module not found")
	ErrBundleNotFound    = errors.New("bundle not found")
	ErrPromoCodeNotFound = errors.New("promo code not found")
	ErrPromoCodeInactive = errors.New("promo code inactive")
	ErrPromoCodeExpired  = errors.New("promo code expired")
	ErrPromoCodeExhausted = errors.New("promo code usage limit reached")
	ErrPromoCodeExists   = errors.New("promo code already exists")
	ErrCyclePriceMissing = errors.New("no catalog price for billing cycle")
)
