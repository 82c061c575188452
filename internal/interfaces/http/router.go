// Package http wires the gin engine: repositories, use cases, handlers
// and routes.
package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	catalogusecases "github.com/servio-inc/servio/internal/application/catalog/usecases"
	commissionusecases "github.com/servio-inc/servio/internal/application/commission/usecases"
	"github.com/servio-inc/servio/internal/application/entitlement"
	pricingusecases "github.com/servio-inc/servio/internal/application/pricing/usecases"
	subscriptionusecases "github.com/servio-inc/servio/internal/application/subscription/usecases"
	"github.com/servio-inc/servio/internal/domain/billing"
	"github.com/servio-inc/servio/internal/domain/commission"
	"github.com/servio-inc/servio/internal/infrastructure/auth"
	"github.com/servio-inc/servio/internal/infrastructure/cache"
	"github.com/servio-inc/servio/internal/infrastructure/config"
	"github.com/servio-inc/servio/internal/infrastructure/payment"
	"github.com/servio-inc/servio/internal/infrastructure/repository"
	"github.com/servio-inc/servio/internal/interfaces/http/handlers"
	"github.com/servio-inc/servio/internal/interfaces/http/middleware"
	"github.com/servio-inc/servio/internal/shared/constants"
	"github.com/servio-inc/servio/internal/shared/db"
	"github.com/servio-inc/servio/internal/shared/logger"
)

// Router holds the gin engine and the handlers it routes to.
type Router struct {
	engine *gin.Engine

	pricingHandler      *handlers.PricingHandler
	subscriptionHandler *handlers.SubscriptionHandler
	adminHandler        *handlers.AdminSubscriptionHandler
	commissionHandler   *handlers.CommissionHandler
	promoHandler        *handlers.PromoCodeHandler
	entitlementHandler  *handlers.EntitlementHandler

	authMiddleware        *middleware.AuthMiddleware
	entitlementMiddleware *middleware.EntitlementMiddleware
}

// NewRouter builds the full dependency graph on top of the database and
// Redis connections.
func NewRouter(gormDB *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	// Repositories
	catalogRepo := repository.NewCatalogRepository(gormDB, log)
	promoRepo := repository.NewPromoCodeRepository(gormDB, log)
	subscriptionRepo := repository.NewSubscriptionRepository(gormDB, log)
	ledgerRepo := repository.NewPaymentLedgerRepository(gormDB, log)
	grantRepo := repository.NewModuleGrantRepository(gormDB, log)
	policyRepo := repository.NewCommissionPolicyRepository(gormDB, log)
	recordRepo := repository.NewCommissionRecordRepository(gormDB, log)

	// Infrastructure collaborators
	txManager := db.NewTransactionManager(gormDB)
	statusCache := cache.NewRedisStatusCache(redisClient, log)
	verifier := payment.NewGatewayVerifier(cfg.Payment, log)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	// Domain services
	calculator := billing.NewQuoteCalculator()
	commissionEngine := commission.NewEngine()
	resolver := pricingusecases.NewSelectionResolver(catalogRepo, promoRepo)
	entitlementResolver := entitlement.NewResolver(subscriptionRepo, grantRepo, cfg.Billing.GracePeriodDays, log)

	// Use cases
	getPricingUC := pricingusecases.NewGetPricingUseCase(catalogRepo, log)
	quotePriceUC := pricingusecases.NewQuotePriceUseCase(resolver, calculator, log)

	accrualService := commissionusecases.NewAccrualService(policyRepo, recordRepo, ledgerRepo, commissionEngine, log)

	registerUC := subscriptionusecases.NewRegisterBusinessUseCase(subscriptionRepo, statusCache, cfg.Billing.TrialDays, log)
	subscribeUC := subscriptionusecases.NewSubscribeUseCase(
		subscriptionRepo, ledgerRepo, grantRepo, promoRepo,
		resolver, calculator, verifier, accrualService,
		txManager, statusCache, log)
	statusUC := subscriptionusecases.NewGetSubscriptionStatusUseCase(subscriptionRepo, grantRepo, statusCache, cfg.Billing.GracePeriodDays, log)
	renewUC := subscriptionusecases.NewAdminRenewUseCase(subscriptionRepo, ledgerRepo, accrualService, txManager, statusCache, log)
	cancelUC := subscriptionusecases.NewCancelSubscriptionUseCase(subscriptionRepo, statusCache, log)
	grantUC := subscriptionusecases.NewGrantModuleUseCase(grantRepo, catalogRepo, statusCache, log)
	revokeUC := subscriptionusecases.NewRevokeGrantUseCase(grantRepo, statusCache, log)

	getPolicyUC := commissionusecases.NewGetPolicyUseCase(policyRepo, log)
	updatePolicyUC := commissionusecases.NewUpdatePolicyUseCase(policyRepo, log)
	listCommissionsUC := commissionusecases.NewListCommissionsUseCase(recordRepo, log)
	markPaidUC := commissionusecases.NewMarkCommissionsPaidUseCase(recordRepo, txManager, log)

	createPromoUC := catalogusecases.NewCreatePromoCodeUseCase(promoRepo, log)
	updatePromoUC := catalogusecases.NewUpdatePromoCodeUseCase(promoRepo, log)
	deletePromoUC := catalogusecases.NewDeletePromoCodeUseCase(promoRepo, log)
	listPromoUC := catalogusecases.NewListPromoCodesUseCase(promoRepo, log)

	return &Router{
		engine:              engine,
		pricingHandler:      handlers.NewPricingHandler(getPricingUC, quotePriceUC, log),
		subscriptionHandler: handlers.NewSubscriptionHandler(registerUC, subscribeUC, statusUC, log),
		adminHandler:        handlers.NewAdminSubscriptionHandler(renewUC, cancelUC, statusUC, grantUC, revokeUC, log),
		commissionHandler:   handlers.NewCommissionHandler(getPolicyUC, updatePolicyUC, listCommissionsUC, markPaidUC, log),
		promoHandler:        handlers.NewPromoCodeHandler(createPromoUC, updatePromoUC, deletePromoUC, listPromoUC, log),
		entitlementHandler:  handlers.NewEntitlementHandler(entitlementResolver, log),

		authMiddleware:        middleware.NewAuthMiddleware(jwtService, log),
		entitlementMiddleware: middleware.NewEntitlementMiddleware(entitlementResolver, log),
	}
}

// Setup registers middleware and routes.
func (r *Router) Setup(log logger.Interface) {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(log))
	r.engine.Use(middleware.CORS([]string{"*"}))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/api/v1")

	// Public catalog and quoting
	v1.GET("/pricing", r.pricingHandler.GetPricing)
	v1.POST("/pricing/quote", r.pricingHandler.Quote)

	// Business-facing subscription flow
	authed := v1.Group("")
	authed.Use(r.authMiddleware.RequireAuth())
	{
		authed.POST("/subscriptions/register", r.subscriptionHandler.Register)
		authed.POST("/subscriptions/subscribe", r.subscriptionHandler.Subscribe)
		authed.GET("/subscriptions/status", r.subscriptionHandler.GetStatus)
		authed.GET("/entitlements/:module_code", r.entitlementHandler.CheckModule)
	}

	// Operator and admin overrides
	admin := v1.Group("/admin")
	admin.Use(r.authMiddleware.RequireAuth())
	admin.Use(r.authMiddleware.RequireRole(constants.RoleAdmin, constants.RoleOperator))
	{
		admin.GET("/businesses/:business_id/status", r.adminHandler.GetStatus)
		admin.POST("/businesses/:business_id/renew", r.adminHandler.Renew)
		admin.POST("/businesses/:business_id/cancel", r.adminHandler.Cancel)
		admin.POST("/businesses/:business_id/grants", r.adminHandler.GrantModule)
		admin.DELETE("/businesses/:business_id/grants/:module_code", r.adminHandler.RevokeModule)

		admin.GET("/commission-policy", r.commissionHandler.GetPolicy)
		admin.PUT("/commission-policy", r.commissionHandler.UpdatePolicy)
		admin.GET("/commissions", r.commissionHandler.ListCommissions)
		admin.PATCH("/commissions/mark-paid", r.commissionHandler.MarkPaid)
		admin.PATCH("/commissions/:id/status", r.commissionHandler.UpdateStatus)

		admin.GET("/promo-codes", r.promoHandler.List)
		admin.POST("/promo-codes", r.promoHandler.Create)
		admin.PUT("/promo-codes/:id", r.promoHandler.Update)
		admin.DELETE("/promo-codes/:id", r.promoHandler.Delete)
	}
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// ModuleGate returns middleware that rejects requests from businesses not
// entitled to the given module. Host applications mounting feature routes
// on this engine guard them with it.
func (r *Router) ModuleGate(moduleCode string) gin.HandlerFunc {
	return r.entitlementMiddleware.RequireModule(moduleCode)
}

// Run starts the HTTP server on the configured address.
func (r *Router) Run(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	return r.engine.Run(addr)
}
