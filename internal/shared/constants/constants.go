package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyBusinessID = "business_id"
	ContextKeyRole       = "role"
	ContextKeyRequestID  = "request_id"

	// Roles
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleBusiness = "business"

	// Database table names
	TablePlans                = "plans"
	TableModules              = "modules"
	TableBundles              = "bundles"
	TablePromoCodes           = "promo_codes"
	TableSubscriptions        = "subscriptions"
	TableSubscriptionPayments = "subscription_payments"
	TableModuleGrants         = "business_module_grants"
	TableCommissionRecords    = "commission_records"
	TableCommissionPolicies   = "commission_policies"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)
