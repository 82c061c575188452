// Package config defines the typed configuration structures shared across
// the application. Values are populated by the viper loader in
// internal/infrastructure/config.
package config

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

// BillingConfig carries the lifecycle windows of the subscription engine.
// TrialDays is the default opt-in trial window; GracePeriodDays is the
// post-expiry window during which entitlements are still honored.
type BillingConfig struct {
	TrialDays       int    `mapstructure:"trial_days"`
	GracePeriodDays int    `mapstructure:"grace_period_days"`
	Currency        string `mapstructure:"currency"`
	Timezone        string `mapstructure:"timezone"`
}

// PaymentConfig configures the payment confirmation collaborator.
type PaymentConfig struct {
	GatewayURL     string `mapstructure:"gateway_url"`
	SecretKey      string `mapstructure:"secret_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}
