package config

const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Store drivers for the guest cart record.
const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
	StoreDriverMemory   = "memory"
)

const (
	EnvAppEnv          = "STOREFRONT_APP_ENV"
	EnvLogLevel        = "STOREFRONT_LOG_LEVEL"
	EnvHTTPAddr        = "STOREFRONT_HTTP_ADDR"
	EnvAPIBaseURL      = "STOREFRONT_API_BASE_URL"
	EnvAPITimeout      = "STOREFRONT_API_TIMEOUT"
	EnvStoreDriver     = "STOREFRONT_STORE_DRIVER"
	EnvStoreKey        = "STOREFRONT_STORE_KEY"
	EnvStoreTTL        = "STOREFRONT_STORE_TTL"
	EnvDBDSN           = "STOREFRONT_DB_DSN"
	EnvRedisURL        = "STOREFRONT_REDIS_URL"
	EnvRedisAddr       = "STOREFRONT_REDIS_ADDR"
	EnvJWTSecret       = "STOREFRONT_JWT_SECRET"
	EnvJWTIssuer       = "STOREFRONT_JWT_ISSUER"
	EnvNotificationCap = "STOREFRONT_NOTIFICATION_FEED_SIZE"
)
