package config

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "SHOPMALL"

	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names shared between Load and the tests.
const (
	EnvAppEnv                 = "SHOPMALL_APP_ENV"
	EnvPort                   = "SHOPMALL_APP_PORT"
	EnvDBDSN                  = "SHOPMALL_DB_DSN"
	EnvDBHost                 = "SHOPMALL_DB_HOST"
	EnvDBUser                 = "SHOPMALL_DB_USER"
	EnvDBName                 = "SHOPMALL_DB_NAME"
	EnvRedisURL               = "SHOPMALL_REDIS_URL"
	EnvJWTSecret              = "SHOPMALL_JWT_SECRET"
	EnvJWTIssuer              = "SHOPMALL_JWT_ISSUER"
	EnvJWTExpMins             = "SHOPMALL_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "SHOPMALL_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
