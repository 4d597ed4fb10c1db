package config

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "EWA"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside the struct tags (tests, error
// messages).
const (
	EnvAppEnv     = "EWA_APP_ENV"
	EnvPort       = "EWA_APP_PORT"
	EnvDBDSN      = "EWA_DB_DSN"
	EnvDBHost     = "EWA_DB_HOST"
	EnvDBUser     = "EWA_DB_USER"
	EnvDBName     = "EWA_DB_NAME"
	EnvRedisURL   = "EWA_REDIS_URL"
	EnvJWTSecret  = "EWA_JWT_SECRET"
	EnvJWTIssuer  = "EWA_JWT_ISSUER"
	EnvJWTExpMins = "EWA_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
