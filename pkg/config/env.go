package config

// EnvPrefix namespaces every environment variable the app reads.
const EnvPrefix = "UNIDEALS"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "UNIDEALS_APP_ENV"
	EnvDBDSN  = "UNIDEALS_DB_DSN"
	EnvDBHost = "UNIDEALS_DB_HOST"
	EnvDBUser = "UNIDEALS_DB_USER"
	EnvDBName = "UNIDEALS_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
