package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "SOLEIL"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SOLEIL_DB_DSN"
	EnvDBHost = "SOLEIL_DB_HOST"
	EnvDBUser = "SOLEIL_DB_USER"
	EnvDBName = "SOLEIL_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
