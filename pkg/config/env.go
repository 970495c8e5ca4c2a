package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "WRENCHWORKS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "WRENCHWORKS_DB_DSN"
	EnvDBHost = "WRENCHWORKS_DB_HOST"
	EnvDBUser = "WRENCHWORKS_DB_USER"
	EnvDBName = "WRENCHWORKS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
