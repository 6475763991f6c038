package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	// DebugMode indicates service mode is debug.
	DebugMode = "debug"
	// TestMode indicates service mode is test.
	TestMode = "test"
	// ReleaseMode indicates service mode is release.
	ReleaseMode = "release"
)

type Config struct {
	ServiceName string

	Environment string // debug, test, release
	Version     string

	JaegerHostPort string

	D1AccountID  string
	D1DatabaseID string
	D1APIToken   string
	D1BaseURL    string

	AutocreateTables bool
	Debug            bool
	Raw              bool

	RequestTimeout time.Duration
}

// Load ...
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println(ErrEnvNotFound)
	}

	config := Config{}

	config.ServiceName = cast.ToString(getOrReturnDefaultValue("SERVICE_NAME", "d1_adapter"))

	config.Environment = cast.ToString(getOrReturnDefaultValue("ENVIRONMENT", DebugMode))
	config.Version = cast.ToString(getOrReturnDefaultValue("VERSION", "1.0"))

	config.JaegerHostPort = cast.ToString(getOrReturnDefaultValue("JAEGER_URL", ""))

	config.D1AccountID = cast.ToString(getOrReturnDefaultValue("D1_ACCOUNT_ID", ""))
	config.D1DatabaseID = cast.ToString(getOrReturnDefaultValue("D1_DATABASE_ID", ""))
	config.D1APIToken = cast.ToString(getOrReturnDefaultValue("D1_API_TOKEN", ""))
	config.D1BaseURL = cast.ToString(getOrReturnDefaultValue("D1_BASE_URL", DefaultD1BaseURL))

	config.AutocreateTables = cast.ToBool(getOrReturnDefaultValue("D1_AUTOCREATE_TABLES", true))
	config.Debug = cast.ToBool(getOrReturnDefaultValue("D1_DEBUG", false))
	config.Raw = cast.ToBool(getOrReturnDefaultValue("D1_RAW", false))

	config.RequestTimeout = cast.ToDuration(getOrReturnDefaultValue("D1_REQUEST_TIMEOUT", "30s"))

	return config
}

func getOrReturnDefaultValue(key string, defaultValue any) any {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return defaultValue
}
