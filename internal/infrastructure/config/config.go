package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	BaseURL   string        `env:"BASE_URL,  default=https://www.doughmination.win"`
	DataDir   string        `env:"DATA_DIR,  default=dough-data"`

	Owner     OwnerConfig
	PluralKit PluralKitConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

// OwnerConfig designates the single distinguished owner account. The
// password may be supplied pre-hashed (bcrypt) or in plaintext; bootstrap
// detects which.
type OwnerConfig struct {
	Username    string `env:"ADMIN_USERNAME,     default=admin"`
	Password    string `env:"ADMIN_PASSWORD"`
	DisplayName string `env:"ADMIN_DISPLAY_NAME, default=Administrator"`
}

type PluralKitConfig struct {
	BaseURL string `env:"PLURALKIT_API_URL, default=https://api.pluralkit.me/v2"`
	Token   string `env:"PLURALKIT_TOKEN"`
	System  string `env:"PLURALKIT_SYSTEM,  default=@me"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=doughmination"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
