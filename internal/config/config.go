package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8082"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

// CoreAPI points at the storefront core, the authoritative owner of the
// logged-in user's cart, wishlist, wallet, and orders.
type CoreAPI struct {
	BaseURL         string        `yaml:"CORE_API_BASE_URL" env:"CORE_API_BASE_URL" env-required:"true"`
	Timeout         time.Duration `yaml:"CORE_API_TIMEOUT" env:"CORE_API_TIMEOUT" env-default:"10s"`
	BreakerFailures uint32        `yaml:"CORE_API_BREAKER_FAILURES" env:"CORE_API_BREAKER_FAILURES" env-default:"5"`
	BreakerCooldown time.Duration `yaml:"CORE_API_BREAKER_COOLDOWN" env:"CORE_API_BREAKER_COOLDOWN" env-default:"30s"`
}

type Security struct {
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
}

// GuestStore configures the device-scoped cart/wishlist kept in Redis.
// TTL bounds how long an abandoned guest cart survives; 0 keeps it forever.
type GuestStore struct {
	CartKeyPrefix     string        `yaml:"GUEST_CART_PREFIX" env:"GUEST_CART_PREFIX" env-default:"guest:cart"`
	WishlistKeyPrefix string        `yaml:"GUEST_WISHLIST_PREFIX" env:"GUEST_WISHLIST_PREFIX" env-default:"guest:wishlist"`
	TTL               time.Duration `yaml:"GUEST_TTL" env:"GUEST_TTL" env-default:"720h"`
}

type Tracing struct {
	Enabled      bool   `yaml:"TRACING_ENABLED" env:"TRACING_ENABLED" env-default:"false"`
	OTLPEndpoint string `yaml:"OTLP_ENDPOINT" env:"OTLP_ENDPOINT" env-default:"localhost:4318"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	RedisConnect RedisConnect `yaml:"redis"`
	CoreAPI      CoreAPI      `yaml:"core_api"`
	Security     Security     `yaml:"security"`
	GuestStore   GuestStore   `yaml:"guest_store"`
	Tracing      Tracing      `yaml:"tracing"`
}

func MustLoad() *Config {

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d",
		r.Username, r.Password, r.Host, r.Port, r.DB)
}
