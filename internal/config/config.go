package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	Upstream struct {
		// BaseURL of the remote RedOficios backend, e.g.
		// https://redoficios-back.vercel.app
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"upstream"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Session struct {
		// IdleTimeout is the sliding inactivity window after which a
		// session expires, mirroring the web client's auto-logout.
		IdleTimeout time.Duration `mapstructure:"idle_timeout"`
		HandoffTTL  time.Duration `mapstructure:"handoff_ttl"`
	} `mapstructure:"session"`
	Rating struct {
		EditWindow time.Duration `mapstructure:"edit_window"`
	} `mapstructure:"rating"`
	Directory struct {
		PageSize int `mapstructure:"page_size"`
	} `mapstructure:"directory"`
	Tracing struct {
		Enabled      bool   `mapstructure:"enabled"`
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
}

func LoadConfig() (cfg Config, err error) {

	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("upstream.timeout", 15*time.Second)
	viper.SetDefault("auth.token_lifespan", 24*time.Hour)
	viper.SetDefault("session.idle_timeout", 5*time.Minute)
	viper.SetDefault("session.handoff_ttl", 10*time.Minute)
	viper.SetDefault("rating.edit_window", 72*time.Hour)
	viper.SetDefault("directory.page_size", 3)

	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("upstream.base_url", "UPSTREAM_BASE_URL")
	viper.BindEnv("upstream.timeout", "UPSTREAM_TIMEOUT")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	viper.BindEnv("session.idle_timeout", "SESSION_IDLE_TIMEOUT")
	viper.BindEnv("session.handoff_ttl", "SESSION_HANDOFF_TTL")
	viper.BindEnv("rating.edit_window", "RATING_EDIT_WINDOW")
	viper.BindEnv("directory.page_size", "DIRECTORY_PAGE_SIZE")
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.otlp_endpoint", "TRACING_OTLP_ENDPOINT")

	err = viper.Unmarshal(&cfg)
	return
}
