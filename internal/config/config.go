package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingAPIKey = errors.New("`NOTION_API_KEY` environment variable missing")
)

const (
	DefaultPort               = "3000"
	DefaultEnvFile            = ".env"
	DefaultMQTTTopic          = "bodycomp/measurements"
	DefaultRateLimitPerMinute = 60
)

// Config se lee una sola vez al arrancar. Después es de solo lectura.
type Config struct {
	NotionAPIKey   string `yaml:"notion_api_key"`
	NotionDatabase string `yaml:"notion_database"`

	// Vacíos => defaults del cliente notion.
	NotionBaseURL string        `yaml:"notion_base_url"`
	NotionVersion string        `yaml:"notion_version"`
	NotionTimeout time.Duration `yaml:"notion_timeout"`

	Port string `yaml:"port"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	AppName   string `yaml:"app_name"`

	// Journal en Postgres; vacío => in-memory.
	DBDSN string `yaml:"db_dsn"`

	// Rate limit compartido en Redis; vacío => in-memory.
	RedisURL           string `yaml:"redis_url"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`

	// Si está seteado, /create y /journal exigen Bearer token.
	IngestToken string `yaml:"ingest_token"`

	MQTTBroker   string `yaml:"mqtt_broker"`
	MQTTTopic    string `yaml:"mqtt_topic"`
	MQTTClientID string `yaml:"mqtt_client_id"`
}

// Load arma la config: defaults, luego archivo YAML (BODYCOMP_CONFIG, opcional),
// luego .env (BODYCOMP_ENV_FILE, default ./.env, opcional), luego env del proceso.
// El env real siempre gana sobre .env.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               DefaultPort,
		MQTTTopic:          DefaultMQTTTopic,
		RateLimitPerMinute: DefaultRateLimitPerMinute,
	}

	if path := strings.TrimSpace(os.Getenv("BODYCOMP_CONFIG")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	dotenv, err := readDotEnv(getEnv("BODYCOMP_ENV_FILE", DefaultEnvFile))
	if err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(dotenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// readDotEnv no toca el env del proceso. Archivo inexistente => vacío.
func readDotEnv(path string) (envSource, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return envSource{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return envSource(values), nil
}

// envSource resuelve una clave: env del proceso, después .env.
type envSource map[string]string

func (e envSource) get(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	if v := strings.TrimSpace(e[key]); v != "" {
		return v
	}
	return defaultValue
}

func (c *Config) applyEnv(env envSource) error {
	c.NotionAPIKey = env.get("NOTION_API_KEY", c.NotionAPIKey)
	c.NotionDatabase = env.get("NOTION_DATABASE", c.NotionDatabase)
	c.NotionBaseURL = env.get("NOTION_BASE_URL", c.NotionBaseURL)
	c.NotionVersion = env.get("NOTION_VERSION", c.NotionVersion)
	c.Port = env.get("PORT", c.Port)
	c.LogLevel = env.get("LOG_LEVEL", c.LogLevel)
	c.LogFormat = env.get("LOG_FORMAT", c.LogFormat)
	c.AppName = env.get("APP_NAME", c.AppName)
	c.DBDSN = env.get("DB_DSN", c.DBDSN)
	c.RedisURL = env.get("REDIS_URL", c.RedisURL)
	c.IngestToken = env.get("INGEST_TOKEN", c.IngestToken)
	c.MQTTBroker = env.get("MQTT_BROKER", c.MQTTBroker)
	c.MQTTTopic = env.get("MQTT_TOPIC", c.MQTTTopic)
	c.MQTTClientID = env.get("MQTT_CLIENT_ID", c.MQTTClientID)

	if v := env.get("NOTION_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("NOTION_TIMEOUT must be a duration: %w", err)
		}
		c.NotionTimeout = d
	}
	if v := env.get("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be a non-negative integer, got %q", v)
		}
		c.RateLimitPerMinute = n
	}
	return nil
}

// Validate devuelve error solo para lo que impide arrancar.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.NotionAPIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Warnings lista faltantes no fatales.
func (c *Config) Warnings() []string {
	var out []string
	if strings.TrimSpace(c.NotionDatabase) == "" {
		out = append(out, "`NOTION_DATABASE` environment variable missing")
	}
	return out
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
