package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	DB      DBConfig      `yaml:"db"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Redis   RedisConfig   `yaml:"redis"`
	Indexer IndexerConfig `yaml:"indexer"`
}

type HTTPConfig struct {
	Address string        `yaml:"address"`
	Timeout time.Duration `yaml:"timeout"`
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"` //nolint:gosec // config struct, not hardcoded cred
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	IndexTopic string   `yaml:"index_topic"`
}

type RedisConfig struct {
	Address   string        `yaml:"address"`
	BundleTTL time.Duration `yaml:"bundle_ttl"`
}

type IndexerConfig struct {
	Interval time.Duration `yaml:"interval"`
}

func Load() (*Config, error) {
	configPath := getConfigPath()
	data, err := os.ReadFile(configPath) //nolint:gosec // config path from env/flag
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaults(&cfg)
	overrideFromEnv(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func getConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}

	possiblePaths := []string{
		"config/config.yaml",
		"/etc/feedback-service/config.yaml",
		"./config.yaml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "config.yaml"
}

func setDefaults(cfg *Config) {
	if cfg.HTTP.Timeout == 0 {
		cfg.HTTP.Timeout = 30 * time.Second
	}

	if cfg.Kafka.IndexTopic == "" {
		cfg.Kafka.IndexTopic = "comment-index"
	}

	if cfg.Redis.BundleTTL == 0 {
		cfg.Redis.BundleTTL = 5 * time.Minute
	}

	if cfg.Indexer.Interval == 0 {
		cfg.Indexer.Interval = time.Minute
	}
}

func overrideFromEnv(cfg *Config) {
	if val := os.Getenv("HTTP_ADDRESS"); val != "" {
		cfg.HTTP.Address = val
	}
	if val := os.Getenv("HTTP_TIMEOUT"); val != "" {
		if timeout, err := strconv.Atoi(val); err == nil {
			cfg.HTTP.Timeout = time.Duration(timeout) * time.Second
		}
	}

	if val := os.Getenv("DB_HOST"); val != "" {
		cfg.DB.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.DB.Port = port
		}
	}
	if val := os.Getenv("DB_USER"); val != "" {
		cfg.DB.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		cfg.DB.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		cfg.DB.DBName = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		cfg.DB.SSLMode = val
	}

	if val := os.Getenv("KAFKA_BROKERS"); val != "" {
		cfg.Kafka.Brokers = strings.Split(val, ",")
	}
	if val := os.Getenv("KAFKA_INDEX_TOPIC"); val != "" {
		cfg.Kafka.IndexTopic = val
	}

	if val := os.Getenv("REDIS_ADDRESS"); val != "" {
		cfg.Redis.Address = val
	}
	if val := os.Getenv("REDIS_BUNDLE_TTL"); val != "" {
		if ttl, err := strconv.Atoi(val); err == nil {
			cfg.Redis.BundleTTL = time.Duration(ttl) * time.Second
		}
	}

	if val := os.Getenv("INDEXER_INTERVAL"); val != "" {
		if interval, err := strconv.Atoi(val); err == nil {
			cfg.Indexer.Interval = time.Duration(interval) * time.Second
		}
	}
}

func validateConfig(cfg *Config) error {
	if cfg.HTTP.Address == "" {
		return fmt.Errorf("HTTP address must be set")
	}

	if len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("at least one Kafka broker must be specified")
	}

	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.DBName == "" {
		return fmt.Errorf("database configuration is incomplete")
	}

	if cfg.Redis.Address == "" {
		return fmt.Errorf("redis address must be specified")
	}

	return nil
}

func (c *Config) GetDBConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}
