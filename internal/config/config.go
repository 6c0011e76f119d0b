package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/zeromicro/go-zero/core/stores/redis"
	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

// Storage backends.
const (
	StorageMemory    = "memory"
	StorageBadger    = "badger"
	StorageFirestore = "firestore"
	StorageRedis     = "redis"
)

type Config struct {
	Mode Mode   `yaml:"mode"`
	Port string `yaml:"port"`

	GCPProjectID string `yaml:"gcp_project"`
	GCPLocation  string `yaml:"gcp_location"`
	ModelName    string `yaml:"model_name"`

	StorageBackend string          `yaml:"storage_backend"` // memory, badger, firestore, redis
	UseMockLLM     bool            `yaml:"use_mock_llm"`    // true = use mock even on GCP
	DisableLLM     bool            `yaml:"disable_llm"`     // templates only
	Badger         BadgerConfig    `yaml:"badger"`
	Redis          redis.RedisConf `yaml:"redis"`
	Mongo          MongoConfig     `yaml:"mongo"`
	RabbitMQ       RabbitMQConfig  `yaml:"rabbitmq"`
	Resources      ResourcesConfig `yaml:"resources"`
	Engine         EngineConfig    `yaml:"engine"`
	Logging        LoggingConfig   `yaml:"logging"`
}

type BadgerConfig struct {
	Dir string `yaml:"dir"`
}

// MongoConfig points at the mood log collection. Empty URL disables mood history.
type MongoConfig struct {
	URL        string `yaml:"url"`
	DB         string `yaml:"db"`
	Collection string `yaml:"collection"`
}

// RabbitMQConfig enables crisis event publishing when URL is set.
type RabbitMQConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

// ResourcesConfig points at the crisis resource directory. Empty URL uses the static table.
type ResourcesConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type EngineConfig struct {
	MaxMessageLength  int           `yaml:"max_message_length"`
	HistorySize       int           `yaml:"history_size"`
	GenerationTimeout time.Duration `yaml:"generation_timeout"`
	ResourceTimeout   time.Duration `yaml:"resource_timeout"`
	Seed              int64         `yaml:"seed"` // 0 = seeded from the clock
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the local-mode configuration.
func Default() *Config {
	return &Config{
		Mode:           ModeLocal,
		Port:           "8080",
		GCPLocation:    "us-central1",
		ModelName:      "gemini-2.5-flash-lite",
		StorageBackend: StorageMemory,
		UseMockLLM:     true,
		Badger:         BadgerConfig{Dir: ".farum/badger"},
		Mongo:          MongoConfig{DB: "farum", Collection: "mood_logs"},
		RabbitMQ:       RabbitMQConfig{Exchange: "farum.crisis"},
		Resources:      ResourcesConfig{Timeout: 3 * time.Second},
		Engine: EngineConfig{
			MaxMessageLength:  500,
			HistorySize:       3,
			GenerationTimeout: 10 * time.Second,
			ResourceTimeout:   3 * time.Second,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the YAML file at path when it exists, then applies FARUM_* env overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// defaults + env
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FARUM_MODE"); v != "" {
		if v == string(ModeGCP) {
			c.Mode = ModeGCP
			// GCP mode talks to Vertex unless told otherwise
			c.UseMockLLM = false
		} else {
			c.Mode = ModeLocal
		}
	}
	c.Port = getEnv("FARUM_PORT", c.Port)
	c.GCPProjectID = getEnv("FARUM_GCP_PROJECT", c.GCPProjectID)
	c.GCPLocation = getEnv("FARUM_GCP_LOCATION", c.GCPLocation)
	c.ModelName = getEnv("FARUM_MODEL_NAME", c.ModelName)
	c.StorageBackend = getEnv("FARUM_STORAGE_BACKEND", c.StorageBackend)
	c.UseMockLLM = getBoolEnv("FARUM_USE_MOCK_LLM", c.UseMockLLM)
	c.DisableLLM = getBoolEnv("FARUM_DISABLE_LLM", c.DisableLLM)
	c.Badger.Dir = getEnv("FARUM_BADGER_DIR", c.Badger.Dir)
	c.Redis.Host = getEnv("FARUM_REDIS_HOST", c.Redis.Host)
	c.Redis.Pass = getEnv("FARUM_REDIS_PASS", c.Redis.Pass)
	c.Mongo.URL = getEnv("FARUM_MONGO_URL", c.Mongo.URL)
	c.RabbitMQ.URL = getEnv("FARUM_RABBITMQ_URL", c.RabbitMQ.URL)
	c.Resources.URL = getEnv("FARUM_RESOURCES_URL", c.Resources.URL)
	c.Logging.Level = getEnv("FARUM_LOG_LEVEL", c.Logging.Level)
	if v := os.Getenv("FARUM_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Engine.Seed = seed
		}
	}
}

// Validate checks the combinations that cannot work.
func (c *Config) Validate() error {
	if c.Mode == ModeGCP && c.GCPProjectID == "" {
		return errors.New("FARUM_GCP_PROJECT must be set in gcp mode")
	}

	switch c.StorageBackend {
	case StorageMemory:
	case StorageBadger:
		if c.Badger.Dir == "" {
			return errors.New("badger.dir is required for the badger storage backend")
		}
	case StorageFirestore:
		if c.GCPProjectID == "" {
			return errors.New("FARUM_GCP_PROJECT is required for the firestore storage backend")
		}
	case StorageRedis:
		if c.Redis.Host == "" {
			return errors.New("redis.host is required for the redis storage backend")
		}
		if c.Redis.Type == "" {
			c.Redis.Type = redis.NodeType
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	if c.Engine.MaxMessageLength <= 0 {
		return errors.New("engine.max_message_length must be positive")
	}
	if c.Engine.HistorySize <= 0 {
		return errors.New("engine.history_size must be positive")
	}
	if c.Engine.GenerationTimeout <= 0 {
		return errors.New("engine.generation_timeout must be positive")
	}
	if c.Engine.ResourceTimeout <= 0 {
		return errors.New("engine.resource_timeout must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}
