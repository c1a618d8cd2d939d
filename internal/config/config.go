package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

var ErrInvalidTimeout = errors.New("suggestion timeout must be positive")

type Config struct {
	LogLevel   string     `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string     `yaml:"http-port" env:"HTTP_PORT" env-default:"5000"`
	Storage    string     `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis      Redis      `yaml:"redis"`
	Suggestion Suggestion `yaml:"suggestion"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Suggestion configures the chat completions endpoint used for LLM moves.
type Suggestion struct {
	URL         string        `yaml:"url" env:"WEBUI_URL" env-default:"http://localhost:3000/api/chat/completions"`
	Model       string        `yaml:"model" env:"OLLAMA_MODEL" env-default:"gpt-oss:20b"`
	APIKey      string        `yaml:"api-key" env:"WEBUI_API_KEY" env-default:""`
	Timeout     time.Duration `yaml:"timeout" env:"WEBUI_TIMEOUT" env-default:"30s"`
	Temperature float64       `yaml:"temperature" env-default:"0.2"`
	MaxTokens   int           `yaml:"max-tokens" env-default:"50"`
}

// Load reads path when it exists and applies environment overrides; without a file only env and defaults apply.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate rejects values that would leave the suggestion call unbounded.
func (that *Config) validate() error {
	if that.Suggestion.Timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, that.Suggestion.Timeout)
	}

	return nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
