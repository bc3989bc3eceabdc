package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTP HTTP `yaml:"http"`
	Log  Log  `yaml:"log"`
}

type HTTP struct {
	Addr            string        `yaml:"addr" env:"TTT_HTTP_ADDR" env-default:":8080"`
	Heartbeat       time.Duration `yaml:"heartbeat" env:"TTT_HEARTBEAT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"TTT_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type Log struct {
	Level  string `yaml:"level" env:"TTT_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"TTT_LOG_FORMAT" env-default:"json"`
}

// Load reads the YAML file at path, then applies environment overrides.
// With an empty path only the environment and defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read config from env: %w", err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// MustLoad - load configuration or panic.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}
	return cfg
}
