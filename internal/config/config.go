package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr string `yaml:"addr"`
	} `yaml:"redis"`
	Bronze struct {
		Address string `yaml:"address"`
		Market  string `yaml:"market"`
	} `yaml:"bronze"`
	Debug bool `yaml:"debug"`

	// secrets come from the environment only, never the yaml file
	BronzeAPIKey    string `yaml:"-"`
	BronzeAPISecret string `yaml:"-"`
	AdminJWTKey     string `yaml:"-"`
}

// LoadConfig reads the yaml config file and applies environment
// overrides.
func LoadConfig() (Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("BRONZE_ADDRESS"); v != "" {
		cfg.Bronze.Address = v
	}
	if v := os.Getenv("BRONZE_MARKET"); v != "" {
		cfg.Bronze.Market = v
	}
	if os.Getenv("DEBUG") != "" {
		cfg.Debug = true
	}
	cfg.BronzeAPIKey = os.Getenv("BRONZE_API_KEY")
	cfg.BronzeAPISecret = os.Getenv("BRONZE_API_SECRET")
	cfg.AdminJWTKey = os.Getenv("ADMIN_JWT_KEY")

	if cfg.Bronze.Market == "" {
		cfg.Bronze.Market = "ZAPNZD"
	}
	if cfg.Bronze.Address == "" {
		return Config{}, fmt.Errorf("bronze address is required")
	}
	if cfg.BronzeAPIKey == "" {
		return Config{}, fmt.Errorf("BRONZE_API_KEY is required")
	}
	if cfg.BronzeAPISecret == "" {
		return Config{}, fmt.Errorf("BRONZE_API_SECRET is required")
	}
	if cfg.AdminJWTKey == "" {
		return Config{}, fmt.Errorf("ADMIN_JWT_KEY is required")
	}
	return cfg, nil
}
