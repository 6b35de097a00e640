package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		Enabled      bool   `yaml:"enabled"`
	} `yaml:"email"`

	// Sync управляет протоколом синхронизации заявок:
	// интервал дифференциального опроса и таймаут action-вызовов.
	// Те же значения по умолчанию использует клиентский SDK (pkg/subsync).
	Sync struct {
		PollIntervalSec  int `yaml:"poll_interval_sec"`
		ActionTimeoutSec int `yaml:"action_timeout_sec"`
	} `yaml:"sync"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// PollInterval возвращает интервал опроса (15s по умолчанию).
func (c *Config) PollInterval() time.Duration {
	if c.Sync.PollIntervalSec <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Sync.PollIntervalSec) * time.Second
}

// ActionTimeout возвращает таймаут action-вызова (30s по умолчанию).
func (c *Config) ActionTimeout() time.Duration {
	if c.Sync.ActionTimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Sync.ActionTimeoutSec) * time.Second
}

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		// Режим НЕ-тест: читаем config.yaml
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		AppConfig = &cfg
		return
	}

	// Режим теста: конфигурация из переменных окружения
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "test-secret"
	}
	cfg.JWT.TTL = 60

	cfg.Email.SMTPHost = "smtp.test.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "test@promolink.app"
	cfg.Email.Enabled = false

	cfg.Sync.PollIntervalSec = 15
	cfg.Sync.ActionTimeoutSec = 30

	AppConfig = &cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
