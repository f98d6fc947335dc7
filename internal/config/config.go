package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
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
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	Storage struct {
		Type      string `yaml:"type"`       // local, s3
		BasePath  string `yaml:"base_path"`  // For local storage
		BaseURL   string `yaml:"base_url"`   // Public URL base
		Bucket    string `yaml:"bucket"`     // For S3-compatible storage
		Endpoint  string `yaml:"endpoint"`   // For S3-compatible storage
		AccessKey string `yaml:"access_key"` // For S3-compatible storage
		SecretKey string `yaml:"secret_key"` // For S3-compatible storage
		UseSSL    bool   `yaml:"use_ssl"`
		Folder    string `yaml:"folder"` // Folder/category hint, e.g. "talent-media-kits"
	} `yaml:"storage"`

	Upload struct {
		MaxSize  int64 `yaml:"max_size"`  // Max file size in bytes
		MaxFiles int   `yaml:"max_files"` // Max files per request
	} `yaml:"upload"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	FrontendURL string `yaml:"frontend_url"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию: сначала config.yaml (если есть),
// затем переменные окружения поверх. .env подхватывается автоматически.
func LoadConfig() {
	var cfg Config

	// .env удобен для локальной разработки; в проде его просто нет
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			f.Close()
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
		f.Close()
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	AppConfig = &cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.Server.Port, _ = strconv.Atoi(v)
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("STORAGE_ENDPOINT"); v != "" {
		cfg.Storage.Endpoint = v
	}
	if v := os.Getenv("STORAGE_BUCKET"); v != "" {
		cfg.Storage.Bucket = v
	}
	if v := os.Getenv("STORAGE_ACCESS_KEY"); v != "" {
		cfg.Storage.AccessKey = v
	}
	if v := os.Getenv("STORAGE_SECRET_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.FrontendURL = v
	}
	if v := os.Getenv("FIRST_ADMIN_EMAIL"); v != "" {
		cfg.FirstAdminEmail = v
	}
	if v := os.Getenv("FIRST_ADMIN_PASSWORD"); v != "" {
		cfg.FirstAdminPassword = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Email.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		cfg.Email.SMTPPort, _ = strconv.Atoi(v)
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		cfg.Email.SMTPUsername = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.SMTPPassword = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 24
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.Folder == "" {
		cfg.Storage.Folder = "talent-media-kits"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 100 * 1024 * 1024 // 100MB, потолок провайдера
	}
	if cfg.Upload.MaxFiles == 0 {
		cfg.Upload.MaxFiles = 10
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "Talento"
	}
}

// GetConfig возвращает конфигурацию, загружая её при первом обращении
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
