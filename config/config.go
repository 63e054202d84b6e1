package config

import (
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Blob      BlobConfig      `yaml:"blob"`
	JWT       JWTConfig       `yaml:"jwt"`
	Upload    UploadConfig    `yaml:"upload"`
	Thumbnail ThumbnailConfig `yaml:"thumbnail"`
	Search    SearchConfig    `yaml:"search"`
	CORS      CORSConfig      `yaml:"cors"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password" env:"DRIVEBOX_DB_PASSWORD"`
	Database     string `yaml:"database"`
	Charset      string `yaml:"charset"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password" env:"DRIVEBOX_REDIS_PASSWORD"`
	DB       int    `yaml:"db"`
}

// BlobConfig points at the S3-compatible store holding raw file content.
type BlobConfig struct {
	Endpoint  string `yaml:"endpoint" env:"DRIVEBOX_BLOB_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"DRIVEBOX_BLOB_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"DRIVEBOX_BLOB_SECRET_KEY"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret" env:"DRIVEBOX_JWT_SECRET"`
	ExpireHours int    `yaml:"expire_hours"`
}

type UploadConfig struct {
	MaxFileSize int64 `yaml:"max_file_size"`
}

type ThumbnailConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Quality int `yaml:"quality"`
}

type SearchConfig struct {
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

var AppConfig *Config

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Secrets and endpoints may be overridden from the environment.
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	AppConfig = &cfg
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Charset == "" {
		cfg.Database.Charset = "utf8mb4"
	}
	if cfg.Blob.Bucket == "" {
		cfg.Blob.Bucket = "drivebox"
	}
	if cfg.JWT.ExpireHours == 0 {
		cfg.JWT.ExpireHours = 24
	}
	if cfg.Upload.MaxFileSize == 0 {
		cfg.Upload.MaxFileSize = 50 << 20
	}
	if cfg.Thumbnail.Width == 0 {
		cfg.Thumbnail.Width = 256
	}
	if cfg.Thumbnail.Height == 0 {
		cfg.Thumbnail.Height = 256
	}
	if cfg.Thumbnail.Quality == 0 {
		cfg.Thumbnail.Quality = 80
	}
	if cfg.Search.CacheTTLSeconds == 0 {
		cfg.Search.CacheTTLSeconds = 60
	}
}
