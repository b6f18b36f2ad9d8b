package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultMaxUploadSize = 10 * 1024 * 1024
	defaultWorkers       = 4
	defaultQueueSize     = 256
	defaultTimeout       = 2 * time.Minute
	defaultTelegramAPI   = "https://api.telegram.org"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Processing ProcessingConfig `mapstructure:"processing"`
	Upload     UploadConfig     `mapstructure:"upload"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Exporters  ExportersConfig  `mapstructure:"exporters"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	SecretKey   string `mapstructure:"secret_key"`
	BodyLimit   int    `mapstructure:"body_limit"`
	DocsURL     string `mapstructure:"docs_url"`
}

type MetricsConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	EnableLatency  bool `mapstructure:"enable_latency"`
	EnableCategory bool `mapstructure:"enable_category"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type ProcessingConfig struct {
	Workers   int           `mapstructure:"workers"`
	QueueSize int           `mapstructure:"queue_size"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type UploadConfig struct {
	MaxSize           int      `mapstructure:"max_size"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
	UploadedBy        string   `mapstructure:"uploaded_by"`
}

type TelegramConfig struct {
	BotToken    string `mapstructure:"bot_token"`
	AdminChatID string `mapstructure:"admin_chat_id"`
	APIURL      string `mapstructure:"api_url"`
	AppURL      string `mapstructure:"app_url"`
}

type ExportersConfig struct {
	Kafka ExporterConfig `mapstructure:"kafka"`
}

type ExporterConfig struct {
	Enabled  bool                   `mapstructure:"enabled"`
	Settings map[string]interface{} `mapstructure:"settings"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		setDefaultValues(&globalConfig)
		return fmt.Errorf("⚠️ Warning: Could not load main config file: %v", err)
	}
	setDefaultValues(&globalConfig)
	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	v := viper.New()
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			if uerr := v.Unmarshal(out); uerr != nil {
				return fmt.Errorf("failed to unmarshal %s config: %w", fileName, uerr)
			}
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

// bindEnv registers the keys that must be settable from the environment
// even when the yaml file does not mention them.
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"server.port", "server.metrics_port", "server.secret_key",
		"database.host", "database.port", "database.user", "database.password", "database.name", "database.sslmode",
		"redis.host", "redis.port", "redis.password", "redis.db", "redis.tls",
		"processing.workers", "processing.queue_size", "processing.timeout",
		"telegram.bot_token", "telegram.admin_chat_id", "telegram.api_url", "telegram.app_url",
	} {
		_ = v.BindEnv(key)
	}
}

func setDefaultValues(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MetricsPort == 0 {
		cfg.Server.MetricsPort = 9090
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 50
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 25
	}
	if cfg.Processing.Workers <= 0 {
		cfg.Processing.Workers = defaultWorkers
	}
	if cfg.Processing.QueueSize <= 0 {
		cfg.Processing.QueueSize = defaultQueueSize
	}
	if cfg.Processing.Timeout <= 0 {
		cfg.Processing.Timeout = defaultTimeout
	}
	if cfg.Upload.MaxSize <= 0 {
		cfg.Upload.MaxSize = defaultMaxUploadSize
	}
	if len(cfg.Upload.AllowedExtensions) == 0 {
		cfg.Upload.AllowedExtensions = []string{".log", ".txt"}
	}
	if cfg.Upload.UploadedBy == "" {
		cfg.Upload.UploadedBy = "demo-user"
	}
	if cfg.Server.BodyLimit <= 0 {
		// multipart framing on top of the largest accepted file
		cfg.Server.BodyLimit = cfg.Upload.MaxSize + 1024*1024
	}
	if cfg.Server.DocsURL == "" {
		cfg.Server.DocsURL = fmt.Sprintf("http://localhost:%d/swagger.json", cfg.Server.Port)
	}
	if cfg.Telegram.APIURL == "" {
		cfg.Telegram.APIURL = defaultTelegramAPI
	}
}

func GetConfig() *Config {
	return &globalConfig
}
