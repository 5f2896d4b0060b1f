package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
)

const (
	defaultServerAddress  = "localhost:8080"
	defaultLoggerLevel    = "info"
	defaultSinkKind       = SinkLog
	defaultClickLogPath   = "clicks.jsonl"
	defaultMigrationsPath = "file://internal/scripts/migrations"
	defaultSinkQueueSize  = 1024
)

// Виды приёмников записей о переходах
const (
	SinkLog      = "log"
	SinkFile     = "file"
	SinkWebhook  = "webhook"
	SinkRedis    = "redis"
	SinkPostgres = "postgres"
)

// Config содержит все конфигурационные параметры приложения
type Config struct {
	ServerAddress  string `json:"server_address" env:"SERVER_ADDRESS" envDefault:"localhost:8080"`
	LoggerLevel    string `json:"log_level" env:"LOG_LEVEL" envDefault:"info"`
	RedirectsFile  string `json:"redirects_file" env:"REDIRECTS_FILE"`
	SinkKind       string `json:"click_sink" env:"CLICK_SINK" envDefault:"log"`
	ClickLogPath   string `json:"click_log_path" env:"CLICK_LOG_PATH" envDefault:"clicks.jsonl"`
	WebhookURL     string `json:"webhook_url" env:"WEBHOOK_URL"`
	RedisAddr      string `json:"redis_addr" env:"REDIS_ADDR"`
	DatabaseDSN    string `json:"database_dsn" env:"DATABASE_DSN"`
	MigrationsPath string `json:"migrations_path" env:"MIGRATIONS_PATH" envDefault:"file://internal/scripts/migrations"`
	SinkQueueSize  int    `json:"sink_queue_size" env:"SINK_QUEUE_SIZE" envDefault:"1024"`
	MaxConnections int    `json:"max_connections" env:"MAX_CONNECTIONS"`
	EnableHTTPS    bool   `json:"enable_https" env:"ENABLE_HTTPS"`
	HTTPSDomain    string `json:"https_domain" env:"HTTPS_DOMAIN"`
	TrustedSubnet  string `json:"trusted_subnet" env:"TRUSTED_SUBNET"`
	PprofAddress   string `json:"pprof_address" env:"PPROF_ADDRESS"`
	ConfigFile     string `json:"-" env:"CONFIG"`
}

// LoadConfig загружает конфигурацию из переменных окружения, флагов командной
// строки и JSON конфиг файла. Значения из файла применяются только к полям,
// оставшимся со значением по умолчанию.
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}

	if err := ParseFlags(config, flag.CommandLine, os.Args[1:]); err != nil {
		return nil, err
	}

	if config.ConfigFile != "" {
		fileConfig, err := loadConfigFromFile(config.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
		mergeConfigs(config, fileConfig)
	}

	return config, nil
}

// ParseFlags добавляет флаги командной строки для параметров конфигурации
// и переопределяет значения, если они указаны в аргументах запуска.
func ParseFlags(config *Config, fs *flag.FlagSet, args []string) error {
	fs.StringVar(&config.ServerAddress, "a", config.ServerAddress, "address and port to run server")
	fs.StringVar(&config.LoggerLevel, "l", config.LoggerLevel, "log level")
	fs.StringVar(&config.RedirectsFile, "r", config.RedirectsFile, "JSON file with lead redirects")
	fs.StringVar(&config.SinkKind, "k", config.SinkKind, "click sinks, comma separated: log,file,webhook,redis,postgres")
	fs.StringVar(&config.ClickLogPath, "f", config.ClickLogPath, "click log file path")
	fs.StringVar(&config.WebhookURL, "w", config.WebhookURL, "webhook URL for clicks")
	fs.StringVar(&config.RedisAddr, "redis", config.RedisAddr, "redis address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MigrationsPath, "m", config.MigrationsPath, "migrations source URL")
	fs.IntVar(&config.SinkQueueSize, "q", config.SinkQueueSize, "async click queue size")
	fs.IntVar(&config.MaxConnections, "n", config.MaxConnections, "max simultaneous connections, 0 for unlimited")
	fs.BoolVar(&config.EnableHTTPS, "s", config.EnableHTTPS, "enable HTTPS")
	fs.StringVar(&config.HTTPSDomain, "domain", config.HTTPSDomain, "domain for the HTTPS certificate")
	fs.StringVar(&config.TrustedSubnet, "t", config.TrustedSubnet, "trusted subnet in CIDR format")
	fs.StringVar(&config.PprofAddress, "p", config.PprofAddress, "pprof address, empty to disable")
	fs.StringVar(&config.ConfigFile, "c", config.ConfigFile, "JSON config file")

	return fs.Parse(args)
}

// Sinks возвращает список включённых приёмников
func (c *Config) Sinks() []string {
	var kinds []string
	for _, kind := range strings.Split(c.SinkKind, ",") {
		if kind = strings.TrimSpace(kind); kind != "" {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// TrustedNet разбирает TrustedSubnet. Пустое значение даёт nil без ошибки.
func (c *Config) TrustedNet() (*net.IPNet, error) {
	if c.TrustedSubnet == "" {
		return nil, nil
	}
	_, ipNet, err := net.ParseCIDR(c.TrustedSubnet)
	if err != nil {
		return nil, fmt.Errorf("parse trusted subnet: %w", err)
	}
	return ipNet, nil
}

func loadConfigFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) isDefault(field string) bool {
	switch field {
	case "ServerAddress":
		return c.ServerAddress == defaultServerAddress
	case "LoggerLevel":
		return c.LoggerLevel == defaultLoggerLevel
	case "SinkKind":
		return c.SinkKind == defaultSinkKind
	case "ClickLogPath":
		return c.ClickLogPath == defaultClickLogPath
	case "MigrationsPath":
		return c.MigrationsPath == defaultMigrationsPath
	case "SinkQueueSize":
		return c.SinkQueueSize == defaultSinkQueueSize
	case "MaxConnections":
		return c.MaxConnections == 0
	case "EnableHTTPS":
		return !c.EnableHTTPS
	default:
		return false
	}
}

func mergeConfigs(dst, src *Config) {
	if src.ServerAddress != "" && dst.isDefault("ServerAddress") {
		dst.ServerAddress = src.ServerAddress
	}
	if src.LoggerLevel != "" && dst.isDefault("LoggerLevel") {
		dst.LoggerLevel = src.LoggerLevel
	}
	if src.SinkKind != "" && dst.isDefault("SinkKind") {
		dst.SinkKind = src.SinkKind
	}
	if src.ClickLogPath != "" && dst.isDefault("ClickLogPath") {
		dst.ClickLogPath = src.ClickLogPath
	}
	if src.MigrationsPath != "" && dst.isDefault("MigrationsPath") {
		dst.MigrationsPath = src.MigrationsPath
	}
	if src.SinkQueueSize > 0 && dst.isDefault("SinkQueueSize") {
		dst.SinkQueueSize = src.SinkQueueSize
	}
	if src.MaxConnections > 0 && dst.isDefault("MaxConnections") {
		dst.MaxConnections = src.MaxConnections
	}
	if src.EnableHTTPS && dst.isDefault("EnableHTTPS") {
		dst.EnableHTTPS = src.EnableHTTPS
	}

	for _, field := range []struct{ dst, src *string }{
		{&dst.RedirectsFile, &src.RedirectsFile},
		{&dst.WebhookURL, &src.WebhookURL},
		{&dst.RedisAddr, &src.RedisAddr},
		{&dst.DatabaseDSN, &src.DatabaseDSN},
		{&dst.HTTPSDomain, &src.HTTPSDomain},
		{&dst.TrustedSubnet, &src.TrustedSubnet},
		{&dst.PprofAddress, &src.PprofAddress},
	} {
		if *field.src != "" && *field.dst == "" {
			*field.dst = *field.src
		}
	}
}
