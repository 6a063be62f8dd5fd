package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	AppName    = "Concentria"
	EnvPrefix  = "CONCENTRIA"
	ConfigName = ".concentria"
	CSVName    = "items.csv"
	QuotesName = "quotes.txt"
	LogName    = "concentria.log"
)

const (
	StorageCSV      = "csv"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN is empty when no database name is configured.
func (c DBConfig) DSN() string {
	if c.Name == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.User, c.Password, net.JoinHostPort(c.Host, c.Port), c.Name, c.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type Config struct {
	DataDir       string
	CSVPath       string
	QuotesPath    string
	LogFile       string
	QuoteInterval time.Duration
	AutoLog       bool

	// Storage selects the entry repository: csv, postgres or memory.
	Storage   string
	Port      string
	RateLimit int

	DB    DBConfig
	Redis RedisConfig

	TokenSecret string
	TokenIssuer string
	TokenTTL    time.Duration
}

// envAliases keeps the unprefixed variables used by docker compose files working.
var envAliases = map[string]string{
	"db.host":        "DB_HOST",
	"db.port":        "DB_PORT",
	"db.user":        "DB_USER",
	"db.password":    "DB_PASSWORD",
	"db.name":        "DB_NAME",
	"db.sslmode":     "DB_SSLMODE",
	"redis.host":     "REDIS_HOST",
	"redis.port":     "REDIS_PORT",
	"redis.password": "REDIS_PASSWORD",
	"redis.db":       "REDIS_DB",
	"port":           "PORT",
	"token.secret":   "JWT_SECRET",
}

// Load layers defaults, an optional .concentria.yaml, .env and the environment.
// configFile, when set, replaces the config search path.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[CONFIG] Ignoring unreadable .env: %v", err)
	}

	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("config: resolve home directory: %w", err)
	}

	v := viper.New()
	setDefaults(v, AppDataDir(runtime.GOOS, home, os.Getenv("APPDATA")))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, alias := range envAliases {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), alias); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if configFile != "" {
		path, err := homedir.Expand(configFile)
		if err != nil {
			return nil, fmt.Errorf("config: expand %s: %w", configFile, err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		if override := os.Getenv(EnvPrefix + "_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath(".")
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper, dataDir string) {
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("csv_path", "")
	v.SetDefault("quotes_path", "")
	v.SetDefault("log_file", "")
	v.SetDefault("quote_interval", "10m")
	v.SetDefault("auto_log", false)
	v.SetDefault("storage", StorageCSV)
	v.SetDefault("port", "8501")
	v.SetDefault("rate_limit", 100)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("token.secret", "")
	v.SetDefault("token.issuer", "concentria")
	v.SetDefault("token.ttl", "720h")
}

func fromViper(v *viper.Viper) (*Config, error) {
	dataDir, err := homedir.Expand(v.GetString("data_dir"))
	if err != nil {
		return nil, fmt.Errorf("config: expand data_dir: %w", err)
	}

	pathOr := func(key, name string) (string, error) {
		p := v.GetString(key)
		if p == "" {
			return filepath.Join(dataDir, name), nil
		}
		return homedir.Expand(p)
	}

	cfg := &Config{
		DataDir:       dataDir,
		QuoteInterval: v.GetDuration("quote_interval"),
		AutoLog:       v.GetBool("auto_log"),
		Storage:       strings.ToLower(v.GetString("storage")),
		Port:          v.GetString("port"),
		RateLimit:     v.GetInt("rate_limit"),
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		TokenSecret: v.GetString("token.secret"),
		TokenIssuer: v.GetString("token.issuer"),
		TokenTTL:    v.GetDuration("token.ttl"),
	}

	if cfg.CSVPath, err = pathOr("csv_path", CSVName); err != nil {
		return nil, fmt.Errorf("config: expand csv_path: %w", err)
	}
	if cfg.QuotesPath, err = pathOr("quotes_path", QuotesName); err != nil {
		return nil, fmt.Errorf("config: expand quotes_path: %w", err)
	}
	if cfg.LogFile, err = pathOr("log_file", LogName); err != nil {
		return nil, fmt.Errorf("config: expand log_file: %w", err)
	}

	if err := ValidateStorage(cfg.Storage); err != nil {
		return nil, err
	}
	if cfg.QuoteInterval <= 0 {
		cfg.QuoteInterval = 10 * time.Minute
	}
	return cfg, nil
}

func ValidateStorage(storage string) error {
	switch storage {
	case StorageCSV, StoragePostgres, StorageMemory:
		return nil
	}
	return fmt.Errorf("config: unknown storage %q (want csv, postgres or memory)", storage)
}

// AppDataDir follows each platform's convention for per-user application data.
func AppDataDir(goos, home, appData string) string {
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", AppName)
	case "windows":
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, AppName)
	default:
		return filepath.Join(home, "."+strings.ToLower(AppName))
	}
}

// EnsureDataDir creates the directory holding the CSV file.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(filepath.Dir(c.CSVPath), 0o755); err != nil {
		return fmt.Errorf("config: create data dir: %w", err)
	}
	return nil
}
