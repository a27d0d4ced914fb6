package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Store    StoreConfig
	Log      LogConfig
	Auth     AuthConfig
	Order    OrderConfig
	Gateway  GatewayConfig
}

type ServerConfig struct {
	CustomerPort int
	MerchantPort int
	AdminPort    int
	GatewayPort  int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN renders the go-sql-driver connection string. parseTime is always
// on so DATETIME columns scan into time.Time.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

// StoreConfig selects the record-store backend. Driver is either
// "mysql" or "memory"; the memory driver keeps all records process-local
// and needs no database.
type StoreConfig struct {
	Driver string
}

type LogConfig struct {
	Level string
}

type AuthConfig struct {
	GoogleUserInfoURL string
	SessionTTL        time.Duration
}

type OrderConfig struct {
	MaxRetryAttempts int
	CommitTimeout    time.Duration
}

type GatewayConfig struct {
	CustomerURL string
	MerchantURL string
	AdminURL    string
	RoutesFile  string
}

const (
	StoreDriverMySQL  = "mysql"
	StoreDriverMemory = "memory"
)

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("CUSTOMER_PORT", 8001)
	viper.SetDefault("MERCHANT_PORT", 8002)
	viper.SetDefault("ADMIN_PORT", 8003)
	viper.SetDefault("GATEWAY_PORT", 8000)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "bazaar")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "bazaar")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("STORE_DRIVER", StoreDriverMySQL)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("GOOGLE_USERINFO_URL", "https://www.googleapis.com/oauth2/v2/userinfo")
	viper.SetDefault("SESSION_TTL", "24h")
	viper.SetDefault("ORDER_MAX_RETRY_ATTEMPTS", 3)
	viper.SetDefault("ORDER_COMMIT_TIMEOUT", "5s")
	viper.SetDefault("GATEWAY_CUSTOMER_URL", "http://localhost:8001")
	viper.SetDefault("GATEWAY_MERCHANT_URL", "http://localhost:8002")
	viper.SetDefault("GATEWAY_ADMIN_URL", "http://localhost:8003")
	viper.SetDefault("GATEWAY_ROUTES_FILE", "")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}
	sessionTTL, err := time.ParseDuration(viper.GetString("SESSION_TTL"))
	if err != nil {
		return nil, err
	}
	commitTimeout, err := time.ParseDuration(viper.GetString("ORDER_COMMIT_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			CustomerPort: viper.GetInt("CUSTOMER_PORT"),
			MerchantPort: viper.GetInt("MERCHANT_PORT"),
			AdminPort:    viper.GetInt("ADMIN_PORT"),
			GatewayPort:  viper.GetInt("GATEWAY_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Store: StoreConfig{
			Driver: viper.GetString("STORE_DRIVER"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Auth: AuthConfig{
			GoogleUserInfoURL: viper.GetString("GOOGLE_USERINFO_URL"),
			SessionTTL:        sessionTTL,
		},
		Order: OrderConfig{
			MaxRetryAttempts: viper.GetInt("ORDER_MAX_RETRY_ATTEMPTS"),
			CommitTimeout:    commitTimeout,
		},
		Gateway: GatewayConfig{
			CustomerURL: viper.GetString("GATEWAY_CUSTOMER_URL"),
			MerchantURL: viper.GetString("GATEWAY_MERCHANT_URL"),
			AdminURL:    viper.GetString("GATEWAY_ADMIN_URL"),
			RoutesFile:  viper.GetString("GATEWAY_ROUTES_FILE"),
		},
	}

	return cfg, nil
}
