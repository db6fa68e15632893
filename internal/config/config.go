package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverGorm     = "gorm"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Storage
	Postgres
	SQLite
	HTTPServer
}

type Storage struct {
	Driver string `env:"STORAGE_DRIVER" env-default:"postgres"`
}

type Postgres struct {
	User     string `env:"POSTGRES_USER" env-default:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" env-default:"postgres"`
	Host     string `env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `env:"POSTGRES_PORT" env-default:"5432"`
	DB       string `env:"POSTGRES_DB" env-default:"polls"`
	SSLMode  string `env:"POSTGRES_SSLMODE" env-default:"disable"`
}

type SQLite struct {
	Path string `env:"SQLITE_PATH" env-default:"polls.db"`
}

type HTTPServer struct {
	BindAddress     string        `env:"BIND_ADDRESS" env-default:"0.0.0.0"`
	BindPort        string        `env:"BIND_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" env-default:"10s"`
}

// Load reads configuration from the environment. Variables from envFile
// are loaded first without overriding ones already set; a missing file is
// not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	conf := &Config{}
	if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	switch conf.Storage.Driver {
	case DriverPostgres, DriverGorm, DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}

	return conf, nil
}

func (p Postgres) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     p.DB,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	return u.String()
}

func (s HTTPServer) Addr() string {
	return net.JoinHostPort(s.BindAddress, s.BindPort)
}
