// Package config loads the runtime configuration.
//
// Values come from two sources, in order of precedence:
//
//  1. Environment variables prefixed with EDUMENTOR_ (EDUMENTOR_DB_URL, ...)
//  2. An optional Java-style properties file holding the connection keys
//     url, name, username, password and driverIdentifier. The legacy names
//     dbUrl, dbName, dbUsername, dbPassword and dbDriverName are accepted too.
//
// Both sources feed the same go-envconfig struct tags, so defaults and type
// conversion live in one place.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magiconair/properties"
	"github.com/sethvargo/go-envconfig"

	"github.com/sakif/edumentor/internal/db"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "EDUMENTOR_"

type Config struct {
	DB        DBConfig
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
}

type DBConfig struct {
	URL              string        `env:"DB_URL, default=edumentor.db"`
	Name             string        `env:"DB_NAME"`
	Username         string        `env:"DB_USERNAME"`
	Password         string        `env:"DB_PASSWORD"`
	Driver           string        `env:"DB_DRIVER, default=sqlite"`
	MaxOpenConns     int           `env:"DB_MAX_OPEN_CONNS, default=10"`
	StatementTimeout time.Duration `env:"DB_STATEMENT_TIMEOUT, default=5s"`
}

// propertyKeys maps properties-file keys to the variable names above
// (without the prefix).
var propertyKeys = map[string]string{
	"url":              "DB_URL",
	"name":             "DB_NAME",
	"username":         "DB_USERNAME",
	"password":         "DB_PASSWORD",
	"driverIdentifier": "DB_DRIVER",

	"dbUrl":        "DB_URL",
	"dbName":       "DB_NAME",
	"dbUsername":   "DB_USERNAME",
	"dbPassword":   "DB_PASSWORD",
	"dbDriverName": "DB_DRIVER",
}

// Load reads the configuration from the environment and, when path is not
// empty, from the properties file at path. A missing or unreadable file is an
// error: the caller asked for it explicitly.
func Load(ctx context.Context, path string) (*Config, error) {
	var props map[string]string
	if path != "" {
		p, err := properties.LoadFile(path, properties.UTF8)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		props = p.Map()
	}
	return load(ctx, envconfig.OsLookuper(), props)
}

func load(ctx context.Context, env envconfig.Lookuper, props map[string]string) (*Config, error) {
	fileVars := make(map[string]string, len(props))
	for key, value := range props {
		if name, ok := propertyKeys[strings.TrimSpace(key)]; ok {
			fileVars[name] = strings.TrimSpace(value)
		}
	}

	var cfg Config
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target: &cfg,
		Lookuper: envconfig.MultiLookuper(
			envconfig.PrefixLookuper(EnvPrefix, env),
			envconfig.MapLookuper(fileVars),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// Database converts the DB section into the provider configuration.
func (c *Config) Database() db.Config {
	return db.Config{
		URL:              c.DB.URL,
		Name:             c.DB.Name,
		Username:         c.DB.Username,
		Password:         c.DB.Password,
		Driver:           c.DB.Driver,
		MaxOpenConns:     c.DB.MaxOpenConns,
		StatementTimeout: c.DB.StatementTimeout,
	}
}

// Level parses LogLevel, falling back to info for unknown values.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
