package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LenaDzi1/TimeManager-sub001/internal/repository"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config `mapstructure:"database"`
	Server   ServerConfig      `mapstructure:"server"`

	LogLevel string `mapstructure:"logLevel"`
	Migrate  bool   `mapstructure:"migrate"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", repository.DriverSQLServer)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "")
	v.SetDefault("database.instance", "SQLEXPRESS")
	v.SetDefault("database.name", "TimeManager")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.trustedConnection", true)
	v.SetDefault("database.trustServerCertificate", true)
	v.SetDefault("database.path", "timemanager.db")
	v.SetDefault("database.connectTimeout", 15*time.Second)
	v.SetDefault("database.commandTimeout", 30*time.Second)
	v.SetDefault("database.pooling", true)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("logLevel", "info")
	v.SetDefault("migrate", false)
}

func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), configPath)
}

func loadConfig(v *viper.Viper, path string) (*Config, error) {
	v.SetConfigName(configName)
	v.AddConfigPath(path)
	v.SetConfigType(configFormat)

	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
