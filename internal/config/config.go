package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the root configuration structure for the application
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Codec  CodecConfig  `mapstructure:"codec"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds the network settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ReadBuffer      int           `mapstructure:"read_buffer"`      // bytes read per frame; a frame must fit in one read
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`     // read deadline between frames, 0 disables it
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // how long Shutdown waits for open connections
}

// CodecConfig bounds what the RESP codec accepts
type CodecConfig struct {
	MaxDepth int `mapstructure:"max_depth"` // nested arrays allowed in one value
}

// LogConfig defines logging verbosity and output style
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// Load reads the configuration from a file and overrides it with environment variables
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	v.SetEnvPrefix("RESPWIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("config: server.port is empty")
	}
	if c.Server.ReadBuffer <= 0 {
		return fmt.Errorf("config: server.read_buffer must be positive, got %d", c.Server.ReadBuffer)
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("config: server.idle_timeout must not be negative, got %s", c.Server.IdleTimeout)
	}
	if c.Codec.MaxDepth <= 0 {
		return fmt.Errorf("config: codec.max_depth must be positive, got %d", c.Codec.MaxDepth)
	}
	return nil
}

// setDefaults populates viper with fallback values if they are not provided via file or ENV
func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "6380")
	v.SetDefault("server.read_buffer", 64*1024)
	v.SetDefault("server.idle_timeout", "5m")
	v.SetDefault("server.shutdown_timeout", "5s")

	// Codec
	v.SetDefault("codec.max_depth", 512)

	// Logger
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
