package config

import (
	"errors"
	"time"

	"github.com/vovakirdan/wsecho/internal/echo"
)

const (
	// DefaultServerAddr binds every interface on the demo port.
	DefaultServerAddr = "0.0.0.0:8765"
	// DefaultClientURL targets the loopback server.
	DefaultClientURL = "ws://127.0.0.1:8765"
	// DefaultGreeting is the single message the client sends.
	DefaultGreeting = "Hello, server!"
	// DefaultReadLimit is the largest inbound message accepted, in bytes.
	DefaultReadLimit int64 = 1 << 20
)

// Config holds server, client and logging configuration values.
type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Client ClientConfig `mapstructure:"client" yaml:"client"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// ServerConfig configures the echo server.
type ServerConfig struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	Label             string        `mapstructure:"label" yaml:"label"`
	// ReadLimit caps a single inbound message in bytes. Zero means DefaultReadLimit.
	ReadLimit int64 `mapstructure:"read_limit" yaml:"read_limit"`
}

// ClientConfig configures the greeting client.
type ClientConfig struct {
	URL      string `mapstructure:"url" yaml:"url"`
	Greeting string `mapstructure:"greeting" yaml:"greeting"`
	// Timeout bounds the whole exchange. Zero waits forever.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LogConfig selects logger level and output format (console or json).
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns configuration reproducing the demo's fixed values.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:              DefaultServerAddr,
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   5 * time.Second,
			Label:             echo.Label,
			ReadLimit:         DefaultReadLimit,
		},
		Client: ClientConfig{
			URL:      DefaultClientURL,
			Greeting: DefaultGreeting,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.ReadHeaderTimeout != 0 {
		c.Server.ReadHeaderTimeout = other.Server.ReadHeaderTimeout
	}
	if other.Server.ShutdownTimeout != 0 {
		c.Server.ShutdownTimeout = other.Server.ShutdownTimeout
	}
	if other.Server.Label != "" {
		c.Server.Label = other.Server.Label
	}
	if other.Server.ReadLimit != 0 {
		c.Server.ReadLimit = other.Server.ReadLimit
	}
	if other.Client.URL != "" {
		c.Client.URL = other.Client.URL
	}
	if other.Client.Greeting != "" {
		c.Client.Greeting = other.Client.Greeting
	}
	if other.Client.Timeout != 0 {
		c.Client.Timeout = other.Client.Timeout
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
}

// Validate reports values that would leave either side unable to start.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Client.URL == "" {
		errs = append(errs, errors.New("client.url is empty"))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("server.shutdown_timeout is negative"))
	}
	if c.Client.Timeout < 0 {
		errs = append(errs, errors.New("client.timeout is negative"))
	}
	if c.Server.ReadLimit < 0 {
		errs = append(errs, errors.New("server.read_limit is negative"))
	}
	return errors.Join(errs...)
}
