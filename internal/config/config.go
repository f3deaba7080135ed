package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	ModeCLI    = "cli"
	ModeServer = "server"
	ModeBoth   = "both"
)

type Config struct {
	Mode            string
	Port            string
	OTelServiceName string
	OTelEndpoint    string
	Environment     string
	LogLevel        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MetricInterval  time.Duration

	loadErrs []error
}

// Load reads the environment. Malformed values keep their defaults and are
// reported by Validate.
func Load() *Config {
	c := &Config{
		Mode:            envOr("APP_MODE", ModeCLI),
		Port:            envOr("APP_PORT", "8080"),
		OTelServiceName: envOr("OTEL_SERVICE_NAME", "carparking-service"),
		OTelEndpoint:    envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		Environment:     envOr("ENVIRONMENT", "development"),
		LogLevel:        envOr("LOG_LEVEL", "info"),
	}
	c.ReadTimeout = c.envOrDuration("HTTP_READ_TIMEOUT", 15*time.Second)
	c.WriteTimeout = c.envOrDuration("HTTP_WRITE_TIMEOUT", 15*time.Second)
	c.IdleTimeout = c.envOrDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)
	c.ShutdownTimeout = c.envOrDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	c.MetricInterval = c.envOrDuration("METRIC_EXPORT_INTERVAL", 5*time.Second)
	return c
}

func (c *Config) Validate() error {
	errs := append([]error(nil), c.loadErrs...)

	switch c.Mode {
	case ModeCLI, ModeServer, ModeBoth:
	default:
		errs = append(errs, fmt.Errorf("mode must be cli, server or both, got: %q", c.Mode))
	}

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got: %q", c.Port))
	}

	if c.OTelServiceName == "" {
		errs = append(errs, errors.New("service name cannot be empty"))
	}

	timeouts := []struct {
		name string
		d    time.Duration
	}{
		{"read timeout", c.ReadTimeout},
		{"write timeout", c.WriteTimeout},
		{"idle timeout", c.IdleTimeout},
		{"shutdown timeout", c.ShutdownTimeout},
		{"metric export interval", c.MetricInterval},
	}
	for _, t := range timeouts {
		if t.d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got: %s", t.name, t.d))
		}
	}

	return errors.Join(errs...)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func (c *Config) envOrDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		c.loadErrs = append(c.loadErrs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}
