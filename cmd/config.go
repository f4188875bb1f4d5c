package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	SocketPath  string `yaml:"socket_path"`
	TrustDomain string `yaml:"trust_domain"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
}

func defaultConfig() Config {
	return Config{
		SocketPath:  defaultSocketPath,
		TrustDomain: "example.com",
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// loadConfig reads the YAML file at path over the defaults. An empty path
// yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// configFlags registers the flags shared by all commands. Flags left unset
// keep the value from the config file.
type configFlags struct {
	configPath  string
	socketPath  string
	trustDomain string
	logLevel    string
	logFormat   string
}

func (f *configFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&f.socketPath, "socketPath", "", "Path of the local socket (default "+defaultSocketPath+")")
	fs.StringVar(&f.trustDomain, "trustDomain", "", "Trust domain used to name callers")
	fs.StringVar(&f.logLevel, "logLevel", "", "Log level: debug, info, warn or error")
	fs.StringVar(&f.logFormat, "logFormat", "", "Log format: text or json")
}

func (f *configFlags) load() (Config, error) {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return cfg, err
	}
	if f.socketPath != "" {
		cfg.SocketPath = f.socketPath
	}
	if f.trustDomain != "" {
		cfg.TrustDomain = f.trustDomain
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.logFormat != "" {
		cfg.LogFormat = f.logFormat
	}
	return cfg, nil
}

func (c Config) newLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetLevel(level)
	switch c.LogFormat {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return log, nil
}
