package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultListenAddr = "0.0.0.0:8000"
	DefaultLogLevel   = "debug"

	configFileName = ".otaserve.toml"

	configDirEnvKey          = "OTASERVE_CONFIG_DIR"
	trustProjectConfigEnvKey = "OTASERVE_TRUST_PROJECT_CONFIG"
	listenAddrEnvKey         = "OTASERVE_LISTEN_ADDR"
	payloadDirEnvKey         = "OTASERVE_PAYLOAD_DIR"
)

// Config defines runtime configuration for otaserve.
type Config struct {
	ListenAddr               string `toml:"listen_addr" yaml:"listen_addr"`
	PayloadDir               string `toml:"payload_dir" yaml:"payload_dir"`
	LogLevel                 string `toml:"log_level" yaml:"log_level"`
	TrustedProjectConfigPath string `toml:"-" yaml:"-"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		ListenAddr: DefaultListenAddr,
		PayloadDir: "",
		LogLevel:   DefaultLogLevel,
	}
}

func loadFile(path string, cfg *Config) error {
	_, err := loadFileIfExists(path, cfg)
	return err
}

func loadFileIfExists(path string, cfg *Config) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

func trustProjectConfig() bool {
	raw := strings.TrimSpace(os.Getenv(trustProjectConfigEnvKey))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}

var allowedKeys = []string{
	"listen_addr",
	"payload_dir",
	"log_level",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "listen_addr":
		return c.ListenAddr, nil
	case "payload_dir":
		return c.PayloadDir, nil
	case "log_level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// ProjectPath returns the path to the project config file.
func ProjectPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, configFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	data[key] = parsedValue

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads config from trusted files and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	if overridePath, ok := overrideConfigPath(); ok {
		if err := loadFile(overridePath, &cfg); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			if err := loadFile(filepath.Join(home, configFileName), &cfg); err != nil {
				return nil, err
			}
		}

		if trustProjectConfig() {
			if cwd, err := os.Getwd(); err == nil {
				projectPath := filepath.Join(cwd, configFileName)
				info, statErr := os.Stat(projectPath)
				switch {
				case statErr == nil && !info.IsDir():
					if err := loadFile(projectPath, &cfg); err != nil {
						return nil, err
					}
					cfg.TrustedProjectConfigPath = projectPath
				case statErr != nil && !os.IsNotExist(statErr):
					return nil, statErr
				}
			}
		}
	}

	if addr := strings.TrimSpace(os.Getenv(listenAddrEnvKey)); addr != "" {
		cfg.ListenAddr = addr
	}
	if dir := strings.TrimSpace(os.Getenv(payloadDirEnvKey)); dir != "" {
		cfg.PayloadDir = dir
	}

	cfg.normalize()

	return &cfg, nil
}

// ValidateListenAddr checks that addr is a host:port pair with a numeric port.
func ValidateListenAddr(addr string) error {
	_, port, err := net.SplitHostPort(strings.TrimSpace(addr))
	if err != nil {
		return fmt.Errorf("listen_addr must be host:port: %w", err)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("listen_addr has invalid port %q", port)
	}
	return nil
}

// ParseLogLevel accepts debug, info, warn, warning, error (any case) or a
// numeric slog level. Blank means the default level.
func ParseLogLevel(raw string) (slog.Level, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "":
		value = DefaultLogLevel
	case "warning":
		return slog.LevelWarn, nil
	}

	if n, err := strconv.Atoi(value); err == nil {
		return slog.Level(n), nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelDebug, fmt.Errorf("invalid log level %q", raw)
	}
	return level, nil
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "listen_addr":
		if err := ValidateListenAddr(value); err != nil {
			return nil, err
		}
		return value, nil
	case "log_level":
		if _, err := ParseLogLevel(value); err != nil {
			return nil, err
		}
		return value, nil
	default:
		return value, nil
	}
}

func (c *Config) normalize() {
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	c.PayloadDir = strings.TrimSpace(c.PayloadDir)
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}
}
