/*
Package config manages the TOML config for typeahead.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/typeahead/internal/utils"
	"github.com/bastiangx/typeahead/pkg/suggest"
	"github.com/charmbracelet/log"
)

const (
	appDir     = "typeahead"
	configFile = "config.toml"
)

// Config holds the entire config structure
type Config struct {
	Trie   TrieConfig   `toml:"trie"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// TrieConfig holds the ranking cache options.
type TrieConfig struct {
	CacheCap int `toml:"cache_cap"`
}

// DictConfig holds snapshot loading options.
type DictConfig struct {
	SkipForeign bool `toml:"skip_foreign"`
	MaxWords    int  `toml:"max_words"`
}

// CliConfig holds line protocol options.
type CliConfig struct {
	EchoErrors bool `toml:"echo_errors"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	Protocol     string `toml:"protocol"`
	DefaultLimit int    `toml:"default_limit"`
	MaxLimit     int    `toml:"max_limit"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Trie: TrieConfig{
			CacheCap: suggest.DefaultCacheCap,
		},
		Dict: DictConfig{
			SkipForeign: false,
			MaxWords:    0,
		},
		CLI: CliConfig{
			EchoErrors: true,
		},
		Server: ServerConfig{
			Protocol:     "msgpack",
			DefaultLimit: 10,
			MaxLimit:     1000,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. $XDG_CONFIG_HOME/typeahead or ~/.config/typeahead
// 2. Current executable dir
func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		path := filepath.Join(xdg, appDir)
		if result := utils.CheckDirStatus(path); result.Writable {
			return path, nil
		}
	}
	homeDir, err := os.UserHomeDir()
	if err == nil {
		path := filepath.Join(homeDir, ".config", appDir)
		if result := utils.CheckDirStatus(path); result.Writable {
			return path, nil
		}
	} else {
		log.Errorf("Failed to get home directory: %v", err)
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/typeahead/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// defaults; a file with type errors is salvaged section by section.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.DecodeTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.normalize()
	return config, nil
}

// tryPartialParse keeps every well-typed key and defaults the rest
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	table, err := utils.ReadTOMLTable(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := table.Section("trie"); ok {
		if val, ok := section.Int("cache_cap"); ok {
			config.Trie.CacheCap = val
		}
	}
	if section, ok := table.Section("dict"); ok {
		if val, ok := section.Bool("skip_foreign"); ok {
			config.Dict.SkipForeign = val
		}
		if val, ok := section.Int("max_words"); ok {
			config.Dict.MaxWords = val
		}
	}
	if section, ok := table.Section("cli"); ok {
		if val, ok := section.Bool("echo_errors"); ok {
			config.CLI.EchoErrors = val
		}
	}
	if section, ok := table.Section("server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := table.Section("log"); ok {
		if val, ok := section.String("level"); ok {
			config.Log.Level = val
		}
	}
	config.normalize()
	return config, nil
}

// extractServerConfig copies the well typed [server] keys
func extractServerConfig(section utils.TOMLTable, server *ServerConfig) {
	if val, ok := section.String("protocol"); ok {
		server.Protocol = val
	}
	if val, ok := section.Int("default_limit"); ok {
		server.DefaultLimit = val
	}
	if val, ok := section.Int("max_limit"); ok {
		server.MaxLimit = val
	}
}

// normalize replaces out of range values with their defaults
func (c *Config) normalize() {
	defaults := DefaultConfig()
	if c.Trie.CacheCap < 1 {
		log.Warnf("Invalid trie.cache_cap %d, using %d", c.Trie.CacheCap, defaults.Trie.CacheCap)
		c.Trie.CacheCap = defaults.Trie.CacheCap
	}
	if c.Dict.MaxWords < 0 {
		c.Dict.MaxWords = defaults.Dict.MaxWords
	}
	if c.Server.Protocol != "msgpack" && c.Server.Protocol != "json" {
		log.Warnf("Unknown server.protocol %q, using %s", c.Server.Protocol, defaults.Server.Protocol)
		c.Server.Protocol = defaults.Server.Protocol
	}
	if c.Server.MaxLimit < 1 {
		c.Server.MaxLimit = defaults.Server.MaxLimit
	}
	if c.Server.DefaultLimit < 1 || c.Server.DefaultLimit > c.Server.MaxLimit {
		c.Server.DefaultLimit = min(defaults.Server.DefaultLimit, c.Server.MaxLimit)
	}
}

// RebuildConfigFile force creates a new config.toml at path, or at the default location when path is empty
func RebuildConfigFile(path string) (string, error) {
	if path == "" {
		defaultPath, err := GetDefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return "", err
	}
	return path, SaveConfig(DefaultConfig(), path)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
