// Package config loads jacai settings from the config file, the environment
// and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	ProviderHTTP     = "http"
	ProviderOpenAI   = "openai"
	ProviderTemplate = "template"

	EnvPrefix         = "JACAI"
	DefaultEnvFile    = ".env"
	defaultConfigDir  = ".config/jacai"
	defaultConfigName = "config.toml"
)

const (
	KeyProvider          = "provider"
	KeyServiceURL        = "service.url"
	KeyServiceAPIKey     = "service.api_key"
	KeyServiceTimeout    = "service.timeout"
	KeyOpenAIAPIKey      = "openai.api_key"
	KeyOpenAIModel       = "openai.model"
	KeyOpenAIBaseURL     = "openai.base_url"
	KeyHistoryPath       = "history.path"
	KeyClipboardScratch  = "clipboard.scratch_dir"
	KeyClipboardSystem   = "clipboard.system"
	KeyClipboardOSC52    = "clipboard.osc52"
	KeySecretsBackend    = "secrets.backend"
	KeySecretsDir        = "secrets.dir"
	KeyLogLevel          = "log.level"
	KeyLogFile           = "log.file"
	openAIAPIKeyFallback = "OPENAI_API_KEY"
)

var (
	ErrUnknownProvider = errors.New("unknown generation provider")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidTimeout  = errors.New("service timeout must not be negative")
	ErrUnknownBackend  = errors.New("unknown secrets backend")
)

type Options struct {
	// ConfigPath overrides the default config file; a missing explicit file is an error.
	ConfigPath string
	// EnvFile is loaded before reading the environment when it exists.
	EnvFile  string
	Provider string
}

type Config struct {
	Provider  string
	Service   ServiceConfig
	OpenAI    OpenAIConfig
	History   HistoryConfig
	Clipboard ClipboardConfig
	Secrets   SecretsConfig
	Log       LogConfig

	viper *viper.Viper
}

type ServiceConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type HistoryConfig struct {
	Path string
}

type ClipboardConfig struct {
	// System enables the desktop clipboard; when off every copy goes through the fallback.
	System     bool
	ScratchDir string
	OSC52      bool
}

type SecretsConfig struct {
	// Backend is auto (pass, then files), pass or file.
	Backend string
	Dir     string
}

type LogConfig struct {
	Level string
	File  string
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, defaultConfigDir, defaultConfigName), nil
}

func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, opts.ConfigPath); err != nil {
		return nil, err
	}

	if provider := strings.TrimSpace(opts.Provider); provider != "" {
		v.Set(KeyProvider, provider)
	}

	cfg := &Config{
		Provider: strings.ToLower(strings.TrimSpace(v.GetString(KeyProvider))),
		Service: ServiceConfig{
			URL:     v.GetString(KeyServiceURL),
			APIKey:  v.GetString(KeyServiceAPIKey),
			Timeout: v.GetDuration(KeyServiceTimeout),
		},
		OpenAI: OpenAIConfig{
			APIKey:  v.GetString(KeyOpenAIAPIKey),
			Model:   v.GetString(KeyOpenAIModel),
			BaseURL: v.GetString(KeyOpenAIBaseURL),
		},
		History: HistoryConfig{
			Path: v.GetString(KeyHistoryPath),
		},
		Clipboard: ClipboardConfig{
			System:     v.GetBool(KeyClipboardSystem),
			ScratchDir: v.GetString(KeyClipboardScratch),
			OSC52:      v.GetBool(KeyClipboardOSC52),
		},
		Secrets: SecretsConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString(KeySecretsBackend))),
			Dir:     v.GetString(KeySecretsDir),
		},
		Log: LogConfig{
			Level: v.GetString(KeyLogLevel),
			File:  v.GetString(KeyLogFile),
		},
		viper: v,
	}
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv(openAIAPIKeyFallback)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Viper exposes the resolved settings to adapters that read their own keys.
func (c *Config) Viper() *viper.Viper {
	if c.viper == nil {
		return viper.New()
	}
	return c.viper
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderHTTP, ProviderOpenAI, ProviderTemplate:
	default:
		return fmt.Errorf("%w %q (want %s, %s or %s)", ErrUnknownProvider, c.Provider, ProviderHTTP, ProviderOpenAI, ProviderTemplate)
	}

	switch c.Secrets.Backend {
	case "auto", "pass", "file":
	default:
		return fmt.Errorf("%w %q (want auto, pass or file)", ErrUnknownBackend, c.Secrets.Backend)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidLogLevel, c.Log.Level)
	}

	if c.Service.Timeout < 0 {
		return ErrInvalidTimeout
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyProvider, ProviderHTTP)
	v.SetDefault(KeyServiceURL, "http://localhost:8080")
	v.SetDefault(KeyServiceAPIKey, "")
	v.SetDefault(KeyServiceTimeout, time.Duration(0))
	v.SetDefault(KeyOpenAIAPIKey, "")
	v.SetDefault(KeyOpenAIModel, "gpt-4o-mini")
	v.SetDefault(KeyOpenAIBaseURL, "")
	v.SetDefault(KeyHistoryPath, "")
	v.SetDefault(KeyClipboardScratch, "")
	v.SetDefault(KeyClipboardSystem, true)
	v.SetDefault(KeyClipboardOSC52, true)
	v.SetDefault(KeySecretsBackend, "auto")
	v.SetDefault(KeySecretsDir, "")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
}

func readConfigFile(v *viper.Viper, explicitPath string) error {
	path := explicitPath
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = defaultPath

		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	return nil
}

// SecretsDir is where the file secrets backend keeps entries.
func (c *Config) SecretsDir() (string, error) {
	if c.Secrets.Dir != "" {
		return c.Secrets.Dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, defaultConfigDir, "secrets"), nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}

	return nil
}
