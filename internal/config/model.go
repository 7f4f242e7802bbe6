package config

import (
	"path/filepath"
	"strings"
	"time"
)

type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

type NotificationMode string

const (
	NotificationsTerminal NotificationMode = "terminal"
	NotificationsLog      NotificationMode = "log"
)

// Config represents the application configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	App     AppConfig     `mapstructure:"app" yaml:"app"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Path of the config file in use, if any
	file   string
	logger *eventLogger
}

type APIConfig struct {
	URL     string        `mapstructure:"url" yaml:"url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// GetURL returns the API root without a trailing slash.
func (api *APIConfig) GetURL() string {
	return strings.TrimSuffix(api.URL, "/")
}

type AppConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

func (app *AppConfig) GetURL() string {
	return strings.TrimSuffix(app.URL, "/")
}

// LoginURL is the web sign-in page.
func (app *AppConfig) LoginURL() string {
	return app.GetURL() + "/login"
}

func (app *AppConfig) RegisterURL() string {
	return app.GetURL() + "/register"
}

type StorageConfig struct {
	// Directory holding the persisted session
	Path string `mapstructure:"path" yaml:"path"`
}

func (s *StorageConfig) GetPath() string {
	if strings.HasPrefix(s.Path, "~/") {
		if home, err := userHomeDir(); err == nil {
			return filepath.Join(home, s.Path[2:])
		}
	}
	return s.Path
}

type UIConfig struct {
	Theme         Theme            `mapstructure:"theme" yaml:"theme"`
	Notifications NotificationMode `mapstructure:"notifications" yaml:"notifications"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ConfigFile is the file the configuration was read from, empty when only
// defaults and the environment were used.
func (c *Config) ConfigFile() string {
	return c.file
}
