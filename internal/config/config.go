package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aipo-io/cli/internal/client"
	"github.com/aipo-io/cli/internal/common"
	"github.com/aipo-io/cli/internal/sessions"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	DefaultAppURL  = "http://localhost:3000"
	DefaultTheme   = ThemeSystem
	envPrefix      = "AIPO"
	configFileName = "config"
)

var ErrInvalidAPIURL = errors.New("api url must be an absolute http or https URL")

var userHomeDir = os.UserHomeDir

func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)

	config, err := unmarshalConfig(v)
	if err != nil {
		// Defaults are static; failing here is a programming error.
		panic(fmt.Sprintf("error unmarshaling default config: %v", err))
	}
	return config
}

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	setupViperConfig(v, configFile)
	bindEnvironmentVariables(v)

	config, err := readAndUnmarshalConfig(v)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := setupLogging(config, v); err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile loads the .env file if it exists
func loadEnvFile() error {
	if err := gotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}
	return nil
}

// setupViperConfig configures viper with file paths and defaults
func setupViperConfig(v *viper.Viper, configFile string) {
	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if home, err := userHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "aipo"))
	}

	if len(configFile) > 0 {
		v.SetConfigFile(configFile)
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// bindEnvironmentVariables binds the variables that do not follow the
// AIPO_<KEY> scheme. The web app's public variables are honoured so one .env
// serves both.
func bindEnvironmentVariables(v *viper.Viper) {
	v.BindEnv("api.url", "AIPO_API_URL", "NEXT_PUBLIC_API_URL")
	v.BindEnv("app.url", "AIPO_APP_URL", "NEXT_PUBLIC_APP_URL")
	v.BindEnv("api.timeout", "AIPO_API_TIMEOUT")
	v.BindEnv("storage.path", "AIPO_STORAGE_PATH")
	v.BindEnv("ui.theme", "AIPO_UI_THEME")
	v.BindEnv("ui.notifications", "AIPO_UI_NOTIFICATIONS")
	v.BindEnv("logging.level", "AIPO_LOGGING_LEVEL")
	v.BindEnv("logging.format", "AIPO_LOGGING_FORMAT")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.url", client.DefaultBaseURL)
	v.SetDefault("api.timeout", client.DefaultTimeout)
	v.SetDefault("app.url", DefaultAppURL)

	storagePath, err := sessions.DefaultSessionPath()
	if err != nil {
		storagePath = filepath.Join(".", ".aipo")
	}
	v.SetDefault("storage.path", storagePath)

	v.SetDefault("ui.theme", string(DefaultTheme))
	v.SetDefault("ui.notifications", string(NotificationsTerminal))

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
}

// readAndUnmarshalConfig reads the configuration file and unmarshals it
func readAndUnmarshalConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and environment variables
	}

	config, err := unmarshalConfig(v)
	if err != nil {
		return nil, err
	}
	config.file = v.ConfigFileUsed()

	return config, nil
}

func unmarshalConfig(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// setupLogging configures the logging system based on the config
func setupLogging(config *Config, v *viper.Viper) error {
	logrusLevel, err := logrus.ParseLevel(config.Logging.Level)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}

	// Command output goes to stdout; logs never mix with it.
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrusLevel)

	config.logger = newEventLogger(defaultEventBufferSize)
	logrus.AddHook(config.logger)

	switch strings.ToLower(config.Logging.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	if logrusLevel >= logrus.DebugLevel {
		for key, value := range v.AllSettings() {
			logrus.Debugf("Config '%s': %v\n", key, value)
		}
	}

	return nil
}

// Validate checks values that would otherwise fail late, at request time.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.API),
		validation.Field(&c.App),
		validation.Field(&c.UI),
		validation.Field(&c.Logging),
	)
}

func (api APIConfig) Validate() error {
	return validation.ValidateStruct(&api,
		validation.Field(&api.URL, validation.Required, validation.By(apiURLRule)),
		validation.Field(&api.Timeout, validation.Min(time.Duration(0))),
	)
}

func (app AppConfig) Validate() error {
	return validation.ValidateStruct(&app,
		validation.Field(&app.URL, validation.By(apiURLRule)),
	)
}

func (ui UIConfig) Validate() error {
	return validation.ValidateStruct(&ui,
		validation.Field(&ui.Theme, validation.In(ThemeSystem, ThemeLight, ThemeDark)),
		validation.Field(&ui.Notifications, validation.In(NotificationsTerminal, NotificationsLog)),
	)
}

// Validate accepts the format in any case, as setupLogging does.
func (l LoggingConfig) Validate() error {
	l.Format = strings.ToLower(l.Format)
	return validation.ValidateStruct(&l,
		validation.Field(&l.Format, validation.In("text", "json")),
	)
}

func apiURLRule(value any) error {
	raw, _ := value.(string)
	if len(raw) == 0 || common.IsValidAPIURL(raw) {
		return nil
	}
	return ErrInvalidAPIURL
}

// SetAPIURL overrides the API root, as the --api-url flag does.
func (c *Config) SetAPIURL(raw string) error {
	if !common.IsValidAPIURL(raw) {
		return fmt.Errorf("%w: %q", ErrInvalidAPIURL, raw)
	}
	c.API.URL = strings.TrimSuffix(raw, "/")
	return nil
}

// RecentEvents returns up to count of the most recent warnings and errors
// logged during this run.
func (c *Config) RecentEvents(count int) []*LogEvent {
	if c.logger == nil {
		return nil
	}
	return c.logger.GetRecentEvents(count)
}
