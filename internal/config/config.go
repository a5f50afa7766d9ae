package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Logger       LoggerConfig       `mapstructure:"logger"`
	Translations TranslationsConfig `mapstructure:"translations"`
	AppStore     AppStoreConfig     `mapstructure:"app_store"`
	Contact      ContactConfig      `mapstructure:"contact"`
	Email        EmailConfig        `mapstructure:"email"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Database     DatabaseConfig     `mapstructure:"database"`
}

type ServerConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Mode      string `mapstructure:"mode"`
	Dev       bool   `mapstructure:"dev"`
	DistDir   string `mapstructure:"dist_dir"`
	DevTarget string `mapstructure:"dev_target"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TranslationsConfig struct {
	Dir             string   `mapstructure:"dir"`
	DefaultLanguage string   `mapstructure:"default_language"`
	Supported       []string `mapstructure:"supported"`
	// RemoteURL, when set, points at a translations.json fetched once at
	// startup for RemoteLanguage.
	RemoteURL      string `mapstructure:"remote_url"`
	RemoteLanguage string `mapstructure:"remote_language"`
}

type AppStoreConfig struct {
	IOS     string `mapstructure:"ios"`
	Android string `mapstructure:"android"`
}

// Links returns the configured store URLs keyed by data-store name.
func (a AppStoreConfig) Links() map[string]string {
	links := make(map[string]string, 2)
	if a.IOS != "" {
		links["ios"] = a.IOS
	}
	if a.Android != "" {
		links["android"] = a.Android
	}
	return links
}

type ContactConfig struct {
	Inbox string `mapstructure:"inbox"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Enabled reports whether a Redis host is configured.
func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// serverModes are the run modes gin accepts.
var serverModes = []string{"debug", "release", "test"}

// Load loads configuration from file and environment variables.
// An empty path searches ./configs and ../configs for config.yaml; a missing
// file is not an error, defaults and environment still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
	}

	v.SetEnvPrefix("EXAURA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if !slices.Contains(serverModes, c.Server.Mode) {
		return fmt.Errorf("invalid server.mode %q: must be one of %s", c.Server.Mode, strings.Join(serverModes, ", "))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.dev", false)
	v.SetDefault("server.dist_dir", "../oniwebsite/dist")
	v.SetDefault("server.dev_target", "http://localhost:5173")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("translations.dir", "locales")
	v.SetDefault("translations.default_language", "en")
	v.SetDefault("translations.supported", []string{"en", "pt", "sv"})
	v.SetDefault("translations.remote_url", "")
	v.SetDefault("translations.remote_language", "en")

	v.SetDefault("app_store.ios", "https://apps.apple.com/app/exaura/id123456789")
	v.SetDefault("app_store.android", "https://play.google.com/store/apps/details?id=com.exaura.quitsmokingapp")

	v.SetDefault("contact.inbox", "")

	v.SetDefault("email.smtp_host", "")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_password", "")
	v.SetDefault("email.from_address", "noreply@exaura.local")
	v.SetDefault("email.from_name", "Exaura")

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("database.path", "exaura.db")
}
