package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Client ClientConfig `mapstructure:"client"`
	Export ExportConfig `mapstructure:"export"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORS         CORSConfig    `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// ClientConfig configures the caption client used by the CLI.
type ClientConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	HistorySize    int           `mapstructure:"history_size"`
}

// ExportConfig selects where exported caption files are written.
type ExportConfig struct {
	Format  string        `mapstructure:"format"` // txt or json
	Dir     string        `mapstructure:"dir"`
	Storage StorageConfig `mapstructure:"storage"`
}

// StorageConfig holds S3-compatible settings. An empty Bucket means exports
// stay on the local filesystem.
type StorageConfig struct {
	Type      string `mapstructure:"type"` // r2, s3, s3compatible
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Prefix    string `mapstructure:"prefix"`
	PublicURL string `mapstructure:"public_url"`
}

// Load reads configuration from file, .env and environment.
// Parameters:
//   - configPath: explicit config file; empty searches ./configs and . for config.yaml.
//
// Returns:
//   - *Config: merged configuration.
//   - error: non-nil if an existing file cannot be read or decoded.
func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.BindEnv("server.port", "PORT")
	v.BindEnv("client.base_url", "CAPTION_API_URL")
	v.BindEnv("export.storage.endpoint", "S3_ENDPOINT")
	v.BindEnv("export.storage.access_key", "S3_ACCESS_KEY")
	v.BindEnv("export.storage.secret_key", "S3_SECRET_KEY")
	v.BindEnv("export.storage.bucket", "S3_BUCKET")
	v.BindEnv("export.storage.region", "S3_REGION")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "debug")
	// 10MB image as base64 plus JSON framing
	v.SetDefault("server.max_body_bytes", 16<<20)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("client.base_url", "http://localhost:3000")
	v.SetDefault("client.request_timeout", 30*time.Second)
	v.SetDefault("client.history_size", 5)
	v.SetDefault("export.format", "txt")
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.storage.type", "")
	v.SetDefault("export.storage.use_ssl", true)
	v.SetDefault("export.storage.prefix", "captions")
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	if c.Client.RequestTimeout <= 0 {
		return fmt.Errorf("client.request_timeout must be positive")
	}
	if c.Client.HistorySize <= 0 {
		return fmt.Errorf("client.history_size must be positive")
	}
	switch c.Export.Format {
	case "txt", "json":
	default:
		return fmt.Errorf("invalid export.format %q (want txt or json)", c.Export.Format)
	}
	return nil
}

// UsesObjectStorage reports whether exports go to a bucket.
func (c *ExportConfig) UsesObjectStorage() bool {
	return c.Storage.Bucket != ""
}
