package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "TRIBELOG_"

type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Decoder       DecoderConfig        `koanf:"decoder" validate:"required"`
	Source        SourceConfig         `koanf:"source" validate:"required"`
	Storage       *StorageConfig       `koanf:"storage"`
	Database      *DatabaseConfig      `koanf:"database"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=development staging production"`
}

type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
	IconPath           string   `koanf:"icon_path"`
}

// DecoderConfig holds the decode options applied to every request.
type DecoderConfig struct {
	StrictCount    bool   `koanf:"strict_count"`
	NarrowEncoding string `koanf:"narrow_encoding" validate:"required,oneof=ascii latin1"`
}

// SourceConfig selects where the save file is read from.
type SourceConfig struct {
	Type string `koanf:"type" validate:"required,oneof=file o3"`
	Path string `koanf:"path" validate:"required_if=Type file"`
	Key  string `koanf:"key" validate:"required_if=Type o3"`
}

type StorageConfig struct {
	O3 *O3Config `koanf:"o3"`
}

// O3Config is an S3-compatible bucket.
type O3Config struct {
	Endpoint  string `koanf:"endpoint" validate:"required,url"`
	Region    string `koanf:"region"`
	Bucket    string `koanf:"bucket" validate:"required"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
}

type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// URL returns the connection string for pgx.
func (d *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// Default returns the configuration used when no environment overrides it.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "80",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			IconPath:           "./icon.svg",
		},
		Decoder: DecoderConfig{
			StrictCount:    true,
			NarrowEncoding: "ascii",
		},
		Source: SourceConfig{
			Type: "file",
			Path: "/SavedArks/1167393038.arktribe",
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads the configuration from an optional .env file and
// TRIBELOG_ environment variables using koanf. Nested keys use a double
// underscore: TRIBELOG_SERVER__PORT sets server.port.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := Default()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	// in config struct we set Observability as pointer type to check whether it is nil or not
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	mainConfig.Observability.ServiceName = "tribelog"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}
	return mainConfig, nil
}

// Validate checks struct tags and cross-section requirements.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("could not validate config: %w", err)
	}
	if c.Source.Type == "o3" && (c.Storage == nil || c.Storage.O3 == nil) {
		return fmt.Errorf("source type o3 requires storage.o3 settings")
	}
	if c.Observability != nil {
		if err := c.Observability.Validate(); err != nil {
			return fmt.Errorf("invalid observability config: %w", err)
		}
	}
	return nil
}
