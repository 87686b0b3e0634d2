package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddress    = "localhost:3001"
	defaultMigrationsDir = "internal/db/migrations"
	defaultJWTSecret     = "dev-secret-change-me"
	defaultAuditInterval = time.Minute

	dotEnvFile = ".env"
)

type Config struct {
	RunAddress string
	// DatabaseDSN пустой - данные хранятся в памяти процесса.
	DatabaseDSN   string
	MigrationsDir string
	JWTUserSecret string
	SeedData      bool
	// AuditInterval 0 отключает фоновую проверку леджера.
	AuditInterval time.Duration
}

// envConfig указатели отличают незаданную переменную окружения от нулевого значения.
type envConfig struct {
	RunAddress    string         `env:"RUN_ADDRESS"`
	DatabaseDSN   string         `env:"DATABASE_URI"`
	MigrationsDir string         `env:"MIGRATIONS_DIR"`
	JWTUserSecret string         `env:"JWT_SECRET"`
	SeedData      *bool          `env:"SEED_DATA"`
	AuditInterval *time.Duration `env:"AUDIT_INTERVAL"`
}

func LoadConfig() (*Config, error) {
	environ, err := withDotEnv(dotEnvFile, env.ToMap(os.Environ()))
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], environ)
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

// load переменные окружения приоритетнее флагов.
func load(args []string, environ map[string]string) (*Config, error) {
	var envConf envConfig
	if envParseErr := env.ParseWithOptions(&envConf, env.Options{Environment: environ}); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	flagsConf, flagsErr := loadFlags(args)
	if flagsErr != nil {
		return nil, fmt.Errorf("parse flags: %s", flagsErr.Error())
	}

	conf := mergeConfig(&envConf, flagsConf)
	if err := validate(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

// withDotEnv дополняет окружение значениями из .env файла, окружение процесса приоритетнее.
// Отсутствие файла не ошибка.
func withDotEnv(path string, environ map[string]string) (map[string]string, error) {
	fileEnv, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return environ, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	merged := make(map[string]string, len(fileEnv)+len(environ))
	for k, v := range fileEnv {
		merged[k] = v
	}
	for k, v := range environ {
		merged[k] = v
	}
	return merged, nil
}

func loadFlags(args []string) (*Config, error) {
	var flagConfig Config
	fs := flag.NewFlagSet("moviefund", flag.ContinueOnError)

	fs.StringVar(&flagConfig.RunAddress, "a", defaultRunAddress, "Run address in format host:port")
	fs.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN, empty for in-memory storage")
	fs.StringVar(&flagConfig.MigrationsDir, "m", defaultMigrationsDir, "Database migrations directory")
	fs.StringVar(&flagConfig.JWTUserSecret, "j", defaultJWTSecret, "JWT signing secret")
	fs.BoolVar(&flagConfig.SeedData, "s", true, "Seed sample users and movies into empty storage")
	fs.DurationVar(&flagConfig.AuditInterval, "i", defaultAuditInterval, "Ledger audit interval, 0 to disable")

	if err := fs.Parse(args); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &flagConfig, nil
}

func mergeConfig(envConfig *envConfig, flagsConfig *Config) *Config {
	conf := &Config{
		RunAddress:    defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:   defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir: defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		JWTUserSecret: defaultIfBlank(envConfig.JWTUserSecret, flagsConfig.JWTUserSecret),
		SeedData:      flagsConfig.SeedData,
		AuditInterval: flagsConfig.AuditInterval,
	}
	if envConfig.SeedData != nil {
		conf.SeedData = *envConfig.SeedData
	}
	if envConfig.AuditInterval != nil {
		conf.AuditInterval = *envConfig.AuditInterval
	}
	return conf
}

// UsesDefaultJWTSecret токены, подписанные этим секретом, может выпустить кто угодно.
func (c *Config) UsesDefaultJWTSecret() bool {
	return c.JWTUserSecret == defaultJWTSecret
}

func validate(conf *Config) error {
	switch {
	case conf.RunAddress == "":
		return errors.New("run address is not set")
	case conf.JWTUserSecret == "":
		return errors.New("jwt secret is not set")
	case conf.DatabaseDSN != "" && conf.UsesDefaultJWTSecret():
		return errors.New("jwt secret must be set explicitly when database is used")
	case conf.AuditInterval < 0:
		return errors.New("audit interval must not be negative")
	}
	return nil
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
