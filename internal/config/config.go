package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Addr string `mapstructure:"addr"`

	DBDriver  string `mapstructure:"db_driver"`
	DBDSN     string `mapstructure:"db_dsn"`
	DBDialect string `mapstructure:"db_dialect"`
	DBMigrate bool   `mapstructure:"db_migrate"`

	Providers ProvidersConfig `mapstructure:"providers"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	TLS       TLSConfig       `mapstructure:"tls"`
}

// ProvidersConfig carries one webhook secret per provider slot. An absent
// secret stays "": verification then predictably fails rather than being
// skipped.
type ProvidersConfig struct {
	Payments   PaymentsConfig `mapstructure:"payments"`
	Registrar  SecretConfig   `mapstructure:"registrar"`
	Storefront SecretConfig   `mapstructure:"storefront"`
	POS        SecretConfig   `mapstructure:"pos"`
	Plugin     SecretConfig   `mapstructure:"plugin"`
}

type SecretConfig struct {
	Secret string `mapstructure:"secret"`
}

type PaymentsConfig struct {
	Secret    string        `mapstructure:"secret"`
	Tolerance time.Duration `mapstructure:"tolerance"`
}

type RateLimitConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	IngestPerMinute int  `mapstructure:"ingest_per_min"`
}

type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

func LoadFromEnv() Config {
	v := viper.New()
	v.SetEnvPrefix("HOOKGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("db_migrate", true)
	v.SetDefault("providers.payments.tolerance", 5*time.Minute)
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.ingest_per_min", 240)
	v.SetDefault("tls.enabled", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/hookgate/")

	_ = v.ReadInConfig() // ignore if not found

	// Explicit bindings so the per-provider secrets map cleanly from flat
	// env var names.
	_ = v.BindEnv("providers.payments.secret", "HOOKGATE_PAYMENTS_WEBHOOK_SECRET")
	_ = v.BindEnv("providers.payments.tolerance", "HOOKGATE_PAYMENTS_TOLERANCE")
	_ = v.BindEnv("providers.registrar.secret", "HOOKGATE_REGISTRAR_WEBHOOK_SECRET")
	_ = v.BindEnv("providers.storefront.secret", "HOOKGATE_STOREFRONT_WEBHOOK_SECRET")
	_ = v.BindEnv("providers.pos.secret", "HOOKGATE_POS_WEBHOOK_SECRET")
	_ = v.BindEnv("providers.plugin.secret", "HOOKGATE_PLUGIN_WEBHOOK_SECRET")
	_ = v.BindEnv("rate_limit.ingest_per_min", "HOOKGATE_RATE_LIMIT_INGEST_PER_MIN")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		fmt.Printf("Warning: failed to unmarshal config: %v\n", err)
	}

	if val := v.GetString("providers.payments.secret"); val != "" {
		cfg.Providers.Payments.Secret = val
	}
	if val := v.GetString("providers.registrar.secret"); val != "" {
		cfg.Providers.Registrar.Secret = val
	}
	if val := v.GetString("providers.storefront.secret"); val != "" {
		cfg.Providers.Storefront.Secret = val
	}
	if val := v.GetString("providers.pos.secret"); val != "" {
		cfg.Providers.POS.Secret = val
	}
	if val := v.GetString("providers.plugin.secret"); val != "" {
		cfg.Providers.Plugin.Secret = val
	}

	// Same fixup for string keys that carry no default: AutomaticEnv alone
	// does not surface them through Unmarshal.
	if val := v.GetString("db_driver"); val != "" {
		cfg.DBDriver = val
	}
	if val := v.GetString("db_dsn"); val != "" {
		cfg.DBDSN = val
	}
	if val := v.GetString("db_dialect"); val != "" {
		cfg.DBDialect = val
	}
	if val := v.GetString("tls.cert_file"); val != "" {
		cfg.TLS.CertFile = val
	}
	if val := v.GetString("tls.key_file"); val != "" {
		cfg.TLS.KeyFile = val
	}

	if cfg.DBDialect == "" {
		cfg.DBDialect = cfg.DBDriver
	}
	if cfg.DBDialect == "pgx" {
		cfg.DBDialect = "postgres"
	}
	return cfg
}

func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "HOOKGATE_ADDR must not be empty")
	}
	if c.DBDriver != "" && c.DBDSN == "" {
		problems = append(problems, "HOOKGATE_DB_DSN is required when HOOKGATE_DB_DRIVER is set")
	}
	if c.DBDSN != "" && c.DBDriver == "" {
		problems = append(problems, "HOOKGATE_DB_DRIVER is required when HOOKGATE_DB_DSN is set")
	}
	if c.DBDriver != "" {
		dialect := strings.ToLower(strings.TrimSpace(c.DBDialect))
		if dialect != "postgres" && dialect != "sqlite" {
			problems = append(problems, "HOOKGATE_DB_DIALECT must be one of: postgres, sqlite")
		}
	}
	if c.Providers.Payments.Tolerance < 0 {
		problems = append(problems, "HOOKGATE_PAYMENTS_TOLERANCE must not be negative")
	}
	if c.TLS.Enabled && strings.TrimSpace(c.TLS.CertFile) == "" {
		problems = append(problems, "HOOKGATE_TLS_CERT_FILE is required when HOOKGATE_TLS_ENABLED=true")
	}
	if c.TLS.Enabled && strings.TrimSpace(c.TLS.KeyFile) == "" {
		problems = append(problems, "HOOKGATE_TLS_KEY_FILE is required when HOOKGATE_TLS_ENABLED=true")
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.New(strings.Join(problems, "; "))
}

type StartupSummary struct {
	RepositoryMode    string
	Providers         []string
	SecretsConfigured []string
	RateLimit         bool
	TLSEnabled        bool
}

func (c Config) Summary() StartupSummary {
	mode := "memory"
	if c.DBDriver != "" && c.DBDSN != "" {
		mode = "sql:" + c.DBDialect
	}
	configured := make([]string, 0, 5)
	for _, s := range []struct {
		name   string
		secret string
	}{
		{"payments", c.Providers.Payments.Secret},
		{"registrar", c.Providers.Registrar.Secret},
		{"storefront", c.Providers.Storefront.Secret},
		{"pos", c.Providers.POS.Secret},
		{"plugin", c.Providers.Plugin.Secret},
	} {
		if strings.TrimSpace(s.secret) != "" {
			configured = append(configured, s.name)
		}
	}
	return StartupSummary{
		RepositoryMode:    mode,
		Providers:         []string{"payments", "registrar", "storefront", "pos", "plugin"},
		SecretsConfigured: configured,
		RateLimit:         c.RateLimit.Enabled,
		TLSEnabled:        c.TLS.Enabled,
	}
}
