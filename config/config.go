package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath = "."

	defaultMigrationBatchSize   = 100
	defaultMigrationConcurrency = 4
	defaultMetricsAddr          = ":9102"
)

// DefaultRequiredAddressFields lists the canonical fields an address must carry after normalization.
var DefaultRequiredAddressFields = []string{"street", "city", "postal_code", "countryCode"}

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Address configuration for canonical address handling
	Address *AddressConfig `json:"address" yaml:"address"`

	// Migration configuration for the embedded → referenced address migration
	Migration *MigrationConfig `json:"migration" yaml:"migration"`

	// Metrics configuration for the prometheus scrape endpoint
	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`

	// SQL statements slower than this are logged at warn level
	SlowQuery time.Duration `json:"slowQuery" yaml:"slowQuery"`
}

// AddressConfig defines how raw addresses are validated and how properties expose them.
type AddressConfig struct {
	// Canonical field names that must be non-empty after normalization
	RequireFields []string `json:"requireFields" yaml:"requireFields"`

	View AddressViewConfig `json:"view" yaml:"view"`
}

// AddressViewConfig controls the legacy-compatible property projection.
type AddressViewConfig struct {
	// Keep the raw addressId next to the projected legacy address object
	IncludeAddressID bool `json:"includeAddressId" yaml:"includeAddressId"`

	// Drop the street number from the view when the property disables it
	HideNumberWhenDisabled bool `json:"hideNumberWhenDisabled" yaml:"hideNumberWhenDisabled"`
}

// MigrationConfig defines the batch behaviour of the address migration.
type MigrationConfig struct {
	BatchSize   int  `json:"batchSize" yaml:"batchSize"`
	Concurrency int  `json:"concurrency" yaml:"concurrency"`
	DryRun      bool `json:"dryRun" yaml:"dryRun"`
}

// MetricsConfig defines the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Addr    string `json:"addr" yaml:"addr"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	configFile, err := findConfigFile(currEnv, configPath...)
	if err != nil {
		return nil, err
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Environment overrides: ADDRESS_VIEW_INCLUDEADDRESSID -> address.view.includeAddressId
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func findConfigFile(currEnv string, configPath ...string) (string, error) {
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.Errorf("config file %s.yaml not found in any search path", currEnv)
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	cfg.ApplyDefaults()

	return cfg, nil
}

// ApplyDefaults fills the optional sections so callers never see nil.
func (c *Config) ApplyDefaults() {
	if c.Address == nil {
		c.Address = &AddressConfig{
			View: AddressViewConfig{IncludeAddressID: true, HideNumberWhenDisabled: true},
		}
	}
	if len(c.Address.RequireFields) == 0 {
		c.Address.RequireFields = append([]string(nil), DefaultRequiredAddressFields...)
	}

	if c.Migration == nil {
		c.Migration = &MigrationConfig{}
	}
	if c.Migration.BatchSize <= 0 {
		c.Migration.BatchSize = defaultMigrationBatchSize
	}
	if c.Migration.Concurrency <= 0 {
		c.Migration.Concurrency = defaultMigrationConcurrency
	}

	if c.Metrics == nil {
		c.Metrics = &MetricsConfig{}
	}
	if strings.TrimSpace(c.Metrics.Addr) == "" {
		c.Metrics.Addr = defaultMetricsAddr
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv reads POSTGRES_REPLICAS_{index}_{HOST,PORT,USERNAME,PASSWORD}.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
