package contract

import (
	"fmt"
	"maps"
	"math"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/gpugrade/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 0 // all rows
	MaxResultLimit     = 100000
	DefaultPrecision   = 1
	DefaultIDColumn    = "name"
	DefaultLogLevel    = "warn"
	DefaultScale       = 100.0
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// AttributeRaw is one entry of the attributes list in the YAML config file.
// Pointer fields distinguish "absent" from zero.
type AttributeRaw struct {
	Name       string   `mapstructure:"name" yaml:"name"`
	Kind       string   `mapstructure:"kind" yaml:"kind"`
	Min        *float64 `mapstructure:"min" yaml:"min,omitempty"`
	Max        *float64 `mapstructure:"max" yaml:"max,omitempty"`
	Categories []string `mapstructure:"categories" yaml:"categories,omitempty"`
	Weight     *float64 `mapstructure:"weight" yaml:"weight"`
}

// Config holds the runtime configuration for scoring.
// This struct remains the "final, validated" config.
type Config struct {
	DatasetPath string
	Format      schema.InputFormat // empty means detect from the extension
	IDColumn    string
	Sheet       string

	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool
	Explain     bool
	Width       int // Terminal width override (0 = auto-detect)

	BoundsPolicy  schema.BoundsPolicy
	FailurePolicy schema.FailurePolicy
	Normalization schema.NormalizationMode
	Scale         float64
	MinGrade      schema.Grade

	// Attributes is the active attribute set, in scoring order.
	Attributes []schema.AttributeSpec

	// Weights holds one weight per attribute, defaults overridden by the config file.
	Weights map[string]float64

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	MetricsFile string
	LogLevel    string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored grades in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DatasetPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Format           string  `mapstructure:"format"`
	IDColumn         string  `mapstructure:"id-column"`
	Sheet            string  `mapstructure:"sheet"`
	OutputFile       string  `mapstructure:"output-file"`
	Limit            int     `mapstructure:"limit"`
	Workers          int     `mapstructure:"workers"`
	Precision        int     `mapstructure:"precision"`
	Output           string  `mapstructure:"output"`
	Width            int     `mapstructure:"width"`
	Bounds           string  `mapstructure:"bounds"`
	OnError          string  `mapstructure:"on-error"`
	Normalization    string  `mapstructure:"normalization"`
	Scale            float64 `mapstructure:"scale"`
	HistoryBackend   string  `mapstructure:"history-backend"`
	HistoryDBConnect string  `mapstructure:"history-db-connect"`
	MetricsFile      string  `mapstructure:"metrics-file"`
	LogLevel         string  `mapstructure:"log-level"`
	Emoji            string  `mapstructure:"emoji"`
	Color            string  `mapstructure:"color"`

	// --- Fields from scoreCmd.Flags() ---
	Detail  bool `mapstructure:"detail"`
	Explain bool `mapstructure:"explain"`

	// --- Fields from checkCmd.Flags() ---
	MinGrade string `mapstructure:"min-grade"`

	// --- Attribute set and weights from config file ---
	Attributes []AttributeRaw     `mapstructure:"attributes"`
	Weights    map[string]float64 `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Attributes != nil {
		clone.Attributes = make([]schema.AttributeSpec, len(c.Attributes))
		for i, spec := range c.Attributes {
			clone.Attributes[i] = spec
			clone.Attributes[i].Categories = slices.Clone(spec.Categories)
		}
	}
	if c.Weights != nil {
		clone.Weights = maps.Clone(c.Weights)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processScoringPolicies(cfg, input); err != nil {
		return err
	}
	if err := processAttributes(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the output and storage fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.DatasetPath = strings.TrimSpace(input.DatasetPathStr)
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width
	cfg.Sheet = input.Sheet
	cfg.MetricsFile = input.MetricsFile

	cfg.IDColumn = strings.TrimSpace(input.IDColumn)
	if cfg.IDColumn == "" {
		cfg.IDColumn = DefaultIDColumn
	}

	cfg.Format = schema.InputFormat(strings.ToLower(strings.TrimSpace(input.Format)))
	if cfg.Format != "" {
		if _, ok := schema.ValidInputFormats[cfg.Format]; !ok {
			return fmt.Errorf("invalid input format '%s'. must be csv, json, xlsx, parquet", input.Format)
		}
	}

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// processScoringPolicies validates the bounds, failure and normalization policies.
func processScoringPolicies(cfg *Config, input *ConfigRawInput) error {
	cfg.BoundsPolicy = schema.BoundsPolicy(strings.ToLower(input.Bounds))
	if cfg.BoundsPolicy == "" {
		cfg.BoundsPolicy = schema.StrictBounds
	}
	if _, ok := schema.ValidBoundsPolicies[cfg.BoundsPolicy]; !ok {
		return fmt.Errorf("invalid bounds policy '%s'. must be strict, clamp, extrapolate", input.Bounds)
	}

	cfg.FailurePolicy = schema.FailurePolicy(strings.ToLower(input.OnError))
	if cfg.FailurePolicy == "" {
		cfg.FailurePolicy = schema.SkipFailures
	}
	if _, ok := schema.ValidFailurePolicies[cfg.FailurePolicy]; !ok {
		return fmt.Errorf("invalid failure policy '%s'. must be skip, abort", input.OnError)
	}

	cfg.Normalization = schema.NormalizationMode(strings.ToLower(input.Normalization))
	if cfg.Normalization == "" {
		cfg.Normalization = schema.StaticNormalization
	}
	if _, ok := schema.ValidNormalizationModes[cfg.Normalization]; !ok {
		return fmt.Errorf("invalid normalization mode '%s'. must be static, batch", input.Normalization)
	}

	cfg.Scale = input.Scale
	if cfg.Scale == 0 {
		cfg.Scale = DefaultScale
	}
	if cfg.Scale < 0 || math.IsNaN(cfg.Scale) || math.IsInf(cfg.Scale, 0) {
		return fmt.Errorf("scale must be a positive number (received %v)", input.Scale)
	}

	if input.MinGrade != "" {
		grade, err := ParseGrade(input.MinGrade)
		if err != nil {
			return fmt.Errorf("invalid --min-grade value: %w", err)
		}
		cfg.MinGrade = grade
	} else {
		cfg.MinGrade = schema.GradeC
	}
	return nil
}

// processAttributes converts the attributes list of the config file into specs.
// Without one, the built-in attribute set and weights are used.
func processAttributes(cfg *Config, input *ConfigRawInput) error {
	if len(input.Attributes) == 0 {
		cfg.Attributes = schema.DefaultAttributes()
		cfg.Weights = schema.DefaultWeights()
		return nil
	}

	cfg.Attributes = make([]schema.AttributeSpec, 0, len(input.Attributes))
	cfg.Weights = make(map[string]float64, len(input.Attributes))
	for i, raw := range input.Attributes {
		spec, err := ProcessAttributeRaw(raw)
		if err != nil {
			return fmt.Errorf("attributes[%d]: %w", i, err)
		}
		cfg.Attributes = append(cfg.Attributes, spec)
		if raw.Weight != nil {
			cfg.Weights[spec.Name] = *raw.Weight
		}
	}
	return nil
}

// ProcessAttributeRaw converts one raw attribute into a spec. Bound and category
// invariants are left to the scoring configuration, which reports them per attribute.
func ProcessAttributeRaw(raw AttributeRaw) (schema.AttributeSpec, error) {
	spec := schema.AttributeSpec{
		Name:       strings.TrimSpace(raw.Name),
		Kind:       schema.AttributeKind(strings.ToLower(strings.TrimSpace(raw.Kind))),
		Categories: slices.Clone(raw.Categories),
	}
	if spec.Name == "" {
		return spec, fmt.Errorf("name is required")
	}
	if _, ok := schema.ValidAttributeKinds[spec.Kind]; !ok {
		return spec, fmt.Errorf("attribute %q: invalid kind '%s'. must be categorical, numeric, inverted-numeric", spec.Name, raw.Kind)
	}
	if spec.Kind.IsNumeric() {
		if raw.Min == nil || raw.Max == nil {
			return spec, fmt.Errorf("attribute %q: min and max are required for %s attributes", spec.Name, spec.Kind)
		}
		spec.Min, spec.Max = *raw.Min, *raw.Max
	}
	return spec, nil
}

// processCustomWeights overrides individual weights of the active attribute set.
// Viper lower-cases map keys, so keys are matched to attribute names case-insensitively;
// keys that match nothing are kept so the scoring configuration rejects them.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	for _, key := range slices.Sorted(maps.Keys(input.Weights)) {
		name := key
		for _, spec := range cfg.Attributes {
			if strings.EqualFold(spec.Name, key) {
				name = spec.Name
				break
			}
		}
		cfg.Weights[name] = input.Weights[key]
	}
	return nil
}

// RevalidateScoring checks the scoring policies of a Config changed after
// ProcessAndValidate, e.g. by MCP tool arguments.
func RevalidateScoring(cfg *Config) error {
	if _, ok := schema.ValidBoundsPolicies[cfg.BoundsPolicy]; !ok {
		return fmt.Errorf("invalid bounds policy '%s'. must be strict, clamp, extrapolate", cfg.BoundsPolicy)
	}
	if _, ok := schema.ValidFailurePolicies[cfg.FailurePolicy]; !ok {
		return fmt.Errorf("invalid failure policy '%s'. must be skip, abort", cfg.FailurePolicy)
	}
	if _, ok := schema.ValidNormalizationModes[cfg.Normalization]; !ok {
		return fmt.Errorf("invalid normalization mode '%s'. must be static, batch", cfg.Normalization)
	}
	if cfg.ResultLimit > MaxResultLimit {
		return fmt.Errorf("limit cannot exceed %d", MaxResultLimit)
	}
	return nil
}
