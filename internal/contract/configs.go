package contract

import (
	"fmt"
	"maps"
	"path/filepath"
	"strings"
	"time"

	"github.com/lw2die/vitalis/schema"
)

// Default values for configuration.
const (
	DefaultAge              = 61
	DefaultHeightCm         = 177
	DefaultRestingHR        = 55.0
	DefaultTargetWeightKg   = 79.0
	DefaultWeeklyPAITarget  = 100.0
	DefaultPAIWindowDays    = 7
	DefaultCTLDays          = 42
	DefaultATLDays          = 7
	DefaultTSBOptimalMin    = -10.0
	DefaultTSBOptimalMax    = 10.0
	DefaultSleepTargetHours = 7.0
	DefaultChartDays        = 30
	DefaultVO2MaxExcellent  = 35.0
	DefaultVO2MaxGood       = 30.0
	DefaultFilePrefix       = "health_data"
	DefaultFileExt          = ".json"
	DefaultArchiveDirName   = "procesados"
	DefaultCacheFileName    = "health_cache.json"
	DefaultPrecision        = 1
)

// Weight sample bounds in kilograms. Samples outside are sensor or unit
// errors and are rejected at extraction time.
const (
	MinPlausibleWeightKg = 30.0
	MaxPlausibleWeightKg = 200.0
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// HealthspanWeightsRaw holds custom healthspan weights from the YAML config
// file. Use float64 pointers for optional fields.
type HealthspanWeightsRaw struct {
	Fitness    *float64 `mapstructure:"fitness"`
	Body       *float64 `mapstructure:"body"`
	Recovery   *float64 `mapstructure:"recovery"`
	Metabolic  *float64 `mapstructure:"metabolic"`
	Functional *float64 `mapstructure:"functional"`
}

// Config holds the runtime configuration for a processing cycle.
// This struct remains the "final, validated" config.
type Config struct {
	// Subject profile
	Age            int
	HeightCm       int
	RestingHR      float64
	MaxHR          float64 // defaults to 220 - Age
	TargetWeightKg float64

	// Metric windows and targets
	WeeklyPAITarget  float64
	PAIWindowDays    int
	CTLDays          int
	ATLDays          int
	TSBOptimalMin    float64
	TSBOptimalMax    float64
	SleepTargetHours float64
	ChartDays        int
	VO2MaxExcellent  float64
	VO2MaxGood       float64

	// Paths
	InputDir       string
	CacheFile      string
	ArchiveDirName string
	FilePrefix     string
	FileExt        string

	// Output
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseEmojis  bool
	UseColors  bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	// ComputedWeights is the final healthspan weight map, computed from
	// defaults + custom overrides
	ComputedWeights map[schema.SubScore]float64

	// Labs is the optional lab panel from the config file
	Labs *schema.LabPanel
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Age              int     `mapstructure:"age"`
	HeightCm         int     `mapstructure:"height-cm"`
	RestingHR        float64 `mapstructure:"resting-hr"`
	MaxHR            float64 `mapstructure:"max-hr"`
	TargetWeight     float64 `mapstructure:"target-weight"`
	PAITarget        float64 `mapstructure:"pai-target"`
	SleepTarget      float64 `mapstructure:"sleep-target"`
	ChartDays        int     `mapstructure:"chart-days"`
	InputDir         string  `mapstructure:"input-dir"`
	CacheFile        string  `mapstructure:"cache-file"`
	ArchiveDir       string  `mapstructure:"archive-dir"`
	FilePrefix       string  `mapstructure:"file-prefix"`
	FileExt          string  `mapstructure:"file-ext"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	Precision        int     `mapstructure:"precision"`
	Width            int     `mapstructure:"width"`
	Emoji            string  `mapstructure:"emoji"`
	Color            string  `mapstructure:"color"`
	HistoryBackend   string  `mapstructure:"history-backend"`
	HistoryDBConnect string  `mapstructure:"history-db-connect"`

	// --- Custom healthspan weights from config file ---
	Weights HealthspanWeightsRaw `mapstructure:"weights"`

	// --- Lab panel from config file ---
	Labs *schema.LabPanel `mapstructure:"labs"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.ComputedWeights != nil {
		clone.ComputedWeights = make(map[schema.SubScore]float64)
		maps.Copy(clone.ComputedWeights, c.ComputedWeights)
	}
	if c.Labs != nil {
		labs := *c.Labs
		clone.Labs = &labs
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateProfile(cfg, input); err != nil {
		return err
	}
	if err := validatePaths(cfg, input); err != nil {
		return err
	}
	if err := validateOutput(cfg, input); err != nil {
		return err
	}
	if err := validateHistoryBackend(cfg, input); err != nil {
		return err
	}
	if err := processHealthspanWeights(cfg, input); err != nil {
		return err
	}
	cfg.Labs = input.Labs
	return nil
}

// validateProfile processes the subject profile and metric windows.
func validateProfile(cfg *Config, input *ConfigRawInput) error {
	if input.Age <= 0 || input.Age > 120 {
		return fmt.Errorf("age must be between 1 and 120 (received %d)", input.Age)
	}
	cfg.Age = input.Age

	if input.HeightCm <= 0 {
		return fmt.Errorf("height-cm must be greater than 0 (received %d)", input.HeightCm)
	}
	cfg.HeightCm = input.HeightCm

	if input.RestingHR <= 0 {
		return fmt.Errorf("resting-hr must be greater than 0 (received %.1f)", input.RestingHR)
	}
	cfg.RestingHR = input.RestingHR

	cfg.MaxHR = input.MaxHR
	if cfg.MaxHR == 0 {
		cfg.MaxHR = float64(220 - cfg.Age)
	}
	if cfg.MaxHR <= cfg.RestingHR {
		return fmt.Errorf("max-hr (%.1f) must be greater than resting-hr (%.1f)", cfg.MaxHR, cfg.RestingHR)
	}

	if input.TargetWeight <= 0 {
		return fmt.Errorf("target-weight must be greater than 0 (received %.1f)", input.TargetWeight)
	}
	cfg.TargetWeightKg = input.TargetWeight

	if input.PAITarget <= 0 {
		return fmt.Errorf("pai-target must be greater than 0 (received %.1f)", input.PAITarget)
	}
	cfg.WeeklyPAITarget = input.PAITarget

	if input.SleepTarget <= 0 {
		return fmt.Errorf("sleep-target must be greater than 0 (received %.1f)", input.SleepTarget)
	}
	cfg.SleepTargetHours = input.SleepTarget

	if input.ChartDays < 1 {
		return fmt.Errorf("chart-days must be at least 1 (received %d)", input.ChartDays)
	}
	cfg.ChartDays = input.ChartDays

	// Fixed time constants of the load model and VO2max bands. These are
	// product policy, not user knobs.
	cfg.PAIWindowDays = DefaultPAIWindowDays
	cfg.CTLDays = DefaultCTLDays
	cfg.ATLDays = DefaultATLDays
	cfg.TSBOptimalMin = DefaultTSBOptimalMin
	cfg.TSBOptimalMax = DefaultTSBOptimalMax
	cfg.VO2MaxExcellent = DefaultVO2MaxExcellent
	cfg.VO2MaxGood = DefaultVO2MaxGood

	return nil
}

// validatePaths processes input directory, cache file and archive settings.
func validatePaths(cfg *Config, input *ConfigRawInput) error {
	cfg.InputDir = input.InputDir
	if cfg.InputDir == "" {
		cfg.InputDir = "."
	}

	cfg.CacheFile = input.CacheFile
	if cfg.CacheFile == "" {
		cfg.CacheFile = filepath.Join(cfg.InputDir, DefaultCacheFileName)
	}

	cfg.ArchiveDirName = input.ArchiveDir
	if cfg.ArchiveDirName == "" {
		cfg.ArchiveDirName = DefaultArchiveDirName
	}
	if filepath.IsAbs(cfg.ArchiveDirName) {
		return fmt.Errorf("archive-dir must be a name relative to input-dir (received %q)", cfg.ArchiveDirName)
	}

	cfg.FilePrefix = input.FilePrefix
	if cfg.FilePrefix == "" {
		cfg.FilePrefix = DefaultFilePrefix
	}
	cfg.FileExt = input.FileExt
	if cfg.FileExt == "" {
		cfg.FileExt = DefaultFileExt
	}
	if !strings.HasPrefix(cfg.FileExt, ".") {
		return fmt.Errorf("file-ext must start with '.' (received %q)", cfg.FileExt)
	}

	return nil
}

// validateOutput processes the output mode and rendering options.
func validateOutput(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	if input.Precision < 0 || input.Precision > 2 {
		return fmt.Errorf("precision must be between 0 and 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

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

	return nil
}

// validateHistoryBackend validates the history store configuration.
func validateHistoryBackend(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
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

// ProcessHealthspanWeightsRaw converts HealthspanWeightsRaw into a weight map.
// If validateSum is true and any weight is provided, all five must be present
// and sum to 1.0.
func ProcessHealthspanWeightsRaw(weights HealthspanWeightsRaw, validateSum bool) (map[schema.SubScore]float64, error) {
	result := make(map[schema.SubScore]float64)
	sum := 0.0

	if weights.Fitness != nil {
		result[schema.SubScoreFitness] = *weights.Fitness
		sum += *weights.Fitness
	}
	if weights.Body != nil {
		result[schema.SubScoreBody] = *weights.Body
		sum += *weights.Body
	}
	if weights.Recovery != nil {
		result[schema.SubScoreRecovery] = *weights.Recovery
		sum += *weights.Recovery
	}
	if weights.Metabolic != nil {
		result[schema.SubScoreMetabolic] = *weights.Metabolic
		sum += *weights.Metabolic
	}
	if weights.Functional != nil {
		result[schema.SubScoreFunctional] = *weights.Functional
		sum += *weights.Functional
	}

	if len(result) == 0 {
		return result, nil
	}
	if validateSum {
		if len(result) != len(schema.AllSubScores) {
			return nil, fmt.Errorf("custom healthspan weights must set all five sub-scores, got %d", len(result))
		}
		if sum < 0.999 || sum > 1.001 {
			return nil, fmt.Errorf("custom healthspan weights must sum to 1.0, got %.3f", sum)
		}
	}
	return result, nil
}

// processHealthspanWeights converts the raw input into the final computed
// weight map: defaults overridden by custom weights when provided.
func processHealthspanWeights(cfg *Config, input *ConfigRawInput) error {
	custom, err := ProcessHealthspanWeightsRaw(input.Weights, true)
	if err != nil {
		return err
	}

	computed := schema.GetDefaultHealthspanWeights()
	maps.Copy(computed, custom)
	cfg.ComputedWeights = computed
	return nil
}
