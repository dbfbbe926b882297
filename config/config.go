package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/ramvfs/internal/util"
	"gopkg.in/yaml.v3"
)

// Bytes per KiB
const KB = 1024

// Log verbosity values accepted from the CLI and config files, 1 (error) to 5 (trace)
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.InfoLevel

	// DefaultMaxNodes is the node pool capacity, root included
	DefaultMaxNodes = 64

	// DefaultMaxDirEntries is the number of entry slots per directory
	DefaultMaxDirEntries = 32

	// DefaultFreeSpaceUnit is the bytes credited per unused node slot when
	// approximating free space
	DefaultFreeSpaceUnit = 1 * KB

	// DefaultArenaSize is the content arena capacity in bytes
	DefaultArenaSize = 1024 * KB

	DefaultPrompt      = "$ "
	DefaultHistorySize = 10
)

// Config contains runtime configuration values for the filesystem and its shell.
type Config struct {
	LogLvl        util.LogLevel // Internal log level (Default info)
	MaxNodes      int           // Node pool capacity including root (Default 64)
	MaxDirEntries int           // Entry slots per directory (Default 32)
	FreeSpaceUnit int           // Bytes per free node slot in the free space estimate (Default 1KiB)
	ArenaSize     int           // Content arena size in bytes (Default 1MiB)
	Prompt        string        // Suffix printed after the current path (Default "$ ")
	HistorySize   int           // Shell history entries kept (Default 10)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
//
// LogLvl is a verbosity between 1 (error) and 5 (trace), not an internal level.
type ConfigOverride struct {
	LogLvl        *int    `yaml:"verbose,omitempty" json:"verbose,omitempty"`
	MaxNodes      *int    `yaml:"max_nodes,omitempty" json:"max_nodes,omitempty"`
	MaxDirEntries *int    `yaml:"max_dir_entries,omitempty" json:"max_dir_entries,omitempty"`
	FreeSpaceUnit *int    `yaml:"free_space_unit,omitempty" json:"free_space_unit,omitempty"`
	ArenaSize     *int    `yaml:"arena_size,omitempty" json:"arena_size,omitempty"`
	Prompt        *string `yaml:"prompt,omitempty" json:"prompt,omitempty"`
	HistorySize   *int    `yaml:"history_size,omitempty" json:"history_size,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:        DefaultLogLvl,
		MaxNodes:      DefaultMaxNodes,
		MaxDirEntries: DefaultMaxDirEntries,
		FreeSpaceUnit: DefaultFreeSpaceUnit,
		ArenaSize:     DefaultArenaSize,
		Prompt:        DefaultPrompt,
		HistorySize:   DefaultHistorySize,
	}
}

// NewConfig returns the defaults with override applied. A nil override
// yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// VerboseToLogLevel clamps v to 1..5 and maps it to the internal log level
func VerboseToLogLevel(v int) util.LogLevel {
	v = max(ErrorVerbose, min(v, TraceVerbose))
	lvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return lvls[v-1]
}

// LogLevelToVerbose is the inverse of [VerboseToLogLevel]
func LogLevelToVerbose(level util.LogLevel) int {
	switch level {
	case util.ErrorLevel:
		return ErrorVerbose
	case util.WarnLevel:
		return WarnVerbose
	case util.DebugLevel:
		return DebugVerbose
	case util.TraceLevel:
		return TraceVerbose
	default:
		return InfoVerbose
	}
}

// Override returns c as a fully populated override, i.e. the file form of c
func (c *Config) Override() *ConfigOverride {
	return &ConfigOverride{
		LogLvl:        util.Pointer(LogLevelToVerbose(c.LogLvl)),
		MaxNodes:      util.Pointer(c.MaxNodes),
		MaxDirEntries: util.Pointer(c.MaxDirEntries),
		FreeSpaceUnit: util.Pointer(c.FreeSpaceUnit),
		ArenaSize:     util.Pointer(c.ArenaSize),
		Prompt:        util.Pointer(c.Prompt),
		HistorySize:   util.Pointer(c.HistorySize),
	}
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = VerboseToLogLevel(*override.LogLvl)
	}
	if override.MaxNodes != nil {
		c.MaxNodes = *override.MaxNodes
	}
	if override.MaxDirEntries != nil {
		c.MaxDirEntries = *override.MaxDirEntries
	}
	if override.FreeSpaceUnit != nil {
		c.FreeSpaceUnit = *override.FreeSpaceUnit
	}
	if override.ArenaSize != nil {
		c.ArenaSize = *override.ArenaSize
	}
	if override.Prompt != nil {
		c.Prompt = *override.Prompt
	}
	if override.HistorySize != nil {
		c.HistorySize = *override.HistorySize
	}
}

// Validate rejects capacities the filesystem cannot be built with
func (c *Config) Validate() error {
	if c.MaxNodes < 1 {
		return fmt.Errorf("max_nodes must be at least 1 (root), got %d", c.MaxNodes)
	}
	if c.MaxDirEntries < 1 {
		return fmt.Errorf("max_dir_entries must be positive, got %d", c.MaxDirEntries)
	}
	if c.FreeSpaceUnit < 0 {
		return fmt.Errorf("free_space_unit must not be negative, got %d", c.FreeSpaceUnit)
	}
	if c.ArenaSize < 0 {
		return fmt.Errorf("arena_size must not be negative, got %d", c.ArenaSize)
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("history_size must not be negative, got %d", c.HistorySize)
	}
	return nil
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg := NewConfig(override)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
