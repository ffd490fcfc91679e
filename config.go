package fanlog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// BackendConfig defines the configuration of a WriterBackend.
//
// The JSON-tagged fields can be loaded from a config file via
// ParseBackendConfig; the rest are wiring that only code can supply.
// Typed fields win over their name-based JSON counterparts: Levels over
// LevelNames, Filter over FilterModeName.
//
// Example:
//
//	cfg := fanlog.BackendConfig{
//	    Writer:    os.Stdout,
//	    Levels:    []fanlog.Level{fanlog.Error, fanlog.Warn},
//	    Formatter: fanlog.ANSIFormatter{},
//	    Styled:    true,
//	}
//	backend, err := fanlog.NewWriterBackend(cfg)
type BackendConfig struct {
	// Styled asks the formatter for styled output. Advisory: it is
	// forced off when the sink cannot render styles.
	Styled bool `json:"styled"`
	// ForceStyled skips sink capability detection, for pipes and tests
	// that capture escape sequences on purpose.
	ForceStyled bool `json:"force_styled"`
	// MaxLogRate caps processed messages per second; 0 disables the cap.
	MaxLogRate int `json:"max_log_rate"`
	// LevelNames is the JSON form of Levels ("error", "warn", ...).
	LevelNames []string `json:"levels"`
	// FilterModeName is the JSON form of the initial empty filter's
	// mode: "blacklist" or "whitelist".
	FilterModeName string `json:"filter_mode"`

	Writer         io.Writer     `json:"-"`
	Levels         []Level       `json:"-"`
	Filter         *SourceFilter `json:"-"`
	Formatter      Formatter     `json:"-"`
	ErrorHandler   func(error)   `json:"-"`
	FallbackWriter io.Writer     `json:"-"`
}

// Validate checks the configuration for values NewWriterBackend would
// reject. A missing Writer is reported by NewWriterBackend itself so that
// JSON-loaded configs validate before wiring.
func (c *BackendConfig) Validate() error {
	if c.MaxLogRate < 0 {
		return fmt.Errorf("MaxLogRate cannot be negative")
	}
	if c.Levels == nil {
		if _, err := resolveLevelNames(c.LevelNames); err != nil {
			return err
		}
	}
	if c.Filter == nil && c.FilterModeName != "" {
		if _, err := ParseFilterMode(c.FilterModeName); err != nil {
			return err
		}
	}
	return nil
}

// ParseBackendConfig decodes a JSON configuration and validates it. The
// caller still has to supply the Writer (and any other typed field) before
// handing the config to NewWriterBackend.
func ParseBackendConfig(data []byte) (BackendConfig, error) {
	var cfg BackendConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return BackendConfig{}, fmt.Errorf("failed to parse backend config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return BackendConfig{}, fmt.Errorf("invalid backend config: %w", err)
	}
	return cfg, nil
}

// NewConsoleBackend returns a backend writing to stdout with styling
// requested; the hint takes effect only when stdout is a terminal.
func NewConsoleBackend() *WriterBackend {
	b, _ := NewWriterBackend(BackendConfig{
		Writer: os.Stdout,
		Styled: true,
	})
	return b
}

// resolveLevelNames maps level names to Levels; nil in, nil out.
func resolveLevelNames(names []string) (LevelSet, error) {
	if names == nil {
		return nil, nil
	}
	out := make(LevelSet, 0, len(names))
	for _, name := range names {
		level, err := ParseLevel(name)
		if err != nil {
			return nil, err
		}
		if !out.Has(level) {
			out = append(out, level)
		}
	}
	return out, nil
}
