package driver

import (
	"fmt"
	"os"
	"strings"
)

const (
	EnvTrace       = "MINIPY_TRACE"
	EnvTraceFormat = "MINIPY_TRACE_FORMAT"
)

// Config is the effective run configuration.
type Config struct {
	Entry       string
	Trace       bool
	TraceFormat string
}

// Overrides carries command-line settings; nil/empty fields defer to the
// manifest and environment.
type Overrides struct {
	Trace       *bool
	TraceFormat string
}

// ResolveConfig layers manifest values, then environment variables, then
// command-line overrides. lookupEnv defaults to os.LookupEnv.
func ResolveConfig(manifest *Manifest, lookupEnv func(string) (string, bool), overrides Overrides) (Config, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	cfg := Config{TraceFormat: "console"}
	if manifest != nil {
		cfg.Entry = manifest.EntryPath()
		cfg.Trace = manifest.Trace
		if manifest.TraceFormat != "" {
			cfg.TraceFormat = manifest.TraceFormat
		}
	}

	if raw, ok := lookupEnv(EnvTrace); ok {
		enabled, err := ParseSwitch(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTrace, err)
		}
		cfg.Trace = enabled
	}
	if raw, ok := lookupEnv(EnvTraceFormat); ok && strings.TrimSpace(raw) != "" {
		cfg.TraceFormat = strings.TrimSpace(raw)
	}

	if overrides.Trace != nil {
		cfg.Trace = *overrides.Trace
	}
	if overrides.TraceFormat != "" {
		cfg.TraceFormat = overrides.TraceFormat
	}

	switch cfg.TraceFormat {
	case "console", "json":
	default:
		return Config{}, fmt.Errorf("trace format %q must be console or json", cfg.TraceFormat)
	}
	return cfg, nil
}

// ParseSwitch reads an on/off setting. Empty counts as off.
func ParseSwitch(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "", "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid switch value %q", raw)
	}
}
