package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the project file looked up from the working directory upwards.
	FileName = "bscript.yml"
	// DefaultEntry is run when neither the command line nor the project file
	// names a script.
	DefaultEntry = "index.bs"
	// DefaultGas caps the number of statements a run may dispatch.
	DefaultGas = 1000000
)

var ErrNotFound = errors.New("config: " + FileName + " not found")

// Config holds the settings of a bscript project.
type Config struct {
	Path     string // absolute path of the file the config came from, empty for defaults
	Entry    string
	Gas      int // 0 disables the limit
	LogLevel slog.Level
	Trace    bool
}

type configFile struct {
	Entry    *string `yaml:"entry"`
	Gas      *int    `yaml:"gas"`
	LogLevel string  `yaml:"log_level"`
	Trace    bool    `yaml:"trace"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("config: ")
	b.WriteString(e.Path)
	b.WriteString(" is invalid:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Default returns the settings used when no project file exists.
func Default() *Config {
	return &Config{
		Entry:    DefaultEntry,
		Gas:      DefaultGas,
		LogLevel: slog.LevelWarn,
	}
}

// Load parses a project file. A relative entry is resolved against the
// directory holding the file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := Default()
	cfg.Path = absPath
	if err := raw.apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw *configFile) apply(cfg *Config) error {
	errs := ValidationError{Path: cfg.Path}

	if raw.Entry != nil {
		entry := strings.TrimSpace(*raw.Entry)
		if entry == "" {
			errs.Issues = append(errs.Issues, "entry must be a non-empty path")
		} else if filepath.IsAbs(entry) {
			cfg.Entry = entry
		} else {
			cfg.Entry = filepath.Join(filepath.Dir(cfg.Path), entry)
		}
	}
	if raw.Gas != nil {
		if *raw.Gas < 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("gas must be >= 0, got %d", *raw.Gas))
		} else {
			cfg.Gas = *raw.Gas
		}
	}
	if raw.LogLevel != "" {
		level, err := ParseLevel(raw.LogLevel)
		if err != nil {
			errs.Issues = append(errs.Issues, err.Error())
		} else {
			cfg.LogLevel = level
		}
	}
	cfg.Trace = raw.Trace

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// ParseLevel accepts debug, info, warn or error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log_level %q must be one of debug, info, warn, error", s)
	}
	return level, nil
}

// Find walks from start upwards looking for FileName.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Discover loads the nearest project file above start, falling back to
// Default when there is none.
func Discover(start string) (*Config, error) {
	path, err := Find(start)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}
