package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	LogDir    string `toml:"log_dir"`
	ExportDir string `toml:"export_dir"`
}

// Matching contains thresholds for fuzzy identity resolution and duplicate
// detection. The defaults were tuned against scraped review corpora; they
// are configuration precisely so nobody has to assume they are optimal.
type Matching struct {
	// MaxEditDistance is the largest Levenshtein distance still considered
	// a candidate match between two critic names.
	MaxEditDistance int `toml:"max_edit_distance"`
	// MinFuzzyLength is the minimum name length (in runes) before edit
	// distance is consulted at all. Short names collide too easily.
	MinFuzzyLength int `toml:"min_fuzzy_length"`
	// MinTitleLength guards the normalized-title equality rule against
	// degenerate short titles.
	MinTitleLength int `toml:"min_title_length"`
	// MinSlugLength guards slug containment checks.
	MinSlugLength int `toml:"min_slug_length"`
	// TitlePrefixLength is how many leading characters of a normalized
	// title the venue+prefix rule compares.
	TitlePrefixLength int `toml:"title_prefix_length"`
	// RevivalWindowDays separates distinct productions of the same title:
	// opening dates at least this far apart mean a revival, not a duplicate.
	RevivalWindowDays int `toml:"revival_window_days"`
}

// Verification contains thresholds for the content-show verifier.
type Verification struct {
	// QuarantineMinSignals is the minimum negative signal count before a
	// confident mismatch may quarantine scraped text.
	QuarantineMinSignals int `toml:"quarantine_min_signals"`
	// PreviewWindowDays is how long before opening night a publish date is
	// still considered consistent with the show's preview window.
	PreviewWindowDays int `toml:"preview_window_days"`
	// MismatchFailPercent fails a batch run when more than this percentage
	// of verified reviews come back as mismatches.
	MismatchFailPercent int `toml:"mismatch_fail_percent"`
}

// Band is one designation tier: scores at or above Min earn Name.
type Band struct {
	Name string `toml:"name"`
	Min  int    `toml:"min"`
}

// Scoring contains the combined-score blend settings.
type Scoring struct {
	// DiscourseWeightPercent is the fixed weight the discourse source
	// receives whenever at least one other source is present.
	DiscourseWeightPercent int    `toml:"discourse_weight_percent"`
	Bands                  []Band `toml:"bands"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Broadwayscore.
type Config struct {
	Paths        Paths        `toml:"paths"`
	Matching     Matching     `toml:"matching"`
	Verification Verification `toml:"verification"`
	Scoring      Scoring      `toml:"scoring"`
	Logging      Logging      `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/broadwayscore/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("broadwayscore.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories. The export
// directory is created on a best-effort basis so runs that never export
// are not blocked by unavailable storage.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.ExportDir) != "" {
		_ = os.MkdirAll(c.Paths.ExportDir, 0o755)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
