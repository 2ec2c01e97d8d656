package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cbodonnell/memoryline/pkg/log"
	"github.com/cbodonnell/memoryline/pkg/memory"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MEMORY_"

// Duration is a time.Duration written as a string such as "1s" in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config represents the application configuration
type Config struct {
	LogLevel     log.LogLevel         `toml:"log_level"`
	LogFormat    log.Format           `toml:"log_format"`
	WindowWidth  int                  `toml:"window_width"`
	WindowHeight int                  `toml:"window_height"`
	Rows         int                  `toml:"rows"`
	Cols         int                  `toml:"cols"`
	ResetDelay   Duration             `toml:"reset_delay"`
	Mode         memory.Mode          `toml:"mode"`
	Policy       memory.ResolvePolicy `toml:"policy"`
	// Seed makes every deal reproducible. Zero means unseeded.
	Seed uint64 `toml:"seed"`
	// CatalogPath is a catalog TOML file. Empty means the embedded catalog.
	CatalogPath string `toml:"catalog"`
	// AssetsDir holds images/<value> and sounds/<value> for the image and
	// sound categories. The repository ships placeholders under assets/.
	AssetsDir string `toml:"assets_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:     log.LogLevelInfo,
		LogFormat:    log.FormatConsole,
		WindowWidth:  640,
		WindowHeight: 480,
		Rows:         memory.DefaultRows,
		Cols:         memory.DefaultCols,
		ResetDelay:   Duration{memory.DefaultResetDelay},
		Mode:         memory.ModeMatch,
		Policy:       memory.PolicyFlush,
		AssetsDir:    "assets",
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "memoryline", "config.toml")
}

// Load builds the configuration from defaults, then the config file, then
// the environment (including a .env file in the working directory).
// An empty path means the default config file, which may be absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = GetConfigFilePath()
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("error decoding config file: %v", err)
		}
	} else if explicit {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("Failed to load .env file: %v", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	text := func(key string, target interface{ UnmarshalText([]byte) error }) error {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			if err := target.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("invalid %s%s: %v", EnvPrefix, key, err)
			}
		}
		return nil
	}
	integer := func(key string, target *int) error {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			i, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s: %v", EnvPrefix, key, err)
			}
			*target = i
		}
		return nil
	}
	str := func(key string, target *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*target = v
		}
	}

	var format string
	str("LOG_FORMAT", &format)
	if format != "" {
		f, err := log.ParseFormat(format)
		if err != nil {
			return fmt.Errorf("invalid %sLOG_FORMAT: %v", EnvPrefix, err)
		}
		c.LogFormat = f
	}
	if v, ok := lookup(EnvPrefix + "SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sSEED: %v", EnvPrefix, err)
		}
		c.Seed = seed
	}
	str("CATALOG", &c.CatalogPath)
	str("ASSETS_DIR", &c.AssetsDir)

	for _, step := range []error{
		text("LOG_LEVEL", &c.LogLevel),
		text("RESET_DELAY", &c.ResetDelay),
		text("MODE", &c.Mode),
		text("POLICY", &c.Policy),
		integer("WINDOW_WIDTH", &c.WindowWidth),
		integer("WINDOW_HEIGHT", &c.WindowHeight),
		integer("ROWS", &c.Rows),
		integer("COLS", &c.Cols),
	} {
		if step != nil {
			return step
		}
	}
	return nil
}

// Validate checks values that would only fail later, at grid construction.
func (c *Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("invalid grid size %dx%d: %w", c.Rows, c.Cols, memory.ErrInvalidSize)
	}
	if (c.Rows*c.Cols)%2 != 0 {
		return fmt.Errorf("invalid grid size %dx%d: %w", c.Rows, c.Cols, memory.ErrOddGrid)
	}
	if c.ResetDelay.Duration <= 0 {
		return fmt.Errorf("reset delay must be positive, got %s", c.ResetDelay)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.WindowWidth, c.WindowHeight)
	}
	return nil
}

// Save writes the configuration as TOML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %v", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}
	return nil
}
