package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/tidwall/sjson"
	"github.com/yumosx/recycler/internal/fsext"
)

const (
	defaultDataDirectory = ".recycler"
	appName              = "recycler"

	DefaultPageSize    = 50
	DefaultGridColumns = 3
	DefaultLongPressMS = 500
	DefaultMaxSelect   = 9
)

// Field paths accepted by [Config.SetField].
const (
	FieldGridColumns = "options.grid_columns"
	FieldPageSize    = "options.page_size"
	FieldCompactMode = "options.tui.compact_mode"
)

var defaultIgnore = []string{
	".git",
	".recycler",
	"node_modules",
}

type TUIOptions struct {
	CompactMode bool   `json:"compact_mode,omitempty" jsonschema:"description=Hide the help bar and status line,default=false"`
	Theme       string `json:"theme,omitempty" jsonschema:"description=Color theme,enum=recycler,enum=recycler-light,default=recycler"`
}

type Options struct {
	// Relative to the cwd
	DataDirectory string     `json:"data_directory,omitempty" jsonschema:"description=Directory for logs and app state,default=.recycler"`
	Debug         bool       `json:"debug,omitempty" jsonschema:"description=Enable debug logging,default=false"`
	PageSize      int        `json:"page_size,omitempty" jsonschema:"description=Items fetched per page,default=50,minimum=1"`
	GridColumns   int        `json:"grid_columns,omitempty" jsonschema:"description=Columns in the file grid,default=3,minimum=1,maximum=8"`
	LongPressMS   int        `json:"long_press_ms,omitempty" jsonschema:"description=Hold time in milliseconds before a press counts as a long click,default=500,minimum=1"`
	MaxSelect     int        `json:"max_select,omitempty" jsonschema:"description=Maximum number of files that can be selected,default=9,minimum=1"`
	Include       []string   `json:"include,omitempty" jsonschema:"description=Glob patterns of files to list; empty lists everything,example=**/*.png"`
	Ignore        []string   `json:"ignore,omitempty" jsonschema:"description=Extra base-name patterns to skip while listing"`
	TUI           TUIOptions `json:"tui,omitempty" jsonschema:"description=Terminal UI options"`
}

// Config is the merged recycler configuration.
type Config struct {
	Options *Options `json:"options,omitempty" jsonschema:"description=General application options"`

	workingDir    string
	dataConfigDir string
	sources       []string
}

func (c *Config) WorkingDir() string {
	return c.workingDir
}

// DataConfigPath is the file that [Config.SetField] writes to.
func (c *Config) DataConfigPath() string {
	return c.dataConfigDir
}

// Sources lists the config files that were merged, lowest precedence first.
func (c *Config) Sources() []string {
	return c.sources
}

func (c *Config) LongPress() time.Duration {
	return time.Duration(c.Options.LongPressMS) * time.Millisecond
}

// ListOptions are the directory listing options derived from the config.
func (c *Config) ListOptions() fsext.ListOptions {
	return fsext.ListOptions{
		Include: c.Options.Include,
		Ignore:  c.Options.Ignore,
	}
}

func (c *Config) setDefaults(workingDir string) {
	c.workingDir = workingDir
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Options.DataDirectory == "" {
		c.Options.DataDirectory = filepath.Join(workingDir, defaultDataDirectory)
	}
	if c.Options.PageSize == 0 {
		c.Options.PageSize = DefaultPageSize
	}
	if c.Options.GridColumns == 0 {
		c.Options.GridColumns = DefaultGridColumns
	}
	if c.Options.LongPressMS == 0 {
		c.Options.LongPressMS = DefaultLongPressMS
	}
	if c.Options.MaxSelect == 0 {
		c.Options.MaxSelect = DefaultMaxSelect
	}
	c.Options.Ignore = slices.Concat(defaultIgnore, c.Options.Ignore)
}

// resolvePaths expands ~ and environment variables in path-like options.
func (c *Config) resolvePaths(getenv func(string) string) error {
	dir, err := fsext.ExpandPath(c.Options.DataDirectory, c.workingDir, getenv)
	if err != nil {
		return fmt.Errorf("invalid data directory %q: %w", c.Options.DataDirectory, err)
	}
	c.Options.DataDirectory = dir

	for i, pattern := range c.Options.Include {
		expanded, err := fsext.Expand(pattern, getenv)
		if err != nil {
			return fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		c.Options.Include[i] = expanded
	}
	return nil
}

// Validate reports every option that is out of range.
func (c *Config) Validate() error {
	var errs []error
	if c.Options.PageSize < 1 {
		errs = append(errs, fmt.Errorf("options.page_size must be positive, got %d", c.Options.PageSize))
	}
	if c.Options.GridColumns < 1 || c.Options.GridColumns > 8 {
		errs = append(errs, fmt.Errorf("options.grid_columns must be between 1 and 8, got %d", c.Options.GridColumns))
	}
	if c.Options.LongPressMS < 1 {
		errs = append(errs, fmt.Errorf("options.long_press_ms must be positive, got %d", c.Options.LongPressMS))
	}
	if c.Options.MaxSelect < 1 {
		errs = append(errs, fmt.Errorf("options.max_select must be positive, got %d", c.Options.MaxSelect))
	}
	return errors.Join(errs...)
}

// SetField writes value at key into the data config file, which takes
// precedence over the global config on the next load. The in-memory config is
// not changed.
func (c *Config) SetField(key string, value any) error {
	data, err := os.ReadFile(c.dataConfigDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		data = []byte("{}")
	}

	updated, err := sjson.SetBytesOptions(data, key, value, &sjson.Options{Optimistic: true})
	if err != nil {
		return fmt.Errorf("failed to set config field %s: %w", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(c.dataConfigDir), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(c.dataConfigDir, updated, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
