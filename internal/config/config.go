package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"selectiongroup/internal/domain"
	"selectiongroup/internal/eventbus"
	"selectiongroup/internal/selection"
)

// ErrNoItems is returned by Validate when there is nothing to select from
var ErrNoItems = errors.New("config has no items")

// Config represents the application configuration
type Config struct {
	Version   int               `toml:"version"`
	Title     string            `toml:"title"`
	Selection SelectionSettings `toml:"selection"`
	Items     []ItemConfig      `toml:"items"`
	UI        UISettings        `toml:"ui"`
}

// SelectionSettings configures the selection policy
type SelectionSettings struct {
	MaxMultiSelect   int   `toml:"max_multi_select"`
	AllowDeselect    *bool `toml:"allow_deselect,omitempty"` // nil means true
	DefaultSelection []int `toml:"default_selection,omitempty"`
}

// ItemConfig is one selectable entry
type ItemConfig struct {
	Label       string `toml:"label"`
	Description string `toml:"description,omitempty"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowDescriptions bool   `toml:"show_descriptions"`
	LabelWidth       int    `toml:"label_width"`
	Border           bool   `toml:"border"`
	AccentColor      string `toml:"accent_color"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "selectiongroup", "config.toml")
}

// NewConfigService creates a config service for the default path
func NewConfigService() ConfigService {
	return NewConfigServiceAt(DefaultPath())
}

// NewConfigServiceAt creates a config service reading and writing path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	return &configService{filePath: path, bus: bus}
}

// Path returns the file Load and Save use
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when the
// file does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:      cs.filePath,
			ItemCount: len(cfg.Items),
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Items = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	log.Printf("Loaded config from %s (%d items)", path, len(cfg.Items))
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	allowDeselect := true
	return &Config{
		Version: 1,
		Title:   "Pick a fruit",
		Selection: SelectionSettings{
			MaxMultiSelect: 1,
			AllowDeselect:  &allowDeselect,
		},
		Items: []ItemConfig{
			{Label: "Apple", Description: "crisp and sweet"},
			{Label: "Banana", Description: "soft, good for breakfast"},
			{Label: "Cherry", Description: "small, comes in bunches"},
			{Label: "Durian", Description: "an acquired taste"},
			{Label: "Elderberry", Description: "usually cooked"},
		},
		UI: UISettings{
			ShowDescriptions: true,
			LabelWidth:       24,
			Border:           true,
			AccentColor:      "99",
		},
	}
}

// SelectionOptions maps the selection settings onto selection.Options.
// MaxMultiSelect is passed through as is; a file that omits it keeps the
// default from DefaultConfig.
func (c *Config) SelectionOptions() selection.Options {
	opts := selection.DefaultOptions()
	opts.MaxMultiSelect = c.Selection.MaxMultiSelect
	if c.Selection.AllowDeselect != nil {
		opts.AllowDeselect = *c.Selection.AllowDeselect
	}
	opts.DefaultSelection = c.Selection.DefaultSelection
	return opts
}

// DomainItems converts configured items to domain items
func (c *Config) DomainItems() []domain.Item {
	items := make([]domain.Item, len(c.Items))
	for i, it := range c.Items {
		items[i] = domain.Item{Label: it.Label, Description: it.Description}
	}
	return items
}

// Validate checks the configuration before a UI is built from it
func (c *Config) Validate() error {
	if len(c.Items) == 0 {
		return ErrNoItems
	}
	if c.Selection.MaxMultiSelect <= 0 {
		return fmt.Errorf("%w: max_multi_select must be positive, got %d",
			selection.ErrInvalidConfiguration, c.Selection.MaxMultiSelect)
	}
	opts := c.SelectionOptions()
	if err := opts.Validate(); err != nil {
		return err
	}
	for _, index := range opts.DefaultSelection {
		if index < 0 || index >= len(c.Items) {
			return fmt.Errorf("%w: default selection index %d outside %d items",
				selection.ErrInvalidConfiguration, index, len(c.Items))
		}
	}
	return nil
}
