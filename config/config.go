package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/adrg/xdg"
	"github.com/lucasb-eyer/go-colorful"

	"termblocks/engine"
)

var (
	cfgFile = "termblocks/config.json"

	// reservedKeys are handled by the game view and cannot be rebound.
	reservedKeys = "qf"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// ConfigColors are terminal palette indices (0-255) for the chrome around
// the board. Block colors come from Theme.Palette.
type ConfigColors struct {
	BackgroundColor int `json:"background"`
	GridLineColor   int `json:"grid_line"`
	BorderColor     int `json:"border"`
	TextColor       int `json:"text"`
}

type ConfigSymbols struct {
	Block   rune `json:"block"`
	Empty   rune `json:"empty"`
	Preview rune `json:"preview"`
}

type Theme struct {
	UseGridLines bool          `json:"use_grid_lines"`
	Colors       ConfigColors  `json:"colors"`
	Symbols      ConfigSymbols `json:"symbols"`
	// Palette holds "#rrggbb" block colors. A block with identity token t
	// is drawn with Palette[t % len(Palette)].
	Palette []string `json:"palette"`
	// PreviewBlend is how far drop preview cells fade towards the
	// background, from 0 (block color) to 1 (background).
	PreviewBlend float64 `json:"preview_blend"`
}

// GameDefaults are the settings a new game starts with.
type GameDefaults struct {
	DropDelayMs int   `json:"drop_delay_ms"`
	Autoplay    bool  `json:"autoplay"`
	Seed        int64 `json:"seed"` // 0 picks a new seed per game
}

type Config struct {
	Theme Theme        `json:"theme"`
	Game  GameDefaults `json:"game"`
	// Keys maps single characters to command names, e.g. "j": "down".
	// Entries in a config file are added to the defaults.
	Keys map[string]string `json:"keys"`
}

func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig.Clone()
		return config, config.Validate()
	}
	return Load(absPath)
}

// Load reads the config at filePath over the defaults.
func Load(filePath string) (*Config, error) {
	config := DefaultConfig.Clone()
	if err := readCfgFile(filePath, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Clone returns a deep copy of c.
func (c Config) Clone() *Config {
	c.Theme.Palette = slices.Clone(c.Theme.Palette)
	c.Keys = maps.Clone(c.Keys)
	return &c
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.Block, c.Theme.Symbols.Empty, c.Theme.Symbols.Preview} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if len(c.Theme.Palette) == 0 {
		return &InvalidConfig{"palette must have at least one color"}
	}
	if _, err := c.Theme.PaletteColors(); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.Theme.PreviewBlend < 0 || c.Theme.PreviewBlend > 1 {
		return &InvalidConfig{"preview_blend must be between 0 and 1"}
	}
	if c.Game.DropDelayMs < 0 {
		return &InvalidConfig{"drop_delay_ms must not be negative"}
	}
	if _, err := c.KeyBindings(); err != nil {
		return &InvalidConfig{err.Error()}
	}
	return nil
}

// KeyBindings parses Keys into game commands.
func (c *Config) KeyBindings() (map[rune]engine.Command, error) {
	bindings := make(map[rune]engine.Command, len(c.Keys))
	for key, name := range c.Keys {
		r, size := utf8.DecodeRuneInString(key)
		if r == utf8.RuneError || size != len(key) {
			return nil, fmt.Errorf("key %q must be a single character", key)
		}
		if strings.ContainsRune(reservedKeys, r) {
			return nil, fmt.Errorf("key %q is reserved", key)
		}
		cmd, err := engine.ParseCommand(name)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		bindings[r] = cmd
	}
	return bindings, nil
}

// PaletteColors parses the palette.
func (t *Theme) PaletteColors() ([]colorful.Color, error) {
	colors := make([]colorful.Color, len(t.Palette))
	for i, hex := range t.Palette {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d %q is not a #rrggbb color", i, hex)
		}
		colors[i] = c
	}
	return colors, nil
}

// EngineConfig returns the engine settings for a new game. A zero seed is
// replaced with a time based one.
func (g GameDefaults) EngineConfig() engine.GameConfig {
	cfg := engine.DefaultConfig()
	cfg.DropDelay = time.Duration(g.DropDelayMs) * time.Millisecond
	cfg.Autoplay = g.Autoplay
	if g.Seed != 0 {
		cfg.Seed = g.Seed
	}
	return cfg
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to locate config file: %w", err)
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(filePath, jsonData, perm); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(configReader, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
