package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Animation   AnimationConfig   `mapstructure:"animation"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	UI          UIConfig          `mapstructure:"ui"`
	Colors      ColorsConfig      `mapstructure:"colors"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	MaxTurns          int             `mapstructure:"max_turns"`
	StartingGold      int             `mapstructure:"starting_gold"`
	ArmyPrice         int             `mapstructure:"army_price"`
	DefenseMultiplier int             `mapstructure:"defense_multiplier"`
	Units             UnitsConfig     `mapstructure:"units"`
	Buildings         BuildingsConfig `mapstructure:"buildings"`
	Map               MapConfig       `mapstructure:"map"`
}

// UnitsConfig holds the stats of each unit type
type UnitsConfig struct {
	Land  UnitConfig `mapstructure:"land"`
	Naval UnitConfig `mapstructure:"naval"`
}

// UnitConfig holds the allowances a unit is created with
type UnitConfig struct {
	Strength      int `mapstructure:"strength"`
	MoveAllowance int `mapstructure:"move_allowance"`
	NumAttacks    int `mapstructure:"num_attacks"`
	Upkeep        int `mapstructure:"upkeep"`
}

// BuildingsConfig holds the stats of each building kind
type BuildingsConfig struct {
	Capital BuildingConfig `mapstructure:"capital"`
	Town    BuildingConfig `mapstructure:"town"`
}

// BuildingConfig holds building stats
type BuildingConfig struct {
	Defense    int `mapstructure:"defense"`
	Tax        int `mapstructure:"tax"`
	Durability int `mapstructure:"durability"`
}

// MapConfig holds map generation settings
type MapConfig struct {
	Width              int         `mapstructure:"width"`
	Height             int         `mapstructure:"height"`
	Seed               int64       `mapstructure:"seed"`
	Layout             string      `mapstructure:"layout"`
	MinCapitalSpacing  int         `mapstructure:"min_capital_spacing"`
	TownsPerFaction    int         `mapstructure:"towns_per_faction"`
	StartingLandUnits  int         `mapstructure:"starting_land_units"`
	StartingNavalUnits int         `mapstructure:"starting_naval_units"`
	Noise              NoiseConfig `mapstructure:"noise"`
}

// NoiseConfig holds the thresholds of the noise terrain source
type NoiseConfig struct {
	Scale       float64 `mapstructure:"scale"`
	SeaLevel    float64 `mapstructure:"sea_level"`
	WaterLevel  float64 `mapstructure:"water_level"`
	HillLevel   float64 `mapstructure:"hill_level"`
	ForestLevel float64 `mapstructure:"forest_level"`
}

// AnimationConfig holds the timing of scheduled effects, in milliseconds
type AnimationConfig struct {
	MoveStepMs    int `mapstructure:"move_step_ms"`
	AttackLungeMs int `mapstructure:"attack_lunge_ms"`
	AIStaggerMs   int `mapstructure:"ai_stagger_ms"`
}

// MoveStep returns the time spent per node of a move.
func (a AnimationConfig) MoveStep() time.Duration {
	return time.Duration(a.MoveStepMs) * time.Millisecond
}

// AttackLunge returns the duration of one attack.
func (a AnimationConfig) AttackLunge() time.Duration {
	return time.Duration(a.AttackLungeMs) * time.Millisecond
}

// AIStagger returns the delay between queued enemy attacks.
func (a AnimationConfig) AIStagger() time.Duration {
	return time.Duration(a.AIStaggerMs) * time.Millisecond
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UIConfig holds UI/client configuration
type UIConfig struct {
	Window     WindowConfig `mapstructure:"window"`
	HexSize    int          `mapstructure:"hex_size"`
	PanelWidth int          `mapstructure:"panel_width"`
}

// WindowConfig holds window settings
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// ColorsConfig holds all color configurations
type ColorsConfig struct {
	Factions  FactionColorsConfig   `mapstructure:"factions"`
	Terrain   TerrainColorsConfig   `mapstructure:"terrain"`
	Highlight HighlightColorsConfig `mapstructure:"highlight"`
	UI        UIColorsConfig        `mapstructure:"ui"`
}

// FactionColorsConfig holds faction color settings
type FactionColorsConfig struct {
	Player  [3]int `mapstructure:"player"`
	Enemy   [3]int `mapstructure:"enemy"`
	Neutral [3]int `mapstructure:"neutral"`
}

// TerrainColorsConfig holds terrain fill colors
type TerrainColorsConfig struct {
	Sea    [3]int `mapstructure:"sea"`
	Water  [3]int `mapstructure:"water"`
	Plains [3]int `mapstructure:"plains"`
	Forest [3]int `mapstructure:"forest"`
	Hill   [3]int `mapstructure:"hill"`
}

// HighlightColorsConfig holds overlay colors, with alpha
type HighlightColorsConfig struct {
	Interactable [4]int `mapstructure:"interactable"`
	Attackable   [4]int `mapstructure:"attackable"`
	Selected     [4]int `mapstructure:"selected"`
}

// UIColorsConfig holds UI color settings
type UIColorsConfig struct {
	Background [3]int `mapstructure:"background"`
	GridLines  [3]int `mapstructure:"grid_lines"`
	Panel      [3]int `mapstructure:"panel"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging  bool `mapstructure:"verbose_logging"`
	ShowCoordinates bool `mapstructure:"show_coordinates"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.max_turns", 50)
	v.SetDefault("game.starting_gold", 20)
	v.SetDefault("game.army_price", 10)
	v.SetDefault("game.defense_multiplier", 100)

	// Unit defaults
	v.SetDefault("game.units.land.strength", 1000)
	v.SetDefault("game.units.land.move_allowance", 3)
	v.SetDefault("game.units.land.num_attacks", 1)
	v.SetDefault("game.units.land.upkeep", 2)
	v.SetDefault("game.units.naval.strength", 800)
	v.SetDefault("game.units.naval.move_allowance", 4)
	v.SetDefault("game.units.naval.num_attacks", 1)
	v.SetDefault("game.units.naval.upkeep", 3)

	// Building defaults
	v.SetDefault("game.buildings.capital.defense", 2)
	v.SetDefault("game.buildings.capital.tax", 5)
	v.SetDefault("game.buildings.capital.durability", 1500)
	v.SetDefault("game.buildings.town.defense", 1)
	v.SetDefault("game.buildings.town.tax", 2)
	v.SetDefault("game.buildings.town.durability", 800)

	// Map defaults
	v.SetDefault("game.map.width", 16)
	v.SetDefault("game.map.height", 12)
	v.SetDefault("game.map.seed", 0)
	v.SetDefault("game.map.layout", "")
	v.SetDefault("game.map.min_capital_spacing", 0)
	v.SetDefault("game.map.towns_per_faction", 1)
	v.SetDefault("game.map.starting_land_units", 2)
	v.SetDefault("game.map.starting_naval_units", 1)
	v.SetDefault("game.map.noise.scale", 0.15)
	v.SetDefault("game.map.noise.sea_level", 0.28)
	v.SetDefault("game.map.noise.water_level", 0.36)
	v.SetDefault("game.map.noise.hill_level", 0.72)
	v.SetDefault("game.map.noise.forest_level", 0.6)

	// Animation defaults
	v.SetDefault("animation.move_step_ms", 150)
	v.SetDefault("animation.attack_lunge_ms", 250)
	v.SetDefault("animation.ai_stagger_ms", 400)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// UI defaults
	v.SetDefault("ui.window.width", 1100)
	v.SetDefault("ui.window.height", 720)
	v.SetDefault("ui.window.title", "Hex Tactics")
	v.SetDefault("ui.hex_size", 26)
	v.SetDefault("ui.panel_width", 260)

	// Color defaults
	v.SetDefault("colors.factions.player", []int{60, 110, 220})
	v.SetDefault("colors.factions.enemy", []int{210, 60, 60})
	v.SetDefault("colors.factions.neutral", []int{150, 150, 150})

	v.SetDefault("colors.terrain.sea", []int{20, 40, 90})
	v.SetDefault("colors.terrain.water", []int{50, 100, 170})
	v.SetDefault("colors.terrain.plains", []int{120, 170, 80})
	v.SetDefault("colors.terrain.forest", []int{40, 110, 50})
	v.SetDefault("colors.terrain.hill", []int{140, 120, 90})

	v.SetDefault("colors.highlight.interactable", []int{255, 255, 255, 70})
	v.SetDefault("colors.highlight.attackable", []int{255, 60, 60, 110})
	v.SetDefault("colors.highlight.selected", []int{255, 220, 60, 130})

	v.SetDefault("colors.ui.background", []int{15, 15, 20})
	v.SetDefault("colors.ui.grid_lines", []int{30, 30, 30})
	v.SetDefault("colors.ui.panel", []int{35, 35, 45})

	// Development defaults
	v.SetDefault("development.verbose_logging", false)
	v.SetDefault("development.show_coordinates", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/hextactics")
	}

	v.SetEnvPrefix("HEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A specific file that is missing is fine, defaults apply
		if configPath == "" && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// Defaults returns a config holding only the default values. It does not
// touch the global instance.
func Defaults() *Config {
	dv := viper.New()
	setViperDefaults(dv)
	c := &Config{}
	if err := dv.Unmarshal(c); err != nil {
		panic("default config does not decode: " + err.Error())
	}
	return c
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	_ = v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// GetFloat64 gets a float64 value from config
func GetFloat64(key string) float64 {
	return v.GetFloat64(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. A reloaded file that
// fails validation is reported through onError and the previous values stay.
func WatchConfig(onChange func(*Config), onError func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		if err := Validate(next); err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		*cfg = *next
		if onChange != nil {
			onChange(cfg)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	g := c.Game
	if g.MaxTurns < 1 {
		return fmt.Errorf("game.max_turns must be at least 1")
	}
	if g.ArmyPrice < 0 {
		return fmt.Errorf("game.army_price must be non-negative")
	}
	if g.DefenseMultiplier < 0 {
		return fmt.Errorf("game.defense_multiplier must be non-negative")
	}

	for name, u := range map[string]UnitConfig{"land": g.Units.Land, "naval": g.Units.Naval} {
		if u.Strength <= 0 {
			return fmt.Errorf("game.units.%s.strength must be positive", name)
		}
		if u.MoveAllowance < 0 || u.NumAttacks < 0 || u.Upkeep < 0 {
			return fmt.Errorf("game.units.%s allowances must be non-negative", name)
		}
	}
	for name, b := range map[string]BuildingConfig{"capital": g.Buildings.Capital, "town": g.Buildings.Town} {
		if b.Durability <= 0 {
			return fmt.Errorf("game.buildings.%s.durability must be positive", name)
		}
		if b.Defense < 0 || b.Tax < 0 {
			return fmt.Errorf("game.buildings.%s values must be non-negative", name)
		}
	}

	m := g.Map
	if m.Layout == "" && (m.Width < 6 || m.Height < 3) {
		return fmt.Errorf("game.map must be at least 6x3")
	}
	if m.MinCapitalSpacing < 0 || m.TownsPerFaction < 0 || m.StartingLandUnits < 0 || m.StartingNavalUnits < 0 {
		return fmt.Errorf("game.map placement counts must be non-negative")
	}
	if m.Noise.Scale <= 0 {
		return fmt.Errorf("game.map.noise.scale must be positive")
	}
	levels := []float64{m.Noise.SeaLevel, m.Noise.WaterLevel, m.Noise.HillLevel, m.Noise.ForestLevel}
	for _, l := range levels {
		if l < 0 || l > 1 {
			return fmt.Errorf("game.map.noise levels must be between 0 and 1")
		}
	}
	if m.Noise.SeaLevel > m.Noise.WaterLevel || m.Noise.WaterLevel > m.Noise.HillLevel {
		return fmt.Errorf("game.map.noise levels must satisfy sea <= water <= hill")
	}

	a := c.Animation
	if a.MoveStepMs < 0 || a.AttackLungeMs < 0 || a.AIStaggerMs < 0 {
		return fmt.Errorf("animation timings must be non-negative")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	if c.UI.Window.Width <= 0 || c.UI.Window.Height <= 0 {
		return fmt.Errorf("ui.window dimensions must be positive")
	}
	if c.UI.HexSize <= 0 {
		return fmt.Errorf("ui.hex_size must be positive")
	}
	if c.UI.PanelWidth < 0 {
		return fmt.Errorf("ui.panel_width must be non-negative")
	}

	validateRGB := func(rgb [3]int, name string) error {
		for i, v := range rgb {
			if v < 0 || v > 255 {
				return fmt.Errorf("%s[%d] must be between 0 and 255", name, i)
			}
		}
		return nil
	}
	validateRGBA := func(rgba [4]int, name string) error {
		for i, v := range rgba {
			if v < 0 || v > 255 {
				return fmt.Errorf("%s[%d] must be between 0 and 255", name, i)
			}
		}
		return nil
	}

	rgb := map[string][3]int{
		"colors.factions.player":  c.Colors.Factions.Player,
		"colors.factions.enemy":   c.Colors.Factions.Enemy,
		"colors.factions.neutral": c.Colors.Factions.Neutral,
		"colors.terrain.sea":      c.Colors.Terrain.Sea,
		"colors.terrain.water":    c.Colors.Terrain.Water,
		"colors.terrain.plains":   c.Colors.Terrain.Plains,
		"colors.terrain.forest":   c.Colors.Terrain.Forest,
		"colors.terrain.hill":     c.Colors.Terrain.Hill,
		"colors.ui.background":    c.Colors.UI.Background,
		"colors.ui.grid_lines":    c.Colors.UI.GridLines,
		"colors.ui.panel":         c.Colors.UI.Panel,
	}
	for name, value := range rgb {
		if err := validateRGB(value, name); err != nil {
			return err
		}
	}
	rgba := map[string][4]int{
		"colors.highlight.interactable": c.Colors.Highlight.Interactable,
		"colors.highlight.attackable":   c.Colors.Highlight.Attackable,
		"colors.highlight.selected":     c.Colors.Highlight.Selected,
	}
	for name, value := range rgba {
		if err := validateRGBA(value, name); err != nil {
			return err
		}
	}

	return nil
}
