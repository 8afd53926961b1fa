// Package config loads the game settings from defaults, an optional YAML
// file and BLOCKBLAST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/plus3/blockblast/engine"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BLOCKBLAST_GRID_WIDTH.
const EnvPrefix = "BLOCKBLAST"

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Grid   GridConf   `mapstructure:"grid"`
	Tray   TrayConf   `mapstructure:"tray"`
	Seed   SeedConf   `mapstructure:"seed"`
	Log    LogConf    `mapstructure:"log"`
	Window WindowConf `mapstructure:"window"`
	Sound  SoundConf  `mapstructure:"sound"`
	Stress StressConf `mapstructure:"stress"`
}

type GridConf struct {
	Width       int     `mapstructure:"width"`
	Height      int     `mapstructure:"height"`
	SquareSize  float64 `mapstructure:"squareSize"`
	PaletteSize int     `mapstructure:"paletteSize"`
}

type TrayConf struct {
	BatchSize  int  `mapstructure:"batchSize"`
	LowWater   int  `mapstructure:"lowWater"`
	AutoRefill bool `mapstructure:"autoRefill"`
}

// SeedConf drives the random source. Value 0 picks a random seed.
type SeedConf struct {
	Value      uint64  `mapstructure:"value"`
	RemoveFrom float64 `mapstructure:"removeFrom"`
	RemoveTo   float64 `mapstructure:"removeTo"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

type WindowConf struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
	Debug  bool   `mapstructure:"debug"`
}

type SoundConf struct {
	Enabled bool    `mapstructure:"enabled"`
	Dir     string  `mapstructure:"dir"`
	Volume  float64 `mapstructure:"volume"`
}

type StressConf struct {
	Games        int `mapstructure:"games"`
	MovesPerGame int `mapstructure:"movesPerGame"`
	Workers      int `mapstructure:"workers"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("grid.width", 10)
	v.SetDefault("grid.height", 10)
	v.SetDefault("grid.squareSize", 48.0)
	v.SetDefault("grid.paletteSize", 8)

	v.SetDefault("tray.batchSize", 4)
	v.SetDefault("tray.lowWater", 1)
	v.SetDefault("tray.autoRefill", true)

	v.SetDefault("seed.value", 0)
	v.SetDefault("seed.removeFrom", engine.DefaultSeedPolicy.From)
	v.SetDefault("seed.removeTo", engine.DefaultSeedPolicy.To)

	v.SetDefault("log.level", "info")

	v.SetDefault("window.width", 640)
	v.SetDefault("window.height", 860)
	v.SetDefault("window.title", "Block Blast")
	v.SetDefault("window.debug", false)

	v.SetDefault("sound.enabled", true)
	v.SetDefault("sound.dir", "assets/sounds")
	v.SetDefault("sound.volume", 0.8)

	v.SetDefault("stress.games", 100)
	v.SetDefault("stress.movesPerGame", 500)
	v.SetDefault("stress.workers", 4)
}

// Validate checks the values the engine and the hosts cannot work without.
func (c Config) Validate() error {
	var errs []error
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Grid.SquareSize <= 0 {
		errs = append(errs, fmt.Errorf("grid.squareSize %v", c.Grid.SquareSize))
	}
	if c.Grid.PaletteSize <= 0 {
		errs = append(errs, fmt.Errorf("grid.paletteSize %d", c.Grid.PaletteSize))
	}
	if c.Tray.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("tray.batchSize %d", c.Tray.BatchSize))
	}
	if c.Tray.LowWater < 0 {
		errs = append(errs, fmt.Errorf("tray.lowWater %d", c.Tray.LowWater))
	}
	if c.Seed.RemoveFrom <= 0 || c.Seed.RemoveTo <= 0 {
		errs = append(errs, fmt.Errorf("seed removal %v..%v", c.Seed.RemoveFrom, c.Seed.RemoveTo))
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		errs = append(errs, fmt.Errorf("sound.volume %v", c.Sound.Volume))
	}
	if c.Stress.Games <= 0 {
		errs = append(errs, fmt.Errorf("stress.games %d", c.Stress.Games))
	}
	if c.Stress.MovesPerGame <= 0 {
		errs = append(errs, fmt.Errorf("stress.movesPerGame %d", c.Stress.MovesPerGame))
	}
	if c.Stress.Workers <= 0 {
		errs = append(errs, fmt.Errorf("stress.workers %d", c.Stress.Workers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// NewRand returns the random source described by the seed settings.
func (c Config) NewRand() *rand.Rand {
	seed := c.Seed.Value
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// EngineOptions translates the settings into engine options. Listener and
// Logger are left for the caller.
func (c Config) EngineOptions(rng engine.Rand) engine.Options {
	opts := engine.DefaultOptions()
	opts.Width = c.Grid.Width
	opts.Height = c.Grid.Height
	opts.PaletteSize = c.Grid.PaletteSize
	opts.BatchSize = c.Tray.BatchSize
	opts.LowWater = c.Tray.LowWater
	opts.AutoRefill = c.Tray.AutoRefill
	opts.Seed = engine.SeedPolicy{From: c.Seed.RemoveFrom, To: c.Seed.RemoveTo}
	opts.Rand = rng
	return opts
}

// Loader reads the configuration and keeps it current while watched.
type Loader struct {
	v      *viper.Viper
	logger *log.Logger

	mu      sync.RWMutex
	current Config
}

// Load reads defaults, then configFile if it is not empty, then the
// environment.
func Load(configFile string, logger *log.Logger) (*Loader, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.Default()
	}
	return &Loader{v: v, logger: logger, current: cfg}, nil
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Config returns the latest valid configuration.
func (l *Loader) Config() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// File returns the config file in use, if any.
func (l *Loader) File() string {
	return l.v.ConfigFileUsed()
}

// Watch reloads the file whenever it changes and calls fn with the new
// configuration. Invalid edits are logged and ignored. Without a config file
// Watch does nothing.
func (l *Loader) Watch(fn func(Config)) {
	if l.File() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		l.reload(e, fn)
	})
	l.v.WatchConfig()
}

func (l *Loader) reload(e fsnotify.Event, fn func(Config)) {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}

	cfg, err := decode(l.v)
	if err != nil {
		l.logger.Warn("ignoring config change", "file", e.Name, "err", err)
		return
	}

	l.mu.Lock()
	l.current = cfg
	l.mu.Unlock()

	l.logger.Info("config reloaded", "file", e.Name)
	if fn != nil {
		fn(cfg)
	}
}
