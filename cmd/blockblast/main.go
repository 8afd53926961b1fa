package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/plus3/blockblast/config"
	"github.com/plus3/blockblast/cue"
	debugui_ebiten "github.com/plus3/blockblast/debugui/ebiten"
	"github.com/plus3/blockblast/logging"
	"github.com/spf13/cobra"
)

var (
	configFile string
	seed       uint64
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "blockblast",
	Short: "Drag pieces onto the board and clear full rows and columns.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New("blockblast", "info")

		loader, err := config.Load(configFile, logger)
		if err != nil {
			return err
		}
		cfg := loader.Config()

		flags := cmd.Flags()
		if flags.Changed("seed") {
			cfg.Seed.Value = seed
		}
		if flags.Changed("debug") {
			cfg.Window.Debug = debug
		}
		logger.SetLevel(logging.ParseLevel(cfg.Log.Level))
		logger.Debug("configuration loaded", "file", loader.File(), "config", cfg)

		var player cue.Player = cue.NopPlayer{}
		var speaker *cue.EbitenPlayer
		if cfg.Sound.Enabled {
			speaker = cue.NewEbitenPlayer(audio.NewContext(cue.SampleRate), cfg.Sound.Volume)
			player = speaker
		}

		var backend *debugui_ebiten.ImguiBackend
		if cfg.Window.Debug {
			backend = debugui_ebiten.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		} else {
			ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
			ebiten.SetWindowTitle(cfg.Window.Title)
		}

		game, err := NewGame(cfg, player, backend, logger)
		if err != nil {
			return err
		}

		if cfg.Sound.Enabled {
			if err := game.sounds.Load(os.DirFS(cfg.Sound.Dir)); err != nil {
				logger.Warn("playing without sound", "dir", cfg.Sound.Dir, "err", err)
			}
		}

		loader.Watch(func(c config.Config) {
			logger.SetLevel(logging.ParseLevel(c.Log.Level))
			// the engine logger is derived from logger and keeps its own level
			game.engine.SetLogger(logger)
			if speaker != nil {
				speaker.SetVolume(c.Sound.Volume)
			}
			logger.Info("config reloaded", "level", c.Log.Level, "volume", c.Sound.Volume)
		})

		return ebiten.RunGame(game)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&configFile, "configFile", "", "config file (yaml, toml or json)")
	flags.Uint64Var(&seed, "seed", 0, "random seed; 0 picks one")
	flags.BoolVar(&debug, "debug", false, "show the inspector panels")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("blockblast stopped", "err", err)
		os.Exit(1)
	}
}
