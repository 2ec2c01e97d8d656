package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cbodonnell/memoryline/client/assets"
	"github.com/cbodonnell/memoryline/client/game"
	pkgassets "github.com/cbodonnell/memoryline/pkg/assets"
	"github.com/cbodonnell/memoryline/pkg/catalog"
	"github.com/cbodonnell/memoryline/pkg/config"
	"github.com/cbodonnell/memoryline/pkg/log"
	"github.com/cbodonnell/memoryline/pkg/memory"
	"github.com/cbodonnell/memoryline/pkg/version"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	sampleRate   = 44100
	maxImageSize = 160
	windowTitle  = "Memory Line"
)

func main() {
	configPath := flag.String("config", "", "Config file (default $XDG_CONFIG_HOME/memoryline/config.toml)")
	logLevel := flag.String("log-level", "info", "Log level")
	logFormat := flag.String("log-format", "console", "Log format (console or json)")
	catalogPath := flag.String("catalog", "", "Catalog file (default embedded catalog)")
	assetsDir := flag.String("assets", "assets", "Directory holding images/ and sounds/")
	mode := flag.String("mode", "match", "Play mode (match, preview or static)")
	policy := flag.String("policy", "flush", "Third card policy while a mismatch is shown (flush, ignore or legacy)")
	rows := flag.Int("rows", memory.DefaultRows, "Grid rows")
	cols := flag.Int("cols", memory.DefaultCols, "Grid columns")
	seed := flag.Uint64("seed", 0, "Shuffle seed, 0 for a fresh shuffle every game")
	debug := flag.Bool("debug", false, "Show the debug overlay")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// flags given on the command line win over the config file and environment
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		var err error
		switch f.Name {
		case "log-level":
			err = cfg.LogLevel.UnmarshalText([]byte(*logLevel))
		case "log-format":
			cfg.LogFormat, err = log.ParseFormat(*logFormat)
		case "catalog":
			cfg.CatalogPath = *catalogPath
		case "assets":
			cfg.AssetsDir = *assetsDir
		case "mode":
			err = cfg.Mode.UnmarshalText([]byte(*mode))
		case "policy":
			err = cfg.Policy.UnmarshalText([]byte(*policy))
		case "rows":
			cfg.Rows = *rows
		case "cols":
			cfg.Cols = *cols
		case "seed":
			cfg.Seed = *seed
		}
		if err != nil && flagErr == nil {
			flagErr = fmt.Errorf("invalid -%s: %w", f.Name, err)
		}
	})
	if flagErr != nil {
		panic(fmt.Sprintf("Failed to parse flags: %v", flagErr))
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}

	logger := log.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", cfg.LogLevel)

	log.Info("Starting client version %s", version.Get())

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load catalog: %v", err))
	}
	result := cat.Validate(catalog.MinValues)
	for _, warning := range result.Warnings {
		log.Warn("Catalog: %s", warning)
	}
	if !result.Valid() {
		for _, e := range result.Errors {
			log.Error("Catalog: %s", e)
		}
		panic("Catalog is invalid")
	}

	resolver := pkgassets.NewResolver(cfg.AssetsDir)
	audioContext := audio.NewContext(sampleRate)

	g, err := game.NewGame(game.NewGameOptions{
		Debug:   *debug,
		Config:  cfg,
		Catalog: cat,
		Images:  assets.NewImageLoader(resolver, maxImageSize, maxImageSize),
		Speaker: assets.NewSpeaker(audioContext, resolver),
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game: %v", err))
	}

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle(windowTitle)
	if err := ebiten.RunGame(g); err != nil {
		panic(fmt.Sprintf("Failed to run game: %v", err))
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}
