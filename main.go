package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/satcollide/logging"
	"go.uber.org/zap"
)

func main() {
	sceneName := flag.String("scene", "default", "scene name in specs/scenes/ (basename, .yaml optional)")
	debug := flag.Bool("debug", false, "force the debug overlay on")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	logLevel := flag.String("log", "info", "log level")
	flag.Parse()

	logger, err := logging.New(*logLevel, true)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(*sceneName, *debug, logger)
	if err != nil {
		logger.Fatal("satcollide: start", zap.Error(err))
	}
	defer game.Close()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("satcollide")

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("satcollide: run", zap.Error(err))
	}
}
