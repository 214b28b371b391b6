package main

import (
	"flag"

	"example.com/tilematch/internal/config"
	"example.com/tilematch/internal/gui"

	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"
)

func main() {
	logLevel := flag.String("loglevel", "info", "Set logging level (debug, info, warn, error)")
	configPath := flag.String("config", "default_config.json", "Path to the game configuration file")
	flag.Parse()

	log := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	gameConfig, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gui.New(app.New(), gameConfig, log).Run()
}
