package main

import (
	"flag"
	"os"

	"example.com/tilematch/internal/cli"
	"example.com/tilematch/internal/config"

	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Parse command-line flags
	logLevel := flag.String("loglevel", "info", "Set logging level (debug, info, warn, error)")
	configPath := flag.String("config", "default_config.json", "Path to the game configuration file")
	difficulty := flag.String("difficulty", "", "Override the AI difficulty (easy, hard)")
	tieBreak := flag.String("tiebreak", "", "Override the tie-break policy (match_count, sudden_death)")
	seed := flag.Int64("seed", 0, "Seed for the shuffle; 0 uses the config value or the clock")
	strict := flag.Bool("strict", false, "The AI loses when it must draw from an empty deck")
	flag.Parse()

	// 2. Set up top-level dependencies (Logger)
	log := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, ForceColors: true})

	// 3. Load game configuration, then apply flag overrides
	gameConfig, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *difficulty != "" {
		if gameConfig.Difficulty, err = config.ParseDifficulty(*difficulty); err != nil {
			log.Fatalf("Invalid -difficulty: %v", err)
		}
	}
	if *tieBreak != "" {
		if gameConfig.TieBreak, err = config.ParseTieBreak(*tieBreak); err != nil {
			log.Fatalf("Invalid -tiebreak: %v", err)
		}
	}
	if *seed != 0 {
		gameConfig.Seed = *seed
	}
	if *strict {
		gameConfig.AIEmptyDeck = config.AIEmptyDeckForfeit
	}
	log.Debugf("Configuration: %+v", *gameConfig)

	// 4. Create the CLI, injecting the logger
	ui := cli.NewCLI(log)

	// 5. Run the application
	if err := ui.Run(flag.Args(), gameConfig, gameConfig.NewRand()); err != nil {
		log.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
}
