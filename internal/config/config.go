package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Difficulty selects the AI policy.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyHard
)

func (d Difficulty) String() string {
	return []string{"easy", "hard"}[d]
}

// ParseDifficulty accepts "easy" or "hard", case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyEasy, fmt.Errorf("unknown difficulty %q", s)
	}
}

// TieBreak decides the winner once the deck is empty and nobody can match.
type TieBreak int

const (
	TieBreakMatchCount TieBreak = iota
	TieBreakSuddenDeath
)

func (t TieBreak) String() string {
	return []string{"match_count", "sudden_death"}[t]
}

func ParseTieBreak(s string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "match_count", "matches":
		return TieBreakMatchCount, nil
	case "sudden_death", "sudden-death":
		return TieBreakSuddenDeath, nil
	default:
		return TieBreakMatchCount, fmt.Errorf("unknown tie-break policy %q", s)
	}
}

// AIEmptyDeckRule is what happens when the AI has no pair and the deck is empty.
type AIEmptyDeckRule int

const (
	// AIEmptyDeckContinue lets the shared end-of-deck check decide the game.
	AIEmptyDeckContinue AIEmptyDeckRule = iota
	// AIEmptyDeckForfeit ends the game at once in the AI's favour.
	AIEmptyDeckForfeit
)

func (r AIEmptyDeckRule) String() string {
	return []string{"continue", "forfeit"}[r]
}

func ParseAIEmptyDeckRule(s string) (AIEmptyDeckRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "continue":
		return AIEmptyDeckContinue, nil
	case "forfeit":
		return AIEmptyDeckForfeit, nil
	default:
		return AIEmptyDeckContinue, fmt.Errorf("unknown ai_empty_deck rule %q", s)
	}
}

const (
	DefaultHandSize = 5
	MaxHandSize     = 8
)

// GameConfig holds the settings for a tile-matching session.
type GameConfig struct {
	Difficulty  Difficulty
	TieBreak    TieBreak
	AIEmptyDeck AIEmptyDeckRule
	HandSize    int
	AIDelay     time.Duration // Pacing for interactive front-ends
	Seed        int64         // 0 means seed from the clock
}

// fileConfig mirrors the on-disk keys.
type fileConfig struct {
	Difficulty  string `mapstructure:"difficulty"`
	TieBreak    string `mapstructure:"tie_break"`
	AIEmptyDeck string `mapstructure:"ai_empty_deck"`
	HandSize    int    `mapstructure:"hand_size"`
	AIDelayMS   int    `mapstructure:"ai_delay_ms"`
	Seed        int64  `mapstructure:"seed"`
}

// Default returns the settings used when no file or environment overrides exist.
func Default() *GameConfig {
	return &GameConfig{
		Difficulty:  DifficultyEasy,
		TieBreak:    TieBreakMatchCount,
		AIEmptyDeck: AIEmptyDeckContinue,
		HandSize:    DefaultHandSize,
		AIDelay:     time.Second,
	}
}

// Load reads the configuration file at path, if it exists, and applies TILES_*
// environment overrides on top of the defaults.
func Load(path string) (*GameConfig, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("difficulty", def.Difficulty.String())
	v.SetDefault("tie_break", def.TieBreak.String())
	v.SetDefault("ai_empty_deck", def.AIEmptyDeck.String())
	v.SetDefault("hand_size", def.HandSize)
	v.SetDefault("ai_delay_ms", int(def.AIDelay/time.Millisecond))
	v.SetDefault("seed", def.Seed)

	v.SetEnvPrefix("TILES")
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var raw fileConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return raw.resolve()
}

func (fc fileConfig) resolve() (*GameConfig, error) {
	cfg := Default()
	var err error
	if cfg.Difficulty, err = ParseDifficulty(fc.Difficulty); err != nil {
		return nil, err
	}
	if cfg.TieBreak, err = ParseTieBreak(fc.TieBreak); err != nil {
		return nil, err
	}
	if cfg.AIEmptyDeck, err = ParseAIEmptyDeckRule(fc.AIEmptyDeck); err != nil {
		return nil, err
	}
	if fc.HandSize < 1 || fc.HandSize > MaxHandSize {
		return nil, fmt.Errorf("hand_size must be between 1 and %d, got %d", MaxHandSize, fc.HandSize)
	}
	if fc.AIDelayMS < 0 {
		return nil, fmt.Errorf("ai_delay_ms must not be negative, got %d", fc.AIDelayMS)
	}
	cfg.HandSize = fc.HandSize
	cfg.AIDelay = time.Duration(fc.AIDelayMS) * time.Millisecond
	cfg.Seed = fc.Seed
	return cfg, nil
}

// NewRand returns the random source for one session.
func (c *GameConfig) NewRand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
