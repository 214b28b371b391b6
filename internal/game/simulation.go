package game

import (
	"errors"
	"math/rand"

	"example.com/tilematch/internal/ai"
	"example.com/tilematch/internal/config"

	"github.com/sirupsen/logrus"
)

// MaxSimulationRounds guards the headless loop; a real game ends long before.
const MaxSimulationRounds = 200

// SimulationReport aggregates the results of a batch of headless games.
type SimulationReport struct {
	Games       int
	PlayerWins  int
	AIWins      int
	Draws       int
	Unfinished  int
	TotalRounds int
	Reasons     map[Reason]int
}

// AverageRounds is the mean number of rounds per game.
func (r SimulationReport) AverageRounds() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.TotalRounds) / float64(r.Games)
}

// Simulate plays n complete games with an autopilot in the player's seat.
// Every game gets its own random source derived from r.
func Simulate(cfg *config.GameConfig, logger *logrus.Logger, r *rand.Rand, n int) (SimulationReport, error) {
	if n < 1 {
		return SimulationReport{}, errors.New("number of games must be positive")
	}
	report := SimulationReport{Reasons: make(map[Reason]int)}

	for i := 0; i < n; i++ {
		gameRand := rand.New(rand.NewSource(r.Int63()))
		g, err := NewBuilder(cfg, logger, gameRand).Build()
		if err != nil {
			return report, err
		}

		policy, err := ai.NewPolicy(config.DifficultyEasy, ai.NewRandomChooser(gameRand))
		if err != nil {
			return report, err
		}
		autopilot := ai.NewBrain(logger, "Player", policy)

		outcome, rounds := g.RunSimulation(autopilot, MaxSimulationRounds)
		report.Games++
		report.TotalRounds += rounds
		switch outcome {
		case PlayerWin:
			report.PlayerWins++
		case AIWin:
			report.AIWins++
		case Draw:
			report.Draws++
		default:
			report.Unfinished++
		}
		if outcome.Terminal() {
			report.Reasons[g.Reason()]++
		}
	}
	return report, nil
}
