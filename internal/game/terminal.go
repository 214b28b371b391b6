package game

import (
	"example.com/tilematch/internal/config"
	"example.com/tilematch/internal/events"
	"example.com/tilematch/internal/tiles"
)

// CheckTerminal evaluates the end-of-game rules in priority order and returns
// the outcome; the boolean is true once the game is over. Terminal states are sticky.
func (g *Game) CheckTerminal() (Outcome, bool) {
	if g.IsOver() {
		return g.outcome, true
	}

	switch {
	case len(g.playerHand) == 0:
		g.finish(PlayerWin, ReasonPlayerEmptyHand)
	case len(g.aiHand) == 0:
		g.finish(AIWin, ReasonAIEmptyHand)
	case g.deck.IsEmpty() && !tiles.CanMatch(g.playerHand) && !tiles.CanMatch(g.aiHand):
		g.breakTie()
	}
	return g.outcome, g.IsOver()
}

func (g *Game) breakTie() {
	switch g.Config.TieBreak {
	case config.TieBreakSuddenDeath:
		g.runSuddenDeath()
	default:
		g.compareMatches()
	}
}

// compareMatches settles a stalled game by cumulative match count.
func (g *Game) compareMatches() {
	switch {
	case g.playerMatches > g.aiMatches:
		g.finish(PlayerWin, ReasonMatchCount)
	case g.aiMatches > g.playerMatches:
		g.finish(AIWin, ReasonMatchCount)
	default:
		g.finish(Draw, ReasonMatchCount)
	}
}

// runSuddenDeath removes one random tile from each hand per round; the higher
// tile wins. Equal tiles go another round. When hands run out, the side that
// emptied its hand wins, and emptying both together is a draw.
func (g *Game) runSuddenDeath() {
	g.log.Debugf("Sudden death: player %v vs AI %v.", g.playerHand, g.aiHand)
	g.EventManager.Publish(events.SuddenDeathStartedEvent{GameID: g.id})

	for round := 1; ; round++ {
		switch {
		case len(g.playerHand) == 0 && len(g.aiHand) == 0:
			g.finish(Draw, ReasonSuddenDeath)
			return
		case len(g.playerHand) == 0:
			g.finish(PlayerWin, ReasonSuddenDeath)
			return
		case len(g.aiHand) == 0:
			g.finish(AIWin, ReasonSuddenDeath)
			return
		}

		pt, _ := g.playerHand.RemoveAt(g.rand.Intn(len(g.playerHand)))
		at, _ := g.aiHand.RemoveAt(g.rand.Intn(len(g.aiHand)))
		g.discarded += 2
		g.suddenDeath = append(g.suddenDeath, SuddenDeathRound{PlayerTile: pt, AITile: at})
		g.log.Debugf("Sudden death round %d: player %d vs AI %d.", round, pt, at)
		g.EventManager.Publish(events.SuddenDeathRoundEvent{GameID: g.id, Round: round, PlayerTile: pt, AITile: at})

		if pt > at {
			g.finish(PlayerWin, ReasonSuddenDeath)
			return
		}
		if at > pt {
			g.finish(AIWin, ReasonSuddenDeath)
			return
		}
	}
}

// finish moves the game into a terminal state and announces it exactly once.
func (g *Game) finish(o Outcome, r Reason) {
	if g.IsOver() {
		return
	}
	g.outcome = o
	g.reason = r
	g.selection = nil
	g.log.Infof("Game over: %s (%s). Matches %d-%d.", o, r, g.playerMatches, g.aiMatches)
	g.EventManager.Publish(events.GameOverEvent{
		GameID:        g.id,
		Outcome:       o.String(),
		Reason:        string(r),
		PlayerMatches: g.playerMatches,
		AIMatches:     g.aiMatches,
		AIHand:        g.AIHand(),
	})
}
