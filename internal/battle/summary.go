package battle

import "fmt"

// Summary describes a finished battle from one side's perspective.
type Summary struct {
	BattleID        string
	Winner          Winner
	Outcome         Outcome
	Turns           int
	PlayerHP        int
	PlayerHPPercent int
	EnemyHP         int
	EnemyHPPercent  int
	OutcomeLine     string
	XPGain          int // Set on victory
	XPLoss          int // Set on defeat
}

// Summary returns the result for the player side. ok is false while the
// battle is still in progress.
func (b *Battle) Summary() (Summary, bool) {
	return b.SummaryFor(SidePlayer)
}

// SummaryFor returns the result as seen by side. PlayerHP refers to side and
// EnemyHP to its opponent. XP figures are recomputed from the combatants'
// current state, so read the summary before FinalizeRewards to see the
// amounts that will be applied.
func (b *Battle) SummaryFor(side Side) (Summary, bool) {
	if !b.over {
		return Summary{}, false
	}

	self := b.Combatant(side)
	opponent := b.Combatant(side.Opponent())

	s := Summary{
		BattleID:        b.id,
		Winner:          b.winner,
		Outcome:         b.winner.OutcomeFor(side),
		Turns:           b.turnCount,
		PlayerHP:        self.GetHP(),
		PlayerHPPercent: percent(self.GetHP(), self.GetMaxHP()),
		EnemyHP:         opponent.GetHP(),
		EnemyHPPercent:  percent(opponent.GetHP(), opponent.GetMaxHP()),
	}

	switch s.Outcome {
	case OutcomeVictory:
		s.OutcomeLine = fmt.Sprintf("%s defeated %s!", self.GetName(), opponent.GetName())
		s.XPGain = XPGain(b.cfg.XPGainPerBattle, opponent.GetLevel(), self.GetLevel(), self.GetHP(), self.GetMaxHP())
	case OutcomeDefeat:
		s.OutcomeLine = fmt.Sprintf("%s was defeated by %s.", self.GetName(), opponent.GetName())
		s.XPLoss = XPLoss(self.GetXP(), b.cfg.XPLossPercent)
	default:
		s.OutcomeLine = "The battle ended in a draw."
	}
	return s, true
}

func percent(current, maximum int) int {
	if maximum <= 0 {
		return 0
	}
	return current * 100 / maximum
}
