package battle

// Side identifies one of the two combatant slots in a battle.
type Side int

const (
	// SidePlayer is the human-controlled slot. It always opens the battle.
	SidePlayer Side = iota
	// SideEnemy is the AI-controlled slot, or the second player in multiplayer.
	SideEnemy
)

// String returns a human-readable side name.
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// Winner is the outcome of a battle.
type Winner int

const (
	// WinnerNone means the battle is still ongoing.
	WinnerNone Winner = iota
	WinnerPlayer
	WinnerEnemy
	// WinnerDraw means the turn limit was reached with both sides standing.
	WinnerDraw
)

// String returns a human-readable outcome name.
func (w Winner) String() string {
	switch w {
	case WinnerNone:
		return "none"
	case WinnerPlayer:
		return "player"
	case WinnerEnemy:
		return "enemy"
	case WinnerDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// winnerFor maps the side that landed the final blow to the outcome.
func winnerFor(side Side) Winner {
	if side == SidePlayer {
		return WinnerPlayer
	}
	return WinnerEnemy
}

// Outcome is a winner seen from one side's perspective.
type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeDraw
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "ongoing"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// OutcomeFor returns the winner as seen by side.
func (w Winner) OutcomeFor(side Side) Outcome {
	switch w {
	case WinnerNone:
		return OutcomeOngoing
	case WinnerDraw:
		return OutcomeDraw
	case winnerFor(side):
		return OutcomeVictory
	default:
		return OutcomeDefeat
	}
}
