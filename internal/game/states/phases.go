package states

import "fmt"

// GamePhase represents the current phase of a match
type GamePhase int

const (
	// PhaseSetup - Board construction, faction initialisation
	PhaseSetup GamePhase = iota

	// PhasePlayerTurn - Waiting on the human player
	PhasePlayerTurn

	// PhaseEndTurnProcessing - AI actions, economy, refresh
	PhaseEndTurnProcessing

	// PhaseGameWon - Enemy faction has no buildings left
	PhaseGameWon

	// PhaseGameOver - Player faction has no buildings left
	PhaseGameOver

	// PhaseOutOfTurns - Turn limit reached with both factions standing
	PhaseOutOfTurns
)

var phaseNames = map[GamePhase]string{
	PhaseSetup:             "Setup",
	PhasePlayerTurn:        "PlayerTurn",
	PhaseEndTurnProcessing: "EndTurnProcessing",
	PhaseGameWon:           "GameWon",
	PhaseGameOver:          "GameOver",
	PhaseOutOfTurns:        "OutOfTurns",
}

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", p)
}

// IsTerminal returns true if the match is over in this phase
func (p GamePhase) IsTerminal() bool {
	return p == PhaseGameWon || p == PhaseGameOver || p == PhaseOutOfTurns
}

// CanReceiveActions returns true if player input is processed in this phase
func (p GamePhase) CanReceiveActions() bool {
	return p == PhasePlayerTurn
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseSetup:
		return []GamePhase{PhasePlayerTurn}
	case PhasePlayerTurn:
		return []GamePhase{PhaseEndTurnProcessing, PhaseGameWon, PhaseGameOver}
	case PhaseEndTurnProcessing:
		return []GamePhase{PhasePlayerTurn, PhaseGameWon, PhaseGameOver, PhaseOutOfTurns}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) (GamePhase, error) {
	for p, name := range phaseNames {
		if name == s {
			return p, nil
		}
	}
	return PhaseSetup, fmt.Errorf("unknown phase %q", s)
}
