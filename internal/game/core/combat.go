package core

// DefenseMultiplier converts a node's defense total into retaliation damage.
const DefenseMultiplier = 100

// CombatResult is the outcome of one attack exchange.
type CombatResult struct {
	Attacker          *Unit
	Defender          Deployable
	Location          Coordinate
	DamageDealt       int
	DamageTaken       int
	AttackerDestroyed bool
	DefenderDestroyed bool
	Charge            bool
}

// RollExchange rolls both sides of an attack before anything is applied.
// The attacker deals its own roll. The defender answers with its roll plus
// the defense total of the node it holds, scaled by multiplier.
func RollExchange(attacker *Unit, defender Deployable, defenderNode *Node, d Dice, multiplier int) (dealt, taken int) {
	dealt = attacker.RollDamage(d)
	taken = defender.RollDamage(d)
	if defenderNode != nil {
		taken += defenderNode.CalculateDefenseTotal() * multiplier
	}
	return dealt, taken
}
