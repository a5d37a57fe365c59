package game

import (
	"math/rand"

	"tabletop/rules"
)

// Roller rolls the configured dice for move intents that don't supply a
// distance.
type Roller struct {
	cfg rules.DiceRules
	rng *rand.Rand
}

// RollResult is one throw of the configured dice.
type RollResult struct {
	Dice  []int
	Total int
	// Doubles reports that every die showed the same face.
	Doubles bool
}

func NewRoller(cfg rules.DiceRules, rng *rand.Rand) *Roller {
	return &Roller{cfg: cfg, rng: rng}
}

// Roll throws the dice. With the duplicate-bonus rule, a throw where every
// die matches counts double.
func (r *Roller) Roll() RollResult {
	res := RollResult{Dice: make([]int, r.cfg.Count), Doubles: r.cfg.Count > 1}
	for i := range res.Dice {
		res.Dice[i] = r.rng.Intn(r.cfg.Sides) + 1
		res.Total += res.Dice[i]
		if i > 0 && res.Dice[i] != res.Dice[0] {
			res.Doubles = false
		}
	}
	if res.Doubles && r.cfg.DuplicateBonus {
		res.Total *= 2
	}
	return res
}
