package game

import (
	"errors"
	"fmt"
	"math/rand"

	"tabletop/rules"
)

var ErrInvalidTarget = errors.New("invalid combat target")

// DamageKind names the three distinct damage policies.
type DamageKind int

const (
	// EncounterDamage is PvE damage from landing on a trigger position of a
	// separate per-player board.
	EncounterDamage DamageKind = iota
	// AttackDamage comes from an explicit attack intent.
	AttackDamage
	// SkirmishDamage is PvP damage triggered by landing on a shared board.
	SkirmishDamage
)

// CombatRecord tracks one player's health. Alive is always derived from
// health, never stored.
type CombatRecord struct {
	Health    int
	MaxHealth int
}

// CombatResult reports what a damage application did, so the resolver can
// run the cross-module elimination transition.
type CombatResult struct {
	Source     int
	Target     int
	Damage     int
	Eliminated bool
}

// Combat resolves damage and elimination. On separate per-player boards
// landings trigger environment encounters; on a shared board they trigger a
// skirmish against the nearest other active player.
type Combat struct {
	cfg      rules.CombatRules
	separate bool
	records  map[int]*CombatRecord
	roster   *Roster
	rng      *rand.Rand
	bus      *Bus
}

func NewCombat(cfg rules.CombatRules, separateBoards bool, roster *Roster, rng *rand.Rand, bus *Bus) *Combat {
	return &Combat{
		cfg:      cfg,
		separate: separateBoards,
		records:  make(map[int]*CombatRecord),
		roster:   roster,
		rng:      rng,
		bus:      bus,
	}
}

// InitPlayer seeds a player at full health.
func (c *Combat) InitPlayer(player, maxHealth int) {
	c.records[player] = &CombatRecord{Health: maxHealth, MaxHealth: maxHealth}
}

func (c *Combat) Health(player int) int {
	if rec, ok := c.records[player]; ok {
		return rec.Health
	}
	return 0
}

// Alive is recomputed from health on every call.
func (c *Combat) Alive(player int) bool {
	return c.Health(player) > 0
}

// ResolveLanding applies at most one damage roll for a landing. Combat
// triggers only on non-zero multiples of the configured interval. The nil
// result means the landing had no combat effect.
func (c *Combat) ResolveLanding(player, pos int) *CombatResult {
	if pos == 0 || pos%c.cfg.Interval != 0 {
		return nil
	}
	if c.separate {
		// Environment encounter on the player's own board.
		res := c.apply(0, player, c.roll(c.cfg.Encounter), EncounterDamage)
		return &res
	}
	target := c.nearestOpponent(player)
	if target == 0 {
		return nil
	}
	res := c.apply(player, target, c.roll(c.cfg.Skirmish), SkirmishDamage)
	return &res
}

// Attack resolves an explicit attack intent against another active player.
func (c *Combat) Attack(attacker, target int) (CombatResult, error) {
	if target == attacker {
		return CombatResult{}, fmt.Errorf("attack: self target: %w", ErrInvalidTarget)
	}
	t := c.roster.Get(target)
	if t == nil || !t.Active {
		return CombatResult{}, fmt.Errorf("attack: player %d: %w", target, ErrInvalidTarget)
	}
	return c.apply(attacker, target, c.roll(c.cfg.Attack), AttackDamage), nil
}

// HasPlayerWon reports whether a player is the last one standing. It is
// recomputed from the roster on every call.
func (c *Combat) HasPlayerWon(player int) bool {
	p := c.roster.Get(player)
	return p != nil && p.Active && c.roster.ActiveCount() == 1
}

// nearestOpponent picks the closest other active player by absolute position
// distance, breaking ties toward the lowest player id.
func (c *Combat) nearestOpponent(player int) int {
	self := c.roster.Get(player)
	best, bestDist := 0, 0
	for _, id := range c.roster.Active() {
		if id == player {
			continue
		}
		d := self.Position - c.roster.Get(id).Position
		if d < 0 {
			d = -d
		}
		// Active() is in ascending id order, so strict < keeps the lowest id
		// on ties.
		if best == 0 || d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}

func (c *Combat) apply(source, target, damage int, kind DamageKind) CombatResult {
	rec, ok := c.records[target]
	if !ok {
		panic(fmt.Sprintf("combat: no record for player %d", target))
	}
	wasAlive := rec.Health > 0
	rec.Health -= damage
	if rec.Health < 0 {
		rec.Health = 0
	}
	c.bus.Publish(DamageDealt{Source: source, Target: target, Amount: damage, Health: rec.Health, Kind: kind})

	res := CombatResult{Source: source, Target: target, Damage: damage}
	if wasAlive && rec.Health == 0 {
		c.roster.Deactivate(target)
		c.bus.Publish(PlayerEliminated{Player: target})
		res.Eliminated = true
	}
	return res
}

func (c *Combat) roll(r rules.DamageRange) int {
	return r.Min + c.rng.Intn(r.Max-r.Min+1)
}
