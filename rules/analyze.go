package rules

import "fmt"

// Archetype is the game shape a rule document composes into.
type Archetype int

const (
	Trading Archetype = iota
	GridCombat
	Race
	Hybrid
)

func (a Archetype) String() string {
	switch a {
	case Trading:
		return "trading"
	case GridCombat:
		return "grid-combat"
	case Race:
		return "race"
	case Hybrid:
		return "hybrid"
	default:
		return fmt.Sprintf("archetype(%d)", int(a))
	}
}

// Classification is the analyzer's verdict on a rule document.
type Classification struct {
	Archetype Archetype
	Valid     bool
	Conflicts []string
}

// Classify decides which archetype a rule document describes and whether its
// enabled feature blocks are internally consistent. It is a pure function:
// the same document always yields the same classification.
//
// Validity fails closed: any contradiction classifies as an invalid Hybrid
// rather than silently picking one of the conflicting shapes.
func Classify(cfg Config) Classification {
	conflicts := consistencyConflicts(cfg)
	if len(conflicts) > 0 {
		return Classification{Archetype: Hybrid, Valid: false, Conflicts: conflicts}
	}

	// Fixed predicate precedence. A document that matches none of the three
	// exact shapes - or mixes feature blocks from more than one - is a
	// hybrid.
	gridCombat := cfg.Board.SeparateBoards && cfg.Combat.ShipPlacement
	trading := cfg.Currency.Enabled && cfg.Property.Purchasable &&
		!cfg.Board.SeparateBoards && !cfg.Combat.Enabled
	race := !cfg.Currency.Enabled && !cfg.Property.Purchasable && !cfg.Combat.Enabled

	switch {
	case gridCombat:
		return Classification{Archetype: GridCombat, Valid: true}
	case trading:
		return Classification{Archetype: Trading, Valid: true}
	case race:
		return Classification{Archetype: Race, Valid: true}
	default:
		return Classification{Archetype: Hybrid, Valid: true}
	}
}

// consistencyConflicts checks every enabled feature block against the blocks
// it depends on. Each conflict names the fields involved so the caller can
// report them without patching the document.
func consistencyConflicts(cfg Config) []string {
	var conflicts []string
	add := func(format string, args ...any) {
		conflicts = append(conflicts, fmt.Sprintf(format, args...))
	}

	if cfg.Property.Purchasable && !cfg.Currency.Enabled {
		add("property.purchasable requires currency.enabled")
	}
	if cfg.Property.Tradable && !cfg.Property.Purchasable {
		add("property.tradable requires property.purchasable")
	}
	if cfg.Property.RentCollectible && !cfg.Property.Purchasable {
		add("property.rent_collectible requires property.purchasable")
	}
	if cfg.Property.Bankruptcy && !cfg.Currency.Enabled {
		add("property.bankruptcy requires currency.enabled")
	}
	if cfg.Combat.Enabled && cfg.Board.TilesPerSide <= 0 {
		add("combat.enabled requires a board (board.tiles_per_side > 0)")
	}
	if cfg.Combat.ShipPlacement && !cfg.Combat.Enabled {
		add("combat.ship_placement requires combat.enabled")
	}
	if cfg.Combat.Enabled && cfg.Combat.Interval <= 0 {
		add("combat.interval must be positive")
	}
	if cfg.Combat.Enabled {
		ranges := []struct {
			name string
			r    DamageRange
		}{
			{"combat.encounter_damage", cfg.Combat.Encounter},
			{"combat.attack_damage", cfg.Combat.Attack},
			{"combat.skirmish_damage", cfg.Combat.Skirmish},
		}
		for _, dr := range ranges {
			if dr.r.Min <= 0 || dr.r.Max < dr.r.Min {
				add("%s is not a valid range (%d..%d)", dr.name, dr.r.Min, dr.r.Max)
			}
		}
	}
	if cfg.Board.TilesPerSide <= 0 {
		add("board.tiles_per_side must be positive")
	}
	if cfg.Players.Min < 2 {
		add("players.min must be at least 2")
	}
	if cfg.Players.Max < cfg.Players.Min {
		add("players.max is below players.min")
	}
	if cfg.Dice.Count < 1 || cfg.Dice.Sides < 2 {
		add("dice must have count >= 1 and sides >= 2")
	}
	if cfg.Resources.Count > 0 && len(cfg.Resources.Names) != cfg.Resources.Count {
		add("resources.names must list exactly resources.count entries")
	}
	if cfg.Resources.Count > 0 && cfg.Resources.PerTypeCap <= 0 {
		add("resources.per_type_cap must be positive when resources are enabled")
	}
	switch cfg.Win.Condition {
	case WinByElimination:
	case WinByBalance:
		if !cfg.Currency.Enabled {
			add("win.condition=balance requires currency.enabled")
		}
		if cfg.Win.Threshold <= 0 {
			add("win.condition=balance requires a positive win.threshold")
		}
	default:
		add("win.condition %q is not a known condition", cfg.Win.Condition)
	}
	if cfg.Visibility.Range < 0 {
		add("visibility.range cannot be negative")
	}
	if cfg.Currency.Enabled && cfg.Currency.StartingBalance < 0 {
		add("currency.starting_balance cannot be negative")
	}

	return conflicts
}
