package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"tabletop/game"
	"tabletop/meta"
	"tabletop/rules"
)

// ConfigError rejects a contradictory rule document at match creation. The
// document is reported as-is, never silently patched.
type ConfigError struct {
	Conflicts []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid rule configuration: %s", strings.Join(e.Conflicts, "; "))
}

// ConstructionError names the first module dependency the composer could not
// satisfy.
type ConstructionError struct {
	Module   string
	Requires string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%s module requires %s module", e.Module, e.Requires)
}

// Compose builds a fully wired match from a rule document. Modules are
// constructed in fixed dependency order - board, currency, property, combat,
// movement - and only the modules the enabled feature flags imply. The
// requested player count is clamped to the configured bounds. A nil rng is
// replaced with a time-seeded one; tests pass their own for determinism.
//
// Compose assembles everything locally and returns the state only on full
// success, so a failure never leaves a partially wired match observable.
func Compose(cfg rules.Config, numPlayers int, rng *rand.Rand) (*game.MatchState, error) {
	class := rules.Classify(cfg)
	if !class.Valid {
		return nil, &ConfigError{Conflicts: class.Conflicts}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if numPlayers < cfg.Players.Min {
		numPlayers = cfg.Players.Min
	}
	if numPlayers > cfg.Players.Max {
		numPlayers = cfg.Players.Max
	}

	bus := game.NewBus()
	board := game.NewBoard(cfg)
	roster := game.NewRoster(numPlayers)

	var ledger *game.Ledger
	if cfg.Currency.Enabled {
		ledger = game.NewLedger()
		for _, id := range roster.IDs() {
			ledger.InitPlayer(id, cfg.Currency.StartingBalance)
		}
	}

	var registry *game.Registry
	if cfg.Property.Purchasable {
		if ledger == nil {
			return nil, &ConstructionError{Module: "property", Requires: "currency"}
		}
		registry = game.NewRegistry(cfg.Property, ledger, roster, bus)
		placeProperties(registry, board)
	}

	var combat *game.Combat
	if cfg.Combat.Enabled {
		combat = game.NewCombat(cfg.Combat, cfg.Board.SeparateBoards, roster, rng, bus)
		for _, id := range roster.IDs() {
			combat.InitPlayer(id, meta.MAX_HEALTH)
		}
	}

	passBonus := 0
	if cfg.Currency.Enabled {
		passBonus = cfg.Currency.PassBonus
	}
	movement := game.NewMovement(board, roster, ledger, passBonus, bus)

	return &game.MatchState{
		Config:     cfg,
		Class:      class,
		Board:      board,
		Roster:     roster,
		Ledger:     ledger,
		Properties: registry,
		Combat:     combat,
		Movement:   movement,
		Dice:       game.NewRoller(cfg.Dice, rng),
		Events:     bus,
	}, nil
}

// placeProperties spreads max(2, size/4) records over non-zero positions at
// a fixed stride, skipping any position already taken. The layout depends
// only on the board size, so the same document always yields the same board.
func placeProperties(registry *game.Registry, board *game.Board) {
	size := board.Size()
	count := size / 4
	if count < 2 {
		count = 2
	}
	if count > size-1 {
		// Tiny boards can't hold the minimum; position 0 is never used.
		count = size - 1
	}

	stride := size / (count + 1)
	if stride < 1 {
		stride = 1
	}

	pos := stride
	for placed := 0; placed < count; {
		if pos >= size {
			// Wrapped past the end: fall back to the first free position.
			pos = 1
		}
		if _, taken := registry.Record(pos); !taken && pos != 0 {
			price := meta.PROPERTY_BASE_PRICE + pos*meta.PROPERTY_PRICE_STEP
			registry.Place(game.Record{
				Position: pos,
				Name:     fmt.Sprintf("Parcel %d", placed+1),
				Price:    price,
				Rent:     price / meta.PROPERTY_RENT_DIV,
			})
			placed++
			pos += stride
		} else {
			pos++
		}
	}
}
