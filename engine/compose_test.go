package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"tabletop/game"
	"tabletop/rules"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func raceConfig() rules.Config {
	cfg := rules.Default()
	cfg.Currency.Enabled = false
	cfg.Property = rules.PropertyRules{}
	cfg.Board.TilesPerSide = 6
	return cfg
}

func gridCombatConfig() rules.Config {
	cfg := rules.Default()
	cfg.Currency.Enabled = false
	cfg.Property = rules.PropertyRules{}
	cfg.Board.SeparateBoards = true
	cfg.Combat.Enabled = true
	cfg.Combat.ShipPlacement = true
	return cfg
}

func TestComposeBuildsExactlyTheImpliedModules(t *testing.T) {
	t.Run("trading", func(t *testing.T) {
		state, err := Compose(rules.Default(), 4, testRand())
		require.NoError(t, err)
		require.NotNil(t, state.Ledger, "currency is enabled")
		require.NotNil(t, state.Properties, "property is purchasable")
		require.Nil(t, state.Combat, "combat flag is off, so no combat module may exist")
		require.NotNil(t, state.Movement)
		require.Equal(t, rules.Trading, state.Class.Archetype)
	})

	t.Run("race", func(t *testing.T) {
		state, err := Compose(raceConfig(), 4, testRand())
		require.NoError(t, err)
		require.Nil(t, state.Ledger)
		require.Nil(t, state.Properties)
		require.Nil(t, state.Combat)
		require.NotNil(t, state.Movement)
		require.Equal(t, rules.Race, state.Class.Archetype)
	})

	t.Run("grid combat", func(t *testing.T) {
		state, err := Compose(gridCombatConfig(), 2, testRand())
		require.NoError(t, err)
		require.Nil(t, state.Ledger)
		require.Nil(t, state.Properties)
		require.NotNil(t, state.Combat)
		require.Equal(t, rules.GridCombat, state.Class.Archetype)
	})
}

func TestComposeRejectsInvalidConfiguration(t *testing.T) {
	cfg := rules.Default()
	cfg.Currency.Enabled = false // property without currency

	state, err := Compose(cfg, 4, testRand())
	require.Nil(t, state, "a failed composition must not expose partial state")

	var confErr *ConfigError
	require.ErrorAs(t, err, &confErr)
	require.Contains(t, confErr.Conflicts, "property.purchasable requires currency.enabled",
		"the error must name the conflicting fields")
}

func TestComposeClampsPlayerCount(t *testing.T) {
	state, err := Compose(rules.Default(), 50, testRand())
	require.NoError(t, err)
	require.Equal(t, 6, state.Roster.Len(), "requested count clamps to players.max")

	state, err = Compose(rules.Default(), 1, testRand())
	require.NoError(t, err)
	require.Equal(t, 2, state.Roster.Len(), "requested count clamps to players.min")
}

func TestComposeSeedsPlayers(t *testing.T) {
	cfg := rules.Default()
	cfg.Combat.Enabled = true // hybrid: currency + property + combat

	state, err := Compose(cfg, 3, testRand())
	require.NoError(t, err)

	for _, id := range state.Roster.IDs() {
		p := state.Roster.Get(id)
		require.True(t, p.Active)
		require.Equal(t, 0, p.Position, "everyone starts on the start position")
		require.Equal(t, cfg.Currency.StartingBalance, state.Ledger.Balance(id))
		require.True(t, state.Combat.Alive(id))
	}
}

func TestComposePlacesPropertiesDeterministically(t *testing.T) {
	first, err := Compose(rules.Default(), 4, testRand())
	require.NoError(t, err)
	second, err := Compose(rules.Default(), 4, testRand())
	require.NoError(t, err)

	positions := first.Properties.Positions()
	require.Len(t, positions, 10, "a 40-space board holds max(2, 40/4) records")
	require.Equal(t, positions, second.Properties.Positions(),
		"the same document always yields the same layout")

	seen := map[int]bool{}
	for _, pos := range positions {
		require.NotZero(t, pos, "the start position never holds a record")
		require.False(t, seen[pos], "positions are unique")
		seen[pos] = true

		rec, ok := first.Properties.Record(pos)
		require.True(t, ok)
		require.Equal(t, game.NoOwner, rec.Owner)
		require.Positive(t, rec.Price)
		require.Positive(t, rec.Rent)
	}
}
