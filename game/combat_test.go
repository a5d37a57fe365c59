package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"tabletop/rules"
)

func newTestCombat(t *testing.T, separate bool, players int) (*Combat, *Roster, *recorder) {
	t.Helper()
	bus := NewBus()
	rec := &recorder{}
	bus.Subscribe(rec.record)
	roster := NewRoster(players)
	cfg := rules.Default().Combat
	cfg.Enabled = true
	c := NewCombat(cfg, separate, roster, rand.New(rand.NewSource(1)), bus)
	for _, id := range roster.IDs() {
		c.InitPlayer(id, 100)
	}
	return c, roster, rec
}

func damageEvents(rec *recorder) []DamageDealt {
	var out []DamageDealt
	for _, e := range rec.events {
		if d, ok := e.(DamageDealt); ok {
			out = append(out, d)
		}
	}
	return out
}

func TestResolveLandingInterval(t *testing.T) {
	c, _, rec := newTestCombat(t, true, 2)

	require.Nil(t, c.ResolveLanding(1, 7), "off-interval positions trigger nothing")
	require.Nil(t, c.ResolveLanding(1, 0), "the start position never triggers combat")
	require.Empty(t, damageEvents(rec))

	require.NotNil(t, c.ResolveLanding(1, 25), "non-zero interval multiples trigger combat")
	require.Len(t, damageEvents(rec), 1, "one landing applies damage exactly once")
}

func TestResolveLandingEnvironmentDamage(t *testing.T) {
	// 10x10 separate boards: landings are PvE encounters against the
	// environment, with damage drawn from the encounter range.
	c, _, rec := newTestCombat(t, true, 2)

	res := c.ResolveLanding(1, 25)
	require.NotNil(t, res)
	require.Equal(t, 1, res.Target, "the landing player takes the encounter damage")
	require.Equal(t, 0, res.Source, "environment damage has no player source")

	events := damageEvents(rec)
	require.Len(t, events, 1)
	require.Equal(t, EncounterDamage, events[0].Kind)
	cfg := rules.Default().Combat
	require.GreaterOrEqual(t, events[0].Amount, cfg.Encounter.Min)
	require.LessOrEqual(t, events[0].Amount, cfg.Encounter.Max)
}

func TestResolveLandingSkirmishTargetsNearest(t *testing.T) {
	c, roster, rec := newTestCombat(t, false, 3)
	roster.Get(1).Position = 10
	roster.Get(2).Position = 13
	roster.Get(3).Position = 30

	res := c.ResolveLanding(1, 10)
	require.NotNil(t, res)
	require.Equal(t, 2, res.Target, "skirmish hits the nearest other active player")
	require.Equal(t, SkirmishDamage, damageEvents(rec)[0].Kind)
}

func TestResolveLandingSkirmishTieBreaksLowestID(t *testing.T) {
	c, roster, _ := newTestCombat(t, false, 3)
	roster.Get(1).Position = 10
	roster.Get(2).Position = 7
	roster.Get(3).Position = 13

	res := c.ResolveLanding(1, 10)
	require.NotNil(t, res)
	require.Equal(t, 2, res.Target, "equidistant targets resolve to the lowest player id")
}

func TestResolveLandingSkipsInactiveOpponents(t *testing.T) {
	c, roster, _ := newTestCombat(t, false, 3)
	roster.Get(1).Position = 10
	roster.Get(2).Position = 11
	roster.Get(3).Position = 20
	roster.Deactivate(2)

	res := c.ResolveLanding(1, 10)
	require.NotNil(t, res)
	require.Equal(t, 3, res.Target, "inactive players are never combat targets")
}

func TestAliveFollowsHealth(t *testing.T) {
	c, _, _ := newTestCombat(t, true, 2)

	for i := 0; i < 20; i++ {
		c.ResolveLanding(1, 25)
		require.Equal(t, c.Health(1) > 0, c.Alive(1),
			"alive must equal health > 0 after every damage application")
		require.GreaterOrEqual(t, c.Health(1), 0, "health never goes below zero")
	}
	require.False(t, c.Alive(1), "20 encounters at min 10 damage exceed 100 health")
}

func TestEliminationAndWin(t *testing.T) {
	c, roster, rec := newTestCombat(t, false, 2)
	roster.Get(2).Position = 3

	require.False(t, c.HasPlayerWon(1), "no winner while both players stand")

	var eliminated bool
	for i := 0; i < 50 && !eliminated; i++ {
		res, err := c.Attack(1, 2)
		require.NoError(t, err)
		eliminated = res.Eliminated
	}
	require.True(t, eliminated, "repeated attacks must eventually eliminate")
	require.False(t, roster.Get(2).Active, "elimination deactivates the roster entry")
	require.Contains(t, rec.events, PlayerEliminated{Player: 2})

	require.True(t, c.HasPlayerWon(1), "exactly one active player remains and it is player 1")
	require.False(t, c.HasPlayerWon(2))
}

func TestAttackRejectsBadTargets(t *testing.T) {
	c, roster, _ := newTestCombat(t, false, 2)

	_, err := c.Attack(1, 1)
	require.ErrorIs(t, err, ErrInvalidTarget, "self attack")

	_, err = c.Attack(1, 9)
	require.ErrorIs(t, err, ErrInvalidTarget, "unknown target")

	roster.Deactivate(2)
	_, err = c.Attack(1, 2)
	require.ErrorIs(t, err, ErrInvalidTarget, "inactive target")
}
