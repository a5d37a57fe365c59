package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tabletop/rules"
)

func newVisibilityState(t *testing.T, visRange int) *MatchState {
	t.Helper()
	cfg := rules.Default()
	cfg.Visibility.Range = visRange
	roster := NewRoster(3)
	return &MatchState{
		Config: cfg,
		Board:  NewBoard(cfg),
		Roster: roster,
		Events: NewBus(),
	}
}

func TestVisibilityRange(t *testing.T) {
	ms := newVisibilityState(t, 5)
	ms.Roster.Get(1).Position = 10
	ms.Roster.Get(2).Position = 14
	ms.Roster.Get(3).Position = 20

	require.True(t, ms.CanSee(1, 2), "distance 4 is inside range 5")
	require.False(t, ms.CanSee(1, 3), "distance 10 is outside range 5")
	require.True(t, ms.CanSee(1, 1), "players always see themselves")
	require.Equal(t, []int{2}, ms.VisibleOpponents(1))
}

func TestVisibilityUnlimitedByDefault(t *testing.T) {
	ms := newVisibilityState(t, 0)
	ms.Roster.Get(2).Position = 39

	require.True(t, ms.CanSee(1, 2), "range zero means unlimited visibility")
	require.Equal(t, []int{2, 3}, ms.VisibleOpponents(1))
}

func TestVisibilityUsesLoopDistance(t *testing.T) {
	ms := newVisibilityState(t, 5)
	ms.Roster.Get(1).Position = 38
	ms.Roster.Get(2).Position = 2

	require.True(t, ms.CanSee(1, 2), "loop wrap distance 4 is inside range 5")
}
