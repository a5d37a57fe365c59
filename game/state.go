package game

import (
	"tabletop/rules"
)

// MatchState owns every module and roster entry for the life of one match.
// Modules a rule document disables stay nil - the composer never builds a
// module whose enabling flag is false. Cross-module links run one way only
// (property -> currency, movement -> board); the resolver coordinates
// anything that spans modules.
type MatchState struct {
	Config rules.Config
	Class  rules.Classification

	Board      *Board
	Roster     *Roster
	Ledger     *Ledger   // nil unless currency is enabled
	Properties *Registry // nil unless property is purchasable
	Combat     *Combat   // nil unless combat is enabled
	Movement   *Movement
	Dice       *Roller
	Events     *Bus
}

// CanSee reports whether a viewer can see (and therefore target) another
// player's token, per the configured visibility range. Range zero means
// unlimited. Players always see themselves.
func (ms *MatchState) CanSee(viewer, target int) bool {
	if viewer == target {
		return true
	}
	v, t := ms.Roster.Get(viewer), ms.Roster.Get(target)
	if v == nil || t == nil {
		return false
	}
	if ms.Config.Visibility.Range == 0 {
		return true
	}
	return ms.Board.Distance(v.Position, t.Position) <= ms.Config.Visibility.Range
}

// VisibleOpponents lists the active opponents within the viewer's visibility
// range, in id order.
func (ms *MatchState) VisibleOpponents(viewer int) []int {
	var visible []int
	for _, id := range ms.Roster.Active() {
		if id != viewer && ms.CanSee(viewer, id) {
			visible = append(visible, id)
		}
	}
	return visible
}
