package game

import "fmt"

// Movement updates player positions against the board topology. It holds the
// ledger only for the pass-start bonus; when currency is disabled the ledger
// is nil and crossing the start position pays nothing.
type Movement struct {
	board     *Board
	roster    *Roster
	ledger    *Ledger
	passBonus int
	bus       *Bus
}

// MoveResult reports where a move landed.
type MoveResult struct {
	From        int
	To          int
	PassedStart bool
}

func NewMovement(board *Board, roster *Roster, ledger *Ledger, passBonus int, bus *Bus) *Movement {
	return &Movement{
		board:     board,
		roster:    roster,
		ledger:    ledger,
		passBonus: passBonus,
		bus:       bus,
	}
}

// Move advances a player by spaces. Grid positions clamp at the edge; loop
// positions wrap. Crossing the start position fires PassedStart at most once
// per call, even when a single call covers more than one full loop, and the
// bonus is credited before the event publishes.
func (m *Movement) Move(player, spaces int) (MoveResult, error) {
	p := m.roster.Get(player)
	if p == nil {
		return MoveResult{}, fmt.Errorf("move: unknown player %d", player)
	}
	if !p.Active {
		return MoveResult{}, fmt.Errorf("move: player %d is out of the match", player)
	}
	if spaces < 1 {
		return MoveResult{}, fmt.Errorf("move: spaces must be positive, got %d", spaces)
	}

	from := p.Position
	var to int
	passed := false
	switch m.board.Shape() {
	case Grid:
		to = from + spaces
		if to > m.board.Size()-1 {
			to = m.board.Size() - 1
		}
	case Loop:
		to = (from + spaces) % m.board.Size()
		// Landing at or before the old position means the start was crossed.
		passed = to <= from
	}

	p.Position = to
	m.bus.Publish(PlayerMoved{Player: player, From: from, To: to, Spaces: spaces})

	if passed {
		bonus := 0
		if m.ledger != nil && m.passBonus > 0 {
			bonus = m.passBonus
			m.ledger.Credit(player, bonus)
		}
		m.bus.Publish(PassedStart{Player: player, Bonus: bonus})
	}

	return MoveResult{From: from, To: to, PassedStart: passed}, nil
}

// Teleport places a player directly on target, bypassing wrap arithmetic.
// It never fires PassedStart.
func (m *Movement) Teleport(player, target int) error {
	p := m.roster.Get(player)
	if p == nil {
		return fmt.Errorf("teleport: unknown player %d", player)
	}
	if !m.board.Contains(target) {
		return fmt.Errorf("teleport: position %d is off the board", target)
	}
	from := p.Position
	p.Position = target
	m.bus.Publish(PlayerMoved{Player: player, From: from, To: target, Teleport: true})
	return nil
}

// Distance between two positions, using the board's topology.
func (m *Movement) Distance(a, b int) int {
	return m.board.Distance(a, b)
}
