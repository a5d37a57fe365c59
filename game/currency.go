package game

import (
	"errors"
	"fmt"
)

// ErrInsufficientFunds rejects a debit that would push a balance negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Ledger tracks per-player balances and guarantees atomic transfers. It
// references no other module: currency is a leaf every other module may
// depend on, never the reverse.
type Ledger struct {
	balances map[int]int
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[int]int)}
}

// InitPlayer seeds a player's starting balance.
func (l *Ledger) InitPlayer(player, balance int) {
	l.balances[player] = balance
}

func (l *Ledger) Balance(player int) int {
	return l.balances[player]
}

// Credit adds to a balance. It cannot fail; a negative amount is a
// programming defect, not a runtime condition.
func (l *Ledger) Credit(player, amount int) {
	if amount < 0 {
		panic(fmt.Sprintf("credit of negative amount %d for player %d", amount, player))
	}
	l.balances[player] += amount
}

// Debit removes from a balance, failing with ErrInsufficientFunds and
// leaving the balance untouched when it would go negative.
func (l *Ledger) Debit(player, amount int) error {
	if amount < 0 {
		panic(fmt.Sprintf("debit of negative amount %d for player %d", amount, player))
	}
	if l.balances[player] < amount {
		return fmt.Errorf("debit %d from player %d: %w", amount, player, ErrInsufficientFunds)
	}
	l.balances[player] -= amount
	return nil
}

// Transfer moves amount from one player to another. The debit is checked
// first; if it fails no credit happens and both balances are unchanged.
func (l *Ledger) Transfer(from, to, amount int) error {
	if err := l.Debit(from, amount); err != nil {
		return fmt.Errorf("transfer to player %d: %w", to, err)
	}
	l.Credit(to, amount)
	return nil
}

// Bankrupt reports whether a player's balance has run out. Bankruptcy is
// derived from the balance, never stored, so the two cannot diverge.
func (l *Ledger) Bankrupt(player int) bool {
	return l.balances[player] <= 0
}

// Total sums all balances; transfers conserve it.
func (l *Ledger) Total() int {
	total := 0
	for _, b := range l.balances {
		total += b
	}
	return total
}
