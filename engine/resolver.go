package engine

import (
	"errors"
	"fmt"

	"tabletop/game"
	"tabletop/rules"
	"tabletop/utils"
)

// Phase is the resolver's per-turn state machine.
type Phase int

const (
	AwaitingIntent Phase = iota
	Resolving
	MatchOverPhase
)

var (
	ErrOutOfTurn       = errors.New("intent out of turn")
	ErrMatchOver       = errors.New("match is over")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrInactivePlayer  = errors.New("player is out of the match")
	ErrFeatureDisabled = errors.New("feature disabled by rules")
)

// Intent is one player-submitted action awaiting resolution. The caller
// (network authority) has already authenticated the submitting party; the
// resolver enforces only turn order and rule legality.
type Intent interface {
	Player() int
}

// Move advances the player. Spaces zero means roll the configured dice.
type Move struct {
	PlayerID int
	Spaces   int
}

// Purchase buys the property under the player's current position.
type Purchase struct {
	PlayerID int
}

// Trade sells a property the player owns to another player at a price.
type Trade struct {
	PlayerID int
	To       int
	Position int
	Price    int
}

// Attack strikes another player directly.
type Attack struct {
	PlayerID int
	Target   int
}

func (m Move) Player() int     { return m.PlayerID }
func (p Purchase) Player() int { return p.PlayerID }
func (t Trade) Player() int    { return t.PlayerID }
func (a Attack) Player() int   { return a.PlayerID }

// Resolver routes intents to the match modules in a fixed precedence order.
// It is the only writer of match state; callers must not submit a second
// intent before the first returns (Session serializes this).
type Resolver struct {
	state   *game.MatchState
	phase   Phase
	current int
	turn    int
	winner  int
}

func NewResolver(state *game.MatchState) *Resolver {
	r := &Resolver{state: state, phase: AwaitingIntent, turn: 1}
	if active := state.Roster.Active(); len(active) > 0 {
		r.current = active[0]
	}
	return r
}

func (r *Resolver) Phase() Phase { return r.phase }

func (r *Resolver) CurrentPlayer() int { return r.current }

func (r *Resolver) Turn() int { return r.turn }

// Winner is 0 until the match ends.
func (r *Resolver) Winner() int { return r.winner }

func (r *Resolver) State() *game.MatchState { return r.state }

// ResolveIntent applies one intent to completion. Intent errors are
// recoverable: the intent is rejected with a typed reason, the match state
// is unchanged and the match continues.
func (r *Resolver) ResolveIntent(intent Intent) error {
	if r.phase == MatchOverPhase {
		return ErrMatchOver
	}
	p := r.state.Roster.Get(intent.Player())
	if p == nil {
		return fmt.Errorf("player %d: %w", intent.Player(), ErrUnknownPlayer)
	}
	if !p.Active {
		return fmt.Errorf("player %d: %w", intent.Player(), ErrInactivePlayer)
	}
	if intent.Player() != r.current {
		return fmt.Errorf("player %d (turn belongs to %d): %w", intent.Player(), r.current, ErrOutOfTurn)
	}

	r.phase = Resolving
	var err error
	switch i := intent.(type) {
	case Move:
		err = r.resolveMove(i)
	case Purchase:
		err = r.resolvePurchase(i)
	case Trade:
		err = r.resolveTrade(i)
	case Attack:
		err = r.resolveAttack(i)
	default:
		err = fmt.Errorf("unknown intent %T", intent)
	}
	if r.phase != MatchOverPhase {
		r.phase = AwaitingIntent
	}
	return err
}

// resolveMove runs the landing pipeline in its fixed order: movement update,
// pass-bonus credit, property landing, combat landing, win check, turn
// advance. The order is load-bearing: a pass bonus earned on the way to a
// combat space is credited before any damage can eliminate the mover.
func (r *Resolver) resolveMove(i Move) error {
	spaces := i.Spaces
	if spaces == 0 {
		spaces = r.state.Dice.Roll().Total
	}

	// Movement credits the pass bonus itself, before publishing PassedStart.
	res, err := r.state.Movement.Move(i.PlayerID, spaces)
	if err != nil {
		return err
	}

	if r.state.Properties != nil {
		if err := r.state.Properties.LandOn(i.PlayerID, res.To); err != nil {
			return err
		}
	}

	// Rent may have bankrupted the mover; the landing stops there.
	if r.state.Combat != nil && r.state.Roster.Get(i.PlayerID).Active {
		if cr := r.state.Combat.ResolveLanding(i.PlayerID, res.To); cr != nil && cr.Eliminated {
			r.releaseHoldings(cr.Target)
		}
	}

	r.checkWin()
	r.advanceTurn()
	return nil
}

func (r *Resolver) resolvePurchase(i Purchase) error {
	if r.state.Properties == nil {
		return fmt.Errorf("purchase: %w", ErrFeatureDisabled)
	}
	pos := r.state.Roster.Get(i.PlayerID).Position
	if err := r.state.Properties.Purchase(i.PlayerID, pos); err != nil {
		return err
	}
	r.checkWin()
	return nil
}

func (r *Resolver) resolveTrade(i Trade) error {
	if r.state.Properties == nil {
		return fmt.Errorf("trade: %w", ErrFeatureDisabled)
	}
	if err := r.state.Properties.Trade(i.PlayerID, i.To, i.Position, i.Price); err != nil {
		return err
	}
	r.checkWin()
	return nil
}

func (r *Resolver) resolveAttack(i Attack) error {
	if r.state.Combat == nil {
		return fmt.Errorf("attack: %w", ErrFeatureDisabled)
	}
	if !r.state.CanSee(i.PlayerID, i.Target) {
		return fmt.Errorf("attack: player %d is out of visibility range: %w", i.Target, game.ErrInvalidTarget)
	}
	cr, err := r.state.Combat.Attack(i.PlayerID, i.Target)
	if err != nil {
		return err
	}
	if cr.Eliminated {
		r.releaseHoldings(cr.Target)
	}
	r.checkWin()
	r.advanceTurn()
	return nil
}

// releaseHoldings keeps ownership consistent with the roster: an eliminated
// player's records go back to unowned in the same resolution step.
func (r *Resolver) releaseHoldings(player int) {
	if r.state.Properties != nil {
		r.state.Properties.Release(player)
	}
}

// checkWin recomputes the configured win condition from scratch. It runs
// after every resolution step, never from a cached result.
func (r *Resolver) checkWin() {
	if r.phase == MatchOverPhase {
		return
	}
	switch r.state.Config.Win.Condition {
	case rules.WinByBalance:
		for _, id := range r.state.Roster.Active() {
			if r.state.Ledger.Balance(id) >= r.state.Config.Win.Threshold {
				r.endMatch(id, fmt.Sprintf("balance reached %d", r.state.Config.Win.Threshold))
				return
			}
		}
		// Eliminations still end a balance-threshold match when one player
		// remains.
		fallthrough
	default:
		if active := r.state.Roster.Active(); len(active) == 1 {
			r.endMatch(active[0], "last player standing")
		}
	}
}

func (r *Resolver) endMatch(winner int, reason string) {
	r.phase = MatchOverPhase
	r.winner = winner
	r.state.Events.Publish(game.MatchOver{Winner: winner, Reason: reason})
}

// advanceTurn hands the turn to the next active player in seating order.
func (r *Resolver) advanceTurn() {
	if r.phase == MatchOverPhase {
		return
	}
	ids := r.state.Roster.IDs()
	idx := utils.FindIndex(ids, r.current)
	for step := 1; step <= len(ids); step++ {
		next := ids[(idx+step)%len(ids)]
		if r.state.Roster.Get(next).Active {
			r.current = next
			break
		}
	}
	r.turn++
	r.state.Events.Publish(game.TurnAdvanced{Player: r.current, Turn: r.turn})
}
