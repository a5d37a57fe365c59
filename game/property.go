package game

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/maps"

	"tabletop/rules"
)

var (
	ErrTradingDisabled = errors.New("trading is disabled")
	ErrNoRecord        = errors.New("no property at position")
	ErrNotOwner        = errors.New("seller does not own property")
)

// NoOwner marks an unowned record.
const NoOwner = 0

// Record is one purchasable position on the board.
type Record struct {
	Position int
	Name     string
	Price    int
	Rent     int
	Owner    int
}

// Registry owns every property record and the ownership state machine
// (unowned -> owned, owned -> owned via trade, owned -> unowned on
// bankruptcy or elimination). It references the ledger and roster one way;
// neither references back.
type Registry struct {
	cfg     rules.PropertyRules
	records map[int]*Record
	owned   map[int]map[int]struct{} // player id -> set of positions
	ledger  *Ledger
	roster  *Roster
	bus     *Bus
}

func NewRegistry(cfg rules.PropertyRules, ledger *Ledger, roster *Roster, bus *Bus) *Registry {
	return &Registry{
		cfg:     cfg,
		records: make(map[int]*Record),
		owned:   make(map[int]map[int]struct{}),
		ledger:  ledger,
		roster:  roster,
		bus:     bus,
	}
}

// Place registers a record during composition. Positions must be unique.
func (reg *Registry) Place(rec Record) {
	if _, taken := reg.records[rec.Position]; taken {
		panic(fmt.Sprintf("duplicate property at position %d", rec.Position))
	}
	rec.Owner = NoOwner
	reg.records[rec.Position] = &rec
}

// Record returns a copy of the record at a position.
func (reg *Registry) Record(pos int) (Record, bool) {
	rec, ok := reg.records[pos]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Positions lists every property position in board order.
func (reg *Registry) Positions() []int {
	positions := maps.Keys(reg.records)
	sort.Ints(positions)
	return positions
}

// OwnedBy lists the positions a player owns, in board order.
func (reg *Registry) OwnedBy(player int) []int {
	positions := maps.Keys(reg.owned[player])
	sort.Ints(positions)
	return positions
}

// LandOn resolves a player stopping on a position. No record means no
// effect. An unowned record is auto-purchased if and only if the player can
// cover the full price - there is no partial-funding path. A record owned by
// another active player charges rent; a failed rent transfer bankrupts the
// payer and releases everything they own in the same transition.
func (reg *Registry) LandOn(player, pos int) error {
	rec, ok := reg.records[pos]
	if !ok {
		return nil
	}

	switch {
	case rec.Owner == NoOwner:
		if !reg.cfg.Purchasable {
			return nil
		}
		if reg.ledger.Balance(player) < rec.Price {
			// Can't afford the full price: the purchase is declined whole.
			return nil
		}
		return reg.buy(player, rec)

	case rec.Owner == player:
		return nil

	default:
		owner := reg.roster.Get(rec.Owner)
		if owner == nil || !owner.Active {
			// Invariant breach: records of inactive players are released on
			// the transition that deactivated them.
			panic(fmt.Sprintf("property at %d owned by inactive player %d", pos, rec.Owner))
		}
		if !reg.cfg.RentCollectible {
			return nil
		}
		if err := reg.ledger.Transfer(player, rec.Owner, rec.Rent); err != nil {
			if errors.Is(err, ErrInsufficientFunds) && reg.cfg.Bankruptcy {
				reg.bankrupt(player)
				return nil
			}
			return nil
		}
		reg.bus.Publish(RentPaid{From: player, To: rec.Owner, Position: pos, Amount: rec.Rent})
		return nil
	}
}

// Purchase is an explicit buy of the record at a position. Unlike LandOn it
// surfaces failures so an intent can be rejected with a reason.
func (reg *Registry) Purchase(player, pos int) error {
	if !reg.cfg.Purchasable {
		return fmt.Errorf("purchase at %d: %w", pos, ErrTradingDisabled)
	}
	rec, ok := reg.records[pos]
	if !ok {
		return fmt.Errorf("purchase at %d: %w", pos, ErrNoRecord)
	}
	if rec.Owner != NoOwner {
		return fmt.Errorf("purchase at %d: already owned by player %d", pos, rec.Owner)
	}
	return reg.buy(player, rec)
}

func (reg *Registry) buy(player int, rec *Record) error {
	// Money moves first; ownership only changes once the debit held.
	if err := reg.ledger.Debit(player, rec.Price); err != nil {
		return fmt.Errorf("purchase at %d: %w", rec.Position, err)
	}
	reg.setOwner(rec, player)
	reg.bus.Publish(PropertyPurchased{Player: player, Position: rec.Position, Price: rec.Price})
	return nil
}

// Trade sells a record from one player to another at an agreed price. The
// buyer pays the seller; ownership and money change together or not at all.
func (reg *Registry) Trade(seller, buyer, pos, price int) error {
	if !reg.cfg.Tradable {
		return fmt.Errorf("trade at %d: %w", pos, ErrTradingDisabled)
	}
	rec, ok := reg.records[pos]
	if !ok {
		return fmt.Errorf("trade at %d: %w", pos, ErrNoRecord)
	}
	if rec.Owner != seller {
		return fmt.Errorf("trade at %d: player %d: %w", pos, seller, ErrNotOwner)
	}
	b := reg.roster.Get(buyer)
	if b == nil || !b.Active {
		return fmt.Errorf("trade at %d: buyer %d is not in the match", pos, buyer)
	}
	if err := reg.ledger.Transfer(buyer, seller, price); err != nil {
		return fmt.Errorf("trade at %d: %w", pos, err)
	}
	reg.setOwner(rec, buyer)
	reg.bus.Publish(PropertyTraded{From: seller, To: buyer, Position: pos, Price: price})
	return nil
}

// Release returns every record a player owns to the unowned state. Called on
// any transition that deactivates the player (bankruptcy, elimination) so
// owner state never points at an inactive player.
func (reg *Registry) Release(player int) {
	for pos := range reg.owned[player] {
		reg.records[pos].Owner = NoOwner
	}
	delete(reg.owned, player)
}

func (reg *Registry) bankrupt(player int) {
	reg.roster.Deactivate(player)
	reg.Release(player)
	reg.bus.Publish(PlayerBankrupt{Player: player})
}

func (reg *Registry) setOwner(rec *Record, player int) {
	if rec.Owner != NoOwner {
		delete(reg.owned[rec.Owner], rec.Position)
	}
	rec.Owner = player
	if reg.owned[player] == nil {
		reg.owned[player] = make(map[int]struct{})
	}
	reg.owned[player][rec.Position] = struct{}{}
}
