package game

// Event is a domain event published while resolving an intent. Events carry
// player ids and numeric deltas only - never references into match state - so
// subscribers (presentation, broadcast) cannot mutate a live match.
type Event interface {
	event()
}

type PlayerMoved struct {
	Player   int
	From     int
	To       int
	Spaces   int
	Teleport bool
}

// PassedStart fires at most once per move, after the bonus is credited.
type PassedStart struct {
	Player int
	Bonus  int
}

type PropertyPurchased struct {
	Player   int
	Position int
	Price    int
}

type RentPaid struct {
	From     int
	To       int
	Position int
	Amount   int
}

type PropertyTraded struct {
	From     int
	To       int
	Position int
	Price    int
}

type PlayerBankrupt struct {
	Player int
}

type DamageDealt struct {
	// Source is 0 for environment encounters.
	Source int
	Target int
	Amount int
	Health int
	Kind   DamageKind
}

type PlayerEliminated struct {
	Player int
}

type TurnAdvanced struct {
	Player int
	Turn   int
}

type MatchOver struct {
	Winner int
	Reason string
}

func (PlayerMoved) event()       {}
func (PassedStart) event()       {}
func (PropertyPurchased) event() {}
func (RentPaid) event()          {}
func (PropertyTraded) event()    {}
func (PlayerBankrupt) event()    {}
func (DamageDealt) event()       {}
func (PlayerEliminated) event()  {}
func (TurnAdvanced) event()      {}
func (MatchOver) event()         {}

// Bus fans events out to subscribers in publish order. Dispatch is
// synchronous: no module method blocks on I/O, so handlers run inline and
// observe events in exactly the order the engine produced them.
type Bus struct {
	handlers []func(Event)
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(handler func(Event)) {
	b.handlers = append(b.handlers, handler)
}

func (b *Bus) Publish(e Event) {
	for _, h := range b.handlers {
		h(e)
	}
}
