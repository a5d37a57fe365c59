package game

// PlayerState is one roster entry. Balances, owned properties and health live
// in side tables owned by the ledger, registry and combat modules, all keyed
// by the same stable id.
type PlayerState struct {
	ID       int
	Position int
	Active   bool
}

// Roster holds every player in a match, ids 1..n. The roster is created once
// by the composer and entries are never removed, only deactivated.
type Roster struct {
	players []*PlayerState
}

func NewRoster(numPlayers int) *Roster {
	r := &Roster{players: make([]*PlayerState, 0, numPlayers)}
	for id := 1; id <= numPlayers; id++ {
		r.players = append(r.players, &PlayerState{ID: id, Active: true})
	}
	return r
}

// Get returns the entry for a player id, or nil for an unknown id.
func (r *Roster) Get(id int) *PlayerState {
	if id < 1 || id > len(r.players) {
		return nil
	}
	return r.players[id-1]
}

// IDs lists every player id in seating order, active or not.
func (r *Roster) IDs() []int {
	ids := make([]int, len(r.players))
	for i, p := range r.players {
		ids[i] = p.ID
	}
	return ids
}

// Active lists the ids of players still in the match, in seating order.
func (r *Roster) Active() []int {
	var ids []int
	for _, p := range r.players {
		if p.Active {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func (r *Roster) ActiveCount() int {
	count := 0
	for _, p := range r.players {
		if p.Active {
			count++
		}
	}
	return count
}

// Deactivate removes a player from play. Releasing their holdings is the
// caller's responsibility and must happen in the same resolution step.
func (r *Roster) Deactivate(id int) {
	if p := r.Get(id); p != nil {
		p.Active = false
	}
}

func (r *Roster) Len() int {
	return len(r.players)
}
