package engine

import (
	"errors"
	"sync"
	"testing"
)

func TestSessionSerializesConcurrentIntents(t *testing.T) {
	state, err := Compose(raceConfig(), 2, testRand())
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	session := NewSession(state)
	defer session.Abort()

	// Both players hammer the queue concurrently. The session applies one
	// intent at a time, so exactly one intent per turn can succeed and the
	// rest are rejected as out of turn - never interleaved, never panicking.
	const perPlayer = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for player := 1; player <= 2; player++ {
		wg.Add(1)
		go func(player int) {
			defer wg.Done()
			for i := 0; i < perPlayer; i++ {
				if err := session.Submit(Move{PlayerID: player, Spaces: 1}); err == nil {
					mu.Lock()
					accepted++
					mu.Unlock()
				} else if !errors.Is(err, ErrOutOfTurn) {
					t.Errorf("unexpected submit error: %v", err)
				}
			}
		}(player)
	}
	wg.Wait()

	if accepted == 0 {
		t.Fatal("expected at least one accepted intent")
	}

	// Every accepted move advanced somebody by exactly one space on the
	// 24-position loop, so the positions must account for the accepted
	// count up to whole laps.
	p1, p2 := state.Roster.Get(1), state.Roster.Get(2)
	size := state.Board.Size()
	total := p1.Position + p2.Position
	if laps := (accepted - total) % size; laps != 0 {
		t.Errorf("positions inconsistent with accepted count: accepted=%d p1=%d p2=%d",
			accepted, p1.Position, p2.Position)
	}
}

func TestSessionAlternatesTurns(t *testing.T) {
	state, err := Compose(raceConfig(), 2, testRand())
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	session := NewSession(state)
	defer session.Abort()

	for i := 0; i < 4; i++ {
		player := i%2 + 1
		if err := session.Submit(Move{PlayerID: player, Spaces: 2}); err != nil {
			t.Fatalf("submit for player %d failed: %v", player, err)
		}
	}
	if got := state.Roster.Get(1).Position; got != 4 {
		t.Errorf("player 1 should have moved twice, position = %d", got)
	}
	if got := state.Roster.Get(2).Position; got != 4 {
		t.Errorf("player 2 should have moved twice, position = %d", got)
	}
}

func TestSessionAbort(t *testing.T) {
	state, err := Compose(raceConfig(), 2, testRand())
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	session := NewSession(state)

	session.Abort()
	session.Abort() // idempotent

	select {
	case <-session.Done():
	default:
		t.Fatal("Done must be closed after Abort")
	}

	if err := session.Submit(Move{PlayerID: 1, Spaces: 1}); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed after abort, got %v", err)
	}
}
