package engine

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tabletop/game"
)

// ErrSessionClosed rejects intents submitted after the session was aborted.
var ErrSessionClosed = errors.New("session closed")

type submission struct {
	intent Intent
	reply  chan error
}

// Session owns one match end to end. A single goroutine owns the resolver
// and drains a single intent queue, so concurrent submissions from the
// transport layer are applied one at a time, never interleaved. Each match
// is independent: run one Session per logical game session, no cross-match
// locking needed.
type Session struct {
	ID uuid.UUID

	resolver *Resolver
	intents  chan submission
	done     chan struct{}
	stopped  chan struct{}
	closer   sync.Once
	log      zerolog.Logger
}

// NewSession starts the match loop for a composed state.
func NewSession(state *game.MatchState) *Session {
	s := &Session{
		ID:       uuid.New(),
		resolver: NewResolver(state),
		intents:  make(chan submission),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	s.log = log.With().Str("session", s.ID.String()).Logger()
	go s.run()
	return s
}

func (s *Session) run() {
	defer close(s.stopped)
	s.log.Info().
		Str("archetype", s.resolver.State().Class.Archetype.String()).
		Int("players", s.resolver.State().Roster.Len()).
		Msg("session started")
	for {
		select {
		case sub := <-s.intents:
			err := s.resolver.ResolveIntent(sub.intent)
			if err != nil {
				s.log.Debug().Err(err).Int("player", sub.intent.Player()).Msg("intent rejected")
			}
			sub.reply <- err
			if s.resolver.Phase() == MatchOverPhase {
				s.log.Info().Int("winner", s.resolver.Winner()).Msg("match over")
			}
		case <-s.done:
			s.log.Info().Msg("session aborted")
			return
		}
	}
}

// Submit queues an intent and blocks until it is resolved or the session is
// torn down. Resolution is all-or-nothing, so an abort between intents never
// leaves state half-updated.
func (s *Session) Submit(intent Intent) error {
	sub := submission{intent: intent, reply: make(chan error, 1)}
	select {
	case s.intents <- sub:
		return <-sub.reply
	case <-s.done:
		return ErrSessionClosed
	}
}

// Abort tears the session down. It is safe to call more than once and safe
// to call concurrently with Submit.
func (s *Session) Abort() {
	s.closer.Do(func() { close(s.done) })
	<-s.stopped
}

// Done is closed once the session goroutine has exited.
func (s *Session) Done() <-chan struct{} {
	return s.stopped
}
