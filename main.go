package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tabletop/engine"
	"tabletop/game"
	"tabletop/meta"
	"tabletop/rules"
)

type config struct {
	RulesFile string `env:"RULES_FILE"`
	Players   int    `env:"PLAYERS" envDefault:"4"`
	Seed      int64  `env:"SEED"`
	Debug     bool   `env:"DEBUG"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("parse environment")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	doc := rules.Default()
	if cfg.RulesFile != "" {
		var err error
		doc, err = rules.Load(cfg.RulesFile)
		if err != nil {
			log.Fatal().Err(err).Msg("load rules document")
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	state, err := engine.Compose(doc, cfg.Players, rng)
	if err != nil {
		log.Fatal().Err(err).Msg("compose match")
	}
	state.Events.Subscribe(logEvent)

	log.Info().
		Str("archetype", state.Class.Archetype.String()).
		Int("board_size", state.Board.Size()).
		Int("players", state.Roster.Len()).
		Int64("seed", seed).
		Msg("match composed")

	runMatch(state)
}

// runMatch drives bot players: every turn the current player rolls and
// moves, letting the landing pipeline do the rest.
func runMatch(state *game.MatchState) {
	resolver := engine.NewResolver(state)
	for i := 0; resolver.Phase() != engine.MatchOverPhase && i < meta.MAX_TURNS; i++ {
		if err := resolver.ResolveIntent(engine.Move{PlayerID: resolver.CurrentPlayer()}); err != nil {
			log.Fatal().Err(err).Msg("bot intent rejected")
		}
	}

	if resolver.Phase() == engine.MatchOverPhase {
		log.Info().Int("winner", resolver.Winner()).Int("turns", resolver.Turn()).Msg("match over")
	} else {
		log.Info().Int("turns", resolver.Turn()).Msg("stopped without a winner")
	}
}

func logEvent(e game.Event) {
	switch ev := e.(type) {
	case game.PlayerMoved:
		log.Debug().Int("player", ev.Player).Int("from", ev.From).Int("to", ev.To).Msg("moved")
	case game.PassedStart:
		log.Debug().Int("player", ev.Player).Int("bonus", ev.Bonus).Msg("passed start")
	case game.PropertyPurchased:
		log.Info().Int("player", ev.Player).Int("position", ev.Position).Int("price", ev.Price).Msg("property purchased")
	case game.RentPaid:
		log.Debug().Int("from", ev.From).Int("to", ev.To).Int("amount", ev.Amount).Msg("rent paid")
	case game.PropertyTraded:
		log.Info().Int("from", ev.From).Int("to", ev.To).Int("position", ev.Position).Msg("property traded")
	case game.PlayerBankrupt:
		log.Info().Int("player", ev.Player).Msg("player bankrupt")
	case game.DamageDealt:
		log.Debug().Int("source", ev.Source).Int("target", ev.Target).Int("amount", ev.Amount).Msg("damage dealt")
	case game.PlayerEliminated:
		log.Info().Int("player", ev.Player).Msg("player eliminated")
	case game.MatchOver:
		log.Info().Int("winner", ev.Winner).Str("reason", ev.Reason).Msg("match over event")
	}
}
