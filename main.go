package main

import (
	"net/http"
	"os"
	"time"

	"archon/engine"
	"archon/metrics"
	"archon/relay"
	"archon/searcher"
	"archon/searcher/agent"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	Mode string `env:"ARCHON_MODE" envDefault:"selfplay"`

	// serve
	Addr string `env:"ARCHON_ADDR" envDefault:":8714"`

	// selfplay
	Games      int           `env:"ARCHON_GAMES" envDefault:"1"`
	Goroutines int           `env:"ARCHON_GOROUTINES" envDefault:"8"`
	Episodes   int           `env:"ARCHON_EPISODES" envDefault:"0"`
	Duration   time.Duration `env:"ARCHON_DURATION" envDefault:"500ms"`
	Cutoff     int           `env:"ARCHON_CUTOFF" envDefault:"80"`
	ResultsDir string        `env:"ARCHON_RESULTS_DIR" envDefault:"results"`

	PrettyLogs bool `env:"ARCHON_PRETTY_LOGS" envDefault:"true"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("parse configuration")
	}
	if cfg.PrettyLogs {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	switch cfg.Mode {
	case "serve":
		serve(cfg)
	case "selfplay":
		selfplay(cfg)
	default:
		log.Fatal().Msgf("unknown mode %q (want serve or selfplay)", cfg.Mode)
	}
}

func serve(cfg config) {
	log.Info().Str("addr", cfg.Addr).Msg("relay listening")
	if err := http.ListenAndServe(cfg.Addr, relay.NewServer().Handler()); err != nil {
		log.Fatal().Err(err).Msg("relay server stopped")
	}
}

func selfplay(cfg config) {
	writer, err := metrics.NewWriter(cfg.ResultsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("create results writer")
	}

	agentConfig := metrics.AgentConfig{
		ID:         1,
		Goroutines: cfg.Goroutines,
		Duration:   cfg.Duration,
		Episodes:   cfg.Episodes,
		Cutoff:     cfg.Cutoff,
	}
	if err := writer.WriteAgentConfigs([]metrics.AgentConfig{agentConfig}); err != nil {
		log.Fatal().Err(err).Msg("write agent configs")
	}

	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	for i := 1; i <= cfg.Games; i++ {
		log.Info().Int("game", i).Msg("self-play game starting")
		match := engine.NewMatch(newSearchAgent(cfg), newSearchAgent(cfg))
		winner, gameMetric, moveMetrics := match.Run()
		log.Info().Int("game", i).Str("winner", winner).
			Int("moves", gameMetric.TotalMoves).Msg("self-play game over")

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID: i, Agent1: agentConfig.ID, Agent2: agentConfig.ID, GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: i, MoveMetric: mm})
		}
	}

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		log.Fatal().Err(err).Msg("write game records")
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		log.Fatal().Err(err).Msg("write move records")
	}
	log.Info().Str("dir", writer.Dir()).Msg("results written")
}

func newSearchAgent(cfg config) agent.Agent {
	options := []searcher.Option{searcher.WithMetrics()}
	if cfg.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(cfg.Episodes))
	}
	if cfg.Duration > 0 {
		options = append(options, searcher.WithDuration(cfg.Duration))
	}
	if cfg.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(cfg.Cutoff))
	}
	return agent.NewMCTSAgent(cfg.Goroutines, options...)
}
