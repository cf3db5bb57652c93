package main

import (
	"os"
	"time"

	"lasvegas/config"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Globals struct {
	Config string `default:"lasvegas.hcl" help:"HCL configuration file (defaults apply when absent)"`
	Debug  bool   `help:"Enable debug logging"`
	Seed   uint64 `default:"0" help:"RNG seed (0 for time based)"`
}

type CLI struct {
	Globals

	Eval  EvalCmd  `cmd:"" help:"Evaluate strategies in seat 0 against a baseline"`
	Train TrainCmd `cmd:"" help:"Train a model by self-play and evaluate it"`
	Play  PlayCmd  `cmd:"" help:"Play and log a single game"`
	Runs  RunsCmd  `cmd:"" help:"List saved evaluation runs or show one run's games"`
}

func (g *Globals) setup() (*config.Config, uint64, error) {
	level := zerolog.InfoLevel
	if g.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, 0, err
	}

	seed := g.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Debug().Msgf("using seed %d", seed)
	return cfg, seed, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("lasvegas"),
		kong.Description("Las Vegas dice game simulator and self-play trainer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
