package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/caarlos0/env/v11"
	"github.com/google/gousb"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rvsnack/rvterm/console"
	"github.com/rvsnack/rvterm/inputbus"
	"github.com/rvsnack/rvterm/rvapi"
	"github.com/rvsnack/rvterm/scanmonitor"
	"github.com/rvsnack/rvterm/termreader"
	"github.com/rvsnack/rvterm/userloop"
)

type envConfig struct {
	rvapi.Config
	Development bool `env:"DEVELOPMENT" envDefault:"false"`
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			evt := log.Error()

			switch v := r.(type) {
			case string:
				evt.Str("error", v)
			case error:
				evt.Err(v)
			default:
				evt.Str("error", fmt.Sprintf("%v", v))
			}

			evt.Msg("panicked")
		}
	}()

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    true,
		TimeFormat: "2006/01/02 15:04:05", // mimic golang log output
	})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var opts Options
	_, err := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash).Parse()
	if opts.ShowVersion {
		showVersion()
		os.Exit(0)
	}

	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse flags")
	}

	if opts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("cannot parse environment")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := inputbus.New()

	restore, err := console.EnableRaw(os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot enable raw mode")
	}
	defer restore()

	reader := termreader.New(os.Stdin, bus)
	go reader.Run()
	termreader.WatchResize(bus)

	// No reader functionality exists without the hotplug thread, so a
	// monitor that cannot start or stay running takes the process down.
	monitor, err := scanmonitor.New(ctx, gousb.ID(opts.Vendor), gousb.ID(opts.Product), bus)
	if err != nil {
		restore()
		log.Fatal().Err(err).Msg("cannot start scanner monitoring")
	}
	go func() {
		err := monitor.Run()
		if ctx.Err() != nil {
			return // normal shutdown
		}
		restore()
		log.Fatal().Err(err).Msg("scanner monitor stopped")
	}()

	interruptChan := make(chan os.Signal, 1)
	signal.Notify(interruptChan, os.Interrupt)
	go func() {
		<-interruptChan
		log.Info().Msg("Received Interrupt, shutting down")
		restore()
		os.Exit(130)
	}()

	loopCfg := userloop.DefaultConfig()
	loopCfg.Development = cfg.Development
	loopCfg.Exit = func() {
		restore()
		os.Exit(0)
	}

	controller := userloop.New(loopCfg, bus, console.NewScreen(os.Stdout), rvapi.NewClient(cfg.Config))
	if err := controller.Run(); err != nil {
		log.Error().Err(err).Msg("session loop failed")
	}
}

var Version string = "<unknown>"
var BuildDate string = "<unknown>"
var BuildNumber string = "<unknown>"
var BuildCommit string = "<unknown>"

func showVersion() {
	format := "%-13s%s\n"
	fmt.Printf(format, "Version:", Version)
	fmt.Printf(format, "BuildDate:", BuildDate)
	fmt.Printf(format, "BuildNumber:", BuildNumber)
	fmt.Printf(format, "BuildCommit:", BuildCommit)
	fmt.Printf(format, "Compiler:", runtime.Compiler)
	fmt.Printf(format, "Arcitecture:", runtime.GOARCH)
	fmt.Printf(format, "OS:", runtime.GOOS)
	fmt.Printf(format, "Go version:", runtime.Version())
}
