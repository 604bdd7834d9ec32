package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/jessevdk/go-flags"
	appeals "github.com/jrsteele09/appeals-client"
	"github.com/jrsteele09/appeals-client/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c.GetLogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &application{ctx: ctx, cfg: c, fs: afero.NewOsFs(), out: os.Stdout}
	app.Options = appeals.DefaultOptions(c)
	if err := app.preloadConfigFile(args); err != nil {
		return err
	}

	parser := flags.NewParser(app, flags.Default)
	app.register(parser)
	_, err := parser.ParseArgs(args)
	if app.client != nil {
		if closeErr := app.client.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("close client")
		}
	}
	return err
}

// preloadConfigFile applies --config before flags are parsed so flags still win over the file
func (a *application) preloadConfigFile(args []string) error {
	var pre struct {
		ConfigFile string `short:"c" long:"config"`
	}
	parser := flags.NewParser(&pre, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil
	}
	if pre.ConfigFile == "" {
		return nil
	}
	options, err := appeals.LoadOptions(a.fs, pre.ConfigFile, a.Options)
	if err != nil {
		return err
	}
	a.Options = options
	return nil
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
