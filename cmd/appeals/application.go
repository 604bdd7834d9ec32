package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jessevdk/go-flags"
	appeals "github.com/jrsteele09/appeals-client"
	"github.com/jrsteele09/appeals-client/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type application struct {
	ConfigFile string `short:"c" long:"config" description:"YAML file with client options"`
	Output     string `short:"o" long:"output" choice:"yaml" choice:"json" default:"yaml" description:"output format"`
	NoMockData bool   `long:"no-mock-data" description:"report errors instead of sample dashboard figures"`

	appeals.Options `group:"API"`

	ctx    context.Context
	cfg    config.Config
	fs     afero.Fs
	out    io.Writer
	client *appeals.Client
}

func (a *application) register(parser *flags.Parser) {
	mustAdd(parser.AddCommand("version", "Show the application banner", "", &versionCommand{app: a}))
	mustAdd(parser.AddCommand("login", "Log in and store the session", "", &loginCommand{app: a}))
	mustAdd(parser.AddCommand("logout", "End the session", "", &logoutCommand{app: a}))
	mustAdd(parser.AddCommand("whoami", "Show the logged in user", "", &whoamiCommand{app: a}))
	mustAdd(parser.AddCommand("refresh", "Renew the session tokens", "", &refreshCommand{app: a}))
	a.registerCases(parser)
	mustAdd(parser.AddCommand("analytics", "Show an analytics report", "", &analyticsCommand{app: a}))
	mustAdd(parser.AddCommand("dashboard", "Show the dashboard summary", "", &dashboardCommand{app: a}))
	mustAdd(parser.AddCommand("search", "Search cases", "", &searchCommand{app: a}))
	a.registerOCR(parser)
	mustAdd(parser.AddCommand("sync", "Import an appeal from the registry", "", &syncCommand{app: a}))
}

func mustAdd(_ *flags.Command, err error) {
	if err != nil {
		panic(err)
	}
}

// Client builds the API client on first use, after flags have been applied
func (a *application) Client() (*appeals.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	options := a.Options
	if a.NoMockData {
		options.UseMockData = false
	}
	client, err := appeals.New(options, appeals.WithFs(a.fs), appeals.WithAuthRequired(a.authRequired))
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

func (a *application) authRequired(_ context.Context, cause error) {
	log.Warn().Err(cause).Str("loginUrl", a.Options.LoginURL).Msg("session expired, run `appeals login`")
}

func (a *application) print(v any) error {
	switch a.Output {
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
}

func (a *application) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
