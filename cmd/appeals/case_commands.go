package main

import (
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/jrsteele09/appeals-client/cases"
	"github.com/jrsteele09/appeals-client/format"
)

func (a *application) registerCases(parser *flags.Parser) {
	casesCmd, err := parser.AddCommand("cases", "Browse appeal cases", "", &struct{}{})
	mustAdd(casesCmd, err)
	mustAdd(casesCmd.AddCommand("list", "List cases", "", &caseListCommand{app: a}))
	mustAdd(casesCmd.AddCommand("get", "Show one case by id or case number", "", &caseGetCommand{app: a}))
	mustAdd(casesCmd.AddCommand("stats", "Show case statistics", "", &caseStatsCommand{app: a}))
	mustAdd(casesCmd.AddCommand("recent", "Show recently filed cases", "", &caseRecentCommand{app: a}))
	mustAdd(casesCmd.AddCommand("chairpersons", "List chairpersons", "", &chairpersonsCommand{app: a}))
	mustAdd(casesCmd.AddCommand("documents", "List the documents of a case", "", &documentsCommand{app: a}))
	mustAdd(casesCmd.AddCommand("download", "Download a document", "", &downloadCommand{app: a}))
}

type caseListCommand struct {
	Limit  int    `short:"l" long:"limit" description:"page size"`
	Page   int    `short:"p" long:"page" description:"page number, starting at 1"`
	Status string `short:"s" long:"status" description:"filter by status"`

	app *application
}

func (c *caseListCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	list, err := client.Cases.List(c.app.ctx, cases.ListOptions{Limit: c.Limit, Page: c.Page, Status: c.Status})
	if err != nil {
		return err
	}
	return c.app.print(list)
}

// caseView is a case with amounts and dates rendered for reading
type caseView struct {
	cases.Case `yaml:",inline"`
	Disputed   string `json:"disputed" yaml:"disputed"`
	Recovered  string `json:"recovered" yaml:"recovered"`
	Filed      string `json:"filed" yaml:"filed"`
	Decided    string `json:"decided" yaml:"decided"`
	Label      string `json:"caseTypeLabel" yaml:"caseTypeLabel"`
}

func newCaseView(c *cases.Case) caseView {
	return caseView{
		Case:      *c,
		Disputed:  format.Currency(float64(c.TaxAmountDisputed)),
		Recovered: format.Currency(float64(c.TaxAmountRecovered)),
		Filed:     format.Date(c.FilingDate, format.DateMedium),
		Decided:   format.Date(c.DecisionDate, format.DateMedium),
		Label:     cases.CaseTypeLabel(c.CaseType),
	}
}

type caseGetCommand struct {
	ByNumber bool `short:"n" long:"number" description:"look the case up by case number"`
	Args     struct {
		ID string `positional-arg-name:"id" required:"true"`
	} `positional-args:"true"`

	app *application
}

func (c *caseGetCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	var found *cases.Case
	if c.ByNumber {
		found, err = client.Cases.GetByNumber(c.app.ctx, c.Args.ID)
	} else {
		found, err = client.Cases.Get(c.app.ctx, c.Args.ID)
	}
	if err != nil {
		return err
	}
	return c.app.print(newCaseView(found))
}

type caseStatsCommand struct {
	app *application
}

func (c *caseStatsCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	stats, err := client.Cases.Stats(c.app.ctx)
	if err != nil {
		return err
	}
	return c.app.print(stats)
}

type caseRecentCommand struct {
	Limit int `short:"l" long:"limit" description:"number of cases"`

	app *application
}

func (c *caseRecentCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	recent, err := client.Cases.Recent(c.app.ctx, c.Limit)
	if err != nil {
		return err
	}
	return c.app.print(recent)
}

type chairpersonsCommand struct {
	app *application
}

func (c *chairpersonsCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	names, err := client.Cases.Chairpersons(c.app.ctx)
	if err != nil {
		return err
	}
	return c.app.print(names)
}

type documentsCommand struct {
	Args struct {
		CaseID string `positional-arg-name:"case-id" required:"true"`
	} `positional-args:"true"`

	app *application
}

func (c *documentsCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	docs, err := client.Cases.Documents(c.app.ctx, c.Args.CaseID)
	if err != nil {
		return err
	}
	return c.app.print(docs)
}

type downloadCommand struct {
	Dir  string `short:"d" long:"dir" default:"." description:"directory to write into"`
	Name string `long:"name" description:"file name, defaults to <document-id>.pdf"`
	Args struct {
		DocumentID string `positional-arg-name:"document-id" required:"true"`
	} `positional-args:"true"`

	app *application
}

func (c *downloadCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	name := c.Name
	if name == "" {
		name = c.Args.DocumentID + ".pdf"
	}
	path := filepath.Join(c.Dir, filepath.Base(name))
	if err := c.app.fs.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}
	f, err := c.app.fs.Create(path)
	if err != nil {
		return err
	}
	written, err := client.Cases.Download(c.app.ctx, c.Args.DocumentID, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = c.app.fs.Remove(path)
		return err
	}
	c.app.printf("%s (%d bytes)\n", path, written)
	return nil
}
