package main

import (
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/jrsteele09/appeals-client/dashboard"
	"github.com/jrsteele09/appeals-client/format"
	"github.com/jrsteele09/appeals-client/search"
)

type analyticsCommand struct {
	Args struct {
		Report string `positional-arg-name:"report" choice:"dashboard" choice:"chairpersons" choice:"tax-types" choice:"trends" choice:"outcomes" choice:"appellants" choice:"citations"`
	} `positional-args:"true"`

	app *application
}

func (c *analyticsCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	ctx, svc := c.app.ctx, client.Analytics
	var report any
	switch c.Args.Report {
	case "chairpersons":
		report, err = svc.Chairpersons(ctx)
	case "tax-types":
		report, err = svc.TaxTypes(ctx)
	case "trends":
		report, err = svc.Trends(ctx)
	case "outcomes":
		report, err = svc.Outcomes(ctx)
	case "appellants":
		report, err = svc.TopAppellants(ctx)
	case "citations":
		report, err = svc.Citations(ctx)
	default:
		report, err = svc.Dashboard(ctx)
	}
	if err != nil {
		return err
	}
	return c.app.print(report)
}

type dashboardSummary struct {
	Stats           *dashboard.Stats         `json:"stats" yaml:"stats"`
	Disputed        string                   `json:"disputed" yaml:"disputed"`
	Recovered       string                   `json:"recovered" yaml:"recovered"`
	RecoveryRate    string                   `json:"recoveryRate" yaml:"recoveryRate"`
	ResolutionDays  int                      `json:"resolutionDays" yaml:"resolutionDays"`
	ByChairperson   []dashboard.JudgeSummary `json:"byChairperson" yaml:"byChairperson"`
	RecentDecisions []dashboard.Decision     `json:"recentDecisions" yaml:"recentDecisions"`
}

type dashboardCommand struct {
	app *application
}

func (c *dashboardCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	ctx, svc := c.app.ctx, client.Dashboard
	stats, err := svc.Stats(ctx)
	if err != nil {
		return err
	}
	byJudge, err := svc.CasesByJudge(ctx)
	if err != nil {
		return err
	}
	decisions, err := svc.RecentDecisions(ctx)
	if err != nil {
		return err
	}
	return c.app.print(summarize(stats, byJudge, decisions, svc.AverageResolutionDays(ctx)))
}

func summarize(stats *dashboard.Stats, byJudge []dashboard.JudgeSummary, decisions []dashboard.Decision, resolutionDays int) dashboardSummary {
	disputed, recovered := float64(stats.TotalTaxDisputed), float64(stats.TotalTaxRecovered)
	rate := 0.0
	if disputed > 0 {
		rate = recovered / disputed * 100
	}
	return dashboardSummary{
		Stats:           stats,
		Disputed:        format.LargeCurrency(disputed),
		Recovered:       format.LargeCurrency(recovered),
		RecoveryRate:    format.Percentage(rate, 1),
		ResolutionDays:  resolutionDays,
		ByChairperson:   byJudge,
		RecentDecisions: decisions,
	}
}

type searchCommand struct {
	Mode     string   `short:"m" long:"mode" choice:"hybrid" choice:"full-text" choice:"semantic" default:"hybrid" description:"ranking to use"`
	Limit    int      `short:"l" long:"limit" description:"maximum results"`
	FullText *float64 `long:"ft-weight" description:"full text weight for hybrid search, 0 disables it"`
	Semantic *float64 `long:"sem-weight" description:"semantic weight for hybrid search, 0 disables it"`
	Args     struct {
		Query []string `positional-arg-name:"query" required:"1"`
	} `positional-args:"true"`

	app *application
}

func (c *searchCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	query := strings.Join(c.Args.Query, " ")
	var results *search.Results
	switch c.Mode {
	case "full-text":
		results, err = client.Search.FullText(c.app.ctx, query, c.Limit)
	case "semantic":
		results, err = client.Search.Semantic(c.app.ctx, query, c.Limit)
	default:
		results, err = client.Search.Hybrid(c.app.ctx, query, search.HybridOptions{Limit: c.Limit, FullTextWeight: c.FullText, SemanticWeight: c.Semantic})
	}
	if err != nil {
		return err
	}
	return c.app.print(results)
}

type syncCommand struct {
	Args struct {
		AppealID int `positional-arg-name:"appeal-id" required:"true"`
	} `positional-args:"true"`

	app *application
}

func (c *syncCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	result, err := client.Sync.SyncAppeal(c.app.ctx, c.Args.AppealID)
	if err != nil {
		return err
	}
	return c.app.print(result)
}

func (a *application) registerOCR(parser *flags.Parser) {
	ocrCmd, err := parser.AddCommand("ocr", "Manage document text extraction", "", &struct{}{})
	mustAdd(ocrCmd, err)
	mustAdd(ocrCmd.AddCommand("pending", "Queue every unprocessed document", "", &ocrPendingCommand{app: a}))
	mustAdd(ocrCmd.AddCommand("process", "Queue one document", "", &ocrProcessCommand{app: a}))
	mustAdd(ocrCmd.AddCommand("status", "Show the extraction status of a document", "", &ocrStatusCommand{app: a}))
	mustAdd(ocrCmd.AddCommand("queue", "Show queue and document statistics", "", &ocrQueueCommand{app: a}))
	mustAdd(ocrCmd.AddCommand("job", "Show or wait for a job", "", &ocrJobCommand{app: a}))
}

type ocrPendingCommand struct {
	app *application
}

func (c *ocrPendingCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	result, err := client.OCR.ProcessPending(c.app.ctx)
	if err != nil {
		return err
	}
	return c.app.print(result)
}

type ocrProcessCommand struct {
	Force bool `short:"f" long:"force" description:"reprocess a document that already has text"`
	Wait  bool `short:"w" long:"wait" description:"wait for the job to finish"`
	Args  struct {
		DocumentID string `positional-arg-name:"document-id" required:"true"`
	} `positional-args:"true"`

	app *application
}

func (c *ocrProcessCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	queue := client.OCR.Process
	if c.Force {
		queue = client.OCR.Reprocess
	}
	queued, err := queue(c.app.ctx, c.Args.DocumentID)
	if err != nil {
		return err
	}
	if !c.Wait {
		return c.app.print(queued)
	}
	job, err := client.OCR.WaitForJob(c.app.ctx, queued.JobID)
	if job != nil {
		if printErr := c.app.print(job); printErr != nil {
			return printErr
		}
	}
	return err
}

type ocrStatusCommand struct {
	Args struct {
		DocumentID string `positional-arg-name:"document-id" required:"true"`
	} `positional-args:"true"`

	app *application
}

func (c *ocrStatusCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	status, err := client.OCR.DocumentStatus(c.app.ctx, c.Args.DocumentID)
	if err != nil {
		return err
	}
	return c.app.print(status)
}

type ocrQueueCommand struct {
	Jobs bool `short:"j" long:"jobs" description:"include recent jobs"`

	app *application
}

func (c *ocrQueueCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	queue, err := client.OCR.QueueStats(c.app.ctx)
	if err != nil {
		return err
	}
	docs, err := client.OCR.DocumentStats(c.app.ctx)
	if err != nil {
		return err
	}
	report := map[string]any{"queue": queue, "documents": docs}
	if c.Jobs {
		jobs, err := client.OCR.RecentJobs(c.app.ctx)
		if err != nil {
			return err
		}
		report["jobs"] = jobs
	}
	return c.app.print(report)
}

type ocrJobCommand struct {
	Wait bool `short:"w" long:"wait" description:"poll until the job finishes"`
	Args struct {
		JobID string `positional-arg-name:"job-id" required:"true"`
	} `positional-args:"true"`

	app *application
}

func (c *ocrJobCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	if !c.Wait {
		job, err := client.OCR.JobStatus(c.app.ctx, c.Args.JobID)
		if err != nil {
			return err
		}
		return c.app.print(job)
	}
	job, err := client.OCR.WaitForJob(c.app.ctx, c.Args.JobID)
	if job != nil {
		if printErr := c.app.print(job); printErr != nil {
			return printErr
		}
	}
	return err
}
