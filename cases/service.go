package cases

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/jrsteele09/appeals-client/api"
	"github.com/jrsteele09/appeals-client/internal/errors"
)

const (
	DefaultListLimit   = 50
	DefaultRecentLimit = 10
)

// ListOptions filters and pages a case listing. Zero values use the server defaults
// except Limit, which defaults to DefaultListLimit.
type ListOptions struct {
	Limit  int
	Offset int
	Page   int
	Status string
}

func (o ListOptions) query() url.Values {
	limit := o.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(max(o.Offset, 0)))
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	return q
}

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client.WithErrorMessage(api.DefaultErrorMessage)}
}

func (s *Service) List(ctx context.Context, opts ListOptions) (*CaseList, error) {
	var list CaseList
	if err := s.client.Get(ctx, "/cases", opts.query(), &list); err != nil {
		return nil, errors.Wrapf(err, "list cases")
	}
	return &list, nil
}

// Get returns a case with its documents, parties and contents
func (s *Service) Get(ctx context.Context, id string) (*Case, error) {
	var c Case
	if err := s.client.Get(ctx, "/cases/"+url.PathEscape(id), nil, &c); err != nil {
		return nil, errors.Wrapf(err, "get case %s", id)
	}
	return &c, nil
}

// GetByNumber looks a case up by its tribunal number, e.g. "DSM.211/2024"
func (s *Service) GetByNumber(ctx context.Context, caseNumber string) (*Case, error) {
	var c Case
	if err := s.client.Get(ctx, "/cases/number/"+url.PathEscape(caseNumber), nil, &c); err != nil {
		return nil, errors.Wrapf(err, "get case number %s", caseNumber)
	}
	return &c, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := s.client.Get(ctx, "/cases/stats", nil, &stats); err != nil {
		return nil, errors.Wrapf(err, "get case stats")
	}
	return &stats, nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]Case, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var recent []Case
	if err := s.client.Get(ctx, "/cases/recent", url.Values{"limit": {strconv.Itoa(limit)}}, &recent); err != nil {
		return nil, errors.Wrapf(err, "get recent cases")
	}
	return recent, nil
}

// Chairpersons returns the distinct chairpersons across all cases
func (s *Service) Chairpersons(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.client.Get(ctx, "/cases/chairpersons", nil, &names); err != nil {
		return nil, errors.Wrapf(err, "get chairpersons")
	}
	return names, nil
}

func (s *Service) Documents(ctx context.Context, caseID string) (*DocumentList, error) {
	var docs DocumentList
	if err := s.client.Get(ctx, fmt.Sprintf("/cases/%s/documents", url.PathEscape(caseID)), nil, &docs); err != nil {
		return nil, errors.Wrapf(err, "get documents for case %s", caseID)
	}
	if docs.CaseID == "" {
		docs.CaseID = caseID
	}
	return &docs, nil
}

// DocumentStreamURL is the address a viewer loads a document from. The URL carries no
// credentials; the viewer must send the bearer header itself.
func (s *Service) DocumentStreamURL(documentID string, download bool) string {
	var q url.Values
	if download {
		q = url.Values{"download": {"true"}}
	}
	return s.client.URL(documentStreamPath(documentID), q)
}

// DocumentContent fetches a document body for inline rendering
func (s *Service) DocumentContent(ctx context.Context, documentID string) (*DocumentContent, error) {
	data, contentType, err := s.client.GetBytes(ctx, documentStreamPath(documentID), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "get document %s", documentID)
	}
	return &DocumentContent{Data: data, ContentType: contentType}, nil
}

// Download streams the attachment form of a document to w and returns the bytes written
func (s *Service) Download(ctx context.Context, documentID string, w io.Writer) (int64, error) {
	n, _, err := s.client.Stream(ctx, documentStreamPath(documentID), url.Values{"download": {"true"}}, w)
	if err != nil {
		return n, errors.Wrapf(err, "download document %s", documentID)
	}
	return n, nil
}

func documentStreamPath(documentID string) string {
	return fmt.Sprintf("/cases/documents/%s/stream", url.PathEscape(documentID))
}
