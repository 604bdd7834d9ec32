// Package appealsync pulls individual appeals from the upstream appeals registry into the case store.
package appealsync

import (
	"context"
	"fmt"

	"github.com/jrsteele09/appeals-client/api"
	"github.com/jrsteele09/appeals-client/internal/errors"
)

type Result struct {
	Success         bool   `json:"success" yaml:"success"`
	Message         string `json:"message,omitempty" yaml:"message,omitempty"`
	CaseID          string `json:"caseId,omitempty" yaml:"caseId,omitempty"`
	CaseNumber      string `json:"caseNumber,omitempty" yaml:"caseNumber,omitempty"`
	Created         bool   `json:"created,omitempty" yaml:"created,omitempty"`
	DocumentsSynced int    `json:"documentsSynced,omitempty" yaml:"documentsSynced,omitempty"`
}

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// SyncAppeal imports or refreshes one appeal by its registry id
func (s *Service) SyncAppeal(ctx context.Context, appealID int) (*Result, error) {
	if appealID <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "appeal id must be positive, got %d", appealID)
	}
	var out Result
	if err := s.client.Post(ctx, fmt.Sprintf("/sync/appeal/%d", appealID), nil, &out); err != nil {
		return nil, errors.Wrapf(err, "sync appeal %d", appealID)
	}
	return &out, nil
}
