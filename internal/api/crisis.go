package api

import (
	"context"
	"net/url"

	"github.com/crisis-matcher/dispatch/internal/model"
)

// CrisisService wraps the crisis-request endpoints. Each method performs
// exactly one REST call and returns the decoded payload unmodified.
type CrisisService interface {
	// Create submits a free-text crisis message for backend processing.
	Create(ctx context.Context, req CreateCrisisRequest) (*CreateCrisisResult, error)

	// List fetches all crisis requests matching the filter.
	List(ctx context.Context, filter CrisisFilter) ([]model.CrisisRequest, error)

	// Get fetches a single crisis request with its matches.
	Get(ctx context.Context, id string) (*CrisisDetail, error)

	// UpdateStatus moves a crisis request to a new lifecycle status.
	UpdateStatus(ctx context.Context, id, status string) (*model.CrisisRequest, error)
}

type crisisService struct {
	client *Client
}

// NewCrisisService creates the crisis facade over the given transport.
func NewCrisisService(c *Client) CrisisService {
	return &crisisService{client: c}
}

func (s *crisisService) Create(
	ctx context.Context,
	req CreateCrisisRequest,
) (*CreateCrisisResult, error) {
	var result CreateCrisisResult
	if err := s.client.Post(ctx, "/crisis", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *crisisService) List(
	ctx context.Context,
	filter CrisisFilter,
) ([]model.CrisisRequest, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.UrgencyLevel != "" {
		query.Set("urgency_level", filter.UrgencyLevel)
	}
	if filter.NeedType != "" {
		query.Set("need_type", filter.NeedType)
	}

	var crises []model.CrisisRequest
	if err := s.client.Get(ctx, "/crisis", query, &crises); err != nil {
		return nil, err
	}
	return crises, nil
}

func (s *crisisService) Get(
	ctx context.Context,
	id string,
) (*CrisisDetail, error) {
	var detail CrisisDetail
	err := s.client.Get(ctx, "/crisis/"+url.PathEscape(id), nil, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *crisisService) UpdateStatus(
	ctx context.Context,
	id, status string,
) (*model.CrisisRequest, error) {
	var updated model.CrisisRequest
	err := s.client.Put(
		ctx,
		"/crisis/"+url.PathEscape(id)+"/status",
		UpdateStatusRequest{Status: status},
		&updated,
	)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
