package api

import (
	"context"
	"net/url"

	"github.com/crisis-matcher/dispatch/internal/model"
)

// ResourceService wraps the resource directory endpoints.
type ResourceService interface {
	List(ctx context.Context) ([]model.Resource, error)
	Get(ctx context.Context, id string) (*model.Resource, error)
}

type resourceService struct {
	client *Client
}

// NewResourceService creates the resource facade over the given transport.
func NewResourceService(c *Client) ResourceService {
	return &resourceService{client: c}
}

func (s *resourceService) List(ctx context.Context) ([]model.Resource, error) {
	var resources []model.Resource
	if err := s.client.Get(ctx, "/resources", nil, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

func (s *resourceService) Get(
	ctx context.Context,
	id string,
) (*model.Resource, error) {
	var resource model.Resource
	err := s.client.Get(ctx, "/resources/"+url.PathEscape(id), nil, &resource)
	if err != nil {
		return nil, err
	}
	return &resource, nil
}
