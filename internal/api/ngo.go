package api

import (
	"context"
	"net/url"

	"github.com/crisis-matcher/dispatch/internal/model"
)

// NGOService wraps the NGO directory endpoints.
type NGOService interface {
	List(ctx context.Context) ([]model.NGO, error)
	Get(ctx context.Context, id string) (*model.NGO, error)
}

type ngoService struct {
	client *Client
}

// NewNGOService creates the NGO facade over the given transport.
func NewNGOService(c *Client) NGOService {
	return &ngoService{client: c}
}

func (s *ngoService) List(ctx context.Context) ([]model.NGO, error) {
	var ngos []model.NGO
	if err := s.client.Get(ctx, "/ngos", nil, &ngos); err != nil {
		return nil, err
	}
	return ngos, nil
}

func (s *ngoService) Get(ctx context.Context, id string) (*model.NGO, error) {
	var ngo model.NGO
	err := s.client.Get(ctx, "/ngos/"+url.PathEscape(id), nil, &ngo)
	if err != nil {
		return nil, err
	}
	return &ngo, nil
}
