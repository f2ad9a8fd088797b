package api

import "context"

// AuthService wraps the authentication endpoints. It returns the decoded
// payload; persisting the session is the caller's concern.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginData, error)
	Register(ctx context.Context, req RegisterRequest) (*LoginData, error)
}

type authService struct {
	client *Client
}

// NewAuthService creates the auth facade over the given transport.
func NewAuthService(c *Client) AuthService {
	return &authService{client: c}
}

func (s *authService) Login(
	ctx context.Context,
	email, password string,
) (*LoginData, error) {
	var data LoginData
	err := s.client.Post(
		ctx, "/auth/login",
		LoginRequest{Email: email, Password: password},
		&data,
	)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *authService) Register(
	ctx context.Context,
	req RegisterRequest,
) (*LoginData, error) {
	var data LoginData
	if err := s.client.Post(ctx, "/auth/register", req, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
