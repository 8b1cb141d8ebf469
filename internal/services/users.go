package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/musicadm/internal/models"
)

// UserService manages users at /usuarios.
type UserService struct {
	client *Client
}

func NewUserService(c *Client) *UserService {
	return &UserService{client: c}
}

func userPath(id int64) string { return fmt.Sprintf("/usuarios/%d", id) }

// List returns one page of users.
func (s *UserService) List(ctx context.Context, opts ListOptions) ([]models.User, error) {
	return getList[models.User](ctx, s.client, "/usuarios", opts.query())
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := s.client.Get(ctx, userPath(id), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.client.Post(ctx, "/usuarios", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a partial update. Unset request fields are left unchanged on the server.
func (s *UserService) Update(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.client.Patch(ctx, userPath(id), nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, userPath(id), nil, nil, nil)
}
