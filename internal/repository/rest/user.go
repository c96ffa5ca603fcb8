package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jdupreez/trolley/internal/models"
	"github.com/jdupreez/trolley/internal/repository"
)

type userRepository struct {
	client *Client
}

// NewUserRepository creates a user repository backed by the remote store
func NewUserRepository(client *Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) Register(ctx context.Context, data *models.RegisterData) (*models.User, error) {
	user := &models.User{}
	if err := r.client.do(ctx, http.MethodPost, "/users", nil, data, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := url.Values{}
	query.Set("email", email)

	var users []models.User
	if err := r.client.do(ctx, http.MethodGet, "/users", query, nil, &users); err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (r *userRepository) Update(ctx context.Context, id int64, patch repository.UserPatch) (*models.User, error) {
	user := &models.User{}
	path := fmt.Sprintf("/users/%d", id)
	if err := r.client.do(ctx, http.MethodPatch, path, nil, patch, user); err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return user, nil
}
