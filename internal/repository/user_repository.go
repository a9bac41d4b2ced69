package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"holoframe-backend/internal/model"
	"holoframe-backend/internal/store"
)

type UserRepository struct {
	store *store.Store
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{store: s}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) (string, error) {
	id, err := CreateDocument(ctx, r.store, model.UserCollection, user)
	if err != nil {
		return "", fmt.Errorf("create user failed: %w", err)
	}
	return id, nil
}

// CreateIfAbsent inserts user unless one with the same username exists, then
// returns whichever record is stored under that username.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, user *model.User) (*model.User, error) {
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	user.SetID(uuid.NewString())
	if _, err := r.store.Collection(model.UserCollection).InsertIfAbsent(ctx, user); err != nil {
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	stored, err := r.GetByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("user %q missing after insert", user.Username)
	}
	return stored, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *UserRepository) GetByLink(ctx context.Context, link string) (*model.User, error) {
	return r.getBy(ctx, "link", link)
}

func (r *UserRepository) getBy(ctx context.Context, field, value string) (*model.User, error) {
	user, err := GetDocument[model.User](ctx, r.store, model.UserCollection, store.Filter{field: value})
	if err != nil {
		return nil, fmt.Errorf("query user by %s failed: %w", field, err)
	}
	return user, nil
}
