package repository

import (
	"context"
	"fmt"

	"holoframe-backend/internal/model"
	"holoframe-backend/internal/store"
)

type PhotoRepository struct {
	store *store.Store
}

func NewPhotoRepository(s *store.Store) *PhotoRepository {
	return &PhotoRepository{store: s}
}

func (r *PhotoRepository) Create(ctx context.Context, photo *model.Photo) (string, error) {
	id, err := CreateDocument(ctx, r.store, model.PhotoCollection, photo)
	if err != nil {
		return "", fmt.Errorf("create photo failed: %w", err)
	}
	return id, nil
}

func (r *PhotoRepository) GetByID(ctx context.Context, id string) (*model.Photo, error) {
	photo, err := GetDocument[model.Photo](ctx, r.store, model.PhotoCollection, store.Filter{"id": id})
	if err != nil {
		return nil, fmt.Errorf("query photo by id failed: %w", err)
	}
	return photo, nil
}

// ListByUser returns the user's photos, newest first. With publicOnly set
// only photos marked public are returned.
func (r *PhotoRepository) ListByUser(ctx context.Context, userID string, publicOnly bool) ([]model.Photo, error) {
	filter := store.Filter{"user_id": userID}
	if publicOnly {
		filter["is_public"] = true
	}

	photos, err := GetDocuments[model.Photo](ctx, r.store, model.PhotoCollection, filter, store.FindOptions{
		Sort: []store.SortField{{Key: "date", Desc: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("list photos failed: %w", err)
	}
	return photos, nil
}
