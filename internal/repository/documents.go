package repository

import (
	"context"

	"github.com/google/uuid"

	"holoframe-backend/internal/store"
)

// Document is a typed record that validates itself and accepts a generated id.
type Document interface {
	Validate() error
	SetID(id string)
}

// CreateDocument validates doc, stamps it with a new id, inserts it into
// collection and returns the id.
func CreateDocument(ctx context.Context, s *store.Store, collection string, doc Document) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	doc.SetID(id)
	if err := s.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return id, nil
}

// GetDocuments returns every document in collection matching filter.
func GetDocuments[T any](ctx context.Context, s *store.Store, collection string, filter store.Filter, opts store.FindOptions) ([]T, error) {
	docs := make([]T, 0)
	if err := s.Collection(collection).Find(ctx, filter, opts, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetDocument returns the first document matching filter, or nil.
func GetDocument[T any](ctx context.Context, s *store.Store, collection string, filter store.Filter) (*T, error) {
	var doc T
	found, err := s.Collection(collection).FindOne(ctx, filter, &doc)
	if err != nil || !found {
		return nil, err
	}
	return &doc, nil
}
