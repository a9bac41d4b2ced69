package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holoframe-backend/internal/model"
	"holoframe-backend/internal/platform/database"
	"holoframe-backend/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := database.New(context.Background(), "sqlite", filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)

	s := store.New(db)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateDocumentRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	user, err := model.NewUser(model.UserFields{
		Name:       "Ada",
		Username:   "ada",
		Email:      "ada@example.com",
		ProfilePic: "https://example.com/ada.png",
		Link:       "ada-public",
	})
	require.NoError(t, err)

	id, err := CreateDocument(ctx, s, model.UserCollection, user)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := GetDocument[model.User](ctx, s, model.UserCollection, store.Filter{"id": id})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *user, *got)
}

func TestCreateDocumentRejectsInvalid(t *testing.T) {
	s := newTestStore(t)

	_, err := CreateDocument(context.Background(), s, model.UserCollection, &model.User{Name: "x"})
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))

	docs, err := GetDocuments[model.User](context.Background(), s, model.UserCollection, nil, store.FindOptions{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestUserRepositoryLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestStore(t))

	user, err := model.NewUser(model.UserFields{Name: "Demo User", Username: "demo", Email: "demo@example.com", Link: "demo"})
	require.NoError(t, err)
	id, err := repo.Create(ctx, user)
	require.NoError(t, err)

	byName, err := repo.GetByUsername(ctx, "demo")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, id, byName.ID)

	byLink, err := repo.GetByLink(ctx, "demo")
	require.NoError(t, err)
	require.NotNil(t, byLink)
	assert.Equal(t, id, byLink.ID)

	missing, err := repo.GetByID(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepositoryCreateIfAbsentConcurrent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repo := NewUserRepository(s)

	var wg sync.WaitGroup
	ids := make([]string, 4)
	errs := make([]error, 4)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := model.NewUser(model.UserFields{Name: "Demo User", Username: "demo", Email: "demo@example.com", Link: "demo"})
			if err != nil {
				errs[i] = err
				return
			}
			stored, err := repo.CreateIfAbsent(ctx, u)
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = stored.ID
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	for _, id := range ids[1:] {
		assert.Equal(t, ids[0], id)
	}

	users, err := GetDocuments[model.User](ctx, s, model.UserCollection, store.Filter{"username": "demo"}, store.FindOptions{})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestPhotoRepositoryListByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewPhotoRepository(newTestStore(t))

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	private := false
	inputs := []model.PhotoFields{
		{ImageURL: "/api/static/1.png", UserID: "u1", Date: base},
		{ImageURL: "/api/static/2.png", UserID: "u1", Date: base.Add(time.Minute), IsPublic: &private},
		{ImageURL: "/api/static/3.png", UserID: "u1", Date: base.Add(2 * time.Minute)},
		{ImageURL: "/api/static/4.png", UserID: "u2", Date: base.Add(3 * time.Minute)},
	}
	for _, in := range inputs {
		p, err := model.NewPhoto(in)
		require.NoError(t, err)
		_, err = repo.Create(ctx, p)
		require.NoError(t, err)
	}

	public, err := repo.ListByUser(ctx, "u1", true)
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.Equal(t, "/api/static/3.png", public[0].ImageURL)
	assert.Equal(t, "/api/static/1.png", public[1].ImageURL)

	all, err := repo.ListByUser(ctx, "u1", false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "/api/static/2.png", all[1].ImageURL)

	none, err := repo.ListByUser(ctx, "nobody", false)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
