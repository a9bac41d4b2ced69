package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holoframe-backend/internal/model"
	"holoframe-backend/internal/platform/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.New(context.Background(), "sqlite", filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)

	s := New(db)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestListCollectionNames(t *testing.T) {
	s := newTestStore(t)

	names, err := s.ListCollectionNames(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{model.UserCollection, model.PhotoCollection}, names)
}

func TestFindOneMissing(t *testing.T) {
	s := newTestStore(t)

	var u model.User
	found, err := s.Collection(model.UserCollection).FindOne(context.Background(), Filter{"link": "nobody"}, &u)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInsertAndFind(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	photos := s.Collection(model.PhotoCollection)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, public := range []bool{true, false, true} {
		require.NoError(t, photos.InsertOne(ctx, &model.Photo{
			ID:       string(rune('a' + i)),
			ImageURL: "/api/static/x.png",
			UserID:   "u1",
			IsPublic: public,
			Date:     base.Add(time.Duration(i) * time.Hour),
		}))
	}

	var got []model.Photo
	err := photos.Find(ctx, Filter{"user_id": "u1", "is_public": true}, FindOptions{
		Sort: []SortField{{Key: "date", Desc: true}},
	}, &got)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)

	got = nil
	err = photos.Find(ctx, Filter{"user_id": "u1"}, FindOptions{
		Sort:  []SortField{{Key: "date"}},
		Limit: 1,
	}, &got)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestInsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	users := s.Collection(model.UserCollection)

	first := &model.User{ID: "1", Name: "n", Username: "demo", Email: "a@b.co", Link: "demo"}
	inserted, err := users.InsertIfAbsent(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)

	second := &model.User{ID: "2", Name: "n", Username: "demo", Email: "a@b.co", Link: "demo"}
	inserted, err = users.InsertIfAbsent(ctx, second)
	require.NoError(t, err)
	assert.False(t, inserted)

	var all []model.User
	require.NoError(t, users.Find(ctx, Filter{"username": "demo"}, FindOptions{}, &all))
	require.Len(t, all, 1)
	assert.Equal(t, "1", all[0].ID)
}
