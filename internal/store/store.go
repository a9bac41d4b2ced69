// Package store is the document store client. Each collection maps to one
// table reached through a shared gorm handle.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"holoframe-backend/internal/model"
)

// Filter matches documents whose fields equal the given values.
type Filter map[string]any

type SortField struct {
	Key  string
	Desc bool
}

// FindOptions controls Find. A Limit <= 0 means no limit; an empty Sort
// leaves ordering to the database.
type FindOptions struct {
	Sort  []SortField
	Limit int
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the user and photo collections.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&model.User{}, &model.Photo{}); err != nil {
		return fmt.Errorf("auto migrate collections failed: %w", err)
	}
	return nil
}

func (s *Store) Collection(name string) *Collection {
	return &Collection{db: s.db, name: name}
}

func (s *Store) ListCollectionNames(ctx context.Context) ([]string, error) {
	names, err := s.db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return nil, fmt.Errorf("list collections failed: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type Collection struct {
	db   *gorm.DB
	name string
}

func (c *Collection) Name() string {
	return c.name
}

// FindOne loads the first document matching filter into dest. It reports
// false with a nil error when nothing matches.
func (c *Collection) FindOne(ctx context.Context, filter Filter, dest any) (bool, error) {
	err := c.query(ctx, filter).Limit(1).Take(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find one in %s failed: %w", c.name, err)
	}
	return true, nil
}

// Find loads every matching document into dest, which must point to a slice.
func (c *Collection) Find(ctx context.Context, filter Filter, opts FindOptions, dest any) error {
	q := c.query(ctx, filter)
	for _, s := range opts.Sort {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Key}, Desc: s.Desc})
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if err := q.Find(dest).Error; err != nil {
		return fmt.Errorf("find in %s failed: %w", c.name, err)
	}
	return nil
}

func (c *Collection) InsertOne(ctx context.Context, doc any) error {
	if err := c.db.WithContext(ctx).Table(c.name).Create(doc).Error; err != nil {
		return fmt.Errorf("insert into %s failed: %w", c.name, err)
	}
	return nil
}

// InsertIfAbsent inserts doc unless a unique key already holds it. It
// reports whether a row was written.
func (c *Collection) InsertIfAbsent(ctx context.Context, doc any) (bool, error) {
	res := c.db.WithContext(ctx).Table(c.name).Clauses(clause.OnConflict{DoNothing: true}).Create(doc)
	if res.Error != nil {
		return false, fmt.Errorf("insert into %s failed: %w", c.name, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (c *Collection) query(ctx context.Context, filter Filter) *gorm.DB {
	q := c.db.WithContext(ctx).Table(c.name)
	if len(filter) > 0 {
		q = q.Where(map[string]any(filter))
	}
	return q
}
