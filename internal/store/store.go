// Package store is the persistence handle shared by every service: the
// identity store (users, follow edges), the content store (posts, comments,
// likes) and the notification store.
package store

import (
	"context"
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"socialfeed/internal/clock"
)

type Store struct {
	db    *gorm.DB
	clock clock.Clock
}

func New(db *gorm.DB, clk clock.Clock) *Store {
	return &Store{db: db, clock: clk}
}

// Transaction runs fn against a Store bound to a single database transaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, clock: s.clock})
	})
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Page selects a 1-based page of Size rows. A zero Size means no limit.
type Page struct {
	Number int
	Size   int
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Size <= 0 {
		return db
	}
	number := p.Number
	if number < 1 {
		number = 1
	}
	return db.Limit(p.Size).Offset((number - 1) * p.Size)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
