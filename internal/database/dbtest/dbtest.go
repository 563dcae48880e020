// Package dbtest opens isolated, migrated in-memory SQLite databases for tests.
package dbtest

import (
	"fmt"
	"io"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"socialfeed/internal/config"
	"socialfeed/internal/database"
)

var seq atomic.Int64

// Open returns a fresh database that lives until the test finishes.
func Open(tb testing.TB) *gorm.DB {
	tb.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	name := fmt.Sprintf("file:dbtest%d?mode=memory&cache=shared", seq.Add(1))
	db, err := database.Open(config.DatabaseConfig{Path: name}, logger)
	require.NoError(tb, err)
	require.NoError(tb, database.Migrate(db))

	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// QueryCounter counts statements gorm sends for reads.
type QueryCounter struct {
	n atomic.Int64
}

// CountQueries installs a counter on db's query and row callbacks.
// Statements rendered in DryRun mode, such as subqueries embedded in an
// outer query, never reach the database and are not counted.
func CountQueries(tb testing.TB, db *gorm.DB) *QueryCounter {
	tb.Helper()

	c := &QueryCounter{}
	inc := func(db *gorm.DB) {
		if !db.DryRun {
			c.n.Add(1)
		}
	}
	require.NoError(tb, db.Callback().Query().After("gorm:query").Register("dbtest:count_query", inc))
	require.NoError(tb, db.Callback().Row().After("gorm:row").Register("dbtest:count_row", inc))
	return c
}

func (c *QueryCounter) Reset() { c.n.Store(0) }

func (c *QueryCounter) Count() int64 { return c.n.Load() }
