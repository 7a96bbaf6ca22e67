package database

import (
	"context"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("in-memory sqlite with schema", func(t *testing.T) {
		db, err := New(ctx,
			WithDriver("sqlite3"),
			WithDataSource(":memory:"),
			WithSchema(
				`CREATE TABLE IF NOT EXISTS things (id INTEGER PRIMARY KEY)`,
				`INSERT INTO things (id) VALUES (1)`,
			),
		)
		require.NoError(t, err)
		defer db.Close()

		var count int
		require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM things`).Scan(&count))
		assert.Equal(t, 1, count)
		assert.Equal(t, 1, db.Stats().MaxOpenConnections)
	})

	t.Run("empty driver", func(t *testing.T) {
		db, err := New(ctx, WithDriver(""))
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("empty data source", func(t *testing.T) {
		db, err := New(ctx, WithDataSource(""))
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("unknown driver fails after retries", func(t *testing.T) {
		db, err := New(ctx, WithDriver("nope"), WithRetry(2, time.Millisecond))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "after 2 attempts")
		assert.Nil(t, db)
	})

	t.Run("bad schema statement", func(t *testing.T) {
		db, err := New(ctx, WithSchema(`CREATE NONSENSE`))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "apply schema statement 0")
		assert.Nil(t, db)
	})
}
