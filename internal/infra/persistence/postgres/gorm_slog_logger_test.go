package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"homiio/config"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferedGormLogger(level slog.Level, cfg *config.Config) (logger.Interface, *bytes.Buffer) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level}))

	return newGormSlogLogger(base, cfg), &buf
}

func sqlFn() (string, int64) {
	return "SELECT * FROM addresses", 1
}

func TestGormSlogLogger_Trace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("failures are errors", func(t *testing.T) {
		t.Parallel()

		l, buf := newBufferedGormLogger(slog.LevelInfo, nil)
		l.Trace(ctx, time.Now(), sqlFn, &pgconn.PgError{Code: "57014"})

		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "GORM query failed")
	})

	t.Run("find-or-create misses are debug only", func(t *testing.T) {
		t.Parallel()

		l, buf := newBufferedGormLogger(slog.LevelInfo, nil)
		l.Trace(ctx, time.Now(), sqlFn, gorm.ErrRecordNotFound)
		l.Trace(ctx, time.Now(), sqlFn, &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: addressKeyIndex})
		assert.Empty(t, buf.String())

		l, buf = newBufferedGormLogger(slog.LevelDebug, nil)
		l.Trace(ctx, time.Now(), sqlFn, gorm.ErrRecordNotFound)
		assert.Contains(t, buf.String(), "level=DEBUG")
	})

	t.Run("slow queries are warnings", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		cfg.Env.Log.SlowQuery = time.Millisecond

		l, buf := newBufferedGormLogger(slog.LevelInfo, cfg)
		l.Trace(ctx, time.Now().Add(-time.Second), sqlFn, nil)

		assert.Contains(t, buf.String(), "GORM slow query")
		assert.Contains(t, buf.String(), "SELECT * FROM addresses")
	})

	t.Run("statements only in debug mode", func(t *testing.T) {
		t.Parallel()

		l, buf := newBufferedGormLogger(slog.LevelInfo, nil)
		l.Trace(ctx, time.Now(), sqlFn, nil)
		assert.Empty(t, buf.String())

		cfg := &config.Config{}
		cfg.Env.Debug = true
		l, buf = newBufferedGormLogger(slog.LevelInfo, cfg)
		l.Trace(ctx, time.Now(), sqlFn, nil)
		assert.Contains(t, buf.String(), "GORM query")
	})

	t.Run("silent mode drops everything", func(t *testing.T) {
		t.Parallel()

		l, buf := newBufferedGormLogger(slog.LevelDebug, nil)
		l.LogMode(logger.Silent).Trace(ctx, time.Now(), sqlFn, &pgconn.PgError{Code: "57014"})
		assert.Empty(t, buf.String())
	})
}
