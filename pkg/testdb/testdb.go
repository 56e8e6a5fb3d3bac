// Package testdb opens throwaway sqlite databases for package tests.
package testdb

import (
	"Favour/pkg/database"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated in-memory database. The pool is pinned to one
// connection because every sqlite :memory: connection is its own database.
func Open(t testing.TB) (*gorm.DB, *Recorder) {
	t.Helper()

	rec := &Recorder{}
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         rec,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	rec.Reset()
	return db, rec
}

// Recorder is a gorm logger that keeps every executed statement.
type Recorder struct {
	mu   sync.Mutex
	sqls []string
}

func (r *Recorder) LogMode(logger.LogLevel) logger.Interface { return r }

func (r *Recorder) Info(context.Context, string, ...interface{}) {}

func (r *Recorder) Warn(context.Context, string, ...interface{}) {}

func (r *Recorder) Error(context.Context, string, ...interface{}) {}

func (r *Recorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	r.sqls = append(r.sqls, sql)
	r.mu.Unlock()
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.sqls = nil
	r.mu.Unlock()
}

// Matching returns recorded statements that start with prefix, ignoring case.
func (r *Recorder) Matching(prefix string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, sql := range r.sqls {
		if strings.HasPrefix(strings.ToUpper(sql), strings.ToUpper(prefix)) {
			out = append(out, sql)
		}
	}
	return out
}
