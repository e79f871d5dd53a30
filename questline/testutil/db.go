// Package testutil provides an in-memory database for repository and
// service tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/questline-bot/questline/questline/database"
	"github.com/questline-bot/questline/questline/database/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// NewDB returns a fresh in-memory sqlite bun.DB with the full schema
// created. It is closed automatically when the test finishes.
func NewDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	// A single connection keeps every query on the same :memory: store.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	ctx := context.Background()

	for _, model := range database.Tables() {
		if _, err := db.NewCreateTable().Model(model).Exec(ctx); err != nil {
			t.Fatalf("failed to create table for %T: %v", model, err)
		}
	}

	// The activity upsert relies on this unique index.
	if _, err := db.NewCreateIndex().
		Model((*models.WeeklyActivity)(nil)).
		Index("idx_weekly_activities_user_week").
		Column("user_id", "week_start").
		Unique().
		Exec(ctx); err != nil {
		t.Fatalf("failed to create activity index: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
