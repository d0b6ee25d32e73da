// Package store archives completed hands and games to Postgres. The archive
// is optional: a nil *DB is a no-op on every write, so the match runs
// identically with or without DATABASE_URL set. The in-memory state remains
// the viewer's source of truth either way.
package store

import (
	"context"
	"embed"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema embed.FS

type DB struct{ *pgxpool.Pool }

func Open(dsn string) (*DB, error) {
	p, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close() { db.Pool.Close() }

func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

// InsertHand records one completed hand.
func (db *DB) InsertHand(ctx context.Context, handNumber int, winner string, pot int, board []string, stackA, stackB int, showdown bool) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(ctx, `
        INSERT INTO hands(hand_number, winner, pot, board, stack_a, stack_b, showdown)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, handNumber, winner, pot, board, stackA, stackB, showdown)
	return err
}

// InsertGame records a finished match (one side busted).
func (db *DB) InsertGame(ctx context.Context, winner string, handsPlayed int) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(ctx, `
        INSERT INTO games(winner, hands_played)
        VALUES ($1,$2)
    `, winner, handsPlayed)
	return err
}
