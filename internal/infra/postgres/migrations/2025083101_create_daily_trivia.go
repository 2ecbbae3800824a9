package migrations

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

var Migrations = migrate.NewMigrations()

const createDailyTriviaSQL = `
CREATE TABLE IF NOT EXISTS questions (
	id BIGSERIAL PRIMARY KEY,
	text TEXT NOT NULL,
	day DATE NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_questions_day ON questions(day);

CREATE TABLE IF NOT EXISTS options (
	id BIGSERIAL PRIMARY KEY,
	question_id BIGINT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
	text TEXT NOT NULL,
	is_correct BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS leaderboard (
	id BIGSERIAL,
	name TEXT NOT NULL,
	score INTEGER NOT NULL,
	day DATE NOT NULL,
	PRIMARY KEY (name, day)
);
`

const dropDailyTriviaSQL = `
DROP TABLE IF EXISTS leaderboard;
DROP TABLE IF EXISTS options;
DROP TABLE IF EXISTS questions;
`

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, createDailyTriviaSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, dropDailyTriviaSQL)
			return err
		},
	)
}
