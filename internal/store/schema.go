package store

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/impulse7-tech/ImpuLse-FishinG/internal/auth"
)

// Open connects to the sqlite document store and wraps it with bun.
func Open(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// CreateSchema creates the four collections this service uses. The
// unique index on users.email is the authoritative duplicate-email
// guarantee; the authenticator's pre-check only short-circuits the
// common case.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*auth.User)(nil),
		(*Product)(nil),
		(*Order)(nil),
		(*ChatMessage)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	if _, err := db.NewCreateIndex().
		Model((*auth.User)(nil)).
		Index("users_email_unique_idx").
		Unique().
		Column("email").
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}

	if _, err := db.NewCreateIndex().
		Model((*Order)(nil)).
		Index("orders_user_id_idx").
		Column("user_id").
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}

	return nil
}
