// Package repository holds the raw SQL access layer: one file per table,
// each method on [Queries] issuing a single hand-written query through
// pgx's struct-scanning row collectors.
package repository

import "github.com/jackc/pgx/v5/pgxpool"

type Queries struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Queries {
	return &Queries{db: db}
}
