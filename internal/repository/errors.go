package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("record not found")

// ErrUnknownEnumCode is returned when a persisted row carries an exam type or
// subject combination code outside the closed member list, or was stamped
// with a newer enum version than this build knows.
var ErrUnknownEnumCode = errors.New("unknown enum code in stored row")

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
