// Package errors pkg/db/errors.go provides errors for the db package.

package db

import "errors"

var (
	// Core database errors.

	ErrFailedToScan      = errors.New("failed to scan")
	ErrFailedToQuery     = errors.New("failed to query")
	ErrFailedToInsert    = errors.New("failed to insert")
	ErrFailedToUpsert    = errors.New("failed to upsert")
	ErrFailedToUpdate    = errors.New("failed to update")
	ErrFailedToInit      = errors.New("failed to initialize schema")
	ErrFailedToEnableWAL = errors.New("failed to enable WAL mode")
	ErrFailedOpenDB      = errors.New("failed to open database")

	// Domain errors.

	ErrControllerNotFound = errors.New("controller not found")
	ErrTrainNotFound      = errors.New("train not found")

	// ErrStaleStatus is returned when a status snapshot carries an embedded
	// timestamp older than the stored row. Out-of-order deliveries are
	// rejected instead of last-write-wins on arrival order.
	ErrStaleStatus = errors.New("stale status snapshot")
)
