package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/railyardhq/railyard/pkg/models"
)

// UpsertTrainStatus overwrites the telemetry snapshot for a train.
// A snapshot whose embedded timestamp is older than the stored row is
// rejected with ErrStaleStatus so out-of-order deliveries cannot roll
// the table backwards. Re-delivery of the identical snapshot is a no-op
// in effect.
func (db *DB) UpsertTrainStatus(status *models.TrainStatus) error {
	const upsertSQL = `
		INSERT INTO train_status (train_id, speed, voltage, current, position, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(train_id) DO UPDATE SET
			speed = excluded.speed,
			voltage = excluded.voltage,
			current = excluded.current,
			position = excluded.position,
			timestamp = excluded.timestamp
		WHERE excluded.timestamp >= train_status.timestamp
	`

	result, err := db.Exec(upsertSQL,
		status.TrainID, status.Speed, status.Voltage, status.Current,
		status.Position, status.Timestamp)
	if err != nil {
		return fmt.Errorf("%w train status: %w", ErrFailedToUpsert, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w train status: %w", ErrFailedToUpsert, err)
	}

	if affected == 0 {
		return ErrStaleStatus
	}

	return nil
}

// GetTrainStatus retrieves the latest snapshot for a train, or nil when
// no telemetry has arrived yet.
func (db *DB) GetTrainStatus(trainID string) (*models.TrainStatus, error) {
	const querySQL = `
		SELECT train_id, speed, voltage, current, COALESCE(position, ''), timestamp
		FROM train_status
		WHERE train_id = ?
	`

	var status models.TrainStatus

	err := db.QueryRow(querySQL, trainID).Scan(
		&status.TrainID, &status.Speed, &status.Voltage, &status.Current,
		&status.Position, &status.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w train status: %w", ErrFailedToQuery, err)
	}

	return &status, nil
}
