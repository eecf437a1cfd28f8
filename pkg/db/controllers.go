package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/railyardhq/railyard/pkg/models"
)

// UpsertController writes the declarative fields of a controller. Runtime
// fields (first_seen, last_seen, capability metadata) are preserved on
// conflict so reconciliation never clobbers telemetry.
func (db *DB) UpsertController(controller *models.Controller) error {
	const upsertSQL = `
		INSERT INTO controllers (id, name, description, address, enabled)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			address = excluded.address,
			enabled = excluded.enabled
	`

	_, err := db.Exec(upsertSQL,
		controller.ID, controller.Name, controller.Description,
		controller.Address, controller.Enabled)
	if err != nil {
		return fmt.Errorf("%w controller: %w", ErrFailedToUpsert, err)
	}

	return nil
}

// GetController retrieves a controller by ID.
func (db *DB) GetController(id string) (*models.Controller, error) {
	const querySQL = `
		SELECT id, name, COALESCE(description, ''), COALESCE(address, ''), enabled,
			first_seen, last_seen,
			COALESCE(platform, ''), COALESCE(version, ''),
			COALESCE(memory_mb, 0), COALESCE(cpu_count, 0), COALESCE(config_hash, '')
		FROM controllers
		WHERE id = ?
	`

	var (
		c                   models.Controller
		firstSeen, lastSeen sql.NullTime
	)

	err := db.QueryRow(querySQL, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.Address, &c.Enabled,
		&firstSeen, &lastSeen,
		&c.Platform, &c.Version, &c.MemoryMB, &c.CPUCount, &c.ConfigHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrControllerNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w controller: %w", ErrFailedToQuery, err)
	}

	if firstSeen.Valid {
		c.FirstSeen = firstSeen.Time
	}

	if lastSeen.Valid {
		c.LastSeen = lastSeen.Time
	}

	return &c, nil
}

// ListControllers returns every known controller.
func (db *DB) ListControllers() ([]models.Controller, error) {
	const querySQL = `
		SELECT id, name, COALESCE(description, ''), COALESCE(address, ''), enabled,
			first_seen, last_seen,
			COALESCE(platform, ''), COALESCE(version, ''),
			COALESCE(memory_mb, 0), COALESCE(cpu_count, 0), COALESCE(config_hash, '')
		FROM controllers
		ORDER BY name
	`

	rows, err := db.Query(querySQL)
	if err != nil {
		return nil, fmt.Errorf("%w controllers: %w", ErrFailedToQuery, err)
	}

	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var controllers []models.Controller

	for rows.Next() {
		var (
			c                   models.Controller
			firstSeen, lastSeen sql.NullTime
		)

		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.Address, &c.Enabled,
			&firstSeen, &lastSeen,
			&c.Platform, &c.Version, &c.MemoryMB, &c.CPUCount, &c.ConfigHash); err != nil {
			return nil, fmt.Errorf("%w controller row: %w", ErrFailedToScan, err)
		}

		if firstSeen.Valid {
			c.FirstSeen = firstSeen.Time
		}

		if lastSeen.Valid {
			c.LastSeen = lastSeen.Time
		}

		controllers = append(controllers, c)
	}

	return controllers, rows.Err()
}

// UpdateController applies a field-level merge of operator-editable fields.
// Identity is never part of the update.
func (db *DB) UpdateController(id string, update *models.ControllerUpdate) error {
	assignments := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)

	if update.Name != nil {
		assignments = append(assignments, "name = ?")
		args = append(args, *update.Name)
	}

	if update.Description != nil {
		assignments = append(assignments, "description = ?")
		args = append(args, *update.Description)
	}

	if update.Address != nil {
		assignments = append(assignments, "address = ?")
		args = append(args, *update.Address)
	}

	if update.Enabled != nil {
		assignments = append(assignments, "enabled = ?")
		args = append(args, *update.Enabled)
	}

	if len(assignments) == 0 {
		return nil
	}

	args = append(args, id)

	query := "UPDATE controllers SET " + strings.Join(assignments, ", ") + " WHERE id = ?"

	result, err := db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("%w controller: %w", ErrFailedToUpdate, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w controller: %w", ErrFailedToUpdate, err)
	}

	if affected == 0 {
		return ErrControllerNotFound
	}

	return nil
}

// ApplyHeartbeat merges a heartbeat into the controller row: first_seen
// is set exactly once, last_seen never moves backwards, capability fields
// are merged only when the heartbeat carries them. A heartbeat redelivered
// out of order after a reconnect still merges capabilities but keeps the
// newer stored timestamp, so last_seen >= first_seen always holds.
func (db *DB) ApplyHeartbeat(hb *models.Heartbeat) error {
	seen := hb.Timestamp
	if seen.IsZero() {
		seen = time.Now()
	}

	const updateSQL = `
		UPDATE controllers SET
			first_seen = COALESCE(first_seen, ?),
			last_seen = MAX(COALESCE(last_seen, ?), ?),
			platform = COALESCE(NULLIF(?, ''), platform),
			version = COALESCE(NULLIF(?, ''), version),
			memory_mb = COALESCE(NULLIF(?, 0), memory_mb),
			cpu_count = COALESCE(NULLIF(?, 0), cpu_count),
			config_hash = COALESCE(NULLIF(?, ''), config_hash)
		WHERE id = ?
	`

	result, err := db.Exec(updateSQL,
		seen, seen, seen,
		hb.Platform, hb.Version, hb.MemoryMB, hb.CPUCount, hb.ConfigHash,
		hb.ControllerID)
	if err != nil {
		return fmt.Errorf("%w heartbeat: %w", ErrFailedToUpdate, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w heartbeat: %w", ErrFailedToUpdate, err)
	}

	if affected == 0 {
		return ErrControllerNotFound
	}

	return nil
}
