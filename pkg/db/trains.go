package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/railyardhq/railyard/pkg/models"
)

const selectTrainSQL = `
	SELECT id, name, COALESCE(description, ''), COALESCE(model, ''),
		controller_id, plugin_name, COALESCE(plugin_config, ''), invert_directions
	FROM trains
`

// UpsertTrain writes the declarative fields of a train. The controller
// assignment is immutable: on conflict the stored controller_id wins.
func (db *DB) UpsertTrain(train *models.Train) error {
	const upsertSQL = `
		INSERT INTO trains
			(id, name, description, model, controller_id, plugin_name, plugin_config, invert_directions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			model = excluded.model,
			plugin_name = excluded.plugin_name,
			plugin_config = excluded.plugin_config,
			invert_directions = excluded.invert_directions
	`

	_, err := db.Exec(upsertSQL,
		train.ID, train.Name, train.Description, train.Model,
		train.ControllerID, train.PluginName, string(train.PluginConfig),
		train.InvertDirections)
	if err != nil {
		return fmt.Errorf("%w train: %w", ErrFailedToUpsert, err)
	}

	return nil
}

// GetTrain retrieves a train by ID.
func (db *DB) GetTrain(id string) (*models.Train, error) {
	row := db.QueryRow(selectTrainSQL+" WHERE id = ?", id)

	train, err := scanTrain(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTrainNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w train: %w", ErrFailedToQuery, err)
	}

	return train, nil
}

// ListTrains returns every configured train.
func (db *DB) ListTrains() ([]models.Train, error) {
	return db.queryTrains(selectTrainSQL + " ORDER BY name")
}

// ListTrainsForController returns the trains owned by a controller.
func (db *DB) ListTrainsForController(controllerID string) ([]models.Train, error) {
	return db.queryTrains(selectTrainSQL+" WHERE controller_id = ? ORDER BY name", controllerID)
}

func (db *DB) queryTrains(query string, args ...interface{}) ([]models.Train, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w trains: %w", ErrFailedToQuery, err)
	}

	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var trains []models.Train

	for rows.Next() {
		train, err := scanTrain(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w train row: %w", ErrFailedToScan, err)
		}

		trains = append(trains, *train)
	}

	return trains, rows.Err()
}

func scanTrain(scan func(dest ...interface{}) error) (*models.Train, error) {
	var (
		train        models.Train
		pluginConfig string
	)

	if err := scan(
		&train.ID, &train.Name, &train.Description, &train.Model,
		&train.ControllerID, &train.PluginName, &pluginConfig,
		&train.InvertDirections); err != nil {
		return nil, err
	}

	if pluginConfig != "" {
		train.PluginConfig = json.RawMessage(pluginConfig)
	}

	return &train, nil
}

// UpdateTrain applies a field-level merge of operator-editable fields.
func (db *DB) UpdateTrain(id string, update *models.TrainUpdate) error {
	assignments := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)

	if update.Name != nil {
		assignments = append(assignments, "name = ?")
		args = append(args, *update.Name)
	}

	if update.Description != nil {
		assignments = append(assignments, "description = ?")
		args = append(args, *update.Description)
	}

	if update.InvertDirections != nil {
		assignments = append(assignments, "invert_directions = ?")
		args = append(args, *update.InvertDirections)
	}

	if len(assignments) == 0 {
		return nil
	}

	args = append(args, id)

	query := "UPDATE trains SET " + strings.Join(assignments, ", ") + " WHERE id = ?"

	result, err := db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("%w train: %w", ErrFailedToUpdate, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w train: %w", ErrFailedToUpdate, err)
	}

	if affected == 0 {
		return ErrTrainNotFound
	}

	return nil
}

// UpsertPlugin writes a plugin definition.
func (db *DB) UpsertPlugin(plugin *models.Plugin) error {
	const upsertSQL = `
		INSERT INTO plugins (name, human_name, version, config_schema)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			human_name = excluded.human_name,
			version = excluded.version,
			config_schema = excluded.config_schema
	`

	_, err := db.Exec(upsertSQL,
		plugin.Name, plugin.HumanName, plugin.Version, string(plugin.ConfigSchema))
	if err != nil {
		return fmt.Errorf("%w plugin: %w", ErrFailedToUpsert, err)
	}

	return nil
}

// GetPlugin retrieves a plugin definition by name.
func (db *DB) GetPlugin(name string) (*models.Plugin, error) {
	const querySQL = `
		SELECT name, human_name, version, COALESCE(config_schema, '')
		FROM plugins
		WHERE name = ?
	`

	var (
		plugin models.Plugin
		schema string
	)

	err := db.QueryRow(querySQL, name).Scan(
		&plugin.Name, &plugin.HumanName, &plugin.Version, &schema)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w plugin: %w", ErrFailedToQuery, err)
	}

	if schema != "" {
		plugin.ConfigSchema = json.RawMessage(schema)
	}

	return &plugin, nil
}

// ListPlugins returns every plugin definition.
func (db *DB) ListPlugins() ([]models.Plugin, error) {
	const querySQL = `
		SELECT name, human_name, version, COALESCE(config_schema, '')
		FROM plugins
		ORDER BY name
	`

	rows, err := db.Query(querySQL)
	if err != nil {
		return nil, fmt.Errorf("%w plugins: %w", ErrFailedToQuery, err)
	}

	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var plugins []models.Plugin

	for rows.Next() {
		var (
			plugin models.Plugin
			schema string
		)

		if err := rows.Scan(&plugin.Name, &plugin.HumanName, &plugin.Version, &schema); err != nil {
			return nil, fmt.Errorf("%w plugin row: %w", ErrFailedToScan, err)
		}

		if schema != "" {
			plugin.ConfigSchema = json.RawMessage(schema)
		}

		plugins = append(plugins, plugin)
	}

	return plugins, rows.Err()
}
