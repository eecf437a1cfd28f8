// Package db pkg/db/interfaces.go
package db

import (
	"github.com/railyardhq/railyard/pkg/models"
)

//go:generate mockgen -destination=mock_db.go -package=db github.com/railyardhq/railyard/pkg/db Service

// Service represents all store operations. The configuration store holds
// plugins, controllers and trains; the telemetry store holds the latest
// status snapshot per train. Writes are serialized per row by SQLite, which
// satisfies the single-writer-per-key requirement.
type Service interface {
	Close() error

	// Plugin operations.

	UpsertPlugin(plugin *models.Plugin) error
	GetPlugin(name string) (*models.Plugin, error)
	ListPlugins() ([]models.Plugin, error)

	// Controller operations.

	UpsertController(controller *models.Controller) error
	GetController(id string) (*models.Controller, error)
	ListControllers() ([]models.Controller, error)
	UpdateController(id string, update *models.ControllerUpdate) error
	ApplyHeartbeat(hb *models.Heartbeat) error

	// Train operations.

	UpsertTrain(train *models.Train) error
	GetTrain(id string) (*models.Train, error)
	ListTrains() ([]models.Train, error)
	ListTrainsForController(controllerID string) ([]models.Train, error)
	UpdateTrain(id string, update *models.TrainUpdate) error

	// Telemetry operations.

	UpsertTrainStatus(status *models.TrainStatus) error
	GetTrainStatus(trainID string) (*models.TrainStatus, error)
}
