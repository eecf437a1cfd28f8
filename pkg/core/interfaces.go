//go:generate mockgen -destination=mock_core.go -package=core github.com/railyardhq/railyard/pkg/core TrainService,CoreService

package core

import (
	"context"

	"github.com/railyardhq/railyard/pkg/models"
)

// TrainService is the read/dispatch surface the HTTP adapter consumes.
type TrainService interface {
	ListTrains() ([]models.Train, error)
	GetTrain(id string) (*models.Train, error)
	UpdateTrain(id string, update *models.TrainUpdate) error
	GetTrainStatus(trainID string) (*TrainStatusView, error)
	Dispatch(ctx context.Context, trainID string, cmd models.Command) (*DispatchResult, error)
	ListControllers() ([]ControllerView, error)
	GetController(id string) (*ControllerView, error)
	ListControllerTrains(id string) ([]models.Train, error)
	UpdateController(id string, update *models.ControllerUpdate) error
}

// CoreService is the lifecycle surface of the coordination core.
type CoreService interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
