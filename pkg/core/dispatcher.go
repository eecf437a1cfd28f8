package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/railyardhq/railyard/pkg/db"
	"github.com/railyardhq/railyard/pkg/models"
	"github.com/railyardhq/railyard/pkg/mqtt"
)

// DispatchResult reports where a command was published. Acceptance by the
// broker is all it promises: end-to-end confirmation that the controller
// acted arrives asynchronously through telemetry, never through Dispatch.
// A command accepted here but never actuated (controller offline) is only
// observable as telemetry staleness.
type DispatchResult struct {
	TrainID      string    `json:"train_id"`
	ControllerID string    `json:"controller_id"`
	Topic        string    `json:"topic"`
	Action       string    `json:"action"`
	PublishedAt  time.Time `json:"published_at"`
}

// Dispatcher resolves control intents to wire commands and publishes them
// to the owning controller's command channel.
type Dispatcher struct {
	store     db.Service
	transport mqtt.Client
}

// NewDispatcher creates a command dispatcher.
func NewDispatcher(store db.Service, transport mqtt.Client) *Dispatcher {
	return &Dispatcher{store: store, transport: transport}
}

// Dispatch validates the intent, resolves the train's owning controller
// and publishes the command at QoS 1. Resolution failures happen before
// any transport interaction. Dispatch never consults liveness and never
// waits on the physical controller; a publish for an offline controller
// still succeeds once the broker acknowledges it.
func (d *Dispatcher) Dispatch(ctx context.Context, trainID string, cmd models.Command) (*DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	train, err := d.store.GetTrain(trainID)
	if err != nil {
		if errors.Is(err, db.ErrTrainNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTrainNotFound, trainID)
		}

		return nil, err
	}

	controller, err := d.store.GetController(train.ControllerID)
	if err != nil {
		if errors.Is(err, db.ErrControllerNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrControllerNotFound, train.ControllerID)
		}

		return nil, err
	}

	if cmd.Timestamp.IsZero() {
		cmd.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(&cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to encode command: %w", err)
	}

	topic := mqtt.CommandTopic(train.ID)

	// A cancelled caller must bail out before the broker sees anything:
	// once published, the command runs whether or not anyone is waiting,
	// and the caller would re-publish what already went out.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := d.transport.Publish(topic, mqtt.QoSCommand, payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransportUnavailable, err)
	}

	log.Printf("Dispatched %s for train %s to controller %s (%s)",
		cmd.Action, train.ID, controller.ID, topic)

	return &DispatchResult{
		TrainID:      train.ID,
		ControllerID: controller.ID,
		Topic:        topic,
		Action:       string(cmd.Action),
		PublishedAt:  cmd.Timestamp,
	}, nil
}
