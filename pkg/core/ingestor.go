package core

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/railyardhq/railyard/pkg/db"
	"github.com/railyardhq/railyard/pkg/models"
	"github.com/railyardhq/railyard/pkg/mqtt"
)

const updateBuffer = 256

// Ingestor subscribes to the status and heartbeat channels and writes
// normalized snapshots into the stores. Transport handlers only parse and
// enqueue; a single writer goroutine drains the queue, so a slow store
// write never blocks the transport's delivery goroutine. Malformed
// payloads are dropped and logged, never propagated as a fault that
// halts the subscription.
type Ingestor struct {
	store        db.Service
	transport    mqtt.Client
	allowUnknown bool

	updates   chan update
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

type update struct {
	status    *models.TrainStatus
	heartbeat *models.Heartbeat
}

// NewIngestor creates a telemetry ingestor. When allowUnknown is set,
// heartbeats from controllers missing in the configuration store register
// the controller on first contact; otherwise they are dropped.
func NewIngestor(store db.Service, transport mqtt.Client, allowUnknown bool) *Ingestor {
	return &Ingestor{
		store:        store,
		transport:    transport,
		allowUnknown: allowUnknown,
		updates:      make(chan update, updateBuffer),
		done:         make(chan struct{}),
	}
}

// Start subscribes to the telemetry channels and launches the writer
// loop. The transport reconnects and replays subscriptions on its own,
// so ingestion survives broker restarts without intervention.
func (i *Ingestor) Start(ctx context.Context) error {
	if err := i.transport.Subscribe(mqtt.AllStatusTopics, mqtt.QoSTelemetry, i.handleStatus); err != nil {
		return err
	}

	if err := i.transport.Subscribe(mqtt.AllHeartbeatTopics, mqtt.QoSTelemetry, i.handleHeartbeat); err != nil {
		return err
	}

	i.wg.Add(1)

	go i.writeLoop(ctx)

	return nil
}

// Stop shuts down the writer loop after draining pending updates.
func (i *Ingestor) Stop(context.Context) error {
	i.closeOnce.Do(func() {
		close(i.done)
	})

	i.wg.Wait()

	return nil
}

func (i *Ingestor) handleStatus(topic string, payload []byte) {
	trainID, err := mqtt.TrainFromTopic(topic)
	if err != nil {
		log.Printf("Dropping status with bad topic %q: %v", topic, err)
		return
	}

	status, err := models.ParseTrainStatus(payload)
	if err != nil {
		log.Printf("Dropping malformed status for train %s: %v", trainID, err)
		return
	}

	// The topic is the source of truth for identity.
	if status.TrainID != trainID {
		log.Printf("Train ID mismatch: topic=%s payload=%s, using topic", trainID, status.TrainID)
		status.TrainID = trainID
	}

	if status.Timestamp.IsZero() {
		status.Timestamp = time.Now().UTC()
	}

	i.enqueue(update{status: status})
}

func (i *Ingestor) handleHeartbeat(topic string, payload []byte) {
	controllerID, err := mqtt.ControllerFromTopic(topic)
	if err != nil {
		log.Printf("Dropping heartbeat with bad topic %q: %v", topic, err)
		return
	}

	hb, err := models.ParseHeartbeat(payload)
	if err != nil {
		log.Printf("Dropping malformed heartbeat from controller %s: %v", controllerID, err)
		return
	}

	hb.ControllerID = controllerID

	if hb.Timestamp.IsZero() {
		hb.Timestamp = time.Now().UTC()
	}

	i.enqueue(update{heartbeat: hb})
}

func (i *Ingestor) enqueue(u update) {
	select {
	case i.updates <- u:
	default:
		log.Printf("Update queue full, dropping telemetry record")
	}
}

func (i *Ingestor) writeLoop(ctx context.Context) {
	defer i.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-i.done:
			// Drain what is already queued, then exit.
			for {
				select {
				case u := <-i.updates:
					i.apply(u)
				default:
					return
				}
			}
		case u := <-i.updates:
			i.apply(u)
		}
	}
}

func (i *Ingestor) apply(u update) {
	switch {
	case u.status != nil:
		i.applyStatus(u.status)
	case u.heartbeat != nil:
		i.applyHeartbeat(u.heartbeat)
	}
}

func (i *Ingestor) applyStatus(status *models.TrainStatus) {
	if _, err := i.store.GetTrain(status.TrainID); err != nil {
		log.Printf("Dropping status for unknown train %s: %v", status.TrainID, err)
		return
	}

	err := i.store.UpsertTrainStatus(status)

	switch {
	case errors.Is(err, db.ErrStaleStatus):
		// Out-of-order delivery; the stored snapshot is newer.
		log.Printf("Rejected stale status for train %s (embedded %v)",
			status.TrainID, status.Timestamp)
	case err != nil:
		log.Printf("Failed to store status for train %s: %v", status.TrainID, err)
	}
}

func (i *Ingestor) applyHeartbeat(hb *models.Heartbeat) {
	err := i.store.ApplyHeartbeat(hb)
	if err == nil {
		return
	}

	if !errors.Is(err, db.ErrControllerNotFound) {
		log.Printf("Failed to store heartbeat for controller %s: %v", hb.ControllerID, err)
		return
	}

	if !i.allowUnknown {
		log.Printf("%v: %s", errUnknownController, hb.ControllerID)
		return
	}

	// Policy: register unknown controllers on first heartbeat.
	controller := &models.Controller{
		ID:      hb.ControllerID,
		Name:    "controller-" + hb.ControllerID,
		Enabled: true,
	}

	if err := i.store.UpsertController(controller); err != nil {
		log.Printf("Failed to register controller %s: %v", hb.ControllerID, err)
		return
	}

	log.Printf("Registered controller %s on first heartbeat", hb.ControllerID)

	if err := i.store.ApplyHeartbeat(hb); err != nil {
		log.Printf("Failed to store heartbeat for controller %s: %v", hb.ControllerID, err)
	}
}
