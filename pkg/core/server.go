package core

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/railyardhq/railyard/pkg/config"
	"github.com/railyardhq/railyard/pkg/core/alerts"
	"github.com/railyardhq/railyard/pkg/db"
	"github.com/railyardhq/railyard/pkg/models"
	"github.com/railyardhq/railyard/pkg/mqtt"
)

// ControllerView is a controller record with its liveness computed at
// read time.
type ControllerView struct {
	models.Controller
	Liveness Liveness `json:"liveness"`
}

// TrainStatusView is the latest telemetry snapshot for a train together
// with its owning controller's liveness. Staleness of the snapshot is
// judged through the controller, not the snapshot itself.
type TrainStatusView struct {
	Train        *models.Train       `json:"train"`
	Status       *models.TrainStatus `json:"status,omitempty"`
	ControllerID string              `json:"controller_id"`
	Liveness     Liveness            `json:"liveness"`
}

// Server is the supervisory coordination core: it owns the stores, the
// transport connection, the telemetry ingestor and the offline monitor,
// and exposes the read/dispatch operations the HTTP adapter consumes.
type Server struct {
	store      db.Service
	transport  mqtt.Client
	dispatcher *Dispatcher
	ingestor   *Ingestor
	monitor    *Monitor

	cancel context.CancelFunc
}

// NewServer wires the core from its parts.
func NewServer(cfg *config.CoreConfig, store db.Service, transport mqtt.Client) *Server {
	alerters := make([]alerts.AlertService, 0, len(cfg.Webhooks))

	for _, wh := range cfg.Webhooks {
		if !wh.Enabled {
			continue
		}

		headers := make([]alerts.Header, 0, len(wh.Headers))
		for _, h := range wh.Headers {
			headers = append(headers, alerts.Header{Key: h.Key, Value: h.Value})
		}

		alerters = append(alerters, alerts.NewWebhookAlerter(alerts.WebhookConfig{
			Enabled:  true,
			URL:      wh.URL,
			Headers:  headers,
			Template: wh.Template,
			Cooldown: time.Duration(wh.Cooldown),
		}))
	}

	return &Server{
		store:      store,
		transport:  transport,
		dispatcher: NewDispatcher(store, transport),
		ingestor:   NewIngestor(store, transport, cfg.AllowUnknownControllers),
		monitor:    NewMonitor(store, alerters, time.Duration(cfg.OfflineCheckInterval)),
	}
}

// Start connects the transport, starts telemetry ingestion and the
// offline monitor.
func (s *Server) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	if err := s.transport.Connect(); err != nil {
		return err
	}

	if err := s.ingestor.Start(ctx); err != nil {
		return err
	}

	go s.monitor.Run(ctx)

	log.Printf("Coordination core started")

	return nil
}

// Stop shuts the core down, draining the ingestor before closing the
// transport.
func (s *Server) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	if err := s.ingestor.Stop(ctx); err != nil {
		return err
	}

	s.transport.Close()

	if err := s.store.Close(); err != nil {
		log.Printf("Error closing store: %v", err)
	}

	return nil
}

// Dispatch publishes a control intent for a train.
func (s *Server) Dispatch(ctx context.Context, trainID string, cmd models.Command) (*DispatchResult, error) {
	return s.dispatcher.Dispatch(ctx, trainID, cmd)
}

// ListTrains returns every configured train.
func (s *Server) ListTrains() ([]models.Train, error) {
	return s.store.ListTrains()
}

// GetTrain returns a train by ID.
func (s *Server) GetTrain(id string) (*models.Train, error) {
	train, err := s.store.GetTrain(id)
	if err != nil {
		return nil, ErrTrainNotFound
	}

	return train, nil
}

// UpdateTrain merges operator-editable train fields.
func (s *Server) UpdateTrain(id string, update *models.TrainUpdate) error {
	if err := s.store.UpdateTrain(id, update); err != nil {
		if errors.Is(err, db.ErrTrainNotFound) {
			return ErrTrainNotFound
		}

		return err
	}

	return nil
}

// GetTrainStatus returns the latest snapshot and the owning controller's
// liveness, classified against the current wall clock on every call.
func (s *Server) GetTrainStatus(trainID string) (*TrainStatusView, error) {
	train, err := s.store.GetTrain(trainID)
	if err != nil {
		return nil, ErrTrainNotFound
	}

	status, err := s.store.GetTrainStatus(trainID)
	if err != nil {
		return nil, err
	}

	view := &TrainStatusView{
		Train:        train,
		Status:       status,
		ControllerID: train.ControllerID,
		Liveness:     Offline,
	}

	if controller, err := s.store.GetController(train.ControllerID); err == nil {
		view.Liveness = Classify(controller.LastSeen, time.Now())
	}

	return view, nil
}

// ListControllers returns every controller with computed liveness.
func (s *Server) ListControllers() ([]ControllerView, error) {
	controllers, err := s.store.ListControllers()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]ControllerView, 0, len(controllers))

	for _, controller := range controllers {
		views = append(views, ControllerView{
			Controller: controller,
			Liveness:   Classify(controller.LastSeen, now),
		})
	}

	return views, nil
}

// GetController returns a controller with computed liveness.
func (s *Server) GetController(id string) (*ControllerView, error) {
	controller, err := s.store.GetController(id)
	if err != nil {
		return nil, ErrControllerNotFound
	}

	return &ControllerView{
		Controller: *controller,
		Liveness:   Classify(controller.LastSeen, time.Now()),
	}, nil
}

// ListControllerTrains returns the trains assigned to a controller.
// Edge controllers configured without a local train list pull this at
// startup, so the manifest stays the single place fleet changes happen.
func (s *Server) ListControllerTrains(id string) ([]models.Train, error) {
	if _, err := s.store.GetController(id); err != nil {
		return nil, ErrControllerNotFound
	}

	return s.store.ListTrainsForController(id)
}

// UpdateController merges operator-editable controller fields.
func (s *Server) UpdateController(id string, update *models.ControllerUpdate) error {
	if err := s.store.UpdateController(id, update); err != nil {
		if errors.Is(err, db.ErrControllerNotFound) {
			return ErrControllerNotFound
		}

		return err
	}

	return nil
}
