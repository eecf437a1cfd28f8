// Package edge implements the on-site controller: it executes commands
// against motor drivers, streams telemetry, and fails safe when the
// broker link dies.
package edge

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/railyardhq/railyard/pkg/config"
	"github.com/railyardhq/railyard/pkg/models"
	"github.com/railyardhq/railyard/pkg/mqtt"
)

const (
	// tickInterval paces motor ramps. It divides the default 3s ramp
	// into enough steps that speed changes read as continuous.
	tickInterval = 50 * time.Millisecond

	defaultStartSpeed = 50
)

// Executor owns every train assigned to this controller. It implements
// the lifecycle Service contract.
type Executor struct {
	cfg       *config.EdgeConfig
	transport mqtt.Client
	registry  DriverRegistry
	heartbeat *Heartbeater

	runners map[string]*trainRunner
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// failMu guards the disconnect fail-safe timer.
	failMu    sync.Mutex
	failTimer *time.Timer
}

// trainRunner binds one train's motor to its command and status topics.
type trainRunner struct {
	trainID      string
	motor        *Motor
	driver       MotorDriver
	defaultSpeed int

	pubMu         sync.Mutex
	lastPublished MotorSnapshot
	published     bool
}

// NewExecutor creates an edge executor. The config must be validated.
func NewExecutor(cfg *config.EdgeConfig, transport mqtt.Client, registry DriverRegistry) *Executor {
	return &Executor{
		cfg:       cfg,
		transport: transport,
		registry:  registry,
		heartbeat: NewHeartbeater(cfg, transport),
		runners:   make(map[string]*trainRunner),
	}
}

// Start builds a driver and motor per assigned train, connects to the
// broker, and subscribes each train's command topic.
func (e *Executor) Start(ctx context.Context) error {
	ctx, e.cancel = context.WithCancel(ctx)

	for i := range e.cfg.Trains {
		assignment := &e.cfg.Trains[i]

		if _, exists := e.runners[assignment.TrainID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateTrain, assignment.TrainID)
		}

		runner, err := e.buildRunner(ctx, assignment)
		if err != nil {
			return err
		}

		e.runners[assignment.TrainID] = runner
	}

	if err := e.transport.Connect(); err != nil {
		return err
	}

	for _, runner := range e.runners {
		r := runner
		err := e.transport.Subscribe(mqtt.CommandTopic(r.trainID), mqtt.QoSCommand,
			func(topic string, payload []byte) {
				e.handleCommand(r, topic, payload)
			})
		if err != nil {
			return err
		}

		e.wg.Add(1)

		go func() {
			defer e.wg.Done()
			e.runTrain(ctx, r)
		}()
	}

	e.wg.Add(1)

	go func() {
		defer e.wg.Done()
		e.heartbeat.Run(ctx)
	}()

	log.Printf("Edge controller %s started with %d trains", e.cfg.ControllerID, len(e.runners))

	return nil
}

// Stop halts every train, then disconnects.
func (e *Executor) Stop(_ context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	e.wg.Wait()
	e.stopAll("shutdown")

	for _, runner := range e.runners {
		if err := runner.driver.Close(); err != nil {
			log.Printf("Failed to close driver for %s: %v", runner.trainID, err)
		}
	}

	e.transport.Close()

	return nil
}

func (e *Executor) buildRunner(ctx context.Context, assignment *config.TrainAssignment) (*trainRunner, error) {
	driver, err := e.registry.Get(ctx, assignment.PluginName, assignment.TrainID, assignment.PluginConfig)
	if err != nil {
		return nil, err
	}

	if assignment.InvertDirections {
		driver = InvertDirections(driver)
	}

	defaultSpeed := assignment.DefaultSpeed
	if defaultSpeed <= 0 || defaultSpeed > 100 {
		defaultSpeed = defaultStartSpeed
	}

	return &trainRunner{
		trainID:      assignment.TrainID,
		motor:        NewMotor(driver, time.Duration(e.cfg.RampDuration)),
		driver:       driver,
		defaultSpeed: defaultSpeed,
	}, nil
}

// handleCommand parses, applies, and acknowledges one command delivery.
// Malformed or rejected commands are logged and dropped; the motor keeps
// its current state.
func (e *Executor) handleCommand(r *trainRunner, topic string, payload []byte) {
	trainID, err := mqtt.TrainFromTopic(topic)
	if err != nil || trainID != r.trainID {
		log.Printf("Ignoring command on unexpected topic %s", topic)
		return
	}

	cmd, err := models.ParseCommand(payload)
	if err != nil {
		log.Printf("Dropping malformed command for %s: %v", r.trainID, err)
		return
	}

	if err := r.apply(cmd); err != nil {
		log.Printf("Rejected %s command for %s: %v", cmd.Action, r.trainID, err)
		return
	}

	log.Printf("Applied %s command for %s", cmd.Action, r.trainID)

	// Publish promptly so the operator sees the effect without waiting
	// for the next status interval.
	e.publishStatus(r, true)
}

func (r *trainRunner) apply(cmd *models.Command) error {
	switch cmd.Action {
	case models.ActionEmergencyStop:
		return r.motor.EmergencyStop()
	case models.ActionStop:
		return r.motor.SetTarget(0)
	case models.ActionStart:
		return r.motor.SetTarget(r.defaultSpeed)
	case models.ActionSetSpeed:
		return r.motor.SetTarget(*cmd.Speed)
	case models.ActionForward, models.ActionReverse:
		direction, _ := cmd.Direction()
		return r.motor.SetDirection(direction)
	default:
		return fmt.Errorf("%w: %s", errUnsupportedCommand, cmd.Action)
	}
}

// runTrain advances the motor ramp and publishes telemetry for one train.
func (e *Executor) runTrain(ctx context.Context, r *trainRunner) {
	tick := time.NewTicker(tickInterval)
	defer tick.Stop()

	status := time.NewTicker(time.Duration(e.cfg.StatusInterval))
	defer status.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			r.motor.Tick(now)
			e.publishStatus(r, false)
		case <-status.C:
			e.publishStatus(r, true)
		}
	}
}

// publishStatus sends a telemetry snapshot. When force is false the
// publish is suppressed unless the control state changed since the last
// one, so idle trains only report on the status interval.
func (e *Executor) publishStatus(r *trainRunner, force bool) {
	snapshot := r.motor.Snapshot()

	r.pubMu.Lock()
	if !force && r.published && snapshot == r.lastPublished {
		r.pubMu.Unlock()
		return
	}

	r.lastPublished = snapshot
	r.published = true
	r.pubMu.Unlock()

	telemetry := r.driver.Telemetry()

	status := models.TrainStatus{
		TrainID:   r.trainID,
		Speed:     snapshot.Speed,
		Voltage:   telemetry.Voltage,
		Current:   telemetry.Current,
		Position:  strconv.FormatFloat(telemetry.Position, 'f', 2, 64),
		Timestamp: time.Now().UTC(),
	}

	payload, err := json.Marshal(&status)
	if err != nil {
		log.Printf("Failed to marshal status for %s: %v", r.trainID, err)
		return
	}

	if err := e.transport.Publish(mqtt.StatusTopic(r.trainID), mqtt.QoSTelemetry, payload); err != nil {
		log.Printf("Failed to publish status for %s: %v", r.trainID, err)
	}
}

// OnConnectionLost arms the disconnect fail-safe: if the broker link is
// not restored within the grace period, every train is emergency
// stopped. Wire this into the transport's connection-lost handler.
func (e *Executor) OnConnectionLost(err error) {
	e.failMu.Lock()
	defer e.failMu.Unlock()

	if e.failTimer != nil {
		return
	}

	grace := time.Duration(e.cfg.GracePeriod)
	log.Printf("Broker link lost (%v); stopping all trains in %v unless it recovers", err, grace)

	e.failTimer = time.AfterFunc(grace, func() {
		e.stopAll("broker link lost past grace period")
	})
}

// OnConnectionUp disarms the fail-safe after a reconnect.
func (e *Executor) OnConnectionUp() {
	e.failMu.Lock()
	defer e.failMu.Unlock()

	if e.failTimer != nil {
		if e.failTimer.Stop() {
			log.Printf("Broker link restored within grace period")
		}

		e.failTimer = nil
	}
}

// stopAll emergency-stops every train. Errors are logged per train; one
// faulted motor never blocks stopping the rest.
func (e *Executor) stopAll(reason string) {
	log.Printf("Emergency stopping all trains: %s", reason)

	for _, runner := range e.runners {
		if err := runner.motor.EmergencyStop(); err != nil {
			log.Printf("Failed to stop %s: %v", runner.trainID, err)
		}
	}
}
